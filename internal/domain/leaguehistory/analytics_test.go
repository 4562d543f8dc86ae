package leaguehistory

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPeriodWins_TiesCountForAll(t *testing.T) {
	series := NewSeriesMap()
	series.Set("A", []PeriodEntry{{Period: 1, TotalPoints: 50}, {Period: 2, TotalPoints: 110}})
	series.Set("B", []PeriodEntry{{Period: 1, TotalPoints: 70}, {Period: 2, TotalPoints: 110}})
	series.Set("C", []PeriodEntry{{Period: 2, TotalPoints: 60}})

	// period 2 points: A=60, B=40, C=60 (no previous total)
	require.Equal(t, []ParticipantWins{
		{Participant: "A", Wins: 1},
		{Participant: "B", Wins: 1},
		{Participant: "C", Wins: 1},
	}, PeriodWins(series))
}

func TestDiffVsLeaderAndAverage(t *testing.T) {
	series := NewSeriesMap()
	series.Set("A", []PeriodEntry{{Period: 1, TotalPoints: 50}, {Period: 2, TotalPoints: 100}})
	series.Set("B", []PeriodEntry{{Period: 1, TotalPoints: 70}})

	diff := DiffVsLeaderRows(series)
	require.Equal(t, -20.0, diff[0].Value("A"))
	require.Equal(t, 0.0, diff[0].Value("B"))
	require.Equal(t, 0.0, diff[1].Value("A"))
	require.True(t, math.IsNaN(diff[1].Value("B")))

	avg := VsAverageRows(series)
	require.Equal(t, -10.0, avg[0].Value("A"))
	require.Equal(t, 10.0, avg[0].Value("B"))
	require.Equal(t, 0.0, avg[1].Value("A"))
	require.True(t, math.IsNaN(avg[1].Value("B")))
}

func TestDeriveAnalytics_Empty(t *testing.T) {
	analytics := DeriveAnalytics(NewSeriesMap())
	require.Empty(t, analytics.PeriodWins)
	require.Empty(t, analytics.DiffVsLeaderRows)
	require.Empty(t, analytics.VsAverageRows)
}
