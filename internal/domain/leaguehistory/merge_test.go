package leaguehistory

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func intPtr(v int) *int { return &v }

func twoPlayerSeries() *SeriesMap {
	series := NewSeriesMap()
	series.Set("A", []PeriodEntry{
		{Period: 2, Points: 60, TotalPoints: 110, OverallRank: intPtr(1200)},
		{Period: 1, Points: 50, TotalPoints: 50, OverallRank: intPtr(5000)},
	})
	series.Set("B", []PeriodEntry{
		{Period: 1, Points: 70, TotalPoints: 70},
		{Period: 2, Points: 40, TotalPoints: 110},
	})
	return series
}

func TestMergeLeagueRank_CompetitionRankingWithTie(t *testing.T) {
	rows := MergeLeagueRank(twoPlayerSeries())
	require.Len(t, rows, 2)

	require.Equal(t, 1, rows[0].Period)
	require.Equal(t, 2.0, rows[0].Value("A"))
	require.Equal(t, 1.0, rows[0].Value("B"))

	require.Equal(t, 2, rows[1].Period)
	require.Equal(t, 1.0, rows[1].Value("A"))
	require.Equal(t, 1.0, rows[1].Value("B"))
}

func TestMergeLeagueRank_SkipsRanksAfterTie(t *testing.T) {
	series := NewSeriesMap()
	series.Set("A", []PeriodEntry{{Period: 1, TotalPoints: 80}})
	series.Set("B", []PeriodEntry{{Period: 1, TotalPoints: 90}})
	series.Set("C", []PeriodEntry{{Period: 1, TotalPoints: 90}})
	series.Set("D", []PeriodEntry{{Period: 1, TotalPoints: 40}})

	row := MergeLeagueRank(series)[0]
	require.Equal(t, 1.0, row.Value("B"))
	require.Equal(t, 1.0, row.Value("C"))
	require.Equal(t, 3.0, row.Value("A"))
	require.Equal(t, 4.0, row.Value("D"))
}

func TestMergeLeagueRank_Idempotent(t *testing.T) {
	series := twoPlayerSeries()
	first := MergeLeagueRank(series)
	second := MergeLeagueRank(series)
	require.Equal(t, first, second)
}

func TestMergeCumulative_AbsentPeriodIsNaN(t *testing.T) {
	series := NewSeriesMap()
	series.Set("A", []PeriodEntry{{Period: 1, TotalPoints: 50}, {Period: 3, TotalPoints: 0}})
	series.Set("B", []PeriodEntry{{Period: 2, TotalPoints: 70}})

	rows := MergeCumulative(series)
	require.Len(t, rows, 3)
	require.Equal(t, []int{1, 2, 3}, []int{rows[0].Period, rows[1].Period, rows[2].Period})

	require.True(t, math.IsNaN(rows[0].Value("B")))
	require.True(t, math.IsNaN(rows[1].Value("A")))
	require.Equal(t, 0.0, rows[2].Value("A"))
	require.True(t, math.IsNaN(rows[2].Value("B")))

	for _, row := range rows {
		require.Len(t, row.Values, 2)
	}

	rank := MergeLeagueRank(series)
	require.True(t, math.IsNaN(rank[1].Value("A")))
	require.Equal(t, 1.0, rank[1].Value("B"))
}

func TestMergeOverallRank_Passthrough(t *testing.T) {
	rows := MergeOverallRank(twoPlayerSeries())
	require.Equal(t, 5000.0, rows[0].Value("A"))
	require.Equal(t, 1200.0, rows[1].Value("A"))
	require.True(t, math.IsNaN(rows[0].Value("B")))
}

func TestMergedRow_MarshalJSON(t *testing.T) {
	rows := MergeCumulative(twoPlayerSeries())
	rows[0].Values["B"] = math.NaN()

	raw, err := rows[0].MarshalJSON()
	require.NoError(t, err)
	require.JSONEq(t, `{"event":1,"A":50,"B":null}`, string(raw))
	require.Equal(t, `{"event":1,"A":50,"B":null}`, string(raw))
}
