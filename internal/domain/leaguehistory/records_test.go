package leaguehistory

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func recordSeries() *SeriesMap {
	series := NewSeriesMap()
	series.Set("A", []PeriodEntry{
		{Period: 1, Points: 50, PointsOnBench: intPtr(5)},
		{Period: 2, Points: 80, PointsOnBench: intPtr(12)},
		{Period: 3, Points: 20, PointsOnBench: intPtr(3)},
	})
	series.Set("B", []PeriodEntry{
		{Period: 1, Points: 80, PointsOnBench: intPtr(0)},
		{Period: 2, Points: 30},
		{Period: 3, Points: 0, PointsOnBench: intPtr(9)},
	})
	return series
}

func TestDeriveRecords_BestAndWorstStable(t *testing.T) {
	records := DeriveRecords(recordSeries(), RecordOptions{})

	require.Equal(t, []LeagueRecord{
		{Participant: "A", Period: 2, Value: 80},
		{Participant: "B", Period: 1, Value: 80},
		{Participant: "A", Period: 1, Value: 50},
	}, records.Best)

	require.Equal(t, []LeagueRecord{
		{Participant: "B", Period: 3, Value: 0},
		{Participant: "A", Period: 3, Value: 20},
		{Participant: "B", Period: 2, Value: 30},
	}, records.Worst)
}

func TestDeriveRecords_BenchWasteOnlyForPositivePoints(t *testing.T) {
	records := DeriveRecords(recordSeries(), RecordOptions{Limit: 10})

	require.Equal(t, []LeagueRecord{
		{Participant: "A", Period: 2, Value: 15},
		{Participant: "A", Period: 3, Value: 15},
		{Participant: "A", Period: 1, Value: 10},
		{Participant: "B", Period: 1, Value: 0},
	}, records.BenchWaste)
}

func TestDeriveRecords_ExcludePeriodOnlyAffectsWorst(t *testing.T) {
	records := DeriveRecords(recordSeries(), RecordOptions{ExcludePeriod: 3})

	for _, record := range records.Worst {
		require.NotEqual(t, 3, record.Period)
	}
	require.Equal(t, LeagueRecord{Participant: "B", Period: 2, Value: 30}, records.Worst[0])
	require.Equal(t, 3, records.BenchWaste[1].Period)
}

func TestDeriveRecords_Empty(t *testing.T) {
	records := DeriveRecords(NewSeriesMap(), RecordOptions{})
	require.Empty(t, records.Best)
	require.NotNil(t, records.Best)
	require.Empty(t, records.Worst)
	require.Empty(t, records.BenchWaste)
}

func TestBenchWastePercent_Rounding(t *testing.T) {
	tests := []struct {
		name   string
		entry  PeriodEntry
		want   float64
		wantOK bool
	}{
		{name: "one decimal", entry: PeriodEntry{Points: 3, PointsOnBench: intPtr(1)}, want: 33.3, wantOK: true},
		{name: "rounds up", entry: PeriodEntry{Points: 3, PointsOnBench: intPtr(2)}, want: 66.7, wantOK: true},
		{name: "zero points", entry: PeriodEntry{Points: 0, PointsOnBench: intPtr(4)}},
		{name: "negative points", entry: PeriodEntry{Points: -4, PointsOnBench: intPtr(4)}},
		{name: "bench missing", entry: PeriodEntry{Points: 40}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := BenchWastePercent(tc.entry)
			require.Equal(t, tc.wantOK, ok)
			require.Equal(t, tc.want, got)
		})
	}
}
