package leaguehistory

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSeriesMap_KeepsInsertionOrder(t *testing.T) {
	series := NewSeriesMap()
	series.Set("Zed", nil)
	series.Set("Amy", []PeriodEntry{{Period: 1}})
	series.Set("Zed", []PeriodEntry{{Period: 4}})

	require.Equal(t, []string{"Zed", "Amy"}, series.Names())
	require.Equal(t, 4, series.LatestPeriod())
	require.Equal(t, []int{1, 4}, series.Periods())
}

func TestSeriesMap_CloneIsDeep(t *testing.T) {
	series := NewSeriesMap()
	series.Set("A", []PeriodEntry{{Period: 1, Points: 10, Rank: intPtr(3)}})

	clone := series.Clone()
	clone.UpsertPeriod("A", PeriodEntry{Period: 1, Points: 99})
	entry, ok := series.Lookup("A", 1)
	require.True(t, ok)
	require.Equal(t, 10, entry.Points)

	rankClone := series.Clone()
	*rankClone.Entries("A")[0].Rank = 0
	require.Equal(t, 3, *series.Entries("A")[0].Rank)
}

func TestSeriesMap_UpsertAppendsSorted(t *testing.T) {
	series := NewSeriesMap()
	series.Set("A", []PeriodEntry{{Period: 3}, {Period: 1}})

	appended := series.UpsertPeriod("A", PeriodEntry{Period: 2, Points: 5})
	require.True(t, appended)
	entries := series.Entries("A")
	require.Equal(t, []int{1, 2, 3}, []int{entries[0].Period, entries[1].Period, entries[2].Period})

	appended = series.UpsertPeriod("A", PeriodEntry{Period: 2, Points: 7})
	require.False(t, appended)
	require.Len(t, series.Entries("A"), 3)
	entry, _ := series.Lookup("A", 2)
	require.Equal(t, 7, entry.Points)
}

func TestDedupePeriods_LastWins(t *testing.T) {
	out := DedupePeriods([]PeriodEntry{
		{Period: 1, Points: 10},
		{Period: 2, Points: 20},
		{Period: 1, Points: 11},
	})
	require.Equal(t, []PeriodEntry{{Period: 2, Points: 20}, {Period: 1, Points: 11}}, out)
}

func TestChipIndexes(t *testing.T) {
	chips := []ChipUsage{{Name: "wildcard", Period: 3}, {Name: "bboost", Period: 5}, {Name: "freehit", Period: 3}}
	require.Equal(t, []int{3, 5, 3}, ChipPeriods(chips))
	require.Equal(t, map[int][]string{3: {"wildcard", "freehit"}, 5: {"bboost"}}, ChipMeta(chips))
}
