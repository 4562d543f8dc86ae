package leaguehistory

import (
	"math"
	"sort"
)

// MergedRow holds one value per participant for a period. math.NaN marks
// "no data" so consumers can tell it apart from a real zero.
type MergedRow struct {
	Period int
	Values map[string]float64

	keys []string
}

func NewMergedRow(period int, keys []string) MergedRow {
	row := MergedRow{
		Period: period,
		Values: make(map[string]float64, len(keys)),
		keys:   keys,
	}
	for _, key := range keys {
		row.Values[key] = math.NaN()
	}
	return row
}

// Value returns the participant's value, NaN when absent.
func (r MergedRow) Value(name string) float64 {
	v, ok := r.Values[name]
	if !ok {
		return math.NaN()
	}
	return v
}

// Keys returns participant keys in output order.
func (r MergedRow) Keys() []string {
	if len(r.keys) == len(r.Values) {
		return r.keys
	}
	keys := make([]string, 0, len(r.Values))
	for key := range r.Values {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// MergeCumulative emits each participant's total points per period.
func MergeCumulative(series *SeriesMap) []MergedRow {
	return mergeBy(series, func(entry PeriodEntry) float64 {
		return float64(entry.TotalPoints)
	})
}

// MergeOverallRank passes through the upstream overall rank.
func MergeOverallRank(series *SeriesMap) []MergedRow {
	return mergeBy(series, func(entry PeriodEntry) float64 {
		if entry.OverallRank == nil {
			return math.NaN()
		}
		return float64(*entry.OverallRank)
	})
}

// MergeLeagueRank ranks participants by total points within each period using
// competition ranking (1,1,3). Participants without data for a period get NaN.
func MergeLeagueRank(series *SeriesMap) []MergedRow {
	names := series.Names()
	periods := series.Periods()
	rows := make([]MergedRow, 0, len(periods))

	type standing struct {
		name  string
		total int
	}

	for _, period := range periods {
		row := NewMergedRow(period, names)

		standings := make([]standing, 0, len(names))
		for _, name := range names {
			if entry, ok := series.Lookup(name, period); ok {
				standings = append(standings, standing{name: name, total: entry.TotalPoints})
			}
		}
		sort.SliceStable(standings, func(i, j int) bool {
			return standings[i].total > standings[j].total
		})

		place := 0
		for i, item := range standings {
			if i == 0 || item.total != standings[i-1].total {
				place = i + 1
			}
			row.Values[item.name] = float64(place)
		}
		rows = append(rows, row)
	}
	return rows
}

func mergeBy(series *SeriesMap, value func(PeriodEntry) float64) []MergedRow {
	names := series.Names()
	periods := series.Periods()
	rows := make([]MergedRow, 0, len(periods))
	for _, period := range periods {
		row := NewMergedRow(period, names)
		for _, name := range names {
			if entry, ok := series.Lookup(name, period); ok {
				row.Values[name] = value(entry)
			}
		}
		rows = append(rows, row)
	}
	return rows
}
