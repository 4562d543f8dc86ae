package leaguehistory

import (
	"math"
	"sort"
)

func DeriveAnalytics(series *SeriesMap) Analytics {
	return Analytics{
		PeriodWins:       PeriodWins(series),
		DiffVsLeaderRows: DiffVsLeaderRows(series),
		VsAverageRows:    VsAverageRows(series),
	}
}

// PeriodWins counts periods in which each participant scored the most. Period
// points are derived from totals as total(n) - total(n-1), with a missing
// previous total counting as 0. Every tied participant gets the win.
func PeriodWins(series *SeriesMap) []ParticipantWins {
	names := series.Names()
	wins := make(map[string]int, len(names))

	for _, period := range series.Periods() {
		points := make(map[string]int, len(names))
		best := math.MinInt
		for _, name := range names {
			current, ok := series.Lookup(name, period)
			if !ok {
				continue
			}
			prevTotal := 0
			if prev, ok := series.Lookup(name, period-1); ok {
				prevTotal = prev.TotalPoints
			}
			pts := current.TotalPoints - prevTotal
			points[name] = pts
			best = max(best, pts)
		}
		for name, pts := range points {
			if pts == best {
				wins[name]++
			}
		}
	}

	out := make([]ParticipantWins, 0, len(names))
	for _, name := range names {
		out = append(out, ParticipantWins{Participant: name, Wins: wins[name]})
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Wins != out[j].Wins {
			return out[i].Wins > out[j].Wins
		}
		return out[i].Participant < out[j].Participant
	})
	return out
}

// DiffVsLeaderRows emits each participant's gap to the period's highest total.
func DiffVsLeaderRows(series *SeriesMap) []MergedRow {
	return relativeRows(series, func(totals []float64) float64 {
		leader := math.Inf(-1)
		for _, total := range totals {
			leader = math.Max(leader, total)
		}
		return leader
	})
}

// VsAverageRows emits each participant's distance from the period's mean total.
func VsAverageRows(series *SeriesMap) []MergedRow {
	return relativeRows(series, func(totals []float64) float64 {
		if len(totals) == 0 {
			return math.NaN()
		}
		sum := 0.0
		for _, total := range totals {
			sum += total
		}
		return sum / float64(len(totals))
	})
}

func relativeRows(series *SeriesMap, baseline func(totals []float64) float64) []MergedRow {
	cumulative := MergeCumulative(series)
	rows := make([]MergedRow, 0, len(cumulative))
	for _, source := range cumulative {
		keys := source.Keys()
		totals := make([]float64, 0, len(keys))
		for _, key := range keys {
			if v := source.Values[key]; !math.IsNaN(v) {
				totals = append(totals, v)
			}
		}
		base := baseline(totals)

		row := NewMergedRow(source.Period, keys)
		for _, key := range keys {
			v := source.Values[key]
			if math.IsNaN(v) || math.IsNaN(base) || math.IsInf(base, 0) {
				continue
			}
			row.Values[key] = v - base
		}
		rows = append(rows, row)
	}
	return rows
}
