package leaguehistory

import (
	"math"
	"sort"
)

type RecordOptions struct {
	// Limit caps each leaderboard; values <= 0 mean DefaultRecordLimit.
	Limit int
	// ExcludePeriod is left out of the worst-period leaderboard when non-zero.
	ExcludePeriod int
}

type Records struct {
	Best       []LeagueRecord
	Worst      []LeagueRecord
	BenchWaste []LeagueRecord
}

// DeriveRecords builds the best, worst and bench-waste leaderboards. Ties keep
// roster order then upstream entry order.
func DeriveRecords(series *SeriesMap, opts RecordOptions) Records {
	limit := opts.Limit
	if limit <= 0 {
		limit = DefaultRecordLimit
	}

	var scores, worstPool, bench []LeagueRecord
	for _, name := range series.Names() {
		for _, entry := range series.Entries(name) {
			record := LeagueRecord{Participant: name, Period: entry.Period, Value: float64(entry.Points)}
			scores = append(scores, record)
			if opts.ExcludePeriod == 0 || entry.Period != opts.ExcludePeriod {
				worstPool = append(worstPool, record)
			}

			if pct, ok := BenchWastePercent(entry); ok {
				bench = append(bench, LeagueRecord{Participant: name, Period: entry.Period, Value: pct})
			}
		}
	}

	best := sortedRecords(scores, true)
	worst := sortedRecords(worstPool, false)
	benchWaste := sortedRecords(bench, true)

	return Records{
		Best:       truncate(best, limit),
		Worst:      truncate(worst, limit),
		BenchWaste: truncate(benchWaste, limit),
	}
}

// BenchWastePercent returns bench points as a share of period points rounded
// to one decimal. It is defined only for periods with positive points.
func BenchWastePercent(entry PeriodEntry) (float64, bool) {
	if entry.Points <= 0 || entry.PointsOnBench == nil {
		return 0, false
	}
	ratio := float64(*entry.PointsOnBench) / float64(entry.Points)
	return math.Round(ratio*1000) / 10, true
}

func sortedRecords(records []LeagueRecord, descending bool) []LeagueRecord {
	out := make([]LeagueRecord, len(records))
	copy(out, records)
	sort.SliceStable(out, func(i, j int) bool {
		if descending {
			return out[i].Value > out[j].Value
		}
		return out[i].Value < out[j].Value
	})
	return out
}

func truncate(records []LeagueRecord, limit int) []LeagueRecord {
	if len(records) > limit {
		records = records[:limit]
	}
	if records == nil {
		return []LeagueRecord{}
	}
	return records
}
