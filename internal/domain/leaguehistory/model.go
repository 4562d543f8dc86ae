package leaguehistory

import "time"

const (
	DefaultRecordLimit = 3
	MaxRecordLimit     = 20
)

// Participant is one tracked league member. EntryID addresses upstream resources.
type Participant struct {
	Name    string `json:"name" validate:"required,ne=event"`
	EntryID string `json:"entry_id" validate:"required"`
}

// PeriodEntry is one participant's result for one period (gameweek). Pointer
// fields are nil when upstream omitted them or sent a non-numeric value.
type PeriodEntry struct {
	Period        int      `json:"event"`
	Points        int      `json:"points"`
	TotalPoints   int      `json:"total_points"`
	Rank          *int     `json:"rank"`
	OverallRank   *int     `json:"overall_rank"`
	Value         *float64 `json:"value"`
	PointsOnBench *int     `json:"points_on_bench"`
}

type ChipUsage struct {
	Name     string    `json:"name"`
	Period   int       `json:"event"`
	PlayedAt time.Time `json:"time"`
}

// History is one participant's upstream history resource.
type History struct {
	Entries []PeriodEntry
	Chips   []ChipUsage
}

type LeagueRecord struct {
	Participant string  `json:"participant"`
	Period      int     `json:"event"`
	Value       float64 `json:"value"`
}

type ParticipantWins struct {
	Participant string `json:"participant"`
	Wins        int    `json:"wins"`
}

type Analytics struct {
	PeriodWins       []ParticipantWins `json:"period_wins"`
	DiffVsLeaderRows []MergedRow       `json:"diff_vs_leader_rows"`
	VsAverageRows    []MergedRow       `json:"vs_average_rows"`
}

// LiveOverrideResult describes what the live override step did for the latest period.
type LiveOverrideResult struct {
	Period          int      `json:"event"`
	Live            bool     `json:"live"`
	Applied         []string `json:"applied"`
	Skipped         []string `json:"skipped"`
	FallbackLookups int      `json:"fallback_lookups"`
	Degraded        bool     `json:"degraded"`
}

// Snapshot is the aggregate handed to presentation consumers.
type Snapshot struct {
	BuildID                  string                      `json:"build_id"`
	GeneratedAt              time.Time                   `json:"generated_at"`
	CumulativeRows           []MergedRow                 `json:"cumulative_rows"`
	OverallRankRows          []MergedRow                 `json:"overall_rank_rows"`
	LeagueRankRows           []MergedRow                 `json:"league_rank_rows"`
	SeriesKeys               []string                    `json:"series_keys"`
	SeriesByParticipant      map[string][]PeriodEntry    `json:"series_by_participant"`
	ChipsByParticipant       map[string][]ChipUsage      `json:"chips_by_participant"`
	ChipPeriodsByParticipant map[string][]int            `json:"chip_periods_by_participant"`
	ChipsMetaByParticipant   map[string]map[int][]string `json:"chips_meta_by_participant"`
	ChipsByPeriod            map[int][]string            `json:"chips_by_period"`
	CodesByParticipant       map[string]string           `json:"codes_by_participant"`
	BestPeriods              []LeagueRecord              `json:"best_periods"`
	WorstPeriods             []LeagueRecord              `json:"worst_periods"`
	BenchWaste               []LeagueRecord              `json:"bench_waste"`
	Failures                 []string                    `json:"failures"`
	LatestPeriod             int                         `json:"latest_event"`
	WorstExcludedPeriod      int                         `json:"worst_excluded_event,omitempty"`
	Live                     LiveOverrideResult          `json:"live"`
	Analytics                Analytics                   `json:"analytics"`
}
