package usecase

import (
	"context"
	"fmt"

	"github.com/riskibarqy/fantasy-league-snapshot/internal/domain/leaguehistory"
	"github.com/riskibarqy/fantasy-league-snapshot/internal/platform/logging"
	"github.com/riskibarqy/fantasy-league-snapshot/internal/platform/resilience"
)

type CollectResult struct {
	Series        *leaguehistory.SeriesMap
	Chips         map[string][]leaguehistory.ChipUsage
	ChipPeriods   map[string][]int
	ChipMeta      map[string]map[int][]string
	ChipsByPeriod map[int][]string
	// Failures lists participants whose history could not be fetched, in roster order.
	Failures []string
}

// HistoryCollector fetches every participant's history through the limiter.
// One participant failing never affects the others.
type HistoryCollector struct {
	provider leaguehistory.Provider
	limiter  *resilience.Limiter
	logger   *logging.Logger
	recorder SnapshotRecorder
}

func NewHistoryCollector(
	provider leaguehistory.Provider,
	limiter *resilience.Limiter,
	logger *logging.Logger,
	recorder SnapshotRecorder,
) *HistoryCollector {
	if logger == nil {
		logger = logging.Default()
	}
	if limiter == nil {
		limiter = resilience.NewLimiter(resilience.DefaultLimiterConfig())
	}

	return &HistoryCollector{
		provider: provider,
		limiter:  limiter,
		logger:   logger,
		recorder: recorderOrNop(recorder),
	}
}

func (c *HistoryCollector) Collect(ctx context.Context, roster []leaguehistory.Participant) CollectResult {
	ctx, span := startUsecaseSpan(ctx, "usecase.HistoryCollector.Collect")
	defer span.End()

	histories := make([]leaguehistory.History, len(roster))
	errs := c.limiter.Run(ctx, len(roster), func(ctx context.Context, i int) error {
		history, err := c.provider.FetchHistory(ctx, roster[i].EntryID)
		if err != nil {
			return fmt.Errorf("fetch history participant=%s: %w", roster[i].Name, err)
		}
		histories[i] = history
		return nil
	})

	result := CollectResult{
		Series:        leaguehistory.NewSeriesMap(),
		Chips:         make(map[string][]leaguehistory.ChipUsage, len(roster)),
		ChipPeriods:   make(map[string][]int, len(roster)),
		ChipMeta:      make(map[string]map[int][]string, len(roster)),
		ChipsByPeriod: make(map[int][]string),
		Failures:      []string{},
	}

	for i, participant := range roster {
		if errs[i] != nil {
			c.logger.WarnContext(ctx, "participant history unavailable",
				"participant", participant.Name,
				"entry_id", participant.EntryID,
				"error", errs[i],
			)
			c.recorder.IncParticipantFailure(participant.Name)
			result.Failures = append(result.Failures, participant.Name)
			continue
		}

		history := histories[i]
		result.Series.Set(participant.Name, history.Entries)

		chips := history.Chips
		if chips == nil {
			chips = []leaguehistory.ChipUsage{}
		}
		result.Chips[participant.Name] = chips
		result.ChipPeriods[participant.Name] = leaguehistory.ChipPeriods(chips)
		result.ChipMeta[participant.Name] = leaguehistory.ChipMeta(chips)
		for _, chip := range chips {
			result.ChipsByPeriod[chip.Period] = append(result.ChipsByPeriod[chip.Period], chip.Name)
		}
	}

	c.logger.DebugContext(ctx, "history collection finished",
		"participants", len(roster),
		"collected", result.Series.Len(),
		"failures", len(result.Failures),
	)
	return result
}
