package usecase

import (
	"context"
	"fmt"

	"github.com/riskibarqy/fantasy-league-snapshot/internal/domain/leaguehistory"
	"github.com/riskibarqy/fantasy-league-snapshot/internal/platform/logging"
	"github.com/riskibarqy/fantasy-league-snapshot/internal/platform/resilience"
)

// LiveOverrideEngine replaces the latest period's provisional scores with
// scores computed from live player data while that period is in progress.
type LiveOverrideEngine struct {
	provider leaguehistory.Provider
	limiter  *resilience.Limiter
	logger   *logging.Logger
	recorder SnapshotRecorder
}

func NewLiveOverrideEngine(
	provider leaguehistory.Provider,
	limiter *resilience.Limiter,
	logger *logging.Logger,
	recorder SnapshotRecorder,
) *LiveOverrideEngine {
	if logger == nil {
		logger = logging.Default()
	}
	if limiter == nil {
		limiter = resilience.NewLimiter(resilience.DefaultLimiterConfig())
	}

	return &LiveOverrideEngine{
		provider: provider,
		limiter:  limiter,
		logger:   logger,
		recorder: recorderOrNop(recorder),
	}
}

type liveScore struct {
	points    int
	fallbacks int
}

// Apply returns a copy of series with the latest period overridden. The input
// is never modified. When the live resource is unavailable or shows the period
// has not started, the copy equals the input.
func (e *LiveOverrideEngine) Apply(
	ctx context.Context,
	roster []leaguehistory.Participant,
	series *leaguehistory.SeriesMap,
) (*leaguehistory.SeriesMap, leaguehistory.LiveOverrideResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LiveOverrideEngine.Apply")
	defer span.End()

	out := series.Clone()
	result := leaguehistory.LiveOverrideResult{
		Applied: []string{},
		Skipped: []string{},
	}

	latest := series.LatestPeriod()
	if latest <= 0 {
		return out, result, nil
	}
	result.Period = latest

	snapshot, err := e.provider.FetchLive(ctx, latest)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return out, result, fmt.Errorf("fetch live event=%d: %w", latest, ctxErr)
		}
		e.logger.WarnContext(ctx, "live snapshot unavailable, keeping provisional scores", "event", latest, "error", err)
		e.recorder.IncLiveOverride(liveResultUnavailable)
		return out, result, nil
	}
	if !leaguehistory.IsLive(snapshot) {
		e.logger.DebugContext(ctx, "latest event not live", "event", latest)
		e.recorder.IncLiveOverride(liveResultNotLive)
		return out, result, nil
	}
	result.Live = true

	targets := make([]leaguehistory.Participant, 0, len(roster))
	for _, participant := range roster {
		if series.Has(participant.Name) {
			targets = append(targets, participant)
		}
	}

	scores := make([]liveScore, len(targets))
	errs := e.limiter.Run(ctx, len(targets), func(ctx context.Context, i int) error {
		picks, err := e.provider.FetchPicks(ctx, targets[i].EntryID, latest)
		if err != nil {
			return err
		}
		points, fallbacks := leaguehistory.ScorePicks(snapshot, picks)
		scores[i] = liveScore{points: points, fallbacks: fallbacks}
		return nil
	})

	for i, participant := range targets {
		if errs[i] != nil {
			e.logger.WarnContext(ctx, "skip live override for participant",
				"participant", participant.Name,
				"event", latest,
				"error", errs[i],
			)
			e.recorder.IncLiveOverride(liveResultSkipped)
			result.Skipped = append(result.Skipped, participant.Name)
			continue
		}

		score := scores[i]
		if score.fallbacks > 0 {
			e.logger.DebugContext(ctx, "live points resolved by position",
				"participant", participant.Name,
				"event", latest,
				"lookups", score.fallbacks,
			)
			e.recorder.AddLiveFallbacks(score.fallbacks)
			result.FallbackLookups += score.fallbacks
		}

		overrideLatest(out, participant.Name, latest, score.points)
		e.recorder.IncLiveOverride(liveResultApplied)
		result.Applied = append(result.Applied, participant.Name)
	}

	if err := ctx.Err(); err != nil {
		return out, result, fmt.Errorf("live override event=%d: %w", latest, err)
	}
	return out, result, nil
}

// overrideLatest sets name's entry for latest so that its total equals the
// previous period's total plus live points. Upstream rank and value fields are
// kept when the entry exists and left nil when it is appended.
func overrideLatest(series *leaguehistory.SeriesMap, name string, latest, livePoints int) {
	prevTotal := 0
	if prev, ok := series.Lookup(name, latest-1); ok {
		prevTotal = prev.TotalPoints
	}

	entry, ok := series.Lookup(name, latest)
	if !ok {
		entry = leaguehistory.PeriodEntry{Period: latest}
	}
	entry.Points = livePoints
	entry.TotalPoints = prevTotal + livePoints
	series.UpsertPeriod(name, entry)
}
