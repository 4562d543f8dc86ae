package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/riskibarqy/fantasy-league-snapshot/internal/domain/leaguehistory"
	"github.com/riskibarqy/fantasy-league-snapshot/internal/platform/fetch"
	"github.com/riskibarqy/fantasy-league-snapshot/internal/platform/id"
	"github.com/riskibarqy/fantasy-league-snapshot/internal/platform/logging"
	"github.com/riskibarqy/fantasy-league-snapshot/internal/platform/resilience"
	"github.com/sourcegraph/conc/panics"
)

type SnapshotConfig struct {
	Roster      []leaguehistory.Participant
	Timeout     time.Duration
	RecordLimit int
}

type BuildInput struct {
	// RecordLimit overrides the configured leaderboard length when > 0.
	RecordLimit int
}

// SnapshotService runs one aggregation pass per Build call: collect histories,
// override the live period, then derive records, merged rows and analytics.
type SnapshotService struct {
	provider  leaguehistory.Provider
	collector *HistoryCollector
	override  *LiveOverrideEngine
	ids       id.Generator
	cfg       SnapshotConfig
	validator *validator.Validate
	logger    *logging.Logger
	recorder  SnapshotRecorder
	now       func() time.Time
}

func NewSnapshotService(
	provider leaguehistory.Provider,
	limiter *resilience.Limiter,
	ids id.Generator,
	cfg SnapshotConfig,
	logger *logging.Logger,
	recorder SnapshotRecorder,
) *SnapshotService {
	if logger == nil {
		logger = logging.Default()
	}
	if ids == nil {
		ids = id.NewUUIDGenerator()
	}
	if limiter == nil {
		limiter = resilience.NewLimiter(resilience.DefaultLimiterConfig())
	}
	recorder = recorderOrNop(recorder)

	return &SnapshotService{
		provider:  provider,
		collector: NewHistoryCollector(provider, limiter, logger, recorder),
		override:  NewLiveOverrideEngine(provider, limiter, logger, recorder),
		ids:       ids,
		cfg:       cfg,
		validator: validator.New(),
		logger:    logger,
		recorder:  recorder,
		now:       time.Now,
	}
}

// Roster returns the configured participants.
func (s *SnapshotService) Roster() []leaguehistory.Participant {
	out := make([]leaguehistory.Participant, len(s.cfg.Roster))
	copy(out, s.cfg.Roster)
	return out
}

// Build assembles a snapshot. Upstream failures degrade the payload instead of
// failing it; only an invalid roster or input is returned as an error.
func (s *SnapshotService) Build(ctx context.Context, input BuildInput) (leaguehistory.Snapshot, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SnapshotService.Build")
	defer span.End()

	if s.provider == nil {
		return leaguehistory.Snapshot{}, fmt.Errorf("%w: league history provider is not configured", ErrDependencyUnavailable)
	}
	if input.RecordLimit < 0 || input.RecordLimit > leaguehistory.MaxRecordLimit {
		return leaguehistory.Snapshot{}, fmt.Errorf("%w: record limit must be between 1 and %d", ErrInvalidInput, leaguehistory.MaxRecordLimit)
	}
	roster, err := normalizeRoster(s.validator, s.cfg.Roster)
	if err != nil {
		return leaguehistory.Snapshot{}, err
	}

	started := time.Now()
	defer func() {
		s.recorder.ObserveAggregation(time.Since(started))
	}()

	if s.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.cfg.Timeout)
		defer cancel()
	}
	session := fetch.NewSession()
	ctx = fetch.WithSession(ctx, session)

	collected := s.collector.Collect(ctx, roster)
	series, live := s.applyLiveOverride(ctx, roster, collected.Series)

	latest := series.LatestPeriod()
	excluded := s.worstExclusion(ctx, latest)

	limit := s.cfg.RecordLimit
	if input.RecordLimit > 0 {
		limit = input.RecordLimit
	}
	records := leaguehistory.DeriveRecords(series, leaguehistory.RecordOptions{
		Limit:         limit,
		ExcludePeriod: excluded,
	})

	buildID, err := s.ids.NewID()
	if err != nil {
		s.logger.WarnContext(ctx, "generate snapshot build id failed", "error", err)
	}

	codes := make(map[string]string, len(roster))
	for _, participant := range roster {
		codes[participant.Name] = participant.EntryID
	}

	snapshot := leaguehistory.Snapshot{
		BuildID:                  buildID,
		GeneratedAt:              s.now().UTC(),
		CumulativeRows:           leaguehistory.MergeCumulative(series),
		OverallRankRows:          leaguehistory.MergeOverallRank(series),
		LeagueRankRows:           leaguehistory.MergeLeagueRank(series),
		SeriesKeys:               series.Names(),
		SeriesByParticipant:      series.AsMap(),
		ChipsByParticipant:       collected.Chips,
		ChipPeriodsByParticipant: collected.ChipPeriods,
		ChipsMetaByParticipant:   collected.ChipMeta,
		ChipsByPeriod:            collected.ChipsByPeriod,
		CodesByParticipant:       codes,
		BestPeriods:              records.Best,
		WorstPeriods:             records.Worst,
		BenchWaste:               records.BenchWaste,
		Failures:                 collected.Failures,
		LatestPeriod:             latest,
		WorstExcludedPeriod:      excluded,
		Live:                     live,
		Analytics:                leaguehistory.DeriveAnalytics(series),
	}
	if snapshot.SeriesKeys == nil {
		snapshot.SeriesKeys = []string{}
	}

	s.logger.InfoContext(ctx, "league snapshot built",
		"build_id", buildID,
		"participants", len(roster),
		"failures", len(collected.Failures),
		"latest_event", latest,
		"live", live.Live,
		"upstream_requests", session.Requests(),
		"upstream_shared", session.Shared(),
		"duration", time.Since(started),
	)
	return snapshot, nil
}

// applyLiveOverride never fails the build: errors and panics keep the
// collected series and mark the result degraded.
func (s *SnapshotService) applyLiveOverride(
	ctx context.Context,
	roster []leaguehistory.Participant,
	series *leaguehistory.SeriesMap,
) (*leaguehistory.SeriesMap, leaguehistory.LiveOverrideResult) {
	var (
		out    *leaguehistory.SeriesMap
		result leaguehistory.LiveOverrideResult
		err    error
	)

	var catcher panics.Catcher
	catcher.Try(func() {
		out, result, err = s.override.Apply(ctx, roster, series)
	})
	if recovered := catcher.Recovered(); recovered != nil {
		err = recovered.AsError()
	}

	if err != nil {
		s.logger.WarnContext(ctx, "live override failed, keeping collected data", "error", err)
		s.recorder.IncLiveOverride(liveResultFailed)
		return series, leaguehistory.LiveOverrideResult{
			Period:   series.LatestPeriod(),
			Applied:  []string{},
			Skipped:  []string{},
			Degraded: true,
		}
	}
	return out, result
}

// worstExclusion returns latest when any of its fixtures is unfinished. A
// failed lookup excludes nothing.
func (s *SnapshotService) worstExclusion(ctx context.Context, latest int) int {
	if latest <= 0 {
		return 0
	}

	var (
		fixtures []leaguehistory.Fixture
		err      error
	)
	var catcher panics.Catcher
	catcher.Try(func() {
		fixtures, err = s.provider.FetchFixtures(ctx, latest)
	})
	if recovered := catcher.Recovered(); recovered != nil {
		err = recovered.AsError()
	}
	if err != nil {
		s.logger.WarnContext(ctx, "fixture completion check failed, worst periods include latest event", "event", latest, "error", err)
		return 0
	}

	if leaguehistory.HasUnfinished(fixtures) {
		return latest
	}
	return 0
}
