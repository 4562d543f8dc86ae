package app

import (
	"fmt"
	"net/http"

	"github.com/riskibarqy/fantasy-league-snapshot/external/fpl"
	"github.com/riskibarqy/fantasy-league-snapshot/internal/config"
	"github.com/riskibarqy/fantasy-league-snapshot/internal/interfaces/httpapi"
	"github.com/riskibarqy/fantasy-league-snapshot/internal/platform/fetch"
	idgen "github.com/riskibarqy/fantasy-league-snapshot/internal/platform/id"
	"github.com/riskibarqy/fantasy-league-snapshot/internal/platform/logging"
	"github.com/riskibarqy/fantasy-league-snapshot/internal/platform/metrics"
	"github.com/riskibarqy/fantasy-league-snapshot/internal/platform/resilience"
	"github.com/riskibarqy/fantasy-league-snapshot/internal/usecase"
)

// Services is the dependency graph shared by the HTTP server and the CLI.
type Services struct {
	Metrics   *metrics.Manager
	Fetcher   *fetch.Client
	Provider  *fpl.Client
	Snapshots *usecase.SnapshotService
}

func NewServices(cfg config.Config, logger *logging.Logger) *Services {
	if logger == nil {
		logger = logging.Default()
	}

	var (
		manager          *metrics.Manager
		upstreamRecorder fetch.Recorder
		snapshotRecorder usecase.SnapshotRecorder
	)
	if cfg.MetricsEnabled {
		manager = metrics.NewManager()
		upstreamRecorder = manager
		snapshotRecorder = manager
	}

	fetcher := fetch.NewClient(fetch.ClientConfig{
		Timeout:      cfg.FPLTimeout,
		UserAgent:    cfg.FPLUserAgent,
		RetryJitter:  cfg.FPLRetryJitter,
		MaxBodyBytes: fetch.DefaultClientConfig().MaxBodyBytes,
		Logger:       logger.Named("fetch"),
		Recorder:     upstreamRecorder,
		CircuitBreaker: resilience.CircuitBreakerConfig{
			Enabled:          cfg.FPLCircuitEnabled,
			FailureThreshold: cfg.FPLCircuitFailureCount,
			OpenTimeout:      cfg.FPLCircuitOpenTimeout,
			HalfOpenMaxReq:   cfg.FPLCircuitHalfOpenMaxReq,
		},
	})

	provider := fpl.NewClient(fetcher, fpl.ClientConfig{
		BaseURL:        cfg.FPLBaseURL,
		MaxRetries:     cfg.FPLMaxRetries,
		LiveMaxRetries: cfg.FPLLiveMaxRetries,
		RetryBackoff:   cfg.FPLRetryBackoff,
		Logger:         logger.Named("fpl"),
	})

	limiter := resilience.NewLimiter(resilience.LimiterConfig{
		Workers:  cfg.FPLWorkers,
		MinDelay: cfg.FPLDispatchMinDelay,
		MaxDelay: cfg.FPLDispatchMaxDelay,
	})

	snapshots := usecase.NewSnapshotService(
		provider,
		limiter,
		idgen.NewUUIDGenerator(),
		usecase.SnapshotConfig{
			Roster:      cfg.Participants,
			Timeout:     cfg.SnapshotTimeout,
			RecordLimit: cfg.SnapshotRecordLimit,
		},
		logger.Named("snapshot"),
		snapshotRecorder,
	)

	return &Services{
		Metrics:   manager,
		Fetcher:   fetcher,
		Provider:  provider,
		Snapshots: snapshots,
	}
}

func NewHTTPServer(cfg config.Config, logger *logging.Logger) (*http.Server, error) {
	if logger == nil {
		logger = logging.Default()
	}
	if cfg.HTTPAddr == "" {
		return nil, fmt.Errorf("http server addr cannot be empty")
	}

	services := NewServices(cfg, logger)

	routerCfg := httpapi.RouterConfig{CORSAllowedOrigins: cfg.CORSAllowedOrigins}
	if services.Metrics != nil {
		routerCfg.MetricsHandler = services.Metrics.Handler()
		routerCfg.Recorder = services.Metrics
	}

	handler := httpapi.NewHandler(services.Snapshots, logger.Named("httpapi"))
	router := httpapi.NewRouter(handler, logger, routerCfg)

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	return server, nil
}
