package resilience

import "time"

type CircuitBreakerConfig struct {
	Enabled          bool
	FailureThreshold int
	OpenTimeout      time.Duration
	HalfOpenMaxReq   int
}

func DefaultCircuitBreakerConfig() CircuitBreakerConfig {
	return CircuitBreakerConfig{
		Enabled:          false,
		FailureThreshold: 5,
		OpenTimeout:      15 * time.Second,
		HalfOpenMaxReq:   2,
	}
}

func NormalizeCircuitBreakerConfig(cfg CircuitBreakerConfig) CircuitBreakerConfig {
	defaults := DefaultCircuitBreakerConfig()
	if cfg.FailureThreshold < 1 {
		cfg.FailureThreshold = defaults.FailureThreshold
	}
	if cfg.OpenTimeout <= 0 {
		cfg.OpenTimeout = defaults.OpenTimeout
	}
	if cfg.HalfOpenMaxReq < 1 {
		cfg.HalfOpenMaxReq = defaults.HalfOpenMaxReq
	}
	return cfg
}

// LimiterConfig bounds upstream fan-out. Each dispatch waits a random delay in
// [MinDelay, MaxDelay] to smooth bursts against the upstream rate limiter.
type LimiterConfig struct {
	Workers  int
	MinDelay time.Duration
	MaxDelay time.Duration
}

func DefaultLimiterConfig() LimiterConfig {
	return LimiterConfig{
		Workers:  2,
		MinDelay: 200 * time.Millisecond,
		MaxDelay: 600 * time.Millisecond,
	}
}

func NormalizeLimiterConfig(cfg LimiterConfig) LimiterConfig {
	if cfg.Workers < 1 {
		cfg.Workers = DefaultLimiterConfig().Workers
	}
	if cfg.MinDelay < 0 {
		cfg.MinDelay = 0
	}
	if cfg.MaxDelay < cfg.MinDelay {
		cfg.MaxDelay = cfg.MinDelay
	}
	return cfg
}
