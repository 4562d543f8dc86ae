package fetch

import (
	"context"
	"fmt"
	"io"
	"math/rand/v2"
	"net/http"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/riskibarqy/fantasy-league-snapshot/internal/platform/logging"
	"github.com/riskibarqy/fantasy-league-snapshot/internal/platform/resilience"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

const (
	defaultMaxRetries   = 2
	defaultBaseBackoff  = 600 * time.Millisecond
	defaultRetryJitter  = 250 * time.Millisecond
	defaultTimeout      = 20 * time.Second
	defaultMaxBodyBytes = 6 << 20
)

// Options is the per-request retry policy. It is part of the dedup key, so two
// requests for the same URL with different policies are not collapsed.
type Options struct {
	Endpoint    string            `json:"endpoint,omitempty"`
	MaxRetries  int               `json:"max_retries"`
	BaseBackoff time.Duration     `json:"base_backoff"`
	Headers     map[string]string `json:"headers,omitempty"`
}

func DefaultOptions() Options {
	return Options{
		MaxRetries:  defaultMaxRetries,
		BaseBackoff: defaultBaseBackoff,
	}
}

// Recorder receives per-attempt instrumentation.
type Recorder interface {
	ObserveUpstream(endpoint, outcome string, d time.Duration)
	IncUpstreamRetry(endpoint string)
	IncDedupShared()
	SetCircuitOpen(name string, open bool)
}

type ClientConfig struct {
	HTTPClient     *http.Client
	Timeout        time.Duration
	UserAgent      string
	RetryJitter    time.Duration
	MaxBodyBytes   int64
	Logger         *logging.Logger
	Recorder       Recorder
	CircuitBreaker resilience.CircuitBreakerConfig
}

func DefaultClientConfig() ClientConfig {
	return ClientConfig{
		Timeout:        defaultTimeout,
		UserAgent:      "fantasy-league-snapshot/1.0",
		RetryJitter:    defaultRetryJitter,
		MaxBodyBytes:   defaultMaxBodyBytes,
		CircuitBreaker: resilience.DefaultCircuitBreakerConfig(),
	}
}

// Client performs GET requests that expect JSON, retrying with exponential
// backoff plus jitter.
type Client struct {
	httpClient     *http.Client
	userAgent      string
	retryJitter    time.Duration
	maxBodyBytes   int64
	logger         *logging.Logger
	recorder       Recorder
	breaker        *resilience.CircuitBreaker
	circuitEnabled bool
	flight         resilience.SingleFlight

	sleep  func(ctx context.Context, d time.Duration) error
	jitter func(max time.Duration) time.Duration
}

func NewClient(cfg ClientConfig) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{
			Timeout:   cfg.Timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		}
	}
	if httpClient.Timeout <= 0 {
		httpClient.Timeout = defaultTimeout
	}

	maxBodyBytes := cfg.MaxBodyBytes
	if maxBodyBytes <= 0 {
		maxBodyBytes = defaultMaxBodyBytes
	}

	recorder := cfg.Recorder
	if recorder == nil {
		recorder = nopRecorder{}
	}

	c := &Client{
		httpClient:     httpClient,
		userAgent:      strings.TrimSpace(cfg.UserAgent),
		retryJitter:    max(cfg.RetryJitter, 0),
		maxBodyBytes:   maxBodyBytes,
		logger:         logger,
		recorder:       recorder,
		circuitEnabled: cfg.CircuitBreaker.Enabled,
		sleep:          sleepContext,
		jitter:         randomJitter,
	}
	c.breaker = resilience.NewCircuitBreaker("upstream", cfg.CircuitBreaker, func(name string, from, to resilience.CircuitState) {
		logger.Warn("upstream circuit breaker state changed", "name", name, "from", from, "to", to)
		recorder.SetCircuitOpen(name, to != resilience.CircuitStateClosed)
	})
	return c
}

// GetJSON fetches rawURL and decodes the body into target.
func (c *Client) GetJSON(ctx context.Context, rawURL string, opts Options, target any) error {
	raw, err := c.Get(ctx, rawURL, opts)
	if err != nil {
		return err
	}
	if err := sonic.Unmarshal(raw, target); err != nil {
		return crerr.Wrapf(err, "decode %s", rawURL)
	}
	return nil
}

// Get returns the raw JSON body of rawURL. Identical concurrent requests in the
// same Session (or on this client when no session is attached) share one
// upstream call; callers must treat the returned bytes as read-only.
func (c *Client) Get(ctx context.Context, rawURL string, opts Options) ([]byte, error) {
	group := &c.flight
	session := SessionFrom(ctx)
	if session != nil {
		group = &session.flight
		session.requests.Add(1)
	}

	out, err, shared := group.Do(requestKey(rawURL, opts), func() (any, error) {
		return c.execute(ctx, rawURL, opts)
	})
	if shared {
		c.recorder.IncDedupShared()
		if session != nil {
			session.shared.Add(1)
		}
	}
	if err != nil {
		return nil, err
	}

	raw, ok := out.([]byte)
	if !ok {
		return nil, fmt.Errorf("unexpected response payload type %T", out)
	}
	return raw, nil
}

func (c *Client) execute(ctx context.Context, rawURL string, opts Options) ([]byte, error) {
	if c.circuitEnabled {
		if err := c.breaker.Allow(); err != nil {
			return nil, crerr.Wrapf(err, "request %s", rawURL)
		}
	}

	raw, err := c.executeWithRetry(ctx, rawURL, opts)
	if c.circuitEnabled {
		if tripsBreaker(err) {
			c.breaker.RecordFailure()
		} else {
			c.breaker.RecordSuccess()
		}
	}
	return raw, err
}

// tripsBreaker reports whether err says the upstream itself is unhealthy. A
// 4xx other than 429 is a per-resource answer from a healthy upstream.
func tripsBreaker(err error) bool {
	if err == nil || !crerr.Is(err, ErrTransient) {
		return false
	}
	var statusErr *StatusError
	if crerr.As(err, &statusErr) {
		return statusErr.StatusCode >= http.StatusInternalServerError ||
			statusErr.StatusCode == http.StatusTooManyRequests
	}
	return true
}

func (c *Client) executeWithRetry(ctx context.Context, rawURL string, opts Options) ([]byte, error) {
	retries := max(opts.MaxRetries, 0)
	endpoint := opts.Endpoint
	if endpoint == "" {
		endpoint = "unknown"
	}

	var lastErr error
	for attempt := 0; attempt <= retries; attempt++ {
		started := time.Now()
		raw, err := c.attempt(ctx, rawURL, opts)
		c.recorder.ObserveUpstream(endpoint, outcomeOf(err), time.Since(started))
		if err == nil {
			return raw, nil
		}
		lastErr = err

		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		if attempt == retries {
			break
		}

		wait := backoffFor(opts.BaseBackoff, attempt) + c.jitter(c.retryJitter)
		c.recorder.IncUpstreamRetry(endpoint)
		c.logger.DebugContext(ctx, "upstream attempt failed, retrying",
			"endpoint", endpoint,
			"attempt", attempt+1,
			"wait", wait,
			"error", err,
		)
		if err := c.sleep(ctx, wait); err != nil {
			return nil, err
		}
	}

	c.logger.WarnContext(ctx, "upstream request failed", "endpoint", endpoint, "url", rawURL, "attempts", retries+1, "error", lastErr)
	return nil, lastErr
}

func (c *Client) attempt(ctx context.Context, rawURL string, opts Options) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, crerr.Wrap(err, "build request")
	}
	req.Header.Set("Accept", "application/json")
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}
	for key, value := range opts.Headers {
		req.Header.Set(key, value)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: send request: %v", ErrTransient, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, c.maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("%w: read response body: %v", ErrTransient, err)
	}
	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, newStatusError(rawURL, resp, raw)
	}
	if !sonic.Valid(raw) {
		return nil, fmt.Errorf("%w: malformed json body=%s", ErrTransient, previewBody(raw))
	}
	return raw, nil
}

func requestKey(rawURL string, opts Options) string {
	encoded, err := sonic.ConfigStd.Marshal(opts)
	if err != nil {
		return rawURL
	}
	return rawURL + "|" + string(encoded)
}

func backoffFor(base time.Duration, attempt int) time.Duration {
	if base <= 0 {
		return 0
	}
	return base << attempt
}

func outcomeOf(err error) string {
	if err == nil {
		return "success"
	}
	var statusErr *StatusError
	if crerr.As(err, &statusErr) {
		return "status_error"
	}
	return "transport_error"
}

func randomJitter(limit time.Duration) time.Duration {
	if limit <= 0 {
		return 0
	}
	return rand.N(limit)
}

func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

type nopRecorder struct{}

func (nopRecorder) ObserveUpstream(string, string, time.Duration) {}
func (nopRecorder) IncUpstreamRetry(string)                       {}
func (nopRecorder) IncDedupShared()                               {}
func (nopRecorder) SetCircuitOpen(string, bool)                   {}
