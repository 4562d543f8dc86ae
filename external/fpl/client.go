package fpl

import (
	"context"
	"fmt"
	"math"
	"net/url"
	"strconv"
	"strings"
	"time"

	crerr "github.com/cockroachdb/errors"
	"github.com/riskibarqy/fantasy-league-snapshot/internal/domain/leaguehistory"
	"github.com/riskibarqy/fantasy-league-snapshot/internal/platform/fetch"
	"github.com/riskibarqy/fantasy-league-snapshot/internal/platform/logging"
)

const (
	defaultBaseURL        = "https://fantasy.premierleague.com/api"
	defaultMaxRetries     = 2
	defaultLiveMaxRetries = 1
	defaultRetryBackoff   = 600 * time.Millisecond
)

var errMalformedPayload = crerr.New("fpl payload malformed")

// JSONGetter is the transport the adapter reads upstream resources through.
type JSONGetter interface {
	GetJSON(ctx context.Context, rawURL string, opts fetch.Options, target any) error
}

type ClientConfig struct {
	BaseURL        string
	MaxRetries     int
	LiveMaxRetries int
	RetryBackoff   time.Duration
	Logger         *logging.Logger
}

// Client implements leaguehistory.Provider against the public FPL API.
type Client struct {
	getter         JSONGetter
	baseURL        string
	maxRetries     int
	liveMaxRetries int
	retryBackoff   time.Duration
	logger         *logging.Logger
}

var _ leaguehistory.Provider = (*Client)(nil)

func NewClient(getter JSONGetter, cfg ClientConfig) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}

	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	maxRetries := cfg.MaxRetries
	if maxRetries < 0 {
		maxRetries = defaultMaxRetries
	}
	liveMaxRetries := cfg.LiveMaxRetries
	if liveMaxRetries < 0 {
		liveMaxRetries = defaultLiveMaxRetries
	}
	retryBackoff := cfg.RetryBackoff
	if retryBackoff <= 0 {
		retryBackoff = defaultRetryBackoff
	}

	return &Client{
		getter:         getter,
		baseURL:        baseURL,
		maxRetries:     maxRetries,
		liveMaxRetries: liveMaxRetries,
		retryBackoff:   retryBackoff,
		logger:         logger,
	}
}

func (c *Client) FetchHistory(ctx context.Context, entryID string) (leaguehistory.History, error) {
	entryID = strings.TrimSpace(entryID)
	if entryID == "" {
		return leaguehistory.History{}, fmt.Errorf("entry id is required")
	}

	var payload map[string]any
	rawURL := fmt.Sprintf("%s/entry/%s/history/", c.baseURL, url.PathEscape(entryID))
	if err := c.getter.GetJSON(ctx, rawURL, c.options("history", c.maxRetries), &payload); err != nil {
		return leaguehistory.History{}, fmt.Errorf("fetch history entry_id=%s: %w", entryID, err)
	}

	current, ok := payload["current"].([]any)
	if !ok {
		return leaguehistory.History{}, crerr.Wrapf(errMalformedPayload, "history entry_id=%s has no current list", entryID)
	}

	entries, dropped := parseHistoryEntries(current)
	if dropped > 0 {
		c.logger.DebugContext(ctx, "dropped malformed history rows", "entry_id", entryID, "dropped", dropped)
	}

	chips, _ := payload["chips"].([]any)
	return leaguehistory.History{
		Entries: entries,
		Chips:   parseChips(chips),
	}, nil
}

func (c *Client) FetchLive(ctx context.Context, period int) (leaguehistory.LiveSnapshot, error) {
	if period <= 0 {
		return leaguehistory.LiveSnapshot{}, fmt.Errorf("period must be greater than zero")
	}

	var payload map[string]any
	rawURL := fmt.Sprintf("%s/event/%d/live/", c.baseURL, period)
	if err := c.getter.GetJSON(ctx, rawURL, c.options("live", c.liveMaxRetries), &payload); err != nil {
		return leaguehistory.LiveSnapshot{}, fmt.Errorf("fetch live event=%d: %w", period, err)
	}

	elements, ok := payload["elements"].([]any)
	if !ok {
		return leaguehistory.LiveSnapshot{}, crerr.Wrapf(errMalformedPayload, "live event=%d has no elements list", period)
	}

	return leaguehistory.LiveSnapshot{
		Period:   period,
		Elements: parseLiveElements(elements),
	}, nil
}

func (c *Client) FetchPicks(ctx context.Context, entryID string, period int) ([]leaguehistory.Pick, error) {
	entryID = strings.TrimSpace(entryID)
	if entryID == "" || period <= 0 {
		return nil, fmt.Errorf("entry id and positive period are required")
	}

	var payload map[string]any
	rawURL := fmt.Sprintf("%s/entry/%s/event/%d/picks/", c.baseURL, url.PathEscape(entryID), period)
	if err := c.getter.GetJSON(ctx, rawURL, c.options("picks", c.liveMaxRetries), &payload); err != nil {
		return nil, fmt.Errorf("fetch picks entry_id=%s event=%d: %w", entryID, period, err)
	}

	picks, ok := payload["picks"].([]any)
	if !ok {
		return nil, crerr.Wrapf(errMalformedPayload, "picks entry_id=%s event=%d has no picks list", entryID, period)
	}
	return parsePicks(picks), nil
}

func (c *Client) FetchFixtures(ctx context.Context, period int) ([]leaguehistory.Fixture, error) {
	if period <= 0 {
		return nil, fmt.Errorf("period must be greater than zero")
	}

	var payload []any
	rawURL := fmt.Sprintf("%s/fixtures/?event=%d", c.baseURL, period)
	if err := c.getter.GetJSON(ctx, rawURL, c.options("fixtures", c.maxRetries), &payload); err != nil {
		return nil, fmt.Errorf("fetch fixtures event=%d: %w", period, err)
	}
	return parseFixtures(payload), nil
}

func (c *Client) options(endpoint string, retries int) fetch.Options {
	return fetch.Options{
		Endpoint:    endpoint,
		MaxRetries:  retries,
		BaseBackoff: c.retryBackoff,
	}
}

// parseHistoryEntries drops rows without a positive event or without numeric
// points and total. A repeated event keeps its last occurrence.
func parseHistoryEntries(items []any) ([]leaguehistory.PeriodEntry, int) {
	out := make([]leaguehistory.PeriodEntry, 0, len(items))
	dropped := 0
	for _, item := range items {
		row, ok := item.(map[string]any)
		if !ok {
			dropped++
			continue
		}

		period, ok := optionalInt(row, "event")
		if !ok || period <= 0 {
			dropped++
			continue
		}
		points, okPoints := optionalInt(row, "points")
		total, okTotal := optionalInt(row, "total_points")
		if !okPoints || !okTotal {
			dropped++
			continue
		}

		out = append(out, leaguehistory.PeriodEntry{
			Period:        period,
			Points:        points,
			TotalPoints:   total,
			Rank:          intPtr(row, "rank"),
			OverallRank:   intPtr(row, "overall_rank"),
			Value:         floatPtr(row, "value"),
			PointsOnBench: intPtr(row, "points_on_bench"),
		})
	}

	deduped := leaguehistory.DedupePeriods(out)
	return deduped, dropped + len(out) - len(deduped)
}

func parseChips(items []any) []leaguehistory.ChipUsage {
	out := make([]leaguehistory.ChipUsage, 0, len(items))
	for _, item := range items {
		row, ok := item.(map[string]any)
		if !ok {
			continue
		}
		period, ok := optionalInt(row, "event")
		name := getString(row, "name")
		if !ok || period <= 0 || name == "" {
			continue
		}

		chip := leaguehistory.ChipUsage{Name: name, Period: period}
		if playedAt, err := time.Parse(time.RFC3339, getString(row, "time")); err == nil {
			chip.PlayedAt = playedAt.UTC()
		}
		out = append(out, chip)
	}
	return out
}

// parseLiveElements keeps every element in upstream order. Missing stats count
// as zero.
func parseLiveElements(items []any) []leaguehistory.LiveElement {
	out := make([]leaguehistory.LiveElement, 0, len(items))
	for _, item := range items {
		row, _ := item.(map[string]any)
		stats, _ := row["stats"].(map[string]any)

		id, _ := optionalInt(row, "id")
		points, _ := optionalInt(stats, "total_points")
		minutes, _ := optionalInt(stats, "minutes")
		out = append(out, leaguehistory.LiveElement{
			ID:      id,
			Points:  points,
			Minutes: minutes,
		})
	}
	return out
}

func parsePicks(items []any) []leaguehistory.Pick {
	out := make([]leaguehistory.Pick, 0, len(items))
	for _, item := range items {
		row, ok := item.(map[string]any)
		if !ok {
			continue
		}
		element, ok := optionalInt(row, "element")
		if !ok || element <= 0 {
			continue
		}
		out = append(out, leaguehistory.Pick{
			Element:    element,
			Multiplier: intPtr(row, "multiplier"),
		})
	}
	return out
}

// parseFixtures treats a fixture as finished only when upstream says so with a
// boolean true.
func parseFixtures(items []any) []leaguehistory.Fixture {
	out := make([]leaguehistory.Fixture, 0, len(items))
	for _, item := range items {
		row, ok := item.(map[string]any)
		if !ok {
			continue
		}
		id, _ := optionalInt(row, "id")
		finished, _ := row["finished"].(bool)
		out = append(out, leaguehistory.Fixture{ID: id, Finished: finished})
	}
	return out
}

func getString(src map[string]any, key string) string {
	if src == nil {
		return ""
	}
	value, ok := src[key].(string)
	if !ok {
		return ""
	}
	return strings.TrimSpace(value)
}

// optionalInt reads an integral number. Non-numeric, fractional and missing
// values report false.
func optionalInt(src map[string]any, key string) (int, bool) {
	value, ok := optionalFloat(src, key)
	if !ok || value != math.Trunc(value) {
		return 0, false
	}
	return int(value), true
}

func optionalFloat(src map[string]any, key string) (float64, bool) {
	if src == nil {
		return 0, false
	}

	var value float64
	switch typed := src[key].(type) {
	case float64:
		value = typed
	case float32:
		value = float64(typed)
	case int:
		value = float64(typed)
	case int64:
		value = float64(typed)
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(typed), 64)
		if err != nil {
			return 0, false
		}
		value = parsed
	default:
		return 0, false
	}
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return 0, false
	}
	return value, true
}

func intPtr(src map[string]any, key string) *int {
	value, ok := optionalInt(src, key)
	if !ok {
		return nil
	}
	return &value
}

func floatPtr(src map[string]any, key string) *float64 {
	value, ok := optionalFloat(src, key)
	if !ok {
		return nil
	}
	return &value
}
