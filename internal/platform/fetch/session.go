package fetch

import (
	"context"
	"sync/atomic"

	"github.com/riskibarqy/fantasy-league-snapshot/internal/platform/resilience"
)

type sessionKey struct{}

// Session scopes request deduplication to one aggregation run. Identical
// requests issued while one is in flight share its result; settled requests
// are forgotten, so the next call fetches fresh data.
type Session struct {
	flight   resilience.SingleFlight
	requests atomic.Int64
	shared   atomic.Int64
}

func NewSession() *Session {
	return &Session{}
}

func WithSession(ctx context.Context, s *Session) context.Context {
	if s == nil {
		return ctx
	}
	return context.WithValue(ctx, sessionKey{}, s)
}

func SessionFrom(ctx context.Context) *Session {
	if ctx == nil {
		return nil
	}
	s, _ := ctx.Value(sessionKey{}).(*Session)
	return s
}

// Requests counts logical requests made through the session.
func (s *Session) Requests() int64 {
	return s.requests.Load()
}

// Shared counts requests answered by an identical in-flight request.
func (s *Session) Shared() int64 {
	return s.shared.Load()
}

// InFlight reports how many distinct requests are still pending.
func (s *Session) InFlight() int {
	return s.flight.InFlight()
}
