package leaguehistory

import "context"

// Provider is the read-only upstream league data source.
type Provider interface {
	FetchHistory(ctx context.Context, entryID string) (History, error)
	FetchLive(ctx context.Context, period int) (LiveSnapshot, error)
	FetchPicks(ctx context.Context, entryID string, period int) ([]Pick, error)
	FetchFixtures(ctx context.Context, period int) ([]Fixture, error)
}
