package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/riskibarqy/fantasy-league-snapshot/internal/domain/leaguehistory"
	leaguehistorymock "github.com/riskibarqy/fantasy-league-snapshot/internal/mocks/domain/leaguehistory"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func overrideSeries() *leaguehistory.SeriesMap {
	series := leaguehistory.NewSeriesMap()
	series.Set("Scott", []leaguehistory.PeriodEntry{
		{Period: 1, Points: 50, TotalPoints: 50},
		{Period: 2, Points: 0, TotalPoints: 50, OverallRank: intPtr(900)},
	})
	series.Set("Ross", []leaguehistory.PeriodEntry{
		{Period: 1, Points: 70, TotalPoints: 70},
	})
	return series
}

func liveSnapshot() leaguehistory.LiveSnapshot {
	return leaguehistory.LiveSnapshot{Period: 2, Elements: []leaguehistory.LiveElement{
		{ID: 1, Points: 6, Minutes: 90},
		{ID: 2, Points: 2, Minutes: 60},
		{ID: 4, Points: 9, Minutes: 90},
	}}
}

func TestLiveOverrideEngine_AppliesLiveScores(t *testing.T) {
	t.Parallel()

	provider := leaguehistorymock.NewProvider(t)
	provider.On("FetchLive", mock.Anything, 2).Return(liveSnapshot(), nil).Once()
	provider.On("FetchPicks", mock.Anything, "2408847", 2).Return([]leaguehistory.Pick{
		{Element: 1, Multiplier: intPtr(2)},
		{Element: 2},
	}, nil).Once()
	provider.On("FetchPicks", mock.Anything, "7707025", 2).Return([]leaguehistory.Pick{
		{Element: 3, Multiplier: intPtr(1)},
		{Element: 2, Multiplier: intPtr(0)},
	}, nil).Once()

	recorder := newRecordingRecorder()
	engine := NewLiveOverrideEngine(provider, testLimiter(), nil, recorder)
	input := overrideSeries()
	roster := testRoster()[:2]

	out, result, err := engine.Apply(context.Background(), roster, input)
	require.NoError(t, err)
	require.True(t, result.Live)
	require.Equal(t, 2, result.Period)
	require.Equal(t, []string{"Scott", "Ross"}, result.Applied)
	require.Empty(t, result.Skipped)
	require.Equal(t, 1, result.FallbackLookups)
	require.Equal(t, 1, recorder.fallbacks)

	scott, ok := out.Lookup("Scott", 2)
	require.True(t, ok)
	require.Equal(t, 14, scott.Points)
	require.Equal(t, 64, scott.TotalPoints)
	require.Equal(t, 900, *scott.OverallRank)

	// Ross had no entry for period 2: one is appended from the period 1 total.
	// Element 3 is missing by id and resolves to Elements[2] (9 points).
	ross, ok := out.Lookup("Ross", 2)
	require.True(t, ok)
	require.Equal(t, 9, ross.Points)
	require.Equal(t, 79, ross.TotalPoints)
	require.Nil(t, ross.Rank)
	require.Nil(t, ross.Value)
	require.Len(t, out.Entries("Ross"), 2)
	require.Equal(t, 1, out.Entries("Ross")[0].Period)

	original, _ := input.Lookup("Scott", 2)
	require.Equal(t, 0, original.Points)
	require.Len(t, input.Entries("Ross"), 1)
}

func TestLiveOverrideEngine_AllZeroSnapshotIsNoop(t *testing.T) {
	t.Parallel()

	provider := leaguehistorymock.NewProvider(t)
	provider.On("FetchLive", mock.Anything, 2).Return(leaguehistory.LiveSnapshot{
		Period:   2,
		Elements: []leaguehistory.LiveElement{{ID: 1}, {ID: 2}},
	}, nil).Once()

	input := overrideSeries()
	out, result, err := NewLiveOverrideEngine(provider, testLimiter(), nil, nil).Apply(context.Background(), testRoster()[:2], input)
	require.NoError(t, err)
	require.False(t, result.Live)
	require.Equal(t, input.AsMap(), out.AsMap())
	provider.AssertNotCalled(t, "FetchPicks", mock.Anything, mock.Anything, mock.Anything)
}

func TestLiveOverrideEngine_LiveFetchFailureIsNoop(t *testing.T) {
	t.Parallel()

	provider := leaguehistorymock.NewProvider(t)
	provider.On("FetchLive", mock.Anything, 2).Return(leaguehistory.LiveSnapshot{}, errors.New("upstream status=404")).Once()

	input := overrideSeries()
	out, result, err := NewLiveOverrideEngine(provider, testLimiter(), nil, nil).Apply(context.Background(), testRoster()[:2], input)
	require.NoError(t, err)
	require.False(t, result.Live)
	require.Equal(t, input.AsMap(), out.AsMap())
}

func TestLiveOverrideEngine_SkipsParticipantOnPickFailure(t *testing.T) {
	t.Parallel()

	provider := leaguehistorymock.NewProvider(t)
	provider.On("FetchLive", mock.Anything, 2).Return(liveSnapshot(), nil).Once()
	provider.On("FetchPicks", mock.Anything, "2408847", 2).Return(nil, errors.New("picks not published")).Once()
	provider.On("FetchPicks", mock.Anything, "7707025", 2).Return([]leaguehistory.Pick{{Element: 4}}, nil).Once()

	out, result, err := NewLiveOverrideEngine(provider, testLimiter(), nil, nil).Apply(context.Background(), testRoster()[:2], overrideSeries())
	require.NoError(t, err)
	require.Equal(t, []string{"Ross"}, result.Applied)
	require.Equal(t, []string{"Scott"}, result.Skipped)

	scott, _ := out.Lookup("Scott", 2)
	require.Equal(t, 0, scott.Points)
	require.Equal(t, 50, scott.TotalPoints)

	ross, _ := out.Lookup("Ross", 2)
	require.Equal(t, 79, ross.TotalPoints)
}

func TestLiveOverrideEngine_EmptySeriesIsNoop(t *testing.T) {
	t.Parallel()

	provider := leaguehistorymock.NewProvider(t)
	out, result, err := NewLiveOverrideEngine(provider, testLimiter(), nil, nil).Apply(context.Background(), testRoster(), leaguehistory.NewSeriesMap())
	require.NoError(t, err)
	require.Zero(t, out.Len())
	require.Zero(t, result.Period)
}
