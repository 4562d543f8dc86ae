package leaguehistory

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestIsLive(t *testing.T) {
	tests := []struct {
		name     string
		elements []LiveElement
		want     bool
	}{
		{name: "empty", want: false},
		{name: "all zero", elements: []LiveElement{{ID: 1}, {ID: 2}}, want: false},
		{name: "minutes played", elements: []LiveElement{{ID: 1}, {ID: 2, Minutes: 1}}, want: true},
		{name: "negative points", elements: []LiveElement{{ID: 1, Points: -1}}, want: true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, IsLive(LiveSnapshot{Elements: tc.elements}))
		})
	}
}

func TestScorePicks(t *testing.T) {
	snapshot := LiveSnapshot{Elements: []LiveElement{
		{ID: 1, Points: 2},
		{ID: 2, Points: 6},
		{ID: 10, Points: 9},
	}}

	score, fallbacks := ScorePicks(snapshot, []Pick{
		{Element: 1, Multiplier: intPtr(1)},
		{Element: 10, Multiplier: intPtr(2)},
		{Element: 2},
		{Element: 2, Multiplier: intPtr(0)},
		{Element: 3, Multiplier: intPtr(1)},
		{Element: 77, Multiplier: intPtr(1)},
	})

	// 2 + 18 + 6 + 0 + positional Elements[2]=9 + 0
	require.Equal(t, 35, score)
	require.Equal(t, 1, fallbacks)
}

func TestHasUnfinished(t *testing.T) {
	require.False(t, HasUnfinished(nil))
	require.False(t, HasUnfinished([]Fixture{{ID: 1, Finished: true}}))
	require.True(t, HasUnfinished([]Fixture{{ID: 1, Finished: true}, {ID: 2}}))
}
