package leaguehistory

// LiveElement is one player's live scoring for a period.
type LiveElement struct {
	ID      int
	Points  int
	Minutes int
}

// LiveSnapshot is the live per-player scoring resource for a period. Elements
// keep upstream order, which the positional fallback in ScorePicks relies on.
type LiveSnapshot struct {
	Period   int
	Elements []LiveElement
}

// Pick is one squad slot. A nil Multiplier counts as 1.
type Pick struct {
	Element    int
	Multiplier *int
}

type Fixture struct {
	ID       int
	Finished bool
}

// IsLive reports whether any player has minutes played or non-zero points.
// An all-zero snapshot means the period has not started.
func IsLive(snapshot LiveSnapshot) bool {
	for _, element := range snapshot.Elements {
		if element.Minutes > 0 || element.Points != 0 {
			return true
		}
	}
	return false
}

// ScorePicks sums live points times multiplier over picks. Points are looked up
// by player id and fall back to Elements[element-1] when the id is missing;
// the number of fallback lookups is returned alongside the score.
func ScorePicks(snapshot LiveSnapshot, picks []Pick) (score int, fallbacks int) {
	byID := make(map[int]int, len(snapshot.Elements))
	for _, element := range snapshot.Elements {
		byID[element.ID] = element.Points
	}

	for _, pick := range picks {
		points, ok := byID[pick.Element]
		if !ok {
			idx := pick.Element - 1
			if idx >= 0 && idx < len(snapshot.Elements) {
				points = snapshot.Elements[idx].Points
				fallbacks++
			}
		}

		multiplier := 1
		if pick.Multiplier != nil {
			multiplier = *pick.Multiplier
		}
		score += points * multiplier
	}
	return score, fallbacks
}

// HasUnfinished reports whether any fixture is not finished yet.
func HasUnfinished(fixtures []Fixture) bool {
	for _, fixture := range fixtures {
		if !fixture.Finished {
			return true
		}
	}
	return false
}
