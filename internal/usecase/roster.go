package usecase

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/riskibarqy/fantasy-league-snapshot/internal/domain/leaguehistory"
)

type rosterInput struct {
	Participants []leaguehistory.Participant `validate:"unique=Name,dive"`
}

// normalizeRoster trims names and ids and validates the roster. Names must be
// present, unique and must not collide with the row period key.
func normalizeRoster(v *validator.Validate, roster []leaguehistory.Participant) ([]leaguehistory.Participant, error) {
	out := make([]leaguehistory.Participant, 0, len(roster))
	for _, participant := range roster {
		out = append(out, leaguehistory.Participant{
			Name:    strings.TrimSpace(participant.Name),
			EntryID: strings.TrimSpace(participant.EntryID),
		})
	}

	if err := v.Struct(rosterInput{Participants: out}); err != nil {
		return nil, fmt.Errorf("%w: roster: %v", ErrInvalidInput, err)
	}
	return out, nil
}
