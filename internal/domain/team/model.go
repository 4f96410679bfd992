package team

import (
	"errors"

	"github.com/riskibarqy/league-registry/internal/platform/validation"
)

var ErrConflict = errors.New("team conflicts with an existing team")

// Team is a club inside exactly one league.
type Team struct {
	ID       int64  `json:"id"`
	LeagueID int64  `json:"league_id" validate:"gt=0"`
	Name     string `json:"name" validate:"required,max=100"`
}

func (t Team) String() string {
	return t.Name
}

func (t Team) Validate() error {
	return validation.Struct(t)
}
