package player

import (
	"errors"

	"github.com/riskibarqy/league-registry/internal/platform/validation"
)

// Position represents the football position of a player.
type Position string

const (
	PositionGoalkeeper Position = "GK"
	PositionDefender   Position = "DF"
	PositionMidfielder Position = "MF"
	PositionForward    Position = "FW"
)

var positionLabels = map[Position]string{
	PositionGoalkeeper: "Goalkeeper",
	PositionDefender:   "Defender",
	PositionMidfielder: "Midfielder",
	PositionForward:    "Forward",
}

// Label returns the human readable position name, or the raw code when unknown.
func (p Position) Label() string {
	if label, ok := positionLabels[p]; ok {
		return label
	}
	return string(p)
}

var ErrConflict = errors.New("player conflicts with an existing player")

// Player is an individual belonging to at most one team. Age and ShirtNumber
// are nil when unknown; TeamID is nil once the owning team is gone.
type Player struct {
	ID          int64    `json:"id"`
	TeamID      *int64   `json:"team_id"`
	FirstName   string   `json:"first_name" validate:"required,max=100"`
	LastName    string   `json:"last_name" validate:"required,max=100"`
	Nationality string   `json:"nationality" validate:"max=100"`
	Age         *int     `json:"age" validate:"omitempty,min=15,max=50"`
	ShirtNumber *int     `json:"shirt_number" validate:"omitempty,min=0"`
	Position    Position `json:"position" validate:"required,oneof=GK DF MF FW"`
}

func (p Player) String() string {
	return p.FirstName + " " + p.LastName
}

func (p Player) Validate() error {
	return validation.Struct(p)
}

// ValidateIdentity checks only the fields a player is looked up by. The other
// attributes matter once the player is inserted.
func (p Player) ValidateIdentity() error {
	return validation.Partial(p, "FirstName", "LastName")
}
