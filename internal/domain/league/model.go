package league

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/riskibarqy/league-registry/internal/platform/validation"
)

const (
	DefaultCountryCode = "UNK"
	DefaultTier        = 1
)

// ErrConflict is returned when a league collides with an existing one on a
// unique key other than its own identity.
var ErrConflict = errors.New("league conflicts with an existing league")

// League is a named competition scoped to a country and tier.
type League struct {
	ID          int64  `json:"id"`
	Name        string `json:"name" validate:"required,max=100"`
	CountryCode string `json:"country_code" validate:"required,len=3,alpha,uppercase"`
	Tier        int    `json:"tier" validate:"min=1,max=10"`
}

// Code is the short display code, country code followed by tier (ENG1).
func (l League) Code() string {
	return l.CountryCode + strconv.Itoa(l.Tier)
}

func (l League) String() string {
	return fmt.Sprintf("%s (%s)", l.Name, l.Code())
}

func (l League) Validate() error {
	return validation.Struct(l)
}
