package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/riskibarqy/league-registry/internal/domain/league"
)

type LeagueRepository struct {
	mu     sync.RWMutex
	nextID int64
	items  []league.League
}

func NewLeagueRepository(leagues []league.League) *LeagueRepository {
	r := &LeagueRepository{}
	for _, l := range leagues {
		if l.ID > r.nextID {
			r.nextID = l.ID
		}
		r.items = append(r.items, l)
	}
	return r
}

func (r *LeagueRepository) GetOrCreate(_ context.Context, item league.League) (league.League, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.items {
		if existing.Name == item.Name && existing.CountryCode == item.CountryCode && existing.Tier == item.Tier {
			return existing, false, nil
		}
	}

	for _, existing := range r.items {
		switch {
		case existing.Name == item.Name:
			return league.League{}, false, fmt.Errorf("%w: %s violates leagues_name_key", league.ErrConflict, item)
		case existing.CountryCode == item.CountryCode && existing.Tier == item.Tier:
			return league.League{}, false, fmt.Errorf("%w: %s violates leagues_country_code_tier_key", league.ErrConflict, item)
		}
	}

	r.nextID++
	item.ID = r.nextID
	r.items = append(r.items, item)

	return item, true, nil
}

// List returns leagues in insertion order.
func (r *LeagueRepository) List(_ context.Context) ([]league.League, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]league.League, 0, len(r.items))
	out = append(out, r.items...)

	return out, nil
}
