package memory

import (
	"context"
	"sync"

	"github.com/riskibarqy/league-registry/internal/domain/team"
)

type teamKey struct {
	leagueID int64
	name     string
}

type TeamRepository struct {
	mu     sync.RWMutex
	nextID int64
	items  map[teamKey]team.Team
	orders []teamKey
}

func NewTeamRepository(teams []team.Team) *TeamRepository {
	r := &TeamRepository{items: make(map[teamKey]team.Team, len(teams))}
	for _, item := range teams {
		if item.ID > r.nextID {
			r.nextID = item.ID
		}
		key := teamKey{leagueID: item.LeagueID, name: item.Name}
		if _, ok := r.items[key]; !ok {
			r.orders = append(r.orders, key)
		}
		r.items[key] = item
	}
	return r
}

func (r *TeamRepository) GetOrCreate(_ context.Context, item team.Team) (team.Team, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := teamKey{leagueID: item.LeagueID, name: item.Name}
	if existing, ok := r.items[key]; ok {
		return existing, false, nil
	}

	r.nextID++
	item.ID = r.nextID
	r.items[key] = item
	r.orders = append(r.orders, key)

	return item, true, nil
}

// ListByLeague returns the teams of a league in insertion order.
func (r *TeamRepository) ListByLeague(_ context.Context, leagueID int64) ([]team.Team, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]team.Team, 0)
	for _, key := range r.orders {
		if key.leagueID == leagueID {
			out = append(out, r.items[key])
		}
	}

	return out, nil
}
