package memory

import (
	"context"
	"sync"

	"github.com/riskibarqy/league-registry/internal/domain/player"
)

type playerKey struct {
	firstName string
	lastName  string
}

type PlayerRepository struct {
	mu     sync.RWMutex
	nextID int64
	items  map[playerKey]player.Player
	orders []playerKey
}

func NewPlayerRepository(players []player.Player) *PlayerRepository {
	r := &PlayerRepository{items: make(map[playerKey]player.Player, len(players))}
	for _, item := range players {
		if item.ID > r.nextID {
			r.nextID = item.ID
		}
		key := playerKey{firstName: item.FirstName, lastName: item.LastName}
		if _, ok := r.items[key]; !ok {
			r.orders = append(r.orders, key)
		}
		r.items[key] = item
	}
	return r
}

func (r *PlayerRepository) GetByName(_ context.Context, firstName, lastName string) (player.Player, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	existing, ok := r.items[playerKey{firstName: firstName, lastName: lastName}]
	return existing, ok, nil
}

func (r *PlayerRepository) GetOrCreate(_ context.Context, item player.Player) (player.Player, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := playerKey{firstName: item.FirstName, lastName: item.LastName}
	if existing, ok := r.items[key]; ok {
		return existing, false, nil
	}

	r.nextID++
	item.ID = r.nextID
	r.items[key] = item
	r.orders = append(r.orders, key)

	return item, true, nil
}

// List returns players in insertion order.
func (r *PlayerRepository) List(_ context.Context) ([]player.Player, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]player.Player, 0, len(r.orders))
	for _, key := range r.orders {
		out = append(out, r.items[key])
	}

	return out, nil
}
