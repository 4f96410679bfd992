package player

import "context"

// Repository describes player persistence needs from use cases.
type Repository interface {
	// GetByName looks a player up by identity. The bool reports whether one
	// was found.
	GetByName(ctx context.Context, firstName, lastName string) (Player, bool, error)
	// GetOrCreate resolves a player by first and last name. When absent the
	// player is inserted with the remaining attributes as defaults; an
	// existing player is returned untouched.
	GetOrCreate(ctx context.Context, item Player) (Player, bool, error)
}
