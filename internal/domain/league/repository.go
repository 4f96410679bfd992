package league

import "context"

// Repository describes league persistence needs from use cases.
type Repository interface {
	// GetOrCreate looks a league up by name, country code and tier and
	// inserts it when absent. The bool reports whether a row was created.
	GetOrCreate(ctx context.Context, item League) (League, bool, error)
}
