package team

import "context"

// Repository describes team persistence needs from use cases.
type Repository interface {
	// GetOrCreate resolves a team by league and name, inserting it when absent.
	GetOrCreate(ctx context.Context, item Team) (Team, bool, error)
}
