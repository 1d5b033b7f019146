package player

import "context"

// Repository describes player persistence needs from use cases.
type Repository interface {
	GetByID(ctx context.Context, playerID int64) (Player, bool, error)
	ListByRole(ctx context.Context, role Role) ([]Player, error)
	UpdateProgression(ctx context.Context, playerID int64, xp, level int) error
}
