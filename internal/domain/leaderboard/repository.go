package leaderboard

import "context"

// Repository reads the aggregate state of every non-admin player.
type Repository interface {
	ListAggregates(ctx context.Context) ([]Aggregate, error)
}
