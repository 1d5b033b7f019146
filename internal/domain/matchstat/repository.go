package matchstat

import (
	"context"
	"errors"
)

// ErrDuplicate is returned by Create when the player already has a stat line
// for the match.
var ErrDuplicate = errors.New("stat already recorded for player in match")

type Repository interface {
	Create(ctx context.Context, stat Stat) (Stat, error)
	Update(ctx context.Context, stat Stat) (Stat, error)
	Delete(ctx context.Context, statID int64) error
	GetByID(ctx context.Context, statID int64) (Stat, bool, error)
	ListByPlayer(ctx context.Context, playerID int64) ([]Stat, error)
	ListByMatch(ctx context.Context, matchID int64) ([]Stat, error)
}
