package trophy

import (
	"context"
	"errors"
	"time"
)

// ErrAlreadyAwarded is returned by Create when the match already has a trophy.
var ErrAlreadyAwarded = errors.New("trophy already awarded for match")

type Repository interface {
	GetByMatch(ctx context.Context, matchID int64) (Trophy, bool, error)
	Create(ctx context.Context, item Trophy) (Trophy, error)
	UpdateWinner(ctx context.Context, matchID, awardedTo int64, awardedAt time.Time) (Trophy, error)
	DeleteByMatch(ctx context.Context, matchID int64) error
	ListByPlayer(ctx context.Context, playerID int64) ([]Trophy, error)
}
