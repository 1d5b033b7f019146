package matchstat

import (
	"fmt"
	"time"
)

// Team tells which side of the match the player appeared for.
type Team string

const (
	TeamHome Team = "home"
	TeamAway Team = "away"
)

const (
	MinRating = 0.0
	MaxRating = 10.0
)

// Stat is one player's line for one match.
type Stat struct {
	ID        int64
	MatchID   int64
	PlayerID  int64
	Team      Team
	Goals     int
	Assists   int
	Rating    float64
	CreatedAt time.Time
}

func (s Stat) Validate() error {
	if s.MatchID <= 0 {
		return fmt.Errorf("match id is required")
	}
	if s.PlayerID <= 0 {
		return fmt.Errorf("player id is required")
	}
	if s.Team != TeamHome && s.Team != TeamAway {
		return fmt.Errorf("invalid team: %q", s.Team)
	}
	if s.Goals < 0 {
		return fmt.Errorf("goals cannot be negative")
	}
	if s.Assists < 0 {
		return fmt.Errorf("assists cannot be negative")
	}
	if s.Rating < MinRating || s.Rating > MaxRating {
		return fmt.Errorf("rating must be within %.0f..%.0f, got %v", MinRating, MaxRating, s.Rating)
	}

	return nil
}

// NewerFirst orders stats by created_at descending with the surrogate id as a
// tie-break for timestamps that collide at the stored resolution.
func NewerFirst(a, b Stat) int {
	if !a.CreatedAt.Equal(b.CreatedAt) {
		if a.CreatedAt.After(b.CreatedAt) {
			return -1
		}
		return 1
	}
	switch {
	case a.ID > b.ID:
		return -1
	case a.ID < b.ID:
		return 1
	default:
		return 0
	}
}
