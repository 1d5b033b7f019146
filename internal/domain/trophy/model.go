package trophy

import (
	"cmp"
	"time"

	"github.com/riskibarqy/stathub/internal/domain/matchstat"
)

const (
	ManOfTheMatchName        = "Man of the Match"
	ManOfTheMatchDescription = "Best performing player of the match."
)

// Trophy is the single best-player award of a match.
type Trophy struct {
	ID          int64
	MatchID     int64
	AwardedTo   int64
	Name        string
	Description string
	DateAwarded time.Time
}

// SelectBest picks the best performance by rating, goals, assists, earliest
// created_at and finally lowest stat id. Rows equal on every key keep their
// input order.
func SelectBest(stats []matchstat.Stat) (matchstat.Stat, bool) {
	if len(stats) == 0 {
		return matchstat.Stat{}, false
	}

	best := stats[0]
	for _, candidate := range stats[1:] {
		if better(candidate, best) {
			best = candidate
		}
	}
	return best, true
}

func better(a, b matchstat.Stat) bool {
	if c := cmp.Compare(a.Rating, b.Rating); c != 0 {
		return c > 0
	}
	if a.Goals != b.Goals {
		return a.Goals > b.Goals
	}
	if a.Assists != b.Assists {
		return a.Assists > b.Assists
	}
	if !a.CreatedAt.Equal(b.CreatedAt) {
		return a.CreatedAt.Before(b.CreatedAt)
	}
	if a.ID > 0 && b.ID > 0 && a.ID != b.ID {
		return a.ID < b.ID
	}
	return false
}
