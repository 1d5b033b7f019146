package memory

import (
	"sync"

	"github.com/riskibarqy/stathub/internal/domain/achievement"
	"github.com/riskibarqy/stathub/internal/domain/match"
	"github.com/riskibarqy/stathub/internal/domain/matchstat"
	"github.com/riskibarqy/stathub/internal/domain/player"
	"github.com/riskibarqy/stathub/internal/domain/trophy"
)

type progressKey struct {
	playerID      int64
	achievementID int64
}

// Store holds every table behind one lock so cross-table reads (leaderboard
// aggregates) see a consistent snapshot. Repositories are views over it.
type Store struct {
	mu       sync.RWMutex
	players  map[int64]player.Player
	matches  map[int64]match.Match
	stats    map[int64]matchstat.Stat
	defs     map[int64]achievement.Definition
	progress map[progressKey]achievement.Progress
	trophies map[int64]trophy.Trophy

	nextStatID   int64
	nextDefID    int64
	nextTrophyID int64
}

func NewStore(players []player.Player, matches []match.Match) *Store {
	s := &Store{
		players:  make(map[int64]player.Player, len(players)),
		matches:  make(map[int64]match.Match, len(matches)),
		stats:    make(map[int64]matchstat.Stat),
		defs:     make(map[int64]achievement.Definition),
		progress: make(map[progressKey]achievement.Progress),
		trophies: make(map[int64]trophy.Trophy),
	}
	for _, p := range players {
		s.players[p.ID] = p
	}
	for _, m := range matches {
		s.matches[m.ID] = m
	}
	return s
}

func cloneProgress(p achievement.Progress) achievement.Progress {
	if p.UnlockedAt != nil {
		at := *p.UnlockedAt
		p.UnlockedAt = &at
	}
	return p
}
