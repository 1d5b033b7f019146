package memory

import (
	"cmp"
	"context"
	"slices"

	"github.com/riskibarqy/stathub/internal/domain/leaderboard"
	"github.com/riskibarqy/stathub/internal/domain/matchstat"
	"github.com/riskibarqy/stathub/internal/domain/player"
)

type LeaderboardRepository struct {
	store *Store
}

func NewLeaderboardRepository(store *Store) *LeaderboardRepository {
	return &LeaderboardRepository{store: store}
}

// ListAggregates folds every table for each non-admin player under one read
// lock.
func (r *LeaderboardRepository) ListAggregates(_ context.Context) ([]leaderboard.Aggregate, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	byPlayer := make(map[int64]*leaderboard.Aggregate, len(r.store.players))
	out := make([]*leaderboard.Aggregate, 0, len(r.store.players))
	for _, p := range r.store.players {
		if p.Role == player.RoleAdmin {
			continue
		}
		agg := &leaderboard.Aggregate{
			PlayerID:    p.ID,
			Username:    p.Username,
			FullName:    p.FullName,
			PhotoURL:    p.PhotoURL,
			Nationality: p.Nationality,
			Position:    p.FavoritePosition,
			XP:          p.XP,
			Level:       p.Level,
		}
		byPlayer[p.ID] = agg
		out = append(out, agg)
	}

	stats := make([]matchstat.Stat, 0, len(r.store.stats))
	for _, s := range r.store.stats {
		stats = append(stats, s)
	}
	slices.SortFunc(stats, func(a, b matchstat.Stat) int { return cmp.Compare(a.ID, b.ID) })
	for _, s := range stats {
		agg, ok := byPlayer[s.PlayerID]
		if !ok {
			continue
		}
		agg.MatchesPlayed++
		agg.TotalGoals += s.Goals
		agg.TotalAssists += s.Assists
		agg.RatingSum += s.Rating
	}
	for key, p := range r.store.progress {
		if agg, ok := byPlayer[key.playerID]; ok && p.Unlocked {
			agg.AchievementCount++
		}
	}
	for _, t := range r.store.trophies {
		if agg, ok := byPlayer[t.AwardedTo]; ok {
			agg.TrophyCount++
		}
	}

	items := make([]leaderboard.Aggregate, 0, len(out))
	for _, agg := range out {
		items = append(items, *agg)
	}
	return items, nil
}
