package usecase

import (
	"context"
	"fmt"
	"slices"

	"github.com/riskibarqy/stathub/internal/domain/achievement"
	"github.com/riskibarqy/stathub/internal/domain/leaderboard"
	"github.com/riskibarqy/stathub/internal/domain/matchstat"
	"github.com/riskibarqy/stathub/internal/domain/player"
	"github.com/riskibarqy/stathub/internal/domain/progression"
	"github.com/riskibarqy/stathub/internal/domain/trophy"
)

const dashboardRecentStats = 5

type Dashboard struct {
	Player               player.Player
	Progress             progression.Progress
	MatchesPlayed        int
	TotalGoals           int
	TotalAssists         int
	AverageRating        float64
	AchievementsUnlocked int
	AchievementsTotal    int
	TrophyCount          int
	// RatingRank is the position on the rating board; zero for admins.
	RatingRank  int
	RecentStats []matchstat.Stat
}

// DashboardService assembles the per-player summary from stored state only;
// it never triggers a recompute.
type DashboardService struct {
	players      player.Repository
	stats        matchstat.Repository
	achievements achievement.Repository
	trophies     trophy.Repository
	board        leaderboard.Repository
}

func NewDashboardService(
	players player.Repository,
	stats matchstat.Repository,
	achievements achievement.Repository,
	trophies trophy.Repository,
	board leaderboard.Repository,
) *DashboardService {
	return &DashboardService{
		players:      players,
		stats:        stats,
		achievements: achievements,
		trophies:     trophies,
		board:        board,
	}
}

func (s *DashboardService) Get(ctx context.Context, playerID int64) (Dashboard, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.DashboardService.Get")
	defer span.End()

	item, err := lookupPlayer(ctx, s.players, playerID)
	if err != nil {
		return Dashboard{}, err
	}

	stats, err := s.stats.ListByPlayer(ctx, playerID)
	if err != nil {
		return Dashboard{}, fmt.Errorf("list stats for dashboard: %w", err)
	}
	defs, err := s.achievements.ListDefinitions(ctx)
	if err != nil {
		return Dashboard{}, fmt.Errorf("list achievement definitions for dashboard: %w", err)
	}
	progress, err := s.achievements.ListProgressByPlayer(ctx, playerID)
	if err != nil {
		return Dashboard{}, fmt.Errorf("list achievement progress for dashboard: %w", err)
	}
	trophies, err := s.trophies.ListByPlayer(ctx, playerID)
	if err != nil {
		return Dashboard{}, fmt.Errorf("list trophies for dashboard: %w", err)
	}

	level := item.Level
	if level < progression.MinLevel {
		level = progression.LevelForXP(item.XP)
	}
	out := Dashboard{
		Player:            item,
		Progress:          progression.ProgressFor(item.XP, level),
		MatchesPlayed:     len(stats),
		AchievementsTotal: len(defs),
		TrophyCount:       len(trophies),
	}

	var ratingSum float64
	for _, st := range stats {
		out.TotalGoals += st.Goals
		out.TotalAssists += st.Assists
		ratingSum += st.Rating
	}
	if len(stats) > 0 {
		out.AverageRating = ratingSum / float64(len(stats))
	}
	for _, p := range progress {
		if p.Unlocked {
			out.AchievementsUnlocked++
		}
	}

	recent := slices.Clone(stats)
	slices.SortStableFunc(recent, matchstat.NewerFirst)
	if len(recent) > dashboardRecentStats {
		recent = recent[:dashboardRecentStats]
	}
	out.RecentStats = recent

	if item.IsRanked() {
		aggregates, err := s.board.ListAggregates(ctx)
		if err != nil {
			return Dashboard{}, fmt.Errorf("list leaderboard aggregates for dashboard: %w", err)
		}
		if entry, ok := leaderboard.Find(leaderboard.Rank(leaderboard.ModeRating, aggregates), playerID); ok {
			out.RatingRank = entry.Rank
		}
	}

	return out, nil
}
