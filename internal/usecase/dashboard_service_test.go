package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDashboardService_Get(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t, true)
	env.record(t, 1, 5, 2, 1, 8.0)
	env.record(t, 2, 5, 1, 0, 7.0)
	env.record(t, 2, 2, 0, 0, 9.5)

	got, err := env.dashboard.Get(context.Background(), 5)
	require.NoError(t, err)
	require.Equal(t, 2, got.MatchesPlayed)
	require.Equal(t, 3, got.TotalGoals)
	require.Equal(t, 1, got.TotalAssists)
	require.InDelta(t, 7.5, got.AverageRating, 1e-9)
	require.Equal(t, 9, got.AchievementsTotal)
	require.Equal(t, 3, got.AchievementsUnlocked)
	require.Equal(t, 1, got.TrophyCount)
	require.Equal(t, 2, got.RatingRank)
	require.Len(t, got.RecentStats, 2)
	require.Equal(t, int64(2), got.RecentStats[0].MatchID)
}

func TestDashboardService_AdminHasNoRank(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t, true)
	got, err := env.dashboard.Get(context.Background(), 1)
	require.NoError(t, err)
	require.Zero(t, got.RatingRank)
}
