package usecase

import (
	"context"
	"testing"

	"github.com/riskibarqy/stathub/internal/domain/leaderboard"
	"github.com/stretchr/testify/require"
)

func TestLeaderboardService_IncludesPlayersWithoutStats(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t, true)
	env.record(t, 1, 4, 2, 0, 8.5)
	env.record(t, 1, 2, 0, 1, 6.0)

	for mode := range leaderboard.AllModes {
		entries, err := env.leaderboard.Rank(context.Background(), mode, 10)
		require.NoError(t, err, "mode=%s", mode)
		require.Len(t, entries, 5, "mode=%s", mode)

		seen := map[int64]bool{}
		for i, entry := range entries {
			require.Equal(t, i+1, entry.Rank)
			require.NotEqual(t, int64(1), entry.PlayerID, "admin ranked in mode=%s", mode)
			seen[entry.PlayerID] = true
		}
		require.Len(t, seen, 5)
	}
}

func TestLeaderboardService_RatingRefreshesXP(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t, true)
	env.record(t, 1, 3, 1, 0, 7.0)

	// Drift the stored view; the rating board rederives it.
	require.NoError(t, env.players.UpdateProgression(context.Background(), 3, 0, 1))

	entries, err := env.leaderboard.Rank(context.Background(), leaderboard.ModeRating, 1)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	require.Equal(t, int64(3), entries[0].PlayerID)
	require.Equal(t, 250, entries[0].XP)
}

func TestLeaderboardService_LimitClamping(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t, false)

	entries, err := env.leaderboard.Rank(context.Background(), leaderboard.ModeGoals, 0)
	require.NoError(t, err)
	require.Len(t, entries, 3)

	entries, err = env.leaderboard.Rank(context.Background(), leaderboard.ModeGoals, 1000)
	require.NoError(t, err)
	require.Len(t, entries, 5)
}

func TestLeaderboardService_PlayerRank(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t, false)
	env.record(t, 2, 6, 0, 4, 7.0)

	entry, err := env.leaderboard.PlayerRank(context.Background(), leaderboard.ModeAssists, 6)
	require.NoError(t, err)
	require.Equal(t, 1, entry.Rank)

	_, err = env.leaderboard.PlayerRank(context.Background(), leaderboard.ModeAssists, 1)
	require.ErrorIs(t, err, ErrNotFound)

	_, err = env.leaderboard.Rank(context.Background(), leaderboard.Mode("speed"), 5)
	require.ErrorIs(t, err, ErrInvalidInput)
}
