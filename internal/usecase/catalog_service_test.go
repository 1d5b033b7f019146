package usecase

import (
	"context"
	"testing"

	"github.com/riskibarqy/stathub/internal/domain/matchstat"
	"github.com/stretchr/testify/require"
)

func TestCatalogService_SeedIsIdempotent(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t, false)

	first, err := env.catalog.Seed(context.Background(), false)
	require.NoError(t, err)
	require.Equal(t, 9, first.Created)
	require.Zero(t, first.Updated)

	second, err := env.catalog.Seed(context.Background(), false)
	require.NoError(t, err)
	require.Zero(t, second.Created)
	require.Equal(t, 9, second.Updated)

	items, err := env.catalog.List(context.Background())
	require.NoError(t, err)
	require.Len(t, items, 9)
}

func TestCatalogService_SeedWithBackfillUnlocksExistingStats(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t, false)
	_, err := env.stats.Create(context.Background(), matchstat.Stat{MatchID: 1, PlayerID: 2, Team: matchstat.TeamHome, Goals: 1, Rating: 6})
	require.NoError(t, err)

	got, err := env.catalog.Seed(context.Background(), true)
	require.NoError(t, err)
	require.True(t, got.Backfilled)
	require.NotNil(t, got.Backfill)
	require.Equal(t, 5, got.Backfill.Players)
	require.Equal(t, 1, got.Backfill.PlayersUnlocked)
	require.True(t, env.unlocked(t, 2)["First Match"])
}

func TestCatalogService_Upsert(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t, false)

	def, created, err := env.catalog.Upsert(context.Background(), UpsertAchievementInput{
		Name: "Assist King", Metric: "ASSISTS", TargetValue: 10, Points: 250,
	})
	require.NoError(t, err)
	require.True(t, created)
	require.Equal(t, "assist-king", def.Code)
	require.Equal(t, "Beginner", string(def.Tier))

	again, created, err := env.catalog.Upsert(context.Background(), UpsertAchievementInput{
		Name: "Assist King", Metric: "assists", TargetValue: 12, Points: 300, Tier: "Advanced",
	})
	require.NoError(t, err)
	require.False(t, created)
	require.Equal(t, def.ID, again.ID)
	require.Equal(t, 12, again.TargetValue)

	tests := []UpsertAchievementInput{
		{Name: "", Metric: "goals", TargetValue: 1},
		{Name: "Saves", Metric: "saves", TargetValue: 1},
		{Name: "Negative", Metric: "goals", TargetValue: -1},
		{Name: "Too Strict", Metric: "rating", TargetValue: 80, MinSample: 9},
	}
	for _, input := range tests {
		_, _, err := env.catalog.Upsert(context.Background(), input)
		require.ErrorIs(t, err, ErrInvalidInput, "input=%+v", input)
	}
}
