package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/riskibarqy/stathub/internal/domain/achievement"
	"github.com/riskibarqy/stathub/internal/domain/player"
	"github.com/riskibarqy/stathub/internal/domain/progression"
	achievementmock "github.com/riskibarqy/stathub/internal/mocks/domain/achievement"
	playermock "github.com/riskibarqy/stathub/internal/mocks/domain/player"
	"github.com/riskibarqy/stathub/internal/platform/logging"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestProgressionService_XPMatchesUnlockedPoints(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t, true)
	for matchID := int64(1); matchID <= 5; matchID++ {
		env.record(t, matchID, 2, 1, 1, 8.0)
	}

	defs, err := env.achievements.ListDefinitions(context.Background())
	require.NoError(t, err)
	items, err := env.achievements.ListProgressByPlayer(context.Background(), 2)
	require.NoError(t, err)
	want := progression.TotalXP(defs, items)

	stored, _, err := env.players.GetByID(context.Background(), 2)
	require.NoError(t, err)
	require.Equal(t, want, stored.XP)
	require.Equal(t, progression.LevelForXP(want), stored.Level)

	// First Match, Helping Hand, Maiden Goal, Five-Goal Club, Reliable Starter, Elite Performer.
	require.Equal(t, 100+100+150+150+200+500, stored.XP)
}

func TestProgressionService_RecomputeSkipsUnchangedUsingMockery(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	playerRepo := playermock.NewRepository(t)
	achievementRepo := achievementmock.NewRepository(t)
	service := NewProgressionService(playerRepo, achievementRepo, logging.NewNop())

	defs := []achievement.Definition{{ID: 1, Points: 100}, {ID: 2, Points: 150}}
	playerRepo.On("GetByID", mock.Anything, int64(3)).Return(player.Player{ID: 3, XP: 100, Level: 1}, true, nil).Once()
	achievementRepo.On("ListDefinitions", mock.Anything).Return(defs, nil).Once()
	achievementRepo.On("ListProgressByPlayer", mock.Anything, int64(3)).
		Return([]achievement.Progress{{PlayerID: 3, AchievementID: 1, Unlocked: true}}, nil).
		Once()

	snap, err := service.Recompute(ctx, 3)
	require.NoError(t, err)
	require.Equal(t, 100, snap.XP)
	playerRepo.AssertNotCalled(t, "UpdateProgression", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestProgressionService_RecomputePropagatesWriteFailureUsingMockery(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	playerRepo := playermock.NewRepository(t)
	achievementRepo := achievementmock.NewRepository(t)
	service := NewProgressionService(playerRepo, achievementRepo, logging.NewNop())
	writeErr := errors.New("read-only transaction")

	playerRepo.On("GetByID", mock.Anything, int64(4)).Return(player.Player{ID: 4, XP: 0, Level: 1}, true, nil).Once()
	achievementRepo.On("ListDefinitions", mock.Anything).Return([]achievement.Definition{{ID: 1, Points: 250}}, nil).Once()
	achievementRepo.On("ListProgressByPlayer", mock.Anything, int64(4)).
		Return([]achievement.Progress{{PlayerID: 4, AchievementID: 1, Unlocked: true}}, nil).
		Once()
	playerRepo.On("UpdateProgression", mock.Anything, int64(4), 250, 2).Return(writeErr).Once()

	_, err := service.Recompute(ctx, 4)
	require.ErrorIs(t, err, writeErr)
}

func TestProgressionService_GetUnknownPlayer(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t, false)
	_, err := env.progression.Get(context.Background(), 404)
	require.ErrorIs(t, err, ErrNotFound)
}
