package usecase

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/riskibarqy/stathub/internal/domain/achievement"
	"github.com/riskibarqy/stathub/internal/domain/matchstat"
	"github.com/riskibarqy/stathub/internal/domain/player"
	"github.com/riskibarqy/stathub/internal/domain/progression"
	achievementmock "github.com/riskibarqy/stathub/internal/mocks/domain/achievement"
	playermock "github.com/riskibarqy/stathub/internal/mocks/domain/player"
	"github.com/riskibarqy/stathub/internal/platform/logging"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestAchievementService_Evaluate_FirstStat(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t, true)
	res := env.record(t, 1, 2, 1, 0, 6.0)
	require.True(t, res.AchievementsUnlocked)

	unlocked := env.unlocked(t, 2)
	require.True(t, unlocked["First Match"])
	require.True(t, unlocked["Maiden Goal"])
	require.False(t, unlocked["Helping Hand"])

	snap, err := env.progression.Get(context.Background(), 2)
	require.NoError(t, err)
	require.Equal(t, 250, snap.XP)
	require.Equal(t, 2, snap.Level)
}

func TestAchievementService_Evaluate_ElitePerformerNeedsFiveMatches(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t, true)
	for matchID := int64(1); matchID <= 4; matchID++ {
		env.record(t, matchID, 3, 0, 0, 9.0)
	}
	require.False(t, env.unlocked(t, 3)["Elite Performer"])

	env.record(t, 5, 3, 0, 0, 9.0)
	require.True(t, env.unlocked(t, 3)["Elite Performer"])
}

func TestAchievementService_Evaluate_IsIdempotent(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t, true)
	env.record(t, 1, 4, 1, 1, 7.0)

	before, err := env.achievements.ListProgressByPlayer(context.Background(), 4)
	require.NoError(t, err)

	unlockedAny, err := env.evaluator.Evaluate(context.Background(), 4, 0)
	require.NoError(t, err)
	require.False(t, unlockedAny)

	after, err := env.achievements.ListProgressByPlayer(context.Background(), 4)
	require.NoError(t, err)
	require.Equal(t, before, after)
}

func TestAchievementService_Evaluate_ConcurrentCallsUnlockOnce(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t, true)
	_, err := env.stats.Create(context.Background(), matchstat.Stat{
		MatchID: 2, PlayerID: 5, Team: matchstat.TeamAway, Goals: 2, Rating: 7.0, CreatedAt: time.Now().UTC(),
	})
	require.NoError(t, err)

	const workers = 8
	var wg sync.WaitGroup
	results := make(chan bool, workers)
	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ok, err := env.evaluator.Evaluate(context.Background(), 5, 0)
			if err == nil {
				results <- ok
			}
		}()
	}
	wg.Wait()
	close(results)

	unlockedRuns := 0
	for ok := range results {
		if ok {
			unlockedRuns++
		}
	}
	require.Equal(t, 1, unlockedRuns)

	snap, err := env.progression.Get(context.Background(), 5)
	require.NoError(t, err)
	require.Equal(t, 250, snap.XP)
}

func TestAchievementService_Evaluate_EmptyCatalogIsNoop(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t, false)
	res := env.record(t, 1, 2, 3, 3, 9.5)
	require.False(t, res.AchievementsUnlocked)
}

func TestAchievementService_Evaluate_SaveFailureLeavesXPUntouchedUsingMockery(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	achievementRepo := achievementmock.NewRepository(t)
	playerRepo := playermock.NewRepository(t)
	env := newTestEnv(t, false)
	_, err := env.stats.Create(ctx, matchstat.Stat{
		MatchID: 1, PlayerID: 2, Team: matchstat.TeamHome, Goals: 1, Rating: 6.0, CreatedAt: time.Now().UTC(),
	})
	require.NoError(t, err)

	defs := achievement.DefaultCatalog()[:3]
	for i := range defs {
		defs[i].ID = int64(i + 1)
	}
	saveErr := errors.New("connection refused")

	playerRepo.
		On("GetByID", mock.Anything, int64(2)).
		Return(player.Player{ID: 2, Role: player.RolePlayer, Level: 1}, true, nil).
		Once()
	achievementRepo.On("ListDefinitions", mock.Anything).Return(defs, nil).Once()
	achievementRepo.On("ListProgressByPlayer", mock.Anything, int64(2)).Return([]achievement.Progress(nil), nil).Once()
	achievementRepo.
		On("SaveProgress", mock.Anything, int64(2), mock.MatchedBy(func(items []achievement.Progress) bool {
			return len(items) == len(defs)
		})).
		Return(nil, saveErr).
		Once()

	recomputer := &recordingRecomputer{}
	service := NewAchievementService(achievementRepo, env.stats, playerRepo, recomputer, logging.NewNop())

	unlockedAny, err := service.Evaluate(ctx, 2, 0)
	require.ErrorIs(t, err, saveErr)
	require.False(t, unlockedAny)
	require.Zero(t, recomputer.calls)
	playerRepo.AssertNotCalled(t, "UpdateProgression", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestAchievementService_Evaluate_StaleReadReportsNoUnlock(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t, false)
	achievementRepo := achievementmock.NewRepository(t)
	playerRepo := playermock.NewRepository(t)
	ctx := context.Background()

	_, err := env.stats.Create(ctx, matchstat.Stat{
		MatchID: 1, PlayerID: 2, Team: matchstat.TeamHome, Goals: 1, Rating: 7.0,
		CreatedAt: time.Date(2026, time.September, 1, 19, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	defs := achievement.DefaultCatalog()[:1]
	defs[0].ID = 1

	playerRepo.
		On("GetByID", mock.Anything, int64(2)).
		Return(player.Player{ID: 2, Role: player.RolePlayer, Level: 1}, true, nil).
		Once()
	achievementRepo.On("ListDefinitions", mock.Anything).Return(defs, nil).Once()
	// Progress read before another process unlocked the row.
	achievementRepo.On("ListProgressByPlayer", mock.Anything, int64(2)).Return([]achievement.Progress(nil), nil).Once()
	achievementRepo.
		On("SaveProgress", mock.Anything, int64(2), mock.MatchedBy(func(items []achievement.Progress) bool {
			return len(items) == 1 && items[0].Unlocked
		})).
		Return([]int64(nil), nil).
		Once()

	recomputer := &recordingRecomputer{}
	service := NewAchievementService(achievementRepo, env.stats, playerRepo, recomputer, logging.NewNop())

	unlockedAny, err := service.Evaluate(ctx, 2, 0)
	require.NoError(t, err)
	require.False(t, unlockedAny)
	require.Zero(t, recomputer.calls)
}

func TestAchievementService_Evaluate_RejectsBadInput(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t, true)

	_, err := env.evaluator.Evaluate(context.Background(), 0, 0)
	require.ErrorIs(t, err, ErrInvalidInput)

	_, err = env.evaluator.Evaluate(context.Background(), 2, -1)
	require.ErrorIs(t, err, ErrInvalidInput)

	_, err = env.evaluator.Evaluate(context.Background(), 404, 0)
	require.ErrorIs(t, err, ErrNotFound)
}

type recordingRecomputer struct {
	mu    sync.Mutex
	calls int
}

func (r *recordingRecomputer) Recompute(_ context.Context, playerID int64) (progression.Snapshot, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls++
	return progression.Snapshot{PlayerID: playerID}, nil
}
