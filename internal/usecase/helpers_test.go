package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/riskibarqy/stathub/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/stathub/internal/platform/logging"
)

// testEnv wires every service over one seeded in-memory store. Player 1 is
// the admin, players 2..6 are ranked, matches 1..6 exist.
type testEnv struct {
	store        *memory.Store
	players      *memory.PlayerRepository
	matches      *memory.MatchRepository
	stats        *memory.StatRepository
	achievements *memory.AchievementRepository
	trophies     *memory.TrophyRepository
	board        *memory.LeaderboardRepository

	progression *ProgressionService
	evaluator   *AchievementService
	trophySvc   *TrophyService
	statSvc     *StatService
	reconcile   *ReconcileService
	catalog     *CatalogService
	leaderboard *LeaderboardService
	dashboard   *DashboardService
}

func newTestEnv(t *testing.T, seedCatalog bool) *testEnv {
	t.Helper()

	store := memory.NewSeededStore()
	env := &testEnv{
		store:        store,
		players:      memory.NewPlayerRepository(store),
		matches:      memory.NewMatchRepository(store),
		stats:        memory.NewStatRepository(store),
		achievements: memory.NewAchievementRepository(store),
		trophies:     memory.NewTrophyRepository(store),
		board:        memory.NewLeaderboardRepository(store),
	}
	logger := logging.NewNop()

	env.progression = NewProgressionService(env.players, env.achievements, logger)
	env.evaluator = NewAchievementService(env.achievements, env.stats, env.players, env.progression, logger)
	env.trophySvc = NewTrophyService(env.trophies, env.stats, env.matches, env.players, logger)
	env.statSvc = NewStatService(env.stats, env.players, env.matches, env.evaluator, env.trophySvc, logger)
	env.reconcile = NewReconcileService(env.players, env.matches, env.evaluator, env.trophySvc,
		ReconcileConfig{Interval: time.Hour, Workers: 3}, logger)
	env.catalog = NewCatalogService(env.achievements, env.reconcile, logger)
	env.leaderboard = NewLeaderboardService(env.board, env.players, env.progression,
		LeaderboardConfig{DefaultLimit: 3, MaxLimit: 10, RefreshWorkers: 2}, logger)
	env.dashboard = NewDashboardService(env.players, env.stats, env.achievements, env.trophies, env.board)

	if seedCatalog {
		if _, err := env.catalog.Seed(context.Background(), false); err != nil {
			t.Fatalf("seed catalog: %v", err)
		}
	}
	return env
}

func (e *testEnv) record(t *testing.T, matchID, playerID int64, goals, assists int, rating float64) StatResult {
	t.Helper()

	got, err := e.statSvc.Record(context.Background(), RecordStatInput{
		MatchID:  matchID,
		PlayerID: playerID,
		Team:     "home",
		Goals:    goals,
		Assists:  assists,
		Rating:   rating,
	})
	if err != nil {
		t.Fatalf("record stat match=%d player=%d: %v", matchID, playerID, err)
	}
	return got
}

func (e *testEnv) unlocked(t *testing.T, playerID int64) map[string]bool {
	t.Helper()

	items, err := e.evaluator.ListForPlayer(context.Background(), playerID)
	if err != nil {
		t.Fatalf("list player achievements: %v", err)
	}
	out := make(map[string]bool, len(items))
	for _, item := range items {
		out[item.Definition.Name] = item.Progress.Unlocked
	}
	return out
}
