package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/riskibarqy/stathub/internal/domain/achievement"
	"github.com/riskibarqy/stathub/internal/domain/matchstat"
	"github.com/riskibarqy/stathub/internal/domain/player"
	"github.com/riskibarqy/stathub/internal/domain/trophy"
)

func TestStatRepository_RejectsDuplicatePerMatch(t *testing.T) {
	t.Parallel()

	repo := NewStatRepository(NewSeededStore())
	ctx := context.Background()
	stat := matchstat.Stat{MatchID: 1, PlayerID: 2, Team: matchstat.TeamHome}

	created, err := repo.Create(ctx, stat)
	if err != nil {
		t.Fatalf("create stat: %v", err)
	}
	if created.ID != 1 {
		t.Fatalf("expected first id 1, got %d", created.ID)
	}
	if _, err := repo.Create(ctx, stat); !errors.Is(err, matchstat.ErrDuplicate) {
		t.Fatalf("expected ErrDuplicate, got %v", err)
	}

	stat.MatchID = 2
	if _, err := repo.Create(ctx, stat); err != nil {
		t.Fatalf("same player in another match: %v", err)
	}
}

func TestAchievementRepository_SaveProgressNeverRelocks(t *testing.T) {
	t.Parallel()

	repo := NewAchievementRepository(NewSeededStore())
	ctx := context.Background()
	first := time.Date(2026, time.September, 5, 21, 0, 0, 0, time.UTC)

	unlocked, err := repo.SaveProgress(ctx, 2, []achievement.Progress{{AchievementID: 1, CurrentValue: 1, Unlocked: true, UnlockedAt: &first}})
	if err != nil {
		t.Fatalf("save progress: %v", err)
	}
	if len(unlocked) != 1 || unlocked[0] != 1 {
		t.Fatalf("expected first save to report achievement 1, got %v", unlocked)
	}
	later := first.Add(time.Hour)
	unlocked, err = repo.SaveProgress(ctx, 2, []achievement.Progress{{AchievementID: 1, CurrentValue: 0, Unlocked: false, UnlockedAt: &later}})
	if err != nil {
		t.Fatalf("save progress again: %v", err)
	}
	if len(unlocked) != 0 {
		t.Fatalf("relock attempt reported unlocks: %v", unlocked)
	}

	items, err := repo.ListProgressByPlayer(ctx, 2)
	if err != nil {
		t.Fatalf("list progress: %v", err)
	}
	if len(items) != 1 || !items[0].Unlocked {
		t.Fatalf("expected unlocked row kept, got %+v", items)
	}
	if !items[0].UnlockedAt.Equal(first) {
		t.Fatalf("unlocked_at moved: %v", items[0].UnlockedAt)
	}
	if items[0].PlayerID != 2 {
		t.Fatalf("player id not set on row: %+v", items[0])
	}
}

func TestAchievementRepository_UpsertMatchesOnName(t *testing.T) {
	t.Parallel()

	repo := NewAchievementRepository(NewSeededStore())
	ctx := context.Background()

	created, isNew, err := repo.UpsertDefinition(ctx, achievement.Definition{Name: "First Match", Metric: achievement.MetricMatches, TargetValue: 1, Points: 100})
	if err != nil || !isNew {
		t.Fatalf("first upsert: created=%v err=%v", isNew, err)
	}
	updated, isNew, err := repo.UpsertDefinition(ctx, achievement.Definition{Name: "First Match", Metric: achievement.MetricMatches, TargetValue: 1, Points: 120})
	if err != nil || isNew {
		t.Fatalf("second upsert: created=%v err=%v", isNew, err)
	}
	if updated.ID != created.ID {
		t.Fatalf("upsert changed id: %d -> %d", created.ID, updated.ID)
	}

	defs, err := repo.ListDefinitions(ctx)
	if err != nil {
		t.Fatalf("list definitions: %v", err)
	}
	if len(defs) != 1 || defs[0].Points != 120 {
		t.Fatalf("unexpected catalog: %+v", defs)
	}
}

func TestTrophyRepository_OnePerMatch(t *testing.T) {
	t.Parallel()

	repo := NewTrophyRepository(NewSeededStore())
	ctx := context.Background()
	item := trophy.Trophy{MatchID: 3, AwardedTo: 2, Name: trophy.ManOfTheMatchName}

	if _, err := repo.Create(ctx, item); err != nil {
		t.Fatalf("create trophy: %v", err)
	}
	item.AwardedTo = 4
	if _, err := repo.Create(ctx, item); !errors.Is(err, trophy.ErrAlreadyAwarded) {
		t.Fatalf("expected ErrAlreadyAwarded, got %v", err)
	}
	if repo.Count(3) != 1 {
		t.Fatalf("expected exactly one trophy for match 3")
	}

	if err := repo.DeleteByMatch(ctx, 3); err != nil {
		t.Fatalf("delete trophy: %v", err)
	}
	if _, exists, _ := repo.GetByMatch(ctx, 3); exists {
		t.Fatalf("trophy still present after delete")
	}
}

func TestLeaderboardRepository_SkipsAdminAndKeepsIdlePlayers(t *testing.T) {
	t.Parallel()

	store := NewSeededStore()
	ctx := context.Background()
	if _, err := NewStatRepository(store).Create(ctx, matchstat.Stat{MatchID: 1, PlayerID: 1, Team: matchstat.TeamHome, Goals: 5}); err != nil {
		t.Fatalf("create admin stat: %v", err)
	}

	items, err := NewLeaderboardRepository(store).ListAggregates(ctx)
	if err != nil {
		t.Fatalf("list aggregates: %v", err)
	}
	if len(items) != 5 {
		t.Fatalf("expected 5 ranked players, got %d", len(items))
	}
	for _, item := range items {
		if item.PlayerID == 1 {
			t.Fatalf("admin included in aggregates")
		}
	}
}

func TestPlayerRepository_ListByRole(t *testing.T) {
	t.Parallel()

	repo := NewPlayerRepository(NewSeededStore())
	items, err := repo.ListByRole(context.Background(), player.RolePlayer)
	if err != nil {
		t.Fatalf("list players: %v", err)
	}
	if len(items) != 5 || items[0].ID != 2 {
		t.Fatalf("unexpected players: %+v", items)
	}
	if err := repo.UpdateProgression(context.Background(), 42, 10, 1); err == nil {
		t.Fatalf("expected error for unknown player")
	}
}

func TestAchievementRepository_SaveProgressReportsOnlyFreshUnlocks(t *testing.T) {
	t.Parallel()

	repo := NewAchievementRepository(NewSeededStore())
	ctx := context.Background()
	at := time.Date(2026, time.September, 6, 18, 0, 0, 0, time.UTC)
	row := achievement.Progress{AchievementID: 3, CurrentValue: 1, Unlocked: true, UnlockedAt: &at}

	// Two writers evaluated the same stale state.
	first, err := repo.SaveProgress(ctx, 4, []achievement.Progress{row})
	if err != nil {
		t.Fatalf("first save: %v", err)
	}
	second, err := repo.SaveProgress(ctx, 4, []achievement.Progress{row})
	if err != nil {
		t.Fatalf("second save: %v", err)
	}
	if len(first) != 1 || len(second) != 0 {
		t.Fatalf("expected only the first writer to report the unlock, got first=%v second=%v", first, second)
	}
}
