package usecase

import (
	"context"
	"fmt"

	"github.com/riskibarqy/stathub/internal/domain/achievement"
	"github.com/riskibarqy/stathub/internal/domain/player"
	"github.com/riskibarqy/stathub/internal/domain/progression"
	"github.com/riskibarqy/stathub/internal/platform/logging"
	"github.com/riskibarqy/stathub/internal/platform/resilience"
)

// ProgressionService keeps the player xp/level view in line with unlocked
// achievements.
type ProgressionService struct {
	players      player.Repository
	achievements achievement.Repository
	locks        resilience.KeyedMutex[int64]
	logger       *logging.Logger
}

func NewProgressionService(
	players player.Repository,
	achievements achievement.Repository,
	logger *logging.Logger,
) *ProgressionService {
	if logger == nil {
		logger = logging.Default()
	}
	return &ProgressionService{
		players:      players,
		achievements: achievements,
		logger:       logger,
	}
}

// Recompute rederives xp and level from unlocked progress rows and persists
// them when they differ from the stored view.
func (s *ProgressionService) Recompute(ctx context.Context, playerID int64) (progression.Snapshot, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ProgressionService.Recompute", playerAttr(playerID))
	defer span.End()

	if playerID <= 0 {
		return progression.Snapshot{}, fmt.Errorf("%w: player_id must be > 0", ErrInvalidInput)
	}
	unlock, err := s.locks.Lock(ctx, playerID)
	if err != nil {
		return progression.Snapshot{}, fmt.Errorf("lock player progression: %w", err)
	}
	defer unlock()

	item, err := lookupPlayer(ctx, s.players, playerID)
	if err != nil {
		return progression.Snapshot{}, err
	}

	defs, err := s.achievements.ListDefinitions(ctx)
	if err != nil {
		return progression.Snapshot{}, fmt.Errorf("list achievement definitions: %w", err)
	}
	items, err := s.achievements.ListProgressByPlayer(ctx, playerID)
	if err != nil {
		return progression.Snapshot{}, fmt.Errorf("list achievement progress: %w", err)
	}

	snapshot := progression.Derive(playerID, defs, items)
	if snapshot.XP == item.XP && snapshot.Level == item.Level {
		return snapshot, nil
	}

	if err := s.players.UpdateProgression(ctx, playerID, snapshot.XP, snapshot.Level); err != nil {
		return progression.Snapshot{}, fmt.Errorf("update player progression: %w", err)
	}
	s.logger.InfoContext(ctx, "player progression updated",
		"player_id", playerID,
		"xp_before", item.XP,
		"xp", snapshot.XP,
		"level", snapshot.Level,
	)

	return snapshot, nil
}

// Get reads the stored view without recomputing it.
func (s *ProgressionService) Get(ctx context.Context, playerID int64) (progression.Snapshot, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ProgressionService.Get")
	defer span.End()

	item, err := lookupPlayer(ctx, s.players, playerID)
	if err != nil {
		return progression.Snapshot{}, err
	}

	level := item.Level
	if level < progression.MinLevel {
		level = progression.LevelForXP(item.XP)
	}
	return progression.Snapshot{
		PlayerID: item.ID,
		XP:       item.XP,
		Level:    level,
		Progress: progression.ProgressFor(item.XP, level),
	}, nil
}

func lookupPlayer(ctx context.Context, players player.Repository, playerID int64) (player.Player, error) {
	if playerID <= 0 {
		return player.Player{}, fmt.Errorf("%w: player_id must be > 0", ErrInvalidInput)
	}
	item, exists, err := players.GetByID(ctx, playerID)
	if err != nil {
		return player.Player{}, fmt.Errorf("get player by id: %w", err)
	}
	if !exists {
		return player.Player{}, fmt.Errorf("%w: player=%d", ErrNotFound, playerID)
	}
	return item, nil
}
