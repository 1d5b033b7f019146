package usecase

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/riskibarqy/stathub/internal/domain/achievement"
	"github.com/riskibarqy/stathub/internal/domain/matchstat"
	"github.com/riskibarqy/stathub/internal/domain/player"
	"github.com/riskibarqy/stathub/internal/domain/progression"
	"github.com/riskibarqy/stathub/internal/platform/logging"
	"github.com/riskibarqy/stathub/internal/platform/resilience"
)

type progressionRecomputer interface {
	Recompute(ctx context.Context, playerID int64) (progression.Snapshot, error)
}

// AchievementService evaluates the catalog against a player's stats.
type AchievementService struct {
	achievements achievement.Repository
	stats        matchstat.Repository
	players      player.Repository
	progression  progressionRecomputer
	locks        resilience.KeyedMutex[int64]
	logger       *logging.Logger
	now          func() time.Time
}

func NewAchievementService(
	achievements achievement.Repository,
	stats matchstat.Repository,
	players player.Repository,
	progression progressionRecomputer,
	logger *logging.Logger,
) *AchievementService {
	if logger == nil {
		logger = logging.Default()
	}
	return &AchievementService{
		achievements: achievements,
		stats:        stats,
		players:      players,
		progression:  progression,
		logger:       logger,
		now:          time.Now,
	}
}

// Evaluate measures every locked catalog entry for playerID and unlocks the
// ones now satisfied. triggeringStatID is optional (zero) and only matters
// for single-match metrics. When anything unlocked, xp and level are
// recomputed before returning.
func (s *AchievementService) Evaluate(ctx context.Context, playerID, triggeringStatID int64) (bool, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.AchievementService.Evaluate", playerAttr(playerID))
	defer span.End()

	if triggeringStatID < 0 {
		return false, fmt.Errorf("%w: triggering_stat_id cannot be negative", ErrInvalidInput)
	}
	if _, err := lookupPlayer(ctx, s.players, playerID); err != nil {
		return false, err
	}

	unlockedAny, err := s.evaluateLocked(ctx, playerID, triggeringStatID)
	if err != nil {
		return false, err
	}
	if !unlockedAny || s.progression == nil {
		return unlockedAny, nil
	}

	if _, err := s.progression.Recompute(ctx, playerID); err != nil {
		return true, fmt.Errorf("recompute progression after unlock: %w", err)
	}
	return true, nil
}

func (s *AchievementService) evaluateLocked(ctx context.Context, playerID, triggeringStatID int64) (bool, error) {
	unlock, err := s.locks.Lock(ctx, playerID)
	if err != nil {
		return false, fmt.Errorf("lock player achievements: %w", err)
	}
	defer unlock()

	defs, err := s.achievements.ListDefinitions(ctx)
	if err != nil {
		return false, fmt.Errorf("list achievement definitions: %w", err)
	}
	if len(defs) == 0 {
		s.logger.WarnContext(ctx, "achievement catalog is empty, nothing evaluated",
			"player_id", playerID,
			"error", achievement.ErrConfiguration,
		)
		return false, nil
	}

	stats, err := s.stats.ListByPlayer(ctx, playerID)
	if err != nil {
		return false, fmt.Errorf("list stats by player: %w", err)
	}
	existing, err := s.achievements.ListProgressByPlayer(ctx, playerID)
	if err != nil {
		return false, fmt.Errorf("list achievement progress: %w", err)
	}

	summary := achievement.Summarize(stats, triggeringStatID)
	result, err := achievement.Evaluate(playerID, defs, existing, summary, s.now().UTC())
	if err != nil {
		s.logger.ErrorContext(ctx, "achievement evaluation aborted on invalid catalog data",
			"player_id", playerID,
			"error", err,
		)
		return false, fmt.Errorf("evaluate achievements for player %d: %w", playerID, err)
	}

	for _, def := range result.Unknown {
		s.logger.WarnContext(ctx, "achievement has no evaluation strategy for its metric",
			"achievement_id", def.ID,
			"achievement", def.Name,
			"metric", string(def.Metric),
			"error", achievement.ErrConfiguration,
		)
	}

	if len(result.Progress) == 0 {
		return false, nil
	}
	// Only rows this write unlocked count; another process may already hold them.
	newlyUnlocked, err := s.achievements.SaveProgress(ctx, playerID, result.Progress)
	if err != nil {
		return false, fmt.Errorf("save achievement progress: %w", err)
	}

	for _, def := range result.Unlocked {
		if !slices.Contains(newlyUnlocked, def.ID) {
			continue
		}
		s.logger.InfoContext(ctx, "achievement unlocked",
			"player_id", playerID,
			"achievement_id", def.ID,
			"achievement", def.Name,
			"points", def.Points,
		)
	}

	return len(newlyUnlocked) > 0, nil
}

// ListForPlayer joins the catalog with the player's progress. Entries never
// evaluated are returned with zero progress.
func (s *AchievementService) ListForPlayer(ctx context.Context, playerID int64) ([]achievement.PlayerAchievement, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.AchievementService.ListForPlayer")
	defer span.End()

	if _, err := lookupPlayer(ctx, s.players, playerID); err != nil {
		return nil, err
	}

	defs, err := s.achievements.ListDefinitions(ctx)
	if err != nil {
		return nil, fmt.Errorf("list achievement definitions: %w", err)
	}
	items, err := s.achievements.ListProgressByPlayer(ctx, playerID)
	if err != nil {
		return nil, fmt.Errorf("list achievement progress: %w", err)
	}

	byAchievement := make(map[int64]achievement.Progress, len(items))
	for _, p := range items {
		byAchievement[p.AchievementID] = p
	}

	out := make([]achievement.PlayerAchievement, 0, len(defs))
	for _, def := range defs {
		p, ok := byAchievement[def.ID]
		if !ok {
			p = achievement.Progress{PlayerID: playerID, AchievementID: def.ID}
		}
		out = append(out, achievement.PlayerAchievement{Definition: def, Progress: p})
	}
	return out, nil
}
