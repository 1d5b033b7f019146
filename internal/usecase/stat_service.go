package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/riskibarqy/stathub/internal/domain/match"
	"github.com/riskibarqy/stathub/internal/domain/matchstat"
	"github.com/riskibarqy/stathub/internal/domain/player"
	"github.com/riskibarqy/stathub/internal/domain/trophy"
	"github.com/riskibarqy/stathub/internal/platform/logging"
)

type achievementEvaluator interface {
	Evaluate(ctx context.Context, playerID, triggeringStatID int64) (bool, error)
}

type trophyRecomputer interface {
	RecomputeForMatch(ctx context.Context, matchID int64) (*trophy.Trophy, error)
}

type RecordStatInput struct {
	MatchID  int64
	PlayerID int64
	Team     string
	Goals    int
	Assists  int
	Rating   float64
}

type UpdateStatInput struct {
	Team    string
	Goals   int
	Assists int
	Rating  float64
}

// StatResult is a committed stat write plus the outcome of the enrichment
// steps that ran after it. Enrichment failures are logged, never returned.
type StatResult struct {
	Stat                 matchstat.Stat
	AchievementsUnlocked bool
	Trophy               *trophy.Trophy
}

// StatService owns the primary stat write and triggers the derived state
// recompute chain after it commits.
type StatService struct {
	stats        matchstat.Repository
	players      player.Repository
	matches      match.Repository
	achievements achievementEvaluator
	trophies     trophyRecomputer
	logger       *logging.Logger
	now          func() time.Time
}

func NewStatService(
	stats matchstat.Repository,
	players player.Repository,
	matches match.Repository,
	achievements achievementEvaluator,
	trophies trophyRecomputer,
	logger *logging.Logger,
) *StatService {
	if logger == nil {
		logger = logging.Default()
	}
	return &StatService{
		stats:        stats,
		players:      players,
		matches:      matches,
		achievements: achievements,
		trophies:     trophies,
		logger:       logger,
		now:          time.Now,
	}
}

func (s *StatService) Record(ctx context.Context, input RecordStatInput) (StatResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.StatService.Record")
	defer span.End()

	item := matchstat.Stat{
		MatchID:   input.MatchID,
		PlayerID:  input.PlayerID,
		Team:      matchstat.Team(strings.ToLower(strings.TrimSpace(input.Team))),
		Goals:     input.Goals,
		Assists:   input.Assists,
		Rating:    input.Rating,
		CreatedAt: s.now().UTC(),
	}
	if err := item.Validate(); err != nil {
		return StatResult{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if _, err := lookupPlayer(ctx, s.players, item.PlayerID); err != nil {
		return StatResult{}, err
	}
	if err := lookupMatch(ctx, s.matches, item.MatchID); err != nil {
		return StatResult{}, err
	}

	created, err := s.stats.Create(ctx, item)
	if errors.Is(err, matchstat.ErrDuplicate) {
		return StatResult{}, fmt.Errorf("%w: player=%d already has a stat for match=%d", ErrConflict, item.PlayerID, item.MatchID)
	}
	if err != nil {
		return StatResult{}, fmt.Errorf("create stat: %w", err)
	}

	s.logger.InfoContext(ctx, "stat recorded",
		"stat_id", created.ID,
		"match_id", created.MatchID,
		"player_id", created.PlayerID,
	)

	result := StatResult{Stat: created}
	result.AchievementsUnlocked = s.evaluate(ctx, created.PlayerID, created.ID)
	result.Trophy = s.recomputeTrophy(ctx, created.MatchID)
	return result, nil
}

func (s *StatService) Update(ctx context.Context, statID int64, input UpdateStatInput) (StatResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.StatService.Update")
	defer span.End()

	current, err := s.get(ctx, statID)
	if err != nil {
		return StatResult{}, err
	}

	next := current
	next.Team = matchstat.Team(strings.ToLower(strings.TrimSpace(input.Team)))
	next.Goals = input.Goals
	next.Assists = input.Assists
	next.Rating = input.Rating
	if err := next.Validate(); err != nil {
		return StatResult{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	updated, err := s.stats.Update(ctx, next)
	if err != nil {
		return StatResult{}, fmt.Errorf("update stat: %w", err)
	}

	result := StatResult{Stat: updated}
	result.AchievementsUnlocked = s.evaluate(ctx, updated.PlayerID, updated.ID)
	result.Trophy = s.recomputeTrophy(ctx, updated.MatchID)
	return result, nil
}

// Delete removes a stat line. Unlocked achievements stay unlocked; the match
// trophy is recomputed and disappears with the last stat of the match.
func (s *StatService) Delete(ctx context.Context, statID int64) (StatResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.StatService.Delete")
	defer span.End()

	current, err := s.get(ctx, statID)
	if err != nil {
		return StatResult{}, err
	}
	if err := s.stats.Delete(ctx, statID); err != nil {
		return StatResult{}, fmt.Errorf("delete stat: %w", err)
	}

	s.logger.InfoContext(ctx, "stat deleted",
		"stat_id", statID,
		"match_id", current.MatchID,
		"player_id", current.PlayerID,
	)

	result := StatResult{Stat: current}
	result.AchievementsUnlocked = s.evaluate(ctx, current.PlayerID, 0)
	result.Trophy = s.recomputeTrophy(ctx, current.MatchID)
	return result, nil
}

func (s *StatService) ListByMatch(ctx context.Context, matchID int64) ([]matchstat.Stat, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.StatService.ListByMatch")
	defer span.End()

	if err := lookupMatch(ctx, s.matches, matchID); err != nil {
		return nil, err
	}
	items, err := s.stats.ListByMatch(ctx, matchID)
	if err != nil {
		return nil, fmt.Errorf("list stats by match: %w", err)
	}
	return items, nil
}

func (s *StatService) get(ctx context.Context, statID int64) (matchstat.Stat, error) {
	if statID <= 0 {
		return matchstat.Stat{}, fmt.Errorf("%w: stat_id must be > 0", ErrInvalidInput)
	}
	item, exists, err := s.stats.GetByID(ctx, statID)
	if err != nil {
		return matchstat.Stat{}, fmt.Errorf("get stat by id: %w", err)
	}
	if !exists {
		return matchstat.Stat{}, fmt.Errorf("%w: stat=%d", ErrNotFound, statID)
	}
	return item, nil
}

func (s *StatService) evaluate(ctx context.Context, playerID, statID int64) bool {
	if s.achievements == nil {
		return false
	}
	unlocked, err := s.achievements.Evaluate(ctx, playerID, statID)
	if err != nil {
		s.logger.WarnContext(ctx, "achievement evaluation after stat write failed",
			"player_id", playerID,
			"stat_id", statID,
			"error", err,
		)
	}
	return unlocked
}

func (s *StatService) recomputeTrophy(ctx context.Context, matchID int64) *trophy.Trophy {
	if s.trophies == nil {
		return nil
	}
	item, err := s.trophies.RecomputeForMatch(ctx, matchID)
	if err != nil {
		s.logger.WarnContext(ctx, "trophy recompute after stat write failed",
			"match_id", matchID,
			"error", err,
		)
		return nil
	}
	return item
}
