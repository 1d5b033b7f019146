package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/riskibarqy/stathub/internal/domain/match"
	"github.com/riskibarqy/stathub/internal/domain/matchstat"
	"github.com/riskibarqy/stathub/internal/domain/player"
	"github.com/riskibarqy/stathub/internal/domain/trophy"
	"github.com/riskibarqy/stathub/internal/platform/logging"
	"github.com/riskibarqy/stathub/internal/platform/resilience"
)

// TrophyService keeps the man-of-the-match award of each match in line with
// its stats.
type TrophyService struct {
	trophies trophy.Repository
	stats    matchstat.Repository
	matches  match.Repository
	players  player.Repository
	locks    resilience.KeyedMutex[int64]
	logger   *logging.Logger
	now      func() time.Time
}

func NewTrophyService(
	trophies trophy.Repository,
	stats matchstat.Repository,
	matches match.Repository,
	players player.Repository,
	logger *logging.Logger,
) *TrophyService {
	if logger == nil {
		logger = logging.Default()
	}
	return &TrophyService{
		trophies: trophies,
		stats:    stats,
		matches:  matches,
		players:  players,
		logger:   logger,
		now:      time.Now,
	}
}

// RecomputeForMatch awards the match trophy to the best stat line. It
// returns nil when the match has no stats, deleting any stale award.
func (s *TrophyService) RecomputeForMatch(ctx context.Context, matchID int64) (*trophy.Trophy, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TrophyService.RecomputeForMatch", matchAttr(matchID))
	defer span.End()

	if err := lookupMatch(ctx, s.matches, matchID); err != nil {
		return nil, err
	}

	unlock, err := s.locks.Lock(ctx, matchID)
	if err != nil {
		return nil, fmt.Errorf("lock match trophy: %w", err)
	}
	defer unlock()

	stats, err := s.stats.ListByMatch(ctx, matchID)
	if err != nil {
		return nil, fmt.Errorf("list stats by match: %w", err)
	}
	existing, exists, err := s.trophies.GetByMatch(ctx, matchID)
	if err != nil {
		return nil, fmt.Errorf("get trophy by match: %w", err)
	}

	best, ok := trophy.SelectBest(stats)
	if !ok {
		if exists {
			if err := s.trophies.DeleteByMatch(ctx, matchID); err != nil {
				return nil, fmt.Errorf("delete trophy by match: %w", err)
			}
			s.logger.InfoContext(ctx, "trophy removed, match has no stats",
				"match_id", matchID,
				"previous_winner", existing.AwardedTo,
			)
		}
		return nil, nil
	}

	if exists {
		return s.moveTo(ctx, existing, best.PlayerID)
	}

	created, err := s.trophies.Create(ctx, trophy.Trophy{
		MatchID:     matchID,
		AwardedTo:   best.PlayerID,
		Name:        trophy.ManOfTheMatchName,
		Description: trophy.ManOfTheMatchDescription,
		DateAwarded: s.now().UTC(),
	})
	if errors.Is(err, trophy.ErrAlreadyAwarded) {
		// Another process awarded the match in between; converge on its row.
		current, found, getErr := s.trophies.GetByMatch(ctx, matchID)
		if getErr != nil {
			return nil, fmt.Errorf("get trophy after conflict: %w", getErr)
		}
		if !found {
			return nil, fmt.Errorf("trophy for match %d vanished after conflict: %w", matchID, err)
		}
		return s.moveTo(ctx, current, best.PlayerID)
	}
	if err != nil {
		return nil, fmt.Errorf("create trophy: %w", err)
	}

	s.logger.InfoContext(ctx, "trophy awarded",
		"match_id", matchID,
		"player_id", created.AwardedTo,
		"stat_id", best.ID,
	)
	return &created, nil
}

// moveTo rewrites the winner only when it changed.
func (s *TrophyService) moveTo(ctx context.Context, current trophy.Trophy, winner int64) (*trophy.Trophy, error) {
	if current.AwardedTo == winner {
		return &current, nil
	}

	updated, err := s.trophies.UpdateWinner(ctx, current.MatchID, winner, s.now().UTC())
	if err != nil {
		return nil, fmt.Errorf("update trophy winner: %w", err)
	}
	s.logger.InfoContext(ctx, "trophy moved to new winner",
		"match_id", current.MatchID,
		"previous_winner", current.AwardedTo,
		"player_id", winner,
	)
	return &updated, nil
}

// GetForMatch returns the current award of a match, nil when there is none.
func (s *TrophyService) GetForMatch(ctx context.Context, matchID int64) (*trophy.Trophy, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TrophyService.GetForMatch")
	defer span.End()

	if err := lookupMatch(ctx, s.matches, matchID); err != nil {
		return nil, err
	}
	item, exists, err := s.trophies.GetByMatch(ctx, matchID)
	if err != nil {
		return nil, fmt.Errorf("get trophy by match: %w", err)
	}
	if !exists {
		return nil, nil
	}
	return &item, nil
}

func (s *TrophyService) ListByPlayer(ctx context.Context, playerID int64) ([]trophy.Trophy, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TrophyService.ListByPlayer")
	defer span.End()

	if _, err := lookupPlayer(ctx, s.players, playerID); err != nil {
		return nil, err
	}
	items, err := s.trophies.ListByPlayer(ctx, playerID)
	if err != nil {
		return nil, fmt.Errorf("list trophies by player: %w", err)
	}
	return items, nil
}

func lookupMatch(ctx context.Context, matches match.Repository, matchID int64) error {
	if matchID <= 0 {
		return fmt.Errorf("%w: match_id must be > 0", ErrInvalidInput)
	}
	_, exists, err := matches.GetByID(ctx, matchID)
	if err != nil {
		return fmt.Errorf("get match by id: %w", err)
	}
	if !exists {
		return fmt.Errorf("%w: match=%d", ErrNotFound, matchID)
	}
	return nil
}
