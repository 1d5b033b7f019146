package usecase

import (
	"context"
	"fmt"
	"sync/atomic"

	"github.com/riskibarqy/stathub/internal/domain/leaderboard"
	"github.com/riskibarqy/stathub/internal/domain/player"
	"github.com/riskibarqy/stathub/internal/platform/logging"
	"github.com/sourcegraph/conc/pool"
)

type LeaderboardConfig struct {
	DefaultLimit   int
	MaxLimit       int
	RefreshWorkers int
}

func (c LeaderboardConfig) normalize() LeaderboardConfig {
	if c.DefaultLimit <= 0 {
		c.DefaultLimit = 10
	}
	if c.MaxLimit < c.DefaultLimit {
		c.MaxLimit = c.DefaultLimit
	}
	if c.RefreshWorkers <= 0 {
		c.RefreshWorkers = 4
	}
	return c
}

// LeaderboardService ranks every non-admin player. It writes nothing itself
// apart from the xp refresh run before rating boards.
type LeaderboardService struct {
	board       leaderboard.Repository
	players     player.Repository
	progression progressionRecomputer
	cfg         LeaderboardConfig
	logger      *logging.Logger
}

func NewLeaderboardService(
	board leaderboard.Repository,
	players player.Repository,
	progression progressionRecomputer,
	cfg LeaderboardConfig,
	logger *logging.Logger,
) *LeaderboardService {
	if logger == nil {
		logger = logging.Default()
	}
	return &LeaderboardService{
		board:       board,
		players:     players,
		progression: progression,
		cfg:         cfg.normalize(),
		logger:      logger,
	}
}

// Rank returns the top of the board. Ranks are global: they are assigned
// before the limit is applied. A non-positive limit uses the default.
func (s *LeaderboardService) Rank(ctx context.Context, mode leaderboard.Mode, limit int) ([]leaderboard.Entry, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LeaderboardService.Rank")
	defer span.End()

	entries, err := s.rankAll(ctx, mode)
	if err != nil {
		return nil, err
	}
	return leaderboard.Top(entries, s.clampLimit(limit)), nil
}

func (s *LeaderboardService) PlayerRank(ctx context.Context, mode leaderboard.Mode, playerID int64) (leaderboard.Entry, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LeaderboardService.PlayerRank")
	defer span.End()

	if playerID <= 0 {
		return leaderboard.Entry{}, fmt.Errorf("%w: player_id must be > 0", ErrInvalidInput)
	}
	entries, err := s.rankAll(ctx, mode)
	if err != nil {
		return leaderboard.Entry{}, err
	}
	entry, ok := leaderboard.Find(entries, playerID)
	if !ok {
		return leaderboard.Entry{}, fmt.Errorf("%w: player=%d is not on the %s leaderboard", ErrNotFound, playerID, mode)
	}
	return entry, nil
}

func (s *LeaderboardService) rankAll(ctx context.Context, mode leaderboard.Mode) ([]leaderboard.Entry, error) {
	if _, ok := leaderboard.AllModes[mode]; !ok {
		return nil, fmt.Errorf("%w: unknown leaderboard mode %q", ErrInvalidInput, mode)
	}
	if mode == leaderboard.ModeRating {
		if err := s.refreshProgression(ctx); err != nil {
			return nil, err
		}
	}

	items, err := s.board.ListAggregates(ctx)
	if err != nil {
		return nil, fmt.Errorf("list leaderboard aggregates: %w", err)
	}
	return leaderboard.Rank(mode, items), nil
}

// refreshProgression recomputes xp/level of every ranked player with bounded
// parallelism. Individual failures are logged; the board is still served.
func (s *LeaderboardService) refreshProgression(ctx context.Context) error {
	if s.progression == nil {
		return nil
	}

	items, err := s.players.ListByRole(ctx, player.RolePlayer)
	if err != nil {
		return fmt.Errorf("list players for progression refresh: %w", err)
	}

	var failed atomic.Int32
	p := pool.New().WithMaxGoroutines(s.cfg.RefreshWorkers).WithContext(ctx)
	for _, item := range items {
		playerID := item.ID
		p.Go(func(ctx context.Context) error {
			if _, err := s.progression.Recompute(ctx, playerID); err != nil {
				failed.Add(1)
				return fmt.Errorf("player=%d: %w", playerID, err)
			}
			return nil
		})
	}
	if err := p.Wait(); err != nil {
		s.logger.WarnContext(ctx, "progression refresh before rating leaderboard partially failed",
			"failed", failed.Load(),
			"players", len(items),
			"error", err,
		)
	}
	return nil
}

func (s *LeaderboardService) clampLimit(limit int) int {
	if limit <= 0 {
		return s.cfg.DefaultLimit
	}
	if limit > s.cfg.MaxLimit {
		return s.cfg.MaxLimit
	}
	return limit
}
