package usecase

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	crerr "github.com/cockroachdb/errors"
	"github.com/go-co-op/gocron/v2"
	"github.com/panjf2000/ants/v2"
	"github.com/riskibarqy/stathub/internal/domain/match"
	"github.com/riskibarqy/stathub/internal/domain/player"
	"github.com/riskibarqy/stathub/internal/platform/logging"
)

type ReconcileConfig struct {
	Interval time.Duration
	Workers  int
}

// ReconcileResult counts one sweep. Failures are logged per item.
type ReconcileResult struct {
	Players         int   `json:"players"`
	PlayersUnlocked int   `json:"players_unlocked"`
	PlayersFailed   int   `json:"players_failed"`
	Matches         int   `json:"matches"`
	MatchesAwarded  int   `json:"matches_awarded"`
	MatchesFailed   int   `json:"matches_failed"`
	DurationMs      int64 `json:"duration_ms"`
}

func (r ReconcileResult) merge(other ReconcileResult) ReconcileResult {
	r.Players += other.Players
	r.PlayersUnlocked += other.PlayersUnlocked
	r.PlayersFailed += other.PlayersFailed
	r.Matches += other.Matches
	r.MatchesAwarded += other.MatchesAwarded
	r.MatchesFailed += other.MatchesFailed
	r.DurationMs += other.DurationMs
	return r
}

// ReconcileService re-runs the idempotent enrichment steps over every player
// and match. It repairs derived state whose best-effort update failed after
// a stat write.
type ReconcileService struct {
	players      player.Repository
	matches      match.Repository
	achievements achievementEvaluator
	trophies     trophyRecomputer
	cfg          ReconcileConfig
	logger       *logging.Logger

	mu        sync.Mutex
	scheduler gocron.Scheduler
}

func NewReconcileService(
	players player.Repository,
	matches match.Repository,
	achievements achievementEvaluator,
	trophies trophyRecomputer,
	cfg ReconcileConfig,
	logger *logging.Logger,
) *ReconcileService {
	if logger == nil {
		logger = logging.Default()
	}
	if cfg.Workers <= 0 {
		cfg.Workers = 4
	}
	if cfg.Interval <= 0 {
		cfg.Interval = 15 * time.Minute
	}
	return &ReconcileService{
		players:      players,
		matches:      matches,
		achievements: achievements,
		trophies:     trophies,
		cfg:          cfg,
		logger:       logger,
	}
}

// Run evaluates every player, then recomputes every match trophy.
func (s *ReconcileService) Run(ctx context.Context) (ReconcileResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ReconcileService.Run")
	defer span.End()

	players, err := s.EvaluatePlayers(ctx)
	if err != nil {
		return ReconcileResult{}, err
	}
	matches, err := s.RecomputeTrophies(ctx)
	if err != nil {
		return players, err
	}
	return players.merge(matches), nil
}

func (s *ReconcileService) EvaluatePlayers(ctx context.Context) (ReconcileResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ReconcileService.EvaluatePlayers")
	defer span.End()

	start := time.Now()
	items, err := s.players.ListByRole(ctx, player.RolePlayer)
	if err != nil {
		return ReconcileResult{}, fmt.Errorf("list players for reconcile: %w", err)
	}

	var unlocked, failed atomic.Int32
	err = s.fanOut(len(items), func(i int) {
		playerID := items[i].ID
		ok, evalErr := s.achievements.Evaluate(ctx, playerID, 0)
		if evalErr != nil {
			failed.Add(1)
			s.logger.WarnContext(ctx, "reconcile player achievements failed", "player_id", playerID, "error", evalErr)
			return
		}
		if ok {
			unlocked.Add(1)
		}
	})
	if err != nil {
		return ReconcileResult{}, err
	}

	result := ReconcileResult{
		Players:         len(items),
		PlayersUnlocked: int(unlocked.Load()),
		PlayersFailed:   int(failed.Load()),
		DurationMs:      time.Since(start).Milliseconds(),
	}
	s.logger.InfoContext(ctx, "reconciled player achievements",
		"players", result.Players,
		"unlocked", result.PlayersUnlocked,
		"failed", result.PlayersFailed,
	)
	return result, nil
}

func (s *ReconcileService) RecomputeTrophies(ctx context.Context) (ReconcileResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ReconcileService.RecomputeTrophies")
	defer span.End()

	start := time.Now()
	items, err := s.matches.List(ctx)
	if err != nil {
		return ReconcileResult{}, fmt.Errorf("list matches for reconcile: %w", err)
	}

	var awarded, failed atomic.Int32
	err = s.fanOut(len(items), func(i int) {
		matchID := items[i].ID
		got, recomputeErr := s.trophies.RecomputeForMatch(ctx, matchID)
		if recomputeErr != nil {
			failed.Add(1)
			s.logger.WarnContext(ctx, "reconcile match trophy failed", "match_id", matchID, "error", recomputeErr)
			return
		}
		if got != nil {
			awarded.Add(1)
		}
	})
	if err != nil {
		return ReconcileResult{}, err
	}

	result := ReconcileResult{
		Matches:        len(items),
		MatchesAwarded: int(awarded.Load()),
		MatchesFailed:  int(failed.Load()),
		DurationMs:     time.Since(start).Milliseconds(),
	}
	s.logger.InfoContext(ctx, "reconciled match trophies",
		"matches", result.Matches,
		"awarded", result.MatchesAwarded,
		"failed", result.MatchesFailed,
	)
	return result, nil
}

func (s *ReconcileService) fanOut(n int, task func(i int)) error {
	if n == 0 {
		return nil
	}

	pool, err := ants.NewPool(min(s.cfg.Workers, n))
	if err != nil {
		return fmt.Errorf("create worker pool: %w", err)
	}
	defer pool.Release()

	var workers sync.WaitGroup
	for i := 0; i < n; i++ {
		workers.Add(1)
		if err := pool.Submit(func() {
			defer workers.Done()
			task(i)
		}); err != nil {
			workers.Done()
			workers.Wait()
			return fmt.Errorf("submit task to worker pool: %w", err)
		}
	}
	workers.Wait()
	return nil
}

// Start schedules Run every configured interval. Overlapping runs are
// skipped rather than queued.
func (s *ReconcileService) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.scheduler != nil {
		return crerr.New("reconcile scheduler already started")
	}

	scheduler, err := gocron.NewScheduler()
	if err != nil {
		return crerr.Wrap(err, "create reconcile scheduler")
	}
	_, err = scheduler.NewJob(
		gocron.DurationJob(s.cfg.Interval),
		gocron.NewTask(func() {
			if _, runErr := s.Run(ctx); runErr != nil {
				s.logger.WarnContext(ctx, "scheduled reconcile failed", "error", runErr)
			}
		}),
		gocron.WithName("stathub-reconcile"),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		_ = scheduler.Shutdown()
		return crerr.Wrap(err, "register reconcile job")
	}

	scheduler.Start()
	s.scheduler = scheduler
	s.logger.InfoContext(ctx, "reconcile scheduler started", "interval", s.cfg.Interval.String(), "workers", s.cfg.Workers)
	return nil
}

func (s *ReconcileService) Stop() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.scheduler == nil {
		return nil
	}
	err := s.scheduler.Shutdown()
	s.scheduler = nil
	if err != nil {
		return crerr.Wrap(err, "shutdown reconcile scheduler")
	}
	return nil
}
