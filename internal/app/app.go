package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/stathub/internal/config"
	"github.com/riskibarqy/stathub/internal/domain/achievement"
	"github.com/riskibarqy/stathub/internal/domain/leaderboard"
	"github.com/riskibarqy/stathub/internal/domain/match"
	"github.com/riskibarqy/stathub/internal/domain/matchstat"
	"github.com/riskibarqy/stathub/internal/domain/player"
	"github.com/riskibarqy/stathub/internal/domain/trophy"
	cacherepo "github.com/riskibarqy/stathub/internal/infrastructure/repository/cache"
	"github.com/riskibarqy/stathub/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/stathub/internal/infrastructure/repository/postgres"
	"github.com/riskibarqy/stathub/internal/interfaces/httpapi"
	"github.com/riskibarqy/stathub/internal/platform/logging"
	"github.com/riskibarqy/stathub/internal/usecase"
)

// Repositories is the storage a Services set runs on.
type Repositories struct {
	Players      player.Repository
	Matches      match.Repository
	Stats        matchstat.Repository
	Achievements achievement.Repository
	Trophies     trophy.Repository
	Leaderboard  leaderboard.Repository
}

// NewMemoryRepositories serves every repository from one in-process store.
func NewMemoryRepositories(store *memory.Store) Repositories {
	return Repositories{
		Players:      memory.NewPlayerRepository(store),
		Matches:      memory.NewMatchRepository(store),
		Stats:        memory.NewStatRepository(store),
		Achievements: memory.NewAchievementRepository(store),
		Trophies:     memory.NewTrophyRepository(store),
		Leaderboard:  memory.NewLeaderboardRepository(store),
	}
}

func NewPostgresRepositories(db *sqlx.DB) Repositories {
	return Repositories{
		Players:      postgres.NewPlayerRepository(db),
		Matches:      postgres.NewMatchRepository(db),
		Stats:        postgres.NewStatRepository(db),
		Achievements: postgres.NewAchievementRepository(db),
		Trophies:     postgres.NewTrophyRepository(db),
		Leaderboard:  postgres.NewLeaderboardRepository(db),
	}
}

// WithCache wraps the read-mostly repositories (catalog, matches) in TTL
// caches. Progress, stats and trophies are never cached.
func (r Repositories) WithCache(ttl time.Duration) Repositories {
	r.Achievements = cacherepo.NewAchievementRepository(r.Achievements, ttl)
	r.Matches = cacherepo.NewMatchRepository(r.Matches, ttl)
	return r
}

// Services is the usecase graph wired over one Repositories set.
type Services struct {
	Catalog      *usecase.CatalogService
	Achievements *usecase.AchievementService
	Progression  *usecase.ProgressionService
	Trophies     *usecase.TrophyService
	Stats        *usecase.StatService
	Leaderboard  *usecase.LeaderboardService
	Dashboard    *usecase.DashboardService
	Reconcile    *usecase.ReconcileService
}

func NewServices(repos Repositories, cfg config.Config, logger *logging.Logger) Services {
	progressionSvc := usecase.NewProgressionService(repos.Players, repos.Achievements, logger)
	achievementSvc := usecase.NewAchievementService(repos.Achievements, repos.Stats, repos.Players, progressionSvc, logger)
	trophySvc := usecase.NewTrophyService(repos.Trophies, repos.Stats, repos.Matches, repos.Players, logger)
	reconcileSvc := usecase.NewReconcileService(
		repos.Players,
		repos.Matches,
		achievementSvc,
		trophySvc,
		usecase.ReconcileConfig{Interval: cfg.Reconcile.Interval, Workers: cfg.Reconcile.Workers},
		logger,
	)

	return Services{
		Catalog:      usecase.NewCatalogService(repos.Achievements, reconcileSvc, logger),
		Achievements: achievementSvc,
		Progression:  progressionSvc,
		Trophies:     trophySvc,
		Stats:        usecase.NewStatService(repos.Stats, repos.Players, repos.Matches, achievementSvc, trophySvc, logger),
		Leaderboard: usecase.NewLeaderboardService(
			repos.Leaderboard,
			repos.Players,
			progressionSvc,
			usecase.LeaderboardConfig{
				DefaultLimit:   cfg.Leaderboard.DefaultLimit,
				MaxLimit:       cfg.Leaderboard.MaxLimit,
				RefreshWorkers: cfg.Leaderboard.RefreshWorkers,
			},
			logger,
		),
		Dashboard: usecase.NewDashboardService(repos.Players, repos.Stats, repos.Achievements, repos.Trophies, repos.Leaderboard),
		Reconcile: reconcileSvc,
	}
}

// App owns the HTTP server and the resources behind it.
type App struct {
	Server   *http.Server
	Services Services

	cfg    config.Config
	db     *sqlx.DB
	logger *logging.Logger
}

func New(ctx context.Context, cfg config.Config, logger *logging.Logger) (*App, error) {
	if logger == nil {
		logger = logging.Default()
	}
	if strings.TrimSpace(cfg.HTTPAddr) == "" {
		return nil, fmt.Errorf("http server addr cannot be empty")
	}

	var (
		repos Repositories
		db    *sqlx.DB
	)
	if cfg.UsesMemoryStore() {
		logger.Warn("DB_URL empty, using in-memory store with demo roster")
		repos = NewMemoryRepositories(memory.NewSeededStore())
	} else {
		var err error
		db, err = openDB(ctx, cfg)
		if err != nil {
			return nil, err
		}
		repos = NewPostgresRepositories(db)
	}
	if cfg.CacheEnabled {
		repos = repos.WithCache(cfg.CacheTTL)
	}

	services := NewServices(repos, cfg, logger)
	if cfg.SeedCatalogOnStart {
		if _, err := services.Catalog.Seed(ctx, false); err != nil {
			closeDB(db, logger)
			return nil, fmt.Errorf("seed achievement catalog: %w", err)
		}
	}

	handler := httpapi.NewHandler(
		services.Catalog,
		services.Achievements,
		services.Progression,
		services.Trophies,
		services.Stats,
		services.Leaderboard,
		services.Dashboard,
		services.Reconcile,
		logger,
	)
	router := httpapi.NewRouter(handler, logger, cfg.CORSAllowedOrigins, cfg.AdminAPIToken)

	return &App{
		Server: &http.Server{
			Addr:         cfg.HTTPAddr,
			Handler:      router,
			ReadTimeout:  cfg.ReadTimeout,
			WriteTimeout: cfg.WriteTimeout,
		},
		Services: services,
		cfg:      cfg,
		db:       db,
		logger:   logger,
	}, nil
}

// StartBackground starts the reconcile schedule when enabled.
func (a *App) StartBackground(ctx context.Context) error {
	if !a.cfg.Reconcile.Enabled {
		a.logger.Info("reconcile job disabled", "reason", "RECONCILE_ENABLED=false")
		return nil
	}
	return a.Services.Reconcile.Start(ctx)
}

// Shutdown stops the HTTP server, the reconcile schedule and the database
// pool, in that order. Every step runs even when an earlier one fails.
func (a *App) Shutdown(ctx context.Context) error {
	var errs []error
	if err := a.Server.Shutdown(ctx); err != nil {
		errs = append(errs, fmt.Errorf("shutdown http server: %w", err))
	}
	if err := a.Services.Reconcile.Stop(); err != nil {
		errs = append(errs, fmt.Errorf("stop reconcile job: %w", err))
	}
	if a.db != nil {
		if err := a.db.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close db: %w", err))
		}
	}
	return errors.Join(errs...)
}
