package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/riskibarqy/stathub/internal/domain/achievement"
	"github.com/riskibarqy/stathub/internal/platform/logging"
)

type UpsertAchievementInput struct {
	Name        string
	Code        string
	Description string
	Tier        string
	Metric      string
	TargetValue int
	Points      int
	MinSample   int
}

type SeedCatalogResult struct {
	Created    int              `json:"created"`
	Updated    int              `json:"updated"`
	Backfilled bool             `json:"backfilled"`
	Backfill   *ReconcileResult `json:"backfill,omitempty"`
}

type playerReconciler interface {
	EvaluatePlayers(ctx context.Context) (ReconcileResult, error)
}

// CatalogService administers achievement definitions.
type CatalogService struct {
	achievements achievement.Repository
	reconciler   playerReconciler
	logger       *logging.Logger
}

func NewCatalogService(
	achievements achievement.Repository,
	reconciler playerReconciler,
	logger *logging.Logger,
) *CatalogService {
	if logger == nil {
		logger = logging.Default()
	}
	return &CatalogService{
		achievements: achievements,
		reconciler:   reconciler,
		logger:       logger,
	}
}

func (s *CatalogService) List(ctx context.Context) ([]achievement.Definition, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.CatalogService.List")
	defer span.End()

	items, err := s.achievements.ListDefinitions(ctx)
	if err != nil {
		return nil, fmt.Errorf("list achievement definitions: %w", err)
	}
	return items, nil
}

// Upsert creates or updates a definition matched by name. created reports
// whether a new entry was added.
func (s *CatalogService) Upsert(ctx context.Context, input UpsertAchievementInput) (achievement.Definition, bool, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.CatalogService.Upsert")
	defer span.End()

	tier := achievement.Tier(strings.TrimSpace(input.Tier))
	if tier == "" {
		tier = achievement.TierBeginner
	}
	def := achievement.Definition{
		Name:        input.Name,
		Code:        strings.TrimSpace(input.Code),
		Description: strings.TrimSpace(input.Description),
		Tier:        tier,
		Metric:      achievement.Metric(strings.ToLower(strings.TrimSpace(input.Metric))),
		TargetValue: input.TargetValue,
		Points:      input.Points,
		MinSample:   input.MinSample,
	}.Normalize()

	if def.TargetValue < 0 {
		return achievement.Definition{}, false, fmt.Errorf("%w: target_value cannot be negative", ErrInvalidInput)
	}
	if err := def.Validate(); err != nil {
		return achievement.Definition{}, false, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	saved, created, err := s.achievements.UpsertDefinition(ctx, def)
	if err != nil {
		return achievement.Definition{}, false, fmt.Errorf("upsert achievement definition: %w", err)
	}

	s.logger.InfoContext(ctx, "achievement definition upserted",
		"achievement_id", saved.ID,
		"achievement", saved.Name,
		"created", created,
	)
	return saved, created, nil
}

// Seed upserts the built-in catalog. With backfill set, every player is
// evaluated afterwards so existing stats unlock new entries.
func (s *CatalogService) Seed(ctx context.Context, backfill bool) (SeedCatalogResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.CatalogService.Seed")
	defer span.End()

	var result SeedCatalogResult
	var errs []error
	for _, def := range achievement.DefaultCatalog() {
		_, created, err := s.achievements.UpsertDefinition(ctx, def)
		if err != nil {
			errs = append(errs, fmt.Errorf("seed %q: %w", def.Name, err))
			continue
		}
		if created {
			result.Created++
		} else {
			result.Updated++
		}
	}
	if err := errors.Join(errs...); err != nil {
		return result, fmt.Errorf("seed achievement catalog: %w", err)
	}

	s.logger.InfoContext(ctx, "achievement catalog seeded",
		"created", result.Created,
		"updated", result.Updated,
	)

	if !backfill || s.reconciler == nil {
		return result, nil
	}

	backfilled, err := s.reconciler.EvaluatePlayers(ctx)
	if err != nil {
		return result, fmt.Errorf("backfill achievements: %w", err)
	}
	result.Backfilled = true
	result.Backfill = &backfilled
	return result, nil
}
