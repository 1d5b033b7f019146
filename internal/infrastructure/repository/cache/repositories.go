package cache

import (
	"context"
	"strconv"
	"time"

	"github.com/riskibarqy/stathub/internal/domain/achievement"
	"github.com/riskibarqy/stathub/internal/domain/match"
	basecache "github.com/riskibarqy/stathub/internal/platform/cache"
)

const catalogKey = "achievement:definitions"

// AchievementRepository caches the catalog, which every evaluation reads.
// Progress rows pass straight through.
type AchievementRepository struct {
	next  achievement.Repository
	cache *basecache.Store[[]achievement.Definition]
}

func NewAchievementRepository(next achievement.Repository, ttl time.Duration) *AchievementRepository {
	return &AchievementRepository{next: next, cache: basecache.NewStore[[]achievement.Definition](ttl)}
}

func (r *AchievementRepository) ListDefinitions(ctx context.Context) ([]achievement.Definition, error) {
	items, err := r.cache.GetOrLoad(ctx, catalogKey, func(ctx context.Context) ([]achievement.Definition, error) {
		items, err := r.next.ListDefinitions(ctx)
		if err != nil {
			return nil, err
		}
		return append([]achievement.Definition(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}
	return append([]achievement.Definition(nil), items...), nil
}

func (r *AchievementRepository) UpsertDefinition(ctx context.Context, def achievement.Definition) (achievement.Definition, bool, error) {
	saved, created, err := r.next.UpsertDefinition(ctx, def)
	r.cache.Delete(ctx, catalogKey)
	return saved, created, err
}

func (r *AchievementRepository) ListProgressByPlayer(ctx context.Context, playerID int64) ([]achievement.Progress, error) {
	return r.next.ListProgressByPlayer(ctx, playerID)
}

func (r *AchievementRepository) SaveProgress(ctx context.Context, playerID int64, items []achievement.Progress) ([]int64, error) {
	return r.next.SaveProgress(ctx, playerID, items)
}

type cachedMatch struct {
	value  match.Match
	exists bool
}

// MatchRepository caches match lookups; every stat write and trophy
// recompute resolves its match first. Misses are cached too, bounded by ttl.
type MatchRepository struct {
	next  match.Repository
	cache *basecache.Store[cachedMatch]
}

func NewMatchRepository(next match.Repository, ttl time.Duration) *MatchRepository {
	return &MatchRepository{next: next, cache: basecache.NewStore[cachedMatch](ttl)}
}

func (r *MatchRepository) GetByID(ctx context.Context, matchID int64) (match.Match, bool, error) {
	key := "match:id:" + strconv.FormatInt(matchID, 10)
	cached, err := r.cache.GetOrLoad(ctx, key, func(ctx context.Context) (cachedMatch, error) {
		item, exists, err := r.next.GetByID(ctx, matchID)
		if err != nil {
			return cachedMatch{}, err
		}
		return cachedMatch{value: item, exists: exists}, nil
	})
	if err != nil {
		return match.Match{}, false, err
	}
	return cached.value, cached.exists, nil
}

func (r *MatchRepository) List(ctx context.Context) ([]match.Match, error) {
	return r.next.List(ctx)
}
