package memory

import (
	"cmp"
	"context"
	"slices"

	"github.com/riskibarqy/stathub/internal/domain/achievement"
)

type AchievementRepository struct {
	store *Store
}

func NewAchievementRepository(store *Store) *AchievementRepository {
	return &AchievementRepository{store: store}
}

func (r *AchievementRepository) ListDefinitions(_ context.Context) ([]achievement.Definition, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	out := make([]achievement.Definition, 0, len(r.store.defs))
	for _, d := range r.store.defs {
		out = append(out, d)
	}
	slices.SortFunc(out, func(a, b achievement.Definition) int { return cmp.Compare(a.ID, b.ID) })
	return out, nil
}

func (r *AchievementRepository) UpsertDefinition(_ context.Context, def achievement.Definition) (achievement.Definition, bool, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	for id, existing := range r.store.defs {
		if existing.Name == def.Name {
			def.ID = id
			r.store.defs[id] = def
			return def, false, nil
		}
	}

	r.store.nextDefID++
	def.ID = r.store.nextDefID
	r.store.defs[def.ID] = def
	return def, true, nil
}

func (r *AchievementRepository) ListProgressByPlayer(_ context.Context, playerID int64) ([]achievement.Progress, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	out := make([]achievement.Progress, 0)
	for key, p := range r.store.progress {
		if key.playerID == playerID {
			out = append(out, cloneProgress(p))
		}
	}
	slices.SortFunc(out, func(a, b achievement.Progress) int { return cmp.Compare(a.AchievementID, b.AchievementID) })
	return out, nil
}

// SaveProgress writes every row under one lock. An unlocked row keeps its
// unlock and first unlocked_at whatever the incoming row says.
func (r *AchievementRepository) SaveProgress(_ context.Context, playerID int64, items []achievement.Progress) ([]int64, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	var newlyUnlocked []int64
	for _, p := range items {
		key := progressKey{playerID: playerID, achievementID: p.AchievementID}
		p.PlayerID = playerID
		if existing, ok := r.store.progress[key]; ok && existing.Unlocked {
			p.Unlocked = true
			p.UnlockedAt = existing.UnlockedAt
		} else if p.Unlocked {
			newlyUnlocked = append(newlyUnlocked, p.AchievementID)
		}
		r.store.progress[key] = cloneProgress(p)
	}
	return newlyUnlocked, nil
}
