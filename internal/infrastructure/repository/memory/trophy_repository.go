package memory

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/riskibarqy/stathub/internal/domain/trophy"
)

type TrophyRepository struct {
	store *Store
}

func NewTrophyRepository(store *Store) *TrophyRepository {
	return &TrophyRepository{store: store}
}

func (r *TrophyRepository) GetByMatch(_ context.Context, matchID int64) (trophy.Trophy, bool, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	item, ok := r.store.trophies[matchID]
	return item, ok, nil
}

func (r *TrophyRepository) Create(_ context.Context, item trophy.Trophy) (trophy.Trophy, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, ok := r.store.trophies[item.MatchID]; ok {
		return trophy.Trophy{}, trophy.ErrAlreadyAwarded
	}
	r.store.nextTrophyID++
	item.ID = r.store.nextTrophyID
	r.store.trophies[item.MatchID] = item
	return item, nil
}

func (r *TrophyRepository) UpdateWinner(_ context.Context, matchID, awardedTo int64, awardedAt time.Time) (trophy.Trophy, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	item, ok := r.store.trophies[matchID]
	if !ok {
		return trophy.Trophy{}, fmt.Errorf("trophy for match %d not found", matchID)
	}
	item.AwardedTo = awardedTo
	item.DateAwarded = awardedAt
	r.store.trophies[matchID] = item
	return item, nil
}

func (r *TrophyRepository) DeleteByMatch(_ context.Context, matchID int64) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	delete(r.store.trophies, matchID)
	return nil
}

func (r *TrophyRepository) ListByPlayer(_ context.Context, playerID int64) ([]trophy.Trophy, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	out := make([]trophy.Trophy, 0)
	for _, t := range r.store.trophies {
		if t.AwardedTo == playerID {
			out = append(out, t)
		}
	}
	slices.SortFunc(out, func(a, b trophy.Trophy) int {
		if c := b.DateAwarded.Compare(a.DateAwarded); c != 0 {
			return c
		}
		return cmp.Compare(b.ID, a.ID)
	})
	return out, nil
}

// Count reports how many trophies exist for matchID.
func (r *TrophyRepository) Count(matchID int64) int {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	if _, ok := r.store.trophies[matchID]; ok {
		return 1
	}
	return 0
}
