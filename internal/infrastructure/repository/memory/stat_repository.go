package memory

import (
	"cmp"
	"context"
	"fmt"
	"slices"

	"github.com/riskibarqy/stathub/internal/domain/matchstat"
)

type StatRepository struct {
	store *Store
}

func NewStatRepository(store *Store) *StatRepository {
	return &StatRepository{store: store}
}

func (r *StatRepository) Create(_ context.Context, stat matchstat.Stat) (matchstat.Stat, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	for _, existing := range r.store.stats {
		if existing.MatchID == stat.MatchID && existing.PlayerID == stat.PlayerID {
			return matchstat.Stat{}, matchstat.ErrDuplicate
		}
	}

	r.store.nextStatID++
	stat.ID = r.store.nextStatID
	r.store.stats[stat.ID] = stat
	return stat, nil
}

func (r *StatRepository) Update(_ context.Context, stat matchstat.Stat) (matchstat.Stat, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	current, ok := r.store.stats[stat.ID]
	if !ok {
		return matchstat.Stat{}, fmt.Errorf("stat %d not found", stat.ID)
	}
	current.Team = stat.Team
	current.Goals = stat.Goals
	current.Assists = stat.Assists
	current.Rating = stat.Rating
	r.store.stats[stat.ID] = current
	return current, nil
}

func (r *StatRepository) Delete(_ context.Context, statID int64) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	delete(r.store.stats, statID)
	return nil
}

func (r *StatRepository) GetByID(_ context.Context, statID int64) (matchstat.Stat, bool, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	item, ok := r.store.stats[statID]
	return item, ok, nil
}

func (r *StatRepository) ListByPlayer(_ context.Context, playerID int64) ([]matchstat.Stat, error) {
	return r.list(func(s matchstat.Stat) bool { return s.PlayerID == playerID }), nil
}

func (r *StatRepository) ListByMatch(_ context.Context, matchID int64) ([]matchstat.Stat, error) {
	return r.list(func(s matchstat.Stat) bool { return s.MatchID == matchID }), nil
}

// list returns matching rows in insertion (id) order.
func (r *StatRepository) list(keep func(matchstat.Stat) bool) []matchstat.Stat {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	out := make([]matchstat.Stat, 0)
	for _, s := range r.store.stats {
		if keep(s) {
			out = append(out, s)
		}
	}
	slices.SortFunc(out, func(a, b matchstat.Stat) int { return cmp.Compare(a.ID, b.ID) })
	return out
}
