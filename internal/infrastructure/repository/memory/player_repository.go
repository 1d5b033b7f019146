package memory

import (
	"cmp"
	"context"
	"fmt"
	"slices"

	"github.com/riskibarqy/stathub/internal/domain/player"
)

type PlayerRepository struct {
	store *Store
}

func NewPlayerRepository(store *Store) *PlayerRepository {
	return &PlayerRepository{store: store}
}

func (r *PlayerRepository) GetByID(_ context.Context, playerID int64) (player.Player, bool, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	item, ok := r.store.players[playerID]
	return item, ok, nil
}

func (r *PlayerRepository) ListByRole(_ context.Context, role player.Role) ([]player.Player, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	out := make([]player.Player, 0, len(r.store.players))
	for _, p := range r.store.players {
		if p.Role == role {
			out = append(out, p)
		}
	}
	slices.SortFunc(out, func(a, b player.Player) int { return cmp.Compare(a.ID, b.ID) })
	return out, nil
}

func (r *PlayerRepository) UpdateProgression(_ context.Context, playerID int64, xp, level int) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	item, ok := r.store.players[playerID]
	if !ok {
		return fmt.Errorf("player %d not found", playerID)
	}
	item.XP = xp
	item.Level = level
	r.store.players[playerID] = item
	return nil
}
