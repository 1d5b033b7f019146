package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/riskibarqy/stathub/internal/domain/matchstat"
	"github.com/riskibarqy/stathub/internal/domain/trophy"
	"github.com/stretchr/testify/require"
)

func TestReconcileService_RepairsMissedEnrichment(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t, true)
	ctx := context.Background()
	now := time.Now().UTC()
	// Written behind the services' back, as if enrichment had failed.
	for _, s := range []matchstat.Stat{
		{MatchID: 1, PlayerID: 2, Team: matchstat.TeamHome, Goals: 1, Rating: 7.0, CreatedAt: now},
		{MatchID: 1, PlayerID: 3, Team: matchstat.TeamAway, Assists: 1, Rating: 6.0, CreatedAt: now},
		{MatchID: 2, PlayerID: 4, Team: matchstat.TeamHome, Rating: 6.5, CreatedAt: now},
	} {
		_, err := env.stats.Create(ctx, s)
		require.NoError(t, err)
	}

	got, err := env.reconcile.Run(ctx)
	require.NoError(t, err)
	require.Equal(t, 5, got.Players)
	require.Equal(t, 3, got.PlayersUnlocked)
	require.Zero(t, got.PlayersFailed)
	require.Equal(t, 6, got.Matches)
	require.Equal(t, 2, got.MatchesAwarded)

	item, err := env.trophySvc.GetForMatch(ctx, 1)
	require.NoError(t, err)
	require.Equal(t, int64(2), item.AwardedTo)

	again, err := env.reconcile.Run(ctx)
	require.NoError(t, err)
	require.Zero(t, again.PlayersUnlocked)
	require.Equal(t, 1, env.trophies.Count(1))
}

func TestReconcileService_CountsFailures(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t, false)
	service := NewReconcileService(env.players, env.matches, failingEvaluator{}, failingTrophies{},
		ReconcileConfig{Workers: 2}, nil)

	got, err := service.Run(context.Background())
	require.NoError(t, err)
	require.Equal(t, 5, got.PlayersFailed)
	require.Equal(t, 6, got.MatchesFailed)
}

func TestReconcileService_StartStop(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t, false)
	calls := make(chan struct{}, 16)
	service := NewReconcileService(env.players, env.matches, env.evaluator, signalingTrophies{calls: calls},
		ReconcileConfig{Interval: 20 * time.Millisecond, Workers: 1}, nil)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	require.NoError(t, service.Start(ctx))
	require.Error(t, service.Start(ctx))

	select {
	case <-calls:
	case <-time.After(2 * time.Second):
		t.Fatalf("scheduled reconcile did not run")
	}

	require.NoError(t, service.Stop())
	require.NoError(t, service.Stop())
}

type signalingTrophies struct {
	calls chan struct{}
}

func (s signalingTrophies) RecomputeForMatch(context.Context, int64) (*trophy.Trophy, error) {
	select {
	case s.calls <- struct{}{}:
	default:
	}
	return nil, nil
}
