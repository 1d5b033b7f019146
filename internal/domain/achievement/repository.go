package achievement

import "context"

type Repository interface {
	ListDefinitions(ctx context.Context) ([]Definition, error)
	// UpsertDefinition matches on name; it never deletes entries.
	UpsertDefinition(ctx context.Context, def Definition) (Definition, bool, error)
	ListProgressByPlayer(ctx context.Context, playerID int64) ([]Progress, error)
	// SaveProgress writes every row for one player atomically. Implementations
	// must not turn an unlocked row back into a locked one. It returns the
	// achievement ids this write unlocked, judged against the stored rows
	// at write time, so a row unlocked by a concurrent writer is not reported.
	SaveProgress(ctx context.Context, playerID int64, items []Progress) ([]int64, error)
}
