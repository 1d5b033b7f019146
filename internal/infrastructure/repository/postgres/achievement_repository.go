package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/stathub/internal/domain/achievement"
	qb "github.com/riskibarqy/stathub/internal/platform/querybuilder"
)

type AchievementRepository struct {
	db *sqlx.DB
}

func NewAchievementRepository(db *sqlx.DB) *AchievementRepository {
	return &AchievementRepository{db: db}
}

func (r *AchievementRepository) ListDefinitions(ctx context.Context) ([]achievement.Definition, error) {
	query, args, err := qb.Select(
		"id",
		"name",
		"code",
		"description",
		"tier",
		"metric",
		"target_value",
		"points",
		"min_sample",
		"created_at",
		"updated_at",
	).From("achievements").
		OrderBy("id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select achievements query: %w", err)
	}

	var rows []achievementTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select achievements: %w", err)
	}

	out := make([]achievement.Definition, 0, len(rows))
	for _, row := range rows {
		out = append(out, achievement.Definition{
			ID:          row.ID,
			Name:        row.Name,
			Code:        row.Code,
			Description: row.Description,
			Tier:        achievement.Tier(row.Tier),
			Metric:      achievement.Metric(row.Metric),
			TargetValue: row.TargetValue,
			Points:      row.Points,
			MinSample:   row.MinSample,
		})
	}
	return out, nil
}

// UpsertDefinition reports created=true when the insert path ran; xmax is
// zero only for freshly inserted tuples.
func (r *AchievementRepository) UpsertDefinition(ctx context.Context, def achievement.Definition) (achievement.Definition, bool, error) {
	insertModel := achievementInsertModel{
		Name:        def.Name,
		Code:        def.Code,
		Description: def.Description,
		Tier:        string(def.Tier),
		Metric:      string(def.Metric),
		TargetValue: def.TargetValue,
		Points:      def.Points,
		MinSample:   def.MinSample,
	}
	query, args, err := qb.InsertModel("achievements", insertModel, `ON CONFLICT (name)
DO UPDATE SET
    code = EXCLUDED.code,
    description = EXCLUDED.description,
    tier = EXCLUDED.tier,
    metric = EXCLUDED.metric,
    target_value = EXCLUDED.target_value,
    points = EXCLUDED.points,
    min_sample = EXCLUDED.min_sample,
    updated_at = NOW()
RETURNING id, (xmax = 0) AS created`)
	if err != nil {
		return achievement.Definition{}, false, fmt.Errorf("build upsert achievement query: %w", err)
	}

	var res achievementUpsertResult
	if err := r.db.GetContext(ctx, &res, query, args...); err != nil {
		return achievement.Definition{}, false, fmt.Errorf("upsert achievement name=%q: %w", def.Name, err)
	}

	def.ID = res.ID
	return def, res.Created, nil
}

func (r *AchievementRepository) ListProgressByPlayer(ctx context.Context, playerID int64) ([]achievement.Progress, error) {
	query, args, err := qb.Select("player_id", "achievement_id", "current_value", "unlocked", "unlocked_at").
		From("player_achievements").
		Where(qb.Eq("player_id", playerID)).
		OrderBy("achievement_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select player achievements query: %w", err)
	}

	var rows []playerAchievementTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select player achievements player=%d: %w", playerID, err)
	}

	out := make([]achievement.Progress, 0, len(rows))
	for _, row := range rows {
		out = append(out, achievement.Progress{
			PlayerID:      row.PlayerID,
			AchievementID: row.AchievementID,
			CurrentValue:  row.CurrentValue,
			Unlocked:      row.Unlocked,
			UnlockedAt:    nullTimeToTimePtr(row.UnlockedAt),
		})
	}
	return out, nil
}

// SaveProgress locks the player row so concurrent evaluations in other
// processes queue behind this one, then upserts every row in one statement.
// An unlocked row stays unlocked and keeps its first unlocked_at. The ids it
// returns are read under that lock, so only this write's unlocks are reported.
func (r *AchievementRepository) SaveProgress(ctx context.Context, playerID int64, items []achievement.Progress) ([]int64, error) {
	if len(items) == 0 {
		return nil, nil
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin tx save player achievements: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	lockQuery, lockArgs, err := qb.Select("id").From("users").
		Where(qb.Eq("id", playerID)).
		ForUpdate().
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build lock player query: %w", err)
	}
	var lockedID int64
	if err := tx.GetContext(ctx, &lockedID, lockQuery, lockArgs...); err != nil {
		if isNotFound(err) {
			return nil, fmt.Errorf("lock player id=%d: player not found", playerID)
		}
		return nil, fmt.Errorf("lock player id=%d: %w", playerID, err)
	}

	unlockedQuery, unlockedArgs, err := qb.Select("achievement_id").From("player_achievements").
		Where(qb.Eq("player_id", playerID), qb.Eq("unlocked", true)).
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select unlocked achievements query: %w", err)
	}
	var alreadyUnlocked []int64
	if err := tx.SelectContext(ctx, &alreadyUnlocked, unlockedQuery, unlockedArgs...); err != nil {
		return nil, fmt.Errorf("select unlocked achievements player=%d: %w", playerID, err)
	}
	newlyUnlocked := newUnlocks(items, alreadyUnlocked)

	insert := qb.InsertInto("player_achievements").
		Columns("player_id", "achievement_id", "current_value", "unlocked", "unlocked_at")
	for _, item := range items {
		insert.Values(playerID, item.AchievementID, item.CurrentValue, item.Unlocked, timePtrToNullTime(item.UnlockedAt))
	}
	query, args, err := insert.Suffix(`ON CONFLICT (player_id, achievement_id)
DO UPDATE SET
    current_value = EXCLUDED.current_value,
    unlocked = player_achievements.unlocked OR EXCLUDED.unlocked,
    unlocked_at = COALESCE(player_achievements.unlocked_at, EXCLUDED.unlocked_at),
    updated_at = NOW()`).ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build upsert player achievements query: %w", err)
	}
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return nil, fmt.Errorf("upsert player achievements player=%d: %w", playerID, err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit save player achievements tx: %w", err)
	}
	return newlyUnlocked, nil
}

// newUnlocks keeps the unlocked items whose achievement was not unlocked
// before the write.
func newUnlocks(items []achievement.Progress, alreadyUnlocked []int64) []int64 {
	before := make(map[int64]struct{}, len(alreadyUnlocked))
	for _, id := range alreadyUnlocked {
		before[id] = struct{}{}
	}
	var out []int64
	for _, item := range items {
		if !item.Unlocked {
			continue
		}
		if _, ok := before[item.AchievementID]; ok {
			continue
		}
		out = append(out, item.AchievementID)
	}
	return out
}
