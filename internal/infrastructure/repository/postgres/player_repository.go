package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/stathub/internal/domain/player"
	qb "github.com/riskibarqy/stathub/internal/platform/querybuilder"
)

type PlayerRepository struct {
	db *sqlx.DB
}

var playerSelectColumns = []string{
	"id",
	"username",
	"full_name",
	"photo_url",
	"nationality",
	"favorite_position",
	"role",
	"xp",
	"level",
	"created_at",
	"updated_at",
}

func NewPlayerRepository(db *sqlx.DB) *PlayerRepository {
	return &PlayerRepository{db: db}
}

func (r *PlayerRepository) GetByID(ctx context.Context, playerID int64) (player.Player, bool, error) {
	query, args, err := qb.Select(playerSelectColumns...).From("users").
		Where(qb.Eq("id", playerID)).
		Limit(1).
		ToSQL()
	if err != nil {
		return player.Player{}, false, fmt.Errorf("build select player by id query: %w", err)
	}

	var row playerTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return player.Player{}, false, nil
		}
		return player.Player{}, false, fmt.Errorf("select player by id=%d: %w", playerID, err)
	}

	return playerFromRow(row), true, nil
}

func (r *PlayerRepository) ListByRole(ctx context.Context, role player.Role) ([]player.Player, error) {
	query, args, err := qb.Select(playerSelectColumns...).From("users").
		Where(qb.Eq("role", string(role))).
		OrderBy("id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select players by role query: %w", err)
	}

	var rows []playerTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select players by role=%s: %w", role, err)
	}

	out := make([]player.Player, 0, len(rows))
	for _, row := range rows {
		out = append(out, playerFromRow(row))
	}
	return out, nil
}

func (r *PlayerRepository) UpdateProgression(ctx context.Context, playerID int64, xp, level int) error {
	query, args, err := qb.Update("users").
		Set("xp", xp).
		Set("level", level).
		SetExpr("updated_at", "NOW()").
		Where(qb.Eq("id", playerID)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build update player progression query: %w", err)
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update player progression id=%d: %w", playerID, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("update player progression id=%d: player not found", playerID)
	}
	return nil
}

func playerFromRow(row playerTableModel) player.Player {
	return player.Player{
		ID:               row.ID,
		Username:         row.Username,
		FullName:         row.FullName,
		PhotoURL:         row.PhotoURL,
		Nationality:      row.Nationality,
		FavoritePosition: row.FavoritePosition,
		Role:             player.Role(row.Role),
		XP:               row.XP,
		Level:            row.Level,
	}
}
