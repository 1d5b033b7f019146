package postgres

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/stathub/internal/domain/trophy"
	qb "github.com/riskibarqy/stathub/internal/platform/querybuilder"
)

type TrophyRepository struct {
	db *sqlx.DB
}

var trophySelectColumns = []string{"id", "match_id", "awarded_to", "name", "description", "date_awarded"}

func NewTrophyRepository(db *sqlx.DB) *TrophyRepository {
	return &TrophyRepository{db: db}
}

func (r *TrophyRepository) GetByMatch(ctx context.Context, matchID int64) (trophy.Trophy, bool, error) {
	query, args, err := qb.Select(trophySelectColumns...).From("trophies").
		Where(qb.Eq("match_id", matchID)).
		Limit(1).
		ToSQL()
	if err != nil {
		return trophy.Trophy{}, false, fmt.Errorf("build select trophy by match query: %w", err)
	}

	var row trophyTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return trophy.Trophy{}, false, nil
		}
		return trophy.Trophy{}, false, fmt.Errorf("select trophy by match=%d: %w", matchID, err)
	}
	return trophyFromRow(row), true, nil
}

// Create relies on the unique index on match_id; a concurrent award for the
// same match surfaces as trophy.ErrAlreadyAwarded.
func (r *TrophyRepository) Create(ctx context.Context, item trophy.Trophy) (trophy.Trophy, error) {
	insertModel := trophyInsertModel{
		MatchID:     item.MatchID,
		AwardedTo:   item.AwardedTo,
		Name:        item.Name,
		Description: item.Description,
		DateAwarded: item.DateAwarded,
	}
	query, args, err := qb.InsertModel("trophies", insertModel, "RETURNING "+strings.Join(trophySelectColumns, ", "))
	if err != nil {
		return trophy.Trophy{}, fmt.Errorf("build insert trophy query: %w", err)
	}

	var row trophyTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isUniqueViolation(err) {
			return trophy.Trophy{}, fmt.Errorf("%w: match=%d", trophy.ErrAlreadyAwarded, item.MatchID)
		}
		return trophy.Trophy{}, fmt.Errorf("insert trophy match=%d: %w", item.MatchID, err)
	}
	return trophyFromRow(row), nil
}

func (r *TrophyRepository) UpdateWinner(ctx context.Context, matchID, awardedTo int64, awardedAt time.Time) (trophy.Trophy, error) {
	query, args, err := qb.Update("trophies").
		Set("awarded_to", awardedTo).
		Set("date_awarded", awardedAt).
		Where(qb.Eq("match_id", matchID)).
		Returning(trophySelectColumns...).
		ToSQL()
	if err != nil {
		return trophy.Trophy{}, fmt.Errorf("build update trophy winner query: %w", err)
	}

	var row trophyTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return trophy.Trophy{}, fmt.Errorf("trophy for match %d not found", matchID)
		}
		return trophy.Trophy{}, fmt.Errorf("update trophy winner match=%d: %w", matchID, err)
	}
	return trophyFromRow(row), nil
}

func (r *TrophyRepository) DeleteByMatch(ctx context.Context, matchID int64) error {
	query, args, err := qb.DeleteFrom("trophies").Where(qb.Eq("match_id", matchID)).ToSQL()
	if err != nil {
		return fmt.Errorf("build delete trophy query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("delete trophy match=%d: %w", matchID, err)
	}
	return nil
}

func (r *TrophyRepository) ListByPlayer(ctx context.Context, playerID int64) ([]trophy.Trophy, error) {
	query, args, err := qb.Select(trophySelectColumns...).From("trophies").
		Where(qb.Eq("awarded_to", playerID)).
		OrderBy("date_awarded DESC", "id DESC").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select trophies by player query: %w", err)
	}

	var rows []trophyTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select trophies by player=%d: %w", playerID, err)
	}

	out := make([]trophy.Trophy, 0, len(rows))
	for _, row := range rows {
		out = append(out, trophyFromRow(row))
	}
	return out, nil
}

func trophyFromRow(row trophyTableModel) trophy.Trophy {
	return trophy.Trophy{
		ID:          row.ID,
		MatchID:     row.MatchID,
		AwardedTo:   row.AwardedTo,
		Name:        row.Name,
		Description: row.Description,
		DateAwarded: row.DateAwarded,
	}
}
