package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/stathub/internal/domain/matchstat"
	qb "github.com/riskibarqy/stathub/internal/platform/querybuilder"
)

type StatRepository struct {
	db *sqlx.DB
}

var statSelectColumns = []string{"id", "match_id", "player_id", "team", "goals", "assists", "rating", "created_at"}

func NewStatRepository(db *sqlx.DB) *StatRepository {
	return &StatRepository{db: db}
}

func (r *StatRepository) Create(ctx context.Context, stat matchstat.Stat) (matchstat.Stat, error) {
	insertModel := statInsertModel{
		MatchID:   stat.MatchID,
		PlayerID:  stat.PlayerID,
		Team:      string(stat.Team),
		Goals:     stat.Goals,
		Assists:   stat.Assists,
		Rating:    stat.Rating,
		CreatedAt: stat.CreatedAt,
	}
	query, args, err := qb.InsertModel("match_stats", insertModel, "RETURNING "+strings.Join(statSelectColumns, ", "))
	if err != nil {
		return matchstat.Stat{}, fmt.Errorf("build insert match stat query: %w", err)
	}

	var row statTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isUniqueViolation(err) {
			return matchstat.Stat{}, fmt.Errorf("%w: match=%d player=%d", matchstat.ErrDuplicate, stat.MatchID, stat.PlayerID)
		}
		return matchstat.Stat{}, fmt.Errorf("insert match stat match=%d player=%d: %w", stat.MatchID, stat.PlayerID, err)
	}
	return statFromRow(row), nil
}

func (r *StatRepository) Update(ctx context.Context, stat matchstat.Stat) (matchstat.Stat, error) {
	query, args, err := qb.Update("match_stats").
		Set("team", string(stat.Team)).
		Set("goals", stat.Goals).
		Set("assists", stat.Assists).
		Set("rating", stat.Rating).
		Where(qb.Eq("id", stat.ID)).
		Returning(statSelectColumns...).
		ToSQL()
	if err != nil {
		return matchstat.Stat{}, fmt.Errorf("build update match stat query: %w", err)
	}

	var row statTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return matchstat.Stat{}, fmt.Errorf("stat %d not found", stat.ID)
		}
		return matchstat.Stat{}, fmt.Errorf("update match stat id=%d: %w", stat.ID, err)
	}
	return statFromRow(row), nil
}

func (r *StatRepository) Delete(ctx context.Context, statID int64) error {
	query, args, err := qb.DeleteFrom("match_stats").Where(qb.Eq("id", statID)).ToSQL()
	if err != nil {
		return fmt.Errorf("build delete match stat query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("delete match stat id=%d: %w", statID, err)
	}
	return nil
}

func (r *StatRepository) GetByID(ctx context.Context, statID int64) (matchstat.Stat, bool, error) {
	query, args, err := qb.Select(statSelectColumns...).From("match_stats").
		Where(qb.Eq("id", statID)).
		Limit(1).
		ToSQL()
	if err != nil {
		return matchstat.Stat{}, false, fmt.Errorf("build select match stat by id query: %w", err)
	}

	var row statTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return matchstat.Stat{}, false, nil
		}
		return matchstat.Stat{}, false, fmt.Errorf("select match stat by id=%d: %w", statID, err)
	}
	return statFromRow(row), true, nil
}

func (r *StatRepository) ListByPlayer(ctx context.Context, playerID int64) ([]matchstat.Stat, error) {
	return r.list(ctx, qb.Eq("player_id", playerID), "player", playerID)
}

func (r *StatRepository) ListByMatch(ctx context.Context, matchID int64) ([]matchstat.Stat, error) {
	return r.list(ctx, qb.Eq("match_id", matchID), "match", matchID)
}

func (r *StatRepository) list(ctx context.Context, filter qb.Condition, scope string, id int64) ([]matchstat.Stat, error) {
	query, args, err := qb.Select(statSelectColumns...).From("match_stats").
		Where(filter).
		OrderBy("id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select match stats by %s query: %w", scope, err)
	}

	var rows []statTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select match stats by %s=%d: %w", scope, id, err)
	}

	out := make([]matchstat.Stat, 0, len(rows))
	for _, row := range rows {
		out = append(out, statFromRow(row))
	}
	return out, nil
}

func statFromRow(row statTableModel) matchstat.Stat {
	return matchstat.Stat{
		ID:        row.ID,
		MatchID:   row.MatchID,
		PlayerID:  row.PlayerID,
		Team:      matchstat.Team(row.Team),
		Goals:     row.Goals,
		Assists:   row.Assists,
		Rating:    row.Rating,
		CreatedAt: row.CreatedAt,
	}
}
