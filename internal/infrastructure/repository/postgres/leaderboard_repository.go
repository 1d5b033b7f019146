package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/stathub/internal/domain/leaderboard"
	"github.com/riskibarqy/stathub/internal/domain/player"
	qb "github.com/riskibarqy/stathub/internal/platform/querybuilder"
)

type LeaderboardRepository struct {
	db *sqlx.DB
}

type leaderboardAggregateRow struct {
	PlayerID         int64   `db:"player_id"`
	Username         string  `db:"username"`
	FullName         string  `db:"full_name"`
	PhotoURL         string  `db:"photo_url"`
	Nationality      string  `db:"nationality"`
	Position         string  `db:"favorite_position"`
	XP               int     `db:"xp"`
	Level            int     `db:"level"`
	MatchesPlayed    int     `db:"matches_played"`
	TotalGoals       int     `db:"total_goals"`
	TotalAssists     int     `db:"total_assists"`
	RatingSum        float64 `db:"rating_sum"`
	AchievementCount int     `db:"achievement_count"`
	TrophyCount      int     `db:"trophy_count"`
}

func NewLeaderboardRepository(db *sqlx.DB) *LeaderboardRepository {
	return &LeaderboardRepository{db: db}
}

// ListAggregates reads every non-admin player with per-table subtotals. Each
// subquery is grouped before the join so counts never multiply.
func (r *LeaderboardRepository) ListAggregates(ctx context.Context) ([]leaderboard.Aggregate, error) {
	query, args, err := qb.Select(
		"u.id AS player_id",
		"u.username",
		"u.full_name",
		"u.photo_url",
		"u.nationality",
		"u.favorite_position",
		"u.xp",
		"u.level",
		"COALESCE(s.matches_played, 0) AS matches_played",
		"COALESCE(s.total_goals, 0) AS total_goals",
		"COALESCE(s.total_assists, 0) AS total_assists",
		"COALESCE(s.rating_sum, 0) AS rating_sum",
		"COALESCE(a.achievement_count, 0) AS achievement_count",
		"COALESCE(t.trophy_count, 0) AS trophy_count",
	).From("users u").
		LeftJoin(`(SELECT player_id, COUNT(*) AS matches_played, SUM(goals) AS total_goals,
        SUM(assists) AS total_assists, SUM(rating) AS rating_sum
    FROM match_stats GROUP BY player_id) s`, "s.player_id = u.id").
		LeftJoin(`(SELECT player_id, COUNT(*) AS achievement_count
    FROM player_achievements WHERE unlocked GROUP BY player_id) a`, "a.player_id = u.id").
		LeftJoin(`(SELECT awarded_to, COUNT(*) AS trophy_count
    FROM trophies GROUP BY awarded_to) t`, "t.awarded_to = u.id").
		Where(qb.Expr("u.role <> ?", string(player.RoleAdmin))).
		OrderBy("u.id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select leaderboard aggregates query: %w", err)
	}

	var rows []leaderboardAggregateRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select leaderboard aggregates: %w", err)
	}

	out := make([]leaderboard.Aggregate, 0, len(rows))
	for _, row := range rows {
		out = append(out, leaderboard.Aggregate{
			PlayerID:         row.PlayerID,
			Username:         row.Username,
			FullName:         row.FullName,
			PhotoURL:         row.PhotoURL,
			Nationality:      row.Nationality,
			Position:         row.Position,
			MatchesPlayed:    row.MatchesPlayed,
			TotalGoals:       row.TotalGoals,
			TotalAssists:     row.TotalAssists,
			RatingSum:        row.RatingSum,
			AchievementCount: row.AchievementCount,
			TrophyCount:      row.TrophyCount,
			XP:               row.XP,
			Level:            row.Level,
		})
	}
	return out, nil
}
