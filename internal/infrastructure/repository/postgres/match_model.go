package postgres

import "time"

type matchTableModel struct {
	ID        int64     `db:"id"`
	HomeTeam  string    `db:"home_team"`
	AwayTeam  string    `db:"away_team"`
	HomeScore int       `db:"home_score"`
	AwayScore int       `db:"away_score"`
	MatchDate time.Time `db:"match_date"`
}
