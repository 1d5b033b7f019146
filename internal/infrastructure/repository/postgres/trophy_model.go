package postgres

import "time"

type trophyTableModel struct {
	ID          int64     `db:"id"`
	MatchID     int64     `db:"match_id"`
	AwardedTo   int64     `db:"awarded_to"`
	Name        string    `db:"name"`
	Description string    `db:"description"`
	DateAwarded time.Time `db:"date_awarded"`
}

type trophyInsertModel struct {
	MatchID     int64     `db:"match_id"`
	AwardedTo   int64     `db:"awarded_to"`
	Name        string    `db:"name"`
	Description string    `db:"description"`
	DateAwarded time.Time `db:"date_awarded"`
}
