package postgres

import "time"

type statTableModel struct {
	ID        int64     `db:"id"`
	MatchID   int64     `db:"match_id"`
	PlayerID  int64     `db:"player_id"`
	Team      string    `db:"team"`
	Goals     int       `db:"goals"`
	Assists   int       `db:"assists"`
	Rating    float64   `db:"rating"`
	CreatedAt time.Time `db:"created_at"`
}

type statInsertModel struct {
	MatchID   int64     `db:"match_id"`
	PlayerID  int64     `db:"player_id"`
	Team      string    `db:"team"`
	Goals     int       `db:"goals"`
	Assists   int       `db:"assists"`
	Rating    float64   `db:"rating"`
	CreatedAt time.Time `db:"created_at"`
}
