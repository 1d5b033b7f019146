package postgres

import "time"

type playerTableModel struct {
	ID               int64     `db:"id"`
	Username         string    `db:"username"`
	FullName         string    `db:"full_name"`
	PhotoURL         string    `db:"photo_url"`
	Nationality      string    `db:"nationality"`
	FavoritePosition string    `db:"favorite_position"`
	Role             string    `db:"role"`
	XP               int       `db:"xp"`
	Level            int       `db:"level"`
	CreatedAt        time.Time `db:"created_at"`
	UpdatedAt        time.Time `db:"updated_at"`
}
