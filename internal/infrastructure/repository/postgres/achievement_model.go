package postgres

import (
	"database/sql"
	"time"
)

type achievementTableModel struct {
	ID          int64     `db:"id"`
	Name        string    `db:"name"`
	Code        string    `db:"code"`
	Description string    `db:"description"`
	Tier        string    `db:"tier"`
	Metric      string    `db:"metric"`
	TargetValue int       `db:"target_value"`
	Points      int       `db:"points"`
	MinSample   int       `db:"min_sample"`
	CreatedAt   time.Time `db:"created_at"`
	UpdatedAt   time.Time `db:"updated_at"`
}

type achievementInsertModel struct {
	Name        string `db:"name"`
	Code        string `db:"code"`
	Description string `db:"description"`
	Tier        string `db:"tier"`
	Metric      string `db:"metric"`
	TargetValue int    `db:"target_value"`
	Points      int    `db:"points"`
	MinSample   int    `db:"min_sample"`
}

type achievementUpsertResult struct {
	ID      int64 `db:"id"`
	Created bool  `db:"created"`
}

type playerAchievementTableModel struct {
	PlayerID      int64        `db:"player_id"`
	AchievementID int64        `db:"achievement_id"`
	CurrentValue  int          `db:"current_value"`
	Unlocked      bool         `db:"unlocked"`
	UnlockedAt    sql.NullTime `db:"unlocked_at"`
}
