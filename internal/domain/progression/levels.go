package progression

import (
	"github.com/riskibarqy/stathub/internal/domain/achievement"
)

const (
	MinLevel = 1
	MaxLevel = 10
)

// Level is one tier of the fixed progression table.
type Level struct {
	Number int
	Name   string
	Color  string
	MinXP  int
	MaxXP  int
}

var levels = [MaxLevel]Level{
	{Number: 1, Name: "Rookie", Color: "#9CA3AF", MinXP: 0, MaxXP: 199},
	{Number: 2, Name: "Amateur", Color: "#10B981", MinXP: 200, MaxXP: 599},
	{Number: 3, Name: "Rising Star", Color: "#3B82F6", MinXP: 600, MaxXP: 1499},
	{Number: 4, Name: "Professional", Color: "#8B5CF6", MinXP: 1500, MaxXP: 3499},
	{Number: 5, Name: "Elite", Color: "#F59E0B", MinXP: 3500, MaxXP: 7499},
	{Number: 6, Name: "Master", Color: "#EF4444", MinXP: 7500, MaxXP: 14999},
	{Number: 7, Name: "Legend", Color: "#EC4899", MinXP: 15000, MaxXP: 29999},
	{Number: 8, Name: "Champion", Color: "#14B8A6", MinXP: 30000, MaxXP: 59999},
	{Number: 9, Name: "Icon", Color: "#F97316", MinXP: 60000, MaxXP: 124999},
	{Number: 10, Name: "Immortal", Color: "#EAB308", MinXP: 125000, MaxXP: 999999},
}

// Levels returns a copy of the progression table.
func Levels() []Level {
	out := make([]Level, len(levels))
	copy(out, levels[:])
	return out
}

// LevelInfo returns the table row for number, falling back to level 1.
func LevelInfo(number int) Level {
	if number < MinLevel || number > MaxLevel {
		return levels[0]
	}
	return levels[number-1]
}

// LevelForXP returns the highest level whose threshold xp reaches.
func LevelForXP(xp int) int {
	for i := MaxLevel - 1; i >= 0; i-- {
		if xp >= levels[i].MinXP {
			return levels[i].Number
		}
	}
	return MinLevel
}

// Progress describes how far a player is through their current level.
type Progress struct {
	CurrentXP       int
	Level           int
	LevelName       string
	LevelColor      string
	XPInLevel       int
	XPForNextLevel  *int
	ProgressPercent float64
}

func ProgressFor(xp, level int) Progress {
	info := LevelInfo(level)
	inLevel := xp - info.MinXP
	span := info.MaxXP - info.MinXP + 1

	percent := 100.0
	if span > 0 {
		percent = float64(inLevel) / float64(span) * 100
	}
	if percent > 100 {
		percent = 100
	}

	out := Progress{
		CurrentXP:       xp,
		Level:           info.Number,
		LevelName:       info.Name,
		LevelColor:      info.Color,
		XPInLevel:       inLevel,
		ProgressPercent: percent,
	}
	if info.Number < MaxLevel {
		next := info.MaxXP - xp + 1
		out.XPForNextLevel = &next
	}
	return out
}

// Snapshot is the derived XP state of one player.
type Snapshot struct {
	PlayerID int64
	XP       int
	Level    int
	Progress Progress
}

// TotalXP sums the points of every unlocked progress row. Rows whose
// definition is missing from the catalog contribute nothing.
func TotalXP(defs []achievement.Definition, items []achievement.Progress) int {
	points := make(map[int64]int, len(defs))
	for _, d := range defs {
		points[d.ID] = d.Points
	}

	total := 0
	for _, p := range items {
		if !p.Unlocked {
			continue
		}
		total += points[p.AchievementID]
	}
	return total
}

// Derive builds the snapshot for a player from catalog and progress rows.
func Derive(playerID int64, defs []achievement.Definition, items []achievement.Progress) Snapshot {
	xp := TotalXP(defs, items)
	level := LevelForXP(xp)
	return Snapshot{
		PlayerID: playerID,
		XP:       xp,
		Level:    level,
		Progress: ProgressFor(xp, level),
	}
}
