package leaderboard

import (
	"cmp"
	"fmt"
	"math"
	"slices"
	"strings"
)

// Mode selects the ordering of a leaderboard view.
type Mode string

const (
	ModeRating       Mode = "rating"
	ModeAchievements Mode = "achievements"
	ModeTrophies     Mode = "trophies"
	ModeCombined     Mode = "combined"
	ModeGoals        Mode = "goals"
	ModeAssists      Mode = "assists"
)

var AllModes = map[Mode]struct{}{
	ModeRating:       {},
	ModeAchievements: {},
	ModeTrophies:     {},
	ModeCombined:     {},
	ModeGoals:        {},
	ModeAssists:      {},
}

func ParseMode(raw string) (Mode, error) {
	value := Mode(strings.ToLower(strings.TrimSpace(raw)))
	if value == "" {
		return ModeRating, nil
	}
	if _, ok := AllModes[value]; !ok {
		return "", fmt.Errorf("unknown leaderboard mode %q", raw)
	}
	return value, nil
}

// Aggregate is the current derived state of one ranked player.
type Aggregate struct {
	PlayerID         int64
	Username         string
	FullName         string
	PhotoURL         string
	Nationality      string
	Position         string
	MatchesPlayed    int
	TotalGoals       int
	TotalAssists     int
	RatingSum        float64
	AchievementCount int
	TrophyCount      int
	XP               int
	Level            int
}

// AvgRating is the mean rating over every stat row, zero without stats.
func (a Aggregate) AvgRating() float64 {
	if a.MatchesPlayed == 0 {
		return 0
	}
	return a.RatingSum / float64(a.MatchesPlayed)
}

func (a Aggregate) Combined() int {
	return a.TotalGoals + a.TotalAssists
}

// Entry is an Aggregate placed on a board.
type Entry struct {
	Aggregate
	Rank int
}

// DisplayRating rounds the average to one decimal.
func (e Entry) DisplayRating() float64 {
	return math.Round(e.AvgRating()*10) / 10
}

// Rank orders the full population for mode and assigns ranks 1..N. Ranks are
// unique; ties fall through to player id ascending.
func Rank(mode Mode, items []Aggregate) []Entry {
	sorted := slices.Clone(items)
	compare := comparatorFor(mode)
	slices.SortStableFunc(sorted, func(a, b Aggregate) int {
		if c := compare(a, b); c != 0 {
			return c
		}
		return cmp.Compare(a.PlayerID, b.PlayerID)
	})

	out := make([]Entry, 0, len(sorted))
	for i, item := range sorted {
		out = append(out, Entry{Aggregate: item, Rank: i + 1})
	}
	return out
}

// Top truncates an already ranked board. A non-positive limit keeps every row.
func Top(entries []Entry, limit int) []Entry {
	if limit <= 0 || limit >= len(entries) {
		return entries
	}
	return entries[:limit]
}

// Find returns the entry of playerID on a ranked board.
func Find(entries []Entry, playerID int64) (Entry, bool) {
	for _, e := range entries {
		if e.PlayerID == playerID {
			return e, true
		}
	}
	return Entry{}, false
}

func comparatorFor(mode Mode) func(a, b Aggregate) int {
	switch mode {
	case ModeAchievements:
		return func(a, b Aggregate) int {
			if c := cmp.Compare(b.AchievementCount, a.AchievementCount); c != 0 {
				return c
			}
			return cmp.Compare(b.XP, a.XP)
		}
	case ModeTrophies:
		return func(a, b Aggregate) int {
			return cmp.Compare(b.TrophyCount, a.TrophyCount)
		}
	case ModeCombined:
		return func(a, b Aggregate) int {
			return cmp.Compare(b.Combined(), a.Combined())
		}
	case ModeGoals:
		return func(a, b Aggregate) int {
			return cmp.Compare(b.TotalGoals, a.TotalGoals)
		}
	case ModeAssists:
		return func(a, b Aggregate) int {
			return cmp.Compare(b.TotalAssists, a.TotalAssists)
		}
	default:
		return func(a, b Aggregate) int {
			return cmp.Compare(b.AvgRating(), a.AvgRating())
		}
	}
}
