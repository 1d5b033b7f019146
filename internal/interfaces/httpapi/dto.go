package httpapi

import (
	"math"
	"time"

	"github.com/riskibarqy/stathub/internal/domain/achievement"
	"github.com/riskibarqy/stathub/internal/domain/leaderboard"
	"github.com/riskibarqy/stathub/internal/domain/matchstat"
	"github.com/riskibarqy/stathub/internal/domain/progression"
	"github.com/riskibarqy/stathub/internal/domain/trophy"
	"github.com/riskibarqy/stathub/internal/usecase"
)

type achievementDTO struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Code        string `json:"code"`
	Description string `json:"description"`
	Tier        string `json:"tier"`
	Metric      string `json:"metric"`
	// TargetValue is stored as-is; rating targets are rating x 10.
	TargetValue   int     `json:"target_value"`
	DisplayTarget float64 `json:"display_target"`
	Points        int     `json:"points"`
	MinSample     int     `json:"requires_min_sample"`
}

type playerAchievementDTO struct {
	Achievement     achievementDTO `json:"achievement"`
	CurrentValue    int            `json:"current_value"`
	Unlocked        bool           `json:"unlocked"`
	UnlockedAt      *time.Time     `json:"unlocked_at"`
	ProgressPercent float64        `json:"progress_percent"`
}

type levelDTO struct {
	Level int    `json:"level"`
	Name  string `json:"name"`
	Color string `json:"color"`
	MinXP int    `json:"min_xp"`
	MaxXP int    `json:"max_xp"`
}

type xpDTO struct {
	PlayerID        int64   `json:"player_id"`
	XP              int     `json:"xp"`
	Level           int     `json:"level"`
	LevelName       string  `json:"level_name"`
	LevelColor      string  `json:"level_color"`
	XPInLevel       int     `json:"xp_in_level"`
	XPForNextLevel  *int    `json:"xp_for_next_level"`
	ProgressPercent float64 `json:"progress_percent"`
}

type statDTO struct {
	ID        int64     `json:"id"`
	MatchID   int64     `json:"match_id"`
	PlayerID  int64     `json:"player_id"`
	Team      string    `json:"team"`
	Goals     int       `json:"goals"`
	Assists   int       `json:"assists"`
	Rating    float64   `json:"rating"`
	CreatedAt time.Time `json:"created_at"`
}

type statResultDTO struct {
	Stat                 statDTO    `json:"stat"`
	AchievementsUnlocked bool       `json:"achievements_unlocked"`
	Trophy               *trophyDTO `json:"trophy"`
}

type trophyDTO struct {
	ID          int64     `json:"id"`
	MatchID     int64     `json:"match_id"`
	AwardedTo   int64     `json:"awarded_to"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	DateAwarded time.Time `json:"date_awarded"`
}

type leaderboardEntryDTO struct {
	Rank             int     `json:"rank"`
	PlayerID         int64   `json:"player_id"`
	Username         string  `json:"username"`
	FullName         string  `json:"full_name"`
	PhotoURL         string  `json:"photo_url,omitempty"`
	Nationality      string  `json:"nationality,omitempty"`
	Position         string  `json:"position,omitempty"`
	MatchesPlayed    int     `json:"matches_played"`
	TotalGoals       int     `json:"total_goals"`
	TotalAssists     int     `json:"total_assists"`
	AvgRating        float64 `json:"avg_rating"`
	AchievementCount int     `json:"achievement_count"`
	TrophyCount      int     `json:"trophy_count"`
	XP               int     `json:"xp"`
	Level            int     `json:"level"`
}

type leaderboardDTO struct {
	Mode    string                `json:"mode"`
	Entries []leaderboardEntryDTO `json:"entries"`
}

type dashboardDTO struct {
	PlayerID             int64     `json:"player_id"`
	Username             string    `json:"username"`
	FullName             string    `json:"full_name"`
	XP                   xpDTO     `json:"xp"`
	MatchesPlayed        int       `json:"matches_played"`
	TotalGoals           int       `json:"total_goals"`
	TotalAssists         int       `json:"total_assists"`
	AverageRating        float64   `json:"average_rating"`
	AchievementsUnlocked int       `json:"achievements_unlocked"`
	AchievementsTotal    int       `json:"achievements_total"`
	TrophyCount          int       `json:"trophy_count"`
	RatingRank           int       `json:"rating_rank,omitempty"`
	RecentStats          []statDTO `json:"recent_stats"`
}

func achievementToDTO(v achievement.Definition) achievementDTO {
	return achievementDTO{
		ID:            v.ID,
		Name:          v.Name,
		Code:          v.Code,
		Description:   v.Description,
		Tier:          string(v.Tier),
		Metric:        string(v.Metric),
		TargetValue:   v.TargetValue,
		DisplayTarget: v.DisplayTarget(),
		Points:        v.Points,
		MinSample:     v.MinSample,
	}
}

func playerAchievementToDTO(v achievement.PlayerAchievement) playerAchievementDTO {
	return playerAchievementDTO{
		Achievement:     achievementToDTO(v.Definition),
		CurrentValue:    v.Progress.CurrentValue,
		Unlocked:        v.Progress.Unlocked,
		UnlockedAt:      v.Progress.UnlockedAt,
		ProgressPercent: progressPercent(v.Progress.CurrentValue, v.Definition.TargetValue, v.Progress.Unlocked),
	}
}

func progressPercent(current, target int, unlocked bool) float64 {
	if unlocked {
		return 100
	}
	if target <= 0 {
		return 0
	}
	pct := float64(current) / float64(target) * 100
	return math.Round(min(pct, 100)*10) / 10
}

func levelToDTO(v progression.Level) levelDTO {
	return levelDTO{Level: v.Number, Name: v.Name, Color: v.Color, MinXP: v.MinXP, MaxXP: v.MaxXP}
}

func xpToDTO(playerID int64, v progression.Progress) xpDTO {
	return xpDTO{
		PlayerID:        playerID,
		XP:              v.CurrentXP,
		Level:           v.Level,
		LevelName:       v.LevelName,
		LevelColor:      v.LevelColor,
		XPInLevel:       v.XPInLevel,
		XPForNextLevel:  v.XPForNextLevel,
		ProgressPercent: math.Round(v.ProgressPercent*10) / 10,
	}
}

func statToDTO(v matchstat.Stat) statDTO {
	return statDTO{
		ID:        v.ID,
		MatchID:   v.MatchID,
		PlayerID:  v.PlayerID,
		Team:      string(v.Team),
		Goals:     v.Goals,
		Assists:   v.Assists,
		Rating:    v.Rating,
		CreatedAt: v.CreatedAt,
	}
}

func statsToDTO(items []matchstat.Stat) []statDTO {
	out := make([]statDTO, 0, len(items))
	for _, item := range items {
		out = append(out, statToDTO(item))
	}
	return out
}

func statResultToDTO(v usecase.StatResult) statResultDTO {
	return statResultDTO{
		Stat:                 statToDTO(v.Stat),
		AchievementsUnlocked: v.AchievementsUnlocked,
		Trophy:               trophyPtrToDTO(v.Trophy),
	}
}

func trophyToDTO(v trophy.Trophy) trophyDTO {
	return trophyDTO{
		ID:          v.ID,
		MatchID:     v.MatchID,
		AwardedTo:   v.AwardedTo,
		Name:        v.Name,
		Description: v.Description,
		DateAwarded: v.DateAwarded,
	}
}

func trophyPtrToDTO(v *trophy.Trophy) *trophyDTO {
	if v == nil {
		return nil
	}
	out := trophyToDTO(*v)
	return &out
}

func leaderboardEntryToDTO(v leaderboard.Entry) leaderboardEntryDTO {
	return leaderboardEntryDTO{
		Rank:             v.Rank,
		PlayerID:         v.PlayerID,
		Username:         v.Username,
		FullName:         v.FullName,
		PhotoURL:         v.PhotoURL,
		Nationality:      v.Nationality,
		Position:         v.Position,
		MatchesPlayed:    v.MatchesPlayed,
		TotalGoals:       v.TotalGoals,
		TotalAssists:     v.TotalAssists,
		AvgRating:        v.DisplayRating(),
		AchievementCount: v.AchievementCount,
		TrophyCount:      v.TrophyCount,
		XP:               v.XP,
		Level:            v.Level,
	}
}

func dashboardToDTO(v usecase.Dashboard) dashboardDTO {
	return dashboardDTO{
		PlayerID:             v.Player.ID,
		Username:             v.Player.Username,
		FullName:             v.Player.FullName,
		XP:                   xpToDTO(v.Player.ID, v.Progress),
		MatchesPlayed:        v.MatchesPlayed,
		TotalGoals:           v.TotalGoals,
		TotalAssists:         v.TotalAssists,
		AverageRating:        math.Round(v.AverageRating*10) / 10,
		AchievementsUnlocked: v.AchievementsUnlocked,
		AchievementsTotal:    v.AchievementsTotal,
		TrophyCount:          v.TrophyCount,
		RatingRank:           v.RatingRank,
		RecentStats:          statsToDTO(v.RecentStats),
	}
}
