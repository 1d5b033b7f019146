package achievement

import (
	"math"
	"slices"
	"time"

	"github.com/riskibarqy/stathub/internal/domain/matchstat"
)

// RecentRatingWindow is how many of the newest matches feed the rating average.
const RecentRatingWindow = 5

const ratingEpsilon = 1e-9

// StatSummary holds the aggregates every metric is measured against.
type StatSummary struct {
	MatchesPlayed   int
	TotalGoals      int
	TotalAssists    int
	MaxGoalsInMatch int
	// TriggerGoals is the goal count of the stat that triggered this
	// evaluation; HasTrigger is false when the evaluation was not started by a
	// specific stat or the stat is not among the player's rows.
	TriggerGoals  int
	HasTrigger    bool
	RecentRatings []float64
}

// Summarize folds a player's stat rows into a StatSummary. triggeringStatID
// may be zero.
func Summarize(stats []matchstat.Stat, triggeringStatID int64) StatSummary {
	var out StatSummary
	for _, s := range stats {
		out.MatchesPlayed++
		out.TotalGoals += s.Goals
		out.TotalAssists += s.Assists
		if s.Goals > out.MaxGoalsInMatch {
			out.MaxGoalsInMatch = s.Goals
		}
		if triggeringStatID > 0 && s.ID == triggeringStatID {
			out.TriggerGoals = s.Goals
			out.HasTrigger = true
		}
	}

	recent := slices.Clone(stats)
	slices.SortStableFunc(recent, matchstat.NewerFirst)
	if len(recent) > RecentRatingWindow {
		recent = recent[:RecentRatingWindow]
	}
	out.RecentRatings = make([]float64, 0, len(recent))
	for _, s := range recent {
		out.RecentRatings = append(out.RecentRatings, s.Rating)
	}

	return out
}

// RecentAverage is the mean of RecentRatings, zero when there are none.
func (s StatSummary) RecentAverage() float64 {
	if len(s.RecentRatings) == 0 {
		return 0
	}
	var total float64
	for _, r := range s.RecentRatings {
		total += r
	}
	return total / float64(len(s.RecentRatings))
}

// Measurement is the result of measuring one definition.
type Measurement struct {
	CurrentValue int
	Satisfied    bool
	// Unknown is set when the metric has no evaluation strategy.
	Unknown bool
}

// Measure computes the current value of def for summary and whether the
// target is met.
func Measure(def Definition, summary StatSummary) (Measurement, error) {
	if err := checkTarget(def); err != nil {
		return Measurement{}, err
	}

	target := def.TargetValue
	switch def.Metric {
	case MetricMatches:
		return atLeast(summary.MatchesPlayed, target), nil
	case MetricGoals:
		return atLeast(summary.TotalGoals, target), nil
	case MetricAssists:
		return atLeast(summary.TotalAssists, target), nil
	case MetricGoalsPerMatch:
		if summary.HasTrigger && summary.TriggerGoals >= target {
			return Measurement{CurrentValue: summary.TriggerGoals, Satisfied: true}, nil
		}
		return atLeast(summary.MaxGoalsInMatch, target), nil
	case MetricRating:
		return measureRating(def, summary), nil
	default:
		return Measurement{Unknown: true}, nil
	}
}

func atLeast(value, target int) Measurement {
	return Measurement{CurrentValue: value, Satisfied: value >= target}
}

func measureRating(def Definition, summary StatSummary) Measurement {
	sample := len(summary.RecentRatings)
	if sample == 0 {
		return Measurement{}
	}

	avg := summary.RecentAverage()
	out := Measurement{CurrentValue: int(math.Round(avg * RatingScale))}
	if def.MinSample > 0 && sample < def.MinSample {
		return out
	}
	out.Satisfied = avg*RatingScale+ratingEpsilon >= float64(def.TargetValue)
	return out
}

// Evaluation is the outcome of running the whole catalog for one player.
type Evaluation struct {
	// Progress holds one row per definition that was measured; rows already
	// unlocked before the run are not included.
	Progress []Progress
	Unlocked []Definition
	Unknown  []Definition
}

func (e Evaluation) UnlockedAny() bool {
	return len(e.Unlocked) > 0
}

// Evaluate measures every definition not yet unlocked for playerID. Each
// definition stands alone; an already unlocked row is never touched so its
// unlocked_at is preserved.
func Evaluate(playerID int64, defs []Definition, existing []Progress, summary StatSummary, now time.Time) (Evaluation, error) {
	byAchievement := make(map[int64]Progress, len(existing))
	for _, p := range existing {
		byAchievement[p.AchievementID] = p
	}

	var out Evaluation
	for _, def := range defs {
		current, ok := byAchievement[def.ID]
		if !ok {
			current = Progress{PlayerID: playerID, AchievementID: def.ID}
		}
		if current.Unlocked {
			continue
		}

		m, err := Measure(def, summary)
		if err != nil {
			return Evaluation{}, err
		}
		if m.Unknown {
			out.Unknown = append(out.Unknown, def)
		}

		current.CurrentValue = m.CurrentValue
		if m.Satisfied {
			unlockedAt := now
			current.Unlocked = true
			current.UnlockedAt = &unlockedAt
			out.Unlocked = append(out.Unlocked, def)
		}
		out.Progress = append(out.Progress, current)
	}

	return out, nil
}
