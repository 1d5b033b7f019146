package achievement

import (
	"fmt"
	"strings"
	"time"

	crerr "github.com/cockroachdb/errors"
	"github.com/gosimple/slug"
)

// ErrConfiguration marks a catalog that cannot be evaluated (empty, unknown metric).
var ErrConfiguration = crerr.New("achievement catalog misconfigured")

// Metric is the quantity an achievement tracks.
type Metric string

const (
	MetricMatches       Metric = "matches"
	MetricGoals         Metric = "goals"
	MetricAssists       Metric = "assists"
	MetricGoalsPerMatch Metric = "goals_per_match"
	MetricRating        Metric = "rating"
)

var AllMetrics = map[Metric]struct{}{
	MetricMatches:       {},
	MetricGoals:         {},
	MetricAssists:       {},
	MetricGoalsPerMatch: {},
	MetricRating:        {},
}

func (m Metric) Known() bool {
	_, ok := AllMetrics[m]
	return ok
}

// Tier is a display grouping only.
type Tier string

const (
	TierBeginner Tier = "Beginner"
	TierAdvanced Tier = "Advanced"
	TierExpert   Tier = "Expert"
)

// RatingScale converts a displayed rating threshold (7.5) into the stored
// integral target (75).
const RatingScale = 10

// Definition is one catalog entry. For MetricRating the TargetValue is the
// rating threshold multiplied by RatingScale.
type Definition struct {
	ID          int64
	Name        string
	Code        string
	Description string
	Tier        Tier
	Metric      Metric
	TargetValue int
	Points      int
	// MinSample is the minimum number of recent matches a rating average must
	// cover before the achievement may unlock. Zero means any sample size.
	MinSample int
}

func (d Definition) Normalize() Definition {
	d.Name = strings.TrimSpace(d.Name)
	if strings.TrimSpace(d.Code) == "" {
		d.Code = slug.Make(d.Name)
	}
	return d
}

func (d Definition) Validate() error {
	if strings.TrimSpace(d.Name) == "" {
		return fmt.Errorf("achievement name is required")
	}
	if !d.Metric.Known() {
		return fmt.Errorf("%w: unknown metric %q", ErrConfiguration, d.Metric)
	}
	if d.Points < 0 {
		return fmt.Errorf("achievement points cannot be negative")
	}
	if d.MinSample < 0 || d.MinSample > RecentRatingWindow {
		return fmt.Errorf("achievement min sample must be within 0..%d", RecentRatingWindow)
	}
	return checkTarget(d)
}

// DisplayTarget renders the target the way players read it: rating
// thresholds are shown as decimals.
func (d Definition) DisplayTarget() float64 {
	if d.Metric == MetricRating {
		return float64(d.TargetValue) / RatingScale
	}
	return float64(d.TargetValue)
}

// checkTarget rejects data the evaluator cannot reason about. A negative
// target is an integrity bug in stored data, not a user error.
func checkTarget(d Definition) error {
	if d.TargetValue < 0 {
		return crerr.AssertionFailedf("achievement %q (id=%d) has negative target_value %d", d.Name, d.ID, d.TargetValue)
	}
	return nil
}

// Progress is one player's standing against one catalog entry.
type Progress struct {
	PlayerID      int64
	AchievementID int64
	CurrentValue  int
	Unlocked      bool
	UnlockedAt    *time.Time
}

// PlayerAchievement joins a definition with a player's progress for display.
type PlayerAchievement struct {
	Definition Definition
	Progress   Progress
}
