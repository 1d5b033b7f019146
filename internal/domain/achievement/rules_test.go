package achievement

import (
	"testing"
	"time"

	crerr "github.com/cockroachdb/errors"
	"github.com/riskibarqy/stathub/internal/domain/matchstat"
)

var evalNow = time.Date(2026, time.October, 1, 12, 0, 0, 0, time.UTC)

func catalogWithIDs() []Definition {
	defs := DefaultCatalog()
	for i := range defs {
		defs[i].ID = int64(i + 1)
	}
	return defs
}

func statRows(n int, goals, assists int, rating float64) []matchstat.Stat {
	base := time.Date(2026, time.September, 1, 19, 0, 0, 0, time.UTC)
	out := make([]matchstat.Stat, 0, n)
	for i := range n {
		out = append(out, matchstat.Stat{
			ID:        int64(i + 1),
			MatchID:   int64(i + 1),
			PlayerID:  7,
			Team:      matchstat.TeamHome,
			Goals:     goals,
			Assists:   assists,
			Rating:    rating,
			CreatedAt: base.AddDate(0, 0, 7*i),
		})
	}
	return out
}

func unlockedNames(e Evaluation) map[string]bool {
	out := make(map[string]bool, len(e.Unlocked))
	for _, d := range e.Unlocked {
		out[d.Name] = true
	}
	return out
}

func findByName(t *testing.T, defs []Definition, name string) Definition {
	t.Helper()
	for _, d := range defs {
		if d.Name == name {
			return d
		}
	}
	t.Fatalf("definition %q not in catalog", name)
	return Definition{}
}

func TestEvaluate_FirstMatchUnlocksMatchesAndGoals(t *testing.T) {
	t.Parallel()

	stats := statRows(1, 1, 0, 6.0)
	got, err := Evaluate(7, catalogWithIDs(), nil, Summarize(stats, stats[0].ID), evalNow)
	if err != nil {
		t.Fatalf("evaluate: %v", err)
	}

	names := unlockedNames(got)
	if !names["First Match"] || !names["Maiden Goal"] {
		t.Fatalf("expected First Match and Maiden Goal unlocked, got %v", names)
	}
	if names["Helping Hand"] {
		t.Fatalf("Helping Hand must stay locked without assists")
	}
	for _, p := range got.Progress {
		if p.Unlocked && (p.UnlockedAt == nil || !p.UnlockedAt.Equal(evalNow)) {
			t.Fatalf("unlocked row without unlocked_at: %+v", p)
		}
	}
}

func TestEvaluate_RatingNeedsFullSample(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		rows         int
		rating       float64
		wantUnlock   bool
		wantProgress int
	}{
		{name: "five matches at 8.0 unlock", rows: 5, rating: 8.0, wantUnlock: true, wantProgress: 80},
		{name: "four matches at 9.0 stay locked", rows: 4, rating: 9.0, wantUnlock: false, wantProgress: 90},
		{name: "five matches at 7.4 stay locked", rows: 5, rating: 7.4, wantUnlock: false, wantProgress: 74},
		{name: "exact threshold unlocks", rows: 5, rating: 7.5, wantUnlock: true, wantProgress: 75},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			defs := catalogWithIDs()
			elite := findByName(t, defs, "Elite Performer")
			got, err := Evaluate(7, defs, nil, Summarize(statRows(tc.rows, 0, 0, tc.rating), 0), evalNow)
			if err != nil {
				t.Fatalf("evaluate: %v", err)
			}
			if unlockedNames(got)["Elite Performer"] != tc.wantUnlock {
				t.Fatalf("unlock=%v want=%v", !tc.wantUnlock, tc.wantUnlock)
			}
			for _, p := range got.Progress {
				if p.AchievementID == elite.ID && p.CurrentValue != tc.wantProgress {
					t.Fatalf("current_value=%d want=%d", p.CurrentValue, tc.wantProgress)
				}
			}
		})
	}
}

func TestEvaluate_RatingWithoutMinSampleUnlocksOnShortHistory(t *testing.T) {
	t.Parallel()

	def := Definition{ID: 40, Name: "Sharp Start", Tier: TierAdvanced, Metric: MetricRating, TargetValue: 75, Points: 50}
	stats := statRows(2, 0, 0, 7.4)
	stats[1].Rating = 7.6

	got, err := Evaluate(7, []Definition{def}, nil, Summarize(stats, 0), evalNow)
	if err != nil {
		t.Fatalf("evaluate: %v", err)
	}
	if !unlockedNames(got)["Sharp Start"] {
		t.Fatalf("expected rating entry without min sample to unlock on 2 rows")
	}
	if len(got.Progress) != 1 || got.Progress[0].CurrentValue != 75 {
		t.Fatalf("expected current_value 75, got %+v", got.Progress)
	}
}

func TestSummarize_UsesNewestFiveRatings(t *testing.T) {
	t.Parallel()

	stats := statRows(7, 0, 0, 5.0)
	for i := 2; i < 7; i++ {
		stats[i].Rating = 9.0
	}
	summary := Summarize(stats, 0)
	if len(summary.RecentRatings) != RecentRatingWindow {
		t.Fatalf("expected %d recent ratings, got %d", RecentRatingWindow, len(summary.RecentRatings))
	}
	if got := summary.RecentAverage(); got != 9.0 {
		t.Fatalf("recent average=%v want 9.0", got)
	}
}

func TestEvaluate_HatTrickFromTriggeringStat(t *testing.T) {
	t.Parallel()

	stats := statRows(3, 0, 0, 6.0)
	stats[1].Goals = 3
	defs := catalogWithIDs()

	got, err := Evaluate(7, defs, nil, Summarize(stats, stats[1].ID), evalNow)
	if err != nil {
		t.Fatalf("evaluate: %v", err)
	}
	if !unlockedNames(got)["Hat-trick Hero"] {
		t.Fatalf("expected Hat-trick Hero unlocked")
	}
}

func TestEvaluate_IdempotentAndMonotonic(t *testing.T) {
	t.Parallel()

	defs := catalogWithIDs()
	stats := statRows(1, 1, 1, 6.0)
	first, err := Evaluate(7, defs, nil, Summarize(stats, 0), evalNow)
	if err != nil {
		t.Fatalf("first evaluate: %v", err)
	}

	second, err := Evaluate(7, defs, first.Progress, Summarize(stats, 0), evalNow.Add(time.Hour))
	if err != nil {
		t.Fatalf("second evaluate: %v", err)
	}
	if second.UnlockedAny() {
		t.Fatalf("second run must not unlock again, got %v", unlockedNames(second))
	}

	// Fewer stats afterwards never relocks what was unlocked.
	third, err := Evaluate(7, defs, first.Progress, Summarize(nil, 0), evalNow.Add(2*time.Hour))
	if err != nil {
		t.Fatalf("third evaluate: %v", err)
	}
	for _, p := range third.Progress {
		for _, prior := range first.Progress {
			if prior.AchievementID == p.AchievementID && prior.Unlocked {
				t.Fatalf("unlocked achievement %d was re-measured", p.AchievementID)
			}
		}
	}
}

func TestEvaluate_UnknownMetricNeverUnlocks(t *testing.T) {
	t.Parallel()

	defs := []Definition{{ID: 1, Name: "Clean Sheet", Metric: Metric("clean_sheets"), TargetValue: 0, Points: 50}}
	got, err := Evaluate(7, defs, nil, Summarize(statRows(3, 2, 2, 9.0), 0), evalNow)
	if err != nil {
		t.Fatalf("evaluate: %v", err)
	}
	if got.UnlockedAny() {
		t.Fatalf("unknown metric must never unlock")
	}
	if len(got.Unknown) != 1 {
		t.Fatalf("expected unknown metric reported, got %d", len(got.Unknown))
	}
}

func TestEvaluate_NegativeTargetIsAssertionFailure(t *testing.T) {
	t.Parallel()

	defs := []Definition{{ID: 1, Name: "Broken", Metric: MetricGoals, TargetValue: -1}}
	_, err := Evaluate(7, defs, nil, Summarize(nil, 0), evalNow)
	if !crerr.HasAssertionFailure(err) {
		t.Fatalf("expected assertion failure, got %v", err)
	}
}

func TestDefinition_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		def     Definition
		wantErr bool
	}{
		{name: "valid", def: Definition{Name: "Maiden Goal", Metric: MetricGoals, TargetValue: 1, Points: 150}},
		{name: "missing name", def: Definition{Metric: MetricGoals, TargetValue: 1}, wantErr: true},
		{name: "unknown metric", def: Definition{Name: "x", Metric: "saves", TargetValue: 1}, wantErr: true},
		{name: "negative points", def: Definition{Name: "x", Metric: MetricGoals, Points: -5}, wantErr: true},
		{name: "min sample too big", def: Definition{Name: "x", Metric: MetricRating, TargetValue: 70, MinSample: 6}, wantErr: true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if err := tc.def.Validate(); (err != nil) != tc.wantErr {
				t.Fatalf("Validate() err=%v wantErr=%v", err, tc.wantErr)
			}
		})
	}
}

func TestDefaultCatalog_CodesAreSlugs(t *testing.T) {
	t.Parallel()

	seen := map[string]bool{}
	for _, d := range DefaultCatalog() {
		if err := d.Validate(); err != nil {
			t.Fatalf("catalog entry %q invalid: %v", d.Name, err)
		}
		if d.Code == "" || seen[d.Code] {
			t.Fatalf("missing or duplicate code %q", d.Code)
		}
		seen[d.Code] = true
	}
	if !seen["five-goal-club"] {
		t.Fatalf("expected slug five-goal-club, got %v", seen)
	}
}
