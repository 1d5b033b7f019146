package leaderboard

import "testing"

func sampleAggregates() []Aggregate {
	return []Aggregate{
		{PlayerID: 4, MatchesPlayed: 2, RatingSum: 14, TotalGoals: 3, TotalAssists: 1, AchievementCount: 3, XP: 400, TrophyCount: 1},
		{PlayerID: 2, MatchesPlayed: 2, RatingSum: 16, TotalGoals: 1, TotalAssists: 3, AchievementCount: 3, XP: 500},
		{PlayerID: 3, MatchesPlayed: 0},
		{PlayerID: 6, MatchesPlayed: 1, RatingSum: 7, TotalGoals: 3, TotalAssists: 0, TrophyCount: 1},
	}
}

func TestRank_OrdersEachMode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		mode Mode
		want []int64
	}{
		{mode: ModeRating, want: []int64{2, 4, 6, 3}},
		{mode: ModeAchievements, want: []int64{2, 4, 3, 6}},
		{mode: ModeTrophies, want: []int64{4, 6, 2, 3}},
		{mode: ModeCombined, want: []int64{2, 4, 6, 3}},
		{mode: ModeGoals, want: []int64{4, 6, 2, 3}},
		{mode: ModeAssists, want: []int64{2, 4, 3, 6}},
	}

	for _, tc := range tests {
		t.Run(string(tc.mode), func(t *testing.T) {
			t.Parallel()

			got := Rank(tc.mode, sampleAggregates())
			if len(got) != len(tc.want) {
				t.Fatalf("expected %d entries, got %d", len(tc.want), len(got))
			}
			for i, entry := range got {
				if entry.PlayerID != tc.want[i] {
					t.Fatalf("position %d: player=%d want=%d", i+1, entry.PlayerID, tc.want[i])
				}
				if entry.Rank != i+1 {
					t.Fatalf("position %d has rank %d", i+1, entry.Rank)
				}
			}
		})
	}
}

func TestParseMode(t *testing.T) {
	t.Parallel()

	if got, err := ParseMode(""); err != nil || got != ModeRating {
		t.Fatalf("empty mode: got=%q err=%v", got, err)
	}
	if got, err := ParseMode(" Goals "); err != nil || got != ModeGoals {
		t.Fatalf("mixed-case mode: got=%q err=%v", got, err)
	}
	if _, err := ParseMode("fastest"); err == nil {
		t.Fatalf("expected error for unknown mode")
	}
}

func TestTopAndFind(t *testing.T) {
	t.Parallel()

	board := Rank(ModeGoals, sampleAggregates())
	if got := Top(board, 2); len(got) != 2 {
		t.Fatalf("Top(2) returned %d rows", len(got))
	}
	if got := Top(board, 0); len(got) != len(board) {
		t.Fatalf("Top(0) must keep every row")
	}
	entry, ok := Find(board, 2)
	if !ok || entry.Rank != 3 {
		t.Fatalf("Find(2)=%+v ok=%v", entry, ok)
	}
}
