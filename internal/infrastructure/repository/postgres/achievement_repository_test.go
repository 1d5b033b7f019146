package postgres

import (
	"slices"
	"testing"

	"github.com/riskibarqy/stathub/internal/domain/achievement"
)

func TestNewUnlocks(t *testing.T) {
	t.Parallel()

	items := []achievement.Progress{
		{AchievementID: 1, Unlocked: true},
		{AchievementID: 2, Unlocked: true},
		{AchievementID: 3, CurrentValue: 4},
	}

	tests := []struct {
		name   string
		before []int64
		want   []int64
	}{
		{name: "nothing unlocked before", want: []int64{1, 2}},
		{name: "concurrent writer unlocked one", before: []int64{2}, want: []int64{1}},
		{name: "all already unlocked", before: []int64{1, 2, 9}, want: nil},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := newUnlocks(items, tc.before); !slices.Equal(got, tc.want) {
				t.Fatalf("newUnlocks()=%v want=%v", got, tc.want)
			}
		})
	}
}
