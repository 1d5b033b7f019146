package httpapi

import (
	"testing"

	"github.com/riskibarqy/stathub/internal/domain/achievement"
	"github.com/stretchr/testify/require"
)

func TestAchievementToDTO_DisplayTarget(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		def  achievement.Definition
		want float64
	}{
		{
			name: "rating target shown as rating",
			def:  achievement.Definition{Name: "Elite Performer", Metric: achievement.MetricRating, TargetValue: 75},
			want: 7.5,
		},
		{
			name: "count target unchanged",
			def:  achievement.Definition{Name: "Goal Machine", Metric: achievement.MetricGoals, TargetValue: 30},
			want: 30,
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got := achievementToDTO(tc.def)
			require.Equal(t, tc.def.TargetValue, got.TargetValue)
			require.InDelta(t, tc.want, got.DisplayTarget, 1e-9)
		})
	}
}
