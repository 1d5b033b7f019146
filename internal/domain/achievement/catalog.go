package achievement

// DefaultCatalog is the built-in mission list seeded on start.
func DefaultCatalog() []Definition {
	items := []Definition{
		{Name: "First Match", Description: "Play your first recorded match.", Tier: TierBeginner, Metric: MetricMatches, TargetValue: 1, Points: 100},
		{Name: "Helping Hand", Description: "Register your first assist.", Tier: TierBeginner, Metric: MetricAssists, TargetValue: 1, Points: 100},
		{Name: "Maiden Goal", Description: "Score your first goal.", Tier: TierBeginner, Metric: MetricGoals, TargetValue: 1, Points: 150},
		{Name: "Five-Goal Club", Description: "Reach a total of 5 goals.", Tier: TierBeginner, Metric: MetricGoals, TargetValue: 5, Points: 150},
		{Name: "Reliable Starter", Description: "Participate in 5 matches.", Tier: TierBeginner, Metric: MetricMatches, TargetValue: 5, Points: 200},
		{Name: "Hat-trick Hero", Description: "Score 3 goals in a single match.", Tier: TierAdvanced, Metric: MetricGoalsPerMatch, TargetValue: 3, Points: 300},
		{Name: "Goal Machine", Description: "Reach a total of 30 goals.", Tier: TierAdvanced, Metric: MetricGoals, TargetValue: 30, Points: 400},
		{Name: "Elite Performer", Description: "Maintain an average rating of 7.5+ across 5 matches.", Tier: TierAdvanced, Metric: MetricRating, TargetValue: 75, Points: 500, MinSample: RecentRatingWindow},
		{Name: "Century Scorer", Description: "Reach a total of 100 goals.", Tier: TierExpert, Metric: MetricGoals, TargetValue: 100, Points: 1000},
	}
	for i := range items {
		items[i] = items[i].Normalize()
	}
	return items
}
