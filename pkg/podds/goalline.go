package podds

// OverUnder aggregates total-goals probability mass either side of a
// bookmaker line, with the implied break-even prices
type OverUnder struct {
	Line          float64 `json:"line"`
	OverProb      float64 `json:"overProb"`
	UnderProb     float64 `json:"underProb"`
	OverFairOdds  float64 `json:"overFairOdds,omitempty"`
	UnderFairOdds float64 `json:"underFairOdds,omitempty"`
}

// GoalLineValue is the discrete value classification of the total-goals
// market against the model's expected total
type GoalLineValue struct {
	Recommendation     Recommendation `json:"recommendation"`
	ValueRating        ValueRating    `json:"valueRating"`
	Confidence         Confidence     `json:"confidence"`
	BookieLine         float64        `json:"bookieLine"`
	TotalExpectedGoals float64        `json:"totalExpectedGoals"`
	Difference         float64        `json:"difference"`
}

// GoalLineReport is the merged goal-line block exposed to consumers:
// classification plus the over/under split and implied odds
type GoalLineReport struct {
	GoalLineValue
	OverUnder
}

// OverUnderProbabilities runs the full convolution of the two independent
// Poisson marginals over totals 0..TotalGoalsMax and splits the mass around
// the line. The truncation bound leaves a negligible residual tail for
// realistic rates. Dixon-Coles/bivariate correlation is deliberately not
// applied here; total-goals mass is insensitive enough to the low-score
// correction that the independent convolution is used for all models.
func OverUnderProbabilities(homeLambda, awayLambda, line float64) *OverUnder {
	result := &OverUnder{Line: line}

	for total := 0; total <= Config.TotalGoalsMax; total++ {
		prob := 0.0
		for h := 0; h <= total; h++ {
			prob += PoissonPMF(h, homeLambda) * PoissonPMF(total-h, awayLambda)
		}
		if float64(total) > line {
			result.OverProb += prob
		} else {
			result.UnderProb += prob
		}
	}

	result.OverFairOdds = FairOdds(result.OverProb)
	result.UnderFairOdds = FairOdds(result.UnderProb)
	return result
}

// ClassifyGoalLine compares the model's expected total against the
// bookmaker line. The margin keeps marginal edges out of the
// recommendation; within a recommended direction the size of the edge
// grades the value.
func ClassifyGoalLine(totalExpectedGoals, bookieLine float64) *GoalLineValue {
	value := &GoalLineValue{
		Recommendation:     RecommendNoBet,
		ValueRating:        ValueNone,
		Confidence:         ConfidenceNone,
		BookieLine:         bookieLine,
		TotalExpectedGoals: totalExpectedGoals,
		Difference:         totalExpectedGoals - bookieLine,
	}

	switch {
	case totalExpectedGoals > bookieLine+Config.GoalLineMargin:
		value.Recommendation = RecommendOver
	case totalExpectedGoals < bookieLine-Config.GoalLineMargin:
		value.Recommendation = RecommendUnder
	default:
		return value
	}

	edge := value.Difference
	if edge < 0 {
		edge = -edge
	}

	switch {
	case edge > Config.GoalLineStrong:
		value.ValueRating = ValueStrong
		value.Confidence = ConfidenceHigh
	case edge > Config.GoalLineGood:
		value.ValueRating = ValueGood
		value.Confidence = ConfidenceMedium
	default:
		value.ValueRating = ValueSlight
		value.Confidence = ConfidenceLow
	}

	return value
}
