package podds

// PredictionAccuracy holds accuracy metrics for a single settled match
type PredictionAccuracy struct {
	MatchID            string `json:"matchId,omitempty"`
	HomeTeam           string `json:"homeTeam,omitempty"`
	AwayTeam           string `json:"awayTeam,omitempty"`
	ActualHomeGoals    int    `json:"actualHomeGoals"`
	ActualAwayGoals    int    `json:"actualAwayGoals"`
	PredictedHomeGoals int    `json:"predictedHomeGoals"`
	PredictedAwayGoals int    `json:"predictedAwayGoals"`

	ExactScoreCorrect   bool `json:"exactScoreCorrect"`
	ResultCorrect       bool `json:"resultCorrect"`
	GoalDifferenceError int  `json:"goalDifferenceError"`
	TotalGoalsError     int  `json:"totalGoalsError"`
}

// AggregateAccuracy holds back-testing statistics across many matches
type AggregateAccuracy struct {
	TotalMatches           int     `json:"totalMatches"`
	ExactScoreAccuracy     float64 `json:"exactScoreAccuracy"` // percentage
	ResultAccuracy         float64 `json:"resultAccuracy"`     // percentage
	AverageGoalDiffError   float64 `json:"averageGoalDiffError"`
	AverageTotalGoalsError float64 `json:"averageTotalGoalsError"`
}

// matchResult returns "H" for home win, "D" for draw, "A" for away win
func matchResult(homeGoals, awayGoals int) string {
	switch {
	case homeGoals > awayGoals:
		return "H"
	case homeGoals < awayGoals:
		return "A"
	default:
		return "D"
	}
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// EvaluateAccuracy compares a prediction's modal scoreline with an actual
// result. Used to back-test the models against settled matches.
func EvaluateAccuracy(prediction *PredictionResult, actualHome, actualAway int) *PredictionAccuracy {
	accuracy := &PredictionAccuracy{
		ActualHomeGoals:    actualHome,
		ActualAwayGoals:    actualAway,
		PredictedHomeGoals: prediction.PredictedHomeGoals,
		PredictedAwayGoals: prediction.PredictedAwayGoals,
	}

	accuracy.ExactScoreCorrect = actualHome == accuracy.PredictedHomeGoals &&
		actualAway == accuracy.PredictedAwayGoals
	accuracy.ResultCorrect = matchResult(actualHome, actualAway) ==
		matchResult(accuracy.PredictedHomeGoals, accuracy.PredictedAwayGoals)
	accuracy.GoalDifferenceError = absInt((actualHome - actualAway) -
		(accuracy.PredictedHomeGoals - accuracy.PredictedAwayGoals))
	accuracy.TotalGoalsError = absInt((actualHome + actualAway) -
		(accuracy.PredictedHomeGoals + accuracy.PredictedAwayGoals))

	return accuracy
}

// AggregateAccuracies reduces per-match accuracies into aggregate rates.
// Returns nil when there is nothing to aggregate.
func AggregateAccuracies(accuracies []*PredictionAccuracy) *AggregateAccuracy {
	if len(accuracies) == 0 {
		return nil
	}

	aggregate := &AggregateAccuracy{TotalMatches: len(accuracies)}

	var exactCount, resultCount, gdError, totalError int
	for _, accuracy := range accuracies {
		if accuracy.ExactScoreCorrect {
			exactCount++
		}
		if accuracy.ResultCorrect {
			resultCount++
		}
		gdError += accuracy.GoalDifferenceError
		totalError += accuracy.TotalGoalsError
	}

	n := float64(aggregate.TotalMatches)
	aggregate.ExactScoreAccuracy = float64(exactCount) / n * 100
	aggregate.ResultAccuracy = float64(resultCount) / n * 100
	aggregate.AverageGoalDiffError = float64(gdError) / n
	aggregate.AverageTotalGoalsError = float64(totalError) / n

	return aggregate
}
