package podds

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnalyzeFormEmptyHistoryIsNeutral(t *testing.T) {
	analysis := AnalyzeForm(nil)
	require.NotNil(t, analysis)
	assert.Equal(t, TrendNeutral, analysis.Trend)
	assert.Equal(t, 1.0, analysis.FormModifier)
	assert.Equal(t, 0.0, analysis.PredictedGD)
	assert.Equal(t, 0.0, analysis.GDSlope)
}

func TestAnalyzeFormImprovingTeam(t *testing.T) {
	// Goal difference rises one goal per match: gd = matchNumber
	history := []MatchHistoryEntry{
		{MatchNumber: 1, GoalsScored: 2, GoalsConceded: 1, Points: 3},
		{MatchNumber: 2, GoalsScored: 3, GoalsConceded: 1, Points: 3},
		{MatchNumber: 3, GoalsScored: 4, GoalsConceded: 1, Points: 3},
		{MatchNumber: 4, GoalsScored: 5, GoalsConceded: 1, Points: 3},
	}

	analysis := AnalyzeForm(history)
	assert.InDelta(t, 1.0, analysis.GDSlope, 1e-9)
	assert.InDelta(t, 0.0, analysis.GDIntercept, 1e-9)
	assert.Equal(t, TrendImproving, analysis.Trend)

	// Extrapolated one match past the four observed
	assert.InDelta(t, 5.0, analysis.PredictedGD, 1e-9)

	// Raw modifier would be 1.4; the cap holds
	assert.Equal(t, 1.20, analysis.FormModifier)

	assert.InDelta(t, 3.5, analysis.AvgGoalsScored, 1e-9)
	assert.InDelta(t, 1.0, analysis.AvgGoalsConceded, 1e-9)
	assert.InDelta(t, 3.0, analysis.AvgPoints, 1e-9)
}

func TestAnalyzeFormDecliningTeamClampsLow(t *testing.T) {
	history := []MatchHistoryEntry{
		{MatchNumber: 1, GoalsScored: 4, GoalsConceded: 0, Points: 3},
		{MatchNumber: 2, GoalsScored: 2, GoalsConceded: 1, Points: 3},
		{MatchNumber: 3, GoalsScored: 1, GoalsConceded: 2, Points: 0},
		{MatchNumber: 4, GoalsScored: 0, GoalsConceded: 4, Points: 0},
	}

	analysis := AnalyzeForm(history)
	assert.Equal(t, TrendDeclining, analysis.Trend)
	assert.Equal(t, 0.80, analysis.FormModifier)
	assert.Less(t, analysis.PredictedGD, 0.0)
}

func TestAnalyzeFormFlatHistoryIsNeutralTrend(t *testing.T) {
	history := []MatchHistoryEntry{
		{MatchNumber: 1, GoalsScored: 1, GoalsConceded: 1, Points: 1},
		{MatchNumber: 2, GoalsScored: 1, GoalsConceded: 1, Points: 1},
		{MatchNumber: 3, GoalsScored: 1, GoalsConceded: 1, Points: 1},
	}

	analysis := AnalyzeForm(history)
	assert.Equal(t, TrendNeutral, analysis.Trend)
	assert.InDelta(t, 0.0, analysis.GDSlope, 1e-9)
	assert.InDelta(t, 1.0, analysis.FormModifier, 1e-9)
}

func TestAnalyzeFormAcceptsUnsortedHistory(t *testing.T) {
	sorted := AnalyzeForm([]MatchHistoryEntry{
		{MatchNumber: 1, GoalsScored: 0, GoalsConceded: 2},
		{MatchNumber: 2, GoalsScored: 1, GoalsConceded: 1},
		{MatchNumber: 3, GoalsScored: 3, GoalsConceded: 0},
	})
	shuffled := AnalyzeForm([]MatchHistoryEntry{
		{MatchNumber: 3, GoalsScored: 3, GoalsConceded: 0},
		{MatchNumber: 1, GoalsScored: 0, GoalsConceded: 2},
		{MatchNumber: 2, GoalsScored: 1, GoalsConceded: 1},
	})

	assert.Equal(t, sorted.GDSlope, shuffled.GDSlope)
	assert.Equal(t, sorted.PredictedGD, shuffled.PredictedGD)
	assert.Equal(t, sorted.Trend, shuffled.Trend)
}

func TestLinearRegressionZeroVarianceX(t *testing.T) {
	// All samples at the same x: flat line through the mean of y
	slope, intercept := linearRegression(
		[]float64{5, 5, 5},
		[]float64{1, 2, 3},
	)
	assert.Equal(t, 0.0, slope)
	assert.InDelta(t, 2.0, intercept, 1e-12)
}

func TestLinearRegressionExactFit(t *testing.T) {
	slope, intercept := linearRegression(
		[]float64{1, 2, 3, 4},
		[]float64{3, 5, 7, 9}, // y = 2x + 1
	)
	assert.InDelta(t, 2.0, slope, 1e-12)
	assert.InDelta(t, 1.0, intercept, 1e-12)
}
