package podds

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func averageFixtureInput() *PredictionInput {
	home, away, baseline := leagueAverageFixture()
	return &PredictionInput{
		Baseline:  baseline,
		HomeStats: home,
		AwayStats: away,
	}
}

func TestPredictLeagueAverageFixture(t *testing.T) {
	result := Predict(averageFixtureInput())
	require.NotNil(t, result)

	assert.InDelta(t, 1.5, result.HomeExpGoals, 1e-6)
	assert.InDelta(t, 1.2, result.AwayExpGoals, 1e-6)
	assert.InDelta(t, 2.7, result.TotalExpGoals, 1e-6)

	assert.Equal(t, Config.DixonColesRho, result.Rho)
	// A league-average tempo gets the default mild covariance
	assert.Equal(t, 0.10, result.Lambda3)
	assert.Equal(t, 0.0, result.RegressionAdjust)

	assert.Nil(t, result.HomeForm, "no history, no form analysis")
	assert.Nil(t, result.AwayForm)

	require.NotNil(t, result.Poisson)
	require.NotNil(t, result.DixonColes)
	require.NotNil(t, result.BivariatePoisson)
	require.NotNil(t, result.BTTS)
	require.NotNil(t, result.TrueGoalLine)

	// 2.7 expected against a 2.5 line sits inside the no-bet margin
	assert.Equal(t, RecommendNoBet, result.TrueGoalLine.Recommendation)
	assert.Equal(t, 2.5, result.TrueGoalLine.BookieLine)

	// Both marginal modes land on one goal at these rates
	assert.Equal(t, 1, result.PredictedHomeGoals)
	assert.Equal(t, 1, result.PredictedAwayGoals)
}

func TestPredictLegacyViewMirrorsDixonColes(t *testing.T) {
	result := Predict(averageFixtureInput())

	assert.Equal(t, result.DixonColes.HomeWinProb, result.HomeWinProb)
	assert.Equal(t, result.DixonColes.DrawProb, result.DrawProb)
	assert.Equal(t, result.DixonColes.AwayWinProb, result.AwayWinProb)
	assert.Equal(t, result.DixonColes.Matrix, result.Matrix)
}

func TestPredictWithFormHistory(t *testing.T) {
	input := averageFixtureInput()
	input.HomeHistory = []MatchHistoryEntry{
		{MatchNumber: 1, GoalsScored: 1, GoalsConceded: 1, Points: 1},
		{MatchNumber: 2, GoalsScored: 2, GoalsConceded: 0, Points: 3},
		{MatchNumber: 3, GoalsScored: 3, GoalsConceded: 0, Points: 3},
	}

	result := Predict(input)

	require.NotNil(t, result.HomeForm)
	require.NotNil(t, result.AwayForm, "empty away history still yields a neutral analysis")
	assert.Equal(t, TrendImproving, result.HomeForm.Trend)
	assert.Equal(t, TrendNeutral, result.AwayForm.Trend)
	assert.Greater(t, result.RegressionAdjust, 0.0)
	assert.Greater(t, result.HomeExpGoals, 1.5)
}

func TestPredictParameterOverrides(t *testing.T) {
	lambda3 := 0.05
	input := averageFixtureInput()
	input.Params = &PredictionParams{
		Rho:      -0.05,
		GoalLine: 3.5,
		BTTSOdds: 2.10,
		Lambda3:  &lambda3,
	}

	result := Predict(input)

	assert.Equal(t, -0.05, result.Rho)
	assert.Equal(t, 0.05, result.Lambda3)
	assert.Equal(t, 3.5, result.TrueGoalLine.BookieLine)
	assert.Equal(t, 2.10, result.BTTS.BookieOdds)
	// 2.7 expected against a 3.5 line is a clear under
	assert.Equal(t, RecommendUnder, result.TrueGoalLine.Recommendation)
}

func TestPredictIsDeterministic(t *testing.T) {
	first := Predict(averageFixtureInput())
	second := Predict(averageFixtureInput())
	assert.Equal(t, first, second)
}
