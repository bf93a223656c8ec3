package podds

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPoissonPMFRangeAndMass(t *testing.T) {
	for _, lambda := range []float64{0.5, 1.5, 3.0, 10.0} {
		sum := 0.0
		for k := 0; k <= 30; k++ {
			p := PoissonPMF(k, lambda)
			assert.Greater(t, p, 0.0, "pmf must be positive for lambda=%f k=%d", lambda, k)
			assert.LessOrEqual(t, p, 1.0)
			sum += p
		}
		assert.InDelta(t, 1.0, sum, 1e-6, "mass should sum to 1 for lambda=%f", lambda)
	}
}

func TestPoissonPMFDegenerateRate(t *testing.T) {
	// A zero rate is a point mass at zero; the bivariate decomposition
	// relies on this when a residual rate collapses
	assert.Equal(t, 1.0, PoissonPMF(0, 0))
	assert.Equal(t, 0.0, PoissonPMF(3, 0))
	assert.Equal(t, 0.0, PoissonPMF(-1, 1.5))
}

func TestDixonColesReducesToIndependentWhenRhoZero(t *testing.T) {
	independent := IndependentPoissonModel(1.7, 1.1, 6)
	dixonColes := DixonColesModel(1.7, 1.1, 0, 6)

	for h := 0; h < 6; h++ {
		for a := 0; a < 6; a++ {
			assert.Equal(t, independent.Matrix[h][a].Prob, dixonColes.Matrix[h][a].Prob,
				"cell %d-%d should be untouched with rho=0", h, a)
			assert.Equal(t, 1.0, dixonColes.Matrix[h][a].Adjustment)
		}
	}
}

func TestBivariateReducesToIndependentWhenLambda3Zero(t *testing.T) {
	for h := 0; h < 6; h++ {
		for a := 0; a < 6; a++ {
			expected := PoissonPMF(h, 1.4) * PoissonPMF(a, 0.9)
			assert.InDelta(t, expected, BivariateProb(h, a, 1.4, 0.9, 0), 1e-12)
		}
	}
}

func TestNegativeLambda3CollapsesToIndependence(t *testing.T) {
	// Negative covariance is clamped away before the decomposition, so the
	// joint law is plain independence
	for h := 0; h < 4; h++ {
		for a := 0; a < 4; a++ {
			assert.Equal(t,
				BivariateProb(h, a, 1.2, 1.0, 0),
				BivariateProb(h, a, 1.2, 1.0, -0.05))
		}
	}
}

func TestLambda3ClampedToSmallerMarginal(t *testing.T) {
	// A covariance above either marginal is invalid; the clamp caps it
	assert.Equal(t,
		BivariateProb(1, 1, 1.0, 0.5, 0.5),
		BivariateProb(1, 1, 1.0, 0.5, 2.0))
}

func TestOutcomeProbabilitiesBounded(t *testing.T) {
	models := []*ModelResult{
		IndependentPoissonModel(1.5, 1.2, 6),
		DixonColesModel(1.5, 1.2, -0.13, 6),
		BivariatePoissonModel(1.5, 1.2, 0.1, 6),
	}

	for _, model := range models {
		assert.GreaterOrEqual(t, model.HomeWinProb, 0.0)
		assert.GreaterOrEqual(t, model.DrawProb, 0.0)
		assert.GreaterOrEqual(t, model.AwayWinProb, 0.0)
		total := model.HomeWinProb + model.DrawProb + model.AwayWinProb
		assert.LessOrEqual(t, total, 1.0+1e-12, "truncated grid can never exceed unit mass")
		assert.Greater(t, total, 0.8, "a 6x6 grid should capture most of the mass at these rates")
	}
}

func TestDixonColesSymmetryAndDrawBoost(t *testing.T) {
	independent := IndependentPoissonModel(1.5, 1.5, 6)
	dixonColes := DixonColesModel(1.5, 1.5, -0.13, 6)

	// Equal strengths: the 0-1/1-0 corrections mirror each other exactly
	assert.InDelta(t, dixonColes.HomeWinProb, dixonColes.AwayWinProb, 1e-12)

	// Negative rho boosts 0-0 and 1-1, so draws gain mass
	assert.Greater(t, dixonColes.DrawProb, independent.DrawProb)
}

func TestDixonColesTauCells(t *testing.T) {
	rho := -0.13
	assert.InDelta(t, 1-1.5*1.2*rho, DixonColesTau(0, 0, 1.5, 1.2, rho), 1e-12)
	assert.InDelta(t, 1+1.5*rho, DixonColesTau(0, 1, 1.5, 1.2, rho), 1e-12)
	assert.InDelta(t, 1+1.2*rho, DixonColesTau(1, 0, 1.5, 1.2, rho), 1e-12)
	assert.InDelta(t, 1-rho, DixonColesTau(1, 1, 1.5, 1.2, rho), 1e-12)
	assert.Equal(t, 1.0, DixonColesTau(2, 1, 1.5, 1.2, rho))
	assert.Equal(t, 1.0, DixonColesTau(4, 4, 1.5, 1.2, rho))
}

func TestEstimateLambda3Branches(t *testing.T) {
	baseline := &LeagueBaseline{AvgHomeGoals: 1.5, AvgAwayGoals: 1.2} // league total 2.7

	// High-scoring: capped minimum of 0.15 and 0.08 per marginal
	high := EstimateLambda3(2.0, 1.5, baseline)
	assert.InDelta(t, 0.08*1.5, high, 1e-12)

	// Low-scoring: slight anti-correlation (collapses to independence later)
	assert.Equal(t, -0.05, EstimateLambda3(0.5, 0.5, baseline))

	// Normal tempo: mild positive default
	assert.Equal(t, 0.10, EstimateLambda3(1.5, 1.2, baseline))
}

func TestMostLikelyScoreline(t *testing.T) {
	model := DixonColesModel(2.8, 0.6, -0.13, 6)
	home, away := MostLikelyScoreline(model.Matrix)

	// Brute-force the marginal argmax for comparison
	bestHome, bestHomeProb := 0, 0.0
	for h := range model.Matrix {
		rowProb := 0.0
		for a := range model.Matrix[h] {
			rowProb += model.Matrix[h][a].Prob
		}
		if rowProb > bestHomeProb {
			bestHomeProb, bestHome = rowProb, h
		}
	}
	require.Equal(t, bestHome, home)
	assert.Equal(t, 0, away, "a 0.6 away rate makes zero the modal away score")
}
