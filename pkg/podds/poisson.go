package podds

import (
	"math"
)

// PoissonPMF returns the Poisson probability mass P(X = k) for rate lambda.
// Computed in log space (log-gamma formulation) so the factorial never
// overflows even if the grid size is extended well beyond normal goal counts.
// A non-positive lambda degenerates to a point mass at zero, which is what
// the bivariate decomposition needs when a residual rate collapses to 0.
func PoissonPMF(k int, lambda float64) float64 {
	if k < 0 {
		return 0
	}
	if lambda <= 0 {
		if k == 0 {
			return 1.0
		}
		return 0
	}
	lgamma, _ := math.Lgamma(float64(k) + 1)
	return math.Exp(float64(k)*math.Log(lambda) - lambda - lgamma)
}

// Scoreline is a single cell of the scoreline grid: the probability of the
// match ending Home-Away. Adjustment carries the Dixon-Coles correlation
// factor applied to the cell (1.0 everywhere the correction does not apply).
type Scoreline struct {
	Home       int     `json:"h"`
	Away       int     `json:"a"`
	Prob       float64 `json:"prob"`
	Adjustment float64 `json:"adjustment,omitempty"`
}

// ScorelineMatrix is a square grid of scoreline probabilities, rows indexed
// by home goals and columns by away goals, both 0..N-1. The grid truncates
// the support above N-1 goals per side, so the cells sum to slightly less
// than 1; it is used for relative comparison and outcome aggregation only.
type ScorelineMatrix [][]Scoreline

// ModelResult holds a scoreline model's grid together with its aggregated
// match-outcome (1X2) probabilities.
type ModelResult struct {
	HomeWinProb float64         `json:"homeWinProb"`
	DrawProb    float64         `json:"drawProb"`
	AwayWinProb float64         `json:"awayWinProb"`
	Matrix      ScorelineMatrix `json:"matrix"`
}

// newScorelineMatrix allocates an n by n grid with cell coordinates filled in
func newScorelineMatrix(n int) ScorelineMatrix {
	matrix := make(ScorelineMatrix, n)
	for h := range matrix {
		matrix[h] = make([]Scoreline, n)
		for a := range matrix[h] {
			matrix[h][a] = Scoreline{Home: h, Away: a, Adjustment: 1.0}
		}
	}
	return matrix
}

// accumulateOutcomes walks the grid once, summing the home-win (lower
// triangle), draw (diagonal) and away-win (upper triangle) probabilities
func (r *ModelResult) accumulateOutcomes() {
	r.HomeWinProb, r.DrawProb, r.AwayWinProb = 0, 0, 0
	for h := range r.Matrix {
		for a := range r.Matrix[h] {
			prob := r.Matrix[h][a].Prob
			switch {
			case h > a:
				r.HomeWinProb += prob
			case h == a:
				r.DrawProb += prob
			default:
				r.AwayWinProb += prob
			}
		}
	}
}

// IndependentPoissonModel builds the scoreline grid under the assumption
// that home and away goals are independent Poisson variables
func IndependentPoissonModel(homeLambda, awayLambda float64, gridSize int) *ModelResult {
	result := &ModelResult{Matrix: newScorelineMatrix(gridSize)}
	for h := 0; h < gridSize; h++ {
		homeProb := PoissonPMF(h, homeLambda)
		for a := 0; a < gridSize; a++ {
			result.Matrix[h][a].Prob = homeProb * PoissonPMF(a, awayLambda)
		}
	}
	result.accumulateOutcomes()
	return result
}

// DixonColesTau computes the correction factor for the four low-scoring
// cells. Plain independent Poisson under-predicts 0-0 and 1-1 draws and
// over-predicts the 1-0/0-1 splits; this is the standard remedy.
func DixonColesTau(homeGoals, awayGoals int, homeLambda, awayLambda, rho float64) float64 {
	switch {
	case homeGoals == 0 && awayGoals == 0:
		return 1 - homeLambda*awayLambda*rho
	case homeGoals == 0 && awayGoals == 1:
		return 1 + homeLambda*rho
	case homeGoals == 1 && awayGoals == 0:
		return 1 + awayLambda*rho
	case homeGoals == 1 && awayGoals == 1:
		return 1 - rho
	default:
		return 1.0
	}
}

// DixonColesModel builds the scoreline grid with the Dixon-Coles low-score
// correlation correction applied to the 0-0, 1-0, 0-1 and 1-1 cells.
// With rho=0 the grid is identical to the independent Poisson grid.
func DixonColesModel(homeLambda, awayLambda, rho float64, gridSize int) *ModelResult {
	result := &ModelResult{Matrix: newScorelineMatrix(gridSize)}
	for h := 0; h < gridSize; h++ {
		homeProb := PoissonPMF(h, homeLambda)
		for a := 0; a < gridSize; a++ {
			tau := DixonColesTau(h, a, homeLambda, awayLambda, rho)
			result.Matrix[h][a].Adjustment = tau
			result.Matrix[h][a].Prob = homeProb * PoissonPMF(a, awayLambda) * tau
		}
	}
	result.accumulateOutcomes()
	return result
}

// BivariateProb computes the joint probability P(home=h, away=a) under a
// simplified bivariate Poisson in which both sides share a common scoring
// component lambda3. The covariance is clamped to [0, min(lambda1, lambda2)]:
// it must not exceed either marginal, and negative covariance collapses to
// independence rather than being modelled (a known simplification of this
// form, not a full Holgate bivariate Poisson).
func BivariateProb(h, a int, homeLambda, awayLambda, lambda3 float64) float64 {
	shared := clampLambda3(lambda3, homeLambda, awayLambda)
	residualHome := homeLambda - shared
	residualAway := awayLambda - shared

	min := h
	if a < min {
		min = a
	}

	prob := 0.0
	for k := 0; k <= min; k++ {
		prob += PoissonPMF(h-k, residualHome) * PoissonPMF(a-k, residualAway) * PoissonPMF(k, shared)
	}
	return prob
}

// clampLambda3 bounds the shared component to a valid covariance
func clampLambda3(lambda3, homeLambda, awayLambda float64) float64 {
	if lambda3 < 0 {
		return 0
	}
	if lambda3 > homeLambda {
		lambda3 = homeLambda
	}
	if lambda3 > awayLambda {
		lambda3 = awayLambda
	}
	return lambda3
}

// BivariatePoissonModel builds the scoreline grid under the simplified
// bivariate Poisson with shared component lambda3
func BivariatePoissonModel(homeLambda, awayLambda, lambda3 float64, gridSize int) *ModelResult {
	result := &ModelResult{Matrix: newScorelineMatrix(gridSize)}
	for h := 0; h < gridSize; h++ {
		for a := 0; a < gridSize; a++ {
			result.Matrix[h][a].Prob = BivariateProb(h, a, homeLambda, awayLambda, lambda3)
		}
	}
	result.accumulateOutcomes()
	return result
}

// EstimateLambda3 picks a covariance for the bivariate model from the match
// tempo relative to the league norm: high-scoring fixtures get a moderate
// positive shared component, low-scoring fixtures a slight anti-correlation
// (which the grid clamp later collapses to independence), and everything
// else the mild positive default. These constants are a fixed heuristic,
// not a fitted parameter.
func EstimateLambda3(homeLambda, awayLambda float64, baseline *LeagueBaseline) float64 {
	leagueTotal := baseline.AvgHomeGoals + baseline.AvgAwayGoals
	total := homeLambda + awayLambda

	switch {
	case total > Config.Lambda3HighRatio*leagueTotal:
		estimate := Config.Lambda3HighCap
		if v := Config.Lambda3HighScale * homeLambda; v < estimate {
			estimate = v
		}
		if v := Config.Lambda3HighScale * awayLambda; v < estimate {
			estimate = v
		}
		return estimate
	case total < Config.Lambda3LowRatio*leagueTotal:
		return Config.Lambda3LowValue
	default:
		return Config.Lambda3Default
	}
}

// MostLikelyScoreline returns the modal home and away goal counts, taken
// from the per-side marginal sums of the grid
func MostLikelyScoreline(matrix ScorelineMatrix) (homeGoals, awayGoals int) {
	bestHome, bestAway := 0.0, 0.0
	for h := range matrix {
		rowProb := 0.0
		for a := range matrix[h] {
			rowProb += matrix[h][a].Prob
		}
		if rowProb > bestHome {
			bestHome = rowProb
			homeGoals = h
		}
	}
	for a := range matrix {
		colProb := 0.0
		for h := range matrix {
			colProb += matrix[h][a].Prob
		}
		if colProb > bestAway {
			bestAway = colProb
			awayGoals = a
		}
	}
	return homeGoals, awayGoals
}
