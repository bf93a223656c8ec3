package podds

import (
	"github.com/richard-senior/podds/internal/logger"
)

// PredictionParams are the per-request overrides a caller may supply.
// Lambda3 nil means "estimate from match tempo" (see EstimateLambda3).
type PredictionParams struct {
	Rho      float64  `json:"rho"`
	GoalLine float64  `json:"goalLine"`
	BTTSOdds float64  `json:"bttsOdds"`
	Lambda3  *float64 `json:"lambda3,omitempty"`
}

// DefaultParams returns the standard market parameters
func DefaultParams() *PredictionParams {
	return &PredictionParams{
		Rho:      Config.DixonColesRho,
		GoalLine: Config.GoalLine,
		BTTSOdds: Config.BTTSOdds,
	}
}

// PredictionInput is the fully-resolved data a single prediction needs.
// The engine assumes validated numeric inputs; fetching and validating
// them is the data layer's job.
type PredictionInput struct {
	Baseline  *LeagueBaseline  `json:"baseline"`
	HomeStats *TeamSeasonStats `json:"homeStats"`
	AwayStats *TeamSeasonStats `json:"awayStats"`

	// Optional recent-form samples; empty or nil disables the form adjustment
	HomeHistory []MatchHistoryEntry `json:"homeHistory,omitempty"`
	AwayHistory []MatchHistoryEntry `json:"awayHistory,omitempty"`

	// Optional overrides; nil means defaults
	Params *PredictionParams `json:"params,omitempty"`
}

// PredictionResult is the complete structured output of one prediction
type PredictionResult struct {
	HomeExpGoals       float64 `json:"homeExpGoals"`
	AwayExpGoals       float64 `json:"awayExpGoals"`
	TotalExpGoals      float64 `json:"totalExpectedGoals"`
	Rho                float64 `json:"rho"`
	Lambda3            float64 `json:"lambda3"`
	RegressionAdjust   float64 `json:"regressionAdjustment"`

	HomeForm *FormAnalysis `json:"homeForm,omitempty"`
	AwayForm *FormAnalysis `json:"awayForm,omitempty"`

	Poisson          *ModelResult `json:"poisson"`
	DixonColes       *ModelResult `json:"dixonColes"`
	BivariatePoisson *ModelResult `json:"bivariatePoisson"`

	TrueGoalLine *GoalLineReport `json:"trueGoalLine"`
	BTTS         *BTTSAnalysis   `json:"btts"`

	PredictedHomeGoals int `json:"predictedHomeGoals"`
	PredictedAwayGoals int `json:"predictedAwayGoals"`

	// Flat Dixon-Coles view kept for older consumers
	HomeWinProb float64         `json:"homeWinProb"`
	DrawProb    float64         `json:"drawProb"`
	AwayWinProb float64         `json:"awayWinProb"`
	Matrix      ScorelineMatrix `json:"matrix"`
}

// Predict runs the full pipeline: strength normalization and form analysis
// feed the expected-goals estimate, which drives the three scoreline models
// and the goal-line and BTTS analyzers. The computation is pure and
// synchronous; identical inputs always produce identical results, and every
// well-typed input produces a complete finite result.
func Predict(input *PredictionInput) *PredictionResult {
	params := input.Params
	if params == nil {
		params = DefaultParams()
	}

	homeStrengths := CalculateStrengths(input.HomeStats, input.Baseline)
	awayStrengths := CalculateStrengths(input.AwayStats, input.Baseline)

	var homeForm, awayForm *FormAnalysis
	if len(input.HomeHistory) > 0 || len(input.AwayHistory) > 0 {
		homeForm = AnalyzeForm(input.HomeHistory)
		awayForm = AnalyzeForm(input.AwayHistory)
	}

	expected, adjustment := EstimateExpectedGoals(homeStrengths, awayStrengths, homeForm, awayForm, input.Baseline)

	lambda3 := 0.0
	if params.Lambda3 != nil {
		lambda3 = *params.Lambda3
	} else {
		lambda3 = EstimateLambda3(expected.HomeExpGoals, expected.AwayExpGoals, input.Baseline)
	}

	logger.Debug("Predicting with expected goals",
		expected.HomeExpGoals, expected.AwayExpGoals, "rho", params.Rho, "lambda3", lambda3)

	gridSize := Config.GridSize
	result := &PredictionResult{
		HomeExpGoals:     expected.HomeExpGoals,
		AwayExpGoals:     expected.AwayExpGoals,
		TotalExpGoals:    expected.Total(),
		Rho:              params.Rho,
		Lambda3:          lambda3,
		RegressionAdjust: adjustment,
		HomeForm:         homeForm,
		AwayForm:         awayForm,

		Poisson:          IndependentPoissonModel(expected.HomeExpGoals, expected.AwayExpGoals, gridSize),
		DixonColes:       DixonColesModel(expected.HomeExpGoals, expected.AwayExpGoals, params.Rho, gridSize),
		BivariatePoisson: BivariatePoissonModel(expected.HomeExpGoals, expected.AwayExpGoals, lambda3, gridSize),

		BTTS: AnalyzeBTTS(expected.HomeExpGoals, expected.AwayExpGoals, lambda3, params.BTTSOdds),
	}

	result.TrueGoalLine = &GoalLineReport{
		GoalLineValue: *ClassifyGoalLine(expected.Total(), params.GoalLine),
		OverUnder:     *OverUnderProbabilities(expected.HomeExpGoals, expected.AwayExpGoals, params.GoalLine),
	}

	result.PredictedHomeGoals, result.PredictedAwayGoals = MostLikelyScoreline(result.DixonColes.Matrix)

	// Legacy flat view mirrors the Dixon-Coles block
	result.HomeWinProb = result.DixonColes.HomeWinProb
	result.DrawProb = result.DixonColes.DrawProb
	result.AwayWinProb = result.DixonColes.AwayWinProb
	result.Matrix = result.DixonColes.Matrix

	return result
}
