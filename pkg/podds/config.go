package podds

import "fmt"

// PoddsConfig contains all configurable parameters that influence prediction outcomes
// This centralizes all magic numbers and constants for easy adjustment
type PoddsConfig struct {
	// === GRID AND NUMERIC BOUNDS ===

	GridSize       int     // Scoreline grid dimension, goal counts 0..GridSize-1 per side (default: 6)
	TotalGoalsMax  int     // Truncation bound for the total-goals convolution (default: 15)
	BlankTailMax   int     // Truncation bound for the BTTS blank-side sums (default: 10)
	MinGoalsFloor  float64 // Minimum expected goals floor, keeps lambda strictly positive (default: 0.1)
	MaxGoalsCap    float64 // Maximum expected goals cap (default: 10.0)

	// === DIXON-COLES CORRECTION ===

	// Dixon-Coles correlation parameter for low-scoring games
	DixonColesRho float64 // Correlation parameter (default: -0.13)

	// === BIVARIATE POISSON (LAMBDA3) ESTIMATION ===

	// Heuristic covariance estimation thresholds relative to the league-average total
	Lambda3HighRatio float64 // Above this multiple of league total, high-scoring estimate applies (default: 1.2)
	Lambda3LowRatio  float64 // Below this multiple of league total, low-scoring estimate applies (default: 0.8)
	Lambda3HighCap   float64 // Cap on the high-scoring covariance estimate (default: 0.15)
	Lambda3HighScale float64 // Scale applied to each marginal in the high-scoring estimate (default: 0.08)
	Lambda3LowValue  float64 // Low-scoring anti-correlation estimate (default: -0.05)
	Lambda3Default   float64 // Mild positive covariance default (default: 0.10)

	// === FORM REGRESSION ===

	FormSlopeThreshold float64 // Goal-difference slope beyond which form is improving/declining (default: 0.25)
	FormSlopeWeight    float64 // Weight converting slope into a multiplicative modifier (default: 0.4)
	FormModifierMin    float64 // Lower clamp on the form modifier (default: 0.80)
	FormModifierMax    float64 // Upper clamp on the form modifier (default: 1.20)
	RegressionDamping  float64 // Divisor damping the predicted goal-difference nudge (default: 4.0)

	// === GOAL-LINE VALUE THRESHOLDS ===

	GoalLine         float64 // Default bookmaker total-goals line (default: 2.5)
	GoalLineMargin   float64 // Minimum edge over the line before recommending a bet (default: 0.20)
	GoalLineStrong   float64 // Difference beyond which value is strong (default: 0.5)
	GoalLineGood     float64 // Difference beyond which value is good (default: 0.3)

	// === BTTS VALUE THRESHOLDS ===

	BTTSOdds       float64 // Default bookmaker both-teams-to-score odds (default: 1.80)
	BTTSStrongEdge float64 // Odds edge beyond which BTTS-yes value is strong (default: 0.30)
	BTTSGoodEdge   float64 // Odds edge beyond which BTTS-yes value is good (default: 0.15)
	BTTSSlightEdge float64 // Odds edge beyond which BTTS-yes value is slight (default: 0.05)
	BTTSLayEdge    float64 // Negative edge below which the yes price is underpriced (default: -0.20)
}

// DefaultPoddsConfig returns the default configuration with all standard values
func DefaultPoddsConfig() *PoddsConfig {
	return &PoddsConfig{
		GridSize:      6,
		TotalGoalsMax: 15,
		BlankTailMax:  10,
		MinGoalsFloor: 0.1,
		MaxGoalsCap:   10.0,

		DixonColesRho: -0.13,

		Lambda3HighRatio: 1.2,
		Lambda3LowRatio:  0.8,
		Lambda3HighCap:   0.15,
		Lambda3HighScale: 0.08,
		Lambda3LowValue:  -0.05,
		Lambda3Default:   0.10,

		FormSlopeThreshold: 0.25,
		FormSlopeWeight:    0.4,
		FormModifierMin:    0.80,
		FormModifierMax:    1.20,
		RegressionDamping:  4.0,

		GoalLine:       2.5,
		GoalLineMargin: 0.20,
		GoalLineStrong: 0.5,
		GoalLineGood:   0.3,

		BTTSOdds:       1.80,
		BTTSStrongEdge: 0.30,
		BTTSGoodEdge:   0.15,
		BTTSSlightEdge: 0.05,
		BTTSLayEdge:    -0.20,
	}
}

// Global configuration instance
var Config *PoddsConfig

// init initializes the global configuration with default values
func init() {
	Config = DefaultPoddsConfig()
}

// UpdateConfig allows updating the global configuration
func UpdateConfig(newConfig *PoddsConfig) error {
	if err := ValidateConfig(newConfig); err != nil {
		return err
	}
	Config = newConfig
	return nil
}

// GetDixonColesRho returns the Dixon-Coles correlation parameter
func GetDixonColesRho() float64 {
	return Config.DixonColesRho
}

// GetGridSize returns the scoreline grid dimension
func GetGridSize() int {
	return Config.GridSize
}

// ValidateConfig ensures all configuration values are within reasonable ranges
func ValidateConfig(config *PoddsConfig) error {
	if config.GridSize < 3 {
		return fmt.Errorf("GridSize should be at least 3 to capture realistic scores, got: %d", config.GridSize)
	}

	if config.TotalGoalsMax < config.GridSize {
		return fmt.Errorf("TotalGoalsMax must cover at least the scoreline grid, got: %d", config.TotalGoalsMax)
	}

	if config.MinGoalsFloor <= 0 {
		return fmt.Errorf("MinGoalsFloor must be strictly positive for valid Poisson rates, got: %f", config.MinGoalsFloor)
	}

	if config.DixonColesRho > 0 || config.DixonColesRho < -0.5 {
		return fmt.Errorf("DixonColesRho should be between -0.5 and 0, got: %f", config.DixonColesRho)
	}

	if config.FormModifierMin > 1.0 || config.FormModifierMax < 1.0 {
		return fmt.Errorf("form modifier clamp must bracket 1.0, got: [%f, %f]", config.FormModifierMin, config.FormModifierMax)
	}

	if config.RegressionDamping <= 0 {
		return fmt.Errorf("RegressionDamping must be strictly positive, got: %f", config.RegressionDamping)
	}

	if config.GoalLineMargin < 0 {
		return fmt.Errorf("GoalLineMargin must not be negative, got: %f", config.GoalLineMargin)
	}

	return nil
}
