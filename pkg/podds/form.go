package podds

import (
	"sort"
)

// Trend classifies the direction of a team's recent goal-difference slope
type Trend string

const (
	TrendImproving Trend = "improving"
	TrendDeclining Trend = "declining"
	TrendNeutral   Trend = "neutral"
)

// MatchHistoryEntry is one recent-form sample for a team. MatchNumber is an
// ascending ordinal (higher = more recent) and is the independent variable
// of the form regressions, so ordering matters.
type MatchHistoryEntry struct {
	MatchNumber   int  `json:"matchNumber"`
	GoalsScored   int  `json:"goalsScored"`
	GoalsConceded int  `json:"goalsConceded"`
	WasHome       bool `json:"wasHome"`
	Points        int  `json:"points"`
}

// GoalDifference returns goals scored minus goals conceded
func (e *MatchHistoryEntry) GoalDifference() int {
	return e.GoalsScored - e.GoalsConceded
}

// FormAnalysis is the derived short-term momentum signal for one team
type FormAnalysis struct {
	// Goals-scored regression, kept as a reference signal
	Slope     float64 `json:"slope"`
	Intercept float64 `json:"intercept"`

	// Goal-difference regression, the primary form signal
	GDSlope     float64 `json:"gdSlope"`
	GDIntercept float64 `json:"gdIntercept"`

	// PredictedGD extrapolates the goal-difference regression one match ahead
	PredictedGD float64 `json:"predictedGD"`

	Trend Trend `json:"trend"`

	// FormModifier is a bounded multiplicative nudge on expected goals,
	// capped so short-term form cannot dominate the season-long signal
	FormModifier float64 `json:"formModifier"`

	AvgGoalsScored   float64 `json:"avgGoalsScored"`
	AvgGoalsConceded float64 `json:"avgGoalsConceded"`
	AvgPoints        float64 `json:"avgPoints"`
}

// NeutralForm returns the analysis used when no history is available:
// no trend, unit modifier, zero predicted goal difference
func NeutralForm() *FormAnalysis {
	return &FormAnalysis{
		Trend:        TrendNeutral,
		FormModifier: 1.0,
	}
}

// AnalyzeForm fits linear trends to a team's recent match history and
// derives the trend classification, the bounded form modifier and the
// predicted next-match goal difference. An empty history yields the
// neutral analysis rather than an error.
func AnalyzeForm(history []MatchHistoryEntry) *FormAnalysis {
	if len(history) == 0 {
		return NeutralForm()
	}

	// Defensive re-sort; callers normally supply ascending order already
	sorted := make([]MatchHistoryEntry, len(history))
	copy(sorted, history)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].MatchNumber < sorted[j].MatchNumber
	})

	xs := make([]float64, len(sorted))
	scored := make([]float64, len(sorted))
	diffs := make([]float64, len(sorted))

	var sumScored, sumConceded, sumPoints float64
	for i, entry := range sorted {
		xs[i] = float64(entry.MatchNumber)
		scored[i] = float64(entry.GoalsScored)
		diffs[i] = float64(entry.GoalDifference())
		sumScored += float64(entry.GoalsScored)
		sumConceded += float64(entry.GoalsConceded)
		sumPoints += float64(entry.Points)
	}

	analysis := &FormAnalysis{
		AvgGoalsScored:   sumScored / float64(len(sorted)),
		AvgGoalsConceded: sumConceded / float64(len(sorted)),
		AvgPoints:        sumPoints / float64(len(sorted)),
	}

	analysis.Slope, analysis.Intercept = linearRegression(xs, scored)
	analysis.GDSlope, analysis.GDIntercept = linearRegression(xs, diffs)

	// One step beyond the observed window
	next := float64(len(sorted) + 1)
	analysis.PredictedGD = analysis.GDSlope*next + analysis.GDIntercept

	switch {
	case analysis.GDSlope > Config.FormSlopeThreshold:
		analysis.Trend = TrendImproving
	case analysis.GDSlope < -Config.FormSlopeThreshold:
		analysis.Trend = TrendDeclining
	default:
		analysis.Trend = TrendNeutral
	}

	analysis.FormModifier = clamp(
		1.0+analysis.GDSlope*Config.FormSlopeWeight,
		Config.FormModifierMin,
		Config.FormModifierMax,
	)

	return analysis
}

// linearRegression fits y = slope*x + intercept by ordinary least squares.
// With zero variance in x the fit is degenerate; the flat line through the
// mean of y is returned instead of dividing by zero.
func linearRegression(xs, ys []float64) (slope, intercept float64) {
	n := float64(len(xs))
	if n == 0 {
		return 0, 0
	}

	var sumX, sumY, sumXY, sumXX float64
	for i := range xs {
		sumX += xs[i]
		sumY += ys[i]
		sumXY += xs[i] * ys[i]
		sumXX += xs[i] * xs[i]
	}

	denom := n*sumXX - sumX*sumX
	if denom == 0 {
		return 0, sumY / n
	}

	slope = (n*sumXY - sumX*sumY) / denom
	intercept = (sumY - slope*sumX) / n
	return slope, intercept
}

// clamp bounds value to [lo, hi]
func clamp(value, lo, hi float64) float64 {
	if value < lo {
		return lo
	}
	if value > hi {
		return hi
	}
	return value
}
