package podds

// ExpectedGoals holds the Poisson rate parameters driving every scoreline
// model. Both values are floor-clamped strictly above zero so the kernel
// and log computations downstream always receive a valid rate.
type ExpectedGoals struct {
	HomeExpGoals float64 `json:"homeExpGoals"`
	AwayExpGoals float64 `json:"awayExpGoals"`
}

// Total returns the combined expected goal count for the match
func (e *ExpectedGoals) Total() float64 {
	return e.HomeExpGoals + e.AwayExpGoals
}

// EstimateExpectedGoals combines the two teams' strength ratios with the
// league baseline into home and away expected goals:
//
//	home = homeAttack × homeFormModifier × awayDefense × leagueAvgHome
//	away = awayAttack × awayFormModifier × homeDefense × leagueAvgAway
//
// When both teams carry form analyses, the difference of their predicted
// goal differences nudges the split, damped so the season-long strength
// signal stays primary. The returned adjustment is the applied nudge
// (zero when either form analysis is absent).
func EstimateExpectedGoals(home, away *TeamStrengths, homeForm, awayForm *FormAnalysis, baseline *LeagueBaseline) (*ExpectedGoals, float64) {
	homeModifier, awayModifier := 1.0, 1.0
	if homeForm != nil {
		homeModifier = homeForm.FormModifier
	}
	if awayForm != nil {
		awayModifier = awayForm.FormModifier
	}

	expected := &ExpectedGoals{
		HomeExpGoals: home.HomeAttack * homeModifier * away.AwayDefense * baseline.AvgHomeGoals,
		AwayExpGoals: away.AwayAttack * awayModifier * home.HomeDefense * baseline.AvgAwayGoals,
	}

	adjustment := 0.0
	if homeForm != nil && awayForm != nil {
		adjustment = (homeForm.PredictedGD - awayForm.PredictedGD) / Config.RegressionDamping
		expected.HomeExpGoals += adjustment
		expected.AwayExpGoals -= adjustment
	}

	expected.HomeExpGoals = clamp(expected.HomeExpGoals, Config.MinGoalsFloor, Config.MaxGoalsCap)
	expected.AwayExpGoals = clamp(expected.AwayExpGoals, Config.MinGoalsFloor, Config.MaxGoalsCap)

	return expected, adjustment
}
