package podds

// BTTSAnalysis is the both-teams-to-score market assessment. The
// recommendation is always driven by the bivariate probabilities; the
// independent-Poisson figure is reported alongside purely for comparison.
type BTTSAnalysis struct {
	YesProb            float64 `json:"yesProb"`
	NoProb             float64 `json:"noProb"`
	IndependentYesProb float64 `json:"independentYesProb"`

	FairOdds      float64 `json:"fairOdds,omitempty"`
	BookieOdds    float64 `json:"bookieOdds"`
	ValueDiff     float64 `json:"valueDiff"`
	ExpectedValue float64 `json:"expectedValue"`

	Recommendation Recommendation `json:"recommendation"`
	ValueRating    ValueRating    `json:"valueRating"`
	Confidence     Confidence     `json:"confidence"`
}

// AnalyzeBTTS derives the probability that both teams score under the
// bivariate model and grades the bookmaker's yes price against it.
// Inclusion-exclusion over the blank-side events:
//
//	P(at least one blank) = P(home=0) + P(away=0) - P(0,0)
//	P(BTTS yes)           = 1 - P(at least one blank)
func AnalyzeBTTS(homeLambda, awayLambda, lambda3, bookieOdds float64) *BTTSAnalysis {
	homeBlank, awayBlank := 0.0, 0.0
	for k := 0; k <= Config.BlankTailMax; k++ {
		homeBlank += BivariateProb(0, k, homeLambda, awayLambda, lambda3)
		awayBlank += BivariateProb(k, 0, homeLambda, awayLambda, lambda3)
	}
	bothBlank := BivariateProb(0, 0, homeLambda, awayLambda, lambda3)

	yes := 1 - (homeBlank + awayBlank - bothBlank)
	if yes < 0 {
		yes = 0
	}

	analysis := &BTTSAnalysis{
		YesProb:            yes,
		NoProb:             1 - yes,
		IndependentYesProb: (1 - PoissonPMF(0, homeLambda)) * (1 - PoissonPMF(0, awayLambda)),
		FairOdds:           FairOdds(yes),
		BookieOdds:         bookieOdds,
		Recommendation:     RecommendNoBet,
		ValueRating:        ValueNone,
		Confidence:         ConfidenceNone,
	}
	analysis.ValueDiff = bookieOdds - analysis.FairOdds
	analysis.ExpectedValue = yes*bookieOdds - 1

	switch {
	case analysis.ValueDiff > Config.BTTSStrongEdge:
		analysis.Recommendation = RecommendBTTSYes
		analysis.ValueRating = ValueStrong
		analysis.Confidence = ConfidenceHigh
	case analysis.ValueDiff > Config.BTTSGoodEdge:
		analysis.Recommendation = RecommendBTTSYes
		analysis.ValueRating = ValueGood
		analysis.Confidence = ConfidenceMedium
	case analysis.ValueDiff > Config.BTTSSlightEdge:
		analysis.Recommendation = RecommendBTTSYes
		analysis.ValueRating = ValueSlight
		analysis.Confidence = ConfidenceLow
	case analysis.ValueDiff < Config.BTTSLayEdge:
		// The yes side is priced well below fair: back the no instead
		analysis.Recommendation = RecommendBTTSNo
		analysis.ValueRating = ValueLayYes
		analysis.Confidence = ConfidenceMedium
	}

	return analysis
}
