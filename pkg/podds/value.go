package podds

// Recommendation is a betting action derived from model/market comparison
type Recommendation string

const (
	RecommendOver    Recommendation = "OVER"
	RecommendUnder   Recommendation = "UNDER"
	RecommendBTTSYes Recommendation = "BTTS YES"
	RecommendBTTSNo  Recommendation = "BTTS NO"
	RecommendNoBet   Recommendation = "NO BET"
)

// ValueRating grades how mispriced a market looks
type ValueRating string

const (
	ValueStrong ValueRating = "STRONG VALUE"
	ValueGood   ValueRating = "GOOD VALUE"
	ValueSlight ValueRating = "SLIGHT VALUE"
	ValueLayYes ValueRating = "BOOKIE UNDERPRICING YES"
	ValueNone   ValueRating = "NO CLEAR VALUE"
)

// Confidence grades how much the rating should be trusted
type Confidence string

const (
	ConfidenceHigh   Confidence = "High"
	ConfidenceMedium Confidence = "Medium"
	ConfidenceLow    Confidence = "Low"
	ConfidenceNone   Confidence = "None"
)

// FairOdds converts a probability into a break-even decimal price.
// Zero marks an unavailable price (probability zero); the JSON layer
// omits it rather than publishing an infinite quote.
func FairOdds(prob float64) float64 {
	if prob <= 0 {
		return 0
	}
	return 1 / prob
}
