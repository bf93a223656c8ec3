package podds

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifyGoalLineGrades(t *testing.T) {
	tests := []struct {
		name           string
		total          float64
		recommendation Recommendation
		rating         ValueRating
		confidence     Confidence
	}{
		{"within margin", 2.60, RecommendNoBet, ValueNone, ConfidenceNone},
		{"exactly at margin", 2.70, RecommendNoBet, ValueNone, ConfidenceNone},
		{"slight over", 2.75, RecommendOver, ValueSlight, ConfidenceLow},
		{"exactly good boundary", 2.80, RecommendOver, ValueSlight, ConfidenceLow},
		{"good over", 2.90, RecommendOver, ValueGood, ConfidenceMedium},
		{"exactly strong boundary", 3.00, RecommendOver, ValueGood, ConfidenceMedium},
		{"strong over", 3.20, RecommendOver, ValueStrong, ConfidenceHigh},
		{"strong under", 1.80, RecommendUnder, ValueStrong, ConfidenceHigh},
		{"good under", 2.10, RecommendUnder, ValueGood, ConfidenceMedium},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			value := ClassifyGoalLine(tc.total, 2.5)
			assert.Equal(t, tc.recommendation, value.Recommendation)
			assert.Equal(t, tc.rating, value.ValueRating)
			assert.Equal(t, tc.confidence, value.Confidence)
			assert.InDelta(t, tc.total-2.5, value.Difference, 1e-12)
		})
	}
}

func TestOverUnderProbabilitiesSplitMass(t *testing.T) {
	ou := OverUnderProbabilities(1.5, 1.2, 2.5)

	assert.InDelta(t, 1.0, ou.OverProb+ou.UnderProb, 1e-6,
		"the truncated convolution should retain essentially all mass")

	// Under 2.5 is the convolution mass at totals 0, 1 and 2
	under := 0.0
	for total := 0; total <= 2; total++ {
		for h := 0; h <= total; h++ {
			under += PoissonPMF(h, 1.5) * PoissonPMF(total-h, 1.2)
		}
	}
	assert.InDelta(t, under, ou.UnderProb, 1e-12)

	assert.InDelta(t, 1/ou.OverProb, ou.OverFairOdds, 1e-12)
	assert.InDelta(t, 1/ou.UnderProb, ou.UnderFairOdds, 1e-12)
}

func TestOverUnderProbabilitiesHighScoringMatch(t *testing.T) {
	ou := OverUnderProbabilities(2.4, 1.8, 2.5)
	assert.Greater(t, ou.OverProb, ou.UnderProb,
		"a 4.2 expected total should sit mostly over the 2.5 line")
}
