package matching

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSuitabilityScoreBounds(t *testing.T) {
	target := TargetProfile{
		Categories: []string{"fitness"},
		Interests:  []string{"fitness", "health"},
		AgeRanges:  []string{"18-24"},
	}
	candidate := CandidateProfile{
		Categories:      []string{"fitness coaching"},
		TopInterests:    []string{"fitness", "nutrition"},
		AgeDistribution: map[string]float64{"18-24": 60, "25-34": 40},
		EngagementRate:  0.06,
	}

	score, b := SuitabilityScore(target, candidate, nil)

	assert.GreaterOrEqual(t, score, 0.0)
	assert.LessOrEqual(t, score, 1.0)
	// age overlap 0.6, interest overlap 0.5 -> mean 0.55
	assert.InDelta(t, 0.55, b.AudienceMatch, 1e-9)
	assert.Equal(t, 1.0, b.ContentRelevance)
	assert.Equal(t, 1.0, b.EngagementQuality)
	assert.Equal(t, DefaultHistoricalScore, b.HistoricalPerformance)

	// Weighted sum never exceeds the largest component.
	maxComponent := b.ContentRelevance
	for _, c := range []float64{b.AudienceMatch, b.EngagementQuality, b.HistoricalPerformance} {
		if c > maxComponent {
			maxComponent = c
		}
	}
	assert.LessOrEqual(t, score, maxComponent)
}

func TestSuitabilityScoreExactWeights(t *testing.T) {
	target := TargetProfile{
		Categories: []string{"tech"},
		AgeRanges:  []string{"18-24"},
	}
	candidate := CandidateProfile{
		Categories:      []string{"tech"},
		AgeDistribution: map[string]float64{"18-24": 50},
		EngagementRate:  0.05,
	}

	// Audience = age overlap alone (no interests on the target side).
	score, b := SuitabilityScore(target, candidate, ConstantHistoricalPerformance(0.7))

	assert.InDelta(t, 0.5, b.AudienceMatch, 1e-9)
	want := 0.5*0.4 + 1.0*0.3 + 1.0*0.2 + 0.7*0.1
	assert.InDelta(t, want, score, 1e-9)
}

func TestSuitabilityAudienceMatchAveraging(t *testing.T) {
	candidate := CandidateProfile{
		TopInterests:    []string{"travel"},
		AgeDistribution: map[string]float64{"25-34": 100},
	}

	// Both factors available: mean of the two.
	both := TargetProfile{Interests: []string{"travel"}, AgeRanges: []string{"25-34"}}
	_, b := SuitabilityScore(both, candidate, nil)
	assert.InDelta(t, 1.0, b.AudienceMatch, 1e-9)

	// Only interests available.
	interestsOnly := TargetProfile{Interests: []string{"travel"}}
	_, b = SuitabilityScore(interestsOnly, candidate, nil)
	assert.InDelta(t, 1.0, b.AudienceMatch, 1e-9)

	// Neither available: audience match is zero, not an error.
	neither := TargetProfile{}
	score, b := SuitabilityScore(neither, CandidateProfile{}, nil)
	assert.Equal(t, 0.0, b.AudienceMatch)
	assert.GreaterOrEqual(t, score, 0.0)
}

func TestSuitabilityHistoricalInjectable(t *testing.T) {
	var gotTarget TargetProfile
	hist := func(tp TargetProfile, _ CandidateProfile) float64 {
		gotTarget = tp
		return 1.0
	}

	target := TargetProfile{Categories: []string{"food"}}
	_, b := SuitabilityScore(target, CandidateProfile{}, hist)

	assert.Equal(t, 1.0, b.HistoricalPerformance)
	assert.Equal(t, []string{"food"}, gotTarget.Categories)

	// Out-of-range injected values are clamped.
	_, b = SuitabilityScore(target, CandidateProfile{}, ConstantHistoricalPerformance(3.5))
	assert.Equal(t, 1.0, b.HistoricalPerformance)
}

func TestSuitabilityDegradesOnMissingData(t *testing.T) {
	score, _ := SuitabilityScore(TargetProfile{}, CandidateProfile{}, ConstantHistoricalPerformance(0))
	assert.Equal(t, 0.0, score)
}
