package matching

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAgeOverlap(t *testing.T) {
	dist := map[string]float64{
		"18-24": 40,
		"25-34": 35,
		"35-44": 25,
	}

	assert.InDelta(t, 0.75, AgeOverlap([]string{"18-24", "25-34"}, dist), 1e-9)
	assert.InDelta(t, 0.25, AgeOverlap([]string{"35-44"}, dist), 1e-9)
	assert.Equal(t, 0.0, AgeOverlap(nil, dist))
	assert.Equal(t, 0.0, AgeOverlap([]string{"18-24"}, nil))
	assert.Equal(t, 0.0, AgeOverlap([]string{"45-54"}, dist))
}

func TestAgeOverlapClampsMalformedDistribution(t *testing.T) {
	// Percentages summing past 100 still clamp to 1.
	dist := map[string]float64{"18-24": 80, "25-34": 60}
	assert.Equal(t, 1.0, AgeOverlap([]string{"18-24", "25-34"}, dist))
}

func TestInterestOverlapSubstringContainment(t *testing.T) {
	kol := []string{"Fitness Coaching", "vegan recipes", "running"}

	// "fitness" is a substring of "fitness coaching" and counts.
	assert.InDelta(t, 1.0, InterestOverlap([]string{"fitness"}, kol), 1e-9)
	// Containment works in the other direction too.
	assert.InDelta(t, 1.0, InterestOverlap([]string{"long distance running"}, kol), 1e-9)
	// One of two business interests matched.
	assert.InDelta(t, 0.5, InterestOverlap([]string{"fitness", "crypto"}, kol), 1e-9)

	assert.Equal(t, 0.0, InterestOverlap(nil, kol))
	assert.Equal(t, 0.0, InterestOverlap([]string{}, kol))
	assert.Equal(t, 0.0, InterestOverlap([]string{"fitness"}, nil))
}

func TestCategoryRelevance(t *testing.T) {
	cats := []string{"beauty", "skincare", "lifestyle"}

	assert.Equal(t, 1.0, CategoryRelevance(cats, cats))
	assert.Equal(t, 0.0, CategoryRelevance([]string{}, cats))
	assert.Equal(t, 0.0, CategoryRelevance(nil, cats))
	assert.InDelta(t, 2.0/3.0, CategoryRelevance(cats, []string{"beauty blogger", "skincare"}), 1e-9)
}

func TestCategoryRelevanceCaseInsensitive(t *testing.T) {
	assert.Equal(t, 1.0, CategoryRelevance([]string{"Gaming"}, []string{"gaming & esports"}))
}
