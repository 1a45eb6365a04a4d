package services

import (
	"strings"
	"testing"

	"github.com/kol-marketplace/backend/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestGenerateFallbackAnalysisEmptyProfile(t *testing.T) {
	out := generateFallbackAnalysis(&models.KOLProfile{DisplayName: "newcomer"})

	assert.Equal(t, "heuristic", out.Source)
	assert.Contains(t, out.MissingSections, "bio")
	assert.Contains(t, out.MissingSections, "categories")
	assert.Contains(t, out.MissingSections, "social_links")
	assert.Contains(t, out.MissingSections, "analytics")
	assert.Contains(t, out.MissingSections, "audience_demographics")
	assert.NotEmpty(t, out.Suggestions)
}

func TestGenerateFallbackAnalysisCompleteProfile(t *testing.T) {
	bio := "Long-form fitness creator covering strength training, mobility and nutrition for busy professionals."
	kol := &models.KOLProfile{
		DisplayName: "fitpro",
		Bio:         &bio,
		Categories:  []string{"fitness"},
		SocialLinks: []models.SocialLink{{Platform: models.PlatformYouTube, Handle: "fitpro"}},
		Analytics: []models.PlatformAnalytics{
			{Platform: models.PlatformYouTube, Followers: 80_000, EngagementRate: 0.04},
		},
		Audience: models.AudienceMetrics{
			AgeDistribution: map[string]float64{"25-34": 60, "18-24": 25},
		},
	}

	out := generateFallbackAnalysis(kol)

	assert.Empty(t, out.MissingSections)
	// A complete profile still gets the keep-it-fresh nudge.
	assert.Len(t, out.Suggestions, 1)
}

func TestGenerateFallbackAnalysisLowEngagement(t *testing.T) {
	bio := "Daily vlogs, product reviews and the occasional gadget teardown for a general tech audience."
	kol := &models.KOLProfile{
		DisplayName: "techdaily",
		Bio:         &bio,
		Categories:  []string{"tech"},
		SocialLinks: []models.SocialLink{{Platform: models.PlatformInstagram, Handle: "techdaily"}},
		Analytics: []models.PlatformAnalytics{
			{Platform: models.PlatformInstagram, Followers: 200_000, EngagementRate: 0.008},
		},
		Audience: models.AudienceMetrics{
			AgeDistribution: map[string]float64{"18-24": 50},
		},
	}

	out := generateFallbackAnalysis(kol)

	found := false
	for _, s := range out.Suggestions {
		if strings.Contains(s, "Engagement rate is below 2%") {
			found = true
		}
	}
	assert.True(t, found, "expected a low-engagement suggestion, got %v", out.Suggestions)
}
