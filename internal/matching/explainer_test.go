package matching

import (
	"math"
	"testing"

	"github.com/google/uuid"
	"github.com/kol-marketplace/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFollowerTerm(t *testing.T) {
	// 75k followers against a 30k minimum: 20 + log10(2.5)*10 ≈ 23.98.
	got := followerTerm(75_000, 30_000)
	assert.InDelta(t, 20+math.Log10(2.5)*10, got, 1e-9)
	assert.InDelta(t, 23.98, got, 0.01)

	// Below minimum scores zero.
	assert.Equal(t, 0.0, followerTerm(29_999, 30_000))

	// Large ratios clamp to the 30-point cap.
	assert.Equal(t, 30.0, followerTerm(30_000_000, 30_000))

	// No minimum set: any audience maxes the term, none zeroes it.
	assert.Equal(t, 30.0, followerTerm(500, 0))
	assert.Equal(t, 0.0, followerTerm(0, 0))
}

func TestExplainerScoreClampedAndExplained(t *testing.T) {
	e := NewExplainer(nil)
	bio := "Certified gym coach sharing workout plans"
	kol := &models.KOLProfile{
		ID:          uuid.New(),
		DisplayName: "FitAnna",
		Bio:         &bio,
		Categories:  []string{"fitness"},
		Audience:    models.AudienceMetrics{TopInterests: []string{"fitness", "health"}},
		Analytics: []models.PlatformAnalytics{
			{Platform: models.PlatformInstagram, Followers: 75_000, EngagementRate: 0.04},
			{Platform: models.PlatformYouTube, Followers: 12_000, EngagementRate: 0.02},
		},
		ContentQualityScore: 8,
		BrandSafetyScore:    9,
	}
	campaign := testCampaign()
	campaign.Requirements.MinFollowers = 30_000
	campaign.Requirements.Platforms = []string{models.PlatformYouTube, models.PlatformInstagram}

	m := e.Score(kol, campaign)

	assert.GreaterOrEqual(t, m.Score, 0.0)
	assert.LessOrEqual(t, m.Score, 100.0)
	assert.Equal(t, 20.0, m.Terms.Platforms)
	// quality: 8*0.5 + 9*0.5 = 8.5
	assert.InDelta(t, 8.5, m.Terms.Quality, 1e-9)
	// topic base 40 (full category coverage) caps the keyword bonus.
	assert.Equal(t, 40.0, m.Terms.Topics)
	assert.NotEmpty(t, m.Reasons)
}

func TestExplainerKeywordBonusWithoutDirectTopicMatch(t *testing.T) {
	e := NewExplainer(nil)
	bio := "Daily gym and workout content"
	kol := &models.KOLProfile{
		ID:          uuid.New(),
		DisplayName: "IronMike",
		Bio:         &bio,
		Categories:  []string{"lifestyle"},
	}
	campaign := testCampaign() // category "fitness"

	topics, _ := e.topicTerm(kol, campaign.Requirements.Categories)

	// No substring topic match, but the fitness vertical keywords ("gym",
	// "workout") appear in the bio: +2 for the single category.
	assert.Equal(t, 2.0, topics)
}

func TestMatchCampaignsFilterSortTruncate(t *testing.T) {
	e := NewExplainer(nil)
	kol := testKOL("creator", 60_000, 0.04, "fitness")
	kol.ContentQualityScore = 7
	kol.BrandSafetyScore = 7

	good := testCampaign()
	good.Title = "good"

	irrelevant := testCampaign()
	irrelevant.Title = "irrelevant"
	irrelevant.Requirements.Categories = []string{"enterprise saas"}
	irrelevant.Requirements.Platforms = nil
	irrelevant.Requirements.MinFollowers = 90_000_000 // follower term 0

	matches := e.MatchCampaigns(kol, []*models.Campaign{irrelevant, good, nil}, 5)

	require.Len(t, matches, 1, "campaigns at or below 20 points are dropped")
	assert.Equal(t, "good", matches[0].CampaignTitle)
}

func TestMatchCampaignsDefaultLimit(t *testing.T) {
	e := NewExplainer(nil)
	kol := testKOL("creator", 60_000, 0.04, "fitness")
	var campaigns []*models.Campaign
	for i := 0; i < 9; i++ {
		campaigns = append(campaigns, testCampaign())
	}

	matches := e.MatchCampaigns(kol, campaigns, 0)
	assert.Len(t, matches, DefaultExplainLimit)
}

func TestEstimateEarnings(t *testing.T) {
	kol := testKOL("creator", 40_000, 0.06, "fitness")
	kol.NicheAuthorityScore = 8
	campaign := testCampaign() // budget total 20k

	// base = 40000/1000*2.5 = 100; *1.5 (engagement > 5%) = 150; *1.3 (authority > 7) = 195
	r := EstimateEarnings(kol, campaign)

	assert.InDelta(t, 100, r.Min, 1e-9) // 195*0.5 = 97.5, the 100 floor wins
	assert.InDelta(t, math.Min(20_000*0.3, 195*2), r.Max, 1e-9)
	assert.Equal(t, "USD", r.Currency)
}

func TestEstimateEarningsFloorAndBudgetCap(t *testing.T) {
	small := testKOL("small", 4_000, 0.01, "fitness")
	campaign := testCampaign()
	campaign.Budget.Total = 100

	// base = 4000/1000*2.5 = 10, no multipliers
	r := EstimateEarnings(small, campaign)
	assert.Equal(t, 100.0, r.Min) // floor
	assert.InDelta(t, 20.0, r.Max, 1e-9)
}

func TestCompetitionLevel(t *testing.T) {
	popular := testCampaign() // category "fitness" is a popular niche
	niche := testCampaign()
	niche.Requirements.Categories = []string{"industrial b2b"}

	smallKOL := testKOL("small", 20_000, 0.02, "fitness")
	midKOL := testKOL("mid", 200_000, 0.02, "fitness")
	bigNicheKOL := testKOL("big", 600_000, 0.02, "industrial b2b")

	assert.Equal(t, "high", CompetitionLevel(smallKOL, popular))
	assert.Equal(t, "medium", CompetitionLevel(midKOL, popular))
	assert.Equal(t, "medium", CompetitionLevel(smallKOL, niche))
	assert.Equal(t, "low", CompetitionLevel(bigNicheKOL, niche))
}
