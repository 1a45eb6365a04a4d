package matching

import (
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/kol-marketplace/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testCampaign() *models.Campaign {
	return &models.Campaign{
		ID:             uuid.New(),
		BusinessUserID: uuid.New(),
		Title:          "Spring fitness push",
		Requirements: models.CampaignRequirements{
			Platforms:    []string{models.PlatformInstagram},
			Categories:   []string{"fitness"},
			MinFollowers: 10_000,
			Demographics: models.TargetDemographics{
				AgeRanges: []string{"18-24", "25-34"},
				Interests: []string{"fitness", "health"},
			},
		},
		Budget: models.CampaignBudget{Total: 20_000, PerKOL: 1_000, Currency: "USD"},
		Status: models.CampaignStatusActive,
	}
}

func testKOL(name string, followers int64, rate float64, categories ...string) *models.KOLProfile {
	return &models.KOLProfile{
		ID:          uuid.New(),
		DisplayName: name,
		Categories:  categories,
		Audience: models.AudienceMetrics{
			AgeDistribution: map[string]float64{"18-24": 50, "25-34": 30, "35-44": 20},
			TopInterests:    []string{"fitness", "nutrition"},
		},
		Analytics: []models.PlatformAnalytics{
			{Platform: models.PlatformInstagram, Followers: followers, EngagementRate: rate},
		},
	}
}

func TestRankUnknownStrategyFallsBackToCombined(t *testing.T) {
	campaign := testCampaign()
	kols := []*models.KOLProfile{testKOL("a", 50_000, 0.04, "fitness")}

	ranked := Rank("definitely-not-a-strategy", campaign, kols, 0, nil)

	assert.Equal(t, StrategyCombined, ranked.Strategy)
	assert.NotNil(t, ranked.StrategyBreakdown)
	require.Len(t, ranked.Matches, 1)
	assert.NotNil(t, ranked.Matches[0].Breakdown)
}

func TestRankSortsDescendingAndTruncates(t *testing.T) {
	campaign := testCampaign()
	var kols []*models.KOLProfile
	for i := 0; i < 15; i++ {
		kols = append(kols, testKOL(fmt.Sprintf("kol-%d", i), int64(10_000*(i+1)), 0.01*float64(i%6), "fitness"))
	}

	ranked := Rank(StrategyCombined, campaign, kols, 0, nil)

	assert.Equal(t, 15, ranked.TotalMatches)
	assert.Len(t, ranked.Matches, DefaultMatchLimit)
	for i := 1; i < len(ranked.Matches); i++ {
		assert.GreaterOrEqual(t, ranked.Matches[i-1].Score, ranked.Matches[i].Score)
	}
}

func TestRankIndustryScoresByCategoryRelevance(t *testing.T) {
	campaign := testCampaign()
	onTopic := testKOL("on-topic", 20_000, 0.01, "fitness coaching")
	offTopic := testKOL("off-topic", 900_000, 0.09, "crypto")

	ranked := Rank(StrategyIndustry, campaign, []*models.KOLProfile{offTopic, onTopic}, 5, nil)

	require.Len(t, ranked.Matches, 2)
	assert.Equal(t, onTopic.ID, ranked.Matches[0].KOLProfileID)
	assert.Equal(t, 1.0, ranked.Matches[0].Score)
	assert.Equal(t, 0.0, ranked.Matches[1].Score)
	assert.Equal(t, "medium", ranked.Confidence)
	assert.Nil(t, ranked.StrategyBreakdown)
}

func TestRankEngagementStrategy(t *testing.T) {
	campaign := testCampaign()
	hot := testKOL("hot", 20_000, 0.07, "fitness")
	cold := testKOL("cold", 20_000, 0.005, "fitness")

	ranked := Rank(StrategyEngagement, campaign, []*models.KOLProfile{cold, hot}, 5, nil)

	require.Len(t, ranked.Matches, 2)
	assert.Equal(t, hot.ID, ranked.Matches[0].KOLProfileID)
	assert.Equal(t, 1.0, ranked.Matches[0].Score)
}

func TestRankBudgetStrategy(t *testing.T) {
	campaign := testCampaign() // min 10k followers, per-KOL 1000
	inBounds := testKOL("fits", 50_000, 0.03, "fitness")
	tooSmall := testKOL("small", 2_000, 0.03, "fitness")

	ranked := Rank(StrategyBudget, campaign, []*models.KOLProfile{tooSmall, inBounds}, 5, nil)

	require.Len(t, ranked.Matches, 2)
	assert.Equal(t, inBounds.ID, ranked.Matches[0].KOLProfileID)
	assert.Greater(t, ranked.Matches[0].Score, ranked.Matches[1].Score)
}

func TestRankEmptyPool(t *testing.T) {
	ranked := Rank(StrategyCombined, testCampaign(), nil, 10, nil)
	assert.Equal(t, 0, ranked.TotalMatches)
	assert.Empty(t, ranked.Matches)
}

func TestStrategiesDescriptorList(t *testing.T) {
	descs := Strategies()
	require.Len(t, descs, 4)
	keys := map[string]bool{}
	for _, d := range descs {
		keys[d.Key] = true
		assert.NotEmpty(t, d.Name)
		assert.NotEmpty(t, d.Description)
	}
	for _, k := range []string{StrategyIndustry, StrategyBudget, StrategyEngagement, StrategyCombined} {
		assert.True(t, keys[k], "missing descriptor for %s", k)
	}
}
