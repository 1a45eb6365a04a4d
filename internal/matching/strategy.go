package matching

import (
	"sort"

	"github.com/kol-marketplace/backend/internal/models"
)

// Strategy keys
const (
	StrategyIndustry   = "industry"
	StrategyBudget     = "budget"
	StrategyEngagement = "engagement"
	StrategyCombined   = "combined"
)

// DefaultMatchLimit caps the ranked list when the caller gives no limit.
const DefaultMatchLimit = 10

// StrategyDescriptor is the static metadata returned by the strategies
// listing endpoint.
type StrategyDescriptor struct {
	Key         string `json:"key"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

func Strategies() []StrategyDescriptor {
	return []StrategyDescriptor{
		{Key: StrategyIndustry, Name: "Industry match", Description: "Ranks KOLs by category relevance to the campaign."},
		{Key: StrategyBudget, Name: "Budget & audience fit", Description: "Ranks KOLs by follower-bound fit and budget adequacy."},
		{Key: StrategyEngagement, Name: "Engagement quality", Description: "Ranks KOLs by engagement-rate quality."},
		{Key: StrategyCombined, Name: "Combined", Description: "Weighted composite of audience, content, engagement and history."},
	}
}

// RankedMatches is the dispatcher output. StrategyBreakdown is only present
// for the combined strategy: the mean of each contributing factor across the
// returned matches.
type RankedMatches struct {
	Matches           []models.MatchResult `json:"matches"`
	Strategy          string               `json:"strategy"`
	Confidence        string               `json:"confidence"`
	TotalMatches      int                  `json:"total_matches"`
	StrategyBreakdown map[string]float64   `json:"strategy_breakdown,omitempty"`
}

// Rank scores every candidate under the named strategy, sorts descending and
// truncates to limit. Unknown strategy keys fall back to combined; the
// dispatcher never errors.
func Rank(strategy string, campaign *models.Campaign, kols []*models.KOLProfile, limit int, hist HistoricalPerformance) RankedMatches {
	if limit <= 0 {
		limit = DefaultMatchLimit
	}

	target := TargetFromCampaign(campaign)
	confidence := "high"

	results := make([]models.MatchResult, 0, len(kols))
	for _, kol := range kols {
		if kol == nil {
			continue
		}
		candidate := CandidateFromKOL(kol)

		var score float64
		var breakdown map[string]float64

		switch strategy {
		case StrategyIndustry:
			score = CategoryRelevance(target.Categories, candidate.Categories)
			confidence = "medium"
		case StrategyBudget:
			score = budgetAudienceFit(campaign, kol)
			confidence = "medium"
		case StrategyEngagement:
			score = EngagementQuality(candidate.EngagementRate)
		default:
			strategy = StrategyCombined
			var b SuitabilityBreakdown
			score, b = SuitabilityScore(target, candidate, hist)
			breakdown = map[string]float64{
				"audience_match":         b.AudienceMatch,
				"content_relevance":      b.ContentRelevance,
				"engagement_quality":     b.EngagementQuality,
				"historical_performance": b.HistoricalPerformance,
			}
		}

		results = append(results, models.MatchResult{
			CampaignID:   campaign.ID,
			KOLProfileID: kol.ID,
			Score:        score,
			Tier:         models.RecommendationTier(score),
			Breakdown:    breakdown,
		})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})

	total := len(results)
	if len(results) > limit {
		results = results[:limit]
	}

	out := RankedMatches{
		Matches:      results,
		Strategy:     strategy,
		Confidence:   confidence,
		TotalMatches: total,
	}
	if strategy == StrategyCombined {
		out.StrategyBreakdown = meanBreakdown(results)
	}
	return out
}

func meanBreakdown(results []models.MatchResult) map[string]float64 {
	if len(results) == 0 {
		return nil
	}
	sums := map[string]float64{}
	for _, r := range results {
		for k, v := range r.Breakdown {
			sums[k] += v
		}
	}
	for k := range sums {
		sums[k] /= float64(len(results))
	}
	return sums
}

// budgetAudienceFit scores how well a KOL's reach sits inside the campaign's
// follower bounds and whether the per-KOL budget covers an estimated rate.
func budgetAudienceFit(c *models.Campaign, k *models.KOLProfile) float64 {
	followers := k.TotalFollowers()
	if followers <= 0 {
		return 0
	}

	min := c.Requirements.MinFollowers
	max := c.Requirements.MaxFollowers

	fit := 1.0
	if min > 0 && followers < min {
		fit = float64(followers) / float64(min)
	} else if max > 0 && followers > max {
		fit = float64(max) / float64(followers)
	}

	// Budget adequacy: per-KOL budget vs. a crude reach-based rate estimate.
	adequacy := 1.0
	estimatedRate := float64(followers) / 1000 * 2.5
	if c.Budget.PerKOL > 0 && estimatedRate > 0 && c.Budget.PerKOL < estimatedRate {
		adequacy = c.Budget.PerKOL / estimatedRate
	}

	return clamp01(fit * adequacy)
}
