package matching

import (
	"math"
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/kol-marketplace/backend/internal/models"
)

// Explainer term weights (points out of 100).
const (
	followerTermMax = 30
	topicTermMax    = 40
	platformTermMax = 20
	qualityTermMax  = 10

	topicKeywordBonus = 2

	// Campaigns scoring at or below this are dropped from results.
	minRetainedScore = 20

	// DefaultExplainLimit caps the campaign list for the KOL-facing matcher.
	DefaultExplainLimit = 5
)

// popularNiches feeds the competition classifier.
var popularNiches = []string{"fitness", "beauty", "fashion", "gaming", "food", "travel"}

// CampaignMatch is one explained match for the KOL-facing
// "match my campaigns" feature.
type CampaignMatch struct {
	CampaignID    uuid.UUID      `json:"campaign_id"`
	CampaignTitle string         `json:"campaign_title"`
	Score         float64        `json:"score"` // 0-100
	Reasons       []string       `json:"reasons,omitempty"`
	Earnings      EarningsRange  `json:"estimated_earnings"`
	Competition   string         `json:"competition"` // low / medium / high
	Terms         ExplainerTerms `json:"terms"`
}

// ExplainerTerms breaks a 0-100 score into its point buckets.
type ExplainerTerms struct {
	Followers float64 `json:"followers"` // of 30
	Topics    float64 `json:"topics"`    // of 40
	Platforms float64 `json:"platforms"` // of 20
	Quality   float64 `json:"quality"`   // of 10
}

type EarningsRange struct {
	Min      float64 `json:"min"`
	Max      float64 `json:"max"`
	Currency string  `json:"currency"`
}

// Explainer is the second, independently tuned scorer used by the KOL-facing
// AI routes. It is deliberately not interchangeable with SuitabilityScore:
// different weights, different scale, documented separately.
type Explainer struct {
	taxonomy Taxonomy
}

func NewExplainer(taxonomy Taxonomy) *Explainer {
	if taxonomy == nil {
		taxonomy = DefaultTaxonomy()
	}
	return &Explainer{taxonomy: taxonomy}
}

// MatchCampaigns scores every campaign for the KOL, keeps those above the
// retention threshold, sorts descending and truncates to limit.
func (e *Explainer) MatchCampaigns(kol *models.KOLProfile, campaigns []*models.Campaign, limit int) []CampaignMatch {
	if limit <= 0 {
		limit = DefaultExplainLimit
	}

	var out []CampaignMatch
	for _, c := range campaigns {
		if c == nil {
			continue
		}
		m := e.Score(kol, c)
		if m.Score > minRetainedScore {
			out = append(out, m)
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Score > out[j].Score
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}

// Score computes the 0-100 match for one campaign.
func (e *Explainer) Score(kol *models.KOLProfile, c *models.Campaign) CampaignMatch {
	terms := ExplainerTerms{}
	var reasons []string

	followers := kol.TotalFollowers()
	terms.Followers = followerTerm(followers, c.Requirements.MinFollowers)
	if terms.Followers > 0 {
		reasons = append(reasons, "audience size meets the campaign minimum")
	}

	topics, topicReasons := e.topicTerm(kol, c.Requirements.Categories)
	terms.Topics = topics
	reasons = append(reasons, topicReasons...)

	terms.Platforms = platformTerm(kol, c.Requirements.Platforms)
	if terms.Platforms > 0 {
		reasons = append(reasons, "active on a required platform")
	}

	terms.Quality = qualityTerm(kol.ContentQualityScore, kol.BrandSafetyScore)

	total := terms.Followers + terms.Topics + terms.Platforms + terms.Quality
	if total < 0 {
		total = 0
	}
	if total > 100 {
		total = 100
	}

	return CampaignMatch{
		CampaignID:    c.ID,
		CampaignTitle: c.Title,
		Score:         total,
		Reasons:       reasons,
		Earnings:      EstimateEarnings(kol, c),
		Competition:   CompetitionLevel(kol, c),
		Terms:         terms,
	}
}

// followerTerm is 0 below the campaign minimum, otherwise
// min(30, 20 + log10(followers/min)*10). A campaign with no minimum maxes the
// term out for any KOL with followers (log10 of +Inf, clamped).
func followerTerm(followers, minRequired int64) float64 {
	if followers <= 0 {
		return 0
	}
	if minRequired <= 0 {
		return followerTermMax
	}
	if followers < minRequired {
		return 0
	}
	term := 20 + math.Log10(float64(followers)/float64(minRequired))*10
	return math.Min(followerTermMax, term)
}

/// topicTerm scores category coverage plus the configurable keyword bonus:
// +2 per campaign category whose vertical keywords appear in the KOL's bio,
// display name or topics.
func (e *Explainer) topicTerm(kol *models.KOLProfile, categories []string) (float64, []string) {
	if len(categories) == 0 {
		return 0, nil
	}

	kolTopics := append([]string{}, kol.Categories...)
	kolTopics = append(kolTopics, kol.Audience.TopInterests...)

	haystack := strings.ToLower(kol.DisplayName)
	if kol.Bio != nil {
		haystack += " " + strings.ToLower(*kol.Bio)
	}
	haystack += " " + strings.ToLower(strings.Join(kolTopics, " "))

	matched := 0
	bonus := 0.0
	var reasons []string
	for _, cat := range categories {
		if anyContains(kolTopics, cat) {
			matched++
		}
		for _, kw := range e.taxonomy.KeywordsFor(cat) {
			if strings.Contains(haystack, strings.ToLower(kw)) {
				bonus += topicKeywordBonus
				break
			}
		}
	}

	base := float64(topicTermMax) * float64(matched) / float64(len(categories))
	if matched > 0 {
		reasons = append(reasons, "content topics overlap campaign categories")
	}
	if bonus > 0 {
		reasons = append(reasons, "profile keywords signal the campaign vertical")
	}
	return math.Min(topicTermMax, base+bonus), reasons
}

// platformTerm gives 10 points each for YouTube and Instagram presence when
// the campaign requires them.
func platformTerm(kol *models.KOLProfile, required []string) float64 {
	term := 0.0
	for _, p := range required {
		switch strings.ToLower(p) {
		case models.PlatformYouTube:
			if a := kol.AnalyticsFor(models.PlatformYouTube); a != nil && a.Followers > 0 {
				term += 10
			}
		case models.PlatformInstagram:
			if a := kol.AnalyticsFor(models.PlatformInstagram); a != nil && a.Followers > 0 {
				term += 10
			}
		}
	}
	return math.Min(platformTermMax, term)
}

// qualityTerm folds the 0-10 content quality and brand safety scores into up
// to 10 points (5 + 5).
func qualityTerm(contentQuality, brandSafety float64) float64 {
	q := clampScale(contentQuality)*0.5 + clampScale(brandSafety)*0.5
	return math.Min(qualityTermMax, q)
}

func clampScale(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 10 {
		return 10
	}
	return v
}

// EstimateEarnings derives a per-collaboration earnings range from reach,
// engagement and niche authority, capped by the campaign budget.
func EstimateEarnings(kol *models.KOLProfile, c *models.Campaign) EarningsRange {
	followers := kol.TotalFollowers()
	base := float64(followers) / 1000 * 2.5

	rate := kol.BestEngagementRate()
	switch {
	case rate > 0.05:
		base *= 1.5
	case rate > 0.03:
		base *= 1.2
	}
	if kol.NicheAuthorityScore > 7 {
		base *= 1.3
	}

	min := math.Max(base*0.5, 100)
	max := math.Min(c.Budget.Total*0.3, base*2)

	currency := c.Budget.Currency
	if currency == "" {
		currency = "USD"
	}
	return EarningsRange{Min: min, Max: max, Currency: currency}
}

// CompetitionLevel is a threshold classifier on total followers and whether
// the campaign targets a popular niche.
func CompetitionLevel(kol *models.KOLProfile, c *models.Campaign) string {
	followers := kol.TotalFollowers()
	popular := false
	for _, cat := range c.Requirements.Categories {
		if anyContains(popularNiches, cat) {
			popular = true
			break
		}
	}

	switch {
	case popular && followers < 100_000:
		return "high"
	case popular || followers < 50_000:
		return "medium"
	default:
		return "low"
	}
}
