package models

import (
	"time"

	"github.com/google/uuid"
)

// Supported platforms
const (
	PlatformYouTube   = "youtube"
	PlatformInstagram = "instagram"
	PlatformTikTok    = "tiktok"
)

var AllPlatforms = []string{PlatformYouTube, PlatformInstagram, PlatformTikTok}

func IsValidPlatform(p string) bool {
	for _, pl := range AllPlatforms {
		if pl == p {
			return true
		}
	}
	return false
}

type SocialLink struct {
	Platform string `json:"platform"`
	URL      string `json:"url"`
	Handle   string `json:"handle,omitempty"`
}

// AudienceMetrics describes who follows a KOL.
// AgeDistribution maps age buckets ("18-24") to percentages in [0,100].
type AudienceMetrics struct {
	AgeDistribution map[string]float64 `json:"age_distribution,omitempty"`
	TopInterests    []string           `json:"top_interests,omitempty"`
}

// PlatformAnalytics is the latest per-platform snapshot for a KOL.
type PlatformAnalytics struct {
	Platform       string  `json:"platform"`
	Followers      int64   `json:"followers"`
	EngagementRate float64 `json:"engagement_rate"` // fraction in [0,1]
	AvgViews       int64   `json:"avg_views"`
}

type KOLProfile struct {
	ID                  uuid.UUID           `json:"id"`
	UserID              uuid.UUID           `json:"user_id"`
	DisplayName         string              `json:"display_name"`
	Bio                 *string             `json:"bio,omitempty"`
	Categories          []string            `json:"categories,omitempty"`
	SocialLinks         []SocialLink        `json:"social_links,omitempty"`
	Audience            AudienceMetrics     `json:"audience"`
	Analytics           []PlatformAnalytics `json:"analytics,omitempty"`
	ContentQualityScore float64             `json:"content_quality_score"` // 0-10
	BrandSafetyScore    float64             `json:"brand_safety_score"`    // 0-10
	NicheAuthorityScore float64             `json:"niche_authority_score"` // 0-10
	CreatedAt           time.Time           `json:"created_at"`
	UpdatedAt           time.Time           `json:"updated_at"`
}

// AnalyticsFor returns the snapshot for a platform, or nil.
func (p *KOLProfile) AnalyticsFor(platform string) *PlatformAnalytics {
	for i := range p.Analytics {
		if p.Analytics[i].Platform == platform {
			return &p.Analytics[i]
		}
	}
	return nil
}

// TotalFollowers sums follower counts across platforms.
func (p *KOLProfile) TotalFollowers() int64 {
	var total int64
	for _, a := range p.Analytics {
		total += a.Followers
	}
	return total
}

// BestEngagementRate returns the highest engagement rate across platforms.
func (p *KOLProfile) BestEngagementRate() float64 {
	best := 0.0
	for _, a := range p.Analytics {
		if a.EngagementRate > best {
			best = a.EngagementRate
		}
	}
	return best
}

// KOLStatsSnapshot is a raw fetched analytics row, before it is folded into
// the profile's current analytics.
type KOLStatsSnapshot struct {
	ID           uuid.UUID `json:"id"`
	KOLProfileID uuid.UUID `json:"kol_profile_id"`
	Platform     string    `json:"platform"`
	FetchedAt    time.Time `json:"fetched_at"`
	Followers    *int64    `json:"followers,omitempty"`
	AvgViews     *int64    `json:"avg_views,omitempty"`
	Source       string    `json:"source"` // "profile_parser" or "manual"
}
