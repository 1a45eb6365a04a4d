package matching

import "github.com/kol-marketplace/backend/internal/models"

// TargetProfile is the business side of a scoring comparison: the audience a
// campaign wants to reach. All scorers accept it by value and never mutate it.
type TargetProfile struct {
	Categories []string
	Interests  []string
	AgeRanges  []string
}

// TargetFromCampaign builds a normalized scoring view of a campaign.
// Missing slices come back empty, never nil, so downstream arithmetic is safe.
func TargetFromCampaign(c *models.Campaign) TargetProfile {
	if c == nil {
		return TargetProfile{
			Categories: []string{},
			Interests:  []string{},
			AgeRanges:  []string{},
		}
	}
	return TargetProfile{
		Categories: safeStrings(c.Requirements.Categories),
		Interests:  safeStrings(c.Requirements.Demographics.Interests),
		AgeRanges:  safeStrings(c.Requirements.Demographics.AgeRanges),
	}
}

// CandidateProfile is the KOL side of a scoring comparison.
type CandidateProfile struct {
	Categories      []string
	TopInterests    []string
	AgeDistribution map[string]float64
	EngagementRate  float64
}

// CandidateFromKOL builds a normalized scoring view of a KOL profile.
// The engagement rate is the best across platforms, clamped to non-negative.
func CandidateFromKOL(k *models.KOLProfile) CandidateProfile {
	if k == nil {
		return CandidateProfile{
			Categories:      []string{},
			TopInterests:    []string{},
			AgeDistribution: map[string]float64{},
		}
	}
	dist := k.Audience.AgeDistribution
	if dist == nil {
		dist = map[string]float64{}
	}
	rate := k.BestEngagementRate()
	if rate < 0 {
		rate = 0
	}
	return CandidateProfile{
		Categories:      safeStrings(k.Categories),
		TopInterests:    safeStrings(k.Audience.TopInterests),
		AgeDistribution: dist,
		EngagementRate:  rate,
	}
}

func safeStrings(in []string) []string {
	if in == nil {
		return []string{}
	}
	return in
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
