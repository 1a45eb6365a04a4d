package models

import "github.com/google/uuid"

// MatchResult is a derived ranking entry. It is never persisted.
type MatchResult struct {
	CampaignID   uuid.UUID          `json:"campaign_id"`
	KOLProfileID uuid.UUID          `json:"kol_profile_id"`
	Score        float64            `json:"score"`
	Tier         string             `json:"tier"` // excellent / good / fair / poor
	Breakdown    map[string]float64 `json:"breakdown,omitempty"`
}

// RecommendationTier maps a [0,1] score to a human-readable label.
func RecommendationTier(score float64) string {
	switch {
	case score >= 0.8:
		return "excellent"
	case score >= 0.6:
		return "good"
	case score >= 0.4:
		return "fair"
	default:
		return "poor"
	}
}
