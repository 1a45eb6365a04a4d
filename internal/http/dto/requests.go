package dto

import (
	"github.com/kol-marketplace/backend/internal/models"
)

type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"` // business / kol
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type CreateCampaignRequest struct {
	Title        string                      `json:"title"`
	Description  *string                     `json:"description,omitempty"`
	Objectives   []models.CampaignObjective  `json:"objectives,omitempty"`
	Requirements models.CampaignRequirements `json:"requirements"`
	Budget       models.CampaignBudget       `json:"budget"`
	Timeline     models.CampaignTimeline     `json:"timeline"`
}

type CancelCampaignRequest struct {
	Reason string `json:"reason,omitempty"`
}

type CreateKOLProfileRequest struct {
	DisplayName string                 `json:"display_name"`
	Bio         *string                `json:"bio,omitempty"`
	Categories  []string               `json:"categories,omitempty"`
	SocialLinks []models.SocialLink    `json:"social_links,omitempty"`
	Audience    models.AudienceMetrics `json:"audience"`
}

type InviteKOLsRequest struct {
	KOLProfileIDs []string `json:"kol_profile_ids"`
	ProposedRate  *float64 `json:"proposed_rate,omitempty"`
}

type ApplyRequest struct {
	CampaignID   string   `json:"campaign_id"`
	ProposedRate *float64 `json:"proposed_rate,omitempty"`
	Pitch        *string  `json:"pitch,omitempty"`
}

type AcceptApplicationRequest struct {
	AgreedRate *float64 `json:"agreed_rate,omitempty"`
}

type DeclineApplicationRequest struct {
	Reason string `json:"reason,omitempty"`
}

type WithdrawRequest struct {
	Reason string `json:"reason,omitempty"`
}

type MatchCampaignsRequest struct {
	Limit int `json:"limit,omitempty"`
}
