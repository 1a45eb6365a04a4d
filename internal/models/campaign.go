package models

import (
	"time"

	"github.com/google/uuid"
)

// Campaign statuses
const (
	CampaignStatusDraft     = "draft"
	CampaignStatusActive    = "active"
	CampaignStatusCompleted = "completed"
	CampaignStatusCancelled = "cancelled"
)

// Valid state transitions: from -> []to
var ValidCampaignTransitions = map[string][]string{
	CampaignStatusDraft:     {CampaignStatusActive, CampaignStatusCancelled},
	CampaignStatusActive:    {CampaignStatusCompleted, CampaignStatusCancelled},
	CampaignStatusCompleted: {},
	CampaignStatusCancelled: {},
}

func IsValidCampaignTransition(from, to string) bool {
	allowed, ok := ValidCampaignTransitions[from]
	if !ok {
		return false
	}
	for _, s := range allowed {
		if s == to {
			return true
		}
	}
	return false
}

type CampaignObjective struct {
	Type   string  `json:"type"` // awareness / engagement / conversions
	Target float64 `json:"target"`
	Metric string  `json:"metric"` // impressions / clicks / signups
}

type TargetDemographics struct {
	AgeRanges []string `json:"age_ranges,omitempty"` // "18-24", "25-34", ...
	Interests []string `json:"interests,omitempty"`
}

type CampaignRequirements struct {
	Platforms    []string           `json:"platforms,omitempty"`
	Categories   []string           `json:"categories,omitempty"`
	MinFollowers int64              `json:"min_followers"`
	MaxFollowers int64              `json:"max_followers"`
	Demographics TargetDemographics `json:"demographics"`
}

type CampaignBudget struct {
	Total    float64 `json:"total"`
	PerKOL   float64 `json:"per_kol"`
	Currency string  `json:"currency"` // ISO 4217
}

type CampaignTimeline struct {
	StartDate           *time.Time `json:"start_date,omitempty"`
	EndDate             *time.Time `json:"end_date,omitempty"`
	ApplicationDeadline *time.Time `json:"application_deadline,omitempty"`
}

type Campaign struct {
	ID             uuid.UUID            `json:"id"`
	BusinessUserID uuid.UUID            `json:"business_user_id"`
	Title          string               `json:"title"`
	Description    *string              `json:"description,omitempty"`
	Objectives     []CampaignObjective  `json:"objectives,omitempty"`
	Requirements   CampaignRequirements `json:"requirements"`
	Budget         CampaignBudget       `json:"budget"`
	Timeline       CampaignTimeline     `json:"timeline"`
	Status         string               `json:"status"`
	CreatedAt      time.Time            `json:"created_at"`
	UpdatedAt      time.Time            `json:"updated_at"`
}

// IsOpenForApplications reports whether KOLs may still apply or withdraw.
func (c *Campaign) IsOpenForApplications() bool {
	return c.Status == CampaignStatusActive
}
