package models

import (
	"time"

	"github.com/google/uuid"
)

// Application statuses (campaign_kols)
const (
	ApplicationStatusInvited   = "invited"
	ApplicationStatusApplied   = "applied"
	ApplicationStatusAccepted  = "accepted"
	ApplicationStatusDeclined  = "declined"
	ApplicationStatusCompleted = "completed"
)

// Valid state transitions: from -> []to.
// "declined" and "completed" are terminal for the record.
var ValidApplicationTransitions = map[string][]string{
	ApplicationStatusInvited:   {ApplicationStatusApplied, ApplicationStatusDeclined},
	ApplicationStatusApplied:   {ApplicationStatusAccepted, ApplicationStatusDeclined},
	ApplicationStatusAccepted:  {ApplicationStatusCompleted},
	ApplicationStatusDeclined:  {},
	ApplicationStatusCompleted: {},
}

func IsValidApplicationTransition(from, to string) bool {
	allowed, ok := ValidApplicationTransitions[from]
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

// CanWithdraw reports whether a KOL may withdraw from the given status.
// Withdrawal is only permitted before the business has accepted.
func CanWithdraw(status string) bool {
	return status == ApplicationStatusInvited || status == ApplicationStatusApplied
}

type Application struct {
	ID           uuid.UUID  `json:"id"`
	CampaignID   uuid.UUID  `json:"campaign_id"`
	KOLProfileID uuid.UUID  `json:"kol_profile_id"`
	Status       string     `json:"status"`
	ProposedRate *float64   `json:"proposed_rate,omitempty"`
	AgreedRate   *float64   `json:"agreed_rate,omitempty"`
	Feedback     any        `json:"feedback,omitempty"` // {reason, by, at}
	InvitedAt    *time.Time `json:"invited_at,omitempty"`
	AppliedAt    *time.Time `json:"applied_at,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// ApplicationWithKOL embeds Application and adds KOL info to avoid N+1 queries.
type ApplicationWithKOL struct {
	Application
	KOLDisplayName *string `json:"kol_display_name,omitempty"`
}

// ApplicationWithCampaign embeds Application and adds campaign info.
type ApplicationWithCampaign struct {
	Application
	CampaignTitle  *string `json:"campaign_title,omitempty"`
	CampaignStatus *string `json:"campaign_status,omitempty"`
}
