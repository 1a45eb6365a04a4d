package models

import "testing"

func TestIsValidCampaignTransition(t *testing.T) {
	tests := []struct {
		from     string
		to       string
		expected bool
	}{
		// Happy path
		{CampaignStatusDraft, CampaignStatusActive, true},
		{CampaignStatusActive, CampaignStatusCompleted, true},

		// Cancellation paths
		{CampaignStatusDraft, CampaignStatusCancelled, true},
		{CampaignStatusActive, CampaignStatusCancelled, true},

		// Terminal states
		{CampaignStatusCompleted, CampaignStatusActive, false},
		{CampaignStatusCompleted, CampaignStatusCancelled, false},
		{CampaignStatusCancelled, CampaignStatusActive, false},
		{CampaignStatusCancelled, CampaignStatusCancelled, false},

		// Invalid transitions
		{CampaignStatusDraft, CampaignStatusCompleted, false},
		{CampaignStatusActive, CampaignStatusDraft, false},
		{"nonexistent", CampaignStatusActive, false},
		{CampaignStatusDraft, "nonexistent", false},
	}

	for _, tt := range tests {
		if got := IsValidCampaignTransition(tt.from, tt.to); got != tt.expected {
			t.Errorf("IsValidCampaignTransition(%q, %q) = %v, want %v", tt.from, tt.to, got, tt.expected)
		}
	}
}

func TestIsOpenForApplications(t *testing.T) {
	for _, status := range []string{CampaignStatusDraft, CampaignStatusCompleted, CampaignStatusCancelled} {
		c := Campaign{Status: status}
		if c.IsOpenForApplications() {
			t.Errorf("campaign with status %q should not be open for applications", status)
		}
	}

	c := Campaign{Status: CampaignStatusActive}
	if !c.IsOpenForApplications() {
		t.Error("active campaign should be open for applications")
	}
}
