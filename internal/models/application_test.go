package models

import "testing"

func TestIsValidApplicationTransition(t *testing.T) {
	tests := []struct {
		from     string
		to       string
		expected bool
	}{
		// Happy path
		{ApplicationStatusInvited, ApplicationStatusApplied, true},
		{ApplicationStatusApplied, ApplicationStatusAccepted, true},
		{ApplicationStatusAccepted, ApplicationStatusCompleted, true},

		// Decline paths
		{ApplicationStatusInvited, ApplicationStatusDeclined, true},
		{ApplicationStatusApplied, ApplicationStatusDeclined, true},

		// Accepted cannot be declined, only completed
		{ApplicationStatusAccepted, ApplicationStatusDeclined, false},

		// Terminal states
		{ApplicationStatusDeclined, ApplicationStatusApplied, false},
		{ApplicationStatusDeclined, ApplicationStatusAccepted, false},
		{ApplicationStatusCompleted, ApplicationStatusAccepted, false},

		// Invalid jumps
		{ApplicationStatusInvited, ApplicationStatusAccepted, false},
		{ApplicationStatusInvited, ApplicationStatusCompleted, false},
		{ApplicationStatusApplied, ApplicationStatusCompleted, false},
		{"nonexistent", ApplicationStatusApplied, false},
		{ApplicationStatusInvited, "nonexistent", false},
	}

	for _, tt := range tests {
		if got := IsValidApplicationTransition(tt.from, tt.to); got != tt.expected {
			t.Errorf("IsValidApplicationTransition(%q, %q) = %v, want %v", tt.from, tt.to, got, tt.expected)
		}
	}
}

func TestCanWithdraw(t *testing.T) {
	tests := []struct {
		status   string
		expected bool
	}{
		{ApplicationStatusInvited, true},
		{ApplicationStatusApplied, true},
		{ApplicationStatusAccepted, false},
		{ApplicationStatusDeclined, false},
		{ApplicationStatusCompleted, false},
		{"nonexistent", false},
	}

	for _, tt := range tests {
		if got := CanWithdraw(tt.status); got != tt.expected {
			t.Errorf("CanWithdraw(%q) = %v, want %v", tt.status, got, tt.expected)
		}
	}
}
