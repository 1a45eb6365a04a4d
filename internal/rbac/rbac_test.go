package rbac

import "testing"

func TestHasPermission(t *testing.T) {
	tests := []struct {
		role       string
		permission string
		expected   bool
	}{
		{RoleBusiness, PermManageCampaign, true},
		{RoleBusiness, PermCancelCampaign, true},
		{RoleBusiness, PermInviteKOLs, true},
		{RoleBusiness, PermAcceptApplication, true},

		{RoleKOL, PermApplyToCampaign, true},
		{RoleKOL, PermWithdraw, true},
		{RoleKOL, PermManageKOLProfile, true},
		{RoleKOL, PermUseAIMatching, true},

		// Cross-role denials
		{RoleKOL, PermManageCampaign, false},
		{RoleKOL, PermAcceptApplication, false},
		{RoleBusiness, PermApplyToCampaign, false},
		{RoleBusiness, PermManageKOLProfile, false},

		// Unknown inputs
		{"admin", PermManageCampaign, false},
		{RoleBusiness, "nonexistent", false},
		{"", "", false},
	}

	for _, tt := range tests {
		if got := HasPermission(tt.role, tt.permission); got != tt.expected {
			t.Errorf("HasPermission(%q, %q) = %v, want %v", tt.role, tt.permission, got, tt.expected)
		}
	}
}
