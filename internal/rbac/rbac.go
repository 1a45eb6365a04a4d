package rbac

// Role constants
const (
	RoleBusiness = "business"
	RoleKOL      = "kol"
)

// Permission constants
const (
	PermManageCampaign     = "manage_campaign"
	PermCancelCampaign     = "cancel_campaign"
	PermInviteKOLs         = "invite_kols"
	PermAcceptApplication  = "accept_application"
	PermDeclineApplication = "decline_application"
	PermApplyToCampaign    = "apply_to_campaign"
	PermWithdraw           = "withdraw_application"
	PermManageKOLProfile   = "manage_kol_profile"
	PermUseAIMatching      = "use_ai_matching"
)

// RolePermissions defines what each role can do.
var RolePermissions = map[string][]string{
	RoleBusiness: {
		PermManageCampaign, PermCancelCampaign, PermInviteKOLs,
		PermAcceptApplication, PermDeclineApplication,
	},
	RoleKOL: {
		PermApplyToCampaign, PermWithdraw, PermManageKOLProfile, PermUseAIMatching,
		// KOL CANNOT: PermManageCampaign, PermAcceptApplication
	},
}

// HasPermission checks if a role has a specific permission.
func HasPermission(role, permission string) bool {
	perms, ok := RolePermissions[role]
	if !ok {
		return false
	}
	for _, p := range perms {
		if p == permission {
			return true
		}
	}
	return false
}
