package rbac

// Permission constants define the available permissions in the system.
// These are used for role-based access control (RBAC) to restrict access
// to specific resources and actions. The set is closed: fourteen values.
const (
	// PermDashboardView allows viewing the main admin dashboard.
	PermDashboardView = "dashboard.view"

	// PermPropertiesView allows viewing tokenized property listings.
	PermPropertiesView = "properties.view"
	// PermPropertiesManage allows creating, editing and delisting properties.
	PermPropertiesManage = "properties.manage"

	// PermUsersView allows viewing investor and admin accounts.
	PermUsersView = "users.view"
	// PermUsersManage allows managing investor and admin accounts.
	PermUsersManage = "users.manage"

	// PermFinancesView allows viewing loan pools, yields and transactions.
	PermFinancesView = "finances.view"
	// PermFinancesManage allows managing payouts and pool parameters.
	PermFinancesManage = "finances.manage"

	// PermDocumentsView allows viewing legal and property documents.
	PermDocumentsView = "documents.view"
	// PermDocumentsManage allows uploading and annotating documents.
	PermDocumentsManage = "documents.manage"

	// PermSupportView allows viewing support tickets.
	PermSupportView = "support.view"
	// PermSupportManage allows answering and closing support tickets.
	PermSupportManage = "support.manage"

	// PermComplianceView allows viewing KYC/AML compliance checks.
	PermComplianceView = "compliance.view"

	// PermAuditView allows viewing the security activity trail and sessions.
	PermAuditView = "audit.view"

	// PermSettingsManage allows managing platform-wide settings.
	PermSettingsManage = "settings.manage"
)

// AllPermissions lists every permission in the closed set.
func AllPermissions() []string {
	return []string{
		PermDashboardView,
		PermPropertiesView,
		PermPropertiesManage,
		PermUsersView,
		PermUsersManage,
		PermFinancesView,
		PermFinancesManage,
		PermDocumentsView,
		PermDocumentsManage,
		PermSupportView,
		PermSupportManage,
		PermComplianceView,
		PermAuditView,
		PermSettingsManage,
	}
}
