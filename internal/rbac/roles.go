package rbac

// Role identifies an administrator's category. Assignment happens at account
// creation and is immutable for the lifetime of a session.
type Role string

const (
	// RoleSuperAdmin holds every permission.
	RoleSuperAdmin Role = "super-admin"
	// RolePropertyManager curates property listings and their documents.
	RolePropertyManager Role = "property-manager"
	// RoleSupportStaff handles investor support tickets.
	RoleSupportStaff Role = "support-staff"
	// RoleFinanceManager oversees loan pools, payouts and compliance.
	RoleFinanceManager Role = "finance-manager"
)

// rolePermissions is the static role to permission table. It is read-only
// after definition and safe to share without synchronization.
var rolePermissions = map[Role][]string{ //nolint:gochecknoglobals
	RoleSuperAdmin: AllPermissions(),
	RolePropertyManager: {
		PermDashboardView,
		PermPropertiesView,
		PermPropertiesManage,
		PermUsersView,
		PermDocumentsView,
		PermDocumentsManage,
		PermSupportView,
	},
	RoleSupportStaff: {
		PermDashboardView,
		PermUsersView,
		PermSupportView,
		PermSupportManage,
	},
	RoleFinanceManager: {
		PermDashboardView,
		PermFinancesView,
		PermFinancesManage,
		PermComplianceView,
		PermAuditView,
	},
}

// Roles lists every known role.
func Roles() []Role {
	return []Role{RoleSuperAdmin, RolePropertyManager, RoleSupportStaff, RoleFinanceManager}
}

// Valid reports whether the role is part of the fixed set.
func (r Role) Valid() bool {
	_, ok := rolePermissions[r]
	return ok
}
