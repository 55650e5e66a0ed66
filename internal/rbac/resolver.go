package rbac

// Resolver answers permission and route access questions against the static
// tables. It carries no mutable state besides the configured default for
// unmapped routes.
type Resolver struct {
	denyUnmapped bool
}

// NewResolver creates a resolver. With denyUnmapped false, routes without an
// access rule are open to any authenticated admin (the historical default);
// with true they are denied unless explicitly listed.
func NewResolver(denyUnmapped bool) *Resolver {
	return &Resolver{denyUnmapped: denyUnmapped}
}

// HasPermission reports whether the role holds the permission. An empty or
// unknown role holds nothing (fail-closed).
func (r *Resolver) HasPermission(role Role, permission string) bool {
	for _, perm := range rolePermissions[role] {
		if perm == permission {
			return true
		}
	}

	return false
}

// HasAnyPermission reports whether the role holds at least one of the given
// permissions.
func (r *Resolver) HasAnyPermission(role Role, permissions ...string) bool {
	for _, perm := range permissions {
		if r.HasPermission(role, perm) {
			return true
		}
	}

	return false
}

// HasAllPermissions reports whether the role holds every given permission.
func (r *Resolver) HasAllPermissions(role Role, permissions ...string) bool {
	for _, perm := range permissions {
		if !r.HasPermission(role, perm) {
			return false
		}
	}

	return true
}

// PermissionsFor returns a copy of the role's permission set.
func (r *Resolver) PermissionsFor(role Role) []string {
	perms := rolePermissions[role]

	out := make([]string, len(perms))
	copy(out, perms)

	return out
}

// CheckRouteAccess reports whether the role may enter the route. A mapped
// route is granted according to its rule's combinator; an unmapped route
// follows the configured default. Without a role (unauthenticated) access is
// always denied.
func (r *Resolver) CheckRouteAccess(role Role, routePath string) bool {
	if !role.Valid() {
		return false
	}

	rule, ok := RouteRuleFor(routePath)
	if !ok {
		return !r.denyUnmapped
	}

	if rule.Combinator == AllOf {
		return r.HasAllPermissions(role, rule.Permissions...)
	}

	return r.HasAnyPermission(role, rule.Permissions...)
}
