package rbac

import "strings"

// Combinator decides how a route rule combines its permissions.
type Combinator int

const (
	// AnyOf grants access when the role holds at least one listed permission.
	AnyOf Combinator = iota
	// AllOf grants access only when the role holds every listed permission.
	AllOf
)

// RouteRule names the permissions required to enter a route and how they
// combine. Every rule observed in the original admin area uses AnyOf; the
// combinator is explicit so AND requirements are visible in the table
// instead of hard-coded.
type RouteRule struct {
	Combinator  Combinator
	Permissions []string
}

// routeRules is the static route to permission table, keyed by route path.
// Lookups fall back through parent paths, so a rule for /admin/users also
// covers /admin/users/42. Routes absent from the table follow the configured
// default (allow for any authenticated admin, or deny).
var routeRules = map[string]RouteRule{ //nolint:gochecknoglobals
	"/dashboard":        {Combinator: AnyOf, Permissions: []string{PermDashboardView}},
	"/admin/properties": {Combinator: AnyOf, Permissions: []string{PermPropertiesView}},
	"/admin/users":      {Combinator: AnyOf, Permissions: []string{PermUsersView}},
	"/admin/financial":  {Combinator: AnyOf, Permissions: []string{PermFinancesView}},
	"/admin/documents":  {Combinator: AnyOf, Permissions: []string{PermDocumentsView}},
	"/admin/support":    {Combinator: AnyOf, Permissions: []string{PermSupportView, PermSupportManage}},
	"/admin/compliance": {Combinator: AnyOf, Permissions: []string{PermComplianceView}},
	"/admin/activity":   {Combinator: AnyOf, Permissions: []string{PermAuditView}},
	"/admin/sessions":   {Combinator: AnyOf, Permissions: []string{PermAuditView}},
	"/admin/settings":   {Combinator: AllOf, Permissions: []string{PermSettingsManage, PermUsersManage}},
}

// RouteRuleFor looks up the access rule for a route path, walking up the
// path hierarchy until a rule matches. The second return value reports
// whether any rule applies.
func RouteRuleFor(routePath string) (RouteRule, bool) {
	p := strings.TrimSuffix(routePath, "/")
	if p == "" {
		p = "/"
	}

	for {
		if rule, ok := routeRules[p]; ok {
			return rule, true
		}

		idx := strings.LastIndex(p, "/")
		if idx <= 0 {
			return RouteRule{}, false
		}

		p = p[:idx]
	}
}

// GuardedRoutes lists every route path carrying an explicit rule.
func GuardedRoutes() []string {
	routes := make([]string, 0, len(routeRules))
	for route := range routeRules {
		routes = append(routes, route)
	}

	return routes
}
