// Package navigation provides utilities for managing navigation state,
// breadcrumbs and the permission-filtered admin menu.
package navigation

import (
	"github.com/propertychain/propertychain-admin/internal/rbac"
)

// BreadcrumbItem represents a single breadcrumb link.
type BreadcrumbItem struct {
	Title  string
	URL    string
	Active bool
}

// Context represents the navigation context for a page.
type Context struct {
	ActiveSection string
	ActivePage    string
	Breadcrumbs   []BreadcrumbItem
	PageTitle     string
}

// NewContext creates a new navigation context.
func NewContext(pageTitle, activeSection, activePage string) *Context {
	return &Context{
		PageTitle:     pageTitle,
		ActiveSection: activeSection,
		ActivePage:    activePage,
		Breadcrumbs:   make([]BreadcrumbItem, 0),
	}
}

// AddBreadcrumb adds a breadcrumb item to the context.
func (c *Context) AddBreadcrumb(title, url string, active bool) *Context {
	c.Breadcrumbs = append(c.Breadcrumbs, BreadcrumbItem{
		Title:  title,
		URL:    url,
		Active: active,
	})

	return c
}

// IsActive checks if the given section and page match the current context.
func (c *Context) IsActive(section, page string) bool {
	return c.ActiveSection == section && c.ActivePage == page
}

// IsSectionActive checks if the given section is active.
func (c *Context) IsSectionActive(section string) bool {
	return c.ActiveSection == section
}

// MenuItem is one entry of the admin sidebar. Permission names the rbac
// permission required to see the link; an empty Permission is visible to
// every authenticated admin.
type MenuItem struct {
	Title      string
	Section    string
	URL        string
	Permission string
}

// Menu is the full admin sidebar in display order. The sidebar is filtered
// per role; the route rules behind each URL stay authoritative either way.
var Menu = []MenuItem{
	{Title: "Dashboard", Section: "dashboard", URL: "/dashboard", Permission: rbac.PermDashboardView},
	{Title: "Properties", Section: "properties", URL: "/admin/properties", Permission: rbac.PermPropertiesView},
	{Title: "Users", Section: "users", URL: "/admin/users", Permission: rbac.PermUsersView},
	{Title: "Financial", Section: "financial", URL: "/admin/financial", Permission: rbac.PermFinancesView},
	{Title: "Documents", Section: "documents", URL: "/admin/documents", Permission: rbac.PermDocumentsView},
	{Title: "Support", Section: "support", URL: "/admin/support", Permission: rbac.PermSupportView},
	{Title: "Compliance", Section: "compliance", URL: "/admin/compliance", Permission: rbac.PermComplianceView},
	{Title: "Activity", Section: "activity", URL: "/admin/activity", Permission: rbac.PermAuditView},
	{Title: "Sessions", Section: "sessions", URL: "/admin/sessions", Permission: rbac.PermAuditView},
	{Title: "Settings", Section: "settings", URL: "/admin/settings", Permission: rbac.PermSettingsManage},
}

// MenuFor filters the sidebar down to the entries the permission holder may
// see.
func MenuFor(hasPermission func(string) bool) []MenuItem {
	items := make([]MenuItem, 0, len(Menu))

	for _, item := range Menu {
		if item.Permission == "" || hasPermission(item.Permission) {
			items = append(items, item)
		}
	}

	return items
}
