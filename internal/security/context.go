// Package security composes the admin guard for one session: the rbac
// resolver, the per-session activity trail, the inactivity guard and the
// two-factor gate. One Context belongs to one logged-in session; handlers
// reach it only through the narrow interface exposed here, never through
// shared mutable state.
package security

import (
	"strconv"
	"sync"

	"github.com/propertychain/propertychain-admin/internal/activity"
	"github.com/propertychain/propertychain-admin/internal/db/models"
	"github.com/propertychain/propertychain-admin/internal/rbac"
	"github.com/propertychain/propertychain-admin/internal/sessionguard"
	"github.com/propertychain/propertychain-admin/internal/twofactor"
)

// Context is the security state of one admin session.
type Context struct {
	user     models.AdminUser
	resolver *rbac.Resolver
	log      *activity.Log
	guard    *sessionguard.Guard
	verifier twofactor.Verifier

	// login-sourced request metadata attached to every activity entry
	ip        string
	userAgent string

	mu          sync.Mutex
	twoFactorOK bool
}

// NewContext binds an authenticated admin to a fresh security context. The
// ip and userAgent are taken from the login request and attached to every
// activity entry, mirroring that they are principal state, not verified per
// request.
func NewContext(
	user models.AdminUser,
	resolver *rbac.Resolver,
	log *activity.Log,
	guard *sessionguard.Guard,
	verifier twofactor.Verifier,
	ip, userAgent string,
) *Context {
	return &Context{
		user:      user,
		resolver:  resolver,
		log:       log,
		guard:     guard,
		verifier:  verifier,
		ip:        ip,
		userAgent: userAgent,
	}
}

// User returns the admin this context belongs to.
func (c *Context) User() models.AdminUser {
	return c.user
}

// Role returns the admin's role.
func (c *Context) Role() rbac.Role {
	return rbac.Role(c.user.Role)
}

// Permissions returns the resolved permission set of the admin's role.
func (c *Context) Permissions() []string {
	return c.resolver.PermissionsFor(c.Role())
}

// HasPermission reports whether the admin's role holds the permission.
func (c *Context) HasPermission(permission string) bool {
	return c.resolver.HasPermission(c.Role(), permission)
}

// CheckRouteAccess reports whether the admin may enter the route.
func (c *Context) CheckRouteAccess(routePath string) bool {
	return c.resolver.CheckRouteAccess(c.Role(), routePath)
}

// RequireTwoFactor reports whether the session is still withheld behind the
// two-factor gate.
func (c *Context) RequireTwoFactor() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.user.TwoFactorEnabled && !c.twoFactorOK
}

// IsSessionValid reports whether the session may see content: the
// two-factor gate is open (or not required) and the session has not expired.
func (c *Context) IsSessionValid() bool {
	return !c.RequireTwoFactor() && c.guard.State() != sessionguard.Expired
}

// VerifyTwoFactor checks a submitted code against the verifier. Success
// opens the gate for the remainder of the session and is logged low risk;
// failure keeps the gate shut and is logged high risk. There is no attempt
// limit.
func (c *Context) VerifyTwoFactor(code string) bool {
	if c.verifier != nil && c.verifier.Verify(code) {
		c.mu.Lock()
		c.twoFactorOK = true
		c.mu.Unlock()

		c.LogActivity("2FA Verification Success", nil)

		return true
	}

	c.LogActivity("2FA Verification Failed", map[string]any{"risk": "high"})

	return false
}

// LogActivity appends one entry to the session's audit trail.
func (c *Context) LogActivity(action string, details map[string]any) activity.Entry {
	return c.log.Record(activity.Entry{
		AdminID:   strconv.FormatUint(c.user.ID, 10),
		Action:    action,
		Details:   details,
		IPAddress: c.ip,
		UserAgent: c.userAgent,
	})
}

// ActivityLog returns the trail, most recent first.
func (c *Context) ActivityLog() []activity.Entry {
	return c.log.Entries()
}

// Guard returns the session's inactivity guard.
func (c *Context) Guard() *sessionguard.Guard {
	return c.guard
}
