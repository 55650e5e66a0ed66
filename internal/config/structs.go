package config

import (
	"time"

	"github.com/propertychain/propertychain-admin/internal/logger"
)

// Session settings.
type Session struct {
	ExpiryTime time.Duration
}

// Config overall data structure.
type Config struct {
	DevMode   bool // enable dev mode for development
	DB        DB
	Log       logger.Log
	Title     string
	Webserver Webserver
	Security  Security
}

// Webserver implement webserver settings.
type Webserver struct {
	BrowseStatic        bool    // enable static file browsing (for development purposes only)
	CacheEnabled        bool    // true = enable cache, false = disable cache
	CleanPath           bool    // use clean path middleware to allow multi slash requests
	DisableRecover      bool    // disable recover middleware
	Domain              string  // domain name for the webserver
	Port                int     // listening port for the webserver
	ShutDownTime        int     // wait time for shutdown
	URL                 string  // base url for the webserver
	CookieEncryptionKey string  // encryption key for cookies
	Argon2Salt          string  // salt for argon2 hashing
	Session             Session // session settings
}

// Security implements the admin security settings: inactivity timeouts,
// the route access default and the two-factor gate.
type Security struct {
	// WarnAfterMinutes is the inactivity span after which the session
	// expiring warning is raised. Default 25.
	WarnAfterMinutes int

	// ExpireAfterMinutes is the inactivity span after which the session is
	// terminated. Must be greater than WarnAfterMinutes. Default 30.
	ExpireAfterMinutes int

	// RouteAccessDefault decides what happens on admin routes that carry no
	// access rule: "allow" grants any authenticated admin (matches the
	// historical behavior), "deny" requires an explicit rule.
	RouteAccessDefault string

	// ActivityLogCap bounds the per-session audit trail. Default 100.
	ActivityLogCap int

	// TwoFactorMode selects the verifier for two-factor-enabled accounts:
	// "static" compares against TwoFactorDemoCode, "totp" validates a
	// time-based one-time password against the account secret.
	TwoFactorMode string

	// TwoFactorDemoCode is the accepted code in static mode.
	TwoFactorDemoCode string
}

// WarnAfter returns the warning deadline as a duration.
func (s Security) WarnAfter() time.Duration {
	return time.Duration(s.WarnAfterMinutes) * time.Minute
}

// ExpireAfter returns the expiry deadline as a duration.
func (s Security) ExpireAfter() time.Duration {
	return time.Duration(s.ExpireAfterMinutes) * time.Minute
}

// DenyUnmappedRoutes reports whether routes without an access rule are
// denied instead of allowed.
func (s Security) DenyUnmappedRoutes() bool {
	return s.RouteAccessDefault == RouteAccessDeny
}
