package guard_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/template/html/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/propertychain/propertychain-admin/internal/activity"
	"github.com/propertychain/propertychain-admin/internal/db/models"
	"github.com/propertychain/propertychain-admin/internal/rbac"
	"github.com/propertychain/propertychain-admin/internal/security"
	"github.com/propertychain/propertychain-admin/internal/sessionguard"
	"github.com/propertychain/propertychain-admin/internal/twofactor"
	"github.com/propertychain/propertychain-admin/internal/web/handler/login"
	"github.com/propertychain/propertychain-admin/internal/web/handler/sessionstatus"
	twofactorhandler "github.com/propertychain/propertychain-admin/internal/web/handler/twofactor"
	"github.com/propertychain/propertychain-admin/internal/web/middleware/guard"
)

func newTestApp(t *testing.T, reg *security.Registry) *fiber.App {
	t.Helper()

	engine := html.New("../../templates", ".gohtml")

	app := fiber.New(fiber.Config{Views: engine})
	app.Use(guard.New(reg))

	for _, path := range []string{
		"/dashboard",
		"/admin/financial",
		"/admin/support",
		twofactorhandler.Path,
		sessionstatus.Path,
	} {
		app.Get(path, func(c *fiber.Ctx) error {
			return c.SendString("ok")
		})
	}

	return app
}

func provision(t *testing.T, reg *security.Registry, sessionID string, user models.AdminUser) *security.Context {
	t.Helper()

	g := sessionguard.New(time.Hour, 2*time.Hour, nil, nil)
	t.Cleanup(g.Stop)

	sc := security.NewContext(
		user,
		rbac.NewResolver(false),
		activity.NewLog(100),
		g,
		twofactor.NewStatic("123456"),
		"203.0.113.7",
		"test-agent/1.0",
	)

	reg.Put(sessionID, sc)

	return sc
}

func TestGuardRedirectsWithoutSession(t *testing.T) {
	app := newTestApp(t, security.NewRegistry())

	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/dashboard", nil))
	require.NoError(t, err)

	assert.Equal(t, fiber.StatusFound, resp.StatusCode)
	assert.Equal(t, login.Path, resp.Header.Get(fiber.HeaderLocation))
}

func TestGuardRedirectsOnUnknownContext(t *testing.T) {
	app := newTestApp(t, security.NewRegistry())

	req := httptest.NewRequest(fiber.MethodGet, "/dashboard", nil)
	req.AddCookie(&http.Cookie{Name: "session", Value: "stale-session"})

	resp, err := app.Test(req)
	require.NoError(t, err)

	assert.Equal(t, fiber.StatusFound, resp.StatusCode)
	assert.Equal(t, login.Path, resp.Header.Get(fiber.HeaderLocation))
}

func TestGuardDeniesRouteWithoutPermission(t *testing.T) {
	reg := security.NewRegistry()
	app := newTestApp(t, reg)

	sc := provision(t, reg, "sess-support", models.AdminUser{
		ID:   7,
		Role: string(rbac.RoleSupportStaff),
	})

	req := httptest.NewRequest(fiber.MethodGet, "/admin/financial", nil)
	req.AddCookie(&http.Cookie{Name: "session", Value: "sess-support"})

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)

	// the denial lands in the audit trail
	entries := sc.ActivityLog()
	require.NotEmpty(t, entries)
	assert.Equal(t, "Access Denied", entries[0].Action)
}

func TestGuardAllowsPermittedRoute(t *testing.T) {
	reg := security.NewRegistry()
	app := newTestApp(t, reg)

	provision(t, reg, "sess-support", models.AdminUser{
		ID:   7,
		Role: string(rbac.RoleSupportStaff),
	})

	req := httptest.NewRequest(fiber.MethodGet, "/admin/support", nil)
	req.AddCookie(&http.Cookie{Name: "session", Value: "sess-support"})

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestGuardEnforcesTwoFactorGate(t *testing.T) {
	reg := security.NewRegistry()
	app := newTestApp(t, reg)

	sc := provision(t, reg, "sess-2fa", models.AdminUser{
		ID:               9,
		Role:             string(rbac.RoleSuperAdmin),
		TwoFactorEnabled: true,
	})

	req := httptest.NewRequest(fiber.MethodGet, "/dashboard", nil)
	req.AddCookie(&http.Cookie{Name: "session", Value: "sess-2fa"})

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusFound, resp.StatusCode)
	assert.Equal(t, twofactorhandler.Path, resp.Header.Get(fiber.HeaderLocation))

	// the verification prompt itself stays reachable
	req = httptest.NewRequest(fiber.MethodGet, twofactorhandler.Path, nil)
	req.AddCookie(&http.Cookie{Name: "session", Value: "sess-2fa"})

	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	// once verified the gate opens
	require.True(t, sc.VerifyTwoFactor("123456"))

	req = httptest.NewRequest(fiber.MethodGet, "/dashboard", nil)
	req.AddCookie(&http.Cookie{Name: "session", Value: "sess-2fa"})

	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestGuardStatusPollDoesNotResetDeadlines(t *testing.T) {
	reg := security.NewRegistry()
	app := newTestApp(t, reg)

	sc := provision(t, reg, "sess-poll", models.AdminUser{
		ID:   11,
		Role: string(rbac.RoleSuperAdmin),
	})

	_, expireBefore := sc.Guard().Deadlines()

	time.Sleep(10 * time.Millisecond)

	req := httptest.NewRequest(fiber.MethodGet, sessionstatus.Path, nil)
	req.AddCookie(&http.Cookie{Name: "session", Value: "sess-poll"})

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	_, expireAfterPoll := sc.Guard().Deadlines()
	assert.Equal(t, expireBefore, expireAfterPoll, "status poll must not move the deadlines")

	// a page request is qualifying activity and does move them
	req = httptest.NewRequest(fiber.MethodGet, "/dashboard", nil)
	req.AddCookie(&http.Cookie{Name: "session", Value: "sess-poll"})

	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	_, expireAfterPage := sc.Guard().Deadlines()
	assert.True(t, expireAfterPage.After(expireBefore))
}
