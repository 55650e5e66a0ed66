package login

import (
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/storage"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/propertychain/propertychain-admin/internal/config"
	"github.com/propertychain/propertychain-admin/internal/db/models"
	"github.com/propertychain/propertychain-admin/internal/rbac"
	"github.com/propertychain/propertychain-admin/internal/security"
	websess "github.com/propertychain/propertychain-admin/internal/web/session"
)

// noOpViews is a minimal Fiber Views engine used for tests.
// It writes the "error" field from the provided fiber.Map (if any)
// so tests can assert error messages rendered by handlers.
type noOpViews struct{}

func (noOpViews) Load() error { return nil }

func (noOpViews) Render(w io.Writer, name string, data interface{}, _ ...string) error {
	if m, ok := data.(fiber.Map); ok {
		if v, exists := m["error"]; exists && v != nil {
			_, _ = io.WriteString(w, v.(string))
			return nil
		}
	}
	// write template name to have some content
	_, _ = io.WriteString(w, name)

	return nil
}

func newTestApp() *fiber.App {
	return fiber.New(fiber.Config{Views: noOpViews{}})
}

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open sqlite in-memory db: %v", err)
	}

	if err := db.AutoMigrate(&models.AdminUser{}, &models.SessionInfo{}); err != nil {
		t.Fatalf("failed to migrate models: %v", err)
	}

	return db
}

func newTestConfig() *config.Config {
	return &config.Config{
		DevMode: false,
		Webserver: config.Webserver{
			URL:     "http://localhost",
			Port:    3000,
			Session: config.Session{ExpiryTime: time.Minute},
		},
		Security: config.Security{
			WarnAfterMinutes:   25,
			ExpireAfterMinutes: 30,
			RouteAccessDefault: config.RouteAccessAllow,
			ActivityLogCap:     100,
			TwoFactorMode:      config.TwoFactorModeStatic,
			TwoFactorDemoCode:  "123456",
		},
	}
}

// testStorage is a minimal in-memory implementation of storage.Storage for tests.
type testStorage struct {
	mu   sync.RWMutex
	data map[string][]byte
}

var _ storage.Storage = (*testStorage)(nil)

func (s *testStorage) Get(key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	v := s.data[key]
	out := make([]byte, len(v))
	copy(out, v)

	return out, nil
}

func (s *testStorage) Set(key string, val []byte, _ time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.data == nil {
		s.data = make(map[string][]byte)
	}

	buf := make([]byte, len(val))
	copy(buf, val)
	s.data[key] = buf

	return nil
}

func (s *testStorage) Delete(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.data, key)

	return nil
}

func (s *testStorage) Reset() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.data = make(map[string][]byte)

	return nil
}

func (s *testStorage) Close() error { return nil }

func initSessionStore() {
	// Initialize a fresh in-memory session store for each test.
	websess.Init(&testStorage{data: make(map[string][]byte)})
}

func createAdmin(t *testing.T, db *gorm.DB, email, password, role string, twoFactor bool) {
	t.Helper()

	admin := models.AdminUser{
		Active:           true,
		Email:            email,
		Password:         models.HashPassword(password),
		DisplayName:      "Test Admin",
		Role:             role,
		TwoFactorEnabled: twoFactor,
	}

	if result := db.Create(&admin); result.Error != nil {
		t.Fatalf("failed to create admin: %v", result.Error)
	}
}

func performPost(t *testing.T, app *fiber.App, target string, form url.Values) *http.Response {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("app.Test failed: %v", err)
	}

	return resp
}

func initService(t *testing.T, app *fiber.App, cfg *config.Config, db *gorm.DB) (*Service, *security.Registry) {
	t.Helper()

	reg := security.NewRegistry()

	var s Service
	if err := s.Init(app, cfg, db, reg); err != nil {
		t.Fatalf("failed to init login handler: %v", err)
	}

	return &s, reg
}

func TestPost_Success_SetsCookieAndRedirects(t *testing.T) {
	db := newTestDB(t)
	cfg := newTestConfig()
	cfg.DevMode = false // Secure cookie expected

	app := newTestApp()

	initSessionStore()

	_, reg := initService(t, app, cfg, db)

	createAdmin(t, db, "bob@propertychain.example", "s3cr3t-enough!", string(rbac.RoleSuperAdmin), false)

	form := url.Values{
		"email":    {"bob@propertychain.example"},
		"password": {"s3cr3t-enough!"},
	}
	resp := performPost(t, app, Path+"/", form)

	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusFound {
		t.Fatalf("expected 302 Found, got %d", resp.StatusCode)
	}

	if loc := resp.Header.Get("Location"); loc != "/dashboard" {
		t.Fatalf("expected redirect to /dashboard, got %s", loc)
	}

	setCookie := resp.Header.Get("Set-Cookie")
	if !strings.Contains(setCookie, "session=") {
		t.Fatalf("expected session cookie, got %q", setCookie)
	}

	if !strings.Contains(strings.ToLower(setCookie), "secure") {
		t.Fatalf("expected Secure flag on cookie when DevMode=false, got %q", setCookie)
	}

	// a security context was provisioned and the login was audited
	if reg.Len() != 1 {
		t.Fatalf("expected 1 registered security context, got %d", reg.Len())
	}
}

func TestPost_Success_ProvisionsContextWithLoginEntry(t *testing.T) {
	db := newTestDB(t)
	cfg := newTestConfig()
	app := newTestApp()

	initSessionStore()

	_, reg := initService(t, app, cfg, db)

	createAdmin(t, db, "carol@propertychain.example", "passphrase-ok!", string(rbac.RoleFinanceManager), false)

	form := url.Values{
		"email":    {"carol@propertychain.example"},
		"password": {"passphrase-ok!"},
	}
	resp := performPost(t, app, Path+"/", form)

	defer func() {
		_ = resp.Body.Close()
	}()

	sessionID := sessionIDFromCookie(t, resp)

	sc, ok := reg.Get(sessionID)
	if !ok {
		t.Fatalf("expected a security context for session %q", sessionID)
	}

	t.Cleanup(func() { reg.Remove(sessionID) })

	entries := sc.ActivityLog()
	if len(entries) == 0 || entries[0].Action != "Admin Login" {
		t.Fatalf("expected Admin Login as most recent entry, got %+v", entries)
	}

	if sc.Role() != rbac.RoleFinanceManager {
		t.Fatalf("expected finance-manager context, got %s", sc.Role())
	}

	if sc.RequireTwoFactor() {
		t.Fatalf("account without 2FA must not be gated")
	}
}

func TestPost_TwoFactorAccountIsGated(t *testing.T) {
	db := newTestDB(t)
	cfg := newTestConfig()
	app := newTestApp()

	initSessionStore()

	_, reg := initService(t, app, cfg, db)

	createAdmin(t, db, "dana@propertychain.example", "passphrase-ok!", string(rbac.RoleSuperAdmin), true)

	form := url.Values{
		"email":    {"dana@propertychain.example"},
		"password": {"passphrase-ok!"},
	}
	resp := performPost(t, app, Path+"/", form)

	defer func() {
		_ = resp.Body.Close()
	}()

	sessionID := sessionIDFromCookie(t, resp)

	sc, ok := reg.Get(sessionID)
	if !ok {
		t.Fatalf("expected a security context for session %q", sessionID)
	}

	t.Cleanup(func() { reg.Remove(sessionID) })

	if !sc.RequireTwoFactor() {
		t.Fatalf("two-factor account must start gated")
	}

	// static demo verifier per config
	if sc.VerifyTwoFactor("000000") {
		t.Fatalf("wrong code must not open the gate")
	}

	if !sc.VerifyTwoFactor("123456") {
		t.Fatalf("demo code must open the gate")
	}
}

func TestPost_WrongPassword_RendersError(t *testing.T) {
	db := newTestDB(t)
	cfg := newTestConfig()
	app := newTestApp()

	initSessionStore()

	_, reg := initService(t, app, cfg, db)

	createAdmin(t, db, "erin@propertychain.example", "right-password!", string(rbac.RoleSupportStaff), false)

	form := url.Values{
		"email":    {"erin@propertychain.example"},
		"password": {"wrong-password!"},
	}
	resp := performPost(t, app, Path+"/", form)

	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 OK on render error page, got %d", resp.StatusCode)
	}

	bodyBytes, _ := io.ReadAll(resp.Body)
	if !strings.Contains(string(bodyBytes), invalidCredentialsMsg) {
		t.Fatalf("expected error message in body, got %q", string(bodyBytes))
	}

	if reg.Len() != 0 {
		t.Fatalf("failed login must not register a security context")
	}
}

func TestPost_InactiveAccount_RendersError(t *testing.T) {
	db := newTestDB(t)
	cfg := newTestConfig()
	app := newTestApp()

	initSessionStore()

	initService(t, app, cfg, db)

	admin := models.AdminUser{
		Active:   false,
		Email:    "gone@propertychain.example",
		Password: models.HashPassword("whatever-works!"),
		Role:     string(rbac.RoleSupportStaff),
	}
	if result := db.Create(&admin); result.Error != nil {
		t.Fatalf("failed to create admin: %v", result.Error)
	}

	form := url.Values{
		"email":    {"gone@propertychain.example"},
		"password": {"whatever-works!"},
	}
	resp := performPost(t, app, Path+"/", form)

	defer func() {
		_ = resp.Body.Close()
	}()

	bodyBytes, _ := io.ReadAll(resp.Body)
	if !strings.Contains(string(bodyBytes), "inactive") {
		t.Fatalf("expected inactive account error, got %q", string(bodyBytes))
	}
}

func TestPost_DevModeDisablesSecure(t *testing.T) {
	db := newTestDB(t)
	cfg := newTestConfig()
	cfg.DevMode = true // Secure=false expected

	app := newTestApp()

	initSessionStore()

	_, reg := initService(t, app, cfg, db)

	createAdmin(t, db, "frank@propertychain.example", "passphrase-ok!", string(rbac.RolePropertyManager), false)

	form := url.Values{
		"email":    {"frank@propertychain.example"},
		"password": {"passphrase-ok!"},
	}
	resp := performPost(t, app, Path+"/", form)

	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusFound {
		t.Fatalf("expected 302 Found, got %d", resp.StatusCode)
	}

	setCookie := resp.Header.Get("Set-Cookie")
	if strings.Contains(strings.ToLower(setCookie), "secure") {
		t.Fatalf("did not expect Secure flag when DevMode=true, got %q", setCookie)
	}

	reg.Remove(sessionIDFromCookie(t, resp))
}

func sessionIDFromCookie(t *testing.T, resp *http.Response) string {
	t.Helper()

	for _, c := range resp.Cookies() {
		if c.Name == "session" {
			return c.Value
		}
	}

	t.Fatalf("no session cookie in response")

	return ""
}
