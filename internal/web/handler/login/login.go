// Package login authenticates admins and provisions the per-session
// security context: rbac resolver, activity trail, inactivity guard and the
// two-factor verifier for accounts that require one.
package login

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/propertychain/propertychain-admin/internal/activity"
	"github.com/propertychain/propertychain-admin/internal/config"
	"github.com/propertychain/propertychain-admin/internal/db/models"
	"github.com/propertychain/propertychain-admin/internal/rbac"
	"github.com/propertychain/propertychain-admin/internal/security"
	"github.com/propertychain/propertychain-admin/internal/sessionguard"
	"github.com/propertychain/propertychain-admin/internal/twofactor"
	"github.com/propertychain/propertychain-admin/internal/web/handler"
	"github.com/propertychain/propertychain-admin/internal/web/session"
)

const (
	// Path is the path to the login page.
	Path = "/login"

	// TemplateName is the name of the login template.
	TemplateName = "login"

	invalidCredentialsMsg = "Invalid email or password"
)

// Form is the login form submission.
type Form struct {
	Email    string `form:"email"    validate:"required,email"`
	Password string `form:"password" validate:"required"`
}

// Service is the login handler service.
type Service struct {
	handler.Service
	cfg      *config.Config
	db       *gorm.DB
	registry *security.Registry
	validate *validator.Validate
}

// Handler is the login handler.
var Handler = Service{}

// Init initializes the login handler.
func (s *Service) Init(app *fiber.App, cfg *config.Config, db *gorm.DB, reg *security.Registry) error {
	if app == nil || cfg == nil || db == nil || reg == nil {
		return errors.New(handler.ErrNilACDFatalLogMsg)
	}

	s.cfg = cfg
	s.db = db
	s.registry = reg
	s.validate = validator.New()

	// register routes
	app.Route(Path, func(router fiber.Router) {
		router.Get(handler.RouterRootPath, s.Get)
		router.Post(handler.RouterRootPath, s.Post)
	})

	return nil
}

// Get handles the login page rendering.
func (s *Service) Get(c *fiber.Ctx) error {
	return c.Render(TemplateName, fiber.Map{
		"Title": s.cfg.Title,
	})
}

// Post handles the login form submission.
func (s *Service) Post(c *fiber.Ctx) error {
	form := new(Form)

	if err := c.BodyParser(form); err != nil {
		return s.renderError(c, invalidCredentialsMsg)
	}

	if err := s.validate.Struct(form); err != nil {
		return s.renderError(c, invalidCredentialsMsg)
	}

	var admin models.AdminUser
	if result := s.db.Where("email = ?", form.Email).First(&admin); result.Error != nil {
		return s.renderError(c, invalidCredentialsMsg)
	}

	if !admin.Active {
		return s.renderError(c, "Account is inactive")
	}

	if !admin.VerifyPassword(form.Password) {
		log.Warn().Str("email", form.Email).Str("ip", c.IP()).Msg("failed login attempt")

		return s.renderError(c, invalidCredentialsMsg)
	}

	if !admin.IPAllowed(c.IP()) {
		log.Warn().
			Str("email", form.Email).
			Str("ip", c.IP()).
			Msg("login from address outside the account allow-list")

		return s.renderError(c, "Login from this address is not permitted")
	}

	sessionID, err := session.GenerateSessionID()
	if err != nil {
		log.Error().Err(err).Msg("failed to generate session ID")

		return s.renderError(c, "Internal server error")
	}

	userSession := &session.Data{User: admin}
	if err = userSession.Write(sessionID, s.cfg.Webserver.Session.ExpiryTime); err != nil {
		log.Error().Err(err).Msg("failed to write session")

		return s.renderError(c, "Internal server error")
	}

	sc := s.provisionContext(c, admin, sessionID)
	s.registry.Put(sessionID, sc)
	sc.LogActivity("Admin Login", nil)

	s.recordLogin(c, &admin, sessionID)

	// set login cookie
	cookieSettings := &fiber.Cookie{
		Name:     "session",
		Value:    sessionID,
		MaxAge:   int(s.cfg.Webserver.Session.ExpiryTime.Seconds()),
		Secure:   true,
		HTTPOnly: true,
		SameSite: "Lax", // TODO: make this configurable
	}

	if s.cfg.DevMode {
		cookieSettings.Secure = false
	}

	c.Cookie(cookieSettings)

	return c.Redirect("/dashboard")
}

// provisionContext builds the security context for a fresh session: the
// rbac resolver, a bounded activity trail, the inactivity guard and the
// two-factor verifier the account calls for.
func (s *Service) provisionContext(c *fiber.Ctx, admin models.AdminUser, sessionID string) *security.Context {
	var (
		sec = s.cfg.Security
		sc  *security.Context
	)

	// The expiry callback references sc, which exists by the time any
	// deadline can fire.
	guard := sessionguard.New(
		sec.WarnAfter(),
		sec.ExpireAfter(),
		func() {
			log.Info().Str("session_id", sessionID).Msg("session expiring warning raised")
		},
		func() {
			sc.LogActivity("Session Timeout", nil)

			if err := session.Delete(sessionID); err != nil {
				log.Error().Err(err).Msg("failed to delete expired session data")
			}

			s.db.Model(&models.SessionInfo{}).
				Where("session_id = ?", sessionID).
				Update("active", false)

			s.registry.Remove(sessionID)

			log.Info().
				Uint64("admin_id", admin.ID).
				Str("session_id", sessionID).
				Msg("session expired after inactivity")
		},
	)

	sc = security.NewContext(
		admin,
		rbac.NewResolver(sec.DenyUnmappedRoutes()),
		activity.NewLog(sec.ActivityLogCap),
		guard,
		s.verifierFor(admin),
		c.IP(),
		c.Get(fiber.HeaderUserAgent),
	)

	return sc
}

// verifierFor picks the second-factor verifier for the account: TOTP when
// configured and the account carries a secret, otherwise the static demo
// code.
func (s *Service) verifierFor(admin models.AdminUser) twofactor.Verifier {
	if s.cfg.Security.TwoFactorMode == config.TwoFactorModeTOTP && admin.TwoFactorSecret != "" {
		return twofactor.NewTOTP(admin.TwoFactorSecret)
	}

	return twofactor.NewStatic(s.cfg.Security.TwoFactorDemoCode)
}

// recordLogin persists the login on the account and opens a session info
// row for the active sessions page.
func (s *Service) recordLogin(c *fiber.Ctx, admin *models.AdminUser, sessionID string) {
	now := time.Now()

	admin.LastLoginAt = &now
	admin.LastLoginIP = c.IP()

	if result := s.db.Model(admin).Updates(models.AdminUser{
		LastLoginAt: admin.LastLoginAt,
		LastLoginIP: admin.LastLoginIP,
	}); result.Error != nil {
		log.Error().Err(result.Error).Msg("failed to record last login")
	}

	info := models.SessionInfo{
		SessionID:    sessionID,
		AdminUserID:  admin.ID,
		Browser:      c.Get(fiber.HeaderUserAgent),
		IPAddress:    c.IP(),
		CreatedAt:    now,
		LastActivity: now,
		Active:       true,
	}

	if result := s.db.Create(&info); result.Error != nil {
		log.Error().Err(result.Error).Msg("failed to create session info")
	}
}

func (s *Service) renderError(c *fiber.Ctx, msg string) error {
	return c.Render(TemplateName, fiber.Map{
		"Title": s.cfg.Title,
		"error": msg,
	})
}
