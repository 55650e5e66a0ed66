// Package sessions renders the active admin sessions page and lets
// sufficiently privileged admins revoke a session remotely.
package sessions

import (
	"github.com/gofiber/fiber/v2"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/propertychain/propertychain-admin/internal/config"
	"github.com/propertychain/propertychain-admin/internal/db/models"
	"github.com/propertychain/propertychain-admin/internal/rbac"
	"github.com/propertychain/propertychain-admin/internal/security"
	"github.com/propertychain/propertychain-admin/internal/web/handler"
	"github.com/propertychain/propertychain-admin/internal/web/navigation"
	"github.com/propertychain/propertychain-admin/internal/web/session"
)

const (
	// Path is the path to the sessions page.
	Path = "/admin/sessions"

	// TemplateName is the name of the sessions template.
	TemplateName = "sessions"
)

// Row pairs a session with its owning admin for the template.
type Row struct {
	Info  models.SessionInfo
	Admin models.AdminUser
	Own   bool
}

// Service is the sessions handler service.
type Service struct {
	handler.Service
	cfg      *config.Config
	db       *gorm.DB
	registry *security.Registry
}

// Handler is the sessions handler.
var Handler = Service{}

// Init initializes the sessions handler.
func (s *Service) Init(app *fiber.App, cfg *config.Config, db *gorm.DB, reg *security.Registry) error {
	if app == nil || cfg == nil || db == nil || reg == nil {
		return errors.New(handler.ErrNilACDFatalLogMsg)
	}

	s.cfg = cfg
	s.db = db
	s.registry = reg

	app.Route(Path, func(router fiber.Router) {
		router.Get(handler.RouterRootPath, s.Get)
		router.Post("/revoke", s.Revoke)
	})

	return nil
}

// Get renders the active sessions.
func (s *Service) Get(c *fiber.Ctx) error {
	sc := security.FromCtx(c)

	var infos []models.SessionInfo
	if result := s.db.Where("active = ?", true).Order("last_activity DESC").Find(&infos); result.Error != nil {
		log.Error().Err(result.Error).Msg("failed to load active sessions")

		return c.Status(fiber.StatusInternalServerError).SendString("Failed to load sessions")
	}

	own := c.Cookies("session")
	rows := make([]Row, 0, len(infos))

	for _, info := range infos {
		row := Row{Info: info, Own: info.SessionID == own}

		if result := s.db.First(&row.Admin, info.AdminUserID); result.Error != nil {
			log.Debug().
				Uint64("admin_id", info.AdminUserID).
				Msg("session without resolvable admin account")
		}

		rows = append(rows, row)
	}

	nav := navigation.NewContext("Sessions", "sessions", "sessions").
		AddBreadcrumb("Home", "/dashboard", false).
		AddBreadcrumb("Sessions", Path, true)

	return c.Render(TemplateName, fiber.Map{
		"Title":      s.cfg.Title,
		"Navigation": nav,
		"Menu":       navigation.MenuFor(sc.HasPermission),
		"Admin":      sc.User(),
		"Rows":       rows,
		"CanRevoke":  sc.HasPermission(rbac.PermUsersManage),
	}, handler.BaseLayout)
}

// Revoke terminates another admin's session. Requires users.manage on top
// of the route access the guard already enforced.
func (s *Service) Revoke(c *fiber.Ctx) error {
	sc := security.FromCtx(c)

	if !sc.HasPermission(rbac.PermUsersManage) {
		return c.Status(fiber.StatusForbidden).Render("access_denied", fiber.Map{
			"Title": "Access Denied",
			"Path":  Path,
		}, handler.BaseLayout)
	}

	sessionID := c.FormValue("session_id")
	if sessionID == "" {
		return c.Redirect(Path)
	}

	if err := session.Delete(sessionID); err != nil {
		log.Error().Err(err).Msg("failed to delete revoked session data")
	}

	s.db.Model(&models.SessionInfo{}).
		Where("session_id = ?", sessionID).
		Update("active", false)

	s.registry.Remove(sessionID)

	// revocation terminates another admin's access, audit it as high risk
	sc.LogActivity("Revoke Session", map[string]any{
		"session_id": sessionID,
		"risk":       "high",
	})

	return c.Redirect(Path)
}
