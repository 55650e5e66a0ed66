// Package dashboard provides the admin landing page with platform counters
// and the caller's recent activity.
package dashboard

import (
	"github.com/gofiber/fiber/v2"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/propertychain/propertychain-admin/internal/activity"
	"github.com/propertychain/propertychain-admin/internal/config"
	"github.com/propertychain/propertychain-admin/internal/security"
	"github.com/propertychain/propertychain-admin/internal/web/handler"
	"github.com/propertychain/propertychain-admin/internal/web/navigation"
)

const (
	// Path is the path to the dashboard page.
	Path = handler.RootPath + "dashboard"

	// TemplateName is the name of the dashboard template.
	TemplateName = "dashboard"

	// RecentActivityLimit bounds the recent activity widget.
	RecentActivityLimit = 10
)

// Data represents the dashboard counters.
type Data struct {
	AdminCount     int64
	ActiveSessions int64
	RecentActivity []activity.Entry
}

// Service is the dashboard handler service.
type Service struct {
	handler.Service
	cfg *config.Config
	db  *gorm.DB
}

// Handler is the dashboard handler.
var Handler = Service{}

// Init initializes the dashboard handler.
func (s *Service) Init(app *fiber.App, cfg *config.Config, db *gorm.DB, reg *security.Registry) error {
	if app == nil || cfg == nil || db == nil || reg == nil {
		return errors.New(handler.ErrNilACDFatalLogMsg)
	}

	s.cfg = cfg
	s.db = db

	app.Get(Path, s.Get)

	return nil
}

// Get handles the dashboard page rendering.
func (s *Service) Get(c *fiber.Ctx) error {
	sc := security.FromCtx(c)

	nav := navigation.NewContext("Dashboard", "dashboard", "dashboard").
		AddBreadcrumb("Home", Path, false).
		AddBreadcrumb("Dashboard", Path, true)

	data := Data{
		RecentActivity: sc.ActivityLog(),
	}

	if len(data.RecentActivity) > RecentActivityLimit {
		data.RecentActivity = data.RecentActivity[:RecentActivityLimit]
	}

	if result := s.db.Table("admin_users").Where("deleted_at IS NULL").Count(&data.AdminCount); result.Error != nil {
		log.Error().Err(result.Error).Msg("failed to count admin users")
	}

	if result := s.db.Table("session_infos").Where("active = ?", true).Count(&data.ActiveSessions); result.Error != nil {
		log.Error().Err(result.Error).Msg("failed to count active sessions")
	}

	return c.Render(TemplateName, fiber.Map{
		"Title":      s.cfg.Title,
		"Navigation": nav,
		"Menu":       navigation.MenuFor(sc.HasPermission),
		"Admin":      sc.User(),
		"Data":       data,
	}, handler.BaseLayout)
}
