// Package activity renders the audit trail page of the caller's session.
package activity

import (
	"github.com/gofiber/fiber/v2"
	"github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/propertychain/propertychain-admin/internal/config"
	"github.com/propertychain/propertychain-admin/internal/security"
	"github.com/propertychain/propertychain-admin/internal/web/handler"
	"github.com/propertychain/propertychain-admin/internal/web/navigation"
)

const (
	// Path is the path to the activity page.
	Path = "/admin/activity"

	// TemplateName is the name of the activity template.
	TemplateName = "activity"
)

// Service is the activity handler service.
type Service struct {
	handler.Service
	cfg *config.Config
}

// Handler is the activity handler.
var Handler = Service{}

// Init initializes the activity handler.
func (s *Service) Init(app *fiber.App, cfg *config.Config, db *gorm.DB, reg *security.Registry) error {
	if app == nil || cfg == nil || db == nil || reg == nil {
		return errors.New(handler.ErrNilACDFatalLogMsg)
	}

	s.cfg = cfg

	app.Get(Path, s.Get)

	return nil
}

// Get renders the session's audit trail, most recent first.
func (s *Service) Get(c *fiber.Ctx) error {
	sc := security.FromCtx(c)

	nav := navigation.NewContext("Activity", "activity", "activity").
		AddBreadcrumb("Home", "/dashboard", false).
		AddBreadcrumb("Activity", Path, true)

	return c.Render(TemplateName, fiber.Map{
		"Title":      s.cfg.Title,
		"Navigation": nav,
		"Menu":       navigation.MenuFor(sc.HasPermission),
		"Admin":      sc.User(),
		"Entries":    sc.ActivityLog(),
	}, handler.BaseLayout)
}
