// Package settings renders the platform settings page backed by the
// setting controller.
package settings

import (
	"github.com/gofiber/fiber/v2"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/propertychain/propertychain-admin/internal/config"
	settingctl "github.com/propertychain/propertychain-admin/internal/db/controller/setting"
	"github.com/propertychain/propertychain-admin/internal/security"
	"github.com/propertychain/propertychain-admin/internal/web/handler"
	"github.com/propertychain/propertychain-admin/internal/web/navigation"
)

const (
	// Path is the path to the settings page.
	Path = "/admin/settings"

	// TemplateName is the name of the settings template.
	TemplateName = "settings"
)

// Service is the settings handler service.
type Service struct {
	handler.Service
	cfg *config.Config
	db  *gorm.DB
}

// Handler is the settings handler.
var Handler = Service{}

// Init initializes the settings handler.
func (s *Service) Init(app *fiber.App, cfg *config.Config, db *gorm.DB, reg *security.Registry) error {
	if app == nil || cfg == nil || db == nil || reg == nil {
		return errors.New(handler.ErrNilACDFatalLogMsg)
	}

	s.cfg = cfg
	s.db = db

	app.Route(Path, func(router fiber.Router) {
		router.Get(handler.RouterRootPath, s.Get)
		router.Post(handler.RouterRootPath, s.Post)
	})

	return nil
}

// Get renders the settings page.
func (s *Service) Get(c *fiber.Ctx) error {
	return s.render(c, "")
}

// Post creates or updates one setting.
func (s *Service) Post(c *fiber.Ctx) error {
	var (
		sc    = security.FromCtx(c)
		name  = c.FormValue("name")
		value = c.FormValue("value")
	)

	if name == "" {
		return s.render(c, "Setting name is required")
	}

	_, err := settingctl.Update(s.db, name, []byte(value), sc.User().Email)
	if errors.Is(err, settingctl.ErrSettingNotFound) {
		_, err = settingctl.Create(s.db, name, []byte(value), sc.User().Email)
	}

	if err != nil {
		log.Error().Err(err).Str("name", name).Msg("failed to store setting")

		return s.render(c, "Failed to store setting")
	}

	sc.LogActivity("Update Setting", map[string]any{"name": name})

	return c.Redirect(Path)
}

func (s *Service) render(c *fiber.Ctx, errMsg string) error {
	sc := security.FromCtx(c)

	settings, err := settingctl.GetAll(s.db)
	if err != nil {
		log.Error().Err(err).Msg("failed to load settings")

		return c.Status(fiber.StatusInternalServerError).SendString("Failed to load settings")
	}

	nav := navigation.NewContext("Settings", "settings", "settings").
		AddBreadcrumb("Home", "/dashboard", false).
		AddBreadcrumb("Settings", Path, true)

	return c.Render(TemplateName, fiber.Map{
		"Title":      s.cfg.Title,
		"Navigation": nav,
		"Menu":       navigation.MenuFor(sc.HasPermission),
		"Admin":      sc.User(),
		"Settings":   settings,
		"error":      errMsg,
	}, handler.BaseLayout)
}
