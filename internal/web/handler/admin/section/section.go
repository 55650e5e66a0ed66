// Package section serves the platform admin areas (properties, financial,
// documents, support, compliance). The pages share one template; the data
// behind them lives in the main PropertyChain platform, which this admin
// service reaches read-only. Access to each area is enforced by the guard
// middleware through the route access rules.
package section

import (
	"github.com/gofiber/fiber/v2"
	"github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/propertychain/propertychain-admin/internal/config"
	"github.com/propertychain/propertychain-admin/internal/security"
	"github.com/propertychain/propertychain-admin/internal/web/handler"
	"github.com/propertychain/propertychain-admin/internal/web/navigation"
)

// TemplateName is the shared section template.
const TemplateName = "section"

// page describes one admin area served by this handler.
type page struct {
	Path        string
	Title       string
	Section     string
	Description string
}

var pages = []page{
	{
		Path:        "/admin/properties",
		Title:       "Properties",
		Section:     "properties",
		Description: "Tokenized property listings, valuations and offering status.",
	},
	{
		Path:        "/admin/financial",
		Title:       "Financial",
		Section:     "financial",
		Description: "Investment flows, payouts and token transaction records.",
	},
	{
		Path:        "/admin/documents",
		Title:       "Documents",
		Section:     "documents",
		Description: "Offering documents, contracts and investor disclosures.",
	},
	{
		Path:        "/admin/support",
		Title:       "Support",
		Section:     "support",
		Description: "Investor support tickets and their resolution state.",
	},
	{
		Path:        "/admin/compliance",
		Title:       "Compliance",
		Section:     "compliance",
		Description: "KYC verification queue and regulatory reporting.",
	},
}

// Service is the section handler service.
type Service struct {
	handler.Service
	cfg *config.Config
}

// Handler is the section handler.
var Handler = Service{}

// Init initializes the section handler and registers every area route.
func (s *Service) Init(app *fiber.App, cfg *config.Config, db *gorm.DB, reg *security.Registry) error {
	if app == nil || cfg == nil || db == nil || reg == nil {
		return errors.New(handler.ErrNilACDFatalLogMsg)
	}

	s.cfg = cfg

	for _, p := range pages {
		app.Get(p.Path, s.handlerFor(p))
	}

	return nil
}

func (s *Service) handlerFor(p page) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sc := security.FromCtx(c)

		nav := navigation.NewContext(p.Title, p.Section, p.Section).
			AddBreadcrumb("Home", "/dashboard", false).
			AddBreadcrumb(p.Title, p.Path, true)

		return c.Render(TemplateName, fiber.Map{
			"Title":       s.cfg.Title,
			"Navigation":  nav,
			"Menu":        navigation.MenuFor(sc.HasPermission),
			"Admin":       sc.User(),
			"Section":     p.Title,
			"Description": p.Description,
		}, handler.BaseLayout)
	}
}
