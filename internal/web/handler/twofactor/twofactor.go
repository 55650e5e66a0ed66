// Package twofactor renders and processes the second-factor verification
// prompt that gates two-factor-enabled accounts after login.
package twofactor

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/propertychain/propertychain-admin/internal/config"
	"github.com/propertychain/propertychain-admin/internal/security"
	"github.com/propertychain/propertychain-admin/internal/web/handler"
)

const (
	// Path is the path to the two-factor verification page.
	Path = handler.RootPath + "twofactor"

	// TemplateName is the name of the verification template.
	TemplateName = "twofactor"

	incorrectCodeMsg = "Verification failed: incorrect code"
)

// Form is the verification form submission.
type Form struct {
	Code string `form:"code" validate:"required,len=6,numeric"`
}

// Service is the two-factor handler service.
type Service struct {
	handler.Service
	cfg      *config.Config
	validate *validator.Validate
}

// Handler is the two-factor handler.
var Handler = Service{}

// Init initializes the two-factor handler.
func (s *Service) Init(app *fiber.App, cfg *config.Config, db *gorm.DB, reg *security.Registry) error {
	if app == nil || cfg == nil || db == nil || reg == nil {
		return errors.New(handler.ErrNilACDFatalLogMsg)
	}

	s.cfg = cfg
	s.validate = validator.New()

	app.Route(Path, func(router fiber.Router) {
		router.Get(handler.RouterRootPath, s.Get)
		router.Post(handler.RouterRootPath, s.Post)
	})

	return nil
}

// Get handles the verification prompt rendering.
func (s *Service) Get(c *fiber.Ctx) error {
	sc := security.FromCtx(c)

	// already verified accounts have nothing to do here
	if !sc.RequireTwoFactor() {
		return c.Redirect("/dashboard")
	}

	return c.Render(TemplateName, fiber.Map{
		"Title": s.cfg.Title,
		"Email": sc.User().Email,
	})
}

// Post handles a submitted code. A wrong code re-renders the prompt with an
// explicit error; there is no attempt limit, every failure lands in the
// audit trail as high risk.
func (s *Service) Post(c *fiber.Ctx) error {
	sc := security.FromCtx(c)

	if !sc.RequireTwoFactor() {
		return c.Redirect("/dashboard")
	}

	form := new(Form)
	if err := c.BodyParser(form); err != nil {
		return s.renderError(c, sc, incorrectCodeMsg)
	}

	if err := s.validate.Struct(form); err != nil {
		// malformed input still counts as a failed attempt
		sc.VerifyTwoFactor("")

		return s.renderError(c, sc, incorrectCodeMsg)
	}

	if !sc.VerifyTwoFactor(form.Code) {
		return s.renderError(c, sc, incorrectCodeMsg)
	}

	return c.Redirect("/dashboard")
}

func (s *Service) renderError(c *fiber.Ctx, sc *security.Context, msg string) error {
	return c.Render(TemplateName, fiber.Map{
		"Title": s.cfg.Title,
		"Email": sc.User().Email,
		"error": msg,
	})
}
