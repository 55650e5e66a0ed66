// Package users renders the admin account list and, for holders of
// users.manage, account creation and deactivation.
package users

import (
	"strconv"

	"github.com/go-playground/validator/v10"
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
)

const (
	// Path is the path to the users page.
	Path = "/admin/users"

	// TemplateName is the name of the users template.
	TemplateName = "users"
)

// CreateForm is the account creation form submission.
type CreateForm struct {
	Email       string `form:"email"        validate:"required,email"`
	DisplayName string `form:"display_name" validate:"required,max=100"`
	Password    string `form:"password"     validate:"required,min=12"`
	Role        string `form:"role"         validate:"required"`
	Department  string `form:"department"   validate:"max=100"`
}

// Service is the users handler service.
type Service struct {
	handler.Service
	cfg      *config.Config
	db       *gorm.DB
	validate *validator.Validate
}

// Handler is the users handler.
var Handler = Service{}

// Init initializes the users handler.
func (s *Service) Init(app *fiber.App, cfg *config.Config, db *gorm.DB, reg *security.Registry) error {
	if app == nil || cfg == nil || db == nil || reg == nil {
		return errors.New(handler.ErrNilACDFatalLogMsg)
	}

	s.cfg = cfg
	s.db = db
	s.validate = validator.New()

	app.Route(Path, func(router fiber.Router) {
		router.Get(handler.RouterRootPath, s.Get)
		router.Post("/create", s.Create)
		router.Post("/deactivate", s.Deactivate)
	})

	return nil
}

// Get renders the admin account list.
func (s *Service) Get(c *fiber.Ctx) error {
	return s.render(c, "")
}

// Create adds an admin account. Requires users.manage.
func (s *Service) Create(c *fiber.Ctx) error {
	sc := security.FromCtx(c)

	if !sc.HasPermission(rbac.PermUsersManage) {
		return s.denied(c)
	}

	form := new(CreateForm)
	if err := c.BodyParser(form); err != nil {
		return s.render(c, "Invalid form submission")
	}

	if err := s.validate.Struct(form); err != nil {
		return s.render(c, "Please fill in all required fields (password at least 12 characters)")
	}

	if !rbac.Role(form.Role).Valid() {
		return s.render(c, "Unknown role")
	}

	admin := models.AdminUser{
		Active:      true,
		Email:       form.Email,
		Password:    models.HashPassword(form.Password),
		DisplayName: form.DisplayName,
		Role:        form.Role,
		Department:  form.Department,
	}

	if result := s.db.Create(&admin); result.Error != nil {
		log.Error().Err(result.Error).Str("email", form.Email).Msg("failed to create admin account")

		return s.render(c, "Failed to create account, the email may already be in use")
	}

	sc.LogActivity("Create User", map[string]any{
		"email": form.Email,
		"role":  form.Role,
	})

	return c.Redirect(Path)
}

// Deactivate disables an admin account. Requires users.manage.
func (s *Service) Deactivate(c *fiber.Ctx) error {
	sc := security.FromCtx(c)

	if !sc.HasPermission(rbac.PermUsersManage) {
		return s.denied(c)
	}

	target, err := strconv.ParseUint(c.FormValue("id"), 10, 64)
	if err != nil || target == 0 {
		return c.Redirect(Path)
	}

	if target == sc.User().ID {
		return s.render(c, "You cannot deactivate your own account")
	}

	if result := s.db.Model(&models.AdminUser{}).
		Where("id = ?", target).
		Update("active", false); result.Error != nil {
		log.Error().Err(result.Error).Uint64("id", target).Msg("failed to deactivate admin account")

		return s.render(c, "Failed to deactivate account")
	}

	sc.LogActivity("Deactivate User", map[string]any{
		"target_id": target,
		"risk":      "high",
	})

	return c.Redirect(Path)
}

func (s *Service) render(c *fiber.Ctx, errMsg string) error {
	sc := security.FromCtx(c)

	var admins []models.AdminUser
	if result := s.db.Order("email").Find(&admins); result.Error != nil {
		log.Error().Err(result.Error).Msg("failed to load admin accounts")

		return c.Status(fiber.StatusInternalServerError).SendString("Failed to load accounts")
	}

	nav := navigation.NewContext("Users", "users", "users").
		AddBreadcrumb("Home", "/dashboard", false).
		AddBreadcrumb("Users", Path, true)

	return c.Render(TemplateName, fiber.Map{
		"Title":      s.cfg.Title,
		"Navigation": nav,
		"Menu":       navigation.MenuFor(sc.HasPermission),
		"Admin":      sc.User(),
		"Admins":     admins,
		"Roles":      rbac.Roles(),
		"CanManage":  sc.HasPermission(rbac.PermUsersManage),
		"error":      errMsg,
	}, handler.BaseLayout)
}

func (s *Service) denied(c *fiber.Ctx) error {
	return c.Status(fiber.StatusForbidden).Render("access_denied", fiber.Map{
		"Title": "Access Denied",
		"Path":  Path,
	}, handler.BaseLayout)
}
