// Package sessionstatus exposes the inactivity state of the caller's own
// session as JSON. The front end polls it to raise the session expiring
// banner; the guard middleware excludes this path from qualifying activity,
// so polling never postpones the deadlines it reports on.
package sessionstatus

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/propertychain/propertychain-admin/internal/config"
	"github.com/propertychain/propertychain-admin/internal/security"
	"github.com/propertychain/propertychain-admin/internal/sessionguard"
	"github.com/propertychain/propertychain-admin/internal/web/handler"
)

// Path is the path to the session status endpoint.
const Path = "/session/status"

// Status is the JSON response body.
type Status struct {
	State     string    `json:"state"`
	Warned    bool      `json:"warned"`
	WarnAt    time.Time `json:"warn_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Service is the session status handler service.
type Service struct {
	handler.Service
}

// Handler is the session status handler.
var Handler = Service{}

// Init initializes the session status handler.
func (s *Service) Init(app *fiber.App, cfg *config.Config, db *gorm.DB, reg *security.Registry) error {
	if app == nil || cfg == nil || db == nil || reg == nil {
		return errors.New(handler.ErrNilACDFatalLogMsg)
	}

	app.Get(Path, s.Get)

	return nil
}

// Get reports the caller's session state and deadlines.
func (s *Service) Get(c *fiber.Ctx) error {
	var (
		sc               = security.FromCtx(c)
		state            = sc.Guard().State()
		warnAt, expireAt = sc.Guard().Deadlines()
	)

	return c.JSON(Status{
		State:     state.String(),
		Warned:    state == sessionguard.Warned,
		WarnAt:    warnAt,
		ExpiresAt: expireAt,
	})
}
