// Package guard provides the admin security middleware. Behind the
// authentication middleware it loads the session's security context, counts
// the request as qualifying activity for the inactivity guard, enforces the
// two-factor gate and checks route access against the rbac tables. Denied
// requests get the full access denied page and never reach their handler.
package guard

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/propertychain/propertychain-admin/internal/security"
	"github.com/propertychain/propertychain-admin/internal/sessionguard"
	"github.com/propertychain/propertychain-admin/internal/web/handler"
	"github.com/propertychain/propertychain-admin/internal/web/handler/login"
	"github.com/propertychain/propertychain-admin/internal/web/handler/sessionstatus"
	"github.com/propertychain/propertychain-admin/internal/web/handler/twofactor"
)

// New creates the security middleware bound to the session registry.
func New(reg *security.Registry) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var (
			path         = c.Path()
			originalURL  = strings.ToLower(c.OriginalURL())
			isStatusPoll = path == sessionstatus.Path
			isTwoFactor  = strings.HasPrefix(originalURL, twofactor.Path)
		)

		// public surfaces are handled by the auth middleware
		if strings.HasPrefix(originalURL, "/static") ||
			strings.HasPrefix(originalURL, login.Path) ||
			strings.HasPrefix(originalURL, "/logout") {
			return c.Next()
		}

		sessionID := c.Cookies("session")
		if sessionID == "" {
			return c.Redirect(login.Path)
		}

		sc, ok := reg.Get(sessionID)
		if !ok {
			// session data without a live security context (expired, or the
			// service restarted); silent redirect, no error banner
			log.Debug().Str("path", path).Msg("no security context for session")

			return c.Redirect(login.Path)
		}

		security.Attach(c, sc)

		// The expiring banner poll must observe the deadlines without
		// moving them; every other request is qualifying activity and
		// reschedules both deadlines together.
		if !isStatusPoll {
			sc.Guard().ResetOnActivity()
		}

		if sc.Guard().State() == sessionguard.Expired {
			return c.Redirect(login.Path)
		}

		// two-factor gate: withhold every page except the verification
		// prompt and the status poll until the code checks out
		if sc.RequireTwoFactor() && !isTwoFactor && !isStatusPoll {
			return c.Redirect(twofactor.Path)
		}

		if isTwoFactor || isStatusPoll {
			return c.Next()
		}

		if !sc.CheckRouteAccess(path) {
			log.Warn().
				Uint64("admin_id", sc.User().ID).
				Str("role", string(sc.Role())).
				Str("path", path).
				Msg("admin lacks route permission")

			sc.LogActivity("Access Denied", map[string]any{"route": path})

			return c.Status(fiber.StatusForbidden).Render("access_denied", fiber.Map{
				"Title": "Access Denied",
				"Path":  path,
			}, handler.BaseLayout)
		}

		return c.Next()
	}
}
