package security

import (
	"github.com/gofiber/fiber/v2"
)

// localsKey is where the guard middleware stores the session's context.
const localsKey = "securityContext"

// Attach stores the context in the request locals for handlers downstream
// of the guard middleware.
func Attach(c *fiber.Ctx, sc *Context) {
	c.Locals(localsKey, sc)
}

// FromCtx returns the security context provisioned by the guard middleware.
// Calling it from a handler that is not behind the middleware is a
// composition mistake and panics immediately rather than failing silently.
func FromCtx(c *fiber.Ctx) *Context {
	sc, ok := c.Locals(localsKey).(*Context)
	if !ok || sc == nil {
		panic("security: FromCtx called outside the admin guard middleware")
	}

	return sc
}
