package auth

import (
	"log"

	"github.com/gofiber/fiber/v2"

	"github.com/i474232898/weather-premium/internal/account"
)

type identityKey struct{}

// Middleware resolves the caller from the Authorization header. A missing or
// invalid token leaves the caller anonymous; handlers decide what that means.
func (r *Resolver) Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := account.Anonymous
		if header := c.Get(fiber.HeaderAuthorization); header != "" {
			resolved, err := r.Resolve(extractToken(header))
			if err != nil {
				log.Printf("DEBUG: auth: ignoring bearer token: %v", err)
			} else {
				id = resolved
			}
		}
		c.Locals(identityKey{}, id)
		return c.Next()
	}
}

// IdentityFrom returns the caller stored by Middleware.
func IdentityFrom(c *fiber.Ctx) account.Identity {
	if id, ok := c.Locals(identityKey{}).(account.Identity); ok {
		return id
	}
	return account.Anonymous
}
