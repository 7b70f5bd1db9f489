package auth

import (
	"github.com/gofiber/fiber/v2"

	"github.com/service-desk/helpdesk/internal/domain"
	"github.com/service-desk/helpdesk/pkg/util"
)

// RequireRole ensures the actor holds one of the allowed roles.
func RequireRole(allowed ...domain.UserRole) fiber.Handler {
	allowedSet := make(map[domain.UserRole]struct{}, len(allowed))
	for _, role := range allowed {
		allowedSet[role] = struct{}{}
	}

	return func(c *fiber.Ctx) error {
		actor, ok := ActorFromContext(c)
		if !ok {
			return util.NewUnauthenticated("authentication required")
		}
		if len(allowedSet) == 0 {
			return c.Next()
		}
		if _, exists := allowedSet[actor.Role]; !exists {
			return util.NewForbidden("insufficient role")
		}
		return c.Next()
	}
}

// RequirePermission gates a route on a capability from the permission
// catalog.
func RequirePermission(check func(domain.Permissions) bool) fiber.Handler {
	return func(c *fiber.Ctx) error {
		actor, ok := ActorFromContext(c)
		if !ok {
			return util.NewUnauthenticated("authentication required")
		}
		if !check(domain.PermissionsFor(actor.Role)) {
			return util.NewForbidden("missing permission")
		}
		return c.Next()
	}
}
