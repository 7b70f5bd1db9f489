package auth

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/service-desk/helpdesk/internal/domain"
	"github.com/service-desk/helpdesk/internal/repository"
	"github.com/service-desk/helpdesk/pkg/util"
)

const actorKey = "auth_actor"

// Middleware validates bearer tokens and resolves the acting identity. The
// resolved actor is passed explicitly into every engine call downstream;
// nothing reads a global session.
type Middleware struct {
	tokens *TokenManager
	users  repository.UserRepository
}

// NewMiddleware constructs the middleware.
func NewMiddleware(tokens *TokenManager, users repository.UserRepository) *Middleware {
	return &Middleware{tokens: tokens, users: users}
}

// Handle enforces authentication for protected routes.
func (m *Middleware) Handle(c *fiber.Ctx) error {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return util.NewUnauthenticated("missing authorization header")
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return util.NewUnauthenticated("invalid authorization header")
	}

	claims, err := m.tokens.ParseToken(parts[1])
	if err != nil {
		return util.NewUnauthenticated("invalid token")
	}

	user, err := m.users.GetByID(c.Context(), claims.UserID)
	if err != nil {
		if util.HasCode(err, util.CodeNotFound) {
			return util.NewUnauthenticated("account not found")
		}
		return util.MapError(err)
	}
	if user.Status != domain.UserStatusActive {
		return util.NewUnauthenticated("account is not active")
	}

	c.Locals(actorKey, domain.ActorFromUser(user))
	return c.Next()
}

// ActorFromContext retrieves the authenticated actor.
func ActorFromContext(c *fiber.Ctx) (*domain.Actor, bool) {
	val := c.Locals(actorKey)
	if val == nil {
		return nil, false
	}
	actor, ok := val.(*domain.Actor)
	return actor, ok
}
