package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/service-desk/helpdesk/internal/api/http/handlers"
	"github.com/service-desk/helpdesk/internal/auth"
	"github.com/service-desk/helpdesk/internal/domain"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Users          *handlers.UsersHandler
	Tickets        *handlers.TicketsHandler
	AuthMiddleware *auth.Middleware
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	authGroup := app.Group("/auth")
	authGroup.Post("/register", cfg.Users.Register)
	authGroup.Post("/login", cfg.Users.Login)
	authGroup.Get("/me", cfg.AuthMiddleware.Handle, cfg.Users.Me)

	tickets := app.Group("/tickets", cfg.AuthMiddleware.Handle)
	tickets.Post("", cfg.Tickets.Create)
	tickets.Get("", cfg.Tickets.List)
	tickets.Get("/:id", cfg.Tickets.Get)
	tickets.Patch("/:id", cfg.Tickets.Update)
	tickets.Delete("/:id", cfg.Tickets.Delete)
	tickets.Post("/:id/approve", cfg.Tickets.Approve)
	tickets.Post("/:id/reject", cfg.Tickets.Reject)
	tickets.Post("/:id/assign", cfg.Tickets.Assign)
	tickets.Post("/:id/take", cfg.Tickets.TakeOwnership)
	tickets.Post("/:id/comments", cfg.Tickets.AddComment)
	tickets.Get("/:id/comments", cfg.Tickets.ListComments)
	tickets.Get("/:id/history", cfg.Tickets.ListHistory)

	users := app.Group("/users", cfg.AuthMiddleware.Handle)
	users.Get("/technicians", cfg.Users.ListTechnicians)

	manage := users.Group("", auth.RequirePermission(func(p domain.Permissions) bool {
		return p.CanManageUsers
	}))
	manage.Get("", cfg.Users.List)
	manage.Patch("/:id/status", cfg.Users.UpdateStatus)
	manage.Patch("/:id/role", cfg.Users.UpdateRole)
}
