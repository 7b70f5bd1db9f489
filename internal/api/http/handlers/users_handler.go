package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/service-desk/helpdesk/internal/api/dto"
	"github.com/service-desk/helpdesk/internal/auth"
	"github.com/service-desk/helpdesk/internal/domain"
	"github.com/service-desk/helpdesk/internal/service"
	"github.com/service-desk/helpdesk/pkg/util"
)

// UsersHandler exposes account endpoints.
type UsersHandler struct {
	service *service.AuthService
}

// NewUsersHandler constructs handler.
func NewUsersHandler(authService *service.AuthService) *UsersHandler {
	return &UsersHandler{service: authService}
}

// Register POST /auth/register.
func (h *UsersHandler) Register(c *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return util.NewValidationError("invalid payload", nil)
	}
	if err := dto.Validate(req); err != nil {
		return err
	}

	user, err := h.service.Register(c.UserContext(), service.RegisterInput{
		Name:       req.Name,
		Email:      req.Email,
		Password:   req.Password,
		Department: req.Department,
		Phone:      req.Phone,
	})
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": dto.NewUserResponse(user)})
}

// Login POST /auth/login.
func (h *UsersHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return util.NewValidationError("invalid payload", nil)
	}
	if err := dto.Validate(req); err != nil {
		return err
	}

	user, token, expiresAt, err := h.service.Login(c.UserContext(), req.Email, req.Password)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.LoginResponse{
		Token:     token,
		ExpiresAt: expiresAt,
		User:      dto.NewUserResponse(user),
	}})
}

// Me GET /auth/me.
func (h *UsersHandler) Me(c *fiber.Ctx) error {
	actor, ok := auth.ActorFromContext(c)
	if !ok {
		return util.NewUnauthenticated("authentication required")
	}
	return c.JSON(fiber.Map{"data": fiber.Map{
		"id":          actor.ID,
		"name":        actor.Name,
		"role":        actor.Role,
		"permissions": domain.PermissionsFor(actor.Role),
	}})
}

// List GET /users.
func (h *UsersHandler) List(c *fiber.Ctx) error {
	actor, _ := auth.ActorFromContext(c)
	users, err := h.service.ListUsers(c.UserContext(), actor)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": userResponses(users)})
}

// ListTechnicians GET /users/technicians.
func (h *UsersHandler) ListTechnicians(c *fiber.Ctx) error {
	actor, _ := auth.ActorFromContext(c)
	users, err := h.service.ListTechnicians(c.UserContext(), actor)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": userResponses(users)})
}

// UpdateStatus PATCH /users/:id/status.
func (h *UsersHandler) UpdateStatus(c *fiber.Ctx) error {
	actor, _ := auth.ActorFromContext(c)
	var req dto.UpdateUserStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return util.NewValidationError("invalid payload", nil)
	}
	if err := dto.Validate(req); err != nil {
		return err
	}

	user, err := h.service.UpdateUserStatus(c.UserContext(), actor, c.Params("id"), req.Status)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewUserResponse(user)})
}

// UpdateRole PATCH /users/:id/role.
func (h *UsersHandler) UpdateRole(c *fiber.Ctx) error {
	actor, _ := auth.ActorFromContext(c)
	var req dto.UpdateUserRoleRequest
	if err := c.BodyParser(&req); err != nil {
		return util.NewValidationError("invalid payload", nil)
	}
	if err := dto.Validate(req); err != nil {
		return err
	}

	user, err := h.service.UpdateUserRole(c.UserContext(), actor, c.Params("id"), req.Role)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewUserResponse(user)})
}

func userResponses(users []domain.User) []dto.UserResponse {
	items := make([]dto.UserResponse, 0, len(users))
	for i := range users {
		items = append(items, dto.NewUserResponse(&users[i]))
	}
	return items
}
