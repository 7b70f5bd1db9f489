package dto

import (
	"time"

	"github.com/service-desk/helpdesk/internal/domain"
)

// RegisterRequest payload.
type RegisterRequest struct {
	Name       string `json:"name" validate:"required,min=2,max=100"`
	Email      string `json:"email" validate:"required,email"`
	Password   string `json:"password" validate:"required,min=6"`
	Department string `json:"department"`
	Phone      string `json:"phone"`
}

// LoginRequest payload.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// UpdateUserStatusRequest payload.
type UpdateUserStatusRequest struct {
	Status domain.UserStatus `json:"status" validate:"required"`
}

// UpdateUserRoleRequest payload.
type UpdateUserRoleRequest struct {
	Role domain.UserRole `json:"role" validate:"required"`
}

// UserResponse is an account without credential material.
type UserResponse struct {
	ID         string            `json:"id"`
	Name       string            `json:"name"`
	Email      string            `json:"email"`
	Role       domain.UserRole   `json:"role"`
	Status     domain.UserStatus `json:"status"`
	Department string            `json:"department,omitempty"`
	Phone      string            `json:"phone,omitempty"`
	CreatedAt  time.Time         `json:"created_at"`
	UpdatedAt  time.Time         `json:"updated_at"`
	LastLogin  *time.Time        `json:"last_login,omitempty"`
}

// LoginResponse carries the issued token and its subject.
type LoginResponse struct {
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expires_at"`
	User      UserResponse `json:"user"`
}

// NewUserResponse maps an account to its public shape.
func NewUserResponse(user *domain.User) UserResponse {
	return UserResponse{
		ID:         user.ID,
		Name:       user.Name,
		Email:      user.Email,
		Role:       user.Role,
		Status:     user.Status,
		Department: user.Department,
		Phone:      user.Phone,
		CreatedAt:  user.CreatedAt,
		UpdatedAt:  user.UpdatedAt,
		LastLogin:  user.LastLogin,
	}
}
