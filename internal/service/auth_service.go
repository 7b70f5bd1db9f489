package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/service-desk/helpdesk/internal/auth"
	"github.com/service-desk/helpdesk/internal/config"
	"github.com/service-desk/helpdesk/internal/domain"
	"github.com/service-desk/helpdesk/internal/repository"
	"github.com/service-desk/helpdesk/pkg/util"
)

// AuthService is the authentication collaborator. It owns accounts and
// sessions; the lifecycle engine only ever sees the derived actor.
type AuthService struct {
	users      repository.UserRepository
	tokenMgr   *auth.TokenManager
	bcryptCost int
}

// RegisterInput describes a signup payload.
type RegisterInput struct {
	Name       string
	Email      string
	Password   string
	Department string
	Phone      string
}

// NewAuthService builds the service.
func NewAuthService(cfg config.Config, users repository.UserRepository) *AuthService {
	return &AuthService{
		users:      users,
		tokenMgr:   auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.AccessTokenTTLMinutes),
		bcryptCost: cfg.Auth.BcryptCost,
	}
}

// TokenManager exposes the token manager for the HTTP middleware.
func (s *AuthService) TokenManager() *auth.TokenManager {
	return s.tokenMgr
}

// Register creates a new account. New signups always start as USER with
// PENDING status awaiting admin approval.
func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*domain.User, error) {
	name := strings.TrimSpace(input.Name)
	email := strings.ToLower(strings.TrimSpace(input.Email))
	if name == "" || email == "" || input.Password == "" {
		return nil, util.NewValidationError("name, email and password are required", nil)
	}
	if len(input.Password) < 6 {
		return nil, util.NewValidationError("password must be at least 6 characters", nil)
	}
	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		return nil, util.NewValidationError("email already registered", nil)
	} else if !util.HasCode(err, util.CodeNotFound) {
		return nil, err
	}

	hash, err := auth.HashPassword(input.Password, s.bcryptCost)
	if err != nil {
		return nil, util.NewInternalError(err)
	}

	now := time.Now()
	user := &domain.User{
		ID:           uuid.NewString(),
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Role:         domain.RoleUser,
		Status:       domain.UserStatusPending,
		Department:   strings.TrimSpace(input.Department),
		Phone:        strings.TrimSpace(input.Phone),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.users.Insert(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Login authenticates an account and issues a token. Non-active accounts
// are refused with a status-specific message.
func (s *AuthService) Login(ctx context.Context, email, password string) (*domain.User, string, time.Time, error) {
	user, err := s.users.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if util.HasCode(err, util.CodeNotFound) {
			return nil, "", time.Time{}, util.NewUnauthenticated("invalid email or password")
		}
		return nil, "", time.Time{}, err
	}
	if err := auth.ComparePassword(user.PasswordHash, password); err != nil {
		return nil, "", time.Time{}, util.NewUnauthenticated("invalid email or password")
	}

	switch user.Status {
	case domain.UserStatusPending:
		return nil, "", time.Time{}, util.NewForbidden("account is awaiting administrator approval")
	case domain.UserStatusInactive:
		return nil, "", time.Time{}, util.NewForbidden("account is inactive")
	case domain.UserStatusBlocked:
		return nil, "", time.Time{}, util.NewForbidden("account is blocked")
	}

	now := time.Now()
	user.LastLogin = &now
	user.UpdatedAt = now
	if err := s.users.Update(ctx, user); err != nil {
		return nil, "", time.Time{}, err
	}

	token, expiresAt, err := s.tokenMgr.GenerateToken(user)
	if err != nil {
		return nil, "", time.Time{}, util.NewInternalError(err)
	}
	return user, token, expiresAt, nil
}

// ListUsers returns all accounts; requires the manage-users capability.
func (s *AuthService) ListUsers(ctx context.Context, actor *domain.Actor) ([]domain.User, error) {
	if actor == nil {
		return nil, util.NewUnauthenticated("authentication required")
	}
	if !domain.PermissionsFor(actor.Role).CanManageUsers {
		return nil, util.NewForbidden("not allowed to manage users")
	}
	return s.users.Load(ctx)
}

// ListTechnicians returns active technicians for assignment pickers.
// Available to any staff role.
func (s *AuthService) ListTechnicians(ctx context.Context, actor *domain.Actor) ([]domain.User, error) {
	if actor == nil {
		return nil, util.NewUnauthenticated("authentication required")
	}
	if actor.Role == domain.RoleUser {
		return nil, util.NewForbidden("not allowed to list technicians")
	}
	users, err := s.users.Load(ctx)
	if err != nil {
		return nil, err
	}
	technicians := make([]domain.User, 0, len(users))
	for _, user := range users {
		if user.Role == domain.RoleTechnician && user.Status == domain.UserStatusActive {
			technicians = append(technicians, user)
		}
	}
	return technicians, nil
}

// UpdateUserStatus changes an account status; admin only.
func (s *AuthService) UpdateUserStatus(ctx context.Context, actor *domain.Actor, userID string, status domain.UserStatus) (*domain.User, error) {
	user, err := s.manageGate(ctx, actor, userID)
	if err != nil {
		return nil, err
	}
	switch status {
	case domain.UserStatusPending, domain.UserStatusActive, domain.UserStatusInactive, domain.UserStatusBlocked:
	default:
		return nil, util.NewValidationError("invalid user status", nil)
	}
	user.Status = status
	user.UpdatedAt = time.Now()
	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// UpdateUserRole changes an account role; admin only.
func (s *AuthService) UpdateUserRole(ctx context.Context, actor *domain.Actor, userID string, role domain.UserRole) (*domain.User, error) {
	user, err := s.manageGate(ctx, actor, userID)
	if err != nil {
		return nil, err
	}
	if !role.Valid() {
		return nil, util.NewValidationError("invalid user role", nil)
	}
	user.Role = role
	user.UpdatedAt = time.Now()
	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *AuthService) manageGate(ctx context.Context, actor *domain.Actor, userID string) (*domain.User, error) {
	if actor == nil {
		return nil, util.NewUnauthenticated("authentication required")
	}
	if !domain.PermissionsFor(actor.Role).CanManageUsers {
		return nil, util.NewForbidden("not allowed to manage users")
	}
	return s.users.GetByID(ctx, userID)
}

// Seed inserts a default admin and sample accounts on first run so the
// service is usable out of the box.
func (s *AuthService) Seed(ctx context.Context) error {
	existing, err := s.users.Load(ctx)
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		return nil
	}

	now := time.Now()
	seed := []struct {
		name, email, password, department string
		role                              domain.UserRole
	}{
		{"Administrator", "admin@servicedesk.local", "admin123", "IT", domain.RoleAdmin},
		{"Support Technician", "technician@servicedesk.local", "tech123", "IT", domain.RoleTechnician},
		{"IT Supervisor", "supervisor@servicedesk.local", "super123", "IT", domain.RoleSupervisor},
		{"Joao Silva", "joao@servicedesk.local", "user123", "Sales", domain.RoleUser},
	}

	users := make([]domain.User, 0, len(seed))
	for _, entry := range seed {
		hash, err := auth.HashPassword(entry.password, s.bcryptCost)
		if err != nil {
			return util.NewInternalError(err)
		}
		users = append(users, domain.User{
			ID:           uuid.NewString(),
			Name:         entry.name,
			Email:        entry.email,
			PasswordHash: hash,
			Role:         entry.role,
			Status:       domain.UserStatusActive,
			Department:   entry.department,
			CreatedAt:    now,
			UpdatedAt:    now,
		})
	}
	return s.users.ReplaceAll(ctx, users)
}
