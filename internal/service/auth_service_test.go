package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/service-desk/helpdesk/internal/config"
	"github.com/service-desk/helpdesk/internal/domain"
	"github.com/service-desk/helpdesk/internal/persistence"
	"github.com/service-desk/helpdesk/internal/repository"
	"github.com/service-desk/helpdesk/pkg/util"
)

func newAuthFixture(t *testing.T) (*AuthService, repository.UserRepository) {
	t.Helper()
	users := repository.NewUserRepository(persistence.NewMemoryStore(), 4)
	cfg := config.Config{
		Auth: config.AuthConfig{
			JWTSecret:             "test-secret",
			AccessTokenTTLMinutes: 60,
			BcryptCost:            4,
		},
	}
	return NewAuthService(cfg, users), users
}

func activateUser(t *testing.T, users repository.UserRepository, email string) *domain.User {
	t.Helper()
	ctx := context.Background()
	user, err := users.GetByEmail(ctx, email)
	require.NoError(t, err)
	user.Status = domain.UserStatusActive
	require.NoError(t, users.Update(ctx, user))
	return user
}

func TestRegisterCreatesPendingRequester(t *testing.T) {
	svc, _ := newAuthFixture(t)

	user, err := svc.Register(context.Background(), RegisterInput{
		Name:       "Joao Silva",
		Email:      "Joao@Example.com",
		Password:   "senha123",
		Department: "Sales",
	})
	require.NoError(t, err)
	assert.Equal(t, domain.RoleUser, user.Role)
	assert.Equal(t, domain.UserStatusPending, user.Status)
	assert.Equal(t, "joao@example.com", user.Email)
	assert.NotEqual(t, "senha123", user.PasswordHash)
}

func TestRegisterRejectsDuplicateEmail(t *testing.T) {
	svc, _ := newAuthFixture(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, RegisterInput{Name: "Primeira Conta", Email: "dup@example.com", Password: "senha123"})
	require.NoError(t, err)

	_, err = svc.Register(ctx, RegisterInput{Name: "Segunda Conta", Email: "DUP@example.com", Password: "senha456"})
	assert.Equal(t, util.CodeValidation, util.CodeOf(err))
}

func TestLoginGatesOnAccountStatus(t *testing.T) {
	svc, users := newAuthFixture(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, RegisterInput{Name: "Joao Silva", Email: "joao@example.com", Password: "senha123"})
	require.NoError(t, err)

	// Pending accounts cannot log in.
	_, _, _, err = svc.Login(ctx, "joao@example.com", "senha123")
	assert.Equal(t, util.CodeForbidden, util.CodeOf(err))

	activateUser(t, users, "joao@example.com")

	user, token, expiresAt, err := svc.Login(ctx, "joao@example.com", "senha123")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.False(t, expiresAt.IsZero())
	assert.NotNil(t, user.LastLogin)

	// Wrong password and unknown email read identically.
	_, _, _, err = svc.Login(ctx, "joao@example.com", "errada")
	assert.Equal(t, util.CodeUnauthenticated, util.CodeOf(err))
	_, _, _, err = svc.Login(ctx, "ninguem@example.com", "senha123")
	assert.Equal(t, util.CodeUnauthenticated, util.CodeOf(err))

	// Blocked accounts are refused even with the right password.
	blocked, err := users.GetByEmail(ctx, "joao@example.com")
	require.NoError(t, err)
	blocked.Status = domain.UserStatusBlocked
	require.NoError(t, users.Update(ctx, blocked))
	_, _, _, err = svc.Login(ctx, "joao@example.com", "senha123")
	assert.Equal(t, util.CodeForbidden, util.CodeOf(err))
}

func TestSeedPopulatesEmptyStore(t *testing.T) {
	svc, users := newAuthFixture(t)
	ctx := context.Background()

	require.NoError(t, svc.Seed(ctx))

	all, err := users.Load(ctx)
	require.NoError(t, err)
	require.Len(t, all, 4)

	admin, err := users.GetByEmail(ctx, "admin@servicedesk.local")
	require.NoError(t, err)
	assert.Equal(t, domain.RoleAdmin, admin.Role)
	assert.Equal(t, domain.UserStatusActive, admin.Status)

	// Seeding again is a no-op.
	require.NoError(t, svc.Seed(ctx))
	all, err = users.Load(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 4)
}

func TestUserManagementRequiresPermission(t *testing.T) {
	svc, users := newAuthFixture(t)
	ctx := context.Background()
	require.NoError(t, svc.Seed(ctx))

	target, err := users.GetByEmail(ctx, "joao@servicedesk.local")
	require.NoError(t, err)

	supervisorActor := &domain.Actor{ID: "s1", Name: "Supervisor", Role: domain.RoleSupervisor}
	adminActor := &domain.Actor{ID: "a1", Name: "Admin", Role: domain.RoleAdmin}

	_, err = svc.ListUsers(ctx, supervisorActor)
	assert.Equal(t, util.CodeForbidden, util.CodeOf(err))

	_, err = svc.UpdateUserStatus(ctx, supervisorActor, target.ID, domain.UserStatusBlocked)
	assert.Equal(t, util.CodeForbidden, util.CodeOf(err))

	updated, err := svc.UpdateUserStatus(ctx, adminActor, target.ID, domain.UserStatusBlocked)
	require.NoError(t, err)
	assert.Equal(t, domain.UserStatusBlocked, updated.Status)

	promoted, err := svc.UpdateUserRole(ctx, adminActor, target.ID, domain.RoleTechnician)
	require.NoError(t, err)
	assert.Equal(t, domain.RoleTechnician, promoted.Role)

	_, err = svc.UpdateUserRole(ctx, adminActor, target.ID, domain.UserRole("OVERLORD"))
	assert.Equal(t, util.CodeValidation, util.CodeOf(err))
}

func TestListTechnicians(t *testing.T) {
	svc, _ := newAuthFixture(t)
	ctx := context.Background()
	require.NoError(t, svc.Seed(ctx))

	staffActor := &domain.Actor{ID: "s1", Name: "Supervisor", Role: domain.RoleSupervisor}
	technicians, err := svc.ListTechnicians(ctx, staffActor)
	require.NoError(t, err)
	require.Len(t, technicians, 1)
	assert.Equal(t, domain.RoleTechnician, technicians[0].Role)

	requesterActor := &domain.Actor{ID: "u1", Name: "Joao", Role: domain.RoleUser}
	_, err = svc.ListTechnicians(ctx, requesterActor)
	assert.Equal(t, util.CodeForbidden, util.CodeOf(err))
}
