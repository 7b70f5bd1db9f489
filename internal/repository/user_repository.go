package repository

import (
	"context"
	"strings"
	"sync"

	"github.com/service-desk/helpdesk/internal/domain"
	"github.com/service-desk/helpdesk/internal/persistence"
	"github.com/service-desk/helpdesk/pkg/util"
)

const usersKey = "users"

// UserRepository stores accounts for the auth collaborator.
type UserRepository interface {
	Load(ctx context.Context) ([]domain.User, error)
	GetByID(ctx context.Context, id string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	Insert(ctx context.Context, user *domain.User) error
	Update(ctx context.Context, user *domain.User) error
	ReplaceAll(ctx context.Context, users []domain.User) error
}

type userRepository struct {
	codec blobCodec
	mu    sync.Mutex
}

// NewUserRepository builds the repository.
func NewUserRepository(store persistence.BlobStore, maxBlobMB int) UserRepository {
	return &userRepository{codec: newBlobCodec(store, maxBlobMB)}
}

func (r *userRepository) Load(ctx context.Context) ([]domain.User, error) {
	var users []domain.User
	if err := r.codec.load(ctx, usersKey, &users); err != nil {
		return nil, err
	}
	return users, nil
}

func (r *userRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	users, err := r.Load(ctx)
	if err != nil {
		return nil, err
	}
	for i := range users {
		if users[i].ID == id {
			user := users[i]
			return &user, nil
		}
	}
	return nil, util.NewNotFound("user", map[string]any{"user_id": id})
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	users, err := r.Load(ctx)
	if err != nil {
		return nil, err
	}
	for i := range users {
		if strings.EqualFold(users[i].Email, email) {
			user := users[i]
			return &user, nil
		}
	}
	return nil, util.NewNotFound("user", nil)
}

func (r *userRepository) Insert(ctx context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	users, err := r.Load(ctx)
	if err != nil {
		return err
	}
	users = append(users, *user)
	return r.codec.save(ctx, usersKey, users)
}

func (r *userRepository) Update(ctx context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	users, err := r.Load(ctx)
	if err != nil {
		return err
	}
	for i := range users {
		if users[i].ID == user.ID {
			users[i] = *user
			return r.codec.save(ctx, usersKey, users)
		}
	}
	return util.NewNotFound("user", map[string]any{"user_id": user.ID})
}

// ReplaceAll overwrites the collection; used for first-run seeding.
func (r *userRepository) ReplaceAll(ctx context.Context, users []domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.codec.save(ctx, usersKey, users)
}
