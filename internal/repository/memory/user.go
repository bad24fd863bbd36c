package memory

import (
	"context"
	"sync"
	"time"

	"github.com/cmlabs-hris/scan-attendance-go/internal/domain/user"
	"github.com/google/uuid"
)

type UserRepository struct {
	mu    sync.Mutex
	users map[string]user.User
}

func NewUserRepository() *UserRepository {
	return &UserRepository{users: make(map[string]user.User)}
}

// Create implements user.UserRepository.
func (r *UserRepository) Create(_ context.Context, newUser user.User) (user.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, u := range r.users {
		if u.Username == newUser.Username {
			return user.User{}, user.ErrUsernameExists
		}
	}
	if newUser.ID == "" {
		id, err := uuid.NewV7()
		if err != nil {
			return user.User{}, err
		}
		newUser.ID = id.String()
	}

	now := time.Now().UTC()
	newUser.CreatedAt, newUser.UpdatedAt = now, now
	r.users[newUser.ID] = newUser
	return newUser, nil
}

// GetByID implements user.UserRepository.
func (r *UserRepository) GetByID(_ context.Context, id string) (user.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.users[id]
	if !ok {
		return user.User{}, user.ErrUserNotFound
	}
	return u, nil
}

// GetByUsername implements user.UserRepository.
func (r *UserRepository) GetByUsername(_ context.Context, username string) (user.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, u := range r.users {
		if u.Username == username {
			return u, nil
		}
	}
	return user.User{}, user.ErrUserNotFound
}

// ExistsByUsername implements user.UserRepository.
func (r *UserRepository) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	_, err := r.GetByUsername(ctx, username)
	if err == user.ErrUserNotFound {
		return false, nil
	}
	return err == nil, err
}

// Transactor runs callbacks directly; the maps are already mutex protected.
type Transactor struct{}

func (Transactor) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}
