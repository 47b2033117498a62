package repository

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/cleanarch/webapp/internal/domain"
)

// memoryUserRepository provides an in-memory implementation of UserRepository,
// used in development mode and as the backing store in tests.
type memoryUserRepository struct {
	users map[string]*domain.User
	mutex sync.RWMutex
}

// NewMemoryUserRepository creates a new in-memory user repository.
func NewMemoryUserRepository() UserRepository {
	return &memoryUserRepository{
		users: make(map[string]*domain.User),
	}
}

// Create stores a new user, rejecting duplicate emails and usernames.
func (r *memoryUserRepository) Create(_ context.Context, user *domain.User) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	for _, existing := range r.users {
		if strings.EqualFold(existing.Email, user.Email) {
			return domain.NewConflictError("EMAIL_ALREADY_EXISTS", "A user with this email already exists")
		}
		if existing.Username == user.Username {
			return domain.NewConflictError("USERNAME_ALREADY_EXISTS", "A user with this username already exists")
		}
	}

	stored := *user
	r.users[user.ID] = &stored
	return nil
}

// GetByID retrieves a user by ID.
func (r *memoryUserRepository) GetByID(_ context.Context, id string) (*domain.User, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	user, exists := r.users[id]
	if !exists {
		return nil, notFoundUser()
	}
	copied := *user
	return &copied, nil
}

// GetByEmail retrieves a user by email address.
func (r *memoryUserRepository) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	for _, user := range r.users {
		if strings.EqualFold(user.Email, email) {
			copied := *user
			return &copied, nil
		}
	}
	return nil, notFoundUser()
}

// GetByUsername retrieves a user by username.
func (r *memoryUserRepository) GetByUsername(_ context.Context, username string) (*domain.User, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	for _, user := range r.users {
		if user.Username == username {
			copied := *user
			return &copied, nil
		}
	}
	return nil, notFoundUser()
}

// Update replaces a stored user.
func (r *memoryUserRepository) Update(_ context.Context, user *domain.User) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	if _, exists := r.users[user.ID]; !exists {
		return notFoundUser()
	}
	stored := *user
	r.users[user.ID] = &stored
	return nil
}

// Delete removes a user by ID.
func (r *memoryUserRepository) Delete(_ context.Context, id string) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	if _, exists := r.users[id]; !exists {
		return notFoundUser()
	}
	delete(r.users, id)
	return nil
}

// List retrieves users ordered by creation time with pagination.
func (r *memoryUserRepository) List(_ context.Context, offset, limit int) ([]*domain.User, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	all := make([]*domain.User, 0, len(r.users))
	for _, user := range r.users {
		copied := *user
		all = append(all, &copied)
	}
	sort.Slice(all, func(i, j int) bool {
		return all[i].CreatedAt.Before(all[j].CreatedAt)
	})

	if offset >= len(all) {
		return []*domain.User{}, nil
	}
	end := offset + limit
	if limit <= 0 || end > len(all) {
		end = len(all)
	}
	return all[offset:end], nil
}

// Count returns the total number of users.
func (r *memoryUserRepository) Count(_ context.Context) (int, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()
	return len(r.users), nil
}

// ExistsByEmail checks if a user exists with the given email.
func (r *memoryUserRepository) ExistsByEmail(_ context.Context, email string) (bool, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	for _, user := range r.users {
		if strings.EqualFold(user.Email, email) {
			return true, nil
		}
	}
	return false, nil
}

// ExistsByUsername checks if a user exists with the given username.
func (r *memoryUserRepository) ExistsByUsername(_ context.Context, username string) (bool, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	for _, user := range r.users {
		if user.Username == username {
			return true, nil
		}
	}
	return false, nil
}
