// Package memory provides in-memory repository implementations. They back
// unit tests and local development where a PostgreSQL instance is not
// available; behavior mirrors the postgres package, including the
// no-cascade delete semantics.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/ebarkhatov/shopkeep/internal/domain/user"
)

var _ user.Repository = (*UserRepository)(nil)

// UserRepository is an in-memory user.Repository.
type UserRepository struct {
	mu    sync.RWMutex
	users map[string]user.User
}

// NewUserRepository returns an empty in-memory user repository.
func NewUserRepository() *UserRepository {
	return &UserRepository{users: make(map[string]user.User)}
}

// List returns all users ordered by ID.
func (r *UserRepository) List(_ context.Context) ([]user.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]user.User, 0, len(r.users))
	for _, u := range r.users {
		out = append(out, u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// GetByID returns a user or user.ErrNotFound.
func (r *UserRepository) GetByID(_ context.Context, id string) (*user.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.users[id]
	if !ok {
		return nil, user.ErrNotFound
	}
	return &u, nil
}

// Create stores a copy of the given user.
func (r *UserRepository) Create(_ context.Context, u *user.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.users[u.ID] = *u
	return nil
}

// Update overwrites name and email; the password is kept as stored.
func (r *UserRepository) Update(_ context.Context, u *user.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.users[u.ID]
	if !ok {
		return user.ErrNotFound
	}
	stored.Name = u.Name
	stored.Email = u.Email
	r.users[u.ID] = stored
	return nil
}

// Delete removes a user or returns user.ErrNotFound.
func (r *UserRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.users[id]; !ok {
		return user.ErrNotFound
	}
	delete(r.users, id)
	return nil
}
