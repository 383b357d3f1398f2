package user

import (
	"context"

	"github.com/go-faster/errors"
)

// ErrNotFound is returned when a requested user does not exist.
var ErrNotFound = errors.New("user not found")

// User represents a registered customer account.
type User struct {
	ID       string
	Name     string
	Email    string
	Password string
}

// Repository defines persistence operations for users.
//
// Delete removes only the user row; orders referencing the user keep their
// stored userID and remain readable.
type Repository interface {
	List(ctx context.Context) ([]User, error)
	GetByID(ctx context.Context, id string) (*User, error)
	Create(ctx context.Context, u *User) error
	Update(ctx context.Context, u *User) error
	Delete(ctx context.Context, id string) error
}
