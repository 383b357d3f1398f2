package category

import (
	"context"

	"github.com/go-faster/errors"
)

// ErrNotFound is returned when a requested category does not exist.
var ErrNotFound = errors.New("category not found")

// Category groups products in the catalog.
type Category struct {
	ID   string
	Name string
}

// Repository defines persistence operations for categories.
//
// Delete removes only the category row; products referencing the category
// keep their stored categoryID and remain readable.
type Repository interface {
	List(ctx context.Context) ([]Category, error)
	GetByID(ctx context.Context, id string) (*Category, error)
	Create(ctx context.Context, c *Category) error
	Update(ctx context.Context, c *Category) error
	Delete(ctx context.Context, id string) error
}
