package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/ebarkhatov/shopkeep/internal/domain/category"
)

var _ category.Repository = (*CategoryRepository)(nil)

// CategoryRepository is an in-memory category.Repository.
type CategoryRepository struct {
	mu         sync.RWMutex
	categories map[string]category.Category
}

// NewCategoryRepository returns an empty in-memory category repository.
func NewCategoryRepository() *CategoryRepository {
	return &CategoryRepository{categories: make(map[string]category.Category)}
}

// List returns all categories ordered by ID.
func (r *CategoryRepository) List(_ context.Context) ([]category.Category, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]category.Category, 0, len(r.categories))
	for _, c := range r.categories {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// GetByID returns a category or category.ErrNotFound.
func (r *CategoryRepository) GetByID(_ context.Context, id string) (*category.Category, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.categories[id]
	if !ok {
		return nil, category.ErrNotFound
	}
	return &c, nil
}

// Create stores a copy of the given category.
func (r *CategoryRepository) Create(_ context.Context, c *category.Category) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.categories[c.ID] = *c
	return nil
}

// Update overwrites an existing category or returns category.ErrNotFound.
func (r *CategoryRepository) Update(_ context.Context, c *category.Category) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.categories[c.ID]; !ok {
		return category.ErrNotFound
	}
	r.categories[c.ID] = *c
	return nil
}

// Delete removes a category or returns category.ErrNotFound. Products
// referencing it are not touched.
func (r *CategoryRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.categories[id]; !ok {
		return category.ErrNotFound
	}
	delete(r.categories, id)
	return nil
}
