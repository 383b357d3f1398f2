package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/ebarkhatov/shopkeep/internal/domain/product"
)

var _ product.Repository = (*ProductRepository)(nil)

// ProductRepository is an in-memory product.Repository.
type ProductRepository struct {
	mu       sync.RWMutex
	products map[string]product.Product
}

// NewProductRepository returns an empty in-memory product repository.
func NewProductRepository() *ProductRepository {
	return &ProductRepository{products: make(map[string]product.Product)}
}

// List returns all products ordered by ID.
func (r *ProductRepository) List(_ context.Context) ([]product.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]product.Product, 0, len(r.products))
	for _, p := range r.products {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// GetByID returns a product or product.ErrNotFound.
func (r *ProductRepository) GetByID(_ context.Context, id string) (*product.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.products[id]
	if !ok {
		return nil, product.ErrNotFound
	}
	return &p, nil
}

// GetByIDs returns the subset of products matching the given IDs. Missing
// IDs are simply absent from the result, matching the postgres behavior.
func (r *ProductRepository) GetByIDs(_ context.Context, ids []string) ([]product.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]product.Product, 0, len(ids))
	seen := make(map[string]bool, len(ids))
	for _, id := range ids {
		if seen[id] {
			continue
		}
		seen[id] = true
		if p, ok := r.products[id]; ok {
			out = append(out, p)
		}
	}
	return out, nil
}

// Create stores a copy of the given product.
func (r *ProductRepository) Create(_ context.Context, p *product.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.products[p.ID] = *p
	return nil
}

// Update overwrites an existing product or returns product.ErrNotFound.
func (r *ProductRepository) Update(_ context.Context, p *product.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.products[p.ID]; !ok {
		return product.ErrNotFound
	}
	r.products[p.ID] = *p
	return nil
}

// Delete removes a product or returns product.ErrNotFound. Orders holding
// the product in their snapshot are not touched.
func (r *ProductRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.products[id]; !ok {
		return product.ErrNotFound
	}
	delete(r.products, id)
	return nil
}
