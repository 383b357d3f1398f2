package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/ebarkhatov/shopkeep/internal/domain/order"
)

var _ order.Repository = (*OrderRepository)(nil)

// OrderRepository is an in-memory order.Repository. Stored orders are deep
// copies: mutating a returned order never changes the stored snapshot until
// Update is called.
type OrderRepository struct {
	mu     sync.RWMutex
	orders map[string]order.Order
}

// NewOrderRepository returns an empty in-memory order repository.
func NewOrderRepository() *OrderRepository {
	return &OrderRepository{orders: make(map[string]order.Order)}
}

// List returns all orders, oldest first.
func (r *OrderRepository) List(_ context.Context) ([]order.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]order.Order, 0, len(r.orders))
	for _, o := range r.orders {
		out = append(out, cloneOrder(o))
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

// GetByID returns a copy of an order or order.ErrNotFound.
func (r *OrderRepository) GetByID(_ context.Context, id string) (*order.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	o, ok := r.orders[id]
	if !ok {
		return nil, order.ErrNotFound
	}
	cp := cloneOrder(o)
	return &cp, nil
}

// Create stores a copy of the given order and stamps its creation time.
func (r *OrderRepository) Create(_ context.Context, o *order.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored := cloneOrder(*o)
	if stored.CreatedAt.IsZero() {
		stored.CreatedAt = time.Now()
	}
	r.orders[stored.ID] = stored
	return nil
}

// Update overwrites an existing order or returns order.ErrNotFound.
func (r *OrderRepository) Update(_ context.Context, o *order.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.orders[o.ID]
	if !ok {
		return order.ErrNotFound
	}
	updated := cloneOrder(*o)
	updated.CreatedAt = stored.CreatedAt
	r.orders[o.ID] = updated
	return nil
}

// Delete removes an order or returns order.ErrNotFound.
func (r *OrderRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.orders[id]; !ok {
		return order.ErrNotFound
	}
	delete(r.orders, id)
	return nil
}

func cloneOrder(o order.Order) order.Order {
	cp := o
	cp.Items = make([]order.Item, len(o.Items))
	copy(cp.Items, o.Items)
	return cp
}
