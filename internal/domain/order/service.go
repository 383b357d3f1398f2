package order

import (
	"context"

	"github.com/go-faster/errors"
	"github.com/google/uuid"

	"github.com/ebarkhatov/shopkeep/internal/domain/product"
	"github.com/ebarkhatov/shopkeep/internal/domain/user"
)

// CreateRequest holds the input for creating an order. Both fields are
// required.
type CreateRequest struct {
	UserID string
	Items  []Item
}

// UpdateRequest holds the input for partially updating an order. Nil fields
// are left untouched; a supplied Items list always triggers a total
// recomputation.
type UpdateRequest struct {
	UserID *string
	Items  *[]Item
}

// Service owns the order lifecycle: construction from validated inputs,
// partial mutation, and the invariant that Total is recomputed exactly when
// Items changes and never otherwise.
//
// Validation and the subsequent write are separate store calls; a reference
// deleted in between leaves a dangling snapshot, the same defined behavior
// as references deleted after the write.
type Service struct {
	validator *Validator
	orders    Repository
}

// NewService creates an order Service over the given stores.
func NewService(users user.Repository, products product.Repository, orders Repository) *Service {
	return &Service{
		validator: NewValidator(users, products),
		orders:    orders,
	}
}

// List returns all persisted orders.
func (s *Service) List(ctx context.Context) ([]Order, error) {
	orders, err := s.orders.List(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "list orders")
	}
	return orders, nil
}

// Get returns a single order. Returns ErrNotFound when the order does not
// exist.
func (s *Service) Get(ctx context.Context, id string) (*Order, error) {
	return s.orders.GetByID(ctx, id)
}

// Create validates the user and product references, prices the line items,
// and persists the order with Items and Total set together.
func (s *Service) Create(ctx context.Context, req CreateRequest) (*Order, error) {
	if req.UserID == "" {
		return nil, &MissingFieldError{Field: "userId"}
	}
	if len(req.Items) == 0 {
		return nil, &MissingFieldError{Field: "items"}
	}

	if err := s.validator.ValidateUser(ctx, req.UserID); err != nil {
		return nil, err
	}
	products, err := s.validator.ValidateItems(ctx, req.Items)
	if err != nil {
		return nil, err
	}

	o := &Order{
		ID:     uuid.New().String(),
		UserID: req.UserID,
		Items:  req.Items,
		Total:  Total(req.Items, products),
	}
	if err := s.orders.Create(ctx, o); err != nil {
		return nil, errors.Wrap(err, "create order")
	}
	return o, nil
}

// Update loads the order, applies the supplied fields after validating each
// independently, and persists the merged record. Total is recomputed from
// the new line items if and only if Items was supplied.
func (s *Service) Update(ctx context.Context, id string, req UpdateRequest) (*Order, error) {
	o, err := s.orders.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.UserID != nil {
		if err := s.validator.ValidateUser(ctx, *req.UserID); err != nil {
			return nil, err
		}
		o.UserID = *req.UserID
	}

	if req.Items != nil {
		items := *req.Items
		products, err := s.validator.ValidateItems(ctx, items)
		if err != nil {
			return nil, err
		}
		o.Items = items
		o.Total = Total(items, products)
	}

	if err := s.orders.Update(ctx, o); err != nil {
		return nil, errors.Wrapf(err, "update order %s", id)
	}
	return o, nil
}

// Delete removes an order. Returns ErrNotFound when the order does not
// exist. Deleting an order has no effect on users or products.
func (s *Service) Delete(ctx context.Context, id string) error {
	return s.orders.Delete(ctx, id)
}
