package product

import (
	"context"
	"fmt"

	"github.com/go-faster/errors"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ebarkhatov/shopkeep/internal/domain/category"
)

// ErrNegativePrice is returned when a product write carries a negative price.
var ErrNegativePrice = errors.New("price must not be negative")

// CategoryNotFoundError indicates a product write references a category that
// does not exist.
type CategoryNotFoundError struct {
	CategoryID string
}

func (e *CategoryNotFoundError) Error() string {
	return fmt.Sprintf("category %s not found", e.CategoryID)
}

// CreateRequest holds the input for creating a product.
type CreateRequest struct {
	Name        string
	Description string
	Price       decimal.Decimal
	CategoryID  string
}

// UpdateRequest holds the input for updating a product. All fields are
// written; the category reference is re-validated on every update.
type UpdateRequest struct {
	Name        string
	Description string
	Price       decimal.Decimal
	CategoryID  string
}

// Service owns product writes. Reads go straight to the Repository; writes
// pass the category referential check first, so a product never enters
// storage pointing at a category that did not exist at write time.
type Service struct {
	products   Repository
	categories category.Repository
}

// NewService creates a product Service with the required dependencies.
func NewService(products Repository, categories category.Repository) *Service {
	return &Service{products: products, categories: categories}
}

// Create validates the category reference and price, then persists a new
// product under a freshly assigned identifier.
func (s *Service) Create(ctx context.Context, req CreateRequest) (*Product, error) {
	if err := s.validate(ctx, req.Price, req.CategoryID); err != nil {
		return nil, err
	}

	p := &Product{
		ID:          uuid.New().String(),
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		CategoryID:  req.CategoryID,
	}
	if err := s.products.Create(ctx, p); err != nil {
		return nil, errors.Wrap(err, "create product")
	}
	return p, nil
}

// Update overwrites an existing product after re-validating the category
// reference. Returns ErrNotFound when the product does not exist.
func (s *Service) Update(ctx context.Context, id string, req UpdateRequest) (*Product, error) {
	if _, err := s.products.GetByID(ctx, id); err != nil {
		return nil, err
	}
	if err := s.validate(ctx, req.Price, req.CategoryID); err != nil {
		return nil, err
	}

	p := &Product{
		ID:          id,
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		CategoryID:  req.CategoryID,
	}
	if err := s.products.Update(ctx, p); err != nil {
		return nil, errors.Wrapf(err, "update product %s", id)
	}
	return p, nil
}

// Delete removes a product. Orders that reference it keep their stored
// line items and totals.
func (s *Service) Delete(ctx context.Context, id string) error {
	return s.products.Delete(ctx, id)
}

func (s *Service) validate(ctx context.Context, price decimal.Decimal, categoryID string) error {
	if price.IsNegative() {
		return ErrNegativePrice
	}
	_, err := s.categories.GetByID(ctx, categoryID)
	if err != nil {
		if errors.Is(err, category.ErrNotFound) {
			return &CategoryNotFoundError{CategoryID: categoryID}
		}
		return errors.Wrapf(err, "get category %s", categoryID)
	}
	return nil
}
