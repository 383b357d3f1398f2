package order

import (
	"context"

	"github.com/go-faster/errors"

	"github.com/ebarkhatov/shopkeep/internal/domain/product"
	"github.com/ebarkhatov/shopkeep/internal/domain/user"
)

// Validator checks the referential integrity of an order mutation before any
// state is persisted. It is fully synchronous: a mutation that fails
// validation never reaches storage.
type Validator struct {
	users    user.Repository
	products product.Repository
}

// NewValidator creates a Validator over the given identity and catalog stores.
func NewValidator(users user.Repository, products product.Repository) *Validator {
	return &Validator{users: users, products: products}
}

// ValidateUser confirms the user reference resolves in the identity store.
func (v *Validator) ValidateUser(ctx context.Context, userID string) error {
	_, err := v.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return &InvalidReferenceError{Entity: "user", ID: userID}
		}
		return errors.Wrapf(err, "get user %s", userID)
	}
	return nil
}

// ValidateItems checks every line item's quantity and resolves all referenced
// products in a single batch fetch. It returns the resolved products keyed by
// ID so pricing reuses the same round trip. The first unresolved product, in
// request order, fails the whole mutation.
func (v *Validator) ValidateItems(ctx context.Context, items []Item) (map[string]product.Product, error) {
	ids := make([]string, len(items))
	for i, item := range items {
		if item.Quantity <= 0 {
			return nil, &InvalidQuantityError{ProductID: item.ProductID}
		}
		ids[i] = item.ProductID
	}

	fetched, err := v.products.GetByIDs(ctx, ids)
	if err != nil {
		return nil, errors.Wrap(err, "get products")
	}

	byID := make(map[string]product.Product, len(fetched))
	for _, p := range fetched {
		byID[p.ID] = p
	}

	for _, item := range items {
		if _, ok := byID[item.ProductID]; !ok {
			return nil, &InvalidReferenceError{Entity: "product", ID: item.ProductID}
		}
	}
	return byID, nil
}
