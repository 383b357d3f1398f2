package order

import (
	"context"
	"time"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"
)

// ErrNotFound is returned when a requested order does not exist.
var ErrNotFound = errors.New("order not found")

// Order represents a customer order. Items and Total are a snapshot taken at
// write time: later catalog changes never touch a stored order.
type Order struct {
	ID        string
	UserID    string
	Items     []Item
	Total     decimal.Decimal
	CreatedAt time.Time
}

// Item represents a single line item in an order.
type Item struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

// Repository defines persistence operations for orders.
//
// Create and Update persist Items and Total together as one write.
// Update and Delete return ErrNotFound when the order does not exist.
type Repository interface {
	List(ctx context.Context) ([]Order, error)
	GetByID(ctx context.Context, id string) (*Order, error)
	Create(ctx context.Context, o *Order) error
	Update(ctx context.Context, o *Order) error
	Delete(ctx context.Context, id string) error
}
