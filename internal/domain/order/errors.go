package order

import "fmt"

// MissingFieldError indicates a required input was absent on create. An empty
// items list counts as absent.
type MissingFieldError struct {
	Field string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("%s is required", e.Field)
}

// InvalidReferenceError indicates a user or product identifier in an order
// mutation does not resolve to an existing record.
type InvalidReferenceError struct {
	Entity string
	ID     string
}

func (e *InvalidReferenceError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Entity, e.ID)
}

// InvalidQuantityError indicates a line item has a non-positive quantity.
type InvalidQuantityError struct {
	ProductID string
}

func (e *InvalidQuantityError) Error() string {
	return fmt.Sprintf("quantity must be greater than 0 for product %s", e.ProductID)
}
