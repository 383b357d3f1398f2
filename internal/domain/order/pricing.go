package order

import (
	"github.com/shopspring/decimal"

	"github.com/ebarkhatov/shopkeep/internal/domain/product"
)

// Total computes the monetary total for the given line items against the
// resolved products: the sum of unit price × quantity, rounded to 2 decimal
// places once at the end (never per line item). Rounding is half away from
// zero.
//
// Callers pass a map covering every referenced product; the Validator
// resolves and checks the references before pricing runs.
func Total(items []Item, products map[string]product.Product) decimal.Decimal {
	sum := decimal.Zero
	for _, item := range items {
		price := products[item.ProductID].Price
		qty := decimal.NewFromInt(int64(item.Quantity))
		sum = sum.Add(price.Mul(qty))
	}
	return sum.Round(2)
}
