package product

import "time"

type Product struct {
	ID        uint       `json:"id"`
	Name      string     `json:"name"`
	Price     float64    `json:"price"`
	SalePrice *float64   `json:"sale_price,omitempty"`
	Stock     int        `json:"stock"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
	Variants  []Variant  `json:"variants,omitempty"`
}

// Variant is one member of a variant group. Name is the group axis
// ("Size"), Value the member ("Large"). Variant stock is tracked next to
// the product-level aggregate, not derived from it.
type Variant struct {
	ID        uint      `json:"id"`
	ProductID uint      `json:"product_id"`
	Name      string    `json:"name"`
	Value     string    `json:"value"`
	Stock     int       `json:"stock"`
	CreatedAt time.Time `json:"created_at"`
}

// StockTarget carries either an absolute stock value or a relative
// adjustment. Exactly one side must be set.
type StockTarget struct {
	Stock      *int
	Adjustment *int
}

// Resolve computes the new product-level stock from the current value.
// The result is clamped at zero, so the effective delta seen by variant
// propagation always matches the real product-level change.
func (t StockTarget) Resolve(current int) int {
	next := current
	switch {
	case t.Stock != nil:
		next = *t.Stock
	case t.Adjustment != nil:
		next = current + *t.Adjustment
	}
	if next < 0 {
		next = 0
	}
	return next
}
