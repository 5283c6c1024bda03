package order

import (
	"errors"
	"fmt"
)

var (
	ErrOrderNotFound  = errors.New("order not found")
	ErrInvalidStatus  = errors.New("invalid order status")
	ErrStatusConflict = errors.New("order status changed by a concurrent request")
)

// InsufficientStockError aborts a RECEIVED -> SHIPPED transition during the
// pre-flight check. It names the first offending product so the caller can
// build a precise message.
type InsufficientStockError struct {
	ProductName string `json:"product_name"`
	Available   int    `json:"available"`
	Required    int    `json:"required"`
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for %q: %d available, %d required",
		e.ProductName, e.Available, e.Required)
}
