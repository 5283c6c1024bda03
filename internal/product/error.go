package product

import "errors"

var (
	ErrProductNotFound   = errors.New("product not found")
	ErrInvalidStockInput = errors.New("exactly one of stock or adjustment must be provided")
)
