package product

import "errors"

var (
	ErrProductNotFound = errors.New("product not found")
	ErrInvalidCategory = errors.New("invalid product category")
)
