package domain

import "errors"

var (
	// ErrProductNotFound is returned when an id-based lookup, update or
	// delete misses.
	ErrProductNotFound = errors.New("product not found")

	// ErrInvalidProduct is returned by entry-point validation for records
	// that must not reach the compute layer.
	ErrInvalidProduct = errors.New("invalid product")
)
