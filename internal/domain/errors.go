package domain

import "errors"

var (
	// ErrProductNotFound is returned when a product id or barcode resolves
	// to nothing, locally or in the external catalog. It is the only
	// condition that propagates to callers as a definite failure.
	ErrProductNotFound = errors.New("product not found")

	// ErrLocationNotFound is returned when a location text cannot be
	// resolved to coordinates.
	ErrLocationNotFound = errors.New("location not found")

	// ErrCatalogUnavailable is returned when the external catalog request fails.
	ErrCatalogUnavailable = errors.New("catalog request failed")

	// ErrInvalidRequest is returned when request parameters are invalid.
	ErrInvalidRequest = errors.New("invalid request parameters")

	// ErrCacheMiss is returned when data is not found in cache.
	ErrCacheMiss = errors.New("cache miss")
)
