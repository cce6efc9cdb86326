package domain

import "context"

// ProductRepository is the persistence collaborator for product facts.
// UpsertProduct must be idempotent under concurrent duplicate inserts:
// first writer wins, later writers observe the already-inserted row.
type ProductRepository interface {
	GetProductFacts(ctx context.Context, id int64) (*Product, error)
	FindByBarcode(ctx context.Context, barcode string) (*Product, error)
	GetIngredients(ctx context.Context, productID int64) ([]Ingredient, error)
	GetPackaging(ctx context.Context, productID int64) ([]PackagingComponent, error)
	FindByCategory(ctx context.Context, category string, excludeID int64, limit int) ([]ProductSummary, error)
	// UpsertProduct atomically inserts or refreshes a catalog record and
	// returns the stored product, eliminating the write-then-read race.
	UpsertProduct(ctx context.Context, record *ProductRecord) (*Product, error)
}

// Geocoder resolves free-form location text to coordinates. Implementations
// are expected to cache and rate-limit; a failed resolution returns
// ErrLocationNotFound.
type Geocoder interface {
	Resolve(ctx context.Context, locationText string) (Coordinates, error)
}

// CatalogClient is the external food-catalog collaborator. SearchByCategory
// is best-effort and may return an empty slice.
type CatalogClient interface {
	FetchProduct(ctx context.Context, barcode string) (*ProductRecord, error)
	SearchByCategory(ctx context.Context, categoryTag string, pageSize int) ([]ProductRecord, error)
}
