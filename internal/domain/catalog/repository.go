package catalog

import (
	"context"

	"github.com/google/uuid"
	"github.com/printdesk/backend/internal/domain/shared"
)

// ProductRepository defines the interface for product persistence.
// Recognized Filter.Filters keys: "pricing_mode" (PricingMode) and "low_stock" (bool).
type ProductRepository interface {
	// FindByID finds a product by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Product, error)

	// FindByIDs finds multiple products by their IDs
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]Product, error)

	// FindAll finds all products matching the filter
	FindAll(ctx context.Context, filter shared.Filter) ([]Product, error)

	// Count counts products matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)

	// CountReferences counts quote and order lines that point at the product
	CountReferences(ctx context.Context, id uuid.UUID) (int64, error)

	// Save creates or updates a product
	Save(ctx context.Context, product *Product) error

	// Delete deletes a product
	Delete(ctx context.Context, id uuid.UUID) error
}
