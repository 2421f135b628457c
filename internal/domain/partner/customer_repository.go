package partner

import (
	"context"

	"github.com/google/uuid"
	"github.com/printdesk/backend/internal/domain/shared"
)

// CustomerRepository stores customers. Single lookups miss with
// shared.ErrNotFound.
type CustomerRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Customer, error)
	// FindByIDs skips ids that do not exist
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]Customer, error)

	// FindAll pages through customers. Filter.Search matches name, email,
	// tax id and phone; Filters accepts "city" and "state".
	FindAll(ctx context.Context, filter shared.Filter) ([]Customer, error)
	Count(ctx context.Context, filter shared.Filter) (int64, error)

	// ExistsByTaxID reports whether another customer uses the tax id.
	// excludeID is ignored when it is uuid.Nil.
	ExistsByTaxID(ctx context.Context, taxID string, excludeID uuid.UUID) (bool, error)
	// CountReferences counts quotes and orders that point at the customer
	CountReferences(ctx context.Context, id uuid.UUID) (int64, error)

	Save(ctx context.Context, customer *Customer) error
	Delete(ctx context.Context, id uuid.UUID) error
}
