package trade

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/printdesk/backend/internal/domain/catalog"
	"github.com/printdesk/backend/internal/domain/partner"
	"github.com/printdesk/backend/internal/domain/shared"
	"github.com/printdesk/backend/internal/domain/trade"
	"github.com/shopspring/decimal"
)

// Metrics receives business counters from the trade services.
// telemetry.BusinessMetrics implements it.
type Metrics interface {
	RecordOrderCreated(ctx context.Context, source string, total decimal.Decimal)
	RecordQuoteConverted(ctx context.Context)
	RecordPayment(ctx context.Context, method string, amount decimal.Decimal)
}

type noopMetrics struct{}

func (noopMetrics) RecordOrderCreated(context.Context, string, decimal.Decimal) {}
func (noopMetrics) RecordQuoteConverted(context.Context) {}
func (noopMetrics) RecordPayment(context.Context, string, decimal.Decimal) {}

// Order sources used as metric labels
const (
	OrderSourceDirect = "direct"
	OrderSourceQuote  = "quote"
)

var errCustomerNotFound = shared.NewDomainError("INVALID_CUSTOMER", "Customer not found")

// ensureCustomer verifies the customer exists and returns it
func ensureCustomer(ctx context.Context, repo partner.CustomerRepository, id uuid.UUID) (*partner.Customer, error) {
	c, err := repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, errCustomerNotFound
		}
		return nil, err
	}
	return c, nil
}

// customerNames maps customer ids to names; unknown ids are skipped
func customerNames(ctx context.Context, repo partner.CustomerRepository, ids []uuid.UUID) (map[uuid.UUID]string, error) {
	names := make(map[uuid.UUID]string, len(ids))
	if len(ids) == 0 {
		return names, nil
	}
	customers, err := repo.FindByIDs(ctx, uniqueIDs(ids))
	if err != nil {
		return nil, err
	}
	for _, c := range customers {
		names[c.ID] = c.Name
	}
	return names, nil
}

// loadProducts loads every product referenced by the given lines and inputs.
// Products that do not exist are absent from the map.
func loadProducts(ctx context.Context, repo catalog.ProductRepository, lines []trade.Line, inputs ...trade.LineInput) (map[uuid.UUID]*catalog.Product, error) {
	ids := trade.ProductIDs(lines)
	for _, in := range inputs {
		if in.ProductID != nil {
			ids = append(ids, *in.ProductID)
		}
	}
	products := make(map[uuid.UUID]*catalog.Product, len(ids))
	if len(ids) == 0 {
		return products, nil
	}
	found, err := repo.FindByIDs(ctx, uniqueIDs(ids))
	if err != nil {
		return nil, err
	}
	for i := range found {
		products[found[i].ID] = &found[i]
	}
	return products, nil
}

func productFor(products map[uuid.UUID]*catalog.Product, id *uuid.UUID) *catalog.Product {
	if id == nil {
		return nil
	}
	return products[*id]
}

func uniqueIDs(ids []uuid.UUID) []uuid.UUID {
	seen := make(map[uuid.UUID]struct{}, len(ids))
	out := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

func pageDefaults(page, pageSize int, orderBy, orderDir string) shared.Filter {
	if page <= 0 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = 20
	}
	if orderBy == "" {
		orderBy = "created_at"
	}
	if orderDir == "" {
		orderDir = "desc"
	}
	return shared.Filter{
		Page:     page,
		PageSize: pageSize,
		OrderBy:  orderBy,
		OrderDir: orderDir,
		Filters:  make(map[string]interface{}),
	}
}

// endOfDay makes an inclusive date bound cover the whole day
func endOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 23, 59, 59, int(time.Second-time.Nanosecond), t.Location())
}
