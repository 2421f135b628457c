package persistence

import (
	"strings"

	"github.com/printdesk/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// sortColumns whitelists the columns a list endpoint may order by. Only
// whitelisted names ever reach ORDER BY.
type sortColumns map[string]bool

func sortable(columns ...string) sortColumns {
	set := sortColumns{"id": true, "created_at": true, "updated_at": true}
	for _, c := range columns {
		set[c] = true
	}
	return set
}

var (
	customerSort = sortable("name", "email", "tax_id", "city", "state")
	productSort  = sortable("name", "pricing_mode", "unit_price", "cost", "stock_quantity")
	quoteSort    = sortable("status", "total", "valid_until", "customer_id")
	orderSort    = sortable("total", "due_date", "delivered_at", "payment_status", "production_status", "customer_id")
	paymentSort  = sortable("paid_at", "amount", "method")
	expenseSort  = sortable("date", "amount", "category", "description")
)

// column returns requested when whitelisted, fallback otherwise
func (s sortColumns) column(requested, fallback string) string {
	if c := strings.TrimSpace(requested); s[c] {
		return c
	}
	return fallback
}

// sortDirection is ASC only when asked for; anything else sorts DESC
func sortDirection(dir string) string {
	if strings.EqualFold(strings.TrimSpace(dir), "asc") {
		return "ASC"
	}
	return "DESC"
}

// applyPage orders by a whitelisted column, with id as tiebreaker so pages
// are stable, and applies offset/limit when the filter asks for a page
func applyPage(query *gorm.DB, filter shared.Filter, columns sortColumns, fallback string) *gorm.DB {
	query = query.
		Order(columns.column(filter.OrderBy, fallback) + " " + sortDirection(filter.OrderDir)).
		Order("id ASC")
	if filter.Page > 0 && filter.PageSize > 0 {
		query = query.Offset(filter.Offset()).Limit(filter.PageSize)
	}
	return query
}

// likePattern builds a lower-cased substring pattern with LIKE wildcards escaped
func likePattern(search string) string {
	escaped := strings.NewReplacer(`\`, `\\`, "%", `\%`, "_", `\_`).Replace(strings.TrimSpace(search))
	return "%" + strings.ToLower(escaped) + "%"
}
