package persistence

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/printdesk/backend/internal/domain/partner"
	"github.com/printdesk/backend/internal/domain/shared"
	"github.com/printdesk/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormCustomerRepository stores customers in the customers table
type GormCustomerRepository struct {
	db *gorm.DB
}

func NewGormCustomerRepository(db *gorm.DB) *GormCustomerRepository {
	return &GormCustomerRepository{db: db}
}

func (r *GormCustomerRepository) customers(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Model(&models.CustomerModel{})
}

func (r *GormCustomerRepository) FindByID(ctx context.Context, id uuid.UUID) (*partner.Customer, error) {
	return firstRow[models.CustomerModel, partner.Customer](r.customers(ctx), "id = ?", id)
}

func (r *GormCustomerRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]partner.Customer, error) {
	if len(ids) == 0 {
		return []partner.Customer{}, nil
	}
	return allRows[models.CustomerModel, partner.Customer](r.customers(ctx).Where("id IN ?", ids))
}

// FindAll lists one page of customers, by name unless the filter sorts otherwise
func (r *GormCustomerRepository) FindAll(ctx context.Context, filter shared.Filter) ([]partner.Customer, error) {
	query := applyPage(r.matching(ctx, filter), filter, customerSort, "name")
	return allRows[models.CustomerModel, partner.Customer](query)
}

func (r *GormCustomerRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	return countRows(r.matching(ctx, filter))
}

// ExistsByTaxID ignores blank tax ids, which any number of customers may share
func (r *GormCustomerRepository) ExistsByTaxID(ctx context.Context, taxID string, excludeID uuid.UUID) (bool, error) {
	taxID = strings.TrimSpace(taxID)
	if taxID == "" {
		return false, nil
	}
	query := r.customers(ctx).Where("tax_id = ?", taxID)
	if excludeID != uuid.Nil {
		query = query.Where("id <> ?", excludeID)
	}
	return anyRows(query)
}

// CountReferences adds up the quotes and orders raised for the customer
func (r *GormCustomerRepository) CountReferences(ctx context.Context, id uuid.UUID) (int64, error) {
	var total int64
	for _, owner := range []any{&models.QuoteModel{}, &models.OrderModel{}} {
		n, err := countRows(r.db.WithContext(ctx).Model(owner).Where("customer_id = ?", id))
		if err != nil {
			return 0, err
		}
		total += n
	}
	return total, nil
}

func (r *GormCustomerRepository) Save(ctx context.Context, customer *partner.Customer) error {
	return translateError(r.db.WithContext(ctx).Save(models.CustomerModelFromDomain(customer)).Error)
}

func (r *GormCustomerRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return deleteRows(r.db.WithContext(ctx), &models.CustomerModel{}, "id = ?", id)
}

// matching narrows by the free text search and the city/state filters
func (r *GormCustomerRepository) matching(ctx context.Context, filter shared.Filter) *gorm.DB {
	query := r.customers(ctx)
	if strings.TrimSpace(filter.Search) != "" {
		p := likePattern(filter.Search)
		query = query.Where(
			"LOWER(name) LIKE ? ESCAPE '\\' OR LOWER(email) LIKE ? ESCAPE '\\' OR tax_id LIKE ? ESCAPE '\\' OR phone LIKE ? ESCAPE '\\'",
			p, p, p, p,
		)
	}
	for _, column := range []string{"city", "state"} {
		if value, ok := filter.Filters[column]; ok {
			query = query.Where(column+" = ?", value)
		}
	}
	return query
}

var _ partner.CustomerRepository = (*GormCustomerRepository)(nil)
