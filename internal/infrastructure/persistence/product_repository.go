package persistence

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/printdesk/backend/internal/domain/catalog"
	"github.com/printdesk/backend/internal/domain/shared"
	"github.com/printdesk/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormProductRepository stores the catalog
type GormProductRepository struct {
	db *gorm.DB
}

func NewGormProductRepository(db *gorm.DB) *GormProductRepository {
	return &GormProductRepository{db: db}
}

func (r *GormProductRepository) products(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Model(&models.ProductModel{})
}

func (r *GormProductRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Product, error) {
	return firstRow[models.ProductModel, catalog.Product](r.products(ctx), "id = ?", id)
}

// FindByIDs returns the products found; missing ids are skipped
func (r *GormProductRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]catalog.Product, error) {
	if len(ids) == 0 {
		return []catalog.Product{}, nil
	}
	return allRows[models.ProductModel, catalog.Product](r.products(ctx).Where("id IN ?", ids))
}

func (r *GormProductRepository) FindAll(ctx context.Context, filter shared.Filter) ([]catalog.Product, error) {
	return allRows[models.ProductModel, catalog.Product](applyPage(r.matching(ctx, filter), filter, productSort, "name"))
}

func (r *GormProductRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	return countRows(r.matching(ctx, filter))
}

// CountReferences counts quote and order lines that point at the product
func (r *GormProductRepository) CountReferences(ctx context.Context, id uuid.UUID) (int64, error) {
	quoteLines, err := countRows(r.db.WithContext(ctx).Model(&models.QuoteLineModel{}).Where("product_id = ?", id))
	if err != nil {
		return 0, err
	}
	orderLines, err := countRows(r.db.WithContext(ctx).Model(&models.OrderLineModel{}).Where("product_id = ?", id))
	if err != nil {
		return 0, err
	}
	return quoteLines + orderLines, nil
}

// Save creates or updates a product
func (r *GormProductRepository) Save(ctx context.Context, product *catalog.Product) error {
	return translateError(r.db.WithContext(ctx).Save(models.ProductModelFromDomain(product)).Error)
}

func (r *GormProductRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return deleteRows(r.db.WithContext(ctx), &models.ProductModel{}, "id = ?", id)
}

// matching applies the search over name and description plus the
// pricing_mode and low_stock filters
func (r *GormProductRepository) matching(ctx context.Context, filter shared.Filter) *gorm.DB {
	query := r.products(ctx)
	if strings.TrimSpace(filter.Search) != "" {
		pattern := likePattern(filter.Search)
		query = query.Where("LOWER(name) LIKE ? ESCAPE '\\' OR LOWER(description) LIKE ? ESCAPE '\\'", pattern, pattern)
	}

	for key, value := range filter.Filters {
		switch key {
		case "pricing_mode":
			query = query.Where("pricing_mode = ?", value)
		case "low_stock":
			if value == true {
				query = query.Where("stock_quantity IS NOT NULL AND minimum_stock IS NOT NULL AND stock_quantity <= minimum_stock")
			}
		}
	}

	return query
}

var _ catalog.ProductRepository = (*GormProductRepository)(nil)
