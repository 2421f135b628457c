package persistence

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/printdesk/backend/internal/domain/shared"
	"github.com/printdesk/backend/internal/domain/trade"
	"github.com/printdesk/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormQuoteRepository stores quotes and their lines
type GormQuoteRepository struct {
	db *gorm.DB
}

func NewGormQuoteRepository(db *gorm.DB) *GormQuoteRepository {
	return &GormQuoteRepository{db: db}
}

// FindByID loads a quote with its lines in position order
func (r *GormQuoteRepository) FindByID(ctx context.Context, id uuid.UUID) (*trade.Quote, error) {
	return firstRow[models.QuoteModel, trade.Quote](
		r.db.WithContext(ctx).Preload("Lines", orderLinesByPosition), "id = ?", id)
}

// FindAll lists quote headers; lines are left empty
func (r *GormQuoteRepository) FindAll(ctx context.Context, filter shared.Filter) ([]trade.Quote, error) {
	return allRows[models.QuoteModel, trade.Quote](applyPage(r.matching(ctx, filter), filter, quoteSort, "created_at"))
}

func (r *GormQuoteRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	return countRows(r.matching(ctx, filter))
}

// Save creates or updates a quote and synchronizes its lines
func (r *GormQuoteRepository) Save(ctx context.Context, quote *trade.Quote) error {
	model := models.QuoteModelFromDomain(quote)
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Save(model).Error; err != nil {
			return err
		}
		return syncLines(tx, "quote_id", model.ID, model.Lines)
	})
	return translateError(err)
}

// Delete deletes a quote and its lines. An order converted from the quote
// keeps existing with its quote reference cleared.
func (r *GormQuoteRepository) Delete(ctx context.Context, id uuid.UUID) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.OrderModel{}).
			Where("quote_id = ?", id).
			Update("quote_id", nil).Error; err != nil {
			return err
		}
		if err := tx.Where("quote_id = ?", id).Delete(&models.QuoteLineModel{}).Error; err != nil {
			return err
		}

		return deleteRows(tx, &models.QuoteModel{}, "id = ?", id)
	})
	return translateError(err)
}

// matching narrows by the free text search over notes and customer name,
// and by the status and customer_id filters
func (r *GormQuoteRepository) matching(ctx context.Context, filter shared.Filter) *gorm.DB {
	query := r.db.WithContext(ctx).Model(&models.QuoteModel{})
	if strings.TrimSpace(filter.Search) != "" {
		p := likePattern(filter.Search)
		byName := r.db.WithContext(ctx).Model(&models.CustomerModel{}).
			Select("id").
			Where("LOWER(name) LIKE ? ESCAPE '\\'", p)
		query = query.Where("LOWER(notes) LIKE ? ESCAPE '\\' OR customer_id IN (?)", p, byName)
	}
	for _, column := range []string{"status", "customer_id"} {
		if value, ok := filter.Filters[column]; ok {
			query = query.Where(column+" = ?", value)
		}
	}
	return query
}

var _ trade.QuoteRepository = (*GormQuoteRepository)(nil)
