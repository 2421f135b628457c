package persistence

import (
	"context"

	"github.com/google/uuid"
	"github.com/printdesk/backend/internal/domain/shared"
	"github.com/printdesk/backend/internal/domain/trade"
	"github.com/printdesk/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormOrderRepository stores orders and their lines
type GormOrderRepository struct {
	db *gorm.DB
}

func NewGormOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

func (r *GormOrderRepository) withLines(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Preload("Lines", orderLinesByPosition)
}

func (r *GormOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*trade.Order, error) {
	return firstRow[models.OrderModel, trade.Order](r.withLines(ctx), "id = ?", id)
}

// FindByIDForUpdate loads an order with SELECT ... FOR UPDATE and then its lines.
// The row lock is held until the surrounding transaction ends. SQLite has no
// row locks and its dialect drops the locking clause.
func (r *GormOrderRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*trade.Order, error) {
	db := r.db.WithContext(ctx)

	var model models.OrderModel
	if err := db.Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&model, "id = ?", id).Error; err != nil {
		return nil, notFound(err)
	}

	if err := orderLinesByPosition(db.Where("order_id = ?", model.ID)).Find(&model.Lines).Error; err != nil {
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByQuoteID finds the order converted from a quote
func (r *GormOrderRepository) FindByQuoteID(ctx context.Context, quoteID uuid.UUID) (*trade.Order, error) {
	return firstRow[models.OrderModel, trade.Order](r.withLines(ctx), "quote_id = ?", quoteID)
}

func (r *GormOrderRepository) ExistsByQuoteID(ctx context.Context, quoteID uuid.UUID) (bool, error) {
	return anyRows(r.db.WithContext(ctx).Model(&models.OrderModel{}).Where("quote_id = ?", quoteID))
}

// FindAll lists order headers; lines are left empty
func (r *GormOrderRepository) FindAll(ctx context.Context, filter shared.Filter) ([]trade.Order, error) {
	return allRows[models.OrderModel, trade.Order](applyPage(r.matching(ctx, filter), filter, orderSort, "created_at"))
}

func (r *GormOrderRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	return countRows(r.matching(ctx, filter))
}

// Save creates or updates an order and synchronizes its lines.
// A second order for the same quote fails with shared.ErrAlreadyExists.
func (r *GormOrderRepository) Save(ctx context.Context, order *trade.Order) error {
	model := models.OrderModelFromDomain(order)
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Save(model).Error; err != nil {
			return err
		}
		return syncLines(tx, "order_id", model.ID, model.Lines)
	})
	return translateError(err)
}

// Delete deletes an order with its lines and payments
func (r *GormOrderRepository) Delete(ctx context.Context, id uuid.UUID) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("order_id = ?", id).Delete(&models.PaymentModel{}).Error; err != nil {
			return err
		}
		if err := tx.Where("order_id = ?", id).Delete(&models.OrderLineModel{}).Error; err != nil {
			return err
		}

		return deleteRows(tx, &models.OrderModel{}, "id = ?", id)
	})
	return translateError(err)
}

func (r *GormOrderRepository) matching(ctx context.Context, filter shared.Filter) *gorm.DB {
	query := r.db.WithContext(ctx).Model(&models.OrderModel{})
	for _, column := range []string{"payment_status", "production_status", "customer_id"} {
		if value, ok := filter.Filters[column]; ok {
			query = query.Where(column+" = ?", value)
		}
	}
	return query
}

var _ trade.OrderRepository = (*GormOrderRepository)(nil)
