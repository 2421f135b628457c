package persistence

import (
	"context"

	"github.com/google/uuid"
	"github.com/printdesk/backend/internal/domain/shared"
	"github.com/printdesk/backend/internal/domain/trade"
	"github.com/printdesk/backend/internal/infrastructure/persistence/models"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GormPaymentRepository stores payments recorded against orders
type GormPaymentRepository struct {
	db *gorm.DB
}

func NewGormPaymentRepository(db *gorm.DB) *GormPaymentRepository {
	return &GormPaymentRepository{db: db}
}

func (r *GormPaymentRepository) FindByID(ctx context.Context, id uuid.UUID) (*trade.Payment, error) {
	return firstRow[models.PaymentModel, trade.Payment](r.db.WithContext(ctx), "id = ?", id)
}

// FindByOrder lists payments of an order, oldest first
func (r *GormPaymentRepository) FindByOrder(ctx context.Context, orderID uuid.UUID) ([]trade.Payment, error) {
	return allRows[models.PaymentModel, trade.Payment](r.db.WithContext(ctx).
		Where("order_id = ?", orderID).
		Order("paid_at ASC").Order("created_at ASC"))
}

// FindAll lists payments matching the filter, newest first by default
func (r *GormPaymentRepository) FindAll(ctx context.Context, filter trade.PaymentFilter, page shared.Filter) ([]trade.Payment, error) {
	return allRows[models.PaymentModel, trade.Payment](applyPage(r.payments(ctx, filter), page, paymentSort, "paid_at"))
}

func (r *GormPaymentRepository) Count(ctx context.Context, filter trade.PaymentFilter) (int64, error) {
	return countRows(r.payments(ctx, filter))
}

// SumByOrder returns the cumulative amount paid against an order
func (r *GormPaymentRepository) SumByOrder(ctx context.Context, orderID uuid.UUID) (decimal.Decimal, error) {
	var result struct {
		Total decimal.Decimal
	}
	if err := r.db.WithContext(ctx).
		Model(&models.PaymentModel{}).
		Select("COALESCE(SUM(amount), 0) as total").
		Where("order_id = ?", orderID).
		Scan(&result).Error; err != nil {
		return decimal.Zero, err
	}
	return result.Total, nil
}

// Save creates a payment
func (r *GormPaymentRepository) Save(ctx context.Context, payment *trade.Payment) error {
	return translateError(r.db.WithContext(ctx).Save(models.PaymentModelFromDomain(payment)).Error)
}

func (r *GormPaymentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return deleteRows(r.db.WithContext(ctx), &models.PaymentModel{}, "id = ?", id)
}

func (r *GormPaymentRepository) payments(ctx context.Context, filter trade.PaymentFilter) *gorm.DB {
	return r.applyFilter(r.db.WithContext(ctx).Model(&models.PaymentModel{}), filter)
}

func (r *GormPaymentRepository) applyFilter(query *gorm.DB, filter trade.PaymentFilter) *gorm.DB {
	if filter.OrderID != nil {
		query = query.Where("order_id = ?", *filter.OrderID)
	}
	if filter.Method != "" {
		query = query.Where("method = ?", filter.Method)
	}
	if filter.From != nil {
		query = query.Where("paid_at >= ?", *filter.From)
	}
	if filter.To != nil {
		query = query.Where("paid_at <= ?", *filter.To)
	}
	return query
}

var _ trade.PaymentRepository = (*GormPaymentRepository)(nil)
