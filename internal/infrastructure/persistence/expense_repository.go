package persistence

import (
	"context"

	"github.com/google/uuid"
	"github.com/printdesk/backend/internal/domain/finance"
	"github.com/printdesk/backend/internal/domain/shared"
	"github.com/printdesk/backend/internal/infrastructure/persistence/models"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GormExpenseRepository stores shop expenses
type GormExpenseRepository struct {
	db *gorm.DB
}

func NewGormExpenseRepository(db *gorm.DB) *GormExpenseRepository {
	return &GormExpenseRepository{db: db}
}

func (r *GormExpenseRepository) expenses(ctx context.Context, filter finance.ExpenseFilter) *gorm.DB {
	return r.applyFilter(r.db.WithContext(ctx).Model(&models.ExpenseModel{}), filter)
}

func (r *GormExpenseRepository) FindByID(ctx context.Context, id uuid.UUID) (*finance.Expense, error) {
	return firstRow[models.ExpenseModel, finance.Expense](r.db.WithContext(ctx), "id = ?", id)
}

// FindAll lists expenses matching the filter, newest first by default
func (r *GormExpenseRepository) FindAll(ctx context.Context, filter finance.ExpenseFilter, page shared.Filter) ([]finance.Expense, error) {
	return allRows[models.ExpenseModel, finance.Expense](applyPage(r.expenses(ctx, filter), page, expenseSort, "date"))
}

func (r *GormExpenseRepository) Count(ctx context.Context, filter finance.ExpenseFilter) (int64, error) {
	return countRows(r.expenses(ctx, filter))
}

// SumAmount totals expenses matching the filter
func (r *GormExpenseRepository) SumAmount(ctx context.Context, filter finance.ExpenseFilter) (decimal.Decimal, error) {
	var result struct {
		Total decimal.Decimal
	}
	if err := r.expenses(ctx, filter).
		Select("COALESCE(SUM(amount), 0) as total").
		Scan(&result).Error; err != nil {
		return decimal.Zero, err
	}
	return result.Total, nil
}

func (r *GormExpenseRepository) Save(ctx context.Context, expense *finance.Expense) error {
	return translateError(r.db.WithContext(ctx).Save(models.ExpenseModelFromDomain(expense)).Error)
}

func (r *GormExpenseRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return deleteRows(r.db.WithContext(ctx), &models.ExpenseModel{}, "id = ?", id)
}

func (r *GormExpenseRepository) applyFilter(query *gorm.DB, filter finance.ExpenseFilter) *gorm.DB {
	if filter.Category != "" {
		query = query.Where("category = ?", filter.Category)
	}
	if filter.From != nil {
		query = query.Where("date >= ?", *filter.From)
	}
	if filter.To != nil {
		query = query.Where("date <= ?", *filter.To)
	}
	return query
}

var _ finance.ExpenseRepository = (*GormExpenseRepository)(nil)
