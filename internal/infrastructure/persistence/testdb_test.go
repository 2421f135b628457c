package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/printdesk/backend/internal/domain/catalog"
	"github.com/printdesk/backend/internal/domain/partner"
	"github.com/printdesk/backend/internal/domain/trade"
	"github.com/printdesk/backend/internal/infrastructure/persistence/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestDB opens a private in-memory SQLite database with the full schema
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// every connection to :memory: is a new database
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(models.All()...))
	return db
}

func seedCustomer(t *testing.T, db *gorm.DB, name, taxID string) *partner.Customer {
	t.Helper()
	c, err := partner.NewCustomer(partner.CustomerInput{Name: name, TaxID: taxID})
	require.NoError(t, err)
	require.NoError(t, NewGormCustomerRepository(db).Save(context.Background(), c))
	return c
}

func seedProduct(t *testing.T, db *gorm.DB, name string, mode catalog.PricingMode, price string) *catalog.Product {
	t.Helper()
	p, err := catalog.NewProduct(catalog.ProductInput{
		Name:        name,
		PricingMode: mode,
		UnitPrice:   decimal.RequireFromString(price),
	})
	require.NoError(t, err)
	require.NoError(t, NewGormProductRepository(db).Save(context.Background(), p))
	return p
}

// seedOrder stores an order created at the given time with one line per product
func seedOrder(t *testing.T, db *gorm.DB, customer *partner.Customer, createdAt time.Time, products map[*catalog.Product]int) *trade.Order {
	t.Helper()
	o, err := trade.NewOrder(trade.OrderInput{CustomerID: customer.ID})
	require.NoError(t, err)
	o.CreatedAt = createdAt
	o.UpdatedAt = createdAt

	for p, qty := range products {
		productID := p.ID
		_, err := o.AddLine(trade.LineInput{ProductID: &productID, Quantity: qty}, p)
		require.NoError(t, err)
	}
	o.Total = sumSubtotals(o.Lines)

	require.NoError(t, NewGormOrderRepository(db).Save(context.Background(), o))
	return o
}

func seedPayment(t *testing.T, db *gorm.DB, orderID uuid.UUID, amount string, method trade.PaymentMethod, paidAt time.Time) *trade.Payment {
	t.Helper()
	p, err := trade.NewPayment(orderID, decimal.RequireFromString(amount), method, &paidAt, "")
	require.NoError(t, err)
	p.CreatedAt = paidAt
	require.NoError(t, NewGormPaymentRepository(db).Save(context.Background(), p))
	return p
}

func sumSubtotals(lines []trade.Line) decimal.Decimal {
	total := decimal.Zero
	for _, l := range lines {
		total = total.Add(l.Subtotal)
	}
	return total
}

// day returns midnight UTC of the given date
func day(year int, month time.Month, d int) time.Time {
	return time.Date(year, month, d, 0, 0, 0, 0, time.UTC)
}
