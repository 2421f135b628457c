package trade

import (
	"context"

	"github.com/printdesk/backend/internal/domain/catalog"
	"github.com/printdesk/backend/internal/domain/trade"
)

// TransactionScope provides transactional access to trade repositories.
// All repository operations made through the repositories passed to fn are
// committed or rolled back together.
type TransactionScope interface {
	// Execute runs the given function within a database transaction.
	// If the function returns an error, the transaction is rolled back.
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories provides access to the trade repositories within a transaction.
type TransactionalRepositories interface {
	// QuoteRepo returns the quote repository scoped to the current transaction
	QuoteRepo() trade.QuoteRepository
	// OrderRepo returns the order repository scoped to the current transaction
	OrderRepo() trade.OrderRepository
	// PaymentRepo returns the payment repository scoped to the current transaction
	PaymentRepo() trade.PaymentRepository
	// ProductRepo returns the product repository scoped to the current transaction
	ProductRepo() catalog.ProductRepository
}

// NoOpTransactionScope runs functions against plain repositories without a transaction.
// It is used by unit tests.
type NoOpTransactionScope struct {
	quoteRepo   trade.QuoteRepository
	orderRepo   trade.OrderRepository
	paymentRepo trade.PaymentRepository
	productRepo catalog.ProductRepository
}

// NewNoOpTransactionScope creates a NoOpTransactionScope with the given repositories.
func NewNoOpTransactionScope(
	quoteRepo trade.QuoteRepository,
	orderRepo trade.OrderRepository,
	paymentRepo trade.PaymentRepository,
	productRepo catalog.ProductRepository,
) *NoOpTransactionScope {
	return &NoOpTransactionScope{
		quoteRepo:   quoteRepo,
		orderRepo:   orderRepo,
		paymentRepo: paymentRepo,
		productRepo: productRepo,
	}
}

// Execute runs the function without a real transaction.
func (s *NoOpTransactionScope) Execute(_ context.Context, fn func(repos TransactionalRepositories) error) error {
	return fn(s)
}

// QuoteRepo returns the quote repository.
func (s *NoOpTransactionScope) QuoteRepo() trade.QuoteRepository { return s.quoteRepo }

// OrderRepo returns the order repository.
func (s *NoOpTransactionScope) OrderRepo() trade.OrderRepository { return s.orderRepo }

// PaymentRepo returns the payment repository.
func (s *NoOpTransactionScope) PaymentRepo() trade.PaymentRepository { return s.paymentRepo }

// ProductRepo returns the product repository.
func (s *NoOpTransactionScope) ProductRepo() catalog.ProductRepository { return s.productRepo }

var _ TransactionScope = (*NoOpTransactionScope)(nil)
var _ TransactionalRepositories = (*NoOpTransactionScope)(nil)
