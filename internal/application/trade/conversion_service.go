package trade

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/printdesk/backend/internal/domain/partner"
	"github.com/printdesk/backend/internal/domain/shared"
	"github.com/printdesk/backend/internal/domain/trade"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// ConversionService turns quotes into orders.
//
// The conversion runs in a single transaction: the new order with its
// price-locked lines and the quote approval are committed together or not
// at all. A quote can be converted at most once.
type ConversionService struct {
	customerRepo partner.CustomerRepository
	txScope      TransactionScope
	metrics      Metrics
	logger       *zap.Logger
}

// NewConversionService creates a new ConversionService
func NewConversionService(customerRepo partner.CustomerRepository, txScope TransactionScope, logger *zap.Logger) *ConversionService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ConversionService{
		customerRepo: customerRepo,
		txScope:      txScope,
		metrics:      noopMetrics{},
		logger:       logger,
	}
}

// SetMetrics sets the business metrics recorder
func (s *ConversionService) SetMetrics(m Metrics) {
	if m != nil {
		s.metrics = m
	}
}

// Convert creates an order from a quote and approves the quote
func (s *ConversionService) Convert(ctx context.Context, quoteID uuid.UUID) (*OrderResponse, error) {
	var order *trade.Order
	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		quote, err := repos.QuoteRepo().FindByID(ctx, quoteID)
		if err != nil {
			return err
		}

		exists, err := repos.OrderRepo().ExistsByQuoteID(ctx, quoteID)
		if err != nil {
			return err
		}
		if exists {
			return trade.ErrQuoteAlreadyConverted
		}

		o, err := trade.NewOrderFromQuote(quote)
		if err != nil {
			return err
		}
		// Every line is locked, so no product lookup is needed.
		if _, err := o.RecalculateTotal(nil); err != nil {
			return err
		}
		o.ApplyPayments(decimal.Zero)

		if err := repos.OrderRepo().Save(ctx, o); err != nil {
			// A concurrent conversion won the unique quote_id constraint
			if errors.Is(err, shared.ErrAlreadyExists) {
				return trade.ErrQuoteAlreadyConverted
			}
			return err
		}

		quote.MarkApproved()
		if err := repos.QuoteRepo().Save(ctx, quote); err != nil {
			return err
		}
		order = o
		return nil
	})
	if err != nil {
		s.logger.Warn("Quote conversion failed",
			zap.String("quote_id", quoteID.String()),
			zap.String("code", shared.CodeOf(err)))
		return nil, err
	}

	s.metrics.RecordQuoteConverted(ctx)
	s.metrics.RecordOrderCreated(ctx, OrderSourceQuote, order.Total)
	s.logger.Info("Quote converted to order",
		zap.String("quote_id", quoteID.String()),
		zap.String("order_id", order.ID.String()),
		zap.String("total", order.Total.StringFixed(2)))

	response := ToOrderResponse(order)
	if c, err := s.customerRepo.FindByID(ctx, order.CustomerID); err == nil {
		response.CustomerName = c.Name
	}
	setBalance(&response, order, decimal.Zero)
	return &response, nil
}
