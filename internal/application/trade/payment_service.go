package trade

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/printdesk/backend/internal/domain/shared"
	"github.com/printdesk/backend/internal/domain/trade"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// PaymentService records payments and keeps the order payment status in
// step with the cumulative amount paid.
type PaymentService struct {
	paymentRepo trade.PaymentRepository
	orderRepo   trade.OrderRepository
	txScope     TransactionScope
	metrics     Metrics
	logger      *zap.Logger
}

// NewPaymentService creates a new PaymentService
func NewPaymentService(
	paymentRepo trade.PaymentRepository,
	orderRepo trade.OrderRepository,
	txScope TransactionScope,
	logger *zap.Logger,
) *PaymentService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PaymentService{
		paymentRepo: paymentRepo,
		orderRepo:   orderRepo,
		txScope:     txScope,
		metrics:     noopMetrics{},
		logger:      logger,
	}
}

// SetMetrics sets the business metrics recorder
func (s *PaymentService) SetMetrics(m Metrics) {
	if m != nil {
		s.metrics = m
	}
}

// Record records a payment against an order and re-derives its payment
// status. The order row stays locked until the transaction commits, so
// concurrent payments are summed one after the other.
func (s *PaymentService) Record(ctx context.Context, orderID uuid.UUID, req RecordPaymentRequest) (*PaymentResult, error) {
	method := trade.PaymentMethod(strings.ToUpper(strings.TrimSpace(req.Method)))

	var result *PaymentResult
	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		order, err := repos.OrderRepo().FindByIDForUpdate(ctx, orderID)
		if err != nil {
			return err
		}

		payment, err := trade.NewPayment(order.ID, req.Amount, method, req.PaidAt, req.Notes)
		if err != nil {
			return err
		}
		if err := repos.PaymentRepo().Save(ctx, payment); err != nil {
			return err
		}

		r, err := s.settle(ctx, repos, order)
		if err != nil {
			return err
		}
		resp := ToPaymentResponse(payment)
		r.Payment = &resp
		result = r
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.metrics.RecordPayment(ctx, method.String(), req.Amount)
	s.logger.Info("Payment recorded",
		zap.String("order_id", orderID.String()),
		zap.String("method", method.String()),
		zap.String("amount", req.Amount.StringFixed(2)),
		zap.String("payment_status", result.PaymentStatus))
	return result, nil
}

// Delete removes a payment and re-derives the order payment status
func (s *PaymentService) Delete(ctx context.Context, orderID, paymentID uuid.UUID) (*PaymentResult, error) {
	var result *PaymentResult
	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		order, err := repos.OrderRepo().FindByIDForUpdate(ctx, orderID)
		if err != nil {
			return err
		}
		payment, err := repos.PaymentRepo().FindByID(ctx, paymentID)
		if err != nil {
			return err
		}
		if payment.OrderID != order.ID {
			return shared.ErrNotFound
		}
		if err := repos.PaymentRepo().Delete(ctx, paymentID); err != nil {
			return err
		}
		result, err = s.settle(ctx, repos, order)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Payment deleted",
		zap.String("order_id", orderID.String()),
		zap.String("payment_id", paymentID.String()),
		zap.String("payment_status", result.PaymentStatus))
	return result, nil
}

// ListByOrder lists the payments of an order with its current balance
func (s *PaymentService) ListByOrder(ctx context.Context, orderID uuid.UUID) (*OrderPaymentsResponse, error) {
	order, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	payments, err := s.paymentRepo.FindByOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}

	amounts := make([]decimal.Decimal, len(payments))
	for i := range payments {
		amounts[i] = payments[i].Amount
	}
	paid := shared.SumMoney(amounts...)

	return &OrderPaymentsResponse{
		Payments:      ToPaymentResponses(payments),
		PaymentStatus: order.PaymentStatus.String(),
		Total:         order.Total,
		Paid:          paid,
		Receivable:    order.Receivable(paid),
	}, nil
}

// List lists payments across orders, newest first
func (s *PaymentService) List(ctx context.Context, filter PaymentListFilter) ([]PaymentResponse, int64, error) {
	page := pageDefaults(filter.Page, filter.PageSize, "paid_at", "desc")
	pf := trade.PaymentFilter{
		OrderID: filter.OrderID,
		Method:  trade.PaymentMethod(filter.Method),
		From:    filter.From,
	}
	if filter.To != nil {
		end := endOfDay(*filter.To)
		pf.To = &end
	}

	payments, err := s.paymentRepo.FindAll(ctx, pf, page)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.paymentRepo.Count(ctx, pf)
	if err != nil {
		return nil, 0, err
	}
	return ToPaymentResponses(payments), total, nil
}

// settle sums the payments of a locked order, stores the derived status and
// reports the new balance.
func (s *PaymentService) settle(ctx context.Context, repos TransactionalRepositories, order *trade.Order) (*PaymentResult, error) {
	paid, err := repos.PaymentRepo().SumByOrder(ctx, order.ID)
	if err != nil {
		return nil, err
	}
	status := order.ApplyPayments(paid)
	if err := repos.OrderRepo().Save(ctx, order); err != nil {
		return nil, err
	}
	return &PaymentResult{
		OrderID:       order.ID,
		PaymentStatus: status.String(),
		Total:         order.Total,
		Paid:          paid,
		Receivable:    order.Receivable(paid),
	}, nil
}
