package trade

import (
	"context"

	"github.com/google/uuid"
	"github.com/printdesk/backend/internal/domain/catalog"
	"github.com/printdesk/backend/internal/domain/partner"
	"github.com/printdesk/backend/internal/domain/trade"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// OrderService handles orders and their lines.
// Line changes re-price unlocked lines, refresh the total and re-derive the
// payment status inside one transaction.
type OrderService struct {
	orderRepo    trade.OrderRepository
	paymentRepo  trade.PaymentRepository
	customerRepo partner.CustomerRepository
	productRepo  catalog.ProductRepository
	txScope      TransactionScope
	metrics      Metrics
	logger       *zap.Logger
}

// NewOrderService creates a new OrderService
func NewOrderService(
	orderRepo trade.OrderRepository,
	paymentRepo trade.PaymentRepository,
	customerRepo partner.CustomerRepository,
	productRepo catalog.ProductRepository,
	txScope TransactionScope,
	logger *zap.Logger,
) *OrderService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &OrderService{
		orderRepo:    orderRepo,
		paymentRepo:  paymentRepo,
		customerRepo: customerRepo,
		productRepo:  productRepo,
		txScope:      txScope,
		metrics:      noopMetrics{},
		logger:       logger,
	}
}

// SetMetrics sets the business metrics recorder
func (s *OrderService) SetMetrics(m Metrics) {
	if m != nil {
		s.metrics = m
	}
}

// Create creates an order directly, without a quote
func (s *OrderService) Create(ctx context.Context, req CreateOrderRequest) (*OrderResponse, error) {
	customer, err := ensureCustomer(ctx, s.customerRepo, req.CustomerID)
	if err != nil {
		return nil, err
	}

	order, err := trade.NewOrder(trade.OrderInput{
		CustomerID:       req.CustomerID,
		ProductionStatus: req.ProductionStatus,
		ProductionCost:   req.ProductionCost,
		Shipping:         req.Shipping.toDomain(),
		DueDate:          req.DueDate,
		Notes:            req.Notes,
	})
	if err != nil {
		return nil, err
	}

	inputs := toLineInputs(req.Lines)
	err = s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		products, err := loadProducts(ctx, repos.ProductRepo(), nil, inputs...)
		if err != nil {
			return err
		}
		lines, err := trade.NewLines(inputs, products)
		if err != nil {
			return err
		}
		order.ReplaceLines(lines)
		if _, err := order.RecalculateTotal(products); err != nil {
			return err
		}
		order.ApplyPayments(decimal.Zero)
		return repos.OrderRepo().Save(ctx, order)
	})
	if err != nil {
		return nil, err
	}

	s.metrics.RecordOrderCreated(ctx, OrderSourceDirect, order.Total)
	s.logger.Info("Order created",
		zap.String("order_id", order.ID.String()),
		zap.String("total", order.Total.StringFixed(2)))

	response := ToOrderResponse(order)
	response.CustomerName = customer.Name
	setBalance(&response, order, decimal.Zero)
	return &response, nil
}

// GetByID retrieves an order with its lines and payment balance
func (s *OrderService) GetByID(ctx context.Context, orderID uuid.UUID) (*OrderResponse, error) {
	order, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	return s.toResponse(ctx, order)
}

// GetDomain returns the order aggregate, used by document rendering
func (s *OrderService) GetDomain(ctx context.Context, orderID uuid.UUID) (*trade.Order, decimal.Decimal, error) {
	order, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, decimal.Zero, err
	}
	paid, err := s.paymentRepo.SumByOrder(ctx, orderID)
	if err != nil {
		return nil, decimal.Zero, err
	}
	return order, paid, nil
}

// List retrieves orders with filtering and pagination
func (s *OrderService) List(ctx context.Context, filter OrderListFilter) ([]OrderResponse, int64, error) {
	domainFilter := pageDefaults(filter.Page, filter.PageSize, filter.OrderBy, filter.OrderDir)
	if filter.PaymentStatus != "" {
		domainFilter.Filters["payment_status"] = trade.PaymentStatus(filter.PaymentStatus)
	}
	if filter.ProductionStatus != "" {
		domainFilter.Filters["production_status"] = filter.ProductionStatus
	}
	if filter.CustomerID != nil {
		domainFilter.Filters["customer_id"] = *filter.CustomerID
	}

	orders, err := s.orderRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.orderRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	ids := make([]uuid.UUID, len(orders))
	for i := range orders {
		ids[i] = orders[i].CustomerID
	}
	names, err := customerNames(ctx, s.customerRepo, ids)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]OrderResponse, len(orders))
	for i := range orders {
		responses[i] = ToOrderListResponse(&orders[i])
		responses[i].CustomerName = names[orders[i].CustomerID]
	}
	return responses, total, nil
}

// Update changes order fields. When req.Lines is set the whole line set is
// replaced, the total recomputed and the payment status re-derived.
func (s *OrderService) Update(ctx context.Context, orderID uuid.UUID, req UpdateOrderRequest) (*OrderResponse, error) {
	if req.CustomerID != nil {
		if _, err := ensureCustomer(ctx, s.customerRepo, *req.CustomerID); err != nil {
			return nil, err
		}
	}

	var order *trade.Order
	var paid decimal.Decimal
	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		o, err := repos.OrderRepo().FindByIDForUpdate(ctx, orderID)
		if err != nil {
			return err
		}

		input := trade.OrderInput{
			CustomerID:     o.CustomerID,
			ProductionCost: o.ProductionCost,
			Shipping:       o.Shipping,
			DueDate:        o.DueDate,
			Notes:          o.Notes,
		}
		if req.CustomerID != nil {
			input.CustomerID = *req.CustomerID
		}
		if req.ProductionStatus != nil {
			input.ProductionStatus = *req.ProductionStatus
		}
		if req.ProductionCost != nil {
			input.ProductionCost = *req.ProductionCost
		}
		if req.Shipping != nil {
			input.Shipping = req.Shipping.toDomain()
		}
		if req.DueDate != nil {
			input.DueDate = req.DueDate
		}
		if req.Notes != nil {
			input.Notes = *req.Notes
		}
		if err := o.Update(input); err != nil {
			return err
		}

		if req.Lines != nil {
			inputs := toLineInputs(*req.Lines)
			products, err := loadProducts(ctx, repos.ProductRepo(), nil, inputs...)
			if err != nil {
				return err
			}
			lines, err := trade.NewLines(inputs, products)
			if err != nil {
				return err
			}
			o.ReplaceLines(lines)
			if err := s.refresh(ctx, repos, o, products); err != nil {
				return err
			}
		}

		p, err := repos.PaymentRepo().SumByOrder(ctx, o.ID)
		if err != nil {
			return err
		}
		o.ApplyPayments(p)
		if err := repos.OrderRepo().Save(ctx, o); err != nil {
			return err
		}
		order, paid = o, p
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.withBalance(ctx, order, paid), nil
}

// SetProductionStatus changes the production label of an order
func (s *OrderService) SetProductionStatus(ctx context.Context, orderID uuid.UUID, req ProductionStatusRequest) (*OrderResponse, error) {
	order, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	previous := order.ProductionStatus
	if err := order.SetProductionStatus(req.Status); err != nil {
		return nil, err
	}
	if err := s.orderRepo.Save(ctx, order); err != nil {
		return nil, err
	}
	s.logger.Info("Order production status changed",
		zap.String("order_id", orderID.String()),
		zap.String("from", previous),
		zap.String("to", order.ProductionStatus))
	return s.toResponse(ctx, order)
}

// Delete deletes an order together with its lines and payments
func (s *OrderService) Delete(ctx context.Context, orderID uuid.UUID) error {
	if _, err := s.orderRepo.FindByID(ctx, orderID); err != nil {
		return err
	}
	if err := s.orderRepo.Delete(ctx, orderID); err != nil {
		return err
	}
	s.logger.Info("Order deleted", zap.String("order_id", orderID.String()))
	return nil
}

// ListLines returns the lines of an order
func (s *OrderService) ListLines(ctx context.Context, orderID uuid.UUID) ([]LineResponse, error) {
	order, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	return ToLineResponses(order.Lines), nil
}

// AddLine prices and appends a line to an order
func (s *OrderService) AddLine(ctx context.Context, orderID uuid.UUID, req LineRequest) (*OrderResponse, error) {
	input := req.ToInput()
	return s.mutate(ctx, orderID, []trade.LineInput{input}, func(o *trade.Order, products map[uuid.UUID]*catalog.Product) error {
		_, err := o.AddLine(input, productFor(products, input.ProductID))
		return err
	})
}

// UpdateLine re-prices a line of an order with new inputs
func (s *OrderService) UpdateLine(ctx context.Context, orderID, lineID uuid.UUID, req LineRequest) (*OrderResponse, error) {
	input := req.ToInput()
	return s.mutate(ctx, orderID, []trade.LineInput{input}, func(o *trade.Order, products map[uuid.UUID]*catalog.Product) error {
		_, err := o.UpdateLine(lineID, input, productFor(products, input.ProductID))
		return err
	})
}

// RemoveLine deletes a line of an order
func (s *OrderService) RemoveLine(ctx context.Context, orderID, lineID uuid.UUID) (*OrderResponse, error) {
	return s.mutate(ctx, orderID, nil, func(o *trade.Order, _ map[uuid.UUID]*catalog.Product) error {
		return o.RemoveLine(lineID)
	})
}

func (s *OrderService) mutate(
	ctx context.Context,
	orderID uuid.UUID,
	inputs []trade.LineInput,
	fn func(o *trade.Order, products map[uuid.UUID]*catalog.Product) error,
) (*OrderResponse, error) {
	var order *trade.Order
	var paid decimal.Decimal
	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		o, err := repos.OrderRepo().FindByIDForUpdate(ctx, orderID)
		if err != nil {
			return err
		}
		products, err := loadProducts(ctx, repos.ProductRepo(), o.Lines, inputs...)
		if err != nil {
			return err
		}
		if err := fn(o, products); err != nil {
			return err
		}
		if err := s.refresh(ctx, repos, o, products); err != nil {
			return err
		}
		p, err := repos.PaymentRepo().SumByOrder(ctx, o.ID)
		if err != nil {
			return err
		}
		o.ApplyPayments(p)
		if err := repos.OrderRepo().Save(ctx, o); err != nil {
			return err
		}
		order, paid = o, p
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.withBalance(ctx, order, paid), nil
}

// refresh re-prices unlocked lines and recomputes the order total. Products
// referenced by existing lines but missing from the map are loaded first.
func (s *OrderService) refresh(ctx context.Context, repos TransactionalRepositories, o *trade.Order, products map[uuid.UUID]*catalog.Product) error {
	var missing []uuid.UUID
	for _, id := range trade.ProductIDs(o.Lines) {
		if _, ok := products[id]; !ok {
			missing = append(missing, id)
		}
	}
	if len(missing) > 0 {
		found, err := repos.ProductRepo().FindByIDs(ctx, missing)
		if err != nil {
			return err
		}
		for i := range found {
			products[found[i].ID] = &found[i]
		}
	}
	_, err := o.RecalculateTotal(products)
	return err
}

func (s *OrderService) toResponse(ctx context.Context, order *trade.Order) (*OrderResponse, error) {
	paid, err := s.paymentRepo.SumByOrder(ctx, order.ID)
	if err != nil {
		return nil, err
	}
	return s.withBalance(ctx, order, paid), nil
}

func (s *OrderService) withBalance(ctx context.Context, order *trade.Order, paid decimal.Decimal) *OrderResponse {
	response := ToOrderResponse(order)
	if c, err := s.customerRepo.FindByID(ctx, order.CustomerID); err == nil {
		response.CustomerName = c.Name
	} else {
		s.logger.Warn("Failed to load order customer",
			zap.String("order_id", order.ID.String()),
			zap.Error(err))
	}
	setBalance(&response, order, paid)
	return &response
}

func setBalance(r *OrderResponse, o *trade.Order, paid decimal.Decimal) {
	receivable := o.Receivable(paid)
	r.Paid = &paid
	r.Receivable = &receivable
}
