package trade

import (
	"context"

	"github.com/google/uuid"
	"github.com/printdesk/backend/internal/domain/catalog"
	"github.com/printdesk/backend/internal/domain/partner"
	"github.com/printdesk/backend/internal/domain/trade"
	"go.uber.org/zap"
)

// QuoteService handles quotes and their lines.
// Every line mutation recalculates the quote total in the same transaction.
type QuoteService struct {
	quoteRepo    trade.QuoteRepository
	customerRepo partner.CustomerRepository
	productRepo  catalog.ProductRepository
	txScope      TransactionScope
	logger       *zap.Logger
}

// NewQuoteService creates a new QuoteService
func NewQuoteService(
	quoteRepo trade.QuoteRepository,
	customerRepo partner.CustomerRepository,
	productRepo catalog.ProductRepository,
	txScope TransactionScope,
	logger *zap.Logger,
) *QuoteService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &QuoteService{
		quoteRepo:    quoteRepo,
		customerRepo: customerRepo,
		productRepo:  productRepo,
		txScope:      txScope,
		logger:       logger,
	}
}

// Create creates a quote together with its initial lines
func (s *QuoteService) Create(ctx context.Context, req CreateQuoteRequest) (*QuoteResponse, error) {
	customer, err := ensureCustomer(ctx, s.customerRepo, req.CustomerID)
	if err != nil {
		return nil, err
	}

	quote, err := trade.NewQuote(req.CustomerID, req.Notes, req.ValidUntil)
	if err != nil {
		return nil, err
	}

	inputs := toLineInputs(req.Lines)
	err = s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		products, err := loadProducts(ctx, repos.ProductRepo(), nil, inputs...)
		if err != nil {
			return err
		}
		for _, in := range inputs {
			if _, err := quote.AddLine(in, productFor(products, in.ProductID)); err != nil {
				return err
			}
		}
		quote.RecalculateTotal()
		return repos.QuoteRepo().Save(ctx, quote)
	})
	if err != nil {
		return nil, err
	}

	response := ToQuoteResponse(quote)
	response.CustomerName = customer.Name
	return &response, nil
}

// GetByID retrieves a quote with its lines
func (s *QuoteService) GetByID(ctx context.Context, quoteID uuid.UUID) (*QuoteResponse, error) {
	quote, err := s.quoteRepo.FindByID(ctx, quoteID)
	if err != nil {
		return nil, err
	}
	return s.toResponse(ctx, quote), nil
}

// GetDomain returns the quote aggregate, used by document rendering
func (s *QuoteService) GetDomain(ctx context.Context, quoteID uuid.UUID) (*trade.Quote, error) {
	return s.quoteRepo.FindByID(ctx, quoteID)
}

// List retrieves quotes with filtering and pagination
func (s *QuoteService) List(ctx context.Context, filter QuoteListFilter) ([]QuoteResponse, int64, error) {
	domainFilter := pageDefaults(filter.Page, filter.PageSize, filter.OrderBy, filter.OrderDir)
	domainFilter.Search = filter.Search
	if filter.Status != "" {
		domainFilter.Filters["status"] = trade.QuoteStatus(filter.Status)
	}
	if filter.CustomerID != nil {
		domainFilter.Filters["customer_id"] = *filter.CustomerID
	}

	quotes, err := s.quoteRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.quoteRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	ids := make([]uuid.UUID, len(quotes))
	for i := range quotes {
		ids[i] = quotes[i].CustomerID
	}
	names, err := customerNames(ctx, s.customerRepo, ids)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]QuoteResponse, len(quotes))
	for i := range quotes {
		responses[i] = ToQuoteListResponse(&quotes[i])
		responses[i].CustomerName = names[quotes[i].CustomerID]
	}
	return responses, total, nil
}

// Update changes the header fields of a quote
func (s *QuoteService) Update(ctx context.Context, quoteID uuid.UUID, req UpdateQuoteRequest) (*QuoteResponse, error) {
	quote, err := s.quoteRepo.FindByID(ctx, quoteID)
	if err != nil {
		return nil, err
	}

	customerID := quote.CustomerID
	if req.CustomerID != nil && *req.CustomerID != quote.CustomerID {
		if _, err := ensureCustomer(ctx, s.customerRepo, *req.CustomerID); err != nil {
			return nil, err
		}
		customerID = *req.CustomerID
	}
	notes := quote.Notes
	if req.Notes != nil {
		notes = *req.Notes
	}
	validUntil := quote.ValidUntil
	if req.ValidUntil != nil {
		validUntil = req.ValidUntil
	}

	if err := quote.Update(customerID, notes, validUntil); err != nil {
		return nil, err
	}
	if err := s.quoteRepo.Save(ctx, quote); err != nil {
		return nil, err
	}
	return s.toResponse(ctx, quote), nil
}

// ChangeStatus moves a quote to Open, Approved or Rejected
func (s *QuoteService) ChangeStatus(ctx context.Context, quoteID uuid.UUID, req ChangeQuoteStatusRequest) (*QuoteResponse, error) {
	quote, err := s.quoteRepo.FindByID(ctx, quoteID)
	if err != nil {
		return nil, err
	}
	if err := quote.ChangeStatus(trade.QuoteStatus(req.Status)); err != nil {
		return nil, err
	}
	if err := s.quoteRepo.Save(ctx, quote); err != nil {
		return nil, err
	}
	s.logger.Info("Quote status changed",
		zap.String("quote_id", quoteID.String()),
		zap.String("status", req.Status))
	return s.toResponse(ctx, quote), nil
}

// Delete deletes a quote and its lines. A converted order keeps existing
// with its quote reference cleared.
func (s *QuoteService) Delete(ctx context.Context, quoteID uuid.UUID) error {
	if _, err := s.quoteRepo.FindByID(ctx, quoteID); err != nil {
		return err
	}
	return s.quoteRepo.Delete(ctx, quoteID)
}

// ListLines returns the lines of a quote
func (s *QuoteService) ListLines(ctx context.Context, quoteID uuid.UUID) ([]LineResponse, error) {
	quote, err := s.quoteRepo.FindByID(ctx, quoteID)
	if err != nil {
		return nil, err
	}
	return ToLineResponses(quote.Lines), nil
}

// AddLine prices and appends a line, then refreshes the quote total
func (s *QuoteService) AddLine(ctx context.Context, quoteID uuid.UUID, req LineRequest) (*QuoteResponse, error) {
	input := req.ToInput()
	return s.mutate(ctx, quoteID, func(q *trade.Quote, repos TransactionalRepositories) error {
		products, err := loadProducts(ctx, repos.ProductRepo(), nil, input)
		if err != nil {
			return err
		}
		_, err = q.AddLine(input, productFor(products, input.ProductID))
		return err
	})
}

// UpdateLine re-prices a line with new inputs, then refreshes the quote total
func (s *QuoteService) UpdateLine(ctx context.Context, quoteID, lineID uuid.UUID, req LineRequest) (*QuoteResponse, error) {
	input := req.ToInput()
	return s.mutate(ctx, quoteID, func(q *trade.Quote, repos TransactionalRepositories) error {
		products, err := loadProducts(ctx, repos.ProductRepo(), nil, input)
		if err != nil {
			return err
		}
		_, err = q.UpdateLine(lineID, input, productFor(products, input.ProductID))
		return err
	})
}

// RemoveLine deletes a line, then refreshes the quote total
func (s *QuoteService) RemoveLine(ctx context.Context, quoteID, lineID uuid.UUID) (*QuoteResponse, error) {
	return s.mutate(ctx, quoteID, func(q *trade.Quote, _ TransactionalRepositories) error {
		return q.RemoveLine(lineID)
	})
}

func (s *QuoteService) mutate(ctx context.Context, quoteID uuid.UUID, fn func(q *trade.Quote, repos TransactionalRepositories) error) (*QuoteResponse, error) {
	var quote *trade.Quote
	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		q, err := repos.QuoteRepo().FindByID(ctx, quoteID)
		if err != nil {
			return err
		}
		if err := fn(q, repos); err != nil {
			return err
		}
		q.RecalculateTotal()
		if err := repos.QuoteRepo().Save(ctx, q); err != nil {
			return err
		}
		quote = q
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.toResponse(ctx, quote), nil
}

func (s *QuoteService) toResponse(ctx context.Context, quote *trade.Quote) *QuoteResponse {
	response := ToQuoteResponse(quote)
	if c, err := s.customerRepo.FindByID(ctx, quote.CustomerID); err == nil {
		response.CustomerName = c.Name
	} else {
		s.logger.Warn("Failed to load quote customer",
			zap.String("quote_id", quote.ID.String()),
			zap.Error(err))
	}
	return &response
}
