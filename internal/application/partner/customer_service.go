package partner

import (
	"context"

	"github.com/google/uuid"
	"github.com/printdesk/backend/internal/domain/partner"
	"github.com/printdesk/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// CustomerService handles customer-related business operations
type CustomerService struct {
	customerRepo partner.CustomerRepository
	logger       *zap.Logger
}

// NewCustomerService creates a new CustomerService
func NewCustomerService(customerRepo partner.CustomerRepository, logger *zap.Logger) *CustomerService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CustomerService{
		customerRepo: customerRepo,
		logger:       logger,
	}
}

// Create creates a new customer
func (s *CustomerService) Create(ctx context.Context, req CreateCustomerRequest) (*CustomerResponse, error) {
	customer, err := partner.NewCustomer(partner.CustomerInput{
		Name:    req.Name,
		Email:   req.Email,
		Phone:   req.Phone,
		TaxID:   req.TaxID,
		Notes:   req.Notes,
		Address: req.Address.ToDomain(),
	})
	if err != nil {
		return nil, err
	}

	if err := s.ensureTaxIDAvailable(ctx, customer.TaxID, uuid.Nil); err != nil {
		return nil, err
	}

	if err := s.customerRepo.Save(ctx, customer); err != nil {
		return nil, err
	}

	response := ToCustomerResponse(customer)
	return &response, nil
}

// GetByID retrieves a customer by ID
func (s *CustomerService) GetByID(ctx context.Context, customerID uuid.UUID) (*CustomerResponse, error) {
	customer, err := s.customerRepo.FindByID(ctx, customerID)
	if err != nil {
		return nil, err
	}

	response := ToCustomerResponse(customer)
	return &response, nil
}

// List retrieves a list of customers with filtering and pagination
func (s *CustomerService) List(ctx context.Context, filter CustomerListFilter) ([]CustomerResponse, int64, error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}
	if filter.OrderBy == "" {
		filter.OrderBy = "name"
	}
	if filter.OrderDir == "" {
		filter.OrderDir = "asc"
	}

	domainFilter := shared.Filter{
		Page:     filter.Page,
		PageSize: filter.PageSize,
		OrderBy:  filter.OrderBy,
		OrderDir: filter.OrderDir,
		Search:   filter.Search,
	}

	customers, err := s.customerRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	total, err := s.customerRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	return ToCustomerResponses(customers), total, nil
}

// Update updates a customer
func (s *CustomerService) Update(ctx context.Context, customerID uuid.UUID, req UpdateCustomerRequest) (*CustomerResponse, error) {
	customer, err := s.customerRepo.FindByID(ctx, customerID)
	if err != nil {
		return nil, err
	}

	input := partner.CustomerInput{
		Name:    customer.Name,
		Email:   customer.Email,
		Phone:   customer.Phone,
		TaxID:   customer.TaxID,
		Notes:   customer.Notes,
		Address: customer.Address,
	}
	if req.Name != nil {
		input.Name = *req.Name
	}
	if req.Email != nil {
		input.Email = *req.Email
	}
	if req.Phone != nil {
		input.Phone = *req.Phone
	}
	if req.TaxID != nil {
		input.TaxID = *req.TaxID
	}
	if req.Notes != nil {
		input.Notes = *req.Notes
	}
	if req.Address != nil {
		input.Address = req.Address.ToDomain()
	}

	if err := customer.Update(input); err != nil {
		return nil, err
	}

	if err := s.ensureTaxIDAvailable(ctx, customer.TaxID, customer.ID); err != nil {
		return nil, err
	}

	if err := s.customerRepo.Save(ctx, customer); err != nil {
		return nil, err
	}

	response := ToCustomerResponse(customer)
	return &response, nil
}

// Delete deletes a customer that no quote or order references
func (s *CustomerService) Delete(ctx context.Context, customerID uuid.UUID) error {
	if _, err := s.customerRepo.FindByID(ctx, customerID); err != nil {
		return err
	}

	refs, err := s.customerRepo.CountReferences(ctx, customerID)
	if err != nil {
		return err
	}
	if refs > 0 {
		return partner.ErrCustomerInUse
	}

	if err := s.customerRepo.Delete(ctx, customerID); err != nil {
		return err
	}
	s.logger.Info("Customer deleted", zap.String("customer_id", customerID.String()))
	return nil
}

func (s *CustomerService) ensureTaxIDAvailable(ctx context.Context, taxID string, excludeID uuid.UUID) error {
	if taxID == "" {
		return nil
	}
	exists, err := s.customerRepo.ExistsByTaxID(ctx, taxID, excludeID)
	if err != nil {
		return err
	}
	if exists {
		return partner.ErrDuplicateTaxID
	}
	return nil
}
