package catalog

import (
	"context"

	"github.com/google/uuid"
	"github.com/printdesk/backend/internal/domain/catalog"
	"github.com/printdesk/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// ProductService handles product-related business operations
type ProductService struct {
	productRepo catalog.ProductRepository
	logger      *zap.Logger
}

// NewProductService creates a new ProductService
func NewProductService(productRepo catalog.ProductRepository, logger *zap.Logger) *ProductService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ProductService{
		productRepo: productRepo,
		logger:      logger,
	}
}

// Create creates a new product
func (s *ProductService) Create(ctx context.Context, req CreateProductRequest) (*ProductResponse, error) {
	product, err := catalog.NewProduct(catalog.ProductInput{
		Name:          req.Name,
		Description:   req.Description,
		PricingMode:   catalog.PricingMode(req.PricingMode),
		UnitPrice:     req.UnitPrice,
		Cost:          req.Cost,
		StockQuantity: req.StockQuantity,
		MinimumStock:  req.MinimumStock,
	})
	if err != nil {
		return nil, err
	}

	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}

	response := ToProductResponse(product)
	return &response, nil
}

// GetByID retrieves a product by ID
func (s *ProductService) GetByID(ctx context.Context, productID uuid.UUID) (*ProductResponse, error) {
	product, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}

	response := ToProductResponse(product)
	return &response, nil
}

// List retrieves a list of products with filtering and pagination
func (s *ProductService) List(ctx context.Context, filter ProductListFilter) ([]ProductResponse, int64, error) {
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
		Filters:  make(map[string]interface{}),
	}
	if filter.PricingMode != "" {
		domainFilter.Filters["pricing_mode"] = catalog.PricingMode(filter.PricingMode)
	}
	if filter.LowStock {
		domainFilter.Filters["low_stock"] = true
	}

	products, err := s.productRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	total, err := s.productRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	return ToProductResponses(products), total, nil
}

// Update updates a product. Lines already priced keep their subtotals.
func (s *ProductService) Update(ctx context.Context, productID uuid.UUID, req UpdateProductRequest) (*ProductResponse, error) {
	product, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}

	input := catalog.ProductInput{
		Name:          product.Name,
		Description:   product.Description,
		PricingMode:   product.PricingMode,
		UnitPrice:     product.UnitPrice,
		Cost:          product.Cost,
		StockQuantity: product.StockQuantity,
		MinimumStock:  product.MinimumStock,
	}
	if req.Name != nil {
		input.Name = *req.Name
	}
	if req.Description != nil {
		input.Description = *req.Description
	}
	if req.PricingMode != nil {
		input.PricingMode = catalog.PricingMode(*req.PricingMode)
	}
	if req.UnitPrice != nil {
		input.UnitPrice = *req.UnitPrice
	}
	if req.Cost != nil {
		input.Cost = *req.Cost
	}
	if req.ClearStock {
		input.StockQuantity = nil
		input.MinimumStock = nil
	}
	if req.StockQuantity != nil {
		input.StockQuantity = req.StockQuantity
	}
	if req.MinimumStock != nil {
		input.MinimumStock = req.MinimumStock
	}

	if err := product.Update(input); err != nil {
		return nil, err
	}

	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}

	response := ToProductResponse(product)
	return &response, nil
}

// Delete deletes a product that no quote or order line references
func (s *ProductService) Delete(ctx context.Context, productID uuid.UUID) error {
	if _, err := s.productRepo.FindByID(ctx, productID); err != nil {
		return err
	}

	refs, err := s.productRepo.CountReferences(ctx, productID)
	if err != nil {
		return err
	}
	if refs > 0 {
		return catalog.ErrProductInUse
	}

	if err := s.productRepo.Delete(ctx, productID); err != nil {
		return err
	}
	s.logger.Info("Product deleted", zap.String("product_id", productID.String()))
	return nil
}
