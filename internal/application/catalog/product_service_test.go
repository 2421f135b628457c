package catalog

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/printdesk/backend/internal/domain/catalog"
	"github.com/printdesk/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockProductRepository is a mock implementation of ProductRepository
type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]catalog.Product, error) {
	args := m.Called(ctx, ids)
	return args.Get(0).([]catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindAll(ctx context.Context, filter shared.Filter) ([]catalog.Product, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]catalog.Product), args.Error(1)
}

func (m *MockProductRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockProductRepository) CountReferences(ctx context.Context, id uuid.UUID) (int64, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockProductRepository) Save(ctx context.Context, product *catalog.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *MockProductRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func createTestProduct(t *testing.T, mode catalog.PricingMode) *catalog.Product {
	t.Helper()
	p, err := catalog.NewProduct(catalog.ProductInput{
		Name:        "Banner",
		PricingMode: mode,
		UnitPrice:   decimal.NewFromInt(45),
	})
	require.NoError(t, err)
	return p
}

func intPtr(i int) *int { return &i }

func TestProductService_Create_Success(t *testing.T) {
	mockRepo := new(MockProductRepository)
	service := NewProductService(mockRepo, nil)
	ctx := context.Background()

	req := CreateProductRequest{
		Name:          "Lona fosca",
		PricingMode:   "AREA",
		UnitPrice:     decimal.RequireFromString("45.90"),
		Cost:          decimal.RequireFromString("18"),
		StockQuantity: intPtr(3),
		MinimumStock:  intPtr(5),
	}
	mockRepo.On("Save", ctx, mock.AnythingOfType("*catalog.Product")).Return(nil)

	result, err := service.Create(ctx, req)

	require.NoError(t, err)
	assert.Equal(t, "AREA", result.PricingMode)
	assert.Equal(t, "45.9", result.UnitPrice.String())
	assert.True(t, result.LowStock)
	mockRepo.AssertExpectations(t)
}

func TestProductService_Create_DefaultsToUnit(t *testing.T) {
	mockRepo := new(MockProductRepository)
	service := NewProductService(mockRepo, nil)
	ctx := context.Background()
	mockRepo.On("Save", ctx, mock.AnythingOfType("*catalog.Product")).Return(nil)

	result, err := service.Create(ctx, CreateProductRequest{Name: "Cartão", UnitPrice: decimal.NewFromInt(1)})

	require.NoError(t, err)
	assert.Equal(t, "UNIT", result.PricingMode)
	assert.False(t, result.LowStock)
}

func TestProductService_Create_NegativePrice(t *testing.T) {
	mockRepo := new(MockProductRepository)
	service := NewProductService(mockRepo, nil)

	_, err := service.Create(context.Background(), CreateProductRequest{Name: "X", UnitPrice: decimal.NewFromInt(-1)})

	assert.Equal(t, "INVALID_PRICE", shared.CodeOf(err))
	mockRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestProductService_List_Filters(t *testing.T) {
	mockRepo := new(MockProductRepository)
	service := NewProductService(mockRepo, nil)
	ctx := context.Background()

	matchFilter := mock.MatchedBy(func(f shared.Filter) bool {
		return f.Filters["pricing_mode"] == catalog.PricingModeArea && f.Filters["low_stock"] == true && f.Page == 1
	})
	mockRepo.On("FindAll", ctx, matchFilter).Return([]catalog.Product{*createTestProduct(t, catalog.PricingModeArea)}, nil)
	mockRepo.On("Count", ctx, matchFilter).Return(int64(1), nil)

	result, total, err := service.List(ctx, ProductListFilter{PricingMode: "AREA", LowStock: true})

	require.NoError(t, err)
	assert.Len(t, result, 1)
	assert.Equal(t, int64(1), total)
	mockRepo.AssertExpectations(t)
}

func TestProductService_Update_PartialFields(t *testing.T) {
	mockRepo := new(MockProductRepository)
	service := NewProductService(mockRepo, nil)
	ctx := context.Background()
	product := createTestProduct(t, catalog.PricingModeUnit)

	mockRepo.On("FindByID", ctx, product.ID).Return(product, nil)
	mockRepo.On("Save", ctx, product).Return(nil)

	price := decimal.NewFromInt(50)
	result, err := service.Update(ctx, product.ID, UpdateProductRequest{UnitPrice: &price})

	require.NoError(t, err)
	assert.Equal(t, "Banner", result.Name)
	assert.True(t, result.UnitPrice.Equal(price))
	mockRepo.AssertExpectations(t)
}

func TestProductService_Update_InvalidMode(t *testing.T) {
	mockRepo := new(MockProductRepository)
	service := NewProductService(mockRepo, nil)
	ctx := context.Background()
	product := createTestProduct(t, catalog.PricingModeUnit)
	mockRepo.On("FindByID", ctx, product.ID).Return(product, nil)

	mode := "WEIGHT"
	_, err := service.Update(ctx, product.ID, UpdateProductRequest{PricingMode: &mode})

	assert.Equal(t, "INVALID_PRICING_MODE", shared.CodeOf(err))
}

func TestProductService_Delete_Referenced(t *testing.T) {
	mockRepo := new(MockProductRepository)
	service := NewProductService(mockRepo, nil)
	ctx := context.Background()
	product := createTestProduct(t, catalog.PricingModeUnit)

	mockRepo.On("FindByID", ctx, product.ID).Return(product, nil)
	mockRepo.On("CountReferences", ctx, product.ID).Return(int64(1), nil)

	err := service.Delete(ctx, product.ID)

	assert.ErrorIs(t, err, catalog.ErrProductInUse)
	mockRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestProductService_Delete_NotFound(t *testing.T) {
	mockRepo := new(MockProductRepository)
	service := NewProductService(mockRepo, nil)
	ctx := context.Background()
	id := uuid.New()

	mockRepo.On("FindByID", ctx, id).Return(nil, shared.ErrNotFound)

	assert.ErrorIs(t, service.Delete(ctx, id), shared.ErrNotFound)
}
