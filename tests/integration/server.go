//go:build integration

package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	catalogapp "github.com/printdesk/backend/internal/application/catalog"
	financeapp "github.com/printdesk/backend/internal/application/finance"
	identityapp "github.com/printdesk/backend/internal/application/identity"
	partnerapp "github.com/printdesk/backend/internal/application/partner"
	printingapp "github.com/printdesk/backend/internal/application/printing"
	reportapp "github.com/printdesk/backend/internal/application/report"
	tradeapp "github.com/printdesk/backend/internal/application/trade"
	"github.com/printdesk/backend/internal/infrastructure/auth"
	"github.com/printdesk/backend/internal/infrastructure/cache"
	"github.com/printdesk/backend/internal/infrastructure/config"
	"github.com/printdesk/backend/internal/infrastructure/persistence"
	infraprinting "github.com/printdesk/backend/internal/infrastructure/printing"
	"github.com/printdesk/backend/internal/infrastructure/storage"
	"github.com/printdesk/backend/internal/interfaces/http/handler"
	"github.com/printdesk/backend/internal/interfaces/http/middleware"
	"github.com/printdesk/backend/internal/interfaces/http/router"
	"github.com/stretchr/testify/require"
)

const (
	adminUsername = "admin"
	adminPassword = "integration-pass-1"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// stubRenderer stands in for Chrome
type stubRenderer struct{}

func (stubRenderer) Render(context.Context, *infraprinting.RenderRequest) (*infraprinting.RenderResult, error) {
	return &infraprinting.RenderResult{PDFData: []byte("%PDF-1.4"), PageCount: 1}, nil
}

func (stubRenderer) Close() error { return nil }

// TestServer serves the API over a TestDB with in-memory storage and cache
type TestServer struct {
	DB      *TestDB
	Storage *storage.MemoryObjectStorage
	engine  *gin.Engine
	token   string
}

// NewTestServer wires the application the way the server binary does
func NewTestServer(t *testing.T) *TestServer {
	t.Helper()

	tdb := NewTestDB(t)
	db := tdb.DB

	customerRepo := persistence.NewGormCustomerRepository(db)
	productRepo := persistence.NewGormProductRepository(db)
	quoteRepo := persistence.NewGormQuoteRepository(db)
	orderRepo := persistence.NewGormOrderRepository(db)
	paymentRepo := persistence.NewGormPaymentRepository(db)
	txScope := persistence.NewGormTransactionScope(db)
	objectStorage := storage.NewMemoryObjectStorage()

	customerService := partnerapp.NewCustomerService(customerRepo, nil)
	productService := catalogapp.NewProductService(productRepo, nil)
	quoteService := tradeapp.NewQuoteService(quoteRepo, customerRepo, productRepo, txScope, nil)
	orderService := tradeapp.NewOrderService(orderRepo, paymentRepo, customerRepo, productRepo, txScope, nil)
	paymentService := tradeapp.NewPaymentService(paymentRepo, orderRepo, txScope, nil)
	conversionService := tradeapp.NewConversionService(customerRepo, txScope, nil)
	expenseService := financeapp.NewExpenseService(persistence.NewGormExpenseRepository(db), nil)
	reportService := reportapp.NewReportService(persistence.NewGormReportRepository(db), cache.NewInMemoryCache(),
		reportapp.ReportServiceConfig{}, nil)
	companyService := identityapp.NewCompanyService(persistence.NewGormCompanyRepository(db), objectStorage,
		cache.NewInMemoryCache(), identityapp.CompanyServiceConfig{DefaultTradeName: "PrintDesk"}, nil)

	jwtService := auth.NewJWTService(config.JWTConfig{
		Secret:                 "integration-secret-at-least-32-characters",
		AccessTokenExpiration:  15 * time.Minute,
		RefreshTokenExpiration: time.Hour,
		Issuer:                 "printdesk-integration",
		MaxRefreshCount:        3,
	})
	authService := identityapp.NewAuthService(persistence.NewGormUserRepository(db), jwtService,
		auth.NewInMemoryTokenBlacklist(), nil)

	templates, err := infraprinting.NewTemplateEngine()
	require.NoError(t, err)
	documentService := printingapp.NewDocumentService(printingapp.Sources{
		Quotes:    quoteService,
		Orders:    orderService,
		Payments:  paymentRepo,
		Customers: customerRepo,
		Company:   companyService,
		Revenue:   reportService,
	}, templates, stubRenderer{}, infraprinting.NewDocumentArchive(objectStorage, nil), nil)

	ctx := context.Background()
	_, err = companyService.Load(ctx)
	require.NoError(t, err)
	require.NoError(t, authService.EnsureBootstrapAdmin(ctx, adminUsername, adminPassword))

	middleware.SetupValidator()
	engine := gin.New()
	engine.Use(middleware.RequestID())

	sqlDB, err := db.DB()
	require.NoError(t, err)
	router.NewRouter(engine).
		Use(middleware.JWTAuthMiddleware(authService)).
		RegisterHandlers(router.Handlers{
			Auth:     handler.NewAuthHandler(authService),
			Customer: handler.NewCustomerHandler(customerService),
			Product:  handler.NewProductHandler(productService),
			Quote:    handler.NewQuoteHandler(quoteService, conversionService, documentService),
			Order:    handler.NewOrderHandler(orderService, documentService),
			Payment:  handler.NewPaymentHandler(paymentService),
			Expense:  handler.NewExpenseHandler(expenseService),
			Company:  handler.NewCompanyHandler(companyService, 1<<20),
			Report:   handler.NewReportHandler(reportService, documentService),
			Health:   handler.NewHealthHandler(sqlDB, "integration"),
		}).
		Setup()

	srv := &TestServer{DB: tdb, Storage: objectStorage, engine: engine}
	srv.token = srv.login(t)
	return srv
}

func (s *TestServer) login(t *testing.T) string {
	t.Helper()
	w := s.send(t, http.MethodPost, "/api/v1/auth/login",
		map[string]string{"username": adminUsername, "password": adminPassword}, "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	return Decode[identityapp.LoginResult](t, w).AccessToken
}

// Do sends an authenticated JSON request
func (s *TestServer) Do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	return s.send(t, method, path, body, s.token)
}

func (s *TestServer) send(t *testing.T, method, path string, body any, token string) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	}

	req := httptest.NewRequest(method, path, reader)
	if reader != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	s.engine.ServeHTTP(w, req)
	return w
}

// Decode reads the data payload of a success envelope
func Decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var resp handler.APIResponse[T]
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp), w.Body.String())
	require.True(t, resp.Success, w.Body.String())
	return resp.Data
}

// ErrorCode reads the code of an error envelope
func ErrorCode(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var resp handler.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp), w.Body.String())
	require.NotNil(t, resp.Error, w.Body.String())
	return resp.Error.Code
}
