package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
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
	"github.com/printdesk/backend/internal/infrastructure/persistence/models"
	infraprinting "github.com/printdesk/backend/internal/infrastructure/printing"
	"github.com/printdesk/backend/internal/infrastructure/storage"
	"github.com/printdesk/backend/internal/interfaces/http/handler"
	"github.com/printdesk/backend/internal/interfaces/http/middleware"
	"github.com/printdesk/backend/internal/interfaces/http/router"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const (
	testUsername = "admin"
	testPassword = "admin12345"
	maxLogoSize  = 64 << 10
)

func init() {
	gin.SetMode(gin.TestMode)
}

// fakeRenderer returns a fixed PDF for any HTML it is given
type fakeRenderer struct {
	requests []*infraprinting.RenderRequest
}

func (r *fakeRenderer) Render(_ context.Context, req *infraprinting.RenderRequest) (*infraprinting.RenderResult, error) {
	r.requests = append(r.requests, req)
	return &infraprinting.RenderResult{
		PDFData:        []byte("%PDF-1.4 test document"),
		PageCount:      1,
		RenderDuration: time.Millisecond,
	}, nil
}

func (r *fakeRenderer) Close() error { return nil }

type envOptions struct {
	storageDisabled  bool
	printingDisabled bool
}

type envOption func(*envOptions)

func withoutStorage() envOption {
	return func(o *envOptions) { o.storageDisabled = true }
}

func withoutPrinting() envOption {
	return func(o *envOptions) { o.printingDisabled = true }
}

// testEnv serves the full API over an in-memory SQLite database
type testEnv struct {
	engine   *gin.Engine
	db       *gorm.DB
	storage  *storage.MemoryObjectStorage
	renderer *fakeRenderer
	auth     *identityapp.AuthService
	token    string
	refresh  string
}

func newTestEnv(t *testing.T, opts ...envOption) *testEnv {
	t.Helper()
	var o envOptions
	for _, opt := range opts {
		opt(&o)
	}

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	require.NoError(t, db.AutoMigrate(models.All()...))

	customerRepo := persistence.NewGormCustomerRepository(db)
	productRepo := persistence.NewGormProductRepository(db)
	quoteRepo := persistence.NewGormQuoteRepository(db)
	orderRepo := persistence.NewGormOrderRepository(db)
	paymentRepo := persistence.NewGormPaymentRepository(db)
	expenseRepo := persistence.NewGormExpenseRepository(db)
	companyRepo := persistence.NewGormCompanyRepository(db)
	reportRepo := persistence.NewGormReportRepository(db)
	userRepo := persistence.NewGormUserRepository(db)
	txScope := persistence.NewGormTransactionScope(db)

	env := &testEnv{db: db, renderer: &fakeRenderer{}}

	var objectStorage storage.ObjectStorage
	var archive printingapp.Archiver
	if !o.storageDisabled {
		env.storage = storage.NewMemoryObjectStorage()
		objectStorage = env.storage
		archive = infraprinting.NewDocumentArchive(env.storage, nil)
	}

	customerService := partnerapp.NewCustomerService(customerRepo, nil)
	productService := catalogapp.NewProductService(productRepo, nil)
	quoteService := tradeapp.NewQuoteService(quoteRepo, customerRepo, productRepo, txScope, nil)
	orderService := tradeapp.NewOrderService(orderRepo, paymentRepo, customerRepo, productRepo, txScope, nil)
	paymentService := tradeapp.NewPaymentService(paymentRepo, orderRepo, txScope, nil)
	conversionService := tradeapp.NewConversionService(customerRepo, txScope, nil)
	expenseService := financeapp.NewExpenseService(expenseRepo, nil)
	companyService := identityapp.NewCompanyService(companyRepo, objectStorage, cache.NewInMemoryCache(),
		identityapp.CompanyServiceConfig{
			DefaultTradeName:   "PrintDesk",
			MaxLogoSize:        maxLogoSize,
			AllowedLogoFormats: []string{"image/png", "image/jpeg", "image/svg+xml"},
		}, nil)
	reportService := reportapp.NewReportService(reportRepo, cache.NewInMemoryCache(), reportapp.ReportServiceConfig{}, nil)

	jwtService := auth.NewJWTService(config.JWTConfig{
		Secret:                 "handler-test-secret-at-least-32-characters",
		AccessTokenExpiration:  15 * time.Minute,
		RefreshTokenExpiration: time.Hour,
		Issuer:                 "printdesk-test",
		MaxRefreshCount:        5,
	})
	env.auth = identityapp.NewAuthService(userRepo, jwtService, auth.NewInMemoryTokenBlacklist(), nil)

	templates, err := infraprinting.NewTemplateEngine()
	require.NoError(t, err)
	var renderer infraprinting.PDFRenderer
	if !o.printingDisabled {
		renderer = env.renderer
	}
	documentService := printingapp.NewDocumentService(printingapp.Sources{
		Quotes:    quoteService,
		Orders:    orderService,
		Payments:  paymentRepo,
		Customers: customerRepo,
		Company:   companyService,
		Revenue:   reportService,
	}, templates, renderer, archive, nil)

	ctx := context.Background()
	_, err = companyService.Load(ctx)
	require.NoError(t, err)
	require.NoError(t, env.auth.EnsureBootstrapAdmin(ctx, testUsername, testPassword))
	login, err := env.auth.Login(ctx, identityapp.LoginInput{Username: testUsername, Password: testPassword})
	require.NoError(t, err)
	env.token = login.AccessToken
	env.refresh = login.RefreshToken

	middleware.SetupValidator()
	engine := gin.New()
	engine.Use(middleware.RequestID())
	engine.Use(middleware.BodyLimit(1 << 20))

	r := router.NewRouter(engine).Use(middleware.JWTAuthMiddleware(env.auth))
	r.RegisterHandlers(router.Handlers{
		Auth:     handler.NewAuthHandler(env.auth),
		Customer: handler.NewCustomerHandler(customerService),
		Product:  handler.NewProductHandler(productService),
		Quote:    handler.NewQuoteHandler(quoteService, conversionService, documentService),
		Order:    handler.NewOrderHandler(orderService, documentService),
		Payment:  handler.NewPaymentHandler(paymentService),
		Expense:  handler.NewExpenseHandler(expenseService),
		Company:  handler.NewCompanyHandler(companyService, maxLogoSize),
		Report:   handler.NewReportHandler(reportService, documentService),
		Health:   handler.NewHealthHandler(sqlDB, "test"),
	}).Setup()
	env.engine = engine

	return env
}

// do sends an authenticated JSON request. body may be nil, a string or any JSON-encodable value.
func (e *testEnv) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	return e.send(t, method, path, body, e.token)
}

// doAnonymous sends a request without credentials
func (e *testEnv) doAnonymous(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	return e.send(t, method, path, body, "")
}

func (e *testEnv) send(t *testing.T, method, path string, body any, token string) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		reader = bytes.NewBufferString(b)
	default:
		payload, err := json.Marshal(b)
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
	e.engine.ServeHTTP(w, req)
	return w
}

// upload sends data as a multipart file under field. An empty field sends an empty form.
func (e *testEnv) upload(t *testing.T, method, path, field, filename string, data []byte) *httptest.ResponseRecorder {
	t.Helper()
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	if field != "" {
		part, err := writer.CreateFormFile(field, filename)
		require.NoError(t, err)
		_, err = part.Write(data)
		require.NoError(t, err)
	}
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(method, path, &body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+e.token)
	w := httptest.NewRecorder()
	e.engine.ServeHTTP(w, req)
	return w
}

// decode reads the data payload of a success envelope
func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var resp handler.APIResponse[T]
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp), w.Body.String())
	require.True(t, resp.Success, w.Body.String())
	return resp.Data
}

// errorCode reads the error code of an error envelope
func errorCode(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var resp handler.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp), w.Body.String())
	require.False(t, resp.Success)
	require.NotNil(t, resp.Error, w.Body.String())
	return resp.Error.Code
}

func (e *testEnv) createCustomer(t *testing.T, name, taxID string) partnerapp.CustomerResponse {
	t.Helper()
	w := e.do(t, http.MethodPost, "/api/v1/customers", partnerapp.CreateCustomerRequest{Name: name, TaxID: taxID})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	return decode[partnerapp.CustomerResponse](t, w)
}

func (e *testEnv) createProduct(t *testing.T, body map[string]any) catalogapp.ProductResponse {
	t.Helper()
	w := e.do(t, http.MethodPost, "/api/v1/products", body)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	return decode[catalogapp.ProductResponse](t, w)
}

// createQuote creates a quote with a single UNIT line worth unitPrice × qty
func (e *testEnv) createQuote(t *testing.T, customerID string, unitPrice string, qty int) tradeapp.QuoteResponse {
	t.Helper()
	product := e.createProduct(t, map[string]any{"name": "Cartão de visita " + unitPrice, "pricing_mode": "UNIT", "unit_price": unitPrice})
	w := e.do(t, http.MethodPost, "/api/v1/quotes", map[string]any{
		"customer_id": customerID,
		"lines": []map[string]any{
			{"product_id": product.ID.String(), "quantity": qty},
		},
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	return decode[tradeapp.QuoteResponse](t, w)
}
