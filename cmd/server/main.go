package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
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
	"github.com/printdesk/backend/internal/infrastructure/logger"
	"github.com/printdesk/backend/internal/infrastructure/migration"
	"github.com/printdesk/backend/internal/infrastructure/persistence"
	infraprinting "github.com/printdesk/backend/internal/infrastructure/printing"
	"github.com/printdesk/backend/internal/infrastructure/storage"
	"github.com/printdesk/backend/internal/infrastructure/telemetry"
	"github.com/printdesk/backend/internal/interfaces/http/handler"
	"github.com/printdesk/backend/internal/interfaces/http/middleware"
	"github.com/printdesk/backend/internal/interfaces/http/router"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/printdesk/backend/docs"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

//	@title			PrintDesk API
//	@version		1.0
//	@description	Back office API for a print shop: customers, products, quotes, orders, payments, expenses, reports and PDF documents

//	@contact.name	PrintDesk

//	@host		localhost:8080
//	@BasePath	/api/v1

//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				Bearer token authentication. Format: "Bearer {token}"

const version = "1.0.0"

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	bootLog, err := logger.New(logger.FromConfig(cfg.Log))
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}

	// Telemetry comes first so the final logger can export through it
	tel, err := telemetry.Setup(context.Background(), telemetry.FromConfig(cfg.Telemetry), bootLog)
	if err != nil {
		bootLog.Fatal("Failed to initialize telemetry", zap.Error(err))
	}

	var extraCores []zapcore.Core
	if core := tel.Logs.Core(); core != nil {
		extraCores = append(extraCores, core)
	}
	log, err := logger.New(logger.FromConfig(cfg.Log), extraCores...)
	if err != nil {
		bootLog.Fatal("Failed to initialize logger", zap.Error(err))
	}
	defer func() {
		_ = log.Sync()
	}()

	log.Info("Starting PrintDesk",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
		zap.String("version", version),
	)

	gormLog := logger.NewGormLogger(log, logger.GormConfig{
		Level:         cfg.Log.Level,
		SlowThreshold: cfg.Telemetry.DBSlowQueryThresh,
		LogFullSQL:    cfg.Telemetry.DBLogFullSQL,
	})
	db, err := persistence.Open(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if stats, err := db.Stats(); err == nil {
			log.Info("Closing database",
				zap.Int("open", stats.OpenConnections),
				zap.Int64("wait_count", stats.WaitCount),
				zap.Duration("wait_duration", stats.WaitDuration))
		}
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected", zap.String("driver", db.Driver()))

	if err := telemetry.RegisterDBTracing(db.DB, telemetry.DBTracingConfig{
		Enabled:         cfg.Telemetry.Enabled && cfg.Telemetry.DBTraceEnabled,
		LogFullSQL:      cfg.Telemetry.DBLogFullSQL,
		SlowQueryThresh: cfg.Telemetry.DBSlowQueryThresh,
	}, log); err != nil {
		log.Fatal("Failed to register database tracing", zap.Error(err))
	}

	// PostgreSQL schemas are managed with cmd/migrate; SQLite follows the models
	if db.Driver() == persistence.DriverSQLite {
		if err := migration.AutoMigrate(context.Background(), db.DB, log); err != nil {
			log.Fatal("Failed to migrate SQLite schema", zap.Error(err))
		}
	}

	// Repositories
	customerRepo := persistence.NewGormCustomerRepository(db.DB)
	productRepo := persistence.NewGormProductRepository(db.DB)
	quoteRepo := persistence.NewGormQuoteRepository(db.DB)
	orderRepo := persistence.NewGormOrderRepository(db.DB)
	paymentRepo := persistence.NewGormPaymentRepository(db.DB)
	expenseRepo := persistence.NewGormExpenseRepository(db.DB)
	companyRepo := persistence.NewGormCompanyRepository(db.DB)
	reportRepo := persistence.NewGormReportRepository(db.DB)
	userRepo := persistence.NewGormUserRepository(db.DB)
	txScope := persistence.NewGormTransactionScope(db.DB)

	// Shared infrastructure
	appCache := cache.New(cfg.Redis, log)
	blacklist := auth.NewTokenBlacklist(cfg.Redis, log)
	objectStorage := newObjectStorage(cfg, log)
	renderer := newPDFRenderer(cfg, log)
	if renderer != nil {
		defer func() {
			if err := renderer.Close(); err != nil {
				log.Error("Error closing PDF renderer", zap.Error(err))
			}
		}()
	}

	businessMetrics, err := telemetry.NewBusinessMetrics(tel.Meter.Meter("printdesk"))
	if err != nil {
		log.Fatal("Failed to create business metrics", zap.Error(err))
	}

	// Application services
	customerService := partnerapp.NewCustomerService(customerRepo, log)
	productService := catalogapp.NewProductService(productRepo, log)
	quoteService := tradeapp.NewQuoteService(quoteRepo, customerRepo, productRepo, txScope, log)
	orderService := tradeapp.NewOrderService(orderRepo, paymentRepo, customerRepo, productRepo, txScope, log)
	orderService.SetMetrics(businessMetrics)
	paymentService := tradeapp.NewPaymentService(paymentRepo, orderRepo, txScope, log)
	paymentService.SetMetrics(businessMetrics)
	conversionService := tradeapp.NewConversionService(customerRepo, txScope, log)
	conversionService.SetMetrics(businessMetrics)
	expenseService := financeapp.NewExpenseService(expenseRepo, log)
	reportService := reportapp.NewReportService(reportRepo, appCache, reportapp.ReportServiceConfig{
		DashboardTTL: cfg.Cache.DashboardTTL,
	}, log)

	// an untyped nil keeps the storage-backed features switched off
	var companyStorage storage.ObjectStorage
	var archive printingapp.Archiver
	if objectStorage != nil {
		companyStorage = objectStorage
		archive = infraprinting.NewDocumentArchive(objectStorage, log)
	}
	companyService := identityapp.NewCompanyService(companyRepo, companyStorage, appCache, identityapp.CompanyServiceConfig{
		DefaultTradeName:   "PrintDesk",
		BrandingTTL:        cfg.Cache.BrandingTTL,
		LogoURLExpiration:  cfg.Storage.PresignExpiration,
		MaxLogoSize:        cfg.Storage.MaxLogoSize,
		AllowedLogoFormats: cfg.Storage.AllowedLogoFormats,
	}, log)
	if _, err := companyService.Load(context.Background()); err != nil {
		log.Fatal("Failed to load company profile", zap.Error(err))
	}

	jwtService := auth.NewJWTService(cfg.JWT)
	authService := identityapp.NewAuthService(userRepo, jwtService, blacklist, log)
	if err := authService.EnsureBootstrapAdmin(context.Background(), cfg.Auth.BootstrapUsername, cfg.Auth.BootstrapPassword); err != nil {
		log.Fatal("Failed to create bootstrap user", zap.Error(err))
	}

	templates, err := infraprinting.NewTemplateEngine()
	if err != nil {
		log.Fatal("Failed to load document templates", zap.Error(err))
	}
	var pdfRenderer infraprinting.PDFRenderer
	if renderer != nil {
		pdfRenderer = renderer
	}
	documentService := printingapp.NewDocumentService(printingapp.Sources{
		Quotes:    quoteService,
		Orders:    orderService,
		Payments:  paymentRepo,
		Customers: customerRepo,
		Company:   companyService,
		Revenue:   reportService,
	}, templates, pdfRenderer, archive, log)
	documentService.SetMetrics(businessMetrics)

	// HTTP
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	middleware.SetupValidator()

	engine := gin.New()
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	// Order matters: the request ID feeds the access log, tracing wraps
	// everything below it and metrics see the final status.
	engine.Use(middleware.RequestID())
	engine.Use(logger.GinMiddleware(log, "/health"))
	engine.Use(logger.Recovery(log))
	engine.Use(middleware.Secure(cfg.HTTP.HSTSMaxAge))
	engine.Use(middleware.CORS(cfg.HTTP))
	engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))
	if cfg.HTTP.RateLimitEnabled {
		limiter := middleware.NewRateLimiter(cfg.HTTP.RateLimitRequests, cfg.HTTP.RateLimitWindow)
		engine.Use(middleware.RateLimit(limiter))
		log.Info("Rate limiting enabled",
			zap.Int("requests", cfg.HTTP.RateLimitRequests),
			zap.Duration("window", cfg.HTTP.RateLimitWindow),
		)
	}
	engine.Use(middleware.TracingWithConfig(middleware.TracingConfig{
		ServiceName: cfg.Telemetry.ServiceName,
		Enabled:     cfg.Telemetry.Enabled,
	}))
	engine.Use(middleware.SpanErrorMarker())
	engine.Use(middleware.HTTPMetrics(tel.Meter.Meter("printdesk.http"), log))
	profiling := middleware.DefaultProfilingConfig()
	profiling.Enabled = cfg.Telemetry.ProfilingEnabled
	engine.Use(middleware.Profiling(profiling))

	sqlDB, err := db.DB.DB()
	if err != nil {
		log.Fatal("Failed to access the connection pool", zap.Error(err))
	}
	healthHandler := handler.NewHealthHandler(sqlDB, version)
	engine.GET("/health", healthHandler.Health)

	jwtMiddleware := middleware.JWTAuthMiddleware(authService)

	docs.SwaggerInfo.Host = ""
	engine.GET("/swagger/*any",
		middleware.SwaggerProtection(cfg.Swagger, jwtMiddleware),
		ginSwagger.WrapHandler(swaggerFiles.Handler),
	)

	router.NewRouter(engine).
		Use(jwtMiddleware, middleware.TracingAttributeInjector()).
		RegisterHandlers(router.Handlers{
			Auth:     handler.NewAuthHandler(authService),
			Customer: handler.NewCustomerHandler(customerService),
			Product:  handler.NewProductHandler(productService),
			Quote:    handler.NewQuoteHandler(quoteService, conversionService, documentService),
			Order:    handler.NewOrderHandler(orderService, documentService),
			Payment:  handler.NewPaymentHandler(paymentService),
			Expense:  handler.NewExpenseHandler(expenseService),
			Company:  handler.NewCompanyHandler(companyService, cfg.Storage.MaxLogoSize),
			Report:   handler.NewReportHandler(reportService, documentService),
			Health:   healthHandler,
		}).
		Setup()

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
	}
	if err := tel.Shutdown(ctx); err != nil {
		log.Error("Telemetry shutdown failed", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}

// newObjectStorage connects to the S3 bucket, or returns nil when storage is
// disabled or unreachable. Logo upload and PDF archiving are off without it.
func newObjectStorage(cfg *config.Config, log *zap.Logger) *storage.S3ObjectStorage {
	if !cfg.Storage.Enabled {
		log.Info("Object storage disabled")
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	s3, err := storage.NewS3ObjectStorage(ctx, cfg.Storage, log)
	if err != nil {
		log.Error("Object storage unavailable, logo upload and document archive are disabled", zap.Error(err))
		return nil
	}
	if err := s3.EnsureBucket(ctx); err != nil {
		log.Error("Object storage bucket unavailable, logo upload and document archive are disabled",
			zap.String("bucket", cfg.Storage.Bucket),
			zap.Error(err))
		return nil
	}

	log.Info("Object storage ready",
		zap.String("bucket", s3.Bucket()),
		zap.String("endpoint", s3.Endpoint()))
	return s3
}

// newPDFRenderer starts the headless Chrome renderer, or returns nil when
// printing is disabled or Chrome cannot be started
func newPDFRenderer(cfg *config.Config, log *zap.Logger) *infraprinting.ChromedpRenderer {
	if !cfg.Printing.Enabled {
		log.Info("PDF printing disabled")
		return nil
	}

	renderer, err := infraprinting.NewChromedpRenderer(infraprinting.ChromedpConfig{
		DefaultTimeout: cfg.Printing.Timeout,
		RemoteURL:      cfg.Printing.ChromeRemoteURL,
		NoSandbox:      cfg.Printing.NoSandbox,
		Logger:         log,
	})
	if err != nil {
		log.Error("Chrome unavailable, PDF endpoints are disabled", zap.Error(err))
		return nil
	}

	log.Info("PDF printing enabled", zap.Bool("remote", cfg.Printing.ChromeRemoteURL != ""))
	return renderer
}
