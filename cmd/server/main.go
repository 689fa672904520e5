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
	"go.uber.org/zap"

	appadvisor "github.com/aqari/backend/internal/application/advisor"
	appbilling "github.com/aqari/backend/internal/application/billing"
	appfinance "github.com/aqari/backend/internal/application/finance"
	appidentity "github.com/aqari/backend/internal/application/identity"
	appleasing "github.com/aqari/backend/internal/application/leasing"
	appportfolio "github.com/aqari/backend/internal/application/portfolio"
	"github.com/aqari/backend/internal/application/report"
	"github.com/aqari/backend/internal/domain/shared"
	"github.com/aqari/backend/internal/infrastructure/advisor"
	"github.com/aqari/backend/internal/infrastructure/auth"
	"github.com/aqari/backend/internal/infrastructure/cache"
	"github.com/aqari/backend/internal/infrastructure/config"
	"github.com/aqari/backend/internal/infrastructure/logger"
	"github.com/aqari/backend/internal/infrastructure/notification"
	"github.com/aqari/backend/internal/infrastructure/persistence"
	"github.com/aqari/backend/internal/infrastructure/scheduler"
	"github.com/aqari/backend/internal/infrastructure/telemetry"
	"github.com/aqari/backend/internal/interfaces/http/handler"
	"github.com/aqari/backend/internal/interfaces/http/middleware"
	"github.com/aqari/backend/internal/interfaces/http/router"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	log, err := logger.New(&logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	log.Info("Starting Aqari Backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	// Create GORM logger backed by zap
	gormLogLevel := logger.MapGormLogLevel(cfg.Log.Level)
	gormLog := logger.NewGormLogger(log, gormLogLevel)

	// Initialize database connection with custom logger
	db, err := persistence.NewDatabaseWithLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected successfully")

	// Initialize tracing
	tracerProvider, err := telemetry.NewTracerProvider(context.Background(), telemetry.Config{
		Enabled:           cfg.Telemetry.Enabled,
		CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
		SamplingRatio:     cfg.Telemetry.SamplingRatio,
		ServiceName:       cfg.Telemetry.ServiceName,
		Insecure:          cfg.Telemetry.Insecure,
	}, log)
	if err != nil {
		log.Fatal("Failed to initialize tracing", zap.Error(err))
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := tracerProvider.Shutdown(ctx); err != nil {
			log.Error("Error shutting down tracer provider", zap.Error(err))
		}
	}()

	// Initialize repositories
	propertyRepo := persistence.NewGormPropertyRepository(db.DB)
	unitRepo := persistence.NewGormUnitRepository(db.DB)
	tenantRepo := persistence.NewGormTenantRepository(db.DB)
	leaseRepo := persistence.NewGormLeaseRepository(db.DB)
	invoiceRepo := persistence.NewGormInvoiceRepository(db.DB)
	paymentRepo := persistence.NewGormPaymentRepository(db.DB)
	expenseRepo := persistence.NewGormExpenseRepository(db.DB)
	userRepo := persistence.NewGormUserRepository(db.DB)

	txManager := persistence.NewGormTransactionManager(db.DB)
	clock := shared.SystemClock{}

	// Initialize JWT service
	jwtService := auth.NewJWTService(auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		Expiration: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	// Dashboard snapshots are cached in Redis when available, in process
	// memory otherwise
	var snapshotCache report.SnapshotCache
	if redisCache, err := cache.NewRedisSnapshotCache(cfg.Redis); err != nil {
		log.Warn("Redis unavailable, using in-memory dashboard cache", zap.Error(err))
		snapshotCache = cache.NewMemorySnapshotCache()
	} else {
		snapshotCache = redisCache
	}

	// Initialize application services
	authService := appidentity.NewAuthService(userRepo, jwtService, log)
	propertyService := appportfolio.NewPropertyService(propertyRepo, unitRepo)
	unitService := appportfolio.NewUnitService(unitRepo, propertyRepo, txManager)
	tenantService := appportfolio.NewTenantService(tenantRepo, leaseRepo)
	importService := appportfolio.NewImportService(tenantRepo, unitRepo, propertyRepo, txManager)
	leaseService := appleasing.NewLeaseService(leaseRepo, unitRepo, tenantRepo, invoiceRepo, txManager, clock)
	invoiceService := appbilling.NewInvoiceService(invoiceRepo, paymentRepo, leaseRepo, txManager, clock)
	sweepService := appbilling.NewSweepService(leaseRepo, invoiceRepo, unitRepo, txManager, clock, log)
	expenseService := appfinance.NewExpenseService(expenseRepo, propertyRepo, clock)
	dashboardService := report.NewDashboardService(
		propertyRepo,
		unitRepo,
		tenantRepo,
		leaseRepo,
		invoiceRepo,
		paymentRepo,
		expenseRepo,
		snapshotCache,
		clock,
		log,
	)

	// Payment reminder emails are best-effort: publish failures never fail
	// the business operation that raised the event
	if cfg.Notification.Enabled {
		notifier := notification.NewEmailNotifier(cfg.Notification, userRepo, log)
		invoiceService.SetEventPublisher(notifier)
		sweepService.SetEventPublisher(notifier)
		leaseService.SetEventPublisher(notifier)
		log.Info("Email notifications enabled",
			zap.String("smtp_host", cfg.Notification.Host),
			zap.Int("smtp_port", cfg.Notification.Port),
		)
	}

	// The advisor degrades to canned advice when the generator is missing
	var generator appadvisor.TextGenerator
	geminiClient, err := advisor.NewGeminiClient(cfg.Advisor)
	switch {
	case err == nil:
		generator = geminiClient
		log.Info("Portfolio advisor enabled", zap.String("model", cfg.Advisor.Model))
	case errors.Is(err, advisor.ErrAdvisorDisabled):
		log.Info("Portfolio advisor disabled, serving fallback advice")
	default:
		log.Warn("Advisor client unavailable, serving fallback advice", zap.Error(err))
	}
	advisorService := appadvisor.NewAdvisorService(dashboardService, generator, log)

	// Start the nightly billing scheduler
	var billingScheduler *scheduler.BillingCronScheduler
	if cfg.Scheduler.Enabled {
		billingScheduler = scheduler.NewBillingCronScheduler(scheduler.BillingCronConfig{
			Enabled: true,
			Hour:    cfg.Scheduler.InvoiceHour,
			Minute:  cfg.Scheduler.InvoiceMinute,
		}, sweepService, log)
		if err := billingScheduler.Start(context.Background()); err != nil {
			log.Fatal("Failed to start billing scheduler", zap.Error(err))
		}
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			if err := billingScheduler.Stop(ctx); err != nil {
				log.Error("Error stopping billing scheduler", zap.Error(err))
			}
		}()
		log.Info("Billing scheduler started",
			zap.Int("hour", cfg.Scheduler.InvoiceHour),
			zap.Int("minute", cfg.Scheduler.InvoiceMinute),
		)
	} else {
		log.Info("Billing scheduler disabled")
	}

	// Initialize HTTP handlers
	authHandler := handler.NewAuthHandler(authService)
	propertyHandler := handler.NewPropertyHandler(propertyService, unitService)
	unitHandler := handler.NewUnitHandler(unitService)
	tenantHandler := handler.NewTenantHandler(tenantService)
	importHandler := handler.NewImportHandler(importService)
	leaseHandler := handler.NewLeaseHandler(leaseService)
	invoiceHandler := handler.NewInvoiceHandler(invoiceService)
	expenseHandler := handler.NewExpenseHandler(expenseService)
	dashboardHandler := handler.NewDashboardHandler(dashboardService, clock)
	advisorHandler := handler.NewAdvisorHandler(advisorService)
	systemHandler := handler.NewSystemHandler(billingScheduler)

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Setup validation
	middleware.SetupValidator()

	// Initialize router with custom middleware
	engine := gin.New()

	// Configure trusted proxies
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	// Apply middleware stack in order:
	// 1. RequestID - Generate/propagate request ID
	// 2. Recovery - Catch panics
	// 3. Logger - Log requests
	// 4. Security - Add security headers
	// 5. CORS - Handle cross-origin requests
	// 6. BodyLimit - Limit request body size
	// 7. RateLimit - Apply rate limiting (if enabled)
	// 8. Tracing - Record spans when telemetry is enabled
	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.Secure())

	// Configure CORS from config
	corsConfig := middleware.CORSConfig{
		AllowOrigins:     cfg.HTTP.CORSAllowOrigins,
		AllowMethods:     cfg.HTTP.CORSAllowMethods,
		AllowHeaders:     cfg.HTTP.CORSAllowHeaders,
		ExposeHeaders:    []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	engine.Use(middleware.CORSWithConfig(corsConfig))

	// Body size limit
	engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))

	// Rate limiting (if enabled)
	if cfg.HTTP.RateLimitEnabled {
		rateLimiter := middleware.NewRateLimiter(cfg.HTTP.RateLimitRequests, cfg.HTTP.RateLimitWindow)
		engine.Use(middleware.RateLimit(rateLimiter))
		log.Info("Rate limiting enabled",
			zap.Int("requests", cfg.HTTP.RateLimitRequests),
			zap.Duration("window", cfg.HTTP.RateLimitWindow),
		)
	}

	if cfg.Telemetry.Enabled {
		engine.Use(middleware.TracingWithConfig(middleware.TracingConfig{
			ServiceName: cfg.Telemetry.ServiceName,
			Enabled:     true,
		}))
		engine.Use(middleware.SpanErrorMarker())
	}

	// Health check endpoint (outside API versioning)
	engine.GET("/health", healthHandler(db, log))

	// Setup API routes using router
	r := router.NewRouter(engine, router.WithAPIVersion("v1"))

	// Apply JWT authentication middleware to API routes.
	// Registration and login are the only public endpoints.
	jwtConfig := middleware.JWTMiddlewareConfig{
		JWTService: jwtService,
		SkipPaths: []string{
			"/api/v1/auth/login",
			"/api/v1/auth/register",
		},
		Logger: log,
	}
	r.Use(middleware.JWTAuthMiddlewareWithConfig(jwtConfig))
	if cfg.Telemetry.Enabled {
		// JWT runs before this, so spans pick up the authenticated user
		r.Use(middleware.TracingAttributeInjector())
	}

	// VIEWER accounts can read everything but mutate nothing
	write := middleware.RequireWriteRole()

	// Identity domain. Login and registration carry a stricter limiter
	// to slow down credential stuffing.
	authLimiter := middleware.NewRateLimiter(10, time.Minute)
	authRoutes := router.NewDomainGroup("identity", "/auth")
	authRoutes.POST("/register", middleware.AuthRateLimit(authLimiter), authHandler.Register)
	authRoutes.POST("/login", middleware.AuthRateLimit(authLimiter), authHandler.Login)
	authRoutes.GET("/me", authHandler.Me)
	authRoutes.POST("/change-password", authHandler.ChangePassword)

	// Portfolio domain (properties, units, tenants)
	portfolioRoutes := router.NewDomainGroup("portfolio", "")

	portfolioRoutes.POST("/properties", write, propertyHandler.Create)
	portfolioRoutes.GET("/properties", propertyHandler.List)
	portfolioRoutes.GET("/properties/:id", propertyHandler.Get)
	portfolioRoutes.GET("/properties/:id/units", propertyHandler.ListUnits)
	portfolioRoutes.POST("/properties/:id/units/import", write, importHandler.ImportUnits)
	portfolioRoutes.PUT("/properties/:id", write, propertyHandler.Update)
	portfolioRoutes.DELETE("/properties/:id", write, propertyHandler.Deactivate)

	portfolioRoutes.POST("/units", write, unitHandler.Create)
	portfolioRoutes.GET("/units", unitHandler.List)
	portfolioRoutes.GET("/units/:id", unitHandler.Get)
	portfolioRoutes.PUT("/units/:id", write, unitHandler.Update)
	portfolioRoutes.POST("/units/:id/maintenance", write, unitHandler.SetMaintenance)

	portfolioRoutes.POST("/tenants", write, tenantHandler.Create)
	portfolioRoutes.POST("/tenants/import", write, importHandler.ImportTenants)
	portfolioRoutes.GET("/tenants", tenantHandler.List)
	portfolioRoutes.GET("/tenants/:id", tenantHandler.Get)
	portfolioRoutes.PUT("/tenants/:id", write, tenantHandler.Update)
	portfolioRoutes.DELETE("/tenants/:id", write, tenantHandler.Deactivate)

	// Leasing domain
	leasingRoutes := router.NewDomainGroup("leasing", "")
	leasingRoutes.POST("/leases", write, leaseHandler.Create)
	leasingRoutes.GET("/leases", leaseHandler.List)
	leasingRoutes.GET("/leases/expiring", leaseHandler.Expiring)
	leasingRoutes.GET("/leases/:id", leaseHandler.Get)
	leasingRoutes.GET("/leases/:id/invoices", invoiceHandler.ListByLease)
	leasingRoutes.POST("/leases/:id/status", write, leaseHandler.ChangeStatus)
	leasingRoutes.POST("/leases/:id/terminate", write, leaseHandler.Terminate)
	leasingRoutes.POST("/leases/:id/renew", write, leaseHandler.Renew)

	// Billing domain (invoices, payments)
	billingRoutes := router.NewDomainGroup("billing", "")
	billingRoutes.POST("/invoices", write, invoiceHandler.Create)
	billingRoutes.GET("/invoices", invoiceHandler.List)
	billingRoutes.GET("/invoices/:id", invoiceHandler.Get)
	billingRoutes.PUT("/invoices/:id", write, invoiceHandler.Update)
	billingRoutes.POST("/invoices/:id/cancel", write, invoiceHandler.Cancel)
	billingRoutes.POST("/invoices/:id/payments", write, invoiceHandler.RecordPayment)
	billingRoutes.GET("/invoices/:id/payments", invoiceHandler.ListPayments)

	// Finance domain (expenses)
	financeRoutes := router.NewDomainGroup("finance", "")
	financeRoutes.POST("/expenses", write, expenseHandler.Create)
	financeRoutes.GET("/expenses", expenseHandler.List)
	financeRoutes.GET("/expenses/:id", expenseHandler.Get)
	financeRoutes.PUT("/expenses/:id", write, expenseHandler.Update)
	financeRoutes.DELETE("/expenses/:id", write, expenseHandler.Delete)

	// Reporting domain
	reportRoutes := router.NewDomainGroup("report", "/dashboard")
	reportRoutes.GET("/overview", dashboardHandler.Overview)
	reportRoutes.GET("/financial-summary", dashboardHandler.FinancialSummary)
	reportRoutes.GET("/monthly-revenue", dashboardHandler.MonthlyRevenue)
	reportRoutes.GET("/property-performance", dashboardHandler.PropertyPerformance)
	reportRoutes.GET("/top-properties", dashboardHandler.TopProperties)
	reportRoutes.GET("/expense-breakdown", dashboardHandler.ExpenseBreakdown)
	reportRoutes.GET("/overdue-invoices", dashboardHandler.OverdueInvoices)
	reportRoutes.GET("/recent-payments", dashboardHandler.RecentPayments)
	reportRoutes.GET("/recent-activity", dashboardHandler.RecentActivity)

	// Advisor domain
	advisorRoutes := router.NewDomainGroup("advisor", "/advisor")
	advisorRoutes.GET("/advice", advisorHandler.GetAdvice)

	// System domain
	systemRoutes := router.NewDomainGroup("system", "/system")
	systemRoutes.GET("/health", systemHandler.Health)
	systemRoutes.GET("/info", systemHandler.GetSystemInfo)
	systemRoutes.GET("/scheduler", systemHandler.SchedulerStatus)
	systemRoutes.POST("/scheduler/run", write, systemHandler.TriggerSweeps)

	r.Register(authRoutes).
		Register(portfolioRoutes).
		Register(leasingRoutes).
		Register(billingRoutes).
		Register(financeRoutes).
		Register(reportRoutes).
		Register(advisorRoutes).
		Register(systemRoutes).
		Setup()

	// Create HTTP server with config
	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	// Start server in goroutine
	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}

// healthHandler returns a handler for health check endpoints
func healthHandler(db *persistence.Database, _ *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		reqLog := logger.GetGinLogger(c)
		if err := db.Ping(); err != nil {
			reqLog.Warn("Health check failed", zap.Error(err))
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":   "unhealthy",
				"time":     time.Now().Format(time.RFC3339),
				"database": "error",
			})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"status":   "healthy",
			"time":     time.Now().Format(time.RFC3339),
			"database": "ok",
		})
	}
}
