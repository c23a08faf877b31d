package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	ledgerapp "github.com/sanduq/backend/internal/application/ledger"
	reportapp "github.com/sanduq/backend/internal/application/report"
	"github.com/sanduq/backend/internal/domain/tenant"
	"github.com/sanduq/backend/internal/infrastructure/cache"
	"github.com/sanduq/backend/internal/infrastructure/config"
	"github.com/sanduq/backend/internal/infrastructure/logger"
	"github.com/sanduq/backend/internal/infrastructure/persistence"
	"github.com/sanduq/backend/internal/infrastructure/telemetry"
	"github.com/sanduq/backend/internal/interfaces/http/handler"
	"github.com/sanduq/backend/internal/interfaces/http/middleware"
	"github.com/sanduq/backend/internal/interfaces/http/router"
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

	log.Info("Starting Sanduq Backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	// Initialize tracing
	tracerProvider, err := telemetry.NewTracerProvider(context.Background(), telemetry.Config{
		Enabled:           cfg.Telemetry.Enabled,
		CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
		SamplingRatio:     cfg.Telemetry.SamplingRatio,
		ServiceName:       cfg.Telemetry.ServiceName,
		Insecure:          cfg.Telemetry.Insecure,
	}, log)
	if err != nil {
		log.Fatal("Failed to initialize tracer provider", zap.Error(err))
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := tracerProvider.Shutdown(shutdownCtx); err != nil {
			log.Warn("Failed to shut down tracer provider", zap.Error(err))
		}
	}()

	// Create GORM logger backed by zap
	gormLogLevel := logger.MapGormLogLevel(cfg.Log.Level)
	gormLog := logger.NewGormLogger(log, gormLogLevel)

	// Initialize database connection
	db, err := persistence.NewDatabaseWithLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Failed to close database connection", zap.Error(err))
		}
	}()

	log.Info("Database connection established",
		zap.String("host", cfg.Database.Host),
		zap.Int("port", cfg.Database.Port),
		zap.String("database", cfg.Database.DBName),
	)

	// Initialize repositories
	companyRepo := persistence.NewGormCompanyRepository(db.DB)
	branchRepo := persistence.NewGormBranchRepository(db.DB)
	workerRepo := persistence.NewGormWorkerRepository(db.DB)
	cardRepo := persistence.NewGormCardRepository(db.DB)
	customerRepo := persistence.NewGormCustomerRepository(db.DB)
	customerCardRepo := persistence.NewGormCustomerCardRepository(db.DB)
	boxStateRepo := persistence.NewGormBoxStateRepository(db.DB)
	boxPaymentRepo := persistence.NewGormBoxPaymentRepository(db.DB)
	paymentRepo := persistence.NewGormPaymentRepository(db.DB)
	dailyTotalRepo := persistence.NewGormDailyTotalRepository(db.DB)
	auditLogRepo := persistence.NewGormAuditLogRepository(db.DB)
	txManager := persistence.NewGormTransactionManager(db.DB)

	// Idempotency store: Redis when configured, in-process otherwise
	var idempotencyStore ledgerapp.IdempotencyStore
	if cfg.Redis.Enabled {
		redisStore, err := cache.NewRedisIdempotencyStore(cache.RedisConfig{
			Host:     cfg.Redis.Host,
			Port:     cfg.Redis.Port,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
			TTL:      cfg.Ledger.IdempotencyTTL,
		})
		if err != nil {
			log.Fatal("Failed to connect to Redis", zap.Error(err))
		}
		idempotencyStore = redisStore
		log.Info("Using Redis idempotency store",
			zap.String("host", cfg.Redis.Host),
			zap.Int("port", cfg.Redis.Port),
		)
	} else {
		idempotencyStore = cache.NewInMemoryIdempotencyStore(cfg.Ledger.IdempotencyTTL)
		log.Info("Using in-memory idempotency store",
			zap.Duration("ttl", cfg.Ledger.IdempotencyTTL),
		)
	}

	// Initialize application services
	dailyTotalService := reportapp.NewDailyTotalService(dailyTotalRepo)
	assignmentService := ledgerapp.NewCardAssignmentService(txManager, cardRepo, branchRepo, workerRepo, customerCardRepo, boxStateRepo, auditLogRepo)
	boxPaymentService := ledgerapp.NewBoxPaymentService(txManager, customerCardRepo, boxStateRepo, boxPaymentRepo, dailyTotalService, auditLogRepo, idempotencyStore)
	adjustmentService := ledgerapp.NewPaymentAdjustmentService(txManager, customerCardRepo, boxStateRepo, boxPaymentRepo, dailyTotalService, auditLogRepo)
	legacyPaymentService := ledgerapp.NewLegacyPaymentService(txManager, customerRepo, paymentRepo, dailyTotalService, auditLogRepo)

	// Initialize HTTP handlers
	customerCardHandler := handler.NewCustomerCardHandler(assignmentService, boxPaymentService)
	boxPaymentHandler := handler.NewBoxPaymentHandler(adjustmentService)
	customerHandler := handler.NewCustomerHandler(legacyPaymentService)
	reportHandler := handler.NewReportHandler(dailyTotalService)
	systemHandler := handler.NewSystemHandler(db)

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

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
	// 4. CORS - Handle cross-origin requests
	// 5. CompanyScope - Bind the tenant context from X-Company-ID
	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))

	corsConfig := middleware.CORSConfig{
		AllowOrigins:     cfg.HTTP.CORSAllowOrigins,
		AllowMethods:     cfg.HTTP.CORSAllowMethods,
		AllowHeaders:     cfg.HTTP.CORSAllowHeaders,
		ExposeHeaders:    []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	engine.Use(middleware.CORSWithConfig(corsConfig))
	engine.Use(middleware.CompanyScope())

	// Health endpoints live on the engine root, outside the tenant scope
	systemHandler.RegisterRoutes(engine)

	// Register API routes
	router.NewRouter(engine).
		Register(customerCardHandler).
		Register(boxPaymentHandler).
		Register(customerHandler).
		Register(reportHandler).
		Setup()

	// Periodic defaulter sweep over every active company
	sweepCtx, stopSweep := context.WithCancel(context.Background())
	defer stopSweep()
	if cfg.Ledger.DefaulterSweep {
		go runDefaulterSweep(sweepCtx, cfg.Ledger.DefaulterInterval, companyRepo, legacyPaymentService, log)
		log.Info("Defaulter sweep started",
			zap.Duration("interval", cfg.Ledger.DefaulterInterval),
		)
	}

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("HTTP server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")
	stopSweep()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited")
}

// runDefaulterSweep periodically marks customers whose ledgers have gone
// quiet as defaulters. The evaluation is tenant scoped, so each pass runs
// once per active company.
func runDefaulterSweep(ctx context.Context, interval time.Duration, companyRepo tenant.CompanyRepository, svc *ledgerapp.LegacyPaymentService, log *zap.Logger) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}

		companies, err := companyRepo.FindAllActive(ctx)
		if err != nil {
			log.Error("Defaulter sweep: failed to list companies", zap.Error(err))
			continue
		}

		for i := range companies {
			companyID := companies[i].ID
			scoped := tenant.Into(ctx, tenant.Scoped(companyID))
			flagged, err := svc.EvaluateDefaulters(scoped)
			if err != nil {
				log.Error("Defaulter sweep failed",
					zap.String("company_id", companyID.String()),
					zap.Error(err),
				)
				continue
			}
			if flagged > 0 {
				log.Info("Defaulter sweep flagged customers",
					zap.String("company_id", companyID.String()),
					zap.Int("flagged", flagged),
				)
			}
		}
	}
}
