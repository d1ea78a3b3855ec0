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

	catalogapp "github.com/paintfactory/backend/internal/application/catalog"
	costingapp "github.com/paintfactory/backend/internal/application/costing"
	ledgerapp "github.com/paintfactory/backend/internal/application/ledger"
	productionapp "github.com/paintfactory/backend/internal/application/production"
	tradeapp "github.com/paintfactory/backend/internal/application/trade"
	"github.com/paintfactory/backend/internal/infrastructure/auth"
	"github.com/paintfactory/backend/internal/infrastructure/cache"
	"github.com/paintfactory/backend/internal/infrastructure/config"
	"github.com/paintfactory/backend/internal/infrastructure/event"
	"github.com/paintfactory/backend/internal/infrastructure/logger"
	"github.com/paintfactory/backend/internal/infrastructure/persistence"
	"github.com/paintfactory/backend/internal/infrastructure/telemetry"
	"github.com/paintfactory/backend/internal/interfaces/http/handler"
	"github.com/paintfactory/backend/internal/interfaces/http/middleware"
	"github.com/paintfactory/backend/internal/interfaces/http/router"
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
		_ = log.Sync()
	}()

	log.Info("Starting paint factory backend",
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
			log.Error("Error shutting down tracer provider", zap.Error(err))
		}
	}()

	// Create GORM logger backed by zap
	gormLogLevel := logger.MapGormLogLevel(cfg.Log.Level)
	gormLog := logger.NewGormLogger(log, gormLogLevel)

	// Initialize database connection with custom logger
	db, err := persistence.NewDatabaseWithGormLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected successfully")

	// Register query tracing before any repository touches the connection
	if err := telemetry.RegisterDBTracing(db.DB, telemetry.DBTracingConfig{
		Enabled:    cfg.Telemetry.Enabled && cfg.Telemetry.DBTraceEnabled,
		DBName:     cfg.Database.DBName,
		LogFullSQL: cfg.App.Env != "production",
	}, log); err != nil {
		log.Fatal("Failed to register database tracing", zap.Error(err))
	}

	// Initialize repositories
	rawMaterialRepo := persistence.NewGormRawMaterialRepository(db.DB)
	accessoryRepo := persistence.NewGormPaintAccessoryRepository(db.DB)
	semiFinishedRepo := persistence.NewGormSemiFinishedGoodRepository(db.DB)
	finishedGoodRepo := persistence.NewGormFinishedGoodRepository(db.DB)
	movementRepo := persistence.NewGormStockMovementRepository(db.DB)
	purchaseRepo := persistence.NewGormPurchaseRepository(db.DB)
	saleRepo := persistence.NewGormSaleRepository(db.DB)
	txScope := persistence.NewGormTransactionScope(db.DB)

	// Cost cache: Redis when enabled, in-process fallback otherwise
	var costCache costingapp.CostCache
	if cfg.Cache.Enabled {
		redisCache, err := cache.NewRedisCostCache(cache.RedisConfig{
			Host:     cfg.Redis.Host,
			Port:     cfg.Redis.Port,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		}, cfg.Cache.CostTTL)
		if err != nil {
			log.Warn("Redis unavailable, falling back to in-memory cost cache", zap.Error(err))
			costCache = cache.NewInMemoryCostCache(cfg.Cache.CostTTL)
		} else {
			costCache = redisCache
			log.Info("Redis cost cache connected", zap.String("addr", cfg.Redis.Addr()))
		}
	} else {
		costCache = cache.NewInMemoryCostCache(cfg.Cache.CostTTL)
	}

	// Initialize event bus
	eventBus := event.NewInMemoryEventBus(log)

	// Initialize application services
	catalogService := catalogapp.NewCatalogService(txScope, rawMaterialRepo, accessoryRepo, semiFinishedRepo)
	ledgerService := ledgerapp.NewLedgerService(txScope, movementRepo)
	costingService := costingapp.NewCostingService(finishedGoodRepo, costCache)
	tradeService := tradeapp.NewTradeService(txScope, purchaseRepo, saleRepo)
	productionService := productionapp.NewProductionService(txScope, finishedGoodRepo)

	// Wire event publishing and cache invalidation
	catalogService.SetEventPublisher(eventBus)
	ledgerService.SetEventPublisher(eventBus)
	tradeService.SetEventPublisher(eventBus)
	productionService.SetEventPublisher(eventBus)
	costingService.RegisterEventHandlers(eventBus)

	// Token service for API authentication
	jwtService := auth.NewJWTService(cfg.JWT)

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Setup validation
	middleware.SetupValidator()

	engine := gin.New()

	// Configure trusted proxies
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	// Middleware stack, outermost first: request ID, panic recovery,
	// request logging, security headers, CORS, tracing
	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.Secure())

	corsConfig := middleware.CORSConfig{
		AllowOrigins:     cfg.HTTP.CORSAllowOrigins,
		AllowMethods:     cfg.HTTP.CORSAllowMethods,
		AllowHeaders:     cfg.HTTP.CORSAllowHeaders,
		ExposeHeaders:    []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	engine.Use(middleware.CORSWithConfig(corsConfig))

	if cfg.Telemetry.Enabled {
		engine.Use(middleware.TracingWithConfig(middleware.TracingConfig{
			ServiceName: cfg.Telemetry.ServiceName,
			Enabled:     true,
		}))
		engine.Use(middleware.SpanErrorMarker())
	}

	// Health check endpoint (outside API versioning and authentication)
	engine.GET("/health", healthHandler(db, log))

	// Setup API routes
	r := router.NewRouter(engine, router.WithAPIVersion("v1"))

	r.Use(middleware.JWTAuthMiddlewareWithConfig(middleware.JWTMiddlewareConfig{
		JWTService: jwtService,
		SkipPaths: []string{
			"/api/v1/auth/refresh",
		},
		Logger: log,
	}))

	r.Register(handler.NewAuthHandler(jwtService)).
		Register(handler.NewCatalogHandler(catalogService)).
		Register(handler.NewLedgerHandler(ledgerService)).
		Register(handler.NewCostingHandler(costingService)).
		Register(handler.NewTradeHandler(tradeService)).
		Register(handler.NewProductionHandler(productionService))

	r.Setup()

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
