package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	catalogapp "github.com/atolye/backend/internal/application/catalog"
	inventoryapp "github.com/atolye/backend/internal/application/inventory"
	tradeapp "github.com/atolye/backend/internal/application/trade"
	"github.com/atolye/backend/internal/infrastructure/auth"
	"github.com/atolye/backend/internal/infrastructure/config"
	"github.com/atolye/backend/internal/infrastructure/event"
	"github.com/atolye/backend/internal/infrastructure/licensing"
	"github.com/atolye/backend/internal/infrastructure/logger"
	"github.com/atolye/backend/internal/infrastructure/persistence"
	"github.com/atolye/backend/internal/interfaces/http/handler"
	"github.com/atolye/backend/internal/interfaces/http/middleware"
	"github.com/atolye/backend/internal/interfaces/http/router"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	log, err := logger.New(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = log.Sync()
	}()

	log.Info("Starting Atolye Backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	// Create GORM logger backed by zap
	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level))

	// Initialize database connection
	db, err := persistence.NewDatabase(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected successfully")

	// Initialize repositories
	materialRepo := persistence.NewGormMaterialRepository(db.DB)
	productRepo := persistence.NewGormProductRepository(db.DB)
	orderRepo := persistence.NewGormOrderRepository(db.DB)
	offerRepo := persistence.NewGormOfferRepository(db.DB)
	supplyOrderRepo := persistence.NewGormSupplyOrderRepository(db.DB)
	stockMovementRepo := persistence.NewGormStockMovementRepository(db.DB)

	// Transaction scope and the services shared by stock-mutating operations
	txScope := persistence.NewGormTransactionScope(db.DB)
	licenseGate := licensing.NewGate(db.DB, cfg.License.Enforce, log)
	stockLedger := inventoryapp.NewStockLedgerService(log)

	// Initialize application services
	materialService := catalogapp.NewMaterialService(materialRepo, log)
	productService := catalogapp.NewProductService(productRepo, materialRepo, log)
	orderService := tradeapp.NewOrderService(orderRepo, productService, log)
	offerService := tradeapp.NewOfferService(offerRepo, txScope, stockLedger, licenseGate, productService, log)
	supplyOrderService := tradeapp.NewSupplyOrderService(supplyOrderRepo, txScope, stockLedger, licenseGate, log)
	stockMovementService := inventoryapp.NewStockMovementService(stockMovementRepo)

	// Initialize JWT service
	jwtService := auth.NewJWTService(cfg.JWT.Secret, cfg.JWT.Expiration, cfg.JWT.Issuer)

	// Initialize event bus and register handlers
	eventBus := event.NewInMemoryEventBus(log)
	auditHandler := event.NewAuditLogHandler(log)
	eventBus.Subscribe(auditHandler)
	log.Info("Event handlers registered",
		zap.Strings("audit_events", auditHandler.EventTypes()),
	)

	// Inject event bus into services that publish events
	orderService.SetEventPublisher(eventBus)
	offerService.SetEventPublisher(eventBus)
	supplyOrderService.SetEventPublisher(eventBus)

	// Initialize HTTP handlers
	materialHandler := handler.NewMaterialHandler(materialService)
	productHandler := handler.NewProductHandler(productService)
	orderHandler := handler.NewOrderHandler(orderService)
	offerHandler := handler.NewOfferHandler(offerService)
	supplyOrderHandler := handler.NewSupplyOrderHandler(supplyOrderService)
	stockMovementHandler := handler.NewStockMovementHandler(stockMovementService)
	systemHandler := handler.NewSystemHandler(db)

	// Set Gin mode based on environment
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	// Setup validation
	middleware.SetupValidator()

	engine := gin.New()
	engine.Use(middleware.RequestID())
	engine.Use(middleware.Recovery(log))
	engine.Use(middleware.RequestLogger(log))
	engine.Use(middleware.JWTAuth(jwtService, log,
		"/api/v1/health",
		"/api/v1/ready",
	))

	router.NewRouter(engine).
		Register(systemHandler).
		Register(materialHandler).
		Register(productHandler).
		Register(orderHandler).
		Register(offerHandler).
		Register(supplyOrderHandler).
		Register(stockMovementHandler).
		Setup()

	srv := &http.Server{
		Addr:         ":" + cfg.App.Port,
		Handler:      engine,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  cfg.HTTP.IdleTimeout,
	}

	go func() {
		log.Info("HTTP server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	// Wait for interrupt signal and shut down gracefully
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("Forced shutdown", zap.Error(err))
	}
	log.Info("Server stopped")
}
