package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	catalogapp "github.com/stockroom/backend/internal/application/catalog"
	deliveryapp "github.com/stockroom/backend/internal/application/delivery"
	inventoryapp "github.com/stockroom/backend/internal/application/inventory"
	usageapp "github.com/stockroom/backend/internal/application/usage"
	"github.com/stockroom/backend/internal/infrastructure/config"
	"github.com/stockroom/backend/internal/infrastructure/logger"
	"github.com/stockroom/backend/internal/infrastructure/persistence"
	"github.com/stockroom/backend/internal/interfaces/http/handler"
	"github.com/stockroom/backend/internal/interfaces/http/middleware"
	"github.com/stockroom/backend/internal/interfaces/http/router"
	"go.uber.org/zap"
)

// @title        Stockroom API
// @version      1.0
// @description  Batch-level stock tracking for small food businesses
// @host         localhost:8080
// @BasePath     /api/v1

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	log := logger.New(logger.Options{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	defer func() {
		_ = log.Sync()
	}()

	log.Info("Starting stockroom",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level))
	db, err := persistence.NewDatabaseWithLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected")

	// Repositories
	batchRepo := persistence.NewGormBatchRepository(db.DB)
	deliveryRepo := persistence.NewGormDeliveryRepository(db.DB)
	usageRepo := persistence.NewGormUsageRepository(db.DB)
	productRepo := persistence.NewGormProductRepository(db.DB)
	outletRepo := persistence.NewGormOutletRepository(db.DB)
	locationRepo := persistence.NewGormLocationRepository(db.DB)
	vendorRepo := persistence.NewGormVendorRepository(db.DB)

	// Transaction scopes
	inventoryScope := persistence.NewGormInventoryTransactionScope(db.DB)
	deliveryScope := persistence.NewGormDeliveryTransactionScope(db.DB)
	usageScope := persistence.NewGormUsageTransactionScope(db.DB)

	// Application services
	ledgerService := inventoryapp.NewLedgerService(batchRepo, productRepo, outletRepo, locationRepo, inventoryScope)
	deliveryService := deliveryapp.NewDeliveryService(deliveryRepo, productRepo, vendorRepo, deliveryScope)
	usageService := usageapp.NewUsageService(usageRepo, batchRepo, usageScope)
	catalogService := catalogapp.NewCatalogService(productRepo, outletRepo, locationRepo, vendorRepo)

	// Handlers
	inventoryHandler := handler.NewInventoryHandler(ledgerService, cfg.Stock.ExpiryWarningDays)
	deliveryHandler := handler.NewDeliveryHandler(deliveryService)
	usageHandler := handler.NewUsageHandler(usageService)
	catalogHandler := handler.NewCatalogHandler(catalogService)
	systemHandler := handler.NewSystemHandler(db)

	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Fatal("Failed to set trusted proxies", zap.Error(err))
		}
	}

	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.Secure())

	corsConfig := middleware.DefaultCORSConfig()
	corsConfig.AllowOrigins = cfg.HTTP.CORSAllowOrigins
	if len(cfg.HTTP.CORSAllowMethods) > 0 {
		corsConfig.AllowMethods = cfg.HTTP.CORSAllowMethods
	}
	if len(cfg.HTTP.CORSAllowHeaders) > 0 {
		corsConfig.AllowHeaders = cfg.HTTP.CORSAllowHeaders
	}
	engine.Use(middleware.CORSWithConfig(corsConfig))

	r := router.NewRouter(engine, router.WithAPIVersion("v1"))

	inventoryRoutes := router.NewDomainGroup("inventory", "/inventory")
	inventoryRoutes.GET("/batches", inventoryHandler.ListBatches)
	inventoryRoutes.GET("/batches/expiring", inventoryHandler.ListExpiringSoon)
	inventoryRoutes.GET("/batches/:id", inventoryHandler.GetBatch)
	inventoryRoutes.POST("/batches/add-stock", inventoryHandler.AddStock)
	inventoryRoutes.POST("/batches/:id/remove-stock", inventoryHandler.RemoveStock)
	inventoryRoutes.POST("/batches/:id/archive", inventoryHandler.ArchiveBatch)
	inventoryRoutes.GET("/products/:id/batches", inventoryHandler.ListBatchesByProduct)
	inventoryRoutes.GET("/outlets/:id/batches", inventoryHandler.ListBatchesByOutlet)
	inventoryRoutes.GET("/reorder-alerts", inventoryHandler.ListReorderAlerts)

	deliveryRoutes := router.NewDomainGroup("deliveries", "/deliveries")
	deliveryRoutes.POST("", deliveryHandler.Create)
	deliveryRoutes.GET("", deliveryHandler.List)
	deliveryRoutes.GET("/:id", deliveryHandler.Get)
	deliveryRoutes.PUT("/:id", deliveryHandler.Update)
	deliveryRoutes.DELETE("/:id", deliveryHandler.Delete)
	deliveryRoutes.POST("/:id/lines", deliveryHandler.AddLine)
	deliveryRoutes.PUT("/:id/lines/:line_id", deliveryHandler.UpdateLine)
	deliveryRoutes.DELETE("/:id/lines/:line_id", deliveryHandler.RemoveLine)
	deliveryRoutes.GET("/:id/review", deliveryHandler.Review)
	deliveryRoutes.POST("/:id/confirm", deliveryHandler.Confirm)
	deliveryRoutes.POST("/:id/cancel", deliveryHandler.Cancel)

	usageRoutes := router.NewDomainGroup("usages", "/usages")
	usageRoutes.POST("", usageHandler.Create)
	usageRoutes.GET("", usageHandler.List)
	usageRoutes.POST("/check-quantity", usageHandler.CheckQuantity)
	usageRoutes.GET("/:id", usageHandler.Get)
	usageRoutes.PUT("/:id", usageHandler.Update)
	usageRoutes.DELETE("/:id", usageHandler.Delete)
	usageRoutes.POST("/:id/lines", usageHandler.AddLine)
	usageRoutes.DELETE("/:id/lines/:line_id", usageHandler.RemoveLine)

	catalogRoutes := router.NewDomainGroup("catalog", "/catalog")
	catalogRoutes.POST("/products", catalogHandler.CreateProduct)
	catalogRoutes.GET("/products", catalogHandler.ListProducts)
	catalogRoutes.GET("/products/:id", catalogHandler.GetProduct)
	catalogRoutes.PUT("/products/:id", catalogHandler.UpdateProduct)
	catalogRoutes.POST("/products/:id/archive", catalogHandler.ArchiveProduct)
	catalogRoutes.POST("/products/:id/restore", catalogHandler.RestoreProduct)
	catalogRoutes.POST("/outlets", catalogHandler.CreateOutlet)
	catalogRoutes.GET("/outlets", catalogHandler.ListOutlets)
	catalogRoutes.GET("/outlets/:id", catalogHandler.GetOutlet)
	catalogRoutes.PUT("/outlets/:id", catalogHandler.UpdateOutlet)
	catalogRoutes.POST("/locations", catalogHandler.CreateLocation)
	catalogRoutes.GET("/locations", catalogHandler.ListLocations)
	catalogRoutes.GET("/locations/:id", catalogHandler.GetLocation)
	catalogRoutes.PUT("/locations/:id", catalogHandler.UpdateLocation)
	catalogRoutes.POST("/locations/:id/archive", catalogHandler.ArchiveLocation)
	catalogRoutes.POST("/locations/:id/restore", catalogHandler.RestoreLocation)
	catalogRoutes.POST("/vendors", catalogHandler.CreateVendor)
	catalogRoutes.GET("/vendors", catalogHandler.ListVendors)
	catalogRoutes.GET("/vendors/:id", catalogHandler.GetVendor)
	catalogRoutes.PUT("/vendors/:id", catalogHandler.UpdateVendor)
	catalogRoutes.POST("/vendors/:id/archive", catalogHandler.ArchiveVendor)
	catalogRoutes.POST("/vendors/:id/restore", catalogHandler.RestoreVendor)

	systemRoutes := router.NewDomainGroup("system", "/system")
	systemRoutes.GET("/info", systemHandler.GetSystemInfo)
	systemRoutes.GET("/ping", systemHandler.Ping)
	systemRoutes.GET("/health", systemHandler.Health)

	r.Register(inventoryRoutes).
		Register(deliveryRoutes).
		Register(usageRoutes).
		Register(catalogRoutes).
		Register(systemRoutes)
	r.Setup()

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
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

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
