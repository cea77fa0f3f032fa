package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/garmentflow/wms/internal/config"
	logisticsentity "github.com/garmentflow/wms/internal/logistics/entity"
	logisticshandler "github.com/garmentflow/wms/internal/logistics/handler"
	logisticsrepo "github.com/garmentflow/wms/internal/logistics/repository"
	logisticssvc "github.com/garmentflow/wms/internal/logistics/service"
	"github.com/garmentflow/wms/internal/middleware"
	"github.com/garmentflow/wms/internal/warehouse/entity"
	"github.com/garmentflow/wms/internal/warehouse/handler"
	"github.com/garmentflow/wms/internal/warehouse/repository"
	"github.com/garmentflow/wms/internal/warehouse/service"
)

var (
	Version   = "dev"
	BuildTime = "unknown"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	zapLogger, err := initLogger(cfg.Log)
	if err != nil {
		log.Fatalf("Failed to init logger: %v", err)
	}
	defer zapLogger.Sync()

	zapLogger.Info("Starting wms service",
		zap.String("version", Version),
		zap.String("build_time", BuildTime),
	)

	db, err := initDatabase(cfg.Database)
	if err != nil {
		zapLogger.Fatal("Failed to connect to database", zap.Error(err))
	}

	if err := db.AutoMigrate(
		&entity.Sequence{},
		&entity.InventoryItem{},
		&entity.Supplier{},
		&entity.PurchaseRequisition{},
		&entity.RequisitionLine{},
		&entity.User{},
		&logisticsentity.Delivery{},
		&logisticsentity.Driver{},
		&logisticsentity.TrackingEvent{},
	); err != nil {
		zapLogger.Fatal("AutoMigrate failed", zap.Error(err))
	}

	var rdb *redis.Client
	if cfg.Redis.Enabled {
		rdb = initRedis(cfg.Redis)
		if err := rdb.Ping(context.Background()).Err(); err != nil {
			zapLogger.Warn("Redis unavailable, continuing without it", zap.Error(err))
			rdb = nil
		}
	}

	// Warehouse side
	repos := repository.NewRepositories(db)
	inventorySvc := service.NewInventoryService(repos.Inventory)
	supplierSvc := service.NewSupplierService(repos.Supplier)
	requisitionSvc := service.NewRequisitionService(repos.Requisition, repos.Inventory, repos.Supplier)
	authSvc := service.NewAuthService(repos.User, cfg.JWT.Secret, cfg.JWT.Issuer, cfg.JWT.AccessTokenExpire)
	warehouseHandlers := handler.NewHandlers(inventorySvc, supplierSvc, requisitionSvc, authSvc)

	// Logistics side
	logisticsRepos := logisticsrepo.NewRepositories(db)
	deliverySvc := logisticssvc.NewDeliveryService(logisticsRepos.Delivery)
	driverSvc := logisticssvc.NewDriverService(logisticsRepos.Driver)
	trackingSvc := logisticssvc.NewTrackingService(logisticsRepos.Tracking, logisticsRepos.Delivery)
	logisticsHandlers := logisticshandler.NewHandlers(deliverySvc, driverSvc, trackingSvc)

	gin.SetMode(cfg.Server.Mode)
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.Logger(zapLogger))
	router.Use(middleware.CORS())
	router.Use(gzip.Gzip(gzip.DefaultCompression))
	if cfg.RateLimit.Enabled {
		router.Use(middleware.RateLimit(cfg.RateLimit.Rate, rdb, zapLogger))
	}

	registerRoutes(router, warehouseHandlers, logisticsHandlers, cfg)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		zapLogger.Info("Server listening", zap.Int("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zapLogger.Fatal("Server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	zapLogger.Info("Shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		zapLogger.Error("Server forced to shutdown", zap.Error(err))
	}

	zapLogger.Info("Server exited")
}

func initLogger(cfg config.LogConfig) (*zap.Logger, error) {
	var zapCfg zap.Config

	if cfg.Format == "json" {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
	}

	switch cfg.Level {
	case "debug":
		zapCfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	case "info":
		zapCfg.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
	case "warn":
		zapCfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	case "error":
		zapCfg.Level = zap.NewAtomicLevelAt(zap.ErrorLevel)
	}

	return zapCfg.Build()
}

func initDatabase(cfg config.DatabaseConfig) (*gorm.DB, error) {
	gormConfig := &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Warn),
		TranslateError: true,
	}

	db, err := gorm.Open(postgres.Open(cfg.DSN()), gormConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database instance: %w", err)
	}

	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	sqlDB.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

	return db, nil
}

func initRedis(cfg config.RedisConfig) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     cfg.Addr(),
		Password: cfg.Password,
		DB:       cfg.DB,
		PoolSize: cfg.PoolSize,
	})
}

func registerRoutes(r *gin.Engine, wh *handler.Handlers, lh *logisticshandler.Handlers, cfg *config.Config) {
	r.GET("/health/live", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/health/ready", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	r.GET("/version", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"version":    Version,
			"build_time": BuildTime,
		})
	})

	api := r.Group("/api")
	{
		auth := api.Group("/auth")
		{
			auth.POST("/register", wh.Auth.Register)
			auth.POST("/login", wh.Auth.Login)
		}

		protected := api.Group("")
		protected.Use(middleware.JWTAuth(cfg.JWT.Secret))
		{
			inventory := protected.Group("/inventory")
			{
				inventory.GET("", wh.Inventory.List)
				inventory.GET("/low-stock", wh.Inventory.LowStock)
				inventory.GET("/categories", wh.Inventory.Categories)
				inventory.GET("/:id", wh.Inventory.Get)
				inventory.POST("", wh.Inventory.Create)
				inventory.PUT("/:id", wh.Inventory.Update)
				inventory.PATCH("/:id", wh.Inventory.Update)
				inventory.PATCH("/:id/adjust", wh.Inventory.Adjust)
				inventory.DELETE("/:id", middleware.RequireRole("manager"), wh.Inventory.Delete)
			}

			suppliers := protected.Group("/suppliers")
			{
				suppliers.GET("", wh.Supplier.List)
				suppliers.GET("/:number", wh.Supplier.Get)
				suppliers.POST("", wh.Supplier.Create)
				suppliers.PUT("/:number", wh.Supplier.Update)
				suppliers.PATCH("/:number/status", wh.Supplier.UpdateStatus)
				suppliers.DELETE("/:number", middleware.RequireRole("manager"), wh.Supplier.Delete)
			}

			requisitions := protected.Group("/purchase-requisitions")
			{
				requisitions.GET("", wh.Requisition.List)
				requisitions.GET("/:id", wh.Requisition.Get)
				requisitions.POST("", wh.Requisition.Create)
				requisitions.PUT("/:id", wh.Requisition.Update)
				requisitions.POST("/:id/submit", wh.Requisition.Submit)
				requisitions.POST("/:id/approve", wh.Requisition.Approve)
				requisitions.POST("/:id/order", wh.Requisition.Order)
				requisitions.POST("/:id/cancel", wh.Requisition.Cancel)
				requisitions.POST("/:id/receive", wh.Requisition.Receive)
			}

			deliveries := protected.Group("/deliveries")
			{
				deliveries.GET("", lh.Delivery.List)
				deliveries.GET("/:ref", lh.Delivery.Get)
				deliveries.POST("", lh.Delivery.Create)
				deliveries.PUT("/:ref", lh.Delivery.Update)
				deliveries.DELETE("/:ref", lh.Delivery.Delete)
			}

			drivers := protected.Group("/drivers")
			{
				drivers.GET("", lh.Driver.List)
				drivers.GET("/:ref", lh.Driver.Get)
				drivers.POST("", lh.Driver.Create)
				drivers.PUT("/:ref", lh.Driver.Update)
				drivers.DELETE("/:ref", lh.Driver.Delete)
			}

			tracking := protected.Group("/tracking")
			{
				tracking.POST("/:deliveryId", lh.Tracking.Track)
				tracking.GET("/:deliveryId/history", lh.Tracking.History)
			}
		}
	}
}
