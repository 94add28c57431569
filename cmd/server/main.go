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

	deliveryapp "github.com/courierlog/backend/internal/application/delivery"
	fleetapp "github.com/courierlog/backend/internal/application/fleet"
	reportapp "github.com/courierlog/backend/internal/application/report"
	"github.com/courierlog/backend/internal/infrastructure/auth"
	"github.com/courierlog/backend/internal/infrastructure/config"
	"github.com/courierlog/backend/internal/infrastructure/excel"
	"github.com/courierlog/backend/internal/infrastructure/identity"
	"github.com/courierlog/backend/internal/infrastructure/logger"
	"github.com/courierlog/backend/internal/infrastructure/persistence"
	"github.com/courierlog/backend/internal/interfaces/http/handler"
	"github.com/courierlog/backend/internal/interfaces/http/middleware"
	"github.com/courierlog/backend/internal/interfaces/http/router"
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

	log.Info("Starting courier log backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	// Create GORM logger backed by zap
	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level))

	// Initialize database connection
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

	// Repositories
	driverRepo := persistence.NewGormDriverRepository(db.DB)
	scannerRepo := persistence.NewGormScannerRepository(db.DB)
	deliveryRepo := persistence.NewGormDeliveryRepository(db.DB)
	scanRowRepo := persistence.NewGormScanRowRepository(db.DB)

	// Identity provider
	identityProvider := identity.NewClerkIdentityProvider(cfg.Clerk.SecretKey)

	// Application services
	deliveryService := deliveryapp.NewDeliveryService(driverRepo, scannerRepo, deliveryRepo)
	driverService := fleetapp.NewDriverService(driverRepo)
	roleService := fleetapp.NewRoleService(identityProvider)
	scannerService := fleetapp.NewScannerService(scannerRepo)
	payrollService := reportapp.NewPayrollService(scanRowRepo)

	// Gin engine with ambient middleware
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	middleware.SetupValidator()
	engine := gin.New()
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Fatal("Failed to set trusted proxies", zap.Error(err))
		}
	}
	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.SecurityHeaders())

	corsConfig := middleware.DefaultCORSConfig()
	if len(cfg.HTTP.CORSAllowOrigins) > 0 {
		corsConfig.AllowOrigins = cfg.HTTP.CORSAllowOrigins
	}
	if len(cfg.HTTP.CORSAllowMethods) > 0 {
		corsConfig.AllowMethods = cfg.HTTP.CORSAllowMethods
	}
	if len(cfg.HTTP.CORSAllowHeaders) > 0 {
		corsConfig.AllowHeaders = cfg.HTTP.CORSAllowHeaders
	}
	engine.Use(middleware.CORSWithConfig(corsConfig))
	engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))

	if cfg.Clerk.AuthRequired {
		verifier, err := auth.NewSessionVerifier(cfg.Clerk.JWTPublicKey)
		if err != nil {
			log.Fatal("Failed to parse session public key", zap.Error(err))
		}
		engine.Use(middleware.SessionAuth(verifier))
		log.Info("Session authentication enabled")
	}

	// Routes
	r := router.NewRouter(engine)
	r.Register(handler.NewDeliveryHandler(deliveryService)).
		Register(handler.NewDriverHandler(driverService, roleService)).
		Register(handler.NewScannerHandler(scannerService)).
		Register(handler.NewReportHandler(payrollService, excel.NewPayrollExporter())).
		Register(handler.NewSystemHandler(db))
	r.Setup()

	// HTTP server
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
