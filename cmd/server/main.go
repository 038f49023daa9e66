package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	accountingapp "github.com/bizerp/backend/internal/application/accounting"
	orderapp "github.com/bizerp/backend/internal/application/order"
	quoteapp "github.com/bizerp/backend/internal/application/quote"
	"github.com/bizerp/backend/internal/infrastructure/cache"
	"github.com/bizerp/backend/internal/infrastructure/config"
	"github.com/bizerp/backend/internal/infrastructure/logger"
	"github.com/bizerp/backend/internal/infrastructure/persistence"
	"github.com/bizerp/backend/internal/interfaces/http/handler"
	"github.com/bizerp/backend/internal/interfaces/http/middleware"
	"github.com/bizerp/backend/internal/interfaces/http/router"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

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

	log.Info("Starting ERP payments backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level))
	db, err := persistence.NewDatabaseWithCustomLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected successfully")

	redisClient := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Redis.Host, cfg.Redis.Port),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer func() {
		if err := redisClient.Close(); err != nil {
			log.Error("Error closing redis client", zap.Error(err))
		}
	}()
	if err := redisClient.Ping(context.Background()).Err(); err != nil {
		// the rate cache degrades to direct database reads, so a cache
		// outage is not fatal at startup
		log.Warn("Redis unavailable, tax rate caching disabled", zap.Error(err))
	}

	// Repositories
	paymentRepo := persistence.NewGormPaymentRepository(db.DB)
	tranRepo := persistence.NewGormFinAccountTranRepository(db.DB)
	methodRepo := persistence.NewGormPaymentMethodRepository(db.DB)
	planRepo := persistence.NewGormPaymentPlanRepository(db.DB)
	quoteRepo := persistence.NewGormQuoteRepository(db.DB)
	taxConfigRepo := persistence.NewGormTaxConfigRepository(db.DB)

	rateCache := cache.NewRedisTaxRateCache(redisClient,
		cache.WithTaxRateTTL(cfg.Tax.RateCacheTTL),
		cache.WithTaxRateLogger(log),
	)
	cachedTaxRepo := cache.NewCachingTaxConfigRepository(taxConfigRepo, rateCache)

	// Application services
	paymentService := accountingapp.NewPaymentService(paymentRepo, methodRepo, tranRepo)
	orderPaymentService := orderapp.NewOrderPaymentService(planRepo, paymentRepo)
	quoteService := quoteapp.NewQuoteService(quoteRepo, cachedTaxRepo)

	// HTTP engine
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	engine := gin.New()
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Fatal("Failed to set trusted proxies", zap.Error(err))
		}
	}

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

	engine.Use(middleware.RequestID())
	engine.Use(logger.GinMiddleware(log))
	engine.Use(logger.Recovery(log))
	engine.Use(middleware.CORSWithConfig(corsConfig))

	r := router.NewRouter(engine)
	r.Register(handler.NewPaymentHandler(paymentService)).
		Register(handler.NewOrderPaymentHandler(orderPaymentService)).
		Register(handler.NewQuoteHandler(quoteService)).
		Register(handler.NewSystemHandler(db, redisClient))
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
