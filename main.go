package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	apperrors "github.com/mohamedhosni23/apple-store-bi-project/common/errors"
	"github.com/mohamedhosni23/apple-store-bi-project/common/logger"
	"github.com/mohamedhosni23/apple-store-bi-project/consumer"
	"github.com/mohamedhosni23/apple-store-bi-project/controllers"
	"github.com/mohamedhosni23/apple-store-bi-project/database"
	"github.com/mohamedhosni23/apple-store-bi-project/middleware"
	aws_pkg "github.com/mohamedhosni23/apple-store-bi-project/pkg/aws"
	"github.com/mohamedhosni23/apple-store-bi-project/repository"
	"github.com/mohamedhosni23/apple-store-bi-project/routes"
	"github.com/mohamedhosni23/apple-store-bi-project/services"
	"go.uber.org/zap"
)

func main() {
	cfg, err := LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	ctx := context.Background()

	cwLogs, cwErr := aws_pkg.NewCloudWatchLogsClient(ctx, "bi-dashboard")
	if cwErr == nil && cwLogs.IsEnabled() {
		logger.InitializeWithWriter(cfg.Env, cwLogs)
	} else {
		logger.Initialize(cfg.Env)
	}
	defer logger.Log.Sync() //nolint:errcheck
	if cwErr != nil {
		logger.Log.Warn("CloudWatch Logs unavailable", zap.Error(cwErr))
	}

	mongoConn, err := database.ConnectMongo(ctx, cfg.MongoURI, cfg.MongoDBName)
	if err != nil {
		logger.Log.Fatal("Failed to connect to MongoDB", zap.Error(err))
	}
	defer mongoConn.Close() //nolint:errcheck

	var cache services.KPICache
	if cfg.RedisURL != "" {
		rdb, err := database.NewRedisClient(ctx, cfg.RedisURL)
		if err != nil {
			logger.Log.Warn("Redis unavailable, KPI cache disabled", zap.Error(err))
		} else {
			defer rdb.Close() //nolint:errcheck
			cache = services.NewRedisKPICache(rdb, cfg.KPICacheTTL)
		}
	}

	var metrics *aws_pkg.MetricsClient
	if m, err := aws_pkg.NewMetricsClient(ctx); err != nil {
		logger.Log.Warn("CloudWatch metrics unavailable", zap.Error(err))
	} else {
		metrics = m
	}

	orderRepo := repository.NewOrderRepository(mongoConn.DB)
	var recorder aws_pkg.MetricsRecorder
	if metrics != nil {
		recorder = metrics
	}
	dashboardService := services.NewDashboardService(orderRepo, cache, recorder, cfg.EmbedURL, cfg.DashboardTitle, logger.Log)
	dashboardController := controllers.NewDashboardController(dashboardService)

	consumerCtx, stopConsumer := context.WithCancel(ctx)
	defer stopConsumer()
	if cfg.RefreshQueue != "" {
		if awsCfg, err := aws_pkg.LoadAWSConfig(ctx); err != nil {
			logger.Log.Warn("KPI refresh queue disabled", zap.Error(err))
		} else {
			c := consumer.NewRefreshConsumer(aws_pkg.NewSQSClient(awsCfg), cfg.RefreshQueue, dashboardService, logger.Log)
			go c.Start(consumerCtx)
		}
	}

	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(logger.RequestLogger())
	r.Use(middleware.CORSMiddleware(cfg.AllowedOrigins))
	r.Use(middleware.SecurityHeaders())
	if metrics != nil {
		r.Use(middleware.MetricsMiddleware(metrics, "bi-dashboard"))
	}
	if cfg.RateLimit > 0 {
		limiter := middleware.NewRateLimiter(middleware.PerMinute(cfg.RateLimit), cfg.RateLimit/2+1, 5*time.Minute)
		stopPrune := make(chan struct{})
		defer close(stopPrune)
		go limiter.Run(stopPrune)
		r.Use(limiter.Handler())
	}
	r.Use(apperrors.ErrorMiddleware())

	// 30-second request timeout
	r.Use(func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 30*time.Second)
		defer cancel()
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	})

	routes.RegisterDashboardRoutes(r, dashboardController)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Fatal("Server failed", zap.Error(err))
		}
	}()

	logger.Log.Info("BI dashboard API started", zap.String("port", cfg.Port))
	<-quit
	logger.Log.Info("Shutting down BI dashboard API...")
	stopConsumer()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Log.Error("Server forced to shutdown", zap.Error(err))
	}
	logger.Log.Info("Server exited cleanly")
}
