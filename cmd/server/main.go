package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/bmccrea/courtside/internal/api"
	"github.com/bmccrea/courtside/internal/api/handlers"
	"github.com/bmccrea/courtside/internal/api/middleware"
	"github.com/bmccrea/courtside/internal/bot"
	"github.com/bmccrea/courtside/internal/espn"
	"github.com/bmccrea/courtside/internal/services"
	"github.com/bmccrea/courtside/pkg/config"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		logrus.Fatalf("Failed to load config: %v", err)
	}

	// Setup logging
	if cfg.IsDevelopment() {
		logrus.SetLevel(logrus.DebugLevel)
		gin.SetMode(gin.DebugMode)
	} else {
		logrus.SetLevel(logrus.InfoLevel)
		gin.SetMode(gin.ReleaseMode)
	}
	logger := logrus.StandardLogger()

	// Connect to Redis
	opt, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		logrus.Fatalf("Failed to parse Redis URL: %v", err)
	}
	redisClient := redis.NewClient(opt)
	ctx := context.Background()
	if err := redisClient.Ping(ctx).Err(); err != nil {
		logrus.Fatalf("Failed to connect to Redis: %v", err)
	}
	defer redisClient.Close()

	// Open the league session. No request can be served without it, so a
	// failure here is fatal.
	gateway, err := espn.New(espn.Config{
		LeagueID:         cfg.LeagueID,
		Season:           cfg.Season,
		ESPNS2:           cfg.ESPNS2,
		SWID:             cfg.SWID,
		Timeout:          cfg.ExternalAPITimeout,
		RateLimit:        cfg.ESPNRateLimit,
		BreakerThreshold: cfg.CircuitBreakerThreshold,
		Logger:           logger,
	})
	if err != nil {
		logrus.Fatalf("Failed to connect to ESPN league: %v", err)
	}

	// Initialize services
	cacheService := services.NewCacheService(redisClient)
	leagueService := services.NewLeagueService(gateway, cacheService, logger, cfg.CacheTTL)
	dispatcher := bot.NewDispatcher(leagueService, cfg.BotCommandPrefix, logger)

	// Optional background cache refresh
	if cfg.EnableBackgroundJobs {
		interval, err := time.ParseDuration(cfg.RefreshInterval)
		if err != nil {
			logrus.Warnf("Invalid refresh interval, using default 15m: %v", err)
			interval = 15 * time.Minute
		}
		refresher := services.NewRefresherService(leagueService, logger, interval)
		if err := refresher.Start(); err != nil {
			logrus.Errorf("Failed to start cache refresher: %v", err)
		}
		defer refresher.Stop()
	}

	// Setup Gin router
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.RequestLogger(logger))
	router.Use(middleware.CORS(cfg.CorsOrigins))

	// Health check endpoint
	healthHandler := handlers.NewHealthHandler(leagueService)
	router.GET("/health", healthHandler.Check)

	// Setup API routes under /api/v1
	apiV1 := router.Group("/api/v1")
	api.SetupRoutes(apiV1, leagueService, dispatcher)

	// Setup server
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		logrus.Infof("Starting server on port %s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logrus.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logrus.Fatalf("Server forced to shutdown: %v", err)
	}

	logrus.Info("Server exited")
}
