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
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/nestready/nestready/backend/planner-service/internal/api"
	"github.com/nestready/nestready/backend/planner-service/internal/db"
	"github.com/nestready/nestready/backend/planner-service/internal/logging"
	"github.com/nestready/nestready/backend/planner-service/internal/metrics"
)

func main() {
	// Load environment variables from .env file if it exists
	_ = godotenv.Load()

	logger, err := logging.NewLogger()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	logger.Info("planner service starting",
		zap.String("git_sha", os.Getenv("GIT_SHA")),
		zap.String("build_time", os.Getenv("BUILD_TIME")))

	// Database initialization is non-fatal so /health can report the outage
	// instead of the process crash-looping.
	database, err := db.NewDatabase(logger)
	if err != nil {
		logger.Warn("database initialization failed at startup", zap.Error(err))
	}
	if database != nil {
		defer database.Close()

		if err := database.RunMigrations(); err != nil {
			logger.Warn("migrations failed", zap.Error(err))
		} else {
			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			database.Seed(ctx)
			cancel()
		}
	}

	handler := api.NewHandler(database, logger)
	router := setupRouter(handler, logger)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	srv := &http.Server{
		Addr:    ":" + port,
		Handler: router,
	}

	go func() {
		logger.Info("starting server", zap.String("port", port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("forced shutdown", zap.Error(err))
	}
}

func setupRouter(handler *api.Handler, logger *zap.Logger) *gin.Engine {
	if os.Getenv("GIN_MODE") == "" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	router.Use(api.RequestIDMiddleware())
	router.Use(logging.RequestLogger(logger))
	router.Use(gin.Recovery())
	router.Use(api.CORSMiddleware())
	router.Use(metrics.Middleware())

	router.GET("/metrics", metrics.Handler())

	handler.RegisterRoutes(router)

	// Root endpoint for basic info
	router.GET("/", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"service": "planner-service",
			"version": "1.0.0",
			"status":  "running",
		})
	})

	return router
}
