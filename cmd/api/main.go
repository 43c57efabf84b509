package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"

	"github.com/nagaraj2331P/aura-hr-solutions/internal/api"
	"github.com/nagaraj2331P/aura-hr-solutions/internal/auth"
	"github.com/nagaraj2331P/aura-hr-solutions/internal/config"
	"github.com/nagaraj2331P/aura-hr-solutions/internal/db"
	"github.com/nagaraj2331P/aura-hr-solutions/internal/logger"
	"github.com/nagaraj2331P/aura-hr-solutions/internal/session"
	"github.com/nagaraj2331P/aura-hr-solutions/internal/storage"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	// Initialize logger
	logger.Init(cfg.Logging.Level, cfg.Logging.Format)
	log := logger.Get()

	log.Info().Str("version", cfg.App.Version).Msg("Starting API server")

	// Initialize database
	ctx, cancel := context.WithTimeout(context.Background(), cfg.Database.ConnectTimeout)
	client, database, err := db.NewConnection(ctx, cfg)
	cancel()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer client.Disconnect(context.Background())

	if err := db.EnsureIndexes(context.Background(), database); err != nil {
		log.Fatal().Err(err).Msg("Failed to create indexes")
	}

	// Initialize repositories
	repos := db.NewRepositories(database)

	// Initialize Redis client for session tracking
	redisClient, err := session.NewRedisClient(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	defer redisClient.Close()

	guard := session.NewGuard(redisClient, cfg)

	// Initialize file storage
	store, err := storage.NewS3Storage(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize storage")
	}

	tokens := auth.NewTokenManager(cfg)

	// Initialize API handler
	handler := api.NewHandler(repos, store, guard, tokens, cfg)

	// Setup Gin router
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(api.CORSMiddleware())
	router.Use(api.LoggingMiddleware())
	router.Use(api.RecoveryMiddleware())

	// Setup routes
	api.SetupRoutes(router, handler)

	// Create HTTP server
	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	// Start server in goroutine
	go func() {
		log.Info().Int("port", cfg.Server.Port).Msg("Starting HTTP server")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	// Create context for graceful shutdown
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer shutdownCancel()

	// Shutdown server
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited")
}
