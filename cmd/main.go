package main

import (
	"context"
	"errors"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"raffle/internal/config"
	"raffle/internal/handlers"
	"raffle/internal/middleware"
	"raffle/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/google/logger"
)

func main() {
	// 1. Load configuration
	cfg, err := config.Load(".")
	if err != nil {
		logger.Fatalf("Failed to load configuration: %v", err)
	}

	// 2. Initialize logging
	logFile := io.Discard
	if cfg.Log.File != "" {
		f, err := os.OpenFile(cfg.Log.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o660)
		if err != nil {
			logger.Fatalf("Failed to open log file: %v", err)
		}
		defer f.Close()
		logFile = f
	}
	defer logger.Init("raffle", cfg.Log.Verbose, cfg.Log.SystemLog, logFile).Close()
	if !cfg.EnvFileLoaded {
		logger.Infof("No .env file found, reading environment variables directly")
	}

	// 3. Initialize the store and raffle engine
	store := services.NewStore()
	raffleEngine, err := services.NewRaffleEngine(store, cfg.Raffle.Seed)
	if err != nil {
		logger.Fatalf("Failed to initialize raffle engine: %v", err)
	}

	// 4. Start the orphan janitor when configured
	if cfg.Janitor.Interval > 0 {
		janitor, err := services.NewJanitor(store, cfg.Janitor.Interval)
		if err != nil {
			logger.Fatalf("Failed to initialize janitor: %v", err)
		}
		janitor.Start()
		defer func() {
			if err := janitor.Shutdown(); err != nil {
				logger.Errorf("Janitor shutdown: %v", err)
			}
		}()
		logger.Infof("Orphan janitor running every %v", cfg.Janitor.Interval)
	}

	// 5. Set up the Gin router
	gin.SetMode(cfg.Server.Mode)
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.Stack(cfg.CORS.AllowedOrigins)...)

	// 6. Register routes
	handlers.NewHTTPHandler(store, raffleEngine).RegisterRoutes(r)

	// 7. Run the server until interrupted
	srv := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: r,
	}
	serverErr := make(chan error, 1)
	go func() {
		logger.Infof("Server starting on http://localhost:%s", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case err := <-serverErr:
		// Return instead of exiting so deferred cleanup still runs.
		logger.Errorf("Failed to run server: %v", err)
		return
	case <-quit:
	}
	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Errorf("Server forced to shutdown: %v", err)
	}
	logger.Info("Server exiting")
}
