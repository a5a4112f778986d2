package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/timmy/haikuforge/internal/api"
	"github.com/timmy/haikuforge/internal/config"
	"github.com/timmy/haikuforge/internal/logger"
	"github.com/timmy/haikuforge/internal/repository"
	"github.com/timmy/haikuforge/internal/service"
)

func main() {
	appLogger := logger.NewFromEnv(nil)
	logger.SetDefaultLogger(appLogger)
	defer logger.Sync()

	// Support CONFIG_PATH environment variable for production deployments
	cfg, err := config.Load(os.Getenv("CONFIG_PATH"))
	if err != nil {
		appLogger.WithError(err).Fatal("Failed to load config")
	}

	ctx := context.Background()

	generator, err := service.NewGenerator(&service.GenerationConfig{
		Provider:    cfg.Generation.Provider,
		Model:       cfg.Generation.Model,
		APIKey:      cfg.Generation.APIKey,
		BaseURL:     cfg.Generation.BaseURL,
		Temperature: cfg.Generation.Temperature,
		MaxTokens:   cfg.Generation.MaxTokens,
		Timeout:     cfg.Generation.Timeout,
	})
	if err != nil {
		appLogger.WithError(err).Fatal("Failed to initialize generator")
	}

	archive, err := repository.NewArchiveStore(ctx, &cfg.Archive)
	if err != nil {
		appLogger.WithError(err).Fatal("Failed to initialize archive")
	}

	forge := service.NewForgeService(generator, archive)

	router, err := api.SetupRouter(forge, &cfg.Server, appLogger)
	if err != nil {
		appLogger.WithError(err).Fatal("Failed to set up router")
	}

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: router,
	}

	go func() {
		appLogger.WithFields(logger.Fields{
			"port":               cfg.Server.Port,
			"mode":               cfg.Server.Mode,
			"theme":              cfg.Server.Theme,
			logger.FieldProvider: forge.Provider(),
			logger.FieldBackend:  forge.Backend(),
		}).Info("Starting haiku server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			appLogger.WithError(err).Fatal("Failed to start server")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		appLogger.WithError(err).Error("Server forced to shutdown")
	}

	appLogger.Info("Server exited")
}
