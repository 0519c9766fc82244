package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rgeary/imagehost/images/application"
	"github.com/rgeary/imagehost/images/persistence"
	"github.com/rgeary/imagehost/images/storage"
	"github.com/rgeary/imagehost/internal/config"
	"github.com/rgeary/imagehost/internal/logging"
	"github.com/rgeary/imagehost/internal/middleware"
	"github.com/rgeary/imagehost/internal/rest"
	"github.com/rgeary/imagehost/shared/db/sqlite"
	"github.com/rs/zerolog/log"
)

func main() {
	// A .env file is optional; real deployments set the variables directly.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	if err := logging.Setup(cfg.LogFile, cfg.LogLevel); err != nil {
		log.Fatal().Err(err).Msg("Failed to set up logging")
	}

	database := sqlite.NewSQLiteDB(&sqlite.SQLiteConfig{Path: cfg.DBPath})
	if err := database.Connect(); err != nil {
		log.Fatal().Err(err).Str("path", cfg.DBPath).Msg("Failed to connect to database")
	}
	defer database.Close()
	log.Info().Str("path", cfg.DBPath).Msg("Database is initialized and ready")

	store, err := storage.NewDiskStore(cfg.UploadDir)
	if err != nil {
		log.Fatal().Err(err).Str("dir", cfg.UploadDir).Msg("Failed to set up file store")
	}

	repo := persistence.NewImageRepository(database.DB())
	validator := application.NewValidator(cfg.MaxFileSize)
	service := application.NewImageService(repo, store, validator, cfg.PublicBasePath, cfg.PageSize)

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(middleware.LoggingMiddleware())
	router.Use(gin.CustomRecovery(middleware.HandlePanics()))

	rest.NewApi(router, rest.NewImageHandler(service, store, cfg.MaxFileSize))

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Port),
		Handler: router,
	}

	go func() {
		log.Info().Int("port", cfg.Port).Msg("Starting server")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("Failed to shutdown server")
	}

	log.Info().Msg("Server stopped")
}
