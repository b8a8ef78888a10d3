package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/medtrack/medtrack/internal/config"
	"github.com/medtrack/medtrack/internal/domain/medicine"
	"github.com/medtrack/medtrack/internal/domain/prescription"
	"github.com/medtrack/medtrack/internal/platform/blobstore"
	"github.com/medtrack/medtrack/internal/platform/db"
	"github.com/medtrack/medtrack/internal/platform/middleware"
)

const version = "1.0.0"

func main() {
	rootCmd := &cobra.Command{
		Use:   "medtrack-server",
		Short: "Medicine Tracker API Server",
	}

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(dbCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the Medicine Tracker API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer()
		},
	}
}

func dbCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "db",
		Short: "Database maintenance",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "ping",
		Short: "Verify the MongoDB connection",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()

			client, err := db.Connect(ctx, cfg.MongoURL, cfg.DBName)
			if err != nil {
				return err
			}
			defer client.Close()

			fmt.Printf("Connected to %s (database %s).\n", cfg.MongoURL, cfg.DBName)
			return nil
		},
	})

	return cmd
}

// newStore picks the storage backend once at process start: local filesystem
// when enabled, Google Drive when credentials are configured, otherwise the
// in-memory mock.
func newStore(ctx context.Context, cfg *config.Config, logger zerolog.Logger) (blobstore.Store, error) {
	if cfg.LocalUploadEnabled {
		store, err := blobstore.NewLocalStore(cfg.UploadsDir)
		if err != nil {
			return nil, err
		}
		logger.Info().Str("dir", cfg.UploadsDir).Msg("using local upload store")
		return store, nil
	}

	if cfg.DriveEnabled() {
		store, err := blobstore.NewDriveStore(ctx, cfg.DriveCredentialsFile, cfg.DriveFolderID)
		if err != nil {
			return nil, err
		}
		logger.Info().Msg("using Google Drive upload store")
		return store, nil
	}

	logger.Info().Msg("using mock upload store (no Drive credentials, local uploads disabled)")
	return blobstore.NewMockDriveStore(), nil
}

func runServer() error {
	// Logger
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()
	if os.Getenv("ENV") == "development" {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout}).With().Timestamp().Logger()
	}

	// Config
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to load config")
	}
	if err := cfg.Validate(); err != nil {
		logger.Fatal().Err(err).Msg("invalid config")
	}

	// Database
	ctx := context.Background()
	client, err := db.Connect(ctx, cfg.MongoURL, cfg.DBName)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer client.Close()
	logger.Info().Msg("connected to database")

	// Storage backend
	store, err := newStore(ctx, cfg, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize upload store")
	}

	// Echo server
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	// Global middleware
	e.Use(middleware.Recovery(logger))
	e.Use(middleware.RequestID())
	e.Use(middleware.Logger(logger))
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins:     cfg.CORSOrigins,
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete},
		AllowHeaders:     []string{"Authorization", "Content-Type", "X-Request-ID"},
		AllowCredentials: true,
	}))

	// Health check
	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{
			"status":  "ok",
			"version": version,
		})
	})

	// Local uploads are served back under /uploads
	if cfg.LocalUploadEnabled {
		e.Static("/uploads", cfg.UploadsDir)
	}

	// API group
	api := e.Group("/api")
	api.GET("/", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{
			"message": "Medicine Tracker API",
			"version": version,
		})
	})

	// Medicines
	medicineRepo := medicine.NewMongoRepo(client.Collection("medicines"))
	medicineSvc := medicine.NewService(medicineRepo)
	medicine.NewHandler(medicineSvc).RegisterRoutes(api)

	// Prescription uploads
	prescriptionSvc := prescription.NewService(store)
	prescription.NewHandler(prescriptionSvc).RegisterRoutes(api)

	// Graceful shutdown
	go func() {
		addr := ":" + cfg.Port
		logger.Info().Str("addr", addr).Msg("starting server")
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Fatal().Err(err).Msg("server shutdown failed")
	}
	logger.Info().Msg("server stopped")
	return nil
}
