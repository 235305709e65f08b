package main

import (
	"alcyxob/gym-tracker/internal/api"
	"alcyxob/gym-tracker/internal/backup"
	"alcyxob/gym-tracker/internal/config"
	"alcyxob/gym-tracker/internal/repository"
	"alcyxob/gym-tracker/internal/repository/memory"
	"alcyxob/gym-tracker/internal/repository/mongo"
	"alcyxob/gym-tracker/internal/repository/sqlstore"
	"alcyxob/gym-tracker/internal/service"
	"alcyxob/gym-tracker/internal/storage"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
)

// @title Gym Tracker API
// @version 1.0
// @description Personal workout tracker: exercise library, templates, live sessions and history.
// @host localhost:8080
// @BasePath /api/v1
func main() {
	// --- Configuration ---
	cfg, err := config.LoadConfig(".")
	if err != nil {
		slog.Error("could not load config", "err", err)
		os.Exit(1)
	}
	setupLogger(cfg.Log)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	if err := run(cfg, quit); err != nil {
		slog.Error("server stopped with error", "err", err)
		os.Exit(1)
	}
	slog.Info("server exiting")
}

// run serves until quit fires or the listener fails. Every resource it opens
// is released before it returns.
func run(cfg config.Config, quit <-chan os.Signal) error {
	slog.Info("starting gym tracker server", "storage_driver", cfg.Storage.Driver)

	// --- State Repository ---
	repo, err := openRepository(cfg)
	if err != nil {
		return fmt.Errorf("could not open state repository: %w", err)
	}
	defer func() {
		slog.Info("closing state repository")
		if err := repo.Close(); err != nil {
			slog.Error("failed to close state repository", "err", err)
		}
	}()
	repo = repository.WithRetry(repo, repository.RetryPolicy{
		MaxTries:   cfg.Storage.Retry.MaxTries,
		MaxElapsed: cfg.Storage.Retry.MaxElapsed,
	})

	// --- Tracker ---
	loadCtx, cancelLoad := context.WithTimeout(context.Background(), 30*time.Second)
	tracker, err := service.NewTracker(loadCtx, repo,
		service.WithStrictCompletion(cfg.Session.RequireSetsToComplete),
	)
	cancelLoad()
	if err != nil {
		return fmt.Errorf("could not load state: %w", err)
	}

	// --- Initialize Storage ---
	var fileStorage storage.FileStorage
	if cfg.S3.Enabled {
		fileStorage, err = storage.NewS3Storage(context.Background(), cfg.S3)
		if err != nil {
			return fmt.Errorf("failed to initialize S3 storage: %w", err)
		}
	} else {
		slog.Info("object storage disabled; publishing exports and backups is unavailable")
	}
	exportService := service.NewExportService(tracker, fileStorage)

	// --- Backups ---
	if cfg.Backup.Schedule != "" {
		scheduler, err := backup.NewScheduler(cfg.Backup.Schedule, tracker, fileStorage, cfg.Backup.Keep)
		if err != nil {
			return fmt.Errorf("failed to configure backups: %w", err)
		}
		scheduler.Start()
		defer scheduler.Stop()
	}

	// --- Initialize Gin Engine ---
	if !strings.EqualFold(cfg.Log.Level, "debug") {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery(), api.RequestLogger())

	api.SetupRoutes(router, tracker, tracker, tracker, tracker, exportService)

	// --- Start HTTP Server ---
	server := &http.Server{
		Addr:         cfg.Server.Address,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		slog.Info("server listening", "address", cfg.Server.Address)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	// --- Graceful Shutdown ---
	var runErr error
	select {
	case <-quit:
	case runErr = <-serverErr:
	}
	slog.Info("shutting down server")

	ctxShutdown, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()
	if err := server.Shutdown(ctxShutdown); err != nil {
		slog.Error("server forced to shutdown", "err", err)
	}
	return runErr
}

// openRepository is swapped in tests.
var openRepository = openStateRepository

func openStateRepository(cfg config.Config) (repository.StateRepository, error) {
	switch cfg.Storage.Driver {
	case config.DriverMemory:
		slog.Warn("using in-memory state; nothing survives a restart")
		return memory.NewMemoryStateRepository(), nil
	case config.DriverSQLite:
		db, err := sqlstore.OpenSQLite(cfg.Storage.SQLitePath)
		if err != nil {
			return nil, err
		}
		return db.StateRepository(), nil
	case config.DriverPostgres:
		db, err := sqlstore.OpenPostgres(cfg.Storage.PostgresDSN)
		if err != nil {
			return nil, err
		}
		return db.StateRepository(), nil
	case config.DriverMongo:
		client, err := mongo.ConnectDB(cfg.Database.URI)
		if err != nil {
			return nil, err
		}
		return mongo.NewMongoStateRepository(client, cfg.Database.Name), nil
	default:
		return nil, fmt.Errorf("%w: %s", config.ErrUnknownDriver, cfg.Storage.Driver)
	}
}

func setupLogger(cfg config.LogConfig) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		level = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	if strings.EqualFold(cfg.Format, "json") {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}
	slog.SetDefault(slog.New(handler))
}
