package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/forgo/skirmish/api/internal/config"
	"github.com/forgo/skirmish/api/internal/database"
	"github.com/forgo/skirmish/api/internal/middleware"
	"github.com/forgo/skirmish/api/internal/repository"
	"github.com/forgo/skirmish/api/internal/server"
	"github.com/forgo/skirmish/api/internal/service"
	"golang.org/x/sync/errgroup"
)

func main() {
	if err := run(); err != nil {
		slog.Error("server exited with error", slog.String("error", err.Error()))
		os.Exit(1)
	}
	slog.Info("server exited")
}

func run() error {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	// Initialize structured logging
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: cfg.Log.SlogLevel(),
	}))
	slog.SetDefault(logger)

	if err := cfg.Validate(); err != nil {
		slog.Error("invalid configuration", slog.String("error", err.Error()))
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Initialize database connection
	db := database.NewSurrealDB(database.Config{
		Host:           cfg.Database.Host,
		Port:           cfg.Database.Port,
		User:           cfg.Database.User,
		Password:       cfg.Database.Password,
		Namespace:      cfg.Database.Namespace,
		Database:       cfg.Database.Database,
		ConnectTimeout: cfg.Database.ConnectTimeout,
	})

	if err := db.Connect(ctx); err != nil {
		slog.Error("failed to connect to database", slog.String("error", err.Error()))
		return err
	}
	defer func() { _ = db.Close() }()

	if err := database.ApplySchema(ctx, db); err != nil {
		slog.Error("failed to apply schema", slog.String("error", err.Error()))
		return err
	}

	slog.Info("connected to database",
		slog.String("host", cfg.Database.Host),
		slog.String("namespace", cfg.Database.Namespace),
		slog.String("database", cfg.Database.Database),
	)

	// Initialize repositories
	fieldMapRepo := repository.NewFieldMapRepository(db)
	playerRepo := repository.NewPlayerRepository(db)
	gameRepo := repository.NewGameRepository(db)

	// Initialize services
	fieldMapService := service.NewFieldMapService(fieldMapRepo)
	playerService := service.NewPlayerService(playerRepo)
	gameService := service.NewGameService(service.GameServiceConfig{
		Repo:   gameRepo,
		Logger: logger,
	})

	var metrics *middleware.Metrics
	if cfg.Metrics.Enabled {
		metrics = middleware.NewMetrics()
	}

	srv := server.NewHTTPServer(":"+cfg.Server.Port, server.New(server.Config{
		FieldMaps:      fieldMapService,
		Players:        playerService,
		Games:          gameService,
		DB:             db,
		AllowedOrigins: cfg.Server.AllowedOrigins,
		Metrics:        metrics,
	}), cfg.Server.ReadTimeout, cfg.Server.WriteTimeout)

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		slog.Info("starting server",
			slog.String("port", cfg.Server.Port),
			slog.String("env", cfg.Server.Env),
			slog.Bool("metrics", cfg.Metrics.Enabled),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	// Graceful shutdown
	g.Go(func() error {
		<-gCtx.Done()
		slog.Info("shutting down server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Error("server forced to shutdown", slog.String("error", err.Error()))
			return err
		}
		return nil
	})

	return g.Wait()
}
