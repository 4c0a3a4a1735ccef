package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/handlers"
	"github.com/redis/go-redis/v9"

	"github.com/srgjo27/condo_reservations/internal/adapter/cache"
	"github.com/srgjo27/condo_reservations/internal/adapter/handler"
	"github.com/srgjo27/condo_reservations/internal/adapter/publisher/rabbitmq"
	"github.com/srgjo27/condo_reservations/internal/adapter/repository/postgres"
	"github.com/srgjo27/condo_reservations/internal/adapter/repository/sqlite"
	"github.com/srgjo27/condo_reservations/internal/config"
	"github.com/srgjo27/condo_reservations/internal/core/ports"
	"github.com/srgjo27/condo_reservations/internal/core/services"
	"github.com/srgjo27/condo_reservations/internal/platform/database"
	"github.com/srgjo27/condo_reservations/internal/platform/logger"
)

func main() {
	if err := run(); err != nil {
		slog.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func run() error {
	if err := config.LoadDotEnv(".env"); err != nil {
		return fmt.Errorf("failed to read .env: %w", err)
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	log := logger.New(os.Stdout, cfg.LogLevel, cfg.LogFormat)
	slog.SetDefault(log)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	areaRepo, reservationRepo, db, err := openStore(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer db.Close()

	var availabilityCache ports.AvailabilityCache
	if cfg.Redis.Enabled() {
		log.Info("connecting to redis", "addr", cfg.Redis.Addr())

		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr(),
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer redisClient.Close()

		if err := redisClient.Ping(ctx).Err(); err != nil {
			return fmt.Errorf("failed to connect to redis: %w", err)
		}
		availabilityCache = cache.NewAvailabilityCache(redisClient, cfg.AvailabilityTTL)
		log.Info("redis connected", "ttl", cfg.AvailabilityTTL)
	} else {
		log.Info("availability cache disabled")
	}

	var events ports.EventPublisher
	if cfg.RabbitMQURL != "" {
		publisher, err := rabbitmq.NewPublisher(cfg.RabbitMQURL, cfg.ReservationEventsQueue)
		if err != nil {
			return fmt.Errorf("failed to connect to rabbitmq: %w", err)
		}
		defer publisher.Close()
		events = publisher
		log.Info("reservation events enabled", "queue", cfg.ReservationEventsQueue)
	} else {
		log.Info("reservation events disabled")
	}

	opts := []services.Option{
		services.WithLocation(cfg.Location),
		services.WithLogger(log),
	}
	areaService := services.NewAreaService(areaRepo, availabilityCache, opts...)
	reservationService := services.NewReservationService(areaRepo, reservationRepo, availabilityCache, events, opts...)

	router := handler.NewRouter(
		handler.NewAuthenticator(cfg.JWTSecret),
		handler.NewAreaHandler(areaService, reservationService, log),
		handler.NewReservationHandler(reservationService, log),
	)

	var h http.Handler = router
	h = handlers.CORS(
		handlers.AllowedMethods([]string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete}),
		handlers.AllowedHeaders([]string{"Authorization", "Content-Type"}),
	)(h)
	h = handlers.CombinedLoggingHandler(os.Stdout, h)
	h = handlers.RecoveryHandler(handlers.PrintRecoveryStack(true))(h)

	server := &http.Server{
		Addr:         cfg.Addr,
		Handler:      h,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		log.Info("server starting", "addr", cfg.Addr, "store", cfg.StoreDriver, "timezone", cfg.Timezone)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	select {
	case err := <-serverErr:
		if err != nil {
			return fmt.Errorf("server startup failed: %w", err)
		}
	case <-ctx.Done():
	}

	log.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	log.Info("server exiting")
	return nil
}

func openStore(ctx context.Context, cfg config.Config, log *slog.Logger) (ports.AreaRepository, ports.ReservationRepository, *sql.DB, error) {
	switch cfg.StoreDriver {
	case config.DriverSQLite:
		db, err := database.NewSQLiteDB(ctx, cfg.SQLitePath)
		if err != nil {
			return nil, nil, nil, err
		}
		if err := database.Migrate(ctx, db, database.SQLite); err != nil {
			db.Close()
			return nil, nil, nil, err
		}
		log.Info("sqlite store ready", "path", cfg.SQLitePath)
		return sqlite.NewAreaRepository(db), sqlite.NewReservationRepository(db), db, nil

	default:
		db, err := database.NewPostgresDB(ctx, database.Config{
			Host:     cfg.DB.Host,
			Port:     cfg.DB.Port,
			User:     cfg.DB.User,
			Password: cfg.DB.Password,
			DBName:   cfg.DB.Name,
			SSLMode:  cfg.DB.SSLMode,
		}, log)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("failed to connect to db after retries: %w", err)
		}
		if err := database.Migrate(ctx, db, database.Postgres); err != nil {
			db.Close()
			return nil, nil, nil, err
		}
		return postgres.NewAreaRepository(db), postgres.NewReservationRepository(db), db, nil
	}
}
