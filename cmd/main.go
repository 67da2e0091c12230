package main

import (
	"context"
	"customer-service/internal/api"
	"customer-service/internal/config"
	"customer-service/internal/domain/customer"
	"customer-service/internal/event"
	"customer-service/internal/infrastructure/accounts"
	"customer-service/internal/infrastructure/database/postgres"
	"customer-service/internal/infrastructure/logging"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	amqp "github.com/rabbitmq/amqp091-go"
)

const (
	shutdownTimeout     = 20 * time.Second
	serverExitWaitLimit = 5 * time.Second
)

// @title Customer Service API
// @version 1.0
// @description Customer records with uniqueness checks and an accounts-aware deletion guard.

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	os.Exit(run())
}

func run() int {
	cfg, logger := initializeApp()

	rootCtx, cancelRoot := context.WithCancel(context.Background())
	defer cancelRoot()

	dbPool := initializeDatabase(rootCtx, cfg, logger)
	defer closeDatabase(dbPool, logger)

	publisher, amqpConn := connectEventPublisher(cfg.RabbitMQ, logger)
	if amqpConn != nil {
		defer closeEventConnection(amqpConn, logger)
	}

	customerService := initializeServices(cfg, dbPool, publisher, logger)
	router := api.SetupRouter(rootCtx, customerService, cfg, logger)

	srv, serverErrors, shutdownChan := startServer(cfg, router, logger)
	if !handleShutdown(srv, shutdownChan, serverErrors, logger) {
		return 1
	}
	return 0
}

func initializeApp() (*config.Config, *slog.Logger) {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	logger := logging.NewLogger(cfg.Logger)
	logger.Info("Application starting...",
		slog.Int("port", cfg.Server.Port),
		slog.String("accounts_base_url", cfg.Accounts.BaseURL),
		slog.Bool("auth_enabled", cfg.Server.Auth.Enabled),
		slog.Bool("events_enabled", cfg.RabbitMQ.Enabled),
	)

	return cfg, logger
}

func initializeDatabase(ctx context.Context, cfg *config.Config, logger *slog.Logger) *pgxpool.Pool {
	logger.Info("Initializing database connection pool...")
	dbPool, err := postgres.NewConnectionPool(ctx, cfg.Database, logger)
	if err != nil {
		logger.Error("Failed to initialize database connection pool", "error", err)
		os.Exit(1)
	}

	if cfg.Database.Migrate {
		if err := postgres.Migrate(ctx, dbPool, logger); err != nil {
			logger.Error("Failed to apply database migrations", "error", err)
			dbPool.Close()
			os.Exit(1)
		}
	}
	return dbPool
}

func closeDatabase(dbPool *pgxpool.Pool, logger *slog.Logger) {
	logger.Info("Closing database connection pool...")
	dbPool.Close()
}

// connectEventPublisher returns a nil publisher when events are disabled or
// the broker cannot be reached. Lifecycle operations run without events then.
func connectEventPublisher(cfg config.RabbitMQConfig, logger *slog.Logger) (event.EventPublisher, *amqp.Connection) {
	if !cfg.Enabled {
		logger.Info("Customer lifecycle events disabled")
		return nil, nil
	}

	conn, err := amqp.Dial(cfg.URL)
	if err != nil {
		logger.Error("Failed to connect to RabbitMQ, continuing without events", "error", err)
		return nil, nil
	}

	publisher, err := event.NewRabbitMQEventPublisher(conn, cfg.ExchangeName, logger)
	if err != nil {
		logger.Error("Failed to initialize event publisher, continuing without events", "error", err)
		_ = conn.Close()
		return nil, nil
	}

	logger.Info("Customer lifecycle events enabled", "exchange", cfg.ExchangeName)
	return publisher, conn
}

func closeEventConnection(conn *amqp.Connection, logger *slog.Logger) {
	logger.Info("Closing RabbitMQ connection...")
	if err := conn.Close(); err != nil && !errors.Is(err, amqp.ErrClosed) {
		logger.Warn("RabbitMQ connection close failed", "error", err)
	}
}

func initializeServices(cfg *config.Config, dbPool *pgxpool.Pool, publisher event.EventPublisher, logger *slog.Logger) customer.CustomerService {
	logger.Info("Initializing application components...")
	customerRepo := postgres.NewCustomerRepository(dbPool, logger)

	accountsClient, err := accounts.NewClient(cfg.Accounts, logger)
	if err != nil {
		logger.Error("Failed to initialize accounts client", "error", err)
		os.Exit(1)
	}

	uniqueness := customer.NewUniquenessValidator(customerRepo, logger)
	guard := customer.NewDeletionGuard(customerRepo, accountsClient, logger)
	return customer.NewCustomerService(customerRepo, uniqueness, guard, publisher, logger)
}

func startServer(cfg *config.Config, router http.Handler, logger *slog.Logger) (*http.Server, <-chan error, <-chan os.Signal) {
	logger.Info("Setting up HTTP server...", "port", cfg.Server.Port)
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
		ErrorLog:     slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}

	shutdownChan := make(chan os.Signal, 1)
	signal.Notify(shutdownChan, syscall.SIGINT, syscall.SIGTERM)

	serverErrors := make(chan error, 1)
	go func() {
		logger.Info(fmt.Sprintf("Server listening on port %d", cfg.Server.Port))
		err := srv.ListenAndServe()
		if !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Server error", "error", err)
			serverErrors <- err
		} else {
			logger.Info("Server closed gracefully.")
			serverErrors <- nil
		}
	}()
	return srv, serverErrors, shutdownChan
}

// handleShutdown blocks until a signal or a server exit, then drains the
// server. It reports false when the server died on its own with an error.
func handleShutdown(srv *http.Server, shutdownChan <-chan os.Signal, serverErrors <-chan error, logger *slog.Logger) bool {
	logger.Info("Shutdown handler started. Waiting for signal or server error...")

	select {
	case sig := <-shutdownChan:
		logger.Info("Shutdown signal received.", "signal", sig.String())
	case err := <-serverErrors:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Server exited unexpectedly before signal", "error", err)
			return false
		}
		logger.Info("Server goroutine finished before signal.")
		return true
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	logger.Info("Shutting down HTTP server...")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP server graceful shutdown failed", "error", err)
		if err := srv.Close(); err != nil {
			logger.Error("HTTP server forced close failed", "error", err)
		}
	} else {
		logger.Info("HTTP server gracefully stopped.")
	}

	select {
	case err := <-serverErrors:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Warn("Server goroutine exited with unexpected error after shutdown", "error", err)
		}
	case <-time.After(serverExitWaitLimit):
		logger.Warn("Timed out waiting for server goroutine confirmation.")
	}

	logger.Info("Application shutdown process complete.")
	return true
}
