/**
 * @description
 * This is the main entry point for the account service. Its responsibility is
 * to initialize all components, wire them together, and run the HTTP server.
 *
 * Key features:
 * - Loads application configuration from environment variables.
 * - Establishes and manages a connection pool to the PostgreSQL database,
 *   falling back to the in-memory store when no DATABASE_URL is set.
 * - Connects the RabbitMQ event producer, with a no-op fallback so the
 *   service still starts when the broker is unreachable.
 * - Wires up the ledger service with its dependencies and implements
 *   graceful shutdown.
 *
 * @dependencies
 * - The service's internal packages for config, app logic, storage and API.
 * - pgxpool for database connections, godotenv for local config, and the
 *   rabbitmq package for messaging.
 */
package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/quickbank/account-service/internal/api"
	"github.com/quickbank/account-service/internal/app"
	"github.com/quickbank/account-service/internal/config"
	"github.com/quickbank/account-service/internal/store"
	"github.com/quickbank/account-service/pkg/rabbitmq"
)

func main() {
	// Load .env file for local development.
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg, err := config.LoadConfig(".")
	if err != nil {
		log.Fatalf("cannot load config: %v", err)
	}

	// Select the account store. Postgres when configured, otherwise the
	// in-memory store for local development.
	var repo store.AccountRepository
	if cfg.DatabaseURL != "" {
		dbConfig, err := pgxpool.ParseConfig(cfg.DatabaseURL)
		if err != nil {
			log.Fatalf("Unable to parse database URL: %v", err)
		}
		dbConfig.MaxConns = 50
		dbConfig.MinConns = 5
		dbConfig.MaxConnLifetime = 30 * time.Minute
		dbConfig.MaxConnIdleTime = 5 * time.Minute

		dbpool, err := pgxpool.NewWithConfig(context.Background(), dbConfig)
		if err != nil {
			log.Fatalf("Unable to connect to database: %v", err)
		}
		defer dbpool.Close()
		log.Println("Database connection established")

		repo = store.NewPostgresAccountRepository(dbpool)
	} else {
		log.Println("DATABASE_URL not set, using in-memory account store")
		repo = store.NewMemoryAccountRepository()
	}

	// Connect the event producer, degrading to the logging fallback when
	// the broker is unreachable.
	var producer rabbitmq.Publisher
	if cfg.RabbitMQURL != "" {
		p, err := rabbitmq.NewEventProducer(cfg.RabbitMQURL)
		if err != nil {
			log.Printf("Failed to connect to RabbitMQ, events will be logged only: %v", err)
			producer = &rabbitmq.EventProducerFallback{}
		} else {
			producer = p
		}
	} else {
		producer = &rabbitmq.EventProducerFallback{}
	}
	defer producer.Close()

	ledgerService := app.NewLedgerService(repo, producer, cfg.EventExchange, cfg.WithdrawMaxRetries)

	router := api.NewRouter(cfg, ledgerService)
	server := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.ServerPort),
		Handler: router,
	}

	go func() {
		log.Printf("Starting HTTP server on port %s", cfg.ServerPort)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Could not start server: %s", err)
		}
	}()

	// Wait for termination signal for graceful shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down account-service...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("Server shutdown failed: %v", err)
	}

	log.Println("Server gracefully stopped")
}
