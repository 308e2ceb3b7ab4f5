package main

import (
	"context"
	"database/sql"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/rs/cors"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/tair/pos-inventory/internal/inventory"
	httpDelivery "github.com/tair/pos-inventory/internal/inventory/delivery/http"
	"github.com/tair/pos-inventory/internal/inventory/domain"
	"github.com/tair/pos-inventory/internal/inventory/ledger"
	"github.com/tair/pos-inventory/kafka"
	"github.com/tair/pos-inventory/pkg/database"
	"github.com/tair/pos-inventory/pkg/logger"
	"github.com/tair/pos-inventory/pkg/tracing"
)

func main() {
	// Initialize logger
	serviceName := getEnv("OTEL_SERVICE_NAME", "inventory-service")
	isDevelopment := getEnv("ENVIRONMENT", "development") == "development"
	logger.Init(serviceName, isDevelopment)

	logLevel := getEnv("LOG_LEVEL", "info")
	logger.SetLevel(logLevel)

	logger.Logger.Info().
		Str("service", serviceName).
		Str("environment", getEnv("ENVIRONMENT", "development")).
		Str("log_level", logLevel).
		Msg("Starting inventory service")

	// Initialize tracing
	tp, err := tracing.InitTracer(serviceName)
	if err != nil {
		logger.Logger.Warn().Err(err).Msg("Tracing disabled: failed to initialize tracer")
	} else {
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := tracing.Shutdown(ctx, tp); err != nil {
				logger.Logger.Warn().Err(err).Msg("Tracer shutdown failed")
			}
		}()
	}

	// Load database configuration
	dbConfig := database.Config{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     getEnv("DB_PORT", "5432"),
		User:     getEnv("DB_USER", "postgres"),
		Password: getEnv("DB_PASSWORD", "postgres"),
		DBName:   getEnv("DB_NAME", "inventorydb"),
		SSLMode:  getEnv("DB_SSLMODE", "disable"),
	}

	// Connect to database
	db, err := database.NewGormConnection(dbConfig)
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to connect to database")
	}

	sqlDB, err := db.DB()
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to get database instance")
	}
	defer sqlDB.Close()

	// Run migrations
	if err := db.AutoMigrate(&domain.Inventory{}, &domain.InventoryAdjustment{}); err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to run migrations")
	}

	logger.Logger.Info().Msg("Database initialized successfully")

	// Optional Redis read cache
	var redisClient *redis.Client
	if redisAddr := getEnv("REDIS_ADDR", ""); redisAddr != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     redisAddr,
			Password: getEnv("REDIS_PASSWORD", ""),
		})
		logger.Logger.Info().Str("redis_addr", redisAddr).Msg("Inventory read cache enabled")
	}

	// Optional Kafka movement stream
	var publisher ledger.AdjustmentPublisher
	if brokers := getEnv("KAFKA_BROKERS", ""); brokers != "" {
		kafkaPublisher, err := kafka.NewPublisher(strings.Split(brokers, ","))
		if err != nil {
			logger.Logger.Fatal().Err(err).Msg("Failed to initialize Kafka publisher")
		}
		defer kafkaPublisher.Close()
		publisher = kafkaPublisher
	}

	// Initialize handler with Wire DI
	handler, err := inventory.InitializeHTTPHandler(db, redisClient, publisher)
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to initialize handler")
	}

	// Start HTTP server
	httpPort := getEnv("HTTP_PORT", "8082")
	startHTTPServer(handler, sqlDB, httpPort)

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Logger.Info().Msg("Shutting down server...")
}

func startHTTPServer(handler *httpDelivery.InventoryHandler, db *sql.DB, port string) {
	// Setup router
	router := mux.NewRouter()

	// Register routes
	handler.RegisterRoutes(router)

	// Health check endpoint
	handler.RegisterHealthCheck(router, db)

	// Prometheus metrics endpoint
	router.Handle("/metrics", promhttp.Handler())

	// CORS middleware
	c := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	})

	chain := otelhttp.NewHandler(
		c.Handler(httpDelivery.LoggingMiddleware(router)),
		"inventory-service",
	)

	logger.Logger.Info().
		Str("port", port).
		Str("metrics_endpoint", "/metrics").
		Msg("HTTP server started")

	go func() {
		if err := http.ListenAndServe(":"+port, chain); err != nil {
			logger.Logger.Fatal().Err(err).Msg("Failed to start HTTP server")
		}
	}()
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
