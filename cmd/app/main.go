package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"printfarm/cmd"
	"printfarm/internal/adapters/out/postgres"
	"printfarm/internal/pkg/tracing"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
)

const shutdownTimeout = 15 * time.Second

func main() {
	configs := getConfigs()
	logger := newLogger(configs.LogLevel)
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	tracerProvider, err := tracing.Initialize(ctx, tracing.Config{
		ServiceName:  "printfarm",
		OTLPEndpoint: configs.OTLPEndpoint,
		SampleRate:   configs.OTelSampleRate,
	})
	if err != nil {
		log.Fatalf("Error initializing tracing: %v", err)
	}

	gormDB, err := postgres.Open(postgres.Config{
		Host:     configs.DBHost,
		Port:     configs.DBPort,
		User:     configs.DBUser,
		Password: configs.DBPassword,
		Name:     configs.DBName,
		SSLMode:  configs.DBSslMode,
	})
	if err != nil {
		log.Fatalf("Error connecting to database: %v", err)
	}
	if err = postgres.Migrate(gormDB); err != nil {
		log.Fatalf("Error migrating database: %v", err)
	}

	app, err := cmd.NewCompositionRoot(configs, gormDB, logger)
	if err != nil {
		log.Fatalf("Error building application: %v", err)
	}

	jobManager := app.NewJobManager()
	if err = jobManager.StartAll(); err != nil {
		log.Fatalf("Error starting jobs: %v", err)
	}

	e, err := app.NewRouter()
	if err != nil {
		log.Fatalf("Error building router: %v", err)
	}
	go startWebServer(e, configs.HTTPPort, stop)

	<-ctx.Done()
	logger.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err = e.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP server shutdown failed", "error", err)
	}
	jobManager.StopAll()
	if err = app.Close(); err != nil {
		logger.Error("Event publisher shutdown failed", "error", err)
	}
	if err = tracerProvider.Shutdown(shutdownCtx); err != nil {
		logger.Error("Tracer shutdown failed", "error", err)
	}
	if err = postgres.Close(gormDB); err != nil {
		logger.Error("Database close failed", "error", err)
	}
}

func getConfigs() cmd.Config {
	loadDotEnv()

	config := cmd.Config{
		HTTPPort:               envOr("HTTP_PORT", "8080"),
		LogLevel:               os.Getenv("LOG_LEVEL"),
		DBHost:                 os.Getenv("DB_HOST"),
		DBPort:                 envOr("DB_PORT", "5432"),
		DBUser:                 os.Getenv("DB_USER"),
		DBPassword:             os.Getenv("DB_PASSWORD"),
		DBName:                 os.Getenv("DB_NAME"),
		DBSslMode:              os.Getenv("DB_SSLMODE"),
		StatusDecoding:         os.Getenv("STATUS_DECODING"),
		FilamentSufficiency:    os.Getenv("FILAMENT_SUFFICIENCY"),
		StockAuditSchedule:     os.Getenv("STOCK_AUDIT_SCHEDULE"),
		KafkaHost:              os.Getenv("KAFKA_HOST"),
		KafkaOrderChangedTopic: envOr("KAFKA_ORDER_CHANGED_TOPIC", "orders.changed"),
		KafkaStockChangedTopic: envOr("KAFKA_STOCK_CHANGED_TOPIC", "stock.changed"),
		OTLPEndpoint:           os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT"),
		OTelSampleRate:         1,
	}

	if raw := os.Getenv("OTEL_SAMPLE_RATE"); raw != "" {
		rate, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			log.Fatalf("Error parsing OTEL_SAMPLE_RATE: %v", err)
		}
		config.OTelSampleRate = rate
	}
	return config
}

// loadDotEnv seeds the environment from .env when the file exists.
// Variables already set win.
func loadDotEnv() {
	if err := godotenv.Load(".env"); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Fatalf("Error loading .env file: %v", err)
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func newLogger(level string) *slog.Logger {
	var lvl slog.Level
	switch strings.ToLower(level) {
	case "debug":
		lvl = slog.LevelDebug
	case "warn", "warning":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: lvl}))
}

func startWebServer(e *echo.Echo, port string, stop context.CancelFunc) {
	if err := e.Start(fmt.Sprintf("0.0.0.0:%s", port)); err != nil && !errors.Is(err, http.ErrServerClosed) {
		e.Logger.Error(err)
		stop()
	}
}
