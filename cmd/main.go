package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"
	"github.com/nats-io/nats.go"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/akylbek/payment-system/risk-webhook/internal/api"
	"github.com/akylbek/payment-system/risk-webhook/internal/config"
	"github.com/akylbek/payment-system/risk-webhook/internal/metrics"
	"github.com/akylbek/payment-system/risk-webhook/internal/notifications"
	"github.com/akylbek/payment-system/risk-webhook/internal/risk"
	"github.com/akylbek/payment-system/risk-webhook/internal/service"
	"github.com/akylbek/payment-system/risk-webhook/internal/telemetry"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Invalid configuration: %v", err))
	}

	// Initialize telemetry
	if err := telemetry.Init("risk-webhook", cfg.JaegerEndpoint); err != nil {
		panic(fmt.Sprintf("Failed to initialize telemetry: %v", err))
	}
	defer telemetry.Shutdown(context.Background())

	telemetry.Logger.Info("Starting Transaction Risk Webhook")

	metrics.Register(prometheus.DefaultRegisterer)

	// Pick the notification store: PostgreSQL when configured, otherwise
	// the whole-file JSON store.
	var store notifications.Store
	if cfg.DatabaseURL != "" {
		db, err := sql.Open("postgres", cfg.DatabaseURL)
		if err != nil {
			telemetry.Logger.Fatal("Failed to connect to database", zap.Error(err))
		}
		defer db.Close()

		pgStore := notifications.NewPostgresStore(db)
		if err := pgStore.InitDB(); err != nil {
			telemetry.Logger.Fatal("Failed to initialize database", zap.Error(err))
		}
		store = pgStore
	} else {
		store = notifications.NewFileStore(cfg.NotificationsFile)
		telemetry.Logger.Info("Using file notification store",
			zap.String("path", cfg.NotificationsFile))
	}

	// Optional Redis for duplicate-delivery detection
	var redisClient *redis.Client
	if cfg.RedisURL != "" {
		redisClient = redis.NewClient(&redis.Options{Addr: cfg.RedisURL})
	}

	// Optional Kafka for risk.analyzed events
	var kafkaWriter *kafka.Writer
	if cfg.KafkaBrokers != "" {
		kafkaWriter = &kafka.Writer{
			Addr:     kafka.TCP(cfg.KafkaBrokers),
			Topic:    "risk.analyzed",
			Balancer: &kafka.LeastBytes{},
		}
		defer kafkaWriter.Close()
	}

	// Optional NATS for live notification broadcast
	var nc *nats.Conn
	if cfg.NatsURL != "" {
		nc, err = nats.Connect(cfg.NatsURL)
		if err != nil {
			telemetry.Logger.Fatal("Failed to connect to NATS", zap.Error(err))
		}
		defer nc.Close()
	}

	// Initialize the scoring pipeline
	baseScorer := risk.NewBaseScorer(cfg.HighRiskCountries)
	analyzer := risk.NewAnalyzer(baseScorer, risk.ClientConfig{
		Endpoint:    cfg.GroqAPIEndpoint,
		APIKey:      cfg.GroqAPIKey,
		Model:       cfg.GroqModel,
		Temperature: cfg.LLMTemperature,
		MaxTokens:   cfg.LLMMaxTokens,
	}, nil, telemetry.Logger)

	pipeline := service.NewPipeline(analyzer, store, service.Thresholds{
		HighRisk: cfg.HighRiskThreshold,
		Review:   cfg.ReviewThreshold,
	}, redisClient, kafkaWriter, nc, telemetry.Logger)

	// Setup router and HTTP server
	r := api.NewRouter(cfg, pipeline, store, telemetry.Logger)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	// Start server in goroutine
	go func() {
		telemetry.Logger.Info("Risk webhook starting", zap.String("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			telemetry.Logger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	telemetry.Logger.Info("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		telemetry.Logger.Error("Server forced to shutdown", zap.Error(err))
	}

	telemetry.Logger.Info("Server exited")
}
