// Package service orchestrates the webhook pipeline: validate, score,
// and dispatch admin notifications for high-risk transactions.
package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/redis/go-redis/v9"
	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/akylbek/payment-system/risk-webhook/internal/metrics"
	"github.com/akylbek/payment-system/risk-webhook/internal/models"
	"github.com/akylbek/payment-system/risk-webhook/internal/notifications"
	"github.com/akylbek/payment-system/risk-webhook/internal/risk"
	"github.com/akylbek/payment-system/risk-webhook/internal/validator"
)

// Thresholds carries the risk policy gates. Only the high-risk threshold
// routes notifications; the review threshold labels the middle band for
// logs and metrics.
type Thresholds struct {
	HighRisk float64
	Review   float64
}

// Result is what the webhook caller gets back once the pipeline completes.
type Result struct {
	TransactionID string
	RiskScore     float64
	Degraded      bool
	Notified      bool
}

// Pipeline runs one transaction through validation, scoring, and
// threshold-gated notification dispatch. Redis, Kafka, and NATS are
// optional; a nil client disables that integration.
type Pipeline struct {
	analyzer    *risk.Analyzer
	store       notifications.Store
	thresholds  Thresholds
	redisClient *redis.Client
	kafkaWriter *kafka.Writer
	nc          *nats.Conn
	logger      *zap.Logger
}

// NewPipeline wires the pipeline. A nil logger is silenced.
func NewPipeline(
	analyzer *risk.Analyzer,
	store notifications.Store,
	thresholds Thresholds,
	redisClient *redis.Client,
	kafkaWriter *kafka.Writer,
	nc *nats.Conn,
	logger *zap.Logger,
) *Pipeline {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Pipeline{
		analyzer:    analyzer,
		store:       store,
		thresholds:  thresholds,
		redisClient: redisClient,
		kafkaWriter: kafkaWriter,
		nc:          nc,
		logger:      logger,
	}
}

// Process runs the full pipeline for one authenticated transaction.
// Validation failures return a *validator.ValidationError; scoring never
// fails outward short of the analyzer's invariant guard; a store failure is
// a server error but the risk decision already stands.
func (p *Pipeline) Process(ctx context.Context, tx *models.Transaction) (*Result, error) {
	if err := validator.Validate(tx); err != nil {
		return nil, err
	}

	p.markDelivery(ctx, tx.TransactionID)

	outcome, err := p.analyzer.Analyze(ctx, tx)
	if err != nil {
		return nil, err
	}

	analysis := outcome.Analysis
	band := p.band(analysis.RiskScore)
	metrics.RiskScoreSource.WithLabelValues(string(outcome.Source)).Inc()
	metrics.RiskBand.WithLabelValues(band).Inc()

	p.logger.Info("Transaction scored",
		zap.String("transaction_id", tx.TransactionID),
		zap.Float64("risk_score", analysis.RiskScore),
		zap.String("band", band),
		zap.String("source", string(outcome.Source)),
	)

	p.publishScored(ctx, tx, &analysis, outcome)

	result := &Result{
		TransactionID: tx.TransactionID,
		RiskScore:     analysis.RiskScore,
		Degraded:      outcome.Degraded(),
	}

	if analysis.RiskScore >= p.thresholds.HighRisk {
		notification := models.NewHighRiskNotification(*tx, analysis)
		if err := p.store.Append(ctx, notification); err != nil {
			return nil, fmt.Errorf("failed to send notification: %w", err)
		}
		metrics.NotificationsCreatedTotal.Inc()
		result.Notified = true

		p.broadcastAlert(&notification)
	}

	return result, nil
}

// band labels a score against the configured thresholds.
func (p *Pipeline) band(score float64) string {
	switch {
	case score >= p.thresholds.HighRisk:
		return "high"
	case score >= p.thresholds.Review:
		return "review"
	default:
		return "low"
	}
}

// markDelivery flags the transaction id in Redis so duplicate webhook
// deliveries are visible in the logs. Processing continues either way;
// scoring is idempotent.
func (p *Pipeline) markDelivery(ctx context.Context, transactionID string) {
	if p.redisClient == nil {
		return
	}

	key := "risk_webhook:tx:" + transactionID
	set, err := p.redisClient.SetNX(ctx, key, "1", 24*time.Hour).Result()
	if err != nil {
		p.logger.Warn("Redis delivery marker unavailable", zap.Error(err))
		return
	}
	if !set {
		p.logger.Warn("Duplicate webhook delivery",
			zap.String("transaction_id", transactionID))
	}
}

// publishScored emits a risk.analyzed event to Kafka, best-effort.
func (p *Pipeline) publishScored(ctx context.Context, tx *models.Transaction, analysis *models.RiskAnalysis, outcome *risk.Outcome) {
	if p.kafkaWriter == nil {
		return
	}

	event := map[string]any{
		"transaction_id":     tx.TransactionID,
		"risk_score":         analysis.RiskScore,
		"recommended_action": analysis.RecommendedAction,
		"source":             outcome.Source,
		"timestamp":          time.Now().UTC(),
	}
	eventJSON, _ := json.Marshal(event)

	if err := p.kafkaWriter.WriteMessages(ctx, kafka.Message{
		Key:   []byte(tx.TransactionID),
		Value: eventJSON,
	}); err != nil {
		p.logger.Error("Failed to publish risk.analyzed event",
			zap.String("transaction_id", tx.TransactionID),
			zap.Error(err),
		)
	}
}

// broadcastAlert publishes the persisted notification over NATS for live
// dashboard consumers, best-effort.
func (p *Pipeline) broadcastAlert(n *models.AdminNotification) {
	if p.nc == nil {
		return
	}

	payload, _ := json.Marshal(n)
	if err := p.nc.Publish("notifications.created", payload); err != nil {
		p.logger.Error("Failed to broadcast notification",
			zap.String("transaction_id", n.TransactionID),
			zap.Error(err),
		)
	}
}
