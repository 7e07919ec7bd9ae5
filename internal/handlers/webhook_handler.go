package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/akylbek/payment-system/risk-webhook/internal/metrics"
	"github.com/akylbek/payment-system/risk-webhook/internal/models"
	"github.com/akylbek/payment-system/risk-webhook/internal/service"
	"github.com/akylbek/payment-system/risk-webhook/internal/validator"
)

// WebhookHandler receives transaction webhooks and runs them through the
// risk pipeline.
type WebhookHandler struct {
	pipeline *service.Pipeline
	logger   *zap.Logger
}

func NewWebhookHandler(pipeline *service.Pipeline, logger *zap.Logger) *WebhookHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &WebhookHandler{pipeline: pipeline, logger: logger}
}

// HandleTransaction processes one webhook delivery. Authentication has
// already happened in middleware.
func (h *WebhookHandler) HandleTransaction(c *gin.Context) {
	var tx models.Transaction
	if err := c.ShouldBindJSON(&tx); err != nil {
		h.logger.Error("Error decoding transaction", zap.Error(err))
		metrics.WebhooksTotal.WithLabelValues("invalid").Inc()
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "invalid request body"})
		return
	}

	result, err := h.pipeline.Process(c.Request.Context(), &tx)
	if err != nil {
		var vErr *validator.ValidationError
		if errors.As(err, &vErr) {
			metrics.WebhooksTotal.WithLabelValues("invalid").Inc()
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": vErr.Error()})
			return
		}

		h.logger.Error("Error processing transaction",
			zap.String("transaction_id", tx.TransactionID),
			zap.Error(err),
		)
		metrics.WebhooksTotal.WithLabelValues("error").Inc()
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Risk analysis failed: " + err.Error(),
		})
		return
	}

	metrics.WebhooksTotal.WithLabelValues("success").Inc()
	c.JSON(http.StatusOK, gin.H{
		"status":         "success",
		"message":        "Transaction processed successfully",
		"transaction_id": result.TransactionID,
		"risk_score":     formatScore(result.RiskScore),
	})
}

// formatScore renders the score with shortest digits but always with a
// decimal point, so a zero score reads "0.0" and not "0".
func formatScore(score float64) string {
	s := strconv.FormatFloat(score, 'g', -1, 64)
	if !strings.ContainsAny(s, ".eE") {
		s += ".0"
	}
	return s
}
