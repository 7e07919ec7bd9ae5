package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/akylbek/payment-system/risk-webhook/internal/auth"
	"github.com/akylbek/payment-system/risk-webhook/internal/config"
	"github.com/akylbek/payment-system/risk-webhook/internal/handlers"
	"github.com/akylbek/payment-system/risk-webhook/internal/notifications"
	"github.com/akylbek/payment-system/risk-webhook/internal/service"
	"github.com/akylbek/payment-system/risk-webhook/internal/telemetry"
)

// NewRouter wires routes, auth, and observability middleware.
// The webhook caller and the admin API authenticate with separate secrets.
func NewRouter(cfg *config.Config, pipeline *service.Pipeline, store notifications.Store, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(telemetry.TracingMiddleware())

	// Prometheus metrics
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "service": "risk-webhook"})
	})

	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "Transaction Risk Analysis API"})
	})

	webhookHandler := handlers.NewWebhookHandler(pipeline, logger)
	webhookAuth := auth.BasicAuth(auth.Credentials{
		Username: cfg.AdminUsername,
		Password: cfg.WebhookSecret,
	})
	r.POST("/api/webhook", webhookAuth, webhookHandler.HandleTransaction)

	notificationHandler := handlers.NewNotificationHandler(store, logger)
	adminAuth := auth.BasicAuth(auth.Credentials{
		Username: cfg.AdminUsername,
		Password: cfg.AdminPassword,
	})
	adminGroup := r.Group("/api", adminAuth)
	adminGroup.GET("/notifications", notificationHandler.ListNotifications)
	adminGroup.PUT("/notifications/:transaction_id/status", notificationHandler.UpdateStatus)

	return r
}
