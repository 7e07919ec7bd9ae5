package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/akylbek/payment-system/risk-webhook/internal/metrics"
	"github.com/akylbek/payment-system/risk-webhook/internal/models"
	"github.com/akylbek/payment-system/risk-webhook/internal/notifications"
)

// NotificationHandler serves the admin review API over the notification
// store.
type NotificationHandler struct {
	store  notifications.Store
	logger *zap.Logger
}

func NewNotificationHandler(store notifications.Store, logger *zap.Logger) *NotificationHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &NotificationHandler{store: store, logger: logger}
}

// ListNotifications returns stored notifications, optionally filtered by
// exact status.
func (h *NotificationHandler) ListNotifications(c *gin.Context) {
	statusFilter := models.NotificationStatus(c.Query("status"))

	list, err := h.store.List(c.Request.Context(), statusFilter)
	if err != nil {
		h.logger.Error("Failed to list notifications", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load notifications"})
		return
	}

	c.JSON(http.StatusOK, list)
}

type updateStatusRequest struct {
	Status string `json:"status"`
}

// UpdateStatus moves a notification to reviewed or dismissed.
func (h *NotificationHandler) UpdateStatus(c *gin.Context) {
	transactionID := c.Param("transaction_id")

	var req updateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid status"})
		return
	}

	err := h.store.UpdateStatus(c.Request.Context(), transactionID, models.NotificationStatus(req.Status))
	switch {
	case errors.Is(err, notifications.ErrInvalidStatus):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid status"})
	case errors.Is(err, notifications.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Notification not found"})
	case err != nil:
		h.logger.Error("Failed to update notification status",
			zap.String("transaction_id", transactionID),
			zap.Error(err),
		)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update notification"})
	default:
		metrics.NotificationStatusUpdates.WithLabelValues(req.Status).Inc()
		c.JSON(http.StatusOK, gin.H{
			"message": "Notification status updated to " + req.Status,
		})
	}
}
