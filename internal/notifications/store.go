// Package notifications persists administrator alerts and their review
// lifecycle. Records are created pending and move to reviewed or dismissed
// through explicit admin action.
package notifications

import (
	"context"
	"errors"

	"github.com/akylbek/payment-system/risk-webhook/internal/models"
)

var (
	// ErrNotFound means no notification matched the transaction id.
	ErrNotFound = errors.New("notification not found")
	// ErrInvalidStatus means the requested status is not an admin-settable
	// one (reviewed or dismissed).
	ErrInvalidStatus = errors.New("invalid notification status")
)

// AdminSettable reports whether an admin may transition a record to s.
func AdminSettable(s models.NotificationStatus) bool {
	return s == models.StatusReviewed || s == models.StatusDismissed
}

// Store is the contract for notification persistence. Ordering of records is
// insertion order across all implementations.
type Store interface {
	// Load returns every stored notification. Missing or unreadable
	// storage reads as an empty collection, never an error.
	Load(ctx context.Context) ([]models.AdminNotification, error)
	// Append adds one record.
	Append(ctx context.Context, n models.AdminNotification) error
	// List returns notifications, filtered by exact status when statusFilter
	// is non-empty.
	List(ctx context.Context, statusFilter models.NotificationStatus) ([]models.AdminNotification, error)
	// UpdateStatus moves the first record matching transactionID to the
	// given status and stamps updated_at. The status is checked before the
	// lookup: non-admin-settable values fail with ErrInvalidStatus, a
	// missing record with ErrNotFound.
	UpdateStatus(ctx context.Context, transactionID string, status models.NotificationStatus) error
}
