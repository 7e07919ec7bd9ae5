package notifications

import (
	"context"
	"sync"
	"time"

	"github.com/akylbek/payment-system/risk-webhook/internal/models"
)

// MemoryStore is an in-memory Store for tests and local runs.
type MemoryStore struct {
	mu   sync.RWMutex
	list []models.AdminNotification
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Load(ctx context.Context) ([]models.AdminNotification, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.AdminNotification, len(s.list))
	copy(out, s.list)
	return out, nil
}

func (s *MemoryStore) Append(ctx context.Context, n models.AdminNotification) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.list = append(s.list, n)
	return nil
}

func (s *MemoryStore) List(ctx context.Context, statusFilter models.NotificationStatus) ([]models.AdminNotification, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.AdminNotification, 0, len(s.list))
	for _, n := range s.list {
		if statusFilter == "" || n.Status == statusFilter {
			out = append(out, n)
		}
	}
	return out, nil
}

func (s *MemoryStore) UpdateStatus(ctx context.Context, transactionID string, status models.NotificationStatus) error {
	if !AdminSettable(status) {
		return ErrInvalidStatus
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.list {
		if s.list[i].TransactionID == transactionID {
			now := time.Now().UTC()
			s.list[i].Status = status
			s.list[i].UpdatedAt = &now
			return nil
		}
	}
	return ErrNotFound
}
