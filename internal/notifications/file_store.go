package notifications

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/akylbek/payment-system/risk-webhook/internal/models"
)

// FileStore keeps the whole collection as one JSON array on disk. Every
// write serializes the full collection; there is no cross-process locking,
// so concurrent writers race with last-writer-wins semantics. Acceptable for
// a low-volume admin alert log.
type FileStore struct {
	path string
}

// NewFileStore creates a store backed by the given file path.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

func (s *FileStore) Load(ctx context.Context) ([]models.AdminNotification, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		// Missing file means no notifications yet.
		return []models.AdminNotification{}, nil
	}

	var list []models.AdminNotification
	if err := json.Unmarshal(data, &list); err != nil {
		// Corrupt storage also reads as empty rather than failing.
		return []models.AdminNotification{}, nil
	}
	if list == nil {
		list = []models.AdminNotification{}
	}
	return list, nil
}

func (s *FileStore) Append(ctx context.Context, n models.AdminNotification) error {
	list, _ := s.Load(ctx)
	list = append(list, n)
	return s.save(list)
}

func (s *FileStore) List(ctx context.Context, statusFilter models.NotificationStatus) ([]models.AdminNotification, error) {
	list, _ := s.Load(ctx)
	if statusFilter == "" {
		return list, nil
	}

	filtered := make([]models.AdminNotification, 0, len(list))
	for _, n := range list {
		if n.Status == statusFilter {
			filtered = append(filtered, n)
		}
	}
	return filtered, nil
}

func (s *FileStore) UpdateStatus(ctx context.Context, transactionID string, status models.NotificationStatus) error {
	if !AdminSettable(status) {
		return ErrInvalidStatus
	}

	list, _ := s.Load(ctx)
	for i := range list {
		if list[i].TransactionID == transactionID {
			now := time.Now().UTC()
			list[i].Status = status
			list[i].UpdatedAt = &now
			return s.save(list)
		}
	}
	return ErrNotFound
}

// save writes the full collection atomically: a temp file in the same
// directory is renamed over the target so readers never see a partial write.
func (s *FileStore) save(list []models.AdminNotification) error {
	data, err := json.Marshal(list)
	if err != nil {
		return fmt.Errorf("marshal notifications: %w", err)
	}

	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, ".notifications-*.json")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write notifications: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close temp file: %w", err)
	}

	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("replace notifications file: %w", err)
	}
	return nil
}
