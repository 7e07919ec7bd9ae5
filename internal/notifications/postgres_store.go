package notifications

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/akylbek/payment-system/risk-webhook/internal/models"
)

// PostgresStore persists notifications in PostgreSQL. Insertion order is
// preserved through the serial primary key.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgresStore creates a PostgreSQL-backed notification store.
func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

// InitDB creates the notifications table if it doesn't exist.
func (s *PostgresStore) InitDB() error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS admin_notifications (
			id SERIAL PRIMARY KEY,
			alert_type VARCHAR(50) NOT NULL,
			transaction_id VARCHAR(255) NOT NULL,
			risk_score NUMERIC(4,3) NOT NULL CHECK (risk_score >= 0 AND risk_score <= 1),
			risk_factors JSONB NOT NULL DEFAULT '[]',
			transaction_details JSONB NOT NULL,
			llm_analysis TEXT NOT NULL DEFAULT '',
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			status VARCHAR(20) NOT NULL CHECK (status IN ('pending', 'reviewed', 'dismissed')),
			admin_notes TEXT,
			updated_at TIMESTAMPTZ
		)`,
		`CREATE INDEX IF NOT EXISTS idx_admin_notifications_tx ON admin_notifications(transaction_id)`,
		`CREATE INDEX IF NOT EXISTS idx_admin_notifications_status ON admin_notifications(status)`,
	}

	for _, query := range queries {
		if _, err := s.db.Exec(query); err != nil {
			return err
		}
	}
	return nil
}

func (s *PostgresStore) Load(ctx context.Context) ([]models.AdminNotification, error) {
	return s.query(ctx, `
		SELECT alert_type, transaction_id, risk_score, risk_factors,
		       transaction_details, llm_analysis, created_at, status,
		       COALESCE(admin_notes, ''), updated_at
		FROM admin_notifications ORDER BY id
	`)
}

func (s *PostgresStore) Append(ctx context.Context, n models.AdminNotification) error {
	factors, err := json.Marshal(n.RiskFactors)
	if err != nil {
		return fmt.Errorf("marshal risk factors: %w", err)
	}
	details, err := json.Marshal(n.TransactionDetails)
	if err != nil {
		return fmt.Errorf("marshal transaction details: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO admin_notifications
			(alert_type, transaction_id, risk_score, risk_factors,
			 transaction_details, llm_analysis, created_at, status, admin_notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NULLIF($9, ''))
	`, n.AlertType, n.TransactionID, n.RiskScore, factors, details,
		n.LLMAnalysis, n.Timestamp, n.Status, n.AdminNotes)
	return err
}

func (s *PostgresStore) List(ctx context.Context, statusFilter models.NotificationStatus) ([]models.AdminNotification, error) {
	if statusFilter == "" {
		return s.Load(ctx)
	}
	return s.query(ctx, `
		SELECT alert_type, transaction_id, risk_score, risk_factors,
		       transaction_details, llm_analysis, created_at, status,
		       COALESCE(admin_notes, ''), updated_at
		FROM admin_notifications WHERE status = $1 ORDER BY id
	`, string(statusFilter))
}

func (s *PostgresStore) UpdateStatus(ctx context.Context, transactionID string, status models.NotificationStatus) error {
	if !AdminSettable(status) {
		return ErrInvalidStatus
	}

	result, err := s.db.ExecContext(ctx, `
		UPDATE admin_notifications
		SET status = $1, updated_at = NOW()
		WHERE id = (
			SELECT id FROM admin_notifications
			WHERE transaction_id = $2 ORDER BY id LIMIT 1
		)
	`, string(status), transactionID)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *PostgresStore) query(ctx context.Context, q string, args ...any) ([]models.AdminNotification, error) {
	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	list := []models.AdminNotification{}
	for rows.Next() {
		var n models.AdminNotification
		var factors, details []byte
		var updatedAt sql.NullTime

		if err := rows.Scan(&n.AlertType, &n.TransactionID, &n.RiskScore,
			&factors, &details, &n.LLMAnalysis, &n.Timestamp, &n.Status,
			&n.AdminNotes, &updatedAt); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(factors, &n.RiskFactors); err != nil {
			return nil, fmt.Errorf("unmarshal risk factors: %w", err)
		}
		if err := json.Unmarshal(details, &n.TransactionDetails); err != nil {
			return nil, fmt.Errorf("unmarshal transaction details: %w", err)
		}
		if updatedAt.Valid {
			t := updatedAt.Time
			n.UpdatedAt = &t
		}
		list = append(list, n)
	}
	return list, rows.Err()
}
