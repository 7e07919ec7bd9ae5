package models

import "time"

// NotificationStatus tracks the admin review lifecycle of an alert.
type NotificationStatus string

const (
	StatusPending   NotificationStatus = "pending"
	StatusReviewed  NotificationStatus = "reviewed"
	StatusDismissed NotificationStatus = "dismissed"
)

const AlertTypeHighRisk = "high_risk_transaction"

// AdminNotification is a persisted alert for a high-risk transaction. The
// full transaction is embedded so the record stands on its own; there is no
// referential integrity beyond that copy.
type AdminNotification struct {
	AlertType          string             `json:"alert_type"`
	TransactionID      string             `json:"transaction_id"`
	RiskScore          float64            `json:"risk_score"`
	RiskFactors        []string           `json:"risk_factors"`
	TransactionDetails Transaction        `json:"transaction_details"`
	LLMAnalysis        string             `json:"llm_analysis"`
	Timestamp          time.Time          `json:"timestamp"`
	Status             NotificationStatus `json:"status"`
	AdminNotes         string             `json:"admin_notes,omitempty"`
	UpdatedAt          *time.Time         `json:"updated_at,omitempty"`
}

// NewHighRiskNotification builds a pending alert embedding the transaction
// and the analysis that flagged it.
func NewHighRiskNotification(tx Transaction, analysis RiskAnalysis) AdminNotification {
	return AdminNotification{
		AlertType:          AlertTypeHighRisk,
		TransactionID:      tx.TransactionID,
		RiskScore:          analysis.RiskScore,
		RiskFactors:        analysis.RiskFactors,
		TransactionDetails: tx,
		LLMAnalysis:        analysis.Reasoning,
		Timestamp:          time.Now().UTC(),
		Status:             StatusPending,
	}
}
