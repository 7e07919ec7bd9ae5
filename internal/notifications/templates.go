package notifications

import (
	"fmt"
	"strings"
	"time"

	"github.com/akylbek/payment-system/risk-webhook/internal/models"
)

// Template generation only. Actual email/Slack delivery is handled by
// downstream systems consuming these payloads.

// EmailNotification is a rendered email alert.
type EmailNotification struct {
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

// FormatTransactionDetails renders the embedded transaction for a human
// reader.
func FormatTransactionDetails(tx *models.Transaction) string {
	return fmt.Sprintf(`Transaction ID: %s
Amount: %.2f %s
Time: %s

Customer:
- ID: %s
- Country: %s
- IP: %s

Payment Method:
- Type: %s
- Last Four: %s
- Country: %s

Merchant:
- Name: %s
- Category: %s`,
		tx.TransactionID,
		tx.Amount, tx.Currency,
		tx.Timestamp.UTC().Format("2006-01-02 15:04:05 UTC"),
		tx.Customer.ID, tx.Customer.Country, tx.Customer.IPAddress,
		tx.PaymentMethod.Type, tx.PaymentMethod.LastFour, tx.PaymentMethod.CountryOfIssue,
		tx.Merchant.Name, tx.Merchant.Category,
	)
}

// FormatRiskAnalysis renders a risk analysis with its banded level.
func FormatRiskAnalysis(analysis *models.RiskAnalysis) string {
	level := "LOW"
	switch {
	case analysis.RiskScore >= 0.7:
		level = "HIGH"
	case analysis.RiskScore >= 0.3:
		level = "MEDIUM"
	}

	var factors strings.Builder
	for _, f := range analysis.RiskFactors {
		factors.WriteString("- " + f + "\n")
	}

	return fmt.Sprintf(`Risk Level: %s (Score: %.2f)

Risk Factors:
%s
Analysis:
%s

Recommended Action: %s`,
		level, analysis.RiskScore,
		factors.String(),
		analysis.Reasoning,
		strings.ToUpper(string(analysis.RecommendedAction)),
	)
}

// BuildEmailNotification renders the email alert for a persisted
// notification.
func BuildEmailNotification(n *models.AdminNotification) EmailNotification {
	action := models.ActionReview
	if n.RiskScore >= 0.7 {
		action = models.ActionBlock
	}
	analysis := models.RiskAnalysis{
		RiskScore:         n.RiskScore,
		RiskFactors:       n.RiskFactors,
		Reasoning:         n.LLMAnalysis,
		RecommendedAction: action,
	}

	body := fmt.Sprintf(`HIGH RISK TRANSACTION DETECTED

%s

RISK ANALYSIS:

%s

Please review this transaction immediately and take appropriate action.

Access the admin dashboard for more details and to update the status of this alert.

Time: %s`,
		FormatTransactionDetails(&n.TransactionDetails),
		FormatRiskAnalysis(&analysis),
		time.Now().UTC().Format("2006-01-02 15:04:05 UTC"),
	)

	return EmailNotification{
		Subject: fmt.Sprintf("High Risk Transaction Alert - Score %.2f", n.RiskScore),
		Body:    body,
	}
}

// BuildSlackNotification renders the Slack Block Kit payload for a persisted
// notification.
func BuildSlackNotification(n *models.AdminNotification) map[string]any {
	var factors strings.Builder
	for i, f := range n.RiskFactors {
		if i > 0 {
			factors.WriteString("\n")
		}
		factors.WriteString("• " + f)
	}

	return map[string]any{
		"blocks": []map[string]any{
			{
				"type": "header",
				"text": map[string]any{
					"type": "plain_text",
					"text": fmt.Sprintf("🚨 High Risk Transaction - Score %.2f", n.RiskScore),
				},
			},
			{
				"type": "section",
				"fields": []map[string]any{
					{"type": "mrkdwn", "text": "*Transaction ID:*\n" + n.TransactionID},
					{"type": "mrkdwn", "text": fmt.Sprintf("*Amount:*\n%.2f %s",
						n.TransactionDetails.Amount, n.TransactionDetails.Currency)},
				},
			},
			{
				"type": "section",
				"text": map[string]any{"type": "mrkdwn", "text": "*Risk Factors:*\n" + factors.String()},
			},
			{
				"type": "section",
				"text": map[string]any{"type": "mrkdwn", "text": "*Analysis:*\n" + n.LLMAnalysis},
			},
		},
	}
}
