package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimestampAcceptsRFC3339(t *testing.T) {
	var ts Timestamp
	require.NoError(t, json.Unmarshal([]byte(`"2024-06-01T10:30:00+02:00"`), &ts))
	assert.True(t, ts.Equal(time.Date(2024, 6, 1, 8, 30, 0, 0, time.UTC)))
}

func TestTimestampZonelessDefaultsToUTC(t *testing.T) {
	var ts Timestamp
	require.NoError(t, json.Unmarshal([]byte(`"2024-06-01T10:30:00"`), &ts))
	assert.True(t, ts.Equal(time.Date(2024, 6, 1, 10, 30, 0, 0, time.UTC)))
}

func TestTimestampRejectsGarbage(t *testing.T) {
	var ts Timestamp
	assert.Error(t, json.Unmarshal([]byte(`"yesterday"`), &ts))
}

func TestTimestampMarshalsAsRFC3339(t *testing.T) {
	ts := Timestamp{Time: time.Date(2024, 6, 1, 10, 30, 0, 0, time.UTC)}
	out, err := json.Marshal(ts)
	require.NoError(t, err)
	assert.Equal(t, `"2024-06-01T10:30:00Z"`, string(out))
}

func TestTransactionRoundTrip(t *testing.T) {
	raw := `{
		"transaction_id": "tx_12345abc",
		"timestamp": "2024-06-01T10:30:00Z",
		"amount": 1500.50,
		"currency": "USD",
		"customer": {"id": "cust_98765", "country": "US", "ip_address": "192.168.1.100"},
		"payment_method": {"type": "credit_card", "last_four": "4242", "country_of_issue": "CA"},
		"merchant": {"id": "merch_123", "name": "Online Store", "category": "electronics"}
	}`

	var tx Transaction
	require.NoError(t, json.Unmarshal([]byte(raw), &tx))
	assert.Equal(t, "tx_12345abc", tx.TransactionID)
	assert.Equal(t, 1500.50, tx.Amount)
	assert.Equal(t, "CA", tx.PaymentMethod.CountryOfIssue)
	assert.Equal(t, "electronics", tx.Merchant.Category)
}

func TestNewHighRiskNotification(t *testing.T) {
	tx := Transaction{TransactionID: "tx_n1", Amount: 3000, Currency: "USD"}
	analysis := RiskAnalysis{
		RiskScore:         0.9,
		RiskFactors:       []string{"large amount"},
		Reasoning:         "way above usual",
		RecommendedAction: ActionBlock,
	}

	n := NewHighRiskNotification(tx, analysis)
	assert.Equal(t, AlertTypeHighRisk, n.AlertType)
	assert.Equal(t, "tx_n1", n.TransactionID)
	assert.Equal(t, 0.9, n.RiskScore)
	assert.Equal(t, "way above usual", n.LLMAnalysis)
	assert.Equal(t, StatusPending, n.Status)
	assert.Empty(t, n.AdminNotes)
	assert.Nil(t, n.UpdatedAt)
	assert.WithinDuration(t, time.Now().UTC(), n.Timestamp, time.Second)
}
