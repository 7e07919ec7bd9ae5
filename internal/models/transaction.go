package models

import (
	"fmt"
	"strings"
	"time"
)

// Timestamp wraps time.Time to accept webhook payloads that omit a zone
// offset. Zone-less timestamps are interpreted as UTC.
type Timestamp struct {
	time.Time
}

const zonelessLayout = "2006-01-02T15:04:05"

func (t *Timestamp) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "null" || s == "" {
		return nil
	}

	if parsed, err := time.Parse(time.RFC3339, s); err == nil {
		t.Time = parsed
		return nil
	}

	parsed, err := time.ParseInLocation(zonelessLayout, s, time.UTC)
	if err != nil {
		return fmt.Errorf("invalid timestamp %q", s)
	}
	t.Time = parsed
	return nil
}

func (t Timestamp) MarshalJSON() ([]byte, error) {
	return []byte(`"` + t.UTC().Format(time.RFC3339) + `"`), nil
}

type Customer struct {
	ID        string `json:"id"`
	Country   string `json:"country"`
	IPAddress string `json:"ip_address"`
}

type PaymentMethod struct {
	Type           string `json:"type"`
	LastFour       string `json:"last_four"`
	CountryOfIssue string `json:"country_of_issue"`
}

type Merchant struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Category string `json:"category"`
}

// Transaction is the inbound webhook payload. It is never mutated after
// binding.
type Transaction struct {
	TransactionID string        `json:"transaction_id"`
	Timestamp     Timestamp     `json:"timestamp"`
	Amount        float64       `json:"amount"`
	Currency      string        `json:"currency"`
	Customer      Customer      `json:"customer"`
	PaymentMethod PaymentMethod `json:"payment_method"`
	Merchant      Merchant      `json:"merchant"`
}
