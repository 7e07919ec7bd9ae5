// Package validator checks transaction payloads before risk scoring. All
// violations are collected into a single error so callers see the complete
// list rather than the first failure.
package validator

import (
	"net"
	"regexp"
	"strings"
	"time"

	"github.com/akylbek/payment-system/risk-webhook/internal/models"
)

var (
	transactionIDPattern = regexp.MustCompile(`^tx_[a-zA-Z0-9]+$`)
	customerIDPattern    = regexp.MustCompile(`^cust_[a-zA-Z0-9]+$`)
	merchantIDPattern    = regexp.MustCompile(`^merch_[a-zA-Z0-9]+$`)
	countryPattern       = regexp.MustCompile(`^[A-Z]{2}$`)
	currencyPattern      = regexp.MustCompile(`^[A-Z]{3}$`)
	categoryPattern      = regexp.MustCompile(`^[a-z_]+$`)
)

var paymentMethodTypes = map[string]struct{}{
	"credit_card":   {},
	"debit_card":    {},
	"bank_transfer": {},
}

// ValidationError aggregates every violation found in a transaction.
type ValidationError struct {
	Messages []string
}

func (e *ValidationError) Error() string {
	return strings.Join(e.Messages, "\n")
}

// Validate inspects a transaction and returns a ValidationError listing all
// violations, or nil if the transaction is acceptable. Membership in the
// high-risk country set is deliberately not a violation; that signal belongs
// to scoring.
func Validate(tx *models.Transaction) error {
	var errs []string

	if tx.TransactionID == "" {
		errs = append(errs, "Missing required transaction ID")
	} else if !transactionIDPattern.MatchString(tx.TransactionID) {
		errs = append(errs, "Invalid transaction ID format")
	}

	if tx.Timestamp.IsZero() {
		errs = append(errs, "Missing transaction timestamp")
	} else if tx.Timestamp.UTC().After(time.Now().UTC()) {
		errs = append(errs, "Transaction timestamp cannot be in the future")
	}

	if tx.Amount <= 0 {
		errs = append(errs, "Transaction amount must be positive")
	}

	if !currencyPattern.MatchString(tx.Currency) {
		errs = append(errs, "Invalid currency code")
	}

	if tx.Customer.ID == "" || tx.Customer.Country == "" {
		errs = append(errs, "Missing required customer information")
	}
	if tx.Customer.ID != "" && !customerIDPattern.MatchString(tx.Customer.ID) {
		errs = append(errs, "Invalid customer ID format")
	}
	if tx.Customer.Country != "" && !countryPattern.MatchString(tx.Customer.Country) {
		errs = append(errs, "Invalid customer country code")
	}

	if net.ParseIP(tx.Customer.IPAddress) == nil {
		errs = append(errs, "Invalid IP address")
	}

	pm := tx.PaymentMethod
	if pm.Type == "" || pm.LastFour == "" || pm.CountryOfIssue == "" {
		errs = append(errs, "Missing required payment method information")
	}
	if _, ok := paymentMethodTypes[pm.Type]; pm.Type != "" && !ok {
		errs = append(errs, "Invalid payment method type")
	}
	if pm.LastFour != "" && !isFourDigits(pm.LastFour) {
		errs = append(errs, "Invalid payment method last four digits")
	}
	if pm.CountryOfIssue != "" && !countryPattern.MatchString(pm.CountryOfIssue) {
		errs = append(errs, "Invalid payment method country of issue")
	}

	if tx.Merchant.ID == "" || tx.Merchant.Name == "" || tx.Merchant.Category == "" {
		errs = append(errs, "Missing required merchant information")
	}
	if tx.Merchant.ID != "" && !merchantIDPattern.MatchString(tx.Merchant.ID) {
		errs = append(errs, "Invalid merchant ID format")
	}
	if tx.Merchant.Category != "" && !categoryPattern.MatchString(tx.Merchant.Category) {
		errs = append(errs, "Invalid merchant category")
	}
	if len(tx.Merchant.Name) > 100 {
		errs = append(errs, "Merchant name too long")
	}

	if len(errs) > 0 {
		return &ValidationError{Messages: errs}
	}
	return nil
}

func isFourDigits(s string) bool {
	if len(s) != 4 {
		return false
	}
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}
