// Package risk scores transactions. A deterministic heuristic produces a
// base score from transaction fields alone; the analyzer layers an LLM call
// on top and falls back to the base score whenever the model cannot produce
// a valid result.
package risk

import "github.com/akylbek/payment-system/risk-webhook/internal/models"

// Additive weights for the heuristic. The sum can exceed 1.0; the final
// score clamps the upper bound only.
const (
	weightHighRiskCustomer = 0.4
	weightHighRiskIssuer   = 0.4
	weightCrossBorder      = 0.3
	weightLargeAmount      = 0.3
	weightMediumAmount     = 0.2

	largeAmountThreshold  = 1000
	mediumAmountThreshold = 500
)

// BaseScorer computes the heuristic risk score. It is pure: no I/O, no
// failure path, deterministic for a given transaction and country set.
type BaseScorer struct {
	highRisk map[string]struct{}
}

// NewBaseScorer builds a scorer over the configured high-risk country set.
func NewBaseScorer(highRiskCountries []string) *BaseScorer {
	set := make(map[string]struct{}, len(highRiskCountries))
	for _, c := range highRiskCountries {
		set[c] = struct{}{}
	}
	return &BaseScorer{highRisk: set}
}

// Score returns a risk score in [0,1].
func (s *BaseScorer) Score(tx *models.Transaction) float64 {
	score := 0.0

	if s.isHighRisk(tx.Customer.Country) {
		score += weightHighRiskCustomer
	}
	if s.isHighRisk(tx.PaymentMethod.CountryOfIssue) {
		score += weightHighRiskIssuer
	}

	if tx.Customer.Country != tx.PaymentMethod.CountryOfIssue {
		score += weightCrossBorder
	}

	switch {
	case tx.Amount > largeAmountThreshold:
		score += weightLargeAmount
	case tx.Amount > mediumAmountThreshold:
		score += weightMediumAmount
	}

	if score > 1.0 {
		score = 1.0
	}
	return score
}

func (s *BaseScorer) isHighRisk(country string) bool {
	_, ok := s.highRisk[country]
	return ok
}
