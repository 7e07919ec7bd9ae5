package risk

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/akylbek/payment-system/risk-webhook/internal/models"
)

var testHighRisk = []string{"RU", "IR", "KP", "VE", "MM"}

func scorerTx(customerCountry, issuerCountry string, amount float64) *models.Transaction {
	return &models.Transaction{
		TransactionID: "tx_base",
		Amount:        amount,
		Currency:      "USD",
		Customer:      models.Customer{ID: "cust_1", Country: customerCountry, IPAddress: "10.0.0.1"},
		PaymentMethod: models.PaymentMethod{Type: "credit_card", LastFour: "4242", CountryOfIssue: issuerCountry},
		Merchant:      models.Merchant{ID: "merch_1", Name: "Shop", Category: "retail"},
	}
}

func TestScoreClampsToOne(t *testing.T) {
	s := NewBaseScorer(testHighRisk)

	// 0.4 + 0.4 + 0.3 + 0.3 = 1.4, clamped
	tx := scorerTx("RU", "IR", 5000)
	assert.Equal(t, 1.0, s.Score(tx))
}

func TestScoreStaysInRange(t *testing.T) {
	s := NewBaseScorer(testHighRisk)

	cases := []*models.Transaction{
		scorerTx("US", "US", 10),
		scorerTx("US", "CA", 600),
		scorerTx("RU", "US", 1500),
		scorerTx("KP", "KP", 20000),
	}
	for _, tx := range cases {
		score := s.Score(tx)
		assert.GreaterOrEqual(t, score, 0.0)
		assert.LessOrEqual(t, score, 1.0)
	}
}

func TestCrossBorderScoresHigher(t *testing.T) {
	s := NewBaseScorer(testHighRisk)

	crossBorder := s.Score(scorerTx("US", "CA", 99.99))
	domestic := s.Score(scorerTx("US", "US", 99.99))

	assert.InDelta(t, 0.3, crossBorder-domestic, 1e-9)
}

func TestAmountBands(t *testing.T) {
	s := NewBaseScorer(testHighRisk)

	assert.Equal(t, 0.0, s.Score(scorerTx("US", "US", 100)))
	assert.InDelta(t, 0.2, s.Score(scorerTx("US", "US", 501)), 1e-9)
	assert.InDelta(t, 0.3, s.Score(scorerTx("US", "US", 1001)), 1e-9)
}

// A customer in a high-risk country crosses the default notification
// threshold on the heuristic alone whenever the payment issuer differs.
func TestHighRiskCountryReachesThreshold(t *testing.T) {
	s := NewBaseScorer(testHighRisk)

	score := s.Score(scorerTx("RU", "US", 99.99))
	assert.GreaterOrEqual(t, score, 0.7)
}

func TestScoreIsDeterministic(t *testing.T) {
	s := NewBaseScorer(testHighRisk)
	tx := scorerTx("VE", "CA", 750)

	first := s.Score(tx)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, s.Score(tx))
	}
}
