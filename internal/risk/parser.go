package risk

import (
	"encoding/json"
	"strconv"
	"unicode/utf8"

	"github.com/akylbek/payment-system/risk-webhook/internal/models"
)

// ParseError reports an invalid or incomplete model response.
type ParseError struct {
	Reason string
}

func (e *ParseError) Error() string {
	return "invalid LLM response: " + e.Reason
}

// ParseResponse validates the model's textual output and converts it into a
// RiskAnalysis. On any failure no partial object is returned.
func ParseResponse(raw string) (*models.RiskAnalysis, error) {
	var data map[string]json.RawMessage
	if err := json.Unmarshal([]byte(raw), &data); err != nil {
		return nil, &ParseError{Reason: "not a JSON object"}
	}

	for _, field := range []string{"risk_score", "risk_factors", "reasoning", "recommended_action"} {
		if _, ok := data[field]; !ok {
			return nil, &ParseError{Reason: "missing required field: " + field}
		}
	}

	var score float64
	if err := json.Unmarshal(data["risk_score"], &score); err != nil {
		// Some models quote numbers; accept a numeric string.
		var s string
		if err := json.Unmarshal(data["risk_score"], &s); err != nil {
			return nil, &ParseError{Reason: "risk_score is not numeric"}
		}
		parsed, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return nil, &ParseError{Reason: "risk_score is not numeric"}
		}
		score = parsed
	}
	if score < 0.0 || score > 1.0 {
		return nil, &ParseError{Reason: "risk_score must be between 0.0 and 1.0"}
	}

	var factors []string
	if err := json.Unmarshal(data["risk_factors"], &factors); err != nil {
		return nil, &ParseError{Reason: "risk_factors must be a list"}
	}

	var reasoning string
	if err := json.Unmarshal(data["reasoning"], &reasoning); err != nil {
		return nil, &ParseError{Reason: "reasoning must be a string"}
	}

	var action string
	if err := json.Unmarshal(data["recommended_action"], &action); err != nil || !models.ValidAction(action) {
		return nil, &ParseError{Reason: "recommended_action must be one of: allow, review, block"}
	}

	return &models.RiskAnalysis{
		RiskScore:         score,
		RiskFactors:       factors,
		Reasoning:         reasoning,
		RecommendedAction: models.RecommendedAction(action),
	}, nil
}

// Insights is a condensed view of an analysis for notification rendering.
type Insights struct {
	RiskLevel         string   `json:"risk_level"`
	PrimaryFactors    []string `json:"primary_factors"`
	RecommendedAction string   `json:"recommended_action"`
	Summary           string   `json:"summary"`
}

const summaryLimit = 200

// ExtractInsights condenses an analysis: risk level banded at 0.3 and 0.7,
// at most three primary factors, and the reasoning truncated to 200 chars.
func ExtractInsights(analysis *models.RiskAnalysis) Insights {
	level := "low"
	switch {
	case analysis.RiskScore >= 0.7:
		level = "high"
	case analysis.RiskScore >= 0.3:
		level = "medium"
	}

	factors := analysis.RiskFactors
	if len(factors) > 3 {
		factors = factors[:3]
	}

	summary := analysis.Reasoning
	if len(summary) > summaryLimit {
		cut := summaryLimit - 3
		// Back up to a rune boundary so the cut never splits a multi-byte
		// character.
		for cut > 0 && !utf8.RuneStart(summary[cut]) {
			cut--
		}
		summary = summary[:cut] + "..."
	}

	return Insights{
		RiskLevel:         level,
		PrimaryFactors:    factors,
		RecommendedAction: string(analysis.RecommendedAction),
		Summary:           summary,
	}
}
