package models

// RecommendedAction is the model's verdict on a transaction.
type RecommendedAction string

const (
	ActionAllow  RecommendedAction = "allow"
	ActionReview RecommendedAction = "review"
	ActionBlock  RecommendedAction = "block"
)

// ValidAction reports whether s is one of the recognized actions.
func ValidAction(s string) bool {
	switch RecommendedAction(s) {
	case ActionAllow, ActionReview, ActionBlock:
		return true
	}
	return false
}

// RiskAnalysis is produced exactly once per transaction by the scoring step.
// RiskScore always lies in [0,1], whether it came from the model or from the
// heuristic fallback.
type RiskAnalysis struct {
	RiskScore         float64           `json:"risk_score"`
	RiskFactors       []string          `json:"risk_factors"`
	Reasoning         string            `json:"reasoning"`
	RecommendedAction RecommendedAction `json:"recommended_action"`
}
