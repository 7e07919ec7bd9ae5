package risk

// Prompt holds the system and user halves of a chat-completion request.
type Prompt struct {
	System string
	User   string
}

const riskAnalysisSystemPrompt = `You are a specialized financial risk analyst. Evaluate transaction data and determine
a risk score from 0.0 (no risk) to 1.0 (extremely high risk) based on fraud patterns.
Provide clear reasoning and risk factors.

Response format:
{
    "risk_score": 0.0-1.0,
    "risk_factors": ["factor1", "factor2"...],
    "reasoning": "Brief analysis explanation",
    "recommended_action": "allow|review|block"
}

Consider:
1. Geographic mismatches (customer/payment country differences, high-risk jurisdictions)
2. Transaction patterns (unusual amounts, timing)
3. Payment method risks
4. Merchant category risks

Score guidelines:
- 0.0-0.3: Allow (low risk)
- 0.3-0.7: Review (medium risk)
- 0.7-1.0: Block (high risk)`

// RiskAnalysisPrompt builds the prompt for scoring a serialized transaction.
func RiskAnalysisPrompt(transactionJSON string) Prompt {
	return Prompt{
		System: riskAnalysisSystemPrompt,
		User:   "Analyze this transaction:\n" + transactionJSON,
	}
}

// TransactionSummaryPrompt builds the prompt for a human-readable summary of
// a transaction, used for admin-facing digests.
func TransactionSummaryPrompt(transactionJSON string) Prompt {
	return Prompt{
		System: "Create a clear, concise summary of the transaction highlighting key details " +
			"and any unusual patterns. Focus on information relevant to risk assessment.",
		User: "Summarize this transaction:\n" + transactionJSON,
	}
}
