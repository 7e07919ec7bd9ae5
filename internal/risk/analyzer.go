package risk

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/akylbek/payment-system/risk-webhook/internal/metrics"
	"github.com/akylbek/payment-system/risk-webhook/internal/models"
)

// ErrAnalysisFailed is the last-resort failure of the analyzer. The fallback
// path absorbs every model error, so this should never be observed.
var ErrAnalysisFailed = errors.New("risk analysis failed completely")

// Source identifies where an analysis came from.
type Source string

const (
	SourceModel    Source = "model"
	SourceFallback Source = "fallback"
)

// Outcome is the two-branch result of an analysis: either the model scored
// the transaction, or the call degraded and the pre-computed base score was
// substituted. Callers never observe degradation as an error.
type Outcome struct {
	Analysis models.RiskAnalysis
	Source   Source
	// DegradedReason records why the fallback was used; empty for model
	// results.
	DegradedReason string
}

// Degraded reports whether the base-score fallback was substituted.
func (o *Outcome) Degraded() bool {
	return o.Source == SourceFallback
}

// ClientConfig carries the bounded model-call settings.
type ClientConfig struct {
	Endpoint    string
	APIKey      string
	Model       string
	Temperature float64
	MaxTokens   int
}

// Analyzer scores transactions through the external model, guaranteeing a
// heuristic fallback when the model is unavailable or returns garbage.
type Analyzer struct {
	base   *BaseScorer
	cfg    ClientConfig
	client *http.Client
	logger *zap.Logger
}

// NewAnalyzer builds an analyzer over the base scorer and model settings.
// A nil client gets a default with a 30s timeout; a nil logger is silenced.
func NewAnalyzer(base *BaseScorer, cfg ClientConfig, client *http.Client, logger *zap.Logger) *Analyzer {
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Analyzer{base: base, cfg: cfg, client: client, logger: logger}
}

// chat-completions wire shapes.
type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// Analyze scores a transaction. The base score is computed before the model
// call is attempted so a fallback is always ready; any network, HTTP, or
// parse failure returns a degraded outcome carrying that score instead of an
// error. The error return exists only as an invariant guard.
func (a *Analyzer) Analyze(ctx context.Context, tx *models.Transaction) (out *Outcome, err error) {
	defer func() {
		if r := recover(); r != nil {
			a.logger.Error("risk analysis panicked", zap.Any("panic", r))
			out, err = nil, fmt.Errorf("%w: %v", ErrAnalysisFailed, r)
		}
	}()

	baseScore := a.base.Score(tx)

	analysis, callErr := a.callModel(ctx, tx)
	if callErr != nil {
		a.logger.Warn("LLM analysis degraded to base score",
			zap.String("transaction_id", tx.TransactionID),
			zap.Float64("base_score", baseScore),
			zap.Error(callErr),
		)
		return &Outcome{
			Analysis: models.RiskAnalysis{
				RiskScore:         baseScore,
				RiskFactors:       []string{"LLM analysis unavailable - using base risk score"},
				Reasoning:         "Risk analysis based on basic transaction properties due to LLM service unavailability.",
				RecommendedAction: models.ActionReview,
			},
			Source:         SourceFallback,
			DegradedReason: callErr.Error(),
		}, nil
	}

	return &Outcome{Analysis: *analysis, Source: SourceModel}, nil
}

// callModel performs one chat-completions round trip and validates the
// response. All failure modes collapse into a single error for the caller.
func (a *Analyzer) callModel(ctx context.Context, tx *models.Transaction) (*models.RiskAnalysis, error) {
	start := time.Now()
	outcome := "error"
	defer func() {
		metrics.LLMRequestDuration.WithLabelValues(outcome).Observe(time.Since(start).Seconds())
	}()

	txJSON, err := json.Marshal(tx)
	if err != nil {
		return nil, fmt.Errorf("marshal transaction: %w", err)
	}

	prompt := RiskAnalysisPrompt(string(txJSON))
	payload, err := json.Marshal(chatRequest{
		Model: a.cfg.Model,
		Messages: []chatMessage{
			{Role: "system", Content: prompt.System},
			{Role: "user", Content: prompt.User},
		},
		Temperature: a.cfg.Temperature,
		MaxTokens:   a.cfg.MaxTokens,
	})
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		a.cfg.Endpoint+"/chat/completions", bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+a.cfg.APIKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := a.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("call model endpoint: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("model endpoint returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	var chat chatResponse
	if err := json.Unmarshal(body, &chat); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	if len(chat.Choices) == 0 {
		return nil, fmt.Errorf("model returned no choices")
	}

	analysis, err := ParseResponse(chat.Choices[0].Message.Content)
	if err != nil {
		return nil, err
	}

	outcome = "ok"
	return analysis, nil
}
