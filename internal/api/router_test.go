package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/akylbek/payment-system/risk-webhook/internal/config"
	"github.com/akylbek/payment-system/risk-webhook/internal/models"
	"github.com/akylbek/payment-system/risk-webhook/internal/notifications"
	"github.com/akylbek/payment-system/risk-webhook/internal/risk"
	"github.com/akylbek/payment-system/risk-webhook/internal/service"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func testConfig() *config.Config {
	return &config.Config{
		Port:              "0",
		WebhookSecret:     "hook-secret",
		AdminUsername:     "admin",
		AdminPassword:     "admin-pass",
		HighRiskCountries: []string{"RU", "IR", "KP", "VE", "MM"},
		HighRiskThreshold: 0.7,
		ReviewThreshold:   0.3,
	}
}

// setupRouter builds a full router with a memory store and a downed model
// endpoint, so scoring always uses the heuristic fallback.
func setupRouter(t *testing.T) (*gin.Engine, *notifications.MemoryStore) {
	t.Helper()
	cfg := testConfig()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	store := notifications.NewMemoryStore()
	analyzer := risk.NewAnalyzer(risk.NewBaseScorer(cfg.HighRiskCountries),
		risk.ClientConfig{Endpoint: srv.URL, Model: "test"}, nil, nil)
	pipeline := service.NewPipeline(analyzer, store, service.Thresholds{
		HighRisk: cfg.HighRiskThreshold,
		Review:   cfg.ReviewThreshold,
	}, nil, nil, nil, nil)

	return NewRouter(cfg, pipeline, store, nil), store
}

func webhookBody(t *testing.T, customerCountry string, amount float64) []byte {
	t.Helper()
	tx := models.Transaction{
		TransactionID: "tx_router1",
		Timestamp:     models.Timestamp{Time: time.Now().UTC().Add(-time.Minute)},
		Amount:        amount,
		Currency:      "USD",
		Customer:      models.Customer{ID: "cust_1", Country: customerCountry, IPAddress: "10.1.2.3"},
		PaymentMethod: models.PaymentMethod{Type: "credit_card", LastFour: "4242", CountryOfIssue: "US"},
		Merchant:      models.Merchant{ID: "merch_1", Name: "Shop", Category: "retail"},
	}
	body, err := json.Marshal(tx)
	require.NoError(t, err)
	return body
}

func doRequest(r *gin.Engine, method, path, user, pass string, body []byte) *httptest.ResponseRecorder {
	var req *http.Request
	if body != nil {
		req = httptest.NewRequest(method, path, bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if user != "" {
		req.SetBasicAuth(user, pass)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestWebhookRejectsMissingAuth(t *testing.T) {
	r, _ := setupRouter(t)
	w := doRequest(r, http.MethodPost, "/api/webhook", "", "", webhookBody(t, "US", 50))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Header().Get("WWW-Authenticate"), "Basic")
}

func TestWebhookRejectsAdminCredentials(t *testing.T) {
	// The admin pair is not valid for the webhook endpoint.
	r, _ := setupRouter(t)
	w := doRequest(r, http.MethodPost, "/api/webhook", "admin", "admin-pass", webhookBody(t, "US", 50))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestWebhookSuccess(t *testing.T) {
	r, _ := setupRouter(t)
	w := doRequest(r, http.MethodPost, "/api/webhook", "admin", "hook-secret", webhookBody(t, "US", 50))
	require.Equal(t, http.StatusOK, w.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "success", resp["status"])
	assert.Equal(t, "Transaction processed successfully", resp["message"])
	assert.Equal(t, "tx_router1", resp["transaction_id"])
	assert.Equal(t, "0.0", resp["risk_score"])
}

func TestWebhookHighRiskCreatesNotification(t *testing.T) {
	r, store := setupRouter(t)
	w := doRequest(r, http.MethodPost, "/api/webhook", "admin", "hook-secret", webhookBody(t, "RU", 99.99))
	require.Equal(t, http.StatusOK, w.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	score, err := strconv.ParseFloat(resp["risk_score"], 64)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, score, 0.7)

	list, err := store.Load(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "tx_router1", list[0].TransactionID)
	assert.Equal(t, models.StatusPending, list[0].Status)
}

func TestWebhookValidationErrorListsAllProblems(t *testing.T) {
	r, _ := setupRouter(t)

	var tx map[string]any
	require.NoError(t, json.Unmarshal(webhookBody(t, "US", 50), &tx))
	delete(tx, "customer")
	delete(tx, "payment_method")
	delete(tx, "merchant")
	body, _ := json.Marshal(tx)

	w := doRequest(r, http.MethodPost, "/api/webhook", "admin", "hook-secret", body)
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Contains(t, resp["error"], "Missing required customer information")
	assert.Contains(t, resp["error"], "Missing required payment method information")
	assert.Contains(t, resp["error"], "Missing required merchant information")
}

func TestWebhookRejectsMalformedBody(t *testing.T) {
	r, _ := setupRouter(t)
	w := doRequest(r, http.MethodPost, "/api/webhook", "admin", "hook-secret", []byte("{not json"))
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestListNotificationsRequiresAdminAuth(t *testing.T) {
	r, _ := setupRouter(t)

	w := doRequest(r, http.MethodGet, "/api/notifications", "", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// Webhook credentials do not grant admin access.
	w = doRequest(r, http.MethodGet, "/api/notifications", "admin", "hook-secret", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestListNotificationsWithStatusFilter(t *testing.T) {
	r, store := setupRouter(t)
	ctx := context.Background()

	for i, status := range []models.NotificationStatus{models.StatusPending, models.StatusReviewed} {
		n := models.AdminNotification{
			AlertType:     models.AlertTypeHighRisk,
			TransactionID: fmt.Sprintf("tx_%d", i),
			RiskScore:     0.9,
			RiskFactors:   []string{"f"},
			Timestamp:     time.Now().UTC(),
			Status:        status,
		}
		require.NoError(t, store.Append(ctx, n))
	}

	w := doRequest(r, http.MethodGet, "/api/notifications?status=reviewed", "admin", "admin-pass", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var list []models.AdminNotification
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	require.Len(t, list, 1)
	assert.Equal(t, "tx_1", list[0].TransactionID)
}

func TestUpdateNotificationStatus(t *testing.T) {
	r, store := setupRouter(t)
	require.NoError(t, store.Append(context.Background(), models.AdminNotification{
		AlertType:     models.AlertTypeHighRisk,
		TransactionID: "tx_upd",
		RiskScore:     0.8,
		Timestamp:     time.Now().UTC(),
		Status:        models.StatusPending,
	}))

	body := []byte(`{"status":"reviewed"}`)
	w := doRequest(r, http.MethodPut, "/api/notifications/tx_upd/status", "admin", "admin-pass", body)
	require.Equal(t, http.StatusOK, w.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Notification status updated to reviewed", resp["message"])

	list, _ := store.Load(context.Background())
	assert.Equal(t, models.StatusReviewed, list[0].Status)
}

func TestUpdateNotificationStatusInvalid(t *testing.T) {
	r, _ := setupRouter(t)
	body := []byte(`{"status":"pending"}`)
	w := doRequest(r, http.MethodPut, "/api/notifications/tx_any/status", "admin", "admin-pass", body)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUpdateNotificationStatusNotFound(t *testing.T) {
	r, _ := setupRouter(t)
	body := []byte(`{"status":"dismissed"}`)
	w := doRequest(r, http.MethodPut, "/api/notifications/tx_missing/status", "admin", "admin-pass", body)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestHealthEndpointIsPublic(t *testing.T) {
	r, _ := setupRouter(t)
	w := doRequest(r, http.MethodGet, "/health", "", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}
