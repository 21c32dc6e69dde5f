package pricing

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brickyard-commerce/brickyard/internal/market"
	"github.com/brickyard-commerce/brickyard/internal/shared"
)

type mockAnalyzer struct {
	analysis market.Analysis
	err      error
}

func (m *mockAnalyzer) Analyze(context.Context, int64) (market.Analysis, error) {
	return m.analysis, m.err
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestRouter(t *testing.T, analyzer MarketAnalyzer) http.Handler {
	t.Helper()
	if analyzer == nil {
		analyzer = &mockAnalyzer{}
	}
	handler := NewHandler(testLogger(), NewService(newMockStore()), analyzer)
	r := chi.NewRouter()
	handler.MountRoutes(r)
	return r
}

func postJSON(t *testing.T, router http.Handler, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	raw, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestCalculateEndpoint(t *testing.T) {
	router := newTestRouter(t, nil)

	rec := postJSON(t, router, "/pricing/calculate", map[string]any{
		"product_id": 1,
		"quantity":   30,
		"location":   "city",
		"urgency":    "urgent",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var breakdown Breakdown
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &breakdown))
	assert.Equal(t, 90.0, breakdown.FinalPrice)
	assert.Equal(t, 30.0, breakdown.DeliveryCharge)
	assert.Equal(t, 15.0, breakdown.UrgencyCharge)
}

func TestCalculateEndpointMissingFields(t *testing.T) {
	router := newTestRouter(t, nil)

	rec := postJSON(t, router, "/pricing/calculate", map[string]any{"product_id": 1})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = postJSON(t, router, "/pricing/calculate", map[string]any{"quantity": 10})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = postJSON(t, router, "/pricing/calculate", map[string]any{"product_id": 1, "quantity": 0})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCalculateEndpointUnknownProduct(t *testing.T) {
	router := newTestRouter(t, nil)
	rec := postJSON(t, router, "/pricing/calculate", map[string]any{"product_id": 999, "quantity": 5})
	require.Equal(t, http.StatusNotFound, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Contains(t, body["message"], "not found")
}

func TestGenerateQuotationEndpoint(t *testing.T) {
	router := newTestRouter(t, nil)

	rec := postJSON(t, router, "/quotations/generate", map[string]any{
		"items": []map[string]any{
			{"product_id": 1, "quantity": 10},
			{"product_id": 2, "quantity": 3},
		},
		"customer_name": "Sharma Constructions",
		"urgency":       "express",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var quotation Quotation
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &quotation))
	assert.Len(t, quotation.Items, 2)
	assert.Equal(t, "Sharma Constructions", quotation.CustomerName)
	assert.Equal(t, "1 business day", quotation.DeliveryEstimate)
	assert.Regexp(t, quotationIDPattern, quotation.ID)
}

func TestGenerateQuotationEndpointRejectsEmptyItems(t *testing.T) {
	router := newTestRouter(t, nil)

	rec := postJSON(t, router, "/quotations/generate", map[string]any{"items": []map[string]any{}})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = postJSON(t, router, "/quotations/generate", map[string]any{"customer_name": "No Items"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestMarketAnalysisEndpoint(t *testing.T) {
	analyzer := &mockAnalyzer{analysis: market.Analysis{ProductID: 1, OurPrice: 100, MarketAverage: 102}}
	router := newTestRouter(t, analyzer)

	req := httptest.NewRequest(http.MethodGet, "/pricing/market-analysis/1", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var analysis market.Analysis
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &analysis))
	assert.Equal(t, 102.0, analysis.MarketAverage)
}

func TestMarketAnalysisEndpointUnknownProduct(t *testing.T) {
	analyzer := &mockAnalyzer{err: shared.ErrNotFound}
	router := newTestRouter(t, analyzer)

	req := httptest.NewRequest(http.MethodGet, "/pricing/market-analysis/404", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
