package http

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"depreciation-calculator/domain"
	"depreciation-calculator/repository"
	"depreciation-calculator/service"
)

func newTestRouter(t *testing.T, limiter *RateLimiter) http.Handler {
	t.Helper()
	svc := service.NewDepreciationService(repository.NewMemoryCache(), time.Minute)
	return NewRouter(RouterConfig{
		Depreciation:   svc,
		Compare:        service.NewCompareService(svc),
		Limiter:        limiter,
		Logger:         slog.New(slog.NewTextHandler(io.Discard, nil)),
		Currency:       "INR",
		MetricsEnabled: true,
	})
}

func postJSON(t *testing.T, h http.Handler, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func TestCalculateHandler_OK(t *testing.T) {
	router := newTestRouter(t, nil)

	w := postJSON(t, router, "/api/depreciation/calculate",
		`{"method": 1, "cost": 10000, "salvage": 1000, "life": 5}`)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
	assert.NotEmpty(t, w.Header().Get(requestIDHeader))

	var resp scheduleResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, domain.StraightLine, resp.Method)
	assert.Equal(t, "Straight-Line", resp.MethodName)
	require.Len(t, resp.Rows, 5)
	assert.Equal(t, 8200.0, resp.Rows[0].BookValue)
	assert.Equal(t, 150.0, resp.Rows[0].MonthlyDepreciation)
	assert.Equal(t, 9000.0, resp.TotalDepreciation)
}

func TestCalculateHandler_MethodByName(t *testing.T) {
	router := newTestRouter(t, nil)

	w := postJSON(t, router, "/api/depreciation/calculate",
		`{"method": "units-of-production", "cost": 10000, "salvage": 1000, "life": 3, "units_produced": 200, "total_units": 1000}`)

	require.Equal(t, http.StatusOK, w.Code)
	var resp scheduleResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	for _, row := range resp.Rows {
		assert.Equal(t, 1800.0, row.Depreciation)
	}
}

func TestCalculateHandler_InvalidRequest(t *testing.T) {
	router := newTestRouter(t, nil)

	bodies := map[string]string{
		"unknown method": `{"method": 6, "cost": 100, "life": 2}`,
		"uop no units":   `{"method": 3, "cost": 100, "life": 2}`,
		"life zero":      `{"method": 1, "cost": 100, "life": 0}`,
		"units overflow": `{"method": 3, "cost": 10000, "salvage": 1000, "life": 3, "units_produced": 1e300, "total_units": 1e-10}`,
	}
	for name, body := range bodies {
		t.Run(name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/depreciation/calculate", strings.NewReader(body))
			req.Header.Set("Content-Type", "application/json")
			req.Header.Set(requestIDHeader, "req-42")
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			require.Equal(t, http.StatusUnprocessableEntity, w.Code)
			var resp errorEnvelope
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.Equal(t, "invalid_request", resp.Error.Code)
			assert.Equal(t, domain.InvalidRequestMessage, resp.Error.Message)
			assert.Equal(t, "req-42", resp.RequestID)
		})
	}
}

func TestCalculateHandler_BadRequest(t *testing.T) {
	router := newTestRouter(t, nil)

	w := postJSON(t, router, "/api/depreciation/calculate", `{invalid-json}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCalculateHandler_UnsupportedMediaType(t *testing.T) {
	router := newTestRouter(t, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/depreciation/calculate",
		bytes.NewBufferString(`{"method": 1, "cost": 100, "life": 2}`))
	req.Header.Set("Content-Type", "text/plain")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnsupportedMediaType, w.Code)
}

func TestCalculateHandler_MethodNotAllowed(t *testing.T) {
	router := newTestRouter(t, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/depreciation/calculate", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
}

func TestMethodsHandler(t *testing.T) {
	router := newTestRouter(t, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/depreciation/methods", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var methods []domain.MethodInfo
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &methods))
	require.Len(t, methods, 5)
	assert.Equal(t, "double-declining-balance", methods[4].Slug)
}

func TestCompareHandler(t *testing.T) {
	router := newTestRouter(t, nil)

	w := postJSON(t, router, "/api/depreciation/compare",
		`{"cost": 10000, "salvage": 1000, "life": 4}`)

	require.Equal(t, http.StatusOK, w.Code)
	var result domain.ComparisonResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	require.Len(t, result.Methods, 4)
	assert.Equal(t, domain.SumOfYearsDigits, result.Methods[2].Method)
	assert.Equal(t, 3600.0, result.Methods[2].FirstYearDepreciation)

	w = postJSON(t, router, "/api/depreciation/compare", `{"cost": 10000, "life": 0}`)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestHealthAndMetrics(t *testing.T) {
	router := newTestRouter(t, nil)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())

	postJSON(t, router, "/api/depreciation/calculate", `{"method": 2, "cost": 100, "life": 2}`)

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "depreciation_calculator_calculations_total")
}

func TestRateLimitedRoutes(t *testing.T) {
	limiter := NewRateLimiter(2, time.Minute)
	router := newTestRouter(t, limiter)

	body := `{"method": 1, "cost": 100, "life": 2}`
	assert.Equal(t, http.StatusOK, postJSON(t, router, "/api/depreciation/calculate", body).Code)
	assert.Equal(t, http.StatusOK, postJSON(t, router, "/api/depreciation/calculate", body).Code)

	w := postJSON(t, router, "/api/depreciation/calculate", body)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "60", w.Header().Get("Retry-After"))

	// The catalog is not limited.
	req := httptest.NewRequest(http.MethodGet, "/api/depreciation/methods", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}
