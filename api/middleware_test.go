package api

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rpupo63/research-lab-backend/errs"
)

func TestRecoverPanics(t *testing.T) {
	handler := recoverPanics(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("nil map write")
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/research", nil))

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"error":"internal server error","status":"error"}`, rec.Body.String())
}

func TestWriteError(t *testing.T) {
	responder := NewResponder(zerolog.Nop())

	t.Run("unexpected errors are generic", func(t *testing.T) {
		rec := httptest.NewRecorder()
		responder.WriteError(rec, errors.New("dial tcp 10.0.0.3:5432: connect: connection refused"))

		require.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.JSONEq(t, `{"error":"Internal Server Error","status":"error"}`, rec.Body.String())
	})

	t.Run("client errors carry field and details", func(t *testing.T) {
		rec := httptest.NewRecorder()
		responder.WriteError(rec, errs.NewMissingRequiredFieldError("title"))

		require.Equal(t, http.StatusBadRequest, rec.Code)
		assert.JSONEq(t, `{"error":"missing required field: title","status":"error","field":"title","details":"title is required"}`, rec.Body.String())
	})

	t.Run("server errors hide details", func(t *testing.T) {
		rec := httptest.NewRecorder()
		responder.WriteError(rec, errs.NewDatabaseError("list", "project", errors.New("dial tcp: connection refused")))

		require.Equal(t, http.StatusServiceUnavailable, rec.Code)
		assert.JSONEq(t, `{"error":"database connection failed","status":"error"}`, rec.Body.String())
	})
}

func TestHealth(t *testing.T) {
	api := newTestAPI(t, nil, nil)

	rec := api.do(t, http.MethodGet, "/health", nil)
	requireStatus(t, rec, http.StatusOK)
	health := decode[HealthResponse](t, rec)
	assert.Equal(t, "ok", health.Status)
	assert.GreaterOrEqual(t, health.UptimeSeconds, int64(59))
}

func TestMetrics(t *testing.T) {
	api := newTestAPI(t, nil, nil)
	requireStatus(t, api.do(t, http.MethodGet, "/research", nil), http.StatusOK)
	requireStatus(t, api.do(t, http.MethodGet, "/research/42", nil), http.StatusNotFound)

	rec := api.do(t, http.MethodGet, "/metrics", nil)
	requireStatus(t, rec, http.StatusOK)
	assert.Contains(t, rec.Body.String(), `research_lab_http_requests_total{method="GET",route="/research",status="200"} 1`)
	assert.Contains(t, rec.Body.String(), `research_lab_http_requests_total{method="GET",route="/research/{id}",status="404"} 1`)

	t.Run("recovered panics are counted", func(t *testing.T) {
		api := newTestAPI(t, nil, nil)
		api.router.Get("/boom", func(w http.ResponseWriter, r *http.Request) {
			panic("nil map write")
		})

		requireStatus(t, api.do(t, http.MethodGet, "/boom", nil), http.StatusInternalServerError)

		rec := api.do(t, http.MethodGet, "/metrics", nil)
		requireStatus(t, rec, http.StatusOK)
		assert.Contains(t, rec.Body.String(), `research_lab_http_requests_total{method="GET",route="/boom",status="500"} 1`)
	})

	t.Run("disabled", func(t *testing.T) {
		api := newTestAPI(t, map[string]string{"METRICS_ENABLED": "false"}, nil)
		requireStatus(t, api.do(t, http.MethodGet, "/metrics", nil), http.StatusNotFound)
	})
}

func TestCORS(t *testing.T) {
	api := newTestAPI(t, map[string]string{"ACCEPTED_ORIGINS": "https://lab.example.org"}, nil)

	req := httptest.NewRequest(http.MethodOptions, "/research", nil)
	req.Header.Set("Origin", "https://lab.example.org")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rec := httptest.NewRecorder()
	api.router.ServeHTTP(rec, req)

	assert.Equal(t, "https://lab.example.org", rec.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodGet, "/research", nil)
	req.Header.Set("Origin", "https://elsewhere.example.com")
	rec = httptest.NewRecorder()
	api.router.ServeHTTP(rec, req)

	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
}
