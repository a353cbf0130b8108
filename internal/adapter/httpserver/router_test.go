package httpserver

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Maron09/Product-Store/internal/platform/logger"
	"github.com/Maron09/Product-Store/internal/platform/metrics"
	"github.com/Maron09/Product-Store/internal/token"
)

func TestRouter_LogoutRequiresAccessToken(t *testing.T) {
	router := NewRouter(RouterDeps{
		Tokens:  token.NewManager("secret", time.Minute, time.Hour),
		Metrics: metrics.NewManager("test"),
		Log:     logger.NewNoOp(),
	})

	req := httptest.NewRequest(http.MethodPost, "/api/auth/logout", strings.NewReader(`{"refresh":"x"}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequestLogger_LabelsByRoutePattern(t *testing.T) {
	m := metrics.NewManager("test")

	r := chi.NewRouter()
	r.Use(RequestLogger(logger.NewNoOp(), m))
	r.Get("/products/{id}", func(w http.ResponseWriter, r *http.Request) {
		respondOK(w, http.StatusOK, "ok", nil)
	})

	for _, path := range []string{"/products/1", "/products/2"} {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		require.Equal(t, http.StatusOK, rec.Code)
	}

	// Two distinct product IDs collapse into a single series.
	assert.Equal(t, 1, testutil.CollectAndCount(m.HTTPRequestLatency))
}
