package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPMetricsRecordsRoutePattern(t *testing.T) {
	metrics := NewHTTPMetrics()

	r := chi.NewRouter()
	r.Use(metrics.Handler)
	r.Get("/projects/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	for _, id := range []string{"a", "b", "c"} {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/projects/"+id, nil))
		require.Equal(t, http.StatusOK, rec.Code)
	}

	rec := httptest.NewRecorder()
	metrics.Exposition().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	body := rec.Body.String()
	// Requests are aggregated under the route pattern, not the raw path.
	assert.Contains(t, body, `http_requests_total{method="GET",path="/projects/{id}",status="200"} 3`)
	assert.False(t, strings.Contains(body, `path="/projects/a"`))
}

func TestHTTPMetricsPrivateRegistries(t *testing.T) {
	// Two instances must not collide on registration.
	first := NewHTTPMetrics()
	second := NewHTTPMetrics()
	assert.NotNil(t, first)
	assert.NotNil(t, second)
}
