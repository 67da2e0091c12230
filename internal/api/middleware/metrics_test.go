package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetricsMiddleware(t *testing.T) {
	httpRequestsTotal.Reset()
	httpRequestDuration.Reset()

	r := chi.NewRouter()
	r.Use(MetricsMiddleware())
	r.Get("/customer/{customerID}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("ok"))
	})

	for _, path := range []string{"/customer/1", "/customer/2", "/health"} {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	}

	expected := `
		# HELP customer_service_http_requests_total Total number of HTTP requests by route and status code.
		# TYPE customer_service_http_requests_total counter
		customer_service_http_requests_total{method="GET",route="/customer/{customerID}",status_code="404"} 2
		customer_service_http_requests_total{method="GET",route="/health",status_code="200"} 1
	`
	require.NoError(t, testutil.CollectAndCompare(httpRequestsTotal, strings.NewReader(expected)))
	assert.Equal(t, 2, testutil.CollectAndCount(httpRequestDuration))
}

func TestRoutePatternWithoutRouteContext(t *testing.T) {
	assert.Equal(t, unmatchedRoute, routePattern(httptest.NewRequest(http.MethodGet, "/x", nil)))
}
