package metrics_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/kashvi-shop/pkg/metrics"
)

func TestMiddlewareLabelsByRoutePattern(t *testing.T) {
	r := chi.NewRouter()
	r.Use(metrics.Middleware())
	r.Get("/widgets/{id}", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})

	counter := metrics.RequestTotal.WithLabelValues(http.MethodGet, "/widgets/{id}", "418")
	before := testutil.ToFloat64(counter)

	for _, id := range []string{"1", "2", "3"} {
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/widgets/"+id, nil))
	}

	assert.Equal(t, before+3, testutil.ToFloat64(counter))
	assert.Zero(t, testutil.ToFloat64(metrics.RequestInFlight))
}

func TestMiddlewareLabelsRootAndUnroutedRequests(t *testing.T) {
	r := chi.NewRouter()
	r.Use(metrics.Middleware())
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			if req.Header.Get("X-Block") != "" {
				w.WriteHeader(http.StatusTooManyRequests)
				return
			}
			next.ServeHTTP(w, req)
		})
	})
	r.Get("/", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusAccepted)
	})

	root := metrics.RequestTotal.WithLabelValues(http.MethodGet, "/", "202")
	blocked := metrics.RequestTotal.WithLabelValues(http.MethodGet, "unmatched", "429")
	rootBefore, blockedBefore := testutil.ToFloat64(root), testutil.ToFloat64(blocked)

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Block", "1")
	r.ServeHTTP(httptest.NewRecorder(), req)

	assert.Equal(t, rootBefore+1, testutil.ToFloat64(root))
	assert.Equal(t, blockedBefore+1, testutil.ToFloat64(blocked))
}

func TestObserveOrder(t *testing.T) {
	counter := metrics.OrdersPlaced.WithLabelValues("metrics_test")
	metrics.ObserveOrder("metrics_test", time.Now())
	assert.Equal(t, 1.0, testutil.ToFloat64(counter))
}

func TestHandlerExposesRegistry(t *testing.T) {
	metrics.CacheHits.WithLabelValues("memory").Inc()

	rec := httptest.NewRecorder()
	metrics.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "shop_cache_hits_total")
	assert.Contains(t, string(body), "go_goroutines")
}
