package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func counterValue(t *testing.T, c prometheus.Counter) float64 {
	t.Helper()
	m := &dto.Metric{}
	require.NoError(t, c.Write(m))
	return m.GetCounter().GetValue()
}

func TestGinPrometheusMiddleware_UsesRouteTemplate(t *testing.T) {
	router := gin.New()
	router.Use(GinPrometheusMiddleware("metrics-test"))
	router.GET("/api/pages/categories/:categorySlug", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	counter := HttpRequestsTotal.WithLabelValues("metrics-test", http.MethodGet, "/api/pages/categories/:categorySlug", "200")
	before := counterValue(t, counter)

	for _, slug := range []string{"baby-hampers", "wedding-hampers"} {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/pages/categories/"+slug, nil))
		require.Equal(t, http.StatusOK, w.Code)
	}

	assert.Equal(t, before+2, counterValue(t, counter))
}

func TestGinPrometheusMiddleware_UnmatchedAndSkipped(t *testing.T) {
	router := gin.New()
	router.Use(GinPrometheusMiddleware("metrics-test-skip"))
	router.GET("/health", func(c *gin.Context) { c.Status(http.StatusOK) })

	unmatched := HttpRequestsTotal.WithLabelValues("metrics-test-skip", http.MethodGet, "unmatched", "404")
	health := HttpRequestsTotal.WithLabelValues("metrics-test-skip", http.MethodGet, "/health", "200")
	beforeUnmatched := counterValue(t, unmatched)

	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/nope/123", nil))
	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, beforeUnmatched+1, counterValue(t, unmatched))
	assert.Zero(t, counterValue(t, health))
}

func TestUpstreamTimer_Fail(t *testing.T) {
	counter := UpstreamErrors.WithLabelValues("metrics-test", http.MethodGet, "products", "status")
	before := counterValue(t, counter)

	timer := NewUpstreamTimer("metrics-test", http.MethodGet, "products")
	timer.Fail("status")
	timer.ObserveDuration()

	assert.Equal(t, before+1, counterValue(t, counter))
}
