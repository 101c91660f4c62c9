package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestClassifyStatus(t *testing.T) {
	assert.Equal(t, "2xx", classifyStatus(http.StatusCreated))
	assert.Equal(t, "3xx", classifyStatus(http.StatusFound))
	assert.Equal(t, "4xx", classifyStatus(http.StatusNotFound))
	assert.Equal(t, "5xx", classifyStatus(http.StatusServiceUnavailable))
	assert.Equal(t, "unknown:99", classifyStatus(99))
}

func TestMiddlewareUsesRouteTemplate(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(Middleware())
	r.GET("/products/:id", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	before := testutil.ToFloat64(httpRequestsTotal.WithLabelValues("GET", "/products/:id", "2xx"))

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/products/42", nil)
	r.ServeHTTP(w, req)

	after := testutil.ToFloat64(httpRequestsTotal.WithLabelValues("GET", "/products/:id", "2xx"))
	assert.Equal(t, before+1, after)
}

func TestCacheCounters(t *testing.T) {
	hits := testutil.ToFloat64(catalogCacheTotal.WithLabelValues("hit"))
	CacheHit()
	assert.Equal(t, hits+1, testutil.ToFloat64(catalogCacheTotal.WithLabelValues("hit")))
}
