package middleware

import (
	"net/http"
	"net/http/httptest"
	"runtime/pprof"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

type capturedLabels struct {
	method, route, controller string
	ok                        bool
}

func profilingRouter(cfg ProfilingConfig, route string, got *capturedLabels) *gin.Engine {
	router := gin.New()
	router.Use(Profiling(cfg))
	router.GET(route, func(c *gin.Context) {
		ctx := c.Request.Context()
		got.method, got.ok = pprof.Label(ctx, ProfilingLabelMethod)
		got.route, _ = pprof.Label(ctx, ProfilingLabelRoute)
		got.controller, _ = pprof.Label(ctx, ProfilingLabelController)
		c.Status(http.StatusOK)
	})
	return router
}

func TestProfiling_LabelsRequestContext(t *testing.T) {
	var got capturedLabels
	router := profilingRouter(DefaultProfilingConfig(), "/api/v1/orders/:id/pdf", &got)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/orders/abc/pdf", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, got.ok)
	assert.Equal(t, http.MethodGet, got.method)
	assert.Equal(t, "/api/v1/orders/:id/pdf", got.route)
	assert.Equal(t, "orders", got.controller)
}

func TestProfiling_SkipsHealthAndDocs(t *testing.T) {
	for _, path := range []string{"/api/v1/health", "/swagger/index.html"} {
		t.Run(path, func(t *testing.T) {
			var got capturedLabels
			router := profilingRouter(DefaultProfilingConfig(), path, &got)

			router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, path, nil))
			assert.False(t, got.ok)
		})
	}
}

func TestProfiling_Disabled(t *testing.T) {
	var got capturedLabels
	router := profilingRouter(ProfilingConfig{Enabled: false}, "/api/v1/customers", &got)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/customers", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.False(t, got.ok)
}

func TestControllerFromRoute(t *testing.T) {
	tests := []struct {
		route string
		want  string
	}{
		{"/api/v1/products", "products"},
		{"/api/v1/products/:id", "products"},
		{"/api/v1/orders/:id/payments", "orders"},
		{"/api/v2/reports/revenue/pdf", "reports"},
		{"/health", "health"},
		{"unknown", ""},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.route, func(t *testing.T) {
			assert.Equal(t, tt.want, controllerFromRoute(tt.route))
		})
	}
}

func TestIsVersionSegment(t *testing.T) {
	assert.True(t, isVersionSegment("v1"))
	assert.True(t, isVersionSegment("V12"))
	assert.False(t, isVersionSegment("v"))
	assert.False(t, isVersionSegment("vx"))
	assert.False(t, isVersionSegment("orders"))
}
