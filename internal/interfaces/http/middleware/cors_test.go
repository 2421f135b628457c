package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/printdesk/backend/internal/infrastructure/config"
	"github.com/stretchr/testify/assert"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestRouter(mw ...gin.HandlerFunc) *gin.Engine {
	router := gin.New()
	router.Use(mw...)
	router.GET("/test", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})
	return router
}

func corsConfig(origins ...string) config.HTTPConfig {
	return config.HTTPConfig{
		CORSAllowOrigins: origins,
		CORSAllowMethods: []string{"GET", "POST", "PATCH", "OPTIONS"},
		CORSAllowHeaders: []string{"Content-Type", "Authorization"},
	}
}

func TestCORS(t *testing.T) {
	tests := []struct {
		name        string
		origins     []string
		method      string
		origin      string
		wantStatus  int
		wantAllow   string
		wantCreds   string
		wantMethods string
	}{
		{"no origins configured", nil, http.MethodGet, "http://evil.example", http.StatusOK, "", "", ""},
		{"preflight without origins", nil, http.MethodOptions, "http://evil.example", http.StatusNoContent, "", "", ""},
		{"listed origin", []string{"http://localhost:5173", "https://painel.grafica.com.br"}, http.MethodGet, "https://painel.grafica.com.br", http.StatusOK, "https://painel.grafica.com.br", "true", "GET, POST, PATCH, OPTIONS"},
		{"unlisted origin", []string{"http://localhost:5173"}, http.MethodGet, "http://other.example", http.StatusOK, "", "", ""},
		{"listed preflight", []string{"http://localhost:5173"}, http.MethodOptions, "http://localhost:5173", http.StatusNoContent, "http://localhost:5173", "true", "GET, POST, PATCH, OPTIONS"},
		{"wildcard", []string{"*"}, http.MethodGet, "http://anything.example", http.StatusOK, "*", "", "GET, POST, PATCH, OPTIONS"},
		{"same origin request", []string{"*"}, http.MethodGet, "", http.StatusOK, "", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := newTestRouter(CORS(corsConfig(tt.origins...)))
			req := httptest.NewRequest(tt.method, "/test", nil)
			if tt.origin != "" {
				req.Header.Set("Origin", tt.origin)
			}
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Equal(t, tt.wantAllow, w.Header().Get("Access-Control-Allow-Origin"))
			assert.Equal(t, tt.wantCreds, w.Header().Get("Access-Control-Allow-Credentials"))
			assert.Equal(t, tt.wantMethods, w.Header().Get("Access-Control-Allow-Methods"))
		})
	}
}

func TestCORS_ExposesDownloadHeaders(t *testing.T) {
	router := newTestRouter(CORS(corsConfig("http://localhost:5173")))
	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Contains(t, w.Header().Get("Access-Control-Expose-Headers"), "Content-Disposition")
	assert.Equal(t, "43200", w.Header().Get("Access-Control-Max-Age"))
	assert.Equal(t, "Origin", w.Header().Get("Vary"))
}
