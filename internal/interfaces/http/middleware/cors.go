package middleware

import (
	"net/http"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/printdesk/backend/internal/infrastructure/config"
)

const corsMaxAge = 12 * time.Hour

// headers the browser app reads from responses
var corsExposed = []string{RequestIDHeader, "Content-Disposition", "X-RateLimit-Limit", "X-RateLimit-Remaining"}

// CORS answers cross-origin requests from the configured origins. With no
// origins configured nothing is allowed. "*" allows every origin but then
// credentials are not advertised. Preflight requests always end here.
func CORS(cfg config.HTTPConfig) gin.HandlerFunc {
	wildcard := slices.Contains(cfg.CORSAllowOrigins, "*")
	origins := make(map[string]bool, len(cfg.CORSAllowOrigins))
	for _, o := range cfg.CORSAllowOrigins {
		origins[o] = true
	}
	static := map[string]string{
		"Access-Control-Allow-Methods":  strings.Join(cfg.CORSAllowMethods, ", "),
		"Access-Control-Allow-Headers":  strings.Join(cfg.CORSAllowHeaders, ", "),
		"Access-Control-Expose-Headers": strings.Join(corsExposed, ", "),
		"Access-Control-Max-Age":        strconv.Itoa(int(corsMaxAge.Seconds())),
	}

	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		h := c.Writer.Header()
		switch {
		case origin == "":
		case wildcard:
			h.Set("Access-Control-Allow-Origin", "*")
		case origins[origin]:
			h.Set("Access-Control-Allow-Origin", origin)
			h.Set("Access-Control-Allow-Credentials", "true")
			h.Add("Vary", "Origin")
		}
		if h.Get("Access-Control-Allow-Origin") != "" {
			for k, v := range static {
				h.Set(k, v)
			}
		}

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}
