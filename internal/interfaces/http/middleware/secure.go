package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
)

// swagger UI needs inline scripts and styles plus data: images
const contentSecurityPolicy = "default-src 'self'; script-src 'self' 'unsafe-inline'; " +
	"style-src 'self' 'unsafe-inline'; img-src 'self' data: https:; font-src 'self' data:; " +
	"connect-src 'self'; frame-ancestors 'none'; base-uri 'self'"

// Secure sets the browser hardening headers. A positive hstsMaxAge also
// sends Strict-Transport-Security, which only belongs behind HTTPS.
func Secure(hstsMaxAge time.Duration) gin.HandlerFunc {
	headers := map[string]string{
		"X-Frame-Options":         "DENY",
		"X-Content-Type-Options":  "nosniff",
		"Referrer-Policy":         "strict-origin-when-cross-origin",
		"Content-Security-Policy": contentSecurityPolicy,
	}
	if hstsMaxAge > 0 {
		headers["Strict-Transport-Security"] = "max-age=" + strconv.FormatInt(int64(hstsMaxAge.Seconds()), 10) + "; includeSubDomains"
	}

	return func(c *gin.Context) {
		h := c.Writer.Header()
		for k, v := range headers {
			h.Set(k, v)
		}
		c.Next()
	}
}
