package http

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// CORSMiddleware grants configured frontend origins cross-origin access to
// the discovery API. The API is cookie-free and only serves GET and POST, so
// the grant is deliberately narrow: no credentials, no extra methods.
func CORSMiddleware(allowedOrigins []string) gin.HandlerFunc {
	return func(c *gin.Context) {
		origin := c.Request.Header.Get("Origin")

		if originAllowed(origin, allowedOrigins) {
			header := c.Writer.Header()
			header.Set("Access-Control-Allow-Origin", origin)
			header.Set("Vary", "Origin")
			header.Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
			header.Set("Access-Control-Allow-Headers", "Content-Type")
			header.Set("Access-Control-Max-Age", "3600")
		}

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

// originAllowed matches the Origin header against the configured patterns.
// A pattern is an exact origin, "*", or contains a single "*" wildcard
// segment, e.g. "https://*.vendorscout.io".
func originAllowed(origin string, allowedOrigins []string) bool {
	if origin == "" {
		return false
	}

	for _, pattern := range allowedOrigins {
		if pattern == "*" || pattern == origin {
			return true
		}
		star := strings.Index(pattern, "*")
		if star < 0 {
			continue
		}
		prefix, suffix := pattern[:star], pattern[star+1:]
		if len(origin) >= len(prefix)+len(suffix) &&
			strings.HasPrefix(origin, prefix) &&
			strings.HasSuffix(origin, suffix) {
			return true
		}
	}
	return false
}

// LoggerMiddleware logs requests
func LoggerMiddleware() gin.HandlerFunc {
	return gin.Logger()
}

// RecoveryMiddleware recovers from handler panics
func RecoveryMiddleware() gin.HandlerFunc {
	return gin.Recovery()
}
