package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/grocery/backend/internal/infrastructure/telemetry"
)

// unmatchedRoute labels requests that matched no route so 404 scans
// cannot blow up metric cardinality
const unmatchedRoute = "unmatched"

// HTTPMetrics records count, latency and in-flight requests per route.
// A nil recorder returns a pass-through middleware.
func HTTPMetrics(metrics *telemetry.HTTPMetrics) gin.HandlerFunc {
	if metrics == nil {
		return func(c *gin.Context) { c.Next() }
	}
	return func(c *gin.Context) {
		done := metrics.Begin(c.Request.Context(), c.Request.Method)
		c.Next()
		done(routePattern(c), c.Writer.Status())
	}
}

func routePattern(c *gin.Context) string {
	if route := c.FullPath(); route != "" {
		return route
	}
	return unmatchedRoute
}
