package ui

import (
	"strconv"
	"time"

	"gosurvey/internal/logging"
	"gosurvey/internal/metrics"

	"github.com/gin-gonic/gin"
)

// requestMetrics records latency and status per route
func requestMetrics(logger *logging.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		elapsed := time.Since(start)
		code := strconv.Itoa(c.Writer.Status())
		metrics.HTTPRequests.WithLabelValues(c.Request.Method, route, code).Inc()
		metrics.HTTPLatency.WithLabelValues(c.Request.Method, route).Observe(elapsed.Seconds())
		logger.Debug("[HTTP] %s %s %s %s", c.Request.Method, c.Request.URL.Path, code, elapsed.Round(time.Microsecond))
	}
}
