package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/msaedi/instructly-sub007/internal/service"
)

// Metrics records per-request duration and status. The route template is
// used as the path label so instructor IDs don't explode cardinality.
func Metrics(metricsSvc *service.MetricsService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if metricsSvc == nil {
			c.Next()
			return
		}
		start := time.Now()
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = c.Request.URL.Path
		}
		metricsSvc.ObserveHTTPRequest(c.Request.Method, path, c.Writer.Status(), time.Since(start))
	}
}
