package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/simak-gateway/internal/service"
)

// Scrape and probe endpoints are excluded from request metrics, matching the
// paths the request logger keeps quiet. Instrumenting /metrics would have the
// scraper inflate its own series.
var unmeteredPaths = map[string]struct{}{
	"/health":  {},
	"/ready":   {},
	"/metrics": {},
}

// Metrics records duration and count for every completed request. The route
// template from gin is preferred over the raw URL so path parameters do not
// fan out into new label values.
func Metrics(metricsSvc *service.MetricsService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if metricsSvc == nil {
			c.Next()
			return
		}

		start := time.Now()
		c.Next()

		if _, ok := unmeteredPaths[c.Request.URL.Path]; ok {
			return
		}

		path := c.FullPath()
		if path == "" {
			path = c.Request.URL.Path
		}
		metricsSvc.ObserveHTTPRequest(c.Request.Method, path, c.Writer.Status(), time.Since(start))
	}
}
