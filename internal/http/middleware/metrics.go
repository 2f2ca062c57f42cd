package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/pactify-backend/internal/observability"
)

// streamRoutes hold their connection open; they count toward requests and
// inflight but not toward the latency histogram.
var streamRoutes = map[string]bool{
	"/api/sse/stream": true,
}

// Metrics records API traffic on m. A nil m disables it.
func Metrics(m *observability.Metrics) gin.HandlerFunc {
	if m == nil {
		return func(c *gin.Context) { c.Next() }
	}
	return func(c *gin.Context) {
		m.ApiInflightInc()
		start := time.Now()
		defer func() {
			m.ApiInflightDec()
			route := c.FullPath()
			if route == "" {
				route = "unmatched"
			}
			elapsed := time.Since(start)
			if streamRoutes[route] {
				elapsed = -1
			}
			m.ObserveAPI(c.Request.Method, route, strconv.Itoa(c.Writer.Status()), elapsed)
		}()
		c.Next()
	}
}
