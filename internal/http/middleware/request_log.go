package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/yungbote/pactify-backend/internal/platform/ctxutil"
	"github.com/yungbote/pactify-backend/internal/platform/logger"
)

// quietRoutes are logged at debug level when they succeed.
var quietRoutes = map[string]bool{
	"/healthcheck":    true,
	"/api/sse/stream": true,
}

// routeIDParams are path params worth a log field of their own.
var routeIDParams = map[string]string{
	"id":  "resource_id",
	"wid": "wizard_id",
}

// RequestLogger writes one line per request after the handler chain returns.
func RequestLogger(log *logger.Logger) gin.HandlerFunc {
	if log == nil {
		return func(c *gin.Context) { c.Next() }
	}
	log = log.With("component", "HTTP")
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		route := c.FullPath()
		fields := requestFields(c, route, status, time.Since(start))

		switch {
		case status >= 500:
			log.Error("HTTP request", fields...)
		case status >= 400:
			log.Warn("HTTP request", fields...)
		case quietRoutes[route]:
			log.Debug("HTTP request", fields...)
		default:
			log.Info("HTTP request", fields...)
		}
	}
}

func requestFields(c *gin.Context, route string, status int, elapsed time.Duration) []interface{} {
	if route == "" {
		route = c.Request.URL.Path
	}
	fields := []interface{}{
		"method", c.Request.Method,
		"route", route,
		"status", status,
		"bytes", c.Writer.Size(),
		"duration_ms", elapsed.Milliseconds(),
	}
	for _, p := range c.Params {
		if key, ok := routeIDParams[p.Key]; ok {
			fields = append(fields, key, p.Value)
		}
	}
	if td := ctxutil.GetTraceData(c.Request.Context()); td != nil {
		fields = append(fields, "trace_id", td.TraceID, "request_id", td.RequestID)
	}
	if rd := ctxutil.GetRequestData(c.Request.Context()); rd != nil && rd.UserID != uuid.Nil {
		fields = append(fields, "user_id", rd.UserID.String())
		if rd.SessionID != uuid.Nil {
			fields = append(fields, "session_id", rd.SessionID.String())
		}
	}
	if len(c.Errors) > 0 {
		fields = append(fields, "errors", c.Errors.String())
	}
	return fields
}
