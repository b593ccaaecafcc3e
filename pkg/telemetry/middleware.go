package telemetry

import (
	"flightfinder/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/trace"
)

const (
	TraceIDKey = "trace_id"
	SpanIDKey  = "span_id"
)

// TraceLoggerMiddleware logs each request with the trace and span ids that
// otelgin put on the request context. Requests without a valid span pass
// through silently.
func TraceLoggerMiddleware(log logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		sc := trace.SpanFromContext(c.Request.Context()).SpanContext()
		if !sc.IsValid() {
			c.Next()
			return
		}

		traceID := sc.TraceID().String()
		spanID := sc.SpanID().String()
		c.Set(TraceIDKey, traceID)
		c.Set(SpanIDKey, spanID)

		log.Info("incoming request",
			logger.Field{Key: TraceIDKey, Value: traceID},
			logger.Field{Key: SpanIDKey, Value: spanID},
			logger.Field{Key: "method", Value: c.Request.Method},
			logger.Field{Key: "path", Value: c.Request.URL.Path},
		)

		c.Next()

		log.Info("request completed",
			logger.Field{Key: TraceIDKey, Value: traceID},
			logger.Field{Key: SpanIDKey, Value: spanID},
			logger.Field{Key: "status", Value: c.Writer.Status()},
			logger.Field{Key: "method", Value: c.Request.Method},
			logger.Field{Key: "path", Value: c.Request.URL.Path},
		)
	}
}
