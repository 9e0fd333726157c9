package middleware

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"blogaulas/apperr"
	"blogaulas/metrics"
	"blogaulas/observability"
)

// ErrorHandler answers for the last error a handler attached with c.Error.
// Internal errors are logged with their cause and reported; the client only
// sees a generic message.
func ErrorHandler(log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}
		err := c.Errors.Last().Err
		kind := apperr.KindOf(err)
		metrics.Errors.WithLabelValues(kind.String()).Inc()

		fields := []zap.Field{
			zap.String("method", c.Request.Method),
			zap.String("route", c.FullPath()),
			zap.String("request_id", c.GetString(requestIDKey)),
			zap.Error(err),
		}
		if caller, ok := Caller(c); ok {
			fields = append(fields, zap.Uint("caller_id", caller.ID), zap.String("caller_role", string(caller.Role)))
		}

		if kind == apperr.Internal {
			log.Error("request failed", fields...)
			observability.CaptureErr(err, map[string]string{
				"route":      c.FullPath(),
				"request_id": c.GetString(requestIDKey),
			})
		} else {
			log.Debug("request rejected", append(fields, zap.String("kind", kind.String()))...)
		}

		if c.Writer.Written() {
			return
		}
		c.AbortWithStatusJSON(kind.Status(), gin.H{"error": apperr.PublicMessage(err)})
	}
}
