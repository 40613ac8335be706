package middleware

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// GetLoggerFromContext returns the trace-aware logger stored by
// TraceLoggerMiddleware, or a nop logger outside a request.
func GetLoggerFromContext(c *fiber.Ctx) *zap.Logger {
	loggerIf := c.Locals("logger")
	if loggerIf != nil {
		if logger, ok := loggerIf.(*zap.Logger); ok {
			return logger
		}
	}

	return zap.NewNop()
}
