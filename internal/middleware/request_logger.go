package middleware

import (
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

const CtxLoggerKey = "logger" // *zap.Logger

// リクエストごとのアクセスログ
func RequestLogger(log *zap.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			req := c.Request()

			// RequestIDミドルウェアの後に置く
			requestID := c.Response().Header().Get(echo.HeaderXRequestID)
			reqLogger := log.With(
				zap.String("request_id", requestID),
				zap.String("method", req.Method),
				zap.String("path", req.URL.Path),
			)
			c.Set(CtxLoggerKey, reqLogger)

			err := next(c)
			if err != nil {
				// ステータスを確定させる
				c.Error(err)
			}

			status := c.Response().Status
			fields := []zap.Field{
				zap.Int("status", status),
				zap.Duration("latency", time.Since(start)),
				zap.String("ip", c.RealIP()),
			}
			switch {
			case status >= 500:
				reqLogger.Error("http request", fields...)
			case status >= 400:
				reqLogger.Warn("http request", fields...)
			default:
				reqLogger.Info("http request", fields...)
			}
			return nil
		}
	}
}

// リクエストのロガー（無ければNop）
func LoggerFrom(c echo.Context) *zap.Logger {
	if l, ok := c.Get(CtxLoggerKey).(*zap.Logger); ok {
		return l
	}
	return zap.NewNop()
}
