package middleware

import (
	"errors"
	"net/http"
	"time"

	otelinfra "checkout-server/internal/infrastructure/observability/otel"

	"github.com/labstack/echo/v4"
)

// MetricsMiddleware メトリクス記録ミドルウェア
func MetricsMiddleware(metrics *otelinfra.Metrics) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			ctx := c.Request().Context()

			// 次のハンドラーを実行
			err := next(c)

			// 未登録パスでカーディナリティが増えないようルートパスを使う
			path := c.Path()
			if path == "" {
				path = "unmatched"
			}

			metrics.RecordRequest(ctx, c.Request().Method, path)

			// レスポンス時間を記録（秒単位）
			duration := time.Since(start).Seconds()
			metrics.RecordResponseTime(ctx, c.Request().Method, path, duration)

			// 4xx, 5xxエラーの場合のみ記録
			statusCode := c.Response().Status
			if err != nil && statusCode < http.StatusBadRequest {
				var httpErr *echo.HTTPError
				if errors.As(err, &httpErr) {
					statusCode = httpErr.Code
				} else {
					statusCode = http.StatusInternalServerError
				}
			}
			if statusCode >= http.StatusBadRequest {
				errorType := "client_error"
				if statusCode >= http.StatusInternalServerError {
					errorType = "server_error"
				}
				metrics.RecordError(ctx, errorType)
			}

			return err
		}
	}
}
