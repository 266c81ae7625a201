package middleware

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"checkout-server/internal/domain/checkout"
	otelinfra "checkout-server/internal/infrastructure/observability/otel"
)

// ErrorResponse エラーレスポンス
type ErrorResponse struct {
	Error     string `json:"error"`
	Message   string `json:"message"`
	RequestID string `json:"request_id,omitempty"` // 決済プロバイダーのリクエストID
}

// errorMapping ドメインエラーとHTTPレスポンスの対応
type errorMapping struct {
	target  error
	status  int
	code    string
	message string
}

// checkoutErrorMappings 先頭から順に評価する
var checkoutErrorMappings = []errorMapping{
	{
		target:  checkout.ErrProviderAuthentication,
		status:  http.StatusForbidden,
		code:    "payment_provider_auth_failed",
		message: "The payment provider rejected the configured credentials",
	},
	{
		target:  checkout.ErrProviderPermission,
		status:  http.StatusForbidden,
		code:    "payment_provider_permission_denied",
		message: "The configured credentials are not allowed to create checkout sessions",
	},
	{
		target:  checkout.ErrProviderRejected,
		status:  http.StatusBadGateway,
		code:    "payment_provider_rejected",
		message: "The payment provider rejected the checkout session request",
	},
	{
		target:  checkout.ErrProviderRateLimited,
		status:  http.StatusServiceUnavailable,
		code:    "payment_provider_rate_limited",
		message: "The payment provider is rate limiting requests, try again later",
	},
	{
		target:  checkout.ErrProviderUnavailable,
		status:  http.StatusServiceUnavailable,
		code:    "payment_provider_unavailable",
		message: "The payment provider could not be reached",
	},
	{
		target:  checkout.ErrProviderTimeout,
		status:  http.StatusGatewayTimeout,
		code:    "payment_provider_timeout",
		message: "The payment provider did not respond in time",
	},
	{
		target:  checkout.ErrInvalidLineItem,
		status:  http.StatusInternalServerError,
		code:    "invalid_line_item",
		message: "The configured line item is invalid",
	},
	{
		target:  checkout.ErrInvalidSessionRequest,
		status:  http.StatusInternalServerError,
		code:    "invalid_checkout_session",
		message: "The configured checkout session is invalid",
	},
}

// ErrorHandlerMiddleware エラーハンドリングミドルウェア
func ErrorHandlerMiddleware(logger *otelinfra.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			err := next(c)
			if err == nil {
				return nil
			}

			// エラーハンドリング
			return handleError(c, err, logger)
		}
	}
}

// handleError エラーを処理して適切なHTTPレスポンスを返す
func handleError(c echo.Context, err error, logger *otelinfra.Logger) error {
	ctx := c.Request().Context()

	// レスポンス送信済みの場合は書き込めない
	if c.Response().Committed {
		logger.Error(ctx, "Error after response was committed", err, map[string]interface{}{
			"path": c.Request().URL.Path,
		})
		return nil
	}

	// ドメインエラーの判定と処理
	for _, m := range checkoutErrorMappings {
		if !errors.Is(err, m.target) {
			continue
		}
		fields := map[string]interface{}{
			"error":       err.Error(),
			"error_code":  m.code,
			"status_code": m.status,
		}
		if m.status >= http.StatusInternalServerError {
			logger.Error(ctx, "Checkout session creation failed", nil, fields)
		} else {
			logger.Warn(ctx, "Checkout session creation failed", fields)
		}

		resp := ErrorResponse{
			Error:   m.code,
			Message: m.message,
		}
		var pe *checkout.ProviderError
		if errors.As(err, &pe) {
			resp.RequestID = pe.RequestID
		}
		return c.JSON(m.status, resp)
	}

	// EchoのHTTPエラー
	var httpErr *echo.HTTPError
	if errors.As(err, &httpErr) {
		logger.Warn(ctx, "HTTP error", map[string]interface{}{
			"status_code": httpErr.Code,
			"message":     httpErr.Message,
		})
		message := ""
		if msg, ok := httpErr.Message.(string); ok {
			message = msg
		} else {
			message = http.StatusText(httpErr.Code)
		}
		return c.JSON(httpErr.Code, ErrorResponse{
			Error:   http.StatusText(httpErr.Code),
			Message: message,
		})
	}

	// 予期しないエラー
	logger.Error(ctx, "Internal server error", err, map[string]interface{}{
		"path": c.Request().URL.Path,
	})
	return c.JSON(http.StatusInternalServerError, ErrorResponse{
		Error:   "internal_server_error",
		Message: "An unexpected error occurred",
	})
}
