package handler

import (
	"net/http"

	checkoutapp "checkout-server/internal/application/checkout"

	"github.com/labstack/echo/v4"
)

// CheckoutHandler チェックアウト関連ハンドラー
type CheckoutHandler struct {
	checkoutService *checkoutapp.CheckoutApplicationService
}

// NewCheckoutHandler 新しいCheckoutHandlerを作成
func NewCheckoutHandler(checkoutService *checkoutapp.CheckoutApplicationService) *CheckoutHandler {
	return &CheckoutHandler{
		checkoutService: checkoutService,
	}
}

// CreateCheckoutSession チェックアウトセッション作成ハンドラー
// @Summary チェックアウトセッションを作成
// @Description 固定の商品でStripeのチェックアウトセッションを作成します。リクエストボディは使用しません。呼び出すたびに新しいセッションが作成されます
// @Tags checkout
// @Produce json
// @Success 200 {object} CreateCheckoutSessionResponse "セッション作成成功"
// @Failure 403 {object} ErrorResponse "決済プロバイダーの認証エラー"
// @Failure 405 {object} ErrorResponse "POST以外のメソッド"
// @Failure 500 {object} ErrorResponse "商品設定が不正"
// @Failure 502 {object} ErrorResponse "決済プロバイダーがリクエストを拒否"
// @Failure 503 {object} ErrorResponse "決済プロバイダーに接続できない"
// @Failure 504 {object} ErrorResponse "決済プロバイダーのタイムアウト"
// @Router /create-checkout-session [post]
func (h *CheckoutHandler) CreateCheckoutSession(c echo.Context) error {
	// ボディは読まない。RequestIDミドルウェアが付与したIDだけを引き継ぐ
	req := &checkoutapp.CreateSessionRequest{
		RequestID: c.Response().Header().Get(echo.HeaderXRequestID),
	}

	resp, err := h.checkoutService.CreateSession(c.Request().Context(), req)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, CreateCheckoutSessionResponse{
		ID:  resp.SessionID,
		URL: resp.URL,
	})
}

// GetConfig フロントエンド向け公開設定取得ハンドラー
// @Summary 公開設定を取得
// @Description Stripe.jsの初期化に使う公開可能キーと商品情報を返します
// @Tags checkout
// @Produce json
// @Success 200 {object} CheckoutConfigResponse "取得成功"
// @Router /checkout-config [get]
func (h *CheckoutHandler) GetConfig(c echo.Context) error {
	resp := h.checkoutService.PublicConfig(c.Request().Context())

	return c.JSON(http.StatusOK, CheckoutConfigResponse{
		PublishableKey: resp.PublishableKey,
		ProductName:    resp.ProductName,
		UnitPrice:      resp.UnitPrice,
		Currency:       resp.Currency,
		Quantity:       resp.Quantity,
	})
}
