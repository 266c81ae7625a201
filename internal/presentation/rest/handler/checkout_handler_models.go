package handler

// CreateCheckoutSessionResponse チェックアウトセッション作成レスポンス
// @Description チェックアウトセッション作成レスポンス
type CreateCheckoutSessionResponse struct {
	ID  string `json:"id" example:"cs_test_a1b2c3"`
	URL string `json:"url,omitempty" example:"https://checkout.stripe.com/c/pay/cs_test_a1b2c3"`
}

// CheckoutConfigResponse フロントエンド向け公開設定
// @Description フロントエンド向け公開設定
type CheckoutConfigResponse struct {
	PublishableKey string `json:"publishableKey" example:"pk_test_123"`
	ProductName    string `json:"productName" example:"T-shirt"`
	UnitPrice      string `json:"unitPrice" example:"20.00"`
	Currency       string `json:"currency" example:"usd"`
	Quantity       int64  `json:"quantity" example:"1"`
}

// ErrorResponse エラーレスポンス
// @Description エラーレスポンス
type ErrorResponse struct {
	Error     string `json:"error" example:"payment_provider_auth_failed"`
	Message   string `json:"message" example:"The payment provider rejected the configured credentials"`
	RequestID string `json:"request_id,omitempty" example:"req_abc123"`
}
