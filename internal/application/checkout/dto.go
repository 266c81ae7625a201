package checkout

import (
	checkoutdomain "checkout-server/internal/domain/checkout"
)

// SessionTemplate 全リクエストで共通のセッション内容
type SessionTemplate struct {
	PaymentMethodTypes []string
	LineItems          []*checkoutdomain.LineItem
	Mode               checkoutdomain.PaymentMode
	SuccessURL         string
	CancelURL          string
}

// Validate テンプレートから作るリクエストが有効か検証
func (t *SessionTemplate) Validate() error {
	return t.newSessionRequest(nil).Validate()
}

// newSessionRequest テンプレートからプロバイダー向けリクエストを作成
func (t *SessionTemplate) newSessionRequest(req *CreateSessionRequest) *checkoutdomain.SessionRequest {
	sr := &checkoutdomain.SessionRequest{
		PaymentMethodTypes: append([]string(nil), t.PaymentMethodTypes...),
		LineItems:          append([]*checkoutdomain.LineItem(nil), t.LineItems...),
		Mode:               t.Mode,
		SuccessURL:         t.SuccessURL,
		CancelURL:          t.CancelURL,
	}
	if req != nil && req.RequestID != "" {
		sr.Metadata = map[string]string{"request_id": req.RequestID}
	}
	return sr
}

// CreateSessionRequest セッション作成リクエスト
type CreateSessionRequest struct {
	RequestID string // 呼び出し元のリクエストID（プロバイダーのメタデータに記録）
}

// CreateSessionResponse セッション作成レスポンス
type CreateSessionResponse struct {
	SessionID string
	URL       string
}

// PublicConfigResponse フロントエンド向けの公開設定
type PublicConfigResponse struct {
	PublishableKey string
	ProductName    string
	UnitPrice      string
	Currency       string
	Quantity       int64
}
