package checkout

import (
	"fmt"
)

// PaymentMode チェックアウトセッションのモード
type PaymentMode string

const (
	PaymentModePayment      PaymentMode = "payment"      // 単発決済
	PaymentModeSubscription PaymentMode = "subscription" // 定期課金
	PaymentModeSetup        PaymentMode = "setup"        // 支払い方法の登録のみ
)

// String 文字列表現を返す
func (m PaymentMode) String() string {
	return string(m)
}

// Valid 有効なモードかどうかを返す
func (m PaymentMode) Valid() bool {
	switch m {
	case PaymentModePayment, PaymentModeSubscription, PaymentModeSetup:
		return true
	default:
		return false
	}
}

// SessionRequest チェックアウトセッション作成の入力
type SessionRequest struct {
	PaymentMethodTypes []string          `validate:"min=1,dive,required"`
	LineItems          []*LineItem       `validate:"min=1,dive,required"`
	Mode               PaymentMode       `validate:"required"`
	SuccessURL         string            `validate:"required,url"`
	CancelURL          string            `validate:"required,url"`
	Metadata           map[string]string `validate:"-"`
}

// Validate リクエストを検証
func (r *SessionRequest) Validate() error {
	if r == nil {
		return fmt.Errorf("%w: request is nil", ErrInvalidSessionRequest)
	}
	if err := validate.Struct(r); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidSessionRequest, err)
	}
	if !r.Mode.Valid() {
		return fmt.Errorf("%w: unknown mode %q", ErrInvalidSessionRequest, r.Mode)
	}
	return nil
}

// Session プロバイダーが発行したチェックアウトセッション
type Session struct {
	id  string
	url string
}

// NewSession 新しいSessionを作成
func NewSession(id, url string) *Session {
	return &Session{id: id, url: url}
}

// ID セッションIDを返す
func (s *Session) ID() string {
	return s.id
}

// URL ホスト型チェックアウトページのURLを返す
func (s *Session) URL() string {
	return s.url
}
