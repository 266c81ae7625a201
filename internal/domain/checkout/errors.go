package checkout

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidLineItem 無効な明細エラー
	ErrInvalidLineItem = errors.New("invalid line item")
	// ErrInvalidSessionRequest 無効なセッション作成リクエストエラー
	ErrInvalidSessionRequest = errors.New("invalid checkout session request")

	// ErrProviderAuthentication 決済プロバイダーがAPIキーを拒否したエラー
	ErrProviderAuthentication = errors.New("payment provider authentication failed")
	// ErrProviderPermission APIキーに権限がないエラー
	ErrProviderPermission = errors.New("payment provider permission denied")
	// ErrProviderRejected 決済プロバイダーがリクエストを拒否したエラー
	ErrProviderRejected = errors.New("payment provider rejected the request")
	// ErrProviderRateLimited 決済プロバイダーのレート制限エラー
	ErrProviderRateLimited = errors.New("payment provider rate limited the request")
	// ErrProviderUnavailable 決済プロバイダーに到達できないエラー
	ErrProviderUnavailable = errors.New("payment provider unavailable")
	// ErrProviderTimeout 決済プロバイダー呼び出しのタイムアウト
	ErrProviderTimeout = errors.New("payment provider timed out")
)

// ErrorKind プロバイダーエラーの種別
type ErrorKind string

const (
	ErrorKindAuthentication ErrorKind = "authentication"
	ErrorKindPermission     ErrorKind = "permission"
	ErrorKindRejected       ErrorKind = "rejected"
	ErrorKindRateLimited    ErrorKind = "rate_limited"
	ErrorKindUnavailable    ErrorKind = "unavailable"
	ErrorKindTimeout        ErrorKind = "timeout"
	ErrorKindInvalidRequest ErrorKind = "invalid_request"
	ErrorKindUnknown        ErrorKind = "unknown"
)

// String 文字列表現を返す
func (k ErrorKind) String() string {
	return string(k)
}

// sentinel 種別に対応するセンチネルエラーを返す
func (k ErrorKind) sentinel() error {
	switch k {
	case ErrorKindAuthentication:
		return ErrProviderAuthentication
	case ErrorKindPermission:
		return ErrProviderPermission
	case ErrorKindRejected:
		return ErrProviderRejected
	case ErrorKindRateLimited:
		return ErrProviderRateLimited
	case ErrorKindUnavailable:
		return ErrProviderUnavailable
	case ErrorKindTimeout:
		return ErrProviderTimeout
	default:
		return nil
	}
}

// ProviderError 決済プロバイダー呼び出しの失敗
//
// errors.Is で種別ごとのセンチネルエラーと比較できる。
type ProviderError struct {
	Kind       ErrorKind
	StatusCode int    // プロバイダーが返したHTTPステータス（通信エラー時は0）
	RequestID  string // プロバイダーのリクエストID
	Err        error
}

// NewProviderError 新しいProviderErrorを作成
func NewProviderError(kind ErrorKind, statusCode int, requestID string, err error) *ProviderError {
	return &ProviderError{
		Kind:       kind,
		StatusCode: statusCode,
		RequestID:  requestID,
		Err:        err,
	}
}

func (e *ProviderError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("payment provider %s error (status %d): %v", e.Kind, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("payment provider %s error: %v", e.Kind, e.Err)
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}

// Is 種別に対応するセンチネルエラーと一致するか判定
func (e *ProviderError) Is(target error) bool {
	s := e.Kind.sentinel()
	return s != nil && s == target
}

// KindOf エラーから種別を判定する
func KindOf(err error) ErrorKind {
	if err == nil {
		return ""
	}
	var pe *ProviderError
	if errors.As(err, &pe) {
		return pe.Kind
	}
	if errors.Is(err, ErrInvalidLineItem) || errors.Is(err, ErrInvalidSessionRequest) {
		return ErrorKindInvalidRequest
	}
	return ErrorKindUnknown
}
