package checkout

import "context"

// SessionProvider チェックアウトセッションを発行する決済プロバイダー
type SessionProvider interface {
	CreateSession(ctx context.Context, req *SessionRequest) (*Session, error)
}
