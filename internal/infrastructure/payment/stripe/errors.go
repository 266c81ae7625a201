package stripe

import (
	"context"
	"errors"
	"net"
	"net/http"

	stripego "github.com/stripe/stripe-go/v82"

	"checkout-server/internal/domain/checkout"
)

// classifyError Stripe SDKのエラーをドメインのProviderErrorに変換
func classifyError(ctx context.Context, err error) error {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return checkout.NewProviderError(checkout.ErrorKindTimeout, 0, "", err)
	}

	var se *stripego.Error
	if errors.As(err, &se) {
		return checkout.NewProviderError(kindOf(se), se.HTTPStatusCode, se.RequestID, err)
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return checkout.NewProviderError(checkout.ErrorKindTimeout, 0, "", err)
	}

	return checkout.NewProviderError(checkout.ErrorKindUnavailable, 0, "", err)
}

// kindOf HTTPステータスとエラータイプから種別を決める
func kindOf(se *stripego.Error) checkout.ErrorKind {
	switch {
	case se.HTTPStatusCode == http.StatusUnauthorized:
		return checkout.ErrorKindAuthentication
	case se.HTTPStatusCode == http.StatusForbidden:
		return checkout.ErrorKindPermission
	case se.HTTPStatusCode == http.StatusTooManyRequests:
		return checkout.ErrorKindRateLimited
	case se.HTTPStatusCode >= http.StatusInternalServerError:
		return checkout.ErrorKindUnavailable
	case se.Type == stripego.ErrorTypeAPI:
		return checkout.ErrorKindUnavailable
	default:
		return checkout.ErrorKindRejected
	}
}
