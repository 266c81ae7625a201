package stripe

import (
	"context"
	"fmt"
	"net/http"
	"time"

	stripego "github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/checkout/session"

	"checkout-server/internal/domain/checkout"
	"checkout-server/internal/infrastructure/config"
	otelinfra "checkout-server/internal/infrastructure/observability/otel"
)

// DefaultTimeout 設定が0の場合のHTTPタイムアウト
const DefaultTimeout = 80 * time.Second

// Client Stripe Checkout APIクライアント
//
// パッケージグローバルのstripe.Keyは使わず、クライアントごとにキーとバックエンドを持つ。
type Client struct {
	sessions session.Client
}

// NewClient 新しいClientを作成
func NewClient(cfg *config.StripeConfig, logger *otelinfra.Logger) (*Client, error) {
	if cfg.SecretKey == "" {
		return nil, fmt.Errorf("stripe secret key is required")
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	backendCfg := &stripego.BackendConfig{
		HTTPClient:        &http.Client{Timeout: timeout},
		MaxNetworkRetries: stripego.Int64(cfg.MaxNetworkRetries),
		LeveledLogger:     NewLeveledLogger(logger),
	}
	if cfg.APIURL != "" {
		backendCfg.URL = stripego.String(cfg.APIURL)
	}

	return &Client{
		sessions: session.Client{
			B:   stripego.GetBackendWithConfig(stripego.APIBackend, backendCfg),
			Key: cfg.SecretKey,
		},
	}, nil
}

// CreateSession チェックアウトセッションを作成
func (c *Client) CreateSession(ctx context.Context, req *checkout.SessionRequest) (*checkout.Session, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	params := toSessionParams(req)
	params.Context = ctx

	s, err := c.sessions.New(params)
	if err != nil {
		return nil, classifyError(ctx, err)
	}
	if s == nil || s.ID == "" {
		return nil, checkout.NewProviderError(checkout.ErrorKindUnavailable, 0, "",
			fmt.Errorf("provider returned a session without an id"))
	}

	return checkout.NewSession(s.ID, s.URL), nil
}

// toSessionParams ドメインのリクエストをStripeのパラメータに変換
func toSessionParams(req *checkout.SessionRequest) *stripego.CheckoutSessionParams {
	lineItems := make([]*stripego.CheckoutSessionLineItemParams, 0, len(req.LineItems))
	for _, li := range req.LineItems {
		lineItems = append(lineItems, &stripego.CheckoutSessionLineItemParams{
			PriceData: &stripego.CheckoutSessionLineItemPriceDataParams{
				Currency: stripego.String(li.Currency()),
				ProductData: &stripego.CheckoutSessionLineItemPriceDataProductDataParams{
					Name: stripego.String(li.Name()),
				},
				UnitAmount: stripego.Int64(li.UnitAmount()),
			},
			Quantity: stripego.Int64(li.Quantity()),
		})
	}

	params := &stripego.CheckoutSessionParams{
		PaymentMethodTypes: stripego.StringSlice(req.PaymentMethodTypes),
		LineItems:          lineItems,
		Mode:               stripego.String(req.Mode.String()),
		SuccessURL:         stripego.String(req.SuccessURL),
		CancelURL:          stripego.String(req.CancelURL),
	}
	for k, v := range req.Metadata {
		params.AddMetadata(k, v)
	}
	return params
}
