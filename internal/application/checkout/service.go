package checkout

import (
	"context"
	"errors"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	otelcodes "go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	checkoutdomain "checkout-server/internal/domain/checkout"
	otelinfra "checkout-server/internal/infrastructure/observability/otel"
)

const providerOperation = "checkout.session.create"

// CheckoutApplicationService チェックアウトアプリケーションサービス
type CheckoutApplicationService struct {
	provider       checkoutdomain.SessionProvider
	template       *SessionTemplate
	publishableKey string
	logger         *otelinfra.Logger
	metrics        *otelinfra.Metrics
	tracer         trace.Tracer
}

// NewCheckoutApplicationService 新しいCheckoutApplicationServiceを作成
func NewCheckoutApplicationService(
	provider checkoutdomain.SessionProvider,
	template *SessionTemplate,
	publishableKey string,
	logger *otelinfra.Logger,
	metrics *otelinfra.Metrics,
) *CheckoutApplicationService {
	return &CheckoutApplicationService{
		provider:       provider,
		template:       template,
		publishableKey: publishableKey,
		logger:         logger,
		metrics:        metrics,
		tracer:         otel.Tracer("checkout-service"),
	}
}

// CreateSession チェックアウトセッションを作成
//
// 呼び出しごとに新しいセッションが作られる（冪等ではない）。
func (s *CheckoutApplicationService) CreateSession(ctx context.Context, req *CreateSessionRequest) (*CreateSessionResponse, error) {
	ctx, span := s.tracer.Start(ctx, "CheckoutApplicationService.CreateSession")
	defer span.End()

	if req == nil {
		req = &CreateSessionRequest{}
	}

	sessionReq := s.template.newSessionRequest(req)
	currency := ""
	if len(sessionReq.LineItems) > 0 && sessionReq.LineItems[0] != nil {
		currency = sessionReq.LineItems[0].Currency()
	}

	span.SetAttributes(
		attribute.String("checkout.mode", sessionReq.Mode.String()),
		attribute.String("checkout.currency", currency),
		attribute.Int("checkout.line_items", len(sessionReq.LineItems)),
	)

	s.logger.Info(ctx, "Creating checkout session", map[string]interface{}{
		"request_id": req.RequestID,
		"mode":       sessionReq.Mode.String(),
		"currency":   currency,
	})

	if err := sessionReq.Validate(); err != nil {
		return nil, s.fail(ctx, span, req, err)
	}

	start := time.Now()
	session, err := s.provider.CreateSession(ctx, sessionReq)
	s.metrics.RecordProviderDuration(ctx, providerOperation, err == nil, time.Since(start).Seconds())
	if err != nil {
		return nil, s.fail(ctx, span, req, err)
	}

	span.SetAttributes(attribute.String("checkout.session_id", session.ID()))
	s.metrics.RecordSessionCreated(ctx, sessionReq.Mode.String(), currency)

	s.logger.Info(ctx, "Checkout session created", map[string]interface{}{
		"request_id": req.RequestID,
		"session_id": session.ID(),
	})

	return &CreateSessionResponse{
		SessionID: session.ID(),
		URL:       session.URL(),
	}, nil
}

// fail 失敗をトレース・ログ・メトリクスに記録してエラーを返す
func (s *CheckoutApplicationService) fail(ctx context.Context, span trace.Span, req *CreateSessionRequest, err error) error {
	kind := checkoutdomain.KindOf(err)

	span.RecordError(err)
	span.SetStatus(otelcodes.Error, kind.String())
	span.SetAttributes(attribute.String("checkout.error_kind", kind.String()))

	fields := map[string]interface{}{
		"request_id": req.RequestID,
		"error_kind": kind.String(),
	}
	var pe *checkoutdomain.ProviderError
	if errors.As(err, &pe) {
		fields["provider_status"] = pe.StatusCode
		fields["provider_request_id"] = pe.RequestID
	}
	s.logger.Error(ctx, "Failed to create checkout session", err, fields)
	s.metrics.RecordSessionFailed(ctx, kind.String())

	return err
}

// PublicConfig フロントエンドに渡す公開設定を返す
func (s *CheckoutApplicationService) PublicConfig(ctx context.Context) *PublicConfigResponse {
	resp := &PublicConfigResponse{
		PublishableKey: s.publishableKey,
	}
	if len(s.template.LineItems) > 0 {
		li := s.template.LineItems[0]
		exp := checkoutdomain.MinorUnitExponent(li.Currency())
		resp.ProductName = li.Name()
		resp.UnitPrice = li.UnitPrice().StringFixed(exp)
		resp.Currency = li.Currency()
		resp.Quantity = li.Quantity()
	}
	return resp
}
