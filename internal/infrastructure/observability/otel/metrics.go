package otel

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Metrics メトリクス定義
type Metrics struct {
	// 作成したチェックアウトセッション数
	SessionsCreated metric.Int64Counter

	// チェックアウトセッション作成の失敗数（種別ごと）
	SessionsFailed metric.Int64Counter

	// 決済プロバイダー呼び出しの所要時間
	ProviderDuration metric.Float64Histogram

	// リクエスト数
	RequestCount metric.Int64Counter

	// レスポンス時間
	ResponseTime metric.Float64Histogram

	// エラー率
	ErrorCount metric.Int64Counter
}

// NewMetrics グローバルのMeterProviderから新しいMetricsを作成
func NewMetrics(meterName string) (*Metrics, error) {
	return NewMetricsWithProvider(otel.GetMeterProvider(), meterName)
}

// NewMetricsWithProvider 指定したMeterProviderから新しいMetricsを作成
func NewMetricsWithProvider(provider metric.MeterProvider, meterName string) (*Metrics, error) {
	meter := provider.Meter(meterName)

	sessionsCreated, err := meter.Int64Counter(
		"checkout_sessions_created_total",
		metric.WithDescription("Total number of checkout sessions created"),
	)
	if err != nil {
		return nil, err
	}

	sessionsFailed, err := meter.Int64Counter(
		"checkout_sessions_failed_total",
		metric.WithDescription("Total number of failed checkout session creations"),
	)
	if err != nil {
		return nil, err
	}

	providerDuration, err := meter.Float64Histogram(
		"payment_provider_duration_seconds",
		metric.WithDescription("Payment provider call duration in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, err
	}

	requestCount, err := meter.Int64Counter(
		"requests_total",
		metric.WithDescription("Total number of requests"),
	)
	if err != nil {
		return nil, err
	}

	responseTime, err := meter.Float64Histogram(
		"response_time_seconds",
		metric.WithDescription("Response time in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, err
	}

	errorCount, err := meter.Int64Counter(
		"errors_total",
		metric.WithDescription("Total number of errors"),
	)
	if err != nil {
		return nil, err
	}

	return &Metrics{
		SessionsCreated:  sessionsCreated,
		SessionsFailed:   sessionsFailed,
		ProviderDuration: providerDuration,
		RequestCount:     requestCount,
		ResponseTime:     responseTime,
		ErrorCount:       errorCount,
	}, nil
}

// RecordSessionCreated セッション作成を記録
func (m *Metrics) RecordSessionCreated(ctx context.Context, mode, currency string) {
	m.SessionsCreated.Add(ctx, 1,
		metric.WithAttributes(
			attribute.String("mode", mode),
			attribute.String("currency", currency),
		),
	)
}

// RecordSessionFailed セッション作成の失敗を記録
func (m *Metrics) RecordSessionFailed(ctx context.Context, errorKind string) {
	m.SessionsFailed.Add(ctx, 1,
		metric.WithAttributes(
			attribute.String("error_kind", errorKind),
		),
	)
}

// RecordProviderDuration プロバイダー呼び出し時間を記録
func (m *Metrics) RecordProviderDuration(ctx context.Context, operation string, success bool, duration float64) {
	m.ProviderDuration.Record(ctx, duration,
		metric.WithAttributes(
			attribute.String("operation", operation),
			attribute.Bool("success", success),
		),
	)
}

// RecordRequest リクエストを記録
func (m *Metrics) RecordRequest(ctx context.Context, method, path string) {
	m.RequestCount.Add(ctx, 1,
		metric.WithAttributes(
			attribute.String("method", method),
			attribute.String("path", path),
		),
	)
}

// RecordResponseTime レスポンス時間を記録
func (m *Metrics) RecordResponseTime(ctx context.Context, method, path string, duration float64) {
	m.ResponseTime.Record(ctx, duration,
		metric.WithAttributes(
			attribute.String("method", method),
			attribute.String("path", path),
		),
	)
}

// RecordError エラーを記録
func (m *Metrics) RecordError(ctx context.Context, errorType string) {
	m.ErrorCount.Add(ctx, 1,
		metric.WithAttributes(
			attribute.String("error_type", errorType),
		),
	)
}
