package otel

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace/noop"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func newObservedLogger(level zapcore.Level) (*Logger, *observer.ObservedLogs) {
	core, logs := observer.New(level)
	tracer := noop.NewTracerProvider().Tracer("test")
	return NewLogger(zap.New(core), tracer), logs
}

func TestNewLogger(t *testing.T) {
	tracer := noop.NewTracerProvider().Tracer("test")
	logger := NewLogger(nil, tracer)

	assert.NotNil(t, logger)
	assert.NotNil(t, logger.Zap())
	assert.Equal(t, tracer, logger.tracer)
}

func TestLogger_Log(t *testing.T) {
	tests := []struct {
		name      string
		level     LogLevel
		message   string
		fields    map[string]interface{}
		wantLevel zapcore.Level
	}{
		{
			name:      "Infoレベルのログ",
			level:     LogLevelInfo,
			message:   "test message",
			fields:    map[string]interface{}{"key": "value"},
			wantLevel: zapcore.InfoLevel,
		},
		{
			name:      "Debugレベルのログ",
			level:     LogLevelDebug,
			message:   "debug message",
			fields:    nil,
			wantLevel: zapcore.DebugLevel,
		},
		{
			name:      "Warnレベルのログ",
			level:     LogLevelWarn,
			message:   "warn message",
			fields:    map[string]interface{}{"count": 42},
			wantLevel: zapcore.WarnLevel,
		},
		{
			name:      "Errorレベルのログ",
			level:     LogLevelError,
			message:   "error message",
			fields:    map[string]interface{}{"error": "test error"},
			wantLevel: zapcore.ErrorLevel,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger, logs := newObservedLogger(zapcore.DebugLevel)

			logger.Log(context.Background(), tt.level, tt.message, tt.fields)

			require.Equal(t, 1, logs.Len())
			entry := logs.All()[0]
			assert.Equal(t, tt.wantLevel, entry.Level)
			assert.Equal(t, tt.message, entry.Message)
			for k, v := range tt.fields {
				assert.EqualValues(t, v, entry.ContextMap()[k])
			}
		})
	}
}

func TestLogger_LogWithTraceContext(t *testing.T) {
	logger, logs := newObservedLogger(zapcore.DebugLevel)

	tp := sdktrace.NewTracerProvider()
	defer func() { _ = tp.Shutdown(context.Background()) }()

	ctx, span := tp.Tracer("test").Start(context.Background(), "test-span")
	defer span.End()

	logger.Info(ctx, "test message", nil)

	require.Equal(t, 1, logs.Len())
	fields := logs.All()[0].ContextMap()
	assert.Equal(t, span.SpanContext().TraceID().String(), fields["trace_id"])
	assert.Equal(t, span.SpanContext().SpanID().String(), fields["span_id"])
}

func TestLogger_LogWithoutTraceContext(t *testing.T) {
	logger, logs := newObservedLogger(zapcore.DebugLevel)

	logger.Info(context.Background(), "test message", nil)

	require.Equal(t, 1, logs.Len())
	_, ok := logs.All()[0].ContextMap()["trace_id"]
	assert.False(t, ok)
}

func TestLogger_LevelFiltering(t *testing.T) {
	logger, logs := newObservedLogger(zapcore.WarnLevel)
	ctx := context.Background()

	logger.Debug(ctx, "debug message", nil)
	logger.Info(ctx, "info message", nil)
	logger.Warn(ctx, "warn message", nil)

	require.Equal(t, 1, logs.Len())
	assert.Equal(t, "warn message", logs.All()[0].Message)
}

func TestLogger_Error(t *testing.T) {
	tests := []struct {
		name      string
		err       error
		fields    map[string]interface{}
		wantError bool
	}{
		{
			name:      "エラーあり、フィールドなし",
			err:       errors.New("boom"),
			fields:    nil,
			wantError: true,
		},
		{
			name:      "エラーあり、フィールドあり",
			err:       errors.New("boom"),
			fields:    map[string]interface{}{"key": "value"},
			wantError: true,
		},
		{
			name:      "エラーなし、フィールドあり",
			err:       nil,
			fields:    map[string]interface{}{"key": "value"},
			wantError: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger, logs := newObservedLogger(zapcore.DebugLevel)

			logger.Error(context.Background(), "error message", tt.err, tt.fields)

			require.Equal(t, 1, logs.Len())
			got, ok := logs.All()[0].ContextMap()["error"]
			assert.Equal(t, tt.wantError, ok)
			if tt.wantError {
				assert.Equal(t, "boom", got)
			}
		})
	}
}

func TestLogger_ErrorDoesNotMutateFields(t *testing.T) {
	logger, _ := newObservedLogger(zapcore.DebugLevel)
	fields := map[string]interface{}{"key": "value"}

	logger.Error(context.Background(), "error message", errors.New("boom"), fields)

	assert.Len(t, fields, 1)
}

func TestNewZapLogger(t *testing.T) {
	tests := []struct {
		name        string
		environment string
		level       string
		wantError   bool
		debugOn     bool
	}{
		{
			name:        "正常系: 本番環境",
			environment: "production",
			level:       "info",
			debugOn:     false,
		},
		{
			name:        "正常系: 開発環境でdebug",
			environment: "development",
			level:       "debug",
			debugOn:     true,
		},
		{
			name:        "異常系: 不正なレベル",
			environment: "development",
			level:       "verbose",
			wantError:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			zl, err := NewZapLogger(tt.environment, tt.level)
			if tt.wantError {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.debugOn, zl.Core().Enabled(zapcore.DebugLevel))
		})
	}
}
