package otel

import (
	"context"
	"fmt"
	"sort"

	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger トレースコンテキスト付きの構造化ロガー
type Logger struct {
	zap    *zap.Logger
	tracer trace.Tracer
}

// NewLogger 新しいLoggerを作成
func NewLogger(base *zap.Logger, tracer trace.Tracer) *Logger {
	if base == nil {
		base = zap.NewNop()
	}
	return &Logger{
		zap:    base,
		tracer: tracer,
	}
}

// NewZapLogger 環境に応じたzapロガーを作成
//
// production以外では開発用エンコーダー（コンソール出力）を使う。
func NewZapLogger(environment, level string) (*zap.Logger, error) {
	var cfg zap.Config
	if environment == "production" {
		cfg = zap.NewProductionConfig()
	} else {
		cfg = zap.NewDevelopmentConfig()
	}

	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}
	cfg.Level = zap.NewAtomicLevelAt(lvl)

	return cfg.Build()
}

// LogLevel ログレベル
type LogLevel string

const (
	LogLevelDebug LogLevel = "DEBUG"
	LogLevelInfo  LogLevel = "INFO"
	LogLevelWarn  LogLevel = "WARN"
	LogLevelError LogLevel = "ERROR"
)

func (l LogLevel) zapLevel() zapcore.Level {
	switch l {
	case LogLevelDebug:
		return zapcore.DebugLevel
	case LogLevelWarn:
		return zapcore.WarnLevel
	case LogLevelError:
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}

// Log ログを出力
func (l *Logger) Log(ctx context.Context, level LogLevel, message string, fields map[string]interface{}) {
	l.write(ctx, level, message, nil, fields)
}

func (l *Logger) write(ctx context.Context, level LogLevel, message string, err error, fields map[string]interface{}) {
	ce := l.zap.Check(level.zapLevel(), message)
	if ce == nil {
		return
	}

	zf := make([]zap.Field, 0, len(fields)+3)

	// トレースIDとSpanIDを取得
	if ctx != nil {
		sc := trace.SpanFromContext(ctx).SpanContext()
		if sc.IsValid() {
			zf = append(zf,
				zap.String("trace_id", sc.TraceID().String()),
				zap.String("span_id", sc.SpanID().String()),
			)
		}
	}

	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		zf = append(zf, zap.Any(k, fields[k]))
	}

	if err != nil {
		zf = append(zf, zap.Error(err))
	}

	ce.Write(zf...)
}

// Debug Debugレベルのログを出力
func (l *Logger) Debug(ctx context.Context, message string, fields map[string]interface{}) {
	l.write(ctx, LogLevelDebug, message, nil, fields)
}

// Info Infoレベルのログを出力
func (l *Logger) Info(ctx context.Context, message string, fields map[string]interface{}) {
	l.write(ctx, LogLevelInfo, message, nil, fields)
}

// Warn Warnレベルのログを出力
func (l *Logger) Warn(ctx context.Context, message string, fields map[string]interface{}) {
	l.write(ctx, LogLevelWarn, message, nil, fields)
}

// Error Errorレベルのログを出力
func (l *Logger) Error(ctx context.Context, message string, err error, fields map[string]interface{}) {
	l.write(ctx, LogLevelError, message, err, fields)
}

// Zap 内部のzapロガーを返す
func (l *Logger) Zap() *zap.Logger {
	return l.zap
}

// Sync バッファをフラッシュ
func (l *Logger) Sync() error {
	return l.zap.Sync()
}
