package stripe

import (
	"context"
	"fmt"

	stripego "github.com/stripe/stripe-go/v82"

	otelinfra "checkout-server/internal/infrastructure/observability/otel"
)

// LeveledLogger アプリのロガーをstripe-goのLeveledLoggerInterfaceに適合させる
type LeveledLogger struct {
	logger *otelinfra.Logger
}

var _ stripego.LeveledLoggerInterface = (*LeveledLogger)(nil)

// NewLeveledLogger 新しいLeveledLoggerを作成
func NewLeveledLogger(logger *otelinfra.Logger) *LeveledLogger {
	if logger == nil {
		logger = otelinfra.NewLogger(nil, nil)
	}
	return &LeveledLogger{logger: logger}
}

var sdkFields = map[string]interface{}{"component": "stripe-go"}

func (l *LeveledLogger) Debugf(format string, v ...interface{}) {
	l.logger.Debug(context.Background(), fmt.Sprintf(format, v...), sdkFields)
}

func (l *LeveledLogger) Infof(format string, v ...interface{}) {
	// SDKのInfoはリクエスト毎に出るのでDebugに落とす
	l.logger.Debug(context.Background(), fmt.Sprintf(format, v...), sdkFields)
}

func (l *LeveledLogger) Warnf(format string, v ...interface{}) {
	l.logger.Warn(context.Background(), fmt.Sprintf(format, v...), sdkFields)
}

func (l *LeveledLogger) Errorf(format string, v ...interface{}) {
	l.logger.Error(context.Background(), fmt.Sprintf(format, v...), nil, sdkFields)
}
