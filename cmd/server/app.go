package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	checkoutapp "checkout-server/internal/application/checkout"
	checkoutdomain "checkout-server/internal/domain/checkout"
	"checkout-server/internal/infrastructure/config"
	otelinfra "checkout-server/internal/infrastructure/observability/otel"
	"checkout-server/internal/infrastructure/payment/stripe"
	grpcserver "checkout-server/internal/presentation/grpc"
	"checkout-server/internal/presentation/rest"

	"github.com/urfave/cli/v2"
)

const shutdownTimeout = 10 * time.Second

// newApp コマンドラインアプリケーションを作成
func newApp() *cli.App {
	return &cli.App{
		Name:  "checkout-server",
		Usage: "Stripe Checkout session API server",
		Flags: []cli.Flag{
			&cli.StringSliceFlag{
				Name:  "env-file",
				Usage: "load environment variables from `FILE` (repeatable, default .env)",
			},
			&cli.IntFlag{
				Name:  "port",
				Usage: "REST API port (overrides SERVER_PORT)",
			},
		},
		Action: serve,
		Commands: []*cli.Command{
			{
				Name:   "config",
				Usage:  "print the effective configuration with secrets redacted",
				Action: printConfig,
			},
		},
	}
}

// loadConfig フラグを反映して設定を読み込む
func loadConfig(c *cli.Context) (*config.Config, error) {
	// .envより優先させるため読み込み前に環境変数へ反映する
	if c.IsSet("port") {
		if err := os.Setenv("SERVER_PORT", strconv.Itoa(c.Int("port"))); err != nil {
			return nil, err
		}
	}
	cfg, err := config.Load(c.StringSlice("env-file")...)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return cfg, nil
}

// printConfig 設定を秘密情報を伏せて出力
func printConfig(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}
	enc := json.NewEncoder(c.App.Writer)
	enc.SetIndent("", "  ")
	return enc.Encode(cfg.Redacted())
}

// newSessionTemplate 設定からチェックアウトセッションの内容を組み立てる
func newSessionTemplate(cfg *config.CheckoutConfig) (*checkoutapp.SessionTemplate, error) {
	lineItem, err := checkoutdomain.NewLineItem(cfg.ProductName, cfg.UnitPrice, cfg.Currency, cfg.Quantity)
	if err != nil {
		return nil, err
	}
	template := &checkoutapp.SessionTemplate{
		PaymentMethodTypes: cfg.PaymentMethodTypes,
		LineItems:          []*checkoutdomain.LineItem{lineItem},
		Mode:               checkoutdomain.PaymentModePayment,
		SuccessURL:         cfg.SuccessURL(),
		CancelURL:          cfg.CancelURL(),
	}
	if err := template.Validate(); err != nil {
		return nil, err
	}
	return template, nil
}

// serve サーバーを起動してシグナルを待つ
func serve(c *cli.Context) error {
	// 設定の読み込み
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}

	// OpenTelemetryの初期化
	tracerShutdown, err := otelinfra.InitTracer(&cfg.OpenTelemetry)
	if err != nil {
		return fmt.Errorf("failed to initialize tracer: %w", err)
	}
	meterShutdown, err := otelinfra.InitMeter(&cfg.OpenTelemetry)
	if err != nil {
		return fmt.Errorf("failed to initialize meter: %w", err)
	}

	// ロガーとメトリクスの初期化
	zapLogger, err := otelinfra.NewZapLogger(cfg.Environment, cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	logger := otelinfra.NewLogger(zapLogger, otelinfra.Tracer(cfg.OpenTelemetry.ServiceName))
	defer func() {
		_ = logger.Sync()
	}()

	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := tracerShutdown(ctx); err != nil {
			logger.Error(ctx, "Failed to shutdown tracer", err, nil)
		}
		if err := meterShutdown(ctx); err != nil {
			logger.Error(ctx, "Failed to shutdown meter", err, nil)
		}
	}()

	metrics, err := otelinfra.NewMetrics(cfg.OpenTelemetry.ServiceName)
	if err != nil {
		return fmt.Errorf("failed to create metrics: %w", err)
	}

	// 決済プロバイダーの初期化
	provider, err := stripe.NewClient(&cfg.Stripe, logger)
	if err != nil {
		return fmt.Errorf("failed to create stripe client: %w", err)
	}

	// アプリケーションサービスの初期化
	template, err := newSessionTemplate(&cfg.Checkout)
	if err != nil {
		return fmt.Errorf("invalid checkout configuration: %w", err)
	}
	checkoutService := checkoutapp.NewCheckoutApplicationService(
		provider,
		template,
		cfg.Stripe.PublishableKey,
		logger,
		metrics,
	)

	// REST APIルーターの初期化
	router, err := rest.NewRouter(cfg, logger, metrics, checkoutService)
	if err != nil {
		return fmt.Errorf("failed to create router: %w", err)
	}

	// gRPCサーバーの初期化（有効な場合のみ）
	var grpcSrv *grpcserver.Server
	if cfg.GRPC.Enabled {
		grpcSrv, err = grpcserver.NewServer(cfg, logger)
		if err != nil {
			return fmt.Errorf("failed to create gRPC server: %w", err)
		}
	}

	// サーバーアドレスの設定
	address := fmt.Sprintf(":%d", cfg.Server.Port)

	// グレースフルシャットダウンの設定
	ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 2)

	// REST APIサーバーを別ゴルーチンで起動
	go func() {
		logger.Info(ctx, "REST API server starting", map[string]interface{}{
			"address":     address,
			"environment": cfg.Environment,
			"debug":       cfg.Server.Debug,
		})
		if err := router.Start(address); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("REST API server error: %w", err)
		}
	}()

	// gRPCサーバーを別ゴルーチンで起動
	if grpcSrv != nil {
		go func() {
			if err := grpcSrv.Start(); err != nil {
				errCh <- fmt.Errorf("gRPC server error: %w", err)
			}
		}()
	}

	// シグナルかサーバーエラーを待機
	var serveErr error
	select {
	case <-ctx.Done():
		logger.Info(context.Background(), "Shutting down servers", nil)
	case serveErr = <-errCh:
		logger.Error(context.Background(), "Server failed", serveErr, nil)
	}

	// グレースフルシャットダウン
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	// gRPCサーバーのシャットダウン（先にヘルスチェックを落とす）
	if grpcSrv != nil {
		if err := grpcSrv.Stop(shutdownCtx); err != nil {
			logger.Error(shutdownCtx, "Error shutting down gRPC server", err, nil)
		}
	}

	// REST APIサーバーのシャットダウン
	if err := router.Shutdown(shutdownCtx); err != nil {
		logger.Error(shutdownCtx, "Error shutting down REST API server", err, nil)
	}

	logger.Info(shutdownCtx, "Servers stopped", nil)
	return serveErr
}
