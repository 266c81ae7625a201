package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

// Config アプリケーション全体の設定
type Config struct {
	Server        ServerConfig
	Stripe        StripeConfig
	Checkout      CheckoutConfig
	CORS          CORSConfig
	GRPC          GRPCConfig
	OpenTelemetry OpenTelemetryConfig
	Environment   string
	LogLevel      string
}

// ServerConfig サーバー設定
type ServerConfig struct {
	Port         int `validate:"gt=0,lte=65535"`
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
	Debug        bool
}

// StripeConfig Stripe API設定
type StripeConfig struct {
	SecretKey         string `validate:"required"`
	PublishableKey    string
	APIURL            string `validate:"omitempty,url"` // 空の場合はSDKの既定値
	Timeout           time.Duration
	MaxNetworkRetries int64 `validate:"gte=0"`
}

// CheckoutConfig チェックアウトセッションの内容
type CheckoutConfig struct {
	FrontendDomain     string   `validate:"required,url"`
	SuccessPath        string   `validate:"required,startswith=/"`
	CancelPath         string   `validate:"required,startswith=/"`
	PaymentMethodTypes []string `validate:"min=1,dive,required"`
	ProductName        string   `validate:"required"`
	UnitPrice          string   `validate:"required,numeric"`
	Currency           string   `validate:"required,len=3"`
	Quantity           int64    `validate:"gte=1"`
}

// CORSConfig CORS設定
type CORSConfig struct {
	AllowOrigins []string `validate:"min=1"`
}

// GRPCConfig gRPCヘルスチェックサーバー設定
type GRPCConfig struct {
	Enabled bool
	Port    int `validate:"gt=0,lte=65535"`
}

// OpenTelemetryConfig OpenTelemetry設定
type OpenTelemetryConfig struct {
	Enabled         bool
	ServiceName     string
	ServiceVersion  string
	OTLPEndpoint    string
	OTLPInsecure    bool
	TraceExporter   string // "otlp", "stdout"
	MetricsExporter string // "otlp", "stdout"
}

// Load 設定を読み込む
//
// envFilesが空の場合はカレントディレクトリの.envを読む。
func Load(envFiles ...string) (*Config, error) {
	// .envファイルを読み込む（存在しない場合は無視）
	_ = godotenv.Load(envFiles...)

	env := getEnv("ENVIRONMENT", "development")
	port := getEnvAsInt("SERVER_PORT", 5000)

	cfg := &Config{
		Environment: env,
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		Server: ServerConfig{
			Port:         port,
			ReadTimeout:  getEnvAsDuration("SERVER_READ_TIMEOUT", 15*time.Second),
			WriteTimeout: getEnvAsDuration("SERVER_WRITE_TIMEOUT", 15*time.Second),
			IdleTimeout:  getEnvAsDuration("SERVER_IDLE_TIMEOUT", 60*time.Second),
			Debug:        getEnvAsBool("SERVER_DEBUG", env == "development"),
		},
		Stripe: StripeConfig{
			SecretKey:         getEnv("STRIPE_SECRET_KEY", ""),
			PublishableKey:    getEnv("STRIPE_PUBLISHABLE_KEY", ""),
			APIURL:            getEnv("STRIPE_API_URL", ""),
			Timeout:           getEnvAsDuration("STRIPE_TIMEOUT", 30*time.Second),
			MaxNetworkRetries: int64(getEnvAsInt("STRIPE_MAX_NETWORK_RETRIES", 0)),
		},
		Checkout: CheckoutConfig{
			FrontendDomain:     strings.TrimRight(getEnv("CHECKOUT_FRONTEND_DOMAIN", "http://localhost:3000"), "/"),
			SuccessPath:        getEnv("CHECKOUT_SUCCESS_PATH", "/success"),
			CancelPath:         getEnv("CHECKOUT_CANCEL_PATH", "/cancel"),
			PaymentMethodTypes: getEnvAsSlice("CHECKOUT_PAYMENT_METHOD_TYPES", []string{"card"}),
			ProductName:        getEnv("CHECKOUT_PRODUCT_NAME", "T-shirt"),
			UnitPrice:          getEnv("CHECKOUT_UNIT_PRICE", "20.00"),
			Currency:           getEnv("CHECKOUT_CURRENCY", "usd"),
			Quantity:           int64(getEnvAsInt("CHECKOUT_QUANTITY", 1)),
		},
		CORS: CORSConfig{
			AllowOrigins: getEnvAsSlice("CORS_ALLOW_ORIGINS", []string{"*"}),
		},
		GRPC: GRPCConfig{
			Enabled: getEnvAsBool("GRPC_ENABLED", false),
			Port:    getEnvAsInt("GRPC_PORT", port+1), // REST APIのポート+1
		},
		OpenTelemetry: OpenTelemetryConfig{
			Enabled:         getEnvAsBool("OTEL_ENABLED", false),
			ServiceName:     getEnv("OTEL_SERVICE_NAME", "checkout-server"),
			ServiceVersion:  getEnv("OTEL_SERVICE_VERSION", "1.0.0"),
			OTLPEndpoint:    getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4318"),
			OTLPInsecure:    getEnvAsBool("OTEL_EXPORTER_OTLP_INSECURE", true),
			TraceExporter:   getEnv("OTEL_TRACES_EXPORTER", "otlp"),
			MetricsExporter: getEnv("OTEL_METRICS_EXPORTER", "otlp"),
		},
	}

	// 必須設定の検証
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

var validate = validator.New()

// validate 設定の検証
func (c *Config) validate() error {
	if c.Stripe.SecretKey == "" {
		return fmt.Errorf("STRIPE_SECRET_KEY is required")
	}
	if strings.HasPrefix(c.Stripe.SecretKey, "pk_") {
		return fmt.Errorf("STRIPE_SECRET_KEY must be a secret key, got a publishable key")
	}
	for _, section := range []interface{}{c.Server, c.Stripe, c.Checkout, c.CORS} {
		if err := validate.Struct(section); err != nil {
			return err
		}
	}
	if c.GRPC.Enabled {
		if err := validate.Struct(c.GRPC); err != nil {
			return err
		}
		if c.GRPC.Port == c.Server.Port {
			return fmt.Errorf("GRPC_PORT must differ from SERVER_PORT")
		}
	}
	return nil
}

// SuccessURL 決済成功時のリダイレクト先を返す
func (c *CheckoutConfig) SuccessURL() string {
	return c.FrontendDomain + c.SuccessPath
}

// CancelURL 決済キャンセル時のリダイレクト先を返す
func (c *CheckoutConfig) CancelURL() string {
	return c.FrontendDomain + c.CancelPath
}

// Redacted 秘密情報を伏せたコピーを返す
func (c *Config) Redacted() Config {
	out := *c
	out.Stripe.SecretKey = redact(c.Stripe.SecretKey)
	return out
}

func redact(secret string) string {
	if len(secret) <= 8 {
		return strings.Repeat("*", len(secret))
	}
	return secret[:8] + strings.Repeat("*", len(secret)-8)
}

// getEnv 環境変数を取得（デフォルト値付き）
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsInt 環境変数を整数として取得
func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

// getEnvAsBool 環境変数を真偽値として取得
func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

// getEnvAsDuration 環境変数を時間として取得
func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}
	value, err := time.ParseDuration(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

// getEnvAsSlice カンマ区切りの環境変数をスライスとして取得
func getEnvAsSlice(key string, defaultValue []string) []string {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}
	var values []string
	for _, v := range strings.Split(valueStr, ",") {
		if v = strings.TrimSpace(v); v != "" {
			values = append(values, v)
		}
	}
	if len(values) == 0 {
		return defaultValue
	}
	return values
}
