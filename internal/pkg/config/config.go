package config

import (
	"fmt"
	"net"
	"net/url"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// -----------------------------------------------------------------------------
// Environment variable configuration guidelines:
// - required: Values that differ between environments (port, DB connection, etc.)
// - default: Values common across all environments (timezone, timeout, etc.), standard settings
// - gateway credentials are optional at startup; a missing credential is reported per request
// -----------------------------------------------------------------------------

type Config struct {
	Server       ServerConfig
	DB           DBConfig
	CORS         CORSConfig
	Log          LogConfig
	AuthorizeNet AuthorizeNetConfig
	Broker       BrokerConfig
	Redis        RedisConfig
	DynamoDB     DynamoDBConfig
	Telemetry    TelemetryConfig
}

type ServerConfig struct {
	Port              string        `envconfig:"PORT" required:"true"`
	ReadHeaderTimeout time.Duration `envconfig:"SERVER_READ_HEADER_TIMEOUT" default:"10s"`
	ShutdownTimeout   time.Duration `envconfig:"SERVER_SHUTDOWN_TIMEOUT" default:"15s"`
}

type DBConfig struct {
	Host     string `envconfig:"DB_HOST" default:"localhost"`
	Port     string `envconfig:"DB_PORT" default:"5432"`
	User     string `envconfig:"DB_USER" required:"true"`
	Password string `envconfig:"DB_PASSWORD" required:"true"`
	DBName   string `envconfig:"DB_NAME" required:"true"`
	SSLMode  string `envconfig:"DB_SSL_MODE" default:"disable"`
	TimeZone string `envconfig:"DB_TIMEZONE" default:"UTC"`
	MaxConns int32  `envconfig:"DB_MAX_CONNS" default:"20"`
}

type CORSConfig struct {
	AllowOrigins     []string      `envconfig:"CORS_ALLOW_ORIGINS" default:"http://localhost:3000,http://localhost:8080"`
	AllowMethods     []string      `envconfig:"CORS_ALLOW_METHODS" default:"GET,POST,OPTIONS"`
	AllowHeaders     []string      `envconfig:"CORS_ALLOW_HEADERS" default:"Origin,Content-Type,Accept"`
	ExposeHeaders    []string      `envconfig:"CORS_EXPOSE_HEADERS" default:"Content-Length,X-Trace-ID"`
	AllowCredentials bool          `envconfig:"CORS_ALLOW_CREDENTIALS" default:"true"`
	MaxAge           time.Duration `envconfig:"CORS_MAX_AGE" default:"12h"`
}

type LogConfig struct {
	Level          string `envconfig:"LOG_LEVEL" default:"info"`
	TimeZone       string `envconfig:"LOG_TIMEZONE" default:"UTC"`
	TimeFormat     string `envconfig:"LOG_TIME_FORMAT" default:"2006-01-02 15:04:05.000"`
	TimeZoneOffset int    `envconfig:"LOG_TIMEZONE_OFFSET" default:"0"`
}

type AuthorizeNetConfig struct {
	APILoginID     string        `envconfig:"AUTHNET_API_LOGIN_ID"`
	TransactionKey string        `envconfig:"AUTHNET_TRANSACTION_KEY"`
	ClientKey      string        `envconfig:"AUTHNET_CLIENT_KEY"`
	SignatureKey   string        `envconfig:"AUTHNET_SIGNATURE_KEY"`
	Environment    string        `envconfig:"AUTHNET_ENVIRONMENT" default:"sandbox"`
	Timeout        time.Duration `envconfig:"AUTHNET_TIMEOUT" default:"20s"`
}

type BrokerConfig struct {
	ResultViewURL      string        `envconfig:"RESULT_VIEW_URL" default:"http://localhost:3000/payment-result"`
	CorrelationBackend string        `envconfig:"CORRELATION_BACKEND" default:"postgres"`
	CorrelationTTL     time.Duration `envconfig:"CORRELATION_TTL" default:"30m"`
	PaymentButtonText  string        `envconfig:"PAYMENT_BUTTON_TEXT" default:"Pay"`
}

type RedisConfig struct {
	Addr     string `envconfig:"REDIS_ADDR" default:"localhost:6379"`
	Password string `envconfig:"REDIS_PASSWORD"`
	DB       int    `envconfig:"REDIS_DB" default:"0"`
}

type DynamoDBConfig struct {
	Table    string `envconfig:"DYNAMODB_TABLE" default:"pending_correlations"`
	Region   string `envconfig:"AWS_REGION" default:"us-east-1"`
	Endpoint string `envconfig:"DYNAMODB_ENDPOINT"`
}

type TelemetryConfig struct {
	ServiceName  string `envconfig:"OTEL_SERVICE_NAME" default:"accept-broker"`
	OTLPEndpoint string `envconfig:"OTEL_EXPORTER_OTLP_ENDPOINT"`
}

// HasTransactionCredentials reports whether server-side gateway calls can be signed.
func (c AuthorizeNetConfig) HasTransactionCredentials() bool {
	return c.APILoginID != "" && c.TransactionKey != ""
}

// BuildDSN escapes credentials, so passwords may contain URL metacharacters.
func (c *DBConfig) BuildDSN() string {
	q := url.Values{}
	q.Set("sslmode", c.SSLMode)
	q.Set("timezone", c.TimeZone)
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.User, c.Password),
		Host:     net.JoinHostPort(c.Host, c.Port),
		Path:     "/" + c.DBName,
		RawQuery: q.Encode(),
	}
	return u.String()
}

func LoadConfig() (Config, error) {
	var cfg Config
	err := envconfig.Process("", &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("failed to process env config: %w", err)
	}
	return cfg, nil
}

// LoadDBConfig reads only the DB_* section, for tools that do not serve HTTP.
func LoadDBConfig() (DBConfig, error) {
	var cfg DBConfig
	if err := envconfig.Process("", &cfg); err != nil {
		return DBConfig{}, fmt.Errorf("failed to process db env config: %w", err)
	}
	return cfg, nil
}

func NewTestConfig() Config {
	return Config{
		Server: ServerConfig{
			Port:              "8889",
			ReadHeaderTimeout: 5 * time.Second,
			ShutdownTimeout:   5 * time.Second,
		},
		DB: DBConfig{
			Host:     "localhost",
			Port:     "15433", // Test DB port
			User:     "test",
			Password: "test",
			DBName:   "test_db",
			SSLMode:  "disable",
			TimeZone: "UTC",
			MaxConns: 10,
		},
		Log: LogConfig{
			Level:          "error", // Error level only for tests
			TimeZone:       "UTC",
			TimeFormat:     "2006-01-02 15:04:05.000",
			TimeZoneOffset: 0,
		},
		AuthorizeNet: AuthorizeNetConfig{
			APILoginID:     "test-login",
			TransactionKey: "test-transaction-key",
			ClientKey:      "test-client-key",
			SignatureKey:   "test-signature-key",
			Environment:    "sandbox",
			Timeout:        5 * time.Second,
		},
		Broker: BrokerConfig{
			ResultViewURL:      "http://localhost:3000/payment-result",
			CorrelationBackend: "postgres",
			CorrelationTTL:     30 * time.Minute,
			PaymentButtonText:  "Pay",
		},
		Telemetry: TelemetryConfig{
			ServiceName: "accept-broker-test",
		},
	}
}
