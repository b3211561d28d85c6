package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/staybook/cancellation-risk/internal/pkg/kafka"
	"github.com/staybook/cancellation-risk/internal/pkg/postgres"
)

const (
	BackendArtifact = "artifact"
	BackendHTTP     = "http"
)

// Config holds all service configuration loaded from environment variables.
type Config struct {
	Classifier  ClassifierConfig
	GRPC        GRPCConfig
	DB          DBConfig
	Kafka       KafkaConfig
	Telemetry   TelemetryConfig
	LogLevel    string
	LogFormat   string
	Environment string
	HTTPPort    int
	// RateLimitRPS caps /v1 requests per second; 0 disables the limiter.
	RateLimitRPS int
}

// ClassifierConfig locates the model and its column schema.
type ClassifierConfig struct {
	ModelPath   string
	ColumnsPath string
	Backend     string
	URL         string
}

type GRPCConfig struct {
	TLSCertFile string
	TLSKeyFile  string
	Port        int
	Reflection  bool
}

type DBConfig struct {
	Host          string
	User          string
	Password      string
	Name          string
	SSLMode       string
	MigrationsDir string
	Port          int
	MaxConns      int32
	MinConns      int32
}

type KafkaConfig struct {
	Topic         string
	ClientID      string
	SASLMechanism string
	SASLUsername  string
	SASLPassword  string
	Brokers       []string
	TLS           bool
}

type TelemetryConfig struct {
	OTLPEndpoint string
	ServiceName  string
}

// Load reads configuration from environment variables with defaults.
func Load() Config {
	return Config{
		HTTPPort:     getEnvInt("HTTP_PORT", 8080),
		RateLimitRPS: getEnvInt("HTTP_RATE_LIMIT_RPS", 0),
		GRPC: GRPCConfig{
			Port:        getEnvInt("GRPC_PORT", 9090),
			Reflection:  getEnvBool("GRPC_REFLECTION", false),
			TLSCertFile: getEnv("GRPC_TLS_CERT_FILE", ""),
			TLSKeyFile:  getEnv("GRPC_TLS_KEY_FILE", ""),
		},
		Classifier: ClassifierConfig{
			ModelPath:   getEnv("MODEL_PATH", "model_final.json"),
			ColumnsPath: getEnv("COLUMNS_PATH", "model_columns.json"),
			Backend:     getEnv("CLASSIFIER_BACKEND", BackendArtifact),
			URL:         getEnv("CLASSIFIER_URL", ""),
		},
		DB: DBConfig{
			Host:          getEnv("DB_HOST", ""),
			Port:          getEnvInt("DB_PORT", 5432),
			User:          getEnv("DB_USER", "risk"),
			Password:      getEnv("DB_PASSWORD", ""),
			Name:          getEnv("DB_NAME", "booking_risk"),
			SSLMode:       getEnv("DB_SSLMODE", "require"),
			MaxConns:      int32(getEnvInt("DB_MAX_CONNS", 10)),
			MinConns:      int32(getEnvInt("DB_MIN_CONNS", 2)),
			MigrationsDir: getEnv("DB_MIGRATIONS_DIR", "internal/infrastructure/postgres/migrations"),
		},
		Kafka: KafkaConfig{
			Brokers:       getEnvList("KAFKA_BROKERS"),
			Topic:         getEnv("KAFKA_TOPIC", "booking-risk.events"),
			ClientID:      getEnv("KAFKA_CLIENT_ID", "booking-risk"),
			TLS:           getEnvBool("KAFKA_TLS", false),
			SASLMechanism: getEnv("KAFKA_SASL_MECHANISM", ""),
			SASLUsername:  getEnv("KAFKA_SASL_USERNAME", ""),
			SASLPassword:  getEnv("KAFKA_SASL_PASSWORD", ""),
		},
		Telemetry: TelemetryConfig{
			OTLPEndpoint: getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", ""),
			ServiceName:  "booking-risk",
		},
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		LogFormat:   getEnv("LOG_FORMAT", "json"),
		Environment: getEnv("ENVIRONMENT", "development"),
	}
}

// Validate checks cross-field configuration rules.
func (c Config) Validate() error {
	var errs []error

	switch c.Classifier.Backend {
	case BackendArtifact:
		if c.Classifier.ModelPath == "" {
			errs = append(errs, errors.New("MODEL_PATH is required for the artifact backend"))
		}
	case BackendHTTP:
		if c.Classifier.URL == "" {
			errs = append(errs, errors.New("CLASSIFIER_URL is required for the http backend"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown CLASSIFIER_BACKEND %q", c.Classifier.Backend))
	}
	if c.Classifier.ColumnsPath == "" {
		errs = append(errs, errors.New("COLUMNS_PATH is required"))
	}
	if (c.GRPC.TLSCertFile == "") != (c.GRPC.TLSKeyFile == "") {
		errs = append(errs, errors.New("GRPC_TLS_CERT_FILE and GRPC_TLS_KEY_FILE must be set together"))
	}
	if c.RateLimitRPS < 0 {
		errs = append(errs, errors.New("HTTP_RATE_LIMIT_RPS must not be negative"))
	}
	if c.DB.Host != "" && c.DB.Password == "" {
		errs = append(errs, errors.New("DB_PASSWORD is required when DB_HOST is set"))
	}

	return errors.Join(errs...)
}

// Postgres returns the pool configuration. The watchlist is disabled when
// DB_HOST is empty.
func (c DBConfig) Postgres() postgres.Config {
	return postgres.Config{
		Host:     c.Host,
		Port:     c.Port,
		User:     c.User,
		Password: c.Password,
		Database: c.Name,
		SSLMode:  c.SSLMode,
		MaxConns: c.MaxConns,
		MinConns: c.MinConns,
	}
}

// Producer returns the producer configuration. Events are only logged when
// no broker is configured.
func (c KafkaConfig) Producer() kafka.Config {
	return kafka.Config{
		Brokers:       c.Brokers,
		ClientID:      c.ClientID,
		TLS:           c.TLS,
		SASLMechanism: c.SASLMechanism,
		SASLUsername:  c.SASLUsername,
		SASLPassword:  c.SASLPassword,
	}
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if val := os.Getenv(key); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			return i
		}
	}
	return defaultVal
}

func getEnvBool(key string, defaultVal bool) bool {
	if val := os.Getenv(key); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			return b
		}
	}
	return defaultVal
}

func getEnvList(key string) []string {
	var out []string
	for _, part := range strings.Split(os.Getenv(key), ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
