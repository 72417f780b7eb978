package app

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"github.com/yungbote/mentora-backend/internal/data/db"
	"github.com/yungbote/mentora-backend/internal/observability"
	"github.com/yungbote/mentora-backend/internal/platform/logger"
)

type Config struct {
	Port         string `env:"PORT" envDefault:"8080"`
	LogMode      string `env:"LOG_MODE" envDefault:"development"`
	JWTSecretKey string `env:"JWT_SECRET_KEY"`

	Postgres PostgresEnv

	RedisAddr     string `env:"REDIS_ADDR"`
	RedisPassword string `env:"REDIS_PASSWORD"`
	RedisDB       int    `env:"REDIS_DB" envDefault:"0"`
	RedisChannel  string `env:"REDIS_CHANNEL" envDefault:"course-events"`

	CORSOrigins []string `env:"CORS_ALLOWED_ORIGINS" envSeparator:","`

	Otel    OtelEnv
	Metrics MetricsEnv
}

type PostgresEnv struct {
	Host            string        `env:"POSTGRES_HOST" envDefault:"localhost"`
	Port            string        `env:"POSTGRES_PORT" envDefault:"5432"`
	User            string        `env:"POSTGRES_USER" envDefault:"postgres"`
	Password        string        `env:"POSTGRES_PASSWORD"`
	Name            string        `env:"POSTGRES_NAME" envDefault:"mentora"`
	SSLMode         string        `env:"POSTGRES_SSLMODE" envDefault:"disable"`
	ConnectAttempts int           `env:"DB_CONNECT_ATTEMPTS" envDefault:"10"`
	ConnectBackoff  time.Duration `env:"DB_CONNECT_BACKOFF" envDefault:"2s"`
	MaxOpenConns    int           `env:"DB_MAX_OPEN_CONNS" envDefault:"25"`
	MaxIdleConns    int           `env:"DB_MAX_IDLE_CONNS" envDefault:"5"`
}

type OtelEnv struct {
	Enabled     bool    `env:"OTEL_ENABLED" envDefault:"false"`
	ServiceName string  `env:"OTEL_SERVICE_NAME" envDefault:"mentora-api"`
	Environment string  `env:"OTEL_ENVIRONMENT" envDefault:"development"`
	Version     string  `env:"OTEL_SERVICE_VERSION"`
	Endpoint    string  `env:"OTEL_EXPORTER_OTLP_ENDPOINT"`
	Headers     string  `env:"OTEL_EXPORTER_OTLP_HEADERS"`
	Insecure    bool    `env:"OTEL_EXPORTER_OTLP_INSECURE" envDefault:"false"`
	SampleRatio float64 `env:"OTEL_SAMPLER_RATIO" envDefault:"0.1"`
}

type MetricsEnv struct {
	Enabled          bool          `env:"METRICS_ENABLED" envDefault:"false"`
	ScrapeInterval   time.Duration `env:"METRICS_SCRAPE_INTERVAL" envDefault:"10s"`
	LatencyThreshold time.Duration `env:"SLO_API_LATENCY_THRESHOLD" envDefault:"500ms"`
}

// LoadConfig reads .env when present, then the process environment.
func LoadConfig(log *logger.Logger) (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Warn("could not load .env file", "error", err)
	}
	return parseConfig()
}

func parseConfig() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if cfg.JWTSecretKey == "" {
		return Config{}, errors.New("JWT_SECRET_KEY is required")
	}
	return cfg, nil
}

func (c Config) PostgresConfig() db.PostgresConfig {
	return db.PostgresConfig{
		Host:            c.Postgres.Host,
		Port:            c.Postgres.Port,
		User:            c.Postgres.User,
		Password:        c.Postgres.Password,
		Name:            c.Postgres.Name,
		SSLMode:         c.Postgres.SSLMode,
		ConnectAttempts: c.Postgres.ConnectAttempts,
		ConnectBackoff:  c.Postgres.ConnectBackoff,
		MaxOpenConns:    c.Postgres.MaxOpenConns,
		MaxIdleConns:    c.Postgres.MaxIdleConns,
	}
}

func (c Config) OtelConfig() observability.OtelConfig {
	return observability.OtelConfig{
		Enabled:     c.Otel.Enabled,
		ServiceName: c.Otel.ServiceName,
		Environment: c.Otel.Environment,
		Version:     c.Otel.Version,
		Endpoint:    c.Otel.Endpoint,
		Headers:     observability.ParseHeaders(c.Otel.Headers),
		Insecure:    c.Otel.Insecure,
		SampleRatio: c.Otel.SampleRatio,
	}
}

func (c Config) MetricsConfig() observability.MetricsConfig {
	return observability.MetricsConfig{
		Enabled:          c.Metrics.Enabled,
		ScrapeInterval:   c.Metrics.ScrapeInterval,
		LatencyThreshold: c.Metrics.LatencyThreshold,
	}
}
