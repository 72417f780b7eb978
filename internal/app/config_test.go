package app

import (
	"testing"
	"time"
)

func TestParseConfigDefaults(t *testing.T) {
	t.Setenv("JWT_SECRET_KEY", "s3cret")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example,https://b.example")
	t.Setenv("DB_CONNECT_BACKOFF", "250ms")

	cfg, err := parseConfig()
	if err != nil {
		t.Fatalf("parseConfig: %v", err)
	}
	if cfg.Port != "8080" || cfg.LogMode != "development" || cfg.RedisChannel != "course-events" {
		t.Fatalf("defaults: unexpected %+v", cfg)
	}
	if len(cfg.CORSOrigins) != 2 || cfg.CORSOrigins[1] != "https://b.example" {
		t.Fatalf("CORSOrigins: unexpected %v", cfg.CORSOrigins)
	}
	pg := cfg.PostgresConfig()
	if pg.ConnectBackoff != 250*time.Millisecond || pg.ConnectAttempts != 10 || pg.Name != "mentora" {
		t.Fatalf("PostgresConfig: unexpected %+v", pg)
	}
	if cfg.OtelConfig().Enabled || cfg.MetricsConfig().Enabled {
		t.Fatalf("otel/metrics must default to disabled")
	}
}

func TestParseConfigRequiresJWTSecret(t *testing.T) {
	t.Setenv("JWT_SECRET_KEY", "")
	if _, err := parseConfig(); err == nil {
		t.Fatalf("parseConfig: expected error without JWT_SECRET_KEY")
	}
}

func TestParseConfigRejectsMalformedValues(t *testing.T) {
	t.Setenv("JWT_SECRET_KEY", "s3cret")
	t.Setenv("DB_CONNECT_ATTEMPTS", "many")
	if _, err := parseConfig(); err == nil {
		t.Fatalf("parseConfig: expected error for non-numeric DB_CONNECT_ATTEMPTS")
	}
}
