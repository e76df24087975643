package config

import (
	"testing"
	"time"
)

func TestLoadConfigDefaults(t *testing.T) {
	for _, key := range []string{"PORT", "ENV", "DB_DRIVER", "DATABASE_URL", "REVIEW_THRESHOLD",
		"STRAIN_CACHE_TTL", "STRAIN_REFRESH_CRON", "RATE_LIMIT_RPS", "RATE_LIMIT_BURST", "AUDIT_ENABLED", "STRAIN_S3_BUCKET"} {
		t.Setenv(key, "")
	}

	cfg := LoadConfig()

	if cfg.Port != "8080" {
		t.Fatalf("expected default port 8080, got %s", cfg.Port)
	}
	if cfg.Env != "development" || cfg.IsProduction() {
		t.Fatalf("expected development env, got %s", cfg.Env)
	}
	if cfg.DBDriver != DriverNone {
		t.Fatalf("expected no database without DATABASE_URL, got %s", cfg.DBDriver)
	}
	if cfg.ReviewThreshold != 0.5 {
		t.Fatalf("expected review threshold 0.5, got %v", cfg.ReviewThreshold)
	}
	if cfg.StrainCacheTTL != 10*time.Minute {
		t.Fatalf("expected 10m cache ttl, got %s", cfg.StrainCacheTTL)
	}
	if cfg.StrainRefreshCron != "0 */15 * * * *" {
		t.Fatalf("unexpected refresh cron %q", cfg.StrainRefreshCron)
	}
	if cfg.RateLimitRPS != 10 || cfg.RateLimitBurst != 20 {
		t.Fatalf("unexpected rate limit %v/%d", cfg.RateLimitRPS, cfg.RateLimitBurst)
	}
	if !cfg.AuditEnabled {
		t.Fatalf("expected audit enabled by default")
	}
	if cfg.S3Enabled() {
		t.Fatalf("expected s3 source disabled without a bucket")
	}
}

func TestLoadConfigOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("ENV", "production")
	t.Setenv("DB_DRIVER", "SQLite")
	t.Setenv("SQLITE_PATH", "/tmp/sales.db")
	t.Setenv("REVIEW_THRESHOLD", "0.7")
	t.Setenv("STRAIN_CACHE_TTL", "30s")
	t.Setenv("RATE_LIMIT_BURST", "5")
	t.Setenv("AUDIT_ENABLED", "false")
	t.Setenv("STRAIN_S3_BUCKET", "strains")

	cfg := LoadConfig()

	if cfg.Port != "9090" || !cfg.IsProduction() {
		t.Fatalf("unexpected port/env: %s %s", cfg.Port, cfg.Env)
	}
	if cfg.DBDriver != DriverSQLite || cfg.SQLitePath != "/tmp/sales.db" {
		t.Fatalf("unexpected sqlite settings: %s %s", cfg.DBDriver, cfg.SQLitePath)
	}
	if cfg.ReviewThreshold != 0.7 || cfg.StrainCacheTTL != 30*time.Second || cfg.RateLimitBurst != 5 {
		t.Fatalf("unexpected overrides: %+v", cfg)
	}
	if cfg.AuditEnabled || !cfg.S3Enabled() {
		t.Fatalf("unexpected flags: audit=%t s3=%t", cfg.AuditEnabled, cfg.S3Enabled())
	}
}

func TestLoadConfigInvalidValuesFallBack(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/sales")
	t.Setenv("DB_DRIVER", "")
	t.Setenv("REVIEW_THRESHOLD", "2")
	t.Setenv("RATE_LIMIT_RPS", "fast")
	t.Setenv("STRAIN_CACHE_TTL", "soon")

	cfg := LoadConfig()

	if cfg.DBDriver != DriverPostgres {
		t.Fatalf("expected postgres inferred from DATABASE_URL, got %s", cfg.DBDriver)
	}
	if cfg.ReviewThreshold != 0.5 || cfg.RateLimitRPS != 10 || cfg.StrainCacheTTL != 10*time.Minute {
		t.Fatalf("expected fallbacks, got %+v", cfg)
	}
}
