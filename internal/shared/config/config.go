package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Supported values for DB_DRIVER
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
	DriverNone     = "none"
)

type Config struct {
	Port     string
	Env      string
	LogLevel string

	DBDriver    string
	DatabaseURL string
	SQLitePath  string

	// Parser / review
	ReviewThreshold   float64
	AuditEnabled      bool
	ParseLogRetention time.Duration // 0 keeps logs forever

	// Strain catalog
	StrainCacheTTL    time.Duration
	StrainRefreshCron string
	StrainS3Bucket    string
	StrainS3Key       string
	StrainS3Region    string
	AWSAccessKeyID    string
	AWSSecretKey      string

	// Rate limiting
	RateLimitRPS   float64
	RateLimitBurst int
}

func LoadConfig() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️ .env file not found, using system environment variables")
	}

	cfg := &Config{
		Port:              getEnv("PORT", "8080"),
		Env:               getEnv("ENV", "development"),
		LogLevel:          getEnv("LOG_LEVEL", "info"),
		DatabaseURL:       os.Getenv("DATABASE_URL"),
		SQLitePath:        getEnv("SQLITE_PATH", "sales.db"),
		ReviewThreshold:   getFloat("REVIEW_THRESHOLD", 0.5),
		AuditEnabled:      getBool("AUDIT_ENABLED", true),
		ParseLogRetention: getDuration("PARSE_LOG_RETENTION", 0),
		StrainCacheTTL:    getDuration("STRAIN_CACHE_TTL", 10*time.Minute),
		StrainRefreshCron: getEnv("STRAIN_REFRESH_CRON", "0 */15 * * * *"),
		StrainS3Bucket:    os.Getenv("STRAIN_S3_BUCKET"),
		StrainS3Key:       getEnv("STRAIN_S3_KEY", "strains.txt"),
		StrainS3Region:    getEnv("STRAIN_S3_REGION", "us-east-1"),
		AWSAccessKeyID:    os.Getenv("AWS_ACCESS_KEY_ID"),
		AWSSecretKey:      os.Getenv("AWS_SECRET_ACCESS_KEY"),
		RateLimitRPS:      getFloat("RATE_LIMIT_RPS", 10),
		RateLimitBurst:    getInt("RATE_LIMIT_BURST", 20),
	}

	// Pick a driver from what is configured when none is given
	cfg.DBDriver = strings.ToLower(os.Getenv("DB_DRIVER"))
	if cfg.DBDriver == "" {
		if cfg.DatabaseURL != "" {
			cfg.DBDriver = DriverPostgres
		} else {
			cfg.DBDriver = DriverNone
		}
	}

	if cfg.ReviewThreshold < 0 || cfg.ReviewThreshold > 1 {
		log.Printf("⚠️ REVIEW_THRESHOLD %.2f out of range, using 0.5", cfg.ReviewThreshold)
		cfg.ReviewThreshold = 0.5
	}

	return cfg
}

// IsProduction reports whether ENV names a production deployment
func (c *Config) IsProduction() bool {
	return c.Env == "production" || c.Env == "prod"
}

// S3Enabled reports whether a strain list object is configured
func (c *Config) S3Enabled() bool {
	return c.StrainS3Bucket != ""
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getFloat(key string, fallback float64) float64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		log.Printf("⚠️ invalid %s=%q, using %v", key, v, fallback)
		return fallback
	}
	return f
}

func getInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Printf("⚠️ invalid %s=%q, using %d", key, v, fallback)
		return fallback
	}
	return n
}

func getBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		log.Printf("⚠️ invalid %s=%q, using %t", key, v, fallback)
		return fallback
	}
	return b
}

func getDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		log.Printf("⚠️ invalid %s=%q, using %s", key, v, fallback)
		return fallback
	}
	return d
}
