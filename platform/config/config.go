// Package config provides application configuration loading.
// This is part of the platform layer and contains no business logic.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// =============================================================================
// Module-Specific Config Interfaces (Principle of Least Privilege)
// =============================================================================

// HTTPConfig provides settings for the HTTP server.
type HTTPConfig interface {
	GetHTTPAddr() string
	GetCORSAllowAll() bool
	GetCORSOrigins() []string
}

// OpenDataConfig provides settings for the NYC Open Data (Socrata) client.
type OpenDataConfig interface {
	GetOpenDataBaseURL() string
	GetOpenDataAppToken() string
	GetOpenDataTimeout() time.Duration
	GetOpenDataCoreTimeout() time.Duration
	GetOpenDataPortfolioTimeout() time.Duration
	GetOpenDataCacheTTL() time.Duration
	GetOpenDataDatasetsFile() string
}

// CacheConfig provides settings for the shared response cache.
type CacheConfig interface {
	GetRedisURL() string
	GetRedisTLSInsecure() bool
	IsRedisEnabled() bool
}

// DatabaseConfig provides database connection settings.
type DatabaseConfig interface {
	GetDatabaseURL() string
	IsDatabaseEnabled() bool
}

// SchedulerConfig provides settings for the asynq warm-up queue.
type SchedulerConfig interface {
	GetRedisURL() string
	GetRedisTLSInsecure() bool
	GetAsynqQueueName() string
	GetAsynqConcurrency() int
}

// RateLimitConfig provides settings for the public lookup limiter.
type RateLimitConfig interface {
	GetLookupRatePerMinute() int
	GetLookupRateBurst() int
}

// =============================================================================
// Main Config Struct
// =============================================================================

// Config holds all application configuration values.
type Config struct {
	Env                      string
	HTTPAddr                 string
	CORSAllowAll             bool
	CORSOrigins              []string
	OpenDataBaseURL          string
	OpenDataAppToken         string
	OpenDataTimeout          time.Duration
	OpenDataCoreTimeout      time.Duration
	OpenDataPortfolioTimeout time.Duration
	OpenDataCacheTTL         time.Duration
	OpenDataDatasetsFile     string
	RedisURL                 string
	RedisTLSInsecure         bool
	AsynqQueueName           string
	AsynqConcurrency         int
	DatabaseURL              string
	LookupRatePerMinute      int
	LookupRateBurst          int
}

// =============================================================================
// Interface Implementations
// =============================================================================

// HTTPConfig implementation
func (c *Config) GetHTTPAddr() string      { return c.HTTPAddr }
func (c *Config) GetCORSAllowAll() bool    { return c.CORSAllowAll }
func (c *Config) GetCORSOrigins() []string { return c.CORSOrigins }

// OpenDataConfig implementation
func (c *Config) GetOpenDataBaseURL() string                 { return c.OpenDataBaseURL }
func (c *Config) GetOpenDataAppToken() string                { return c.OpenDataAppToken }
func (c *Config) GetOpenDataTimeout() time.Duration          { return c.OpenDataTimeout }
func (c *Config) GetOpenDataCoreTimeout() time.Duration      { return c.OpenDataCoreTimeout }
func (c *Config) GetOpenDataPortfolioTimeout() time.Duration { return c.OpenDataPortfolioTimeout }
func (c *Config) GetOpenDataCacheTTL() time.Duration         { return c.OpenDataCacheTTL }
func (c *Config) GetOpenDataDatasetsFile() string            { return c.OpenDataDatasetsFile }

// CacheConfig / SchedulerConfig implementation
func (c *Config) GetRedisURL() string       { return c.RedisURL }
func (c *Config) GetRedisTLSInsecure() bool { return c.RedisTLSInsecure }
func (c *Config) IsRedisEnabled() bool      { return c.RedisURL != "" }
func (c *Config) GetAsynqQueueName() string { return c.AsynqQueueName }
func (c *Config) GetAsynqConcurrency() int  { return c.AsynqConcurrency }

// DatabaseConfig implementation
func (c *Config) GetDatabaseURL() string  { return c.DatabaseURL }
func (c *Config) IsDatabaseEnabled() bool { return c.DatabaseURL != "" }

// RateLimitConfig implementation
func (c *Config) GetLookupRatePerMinute() int { return c.LookupRatePerMinute }
func (c *Config) GetLookupRateBurst() int     { return c.LookupRateBurst }

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	_ = godotenv.Load()

	corsOrigins := splitCSV(getEnv("CORS_ORIGINS", "http://localhost:3000"))
	corsAllowAll := strings.EqualFold(getEnv("CORS_ALLOW_ALL", "false"), "true")
	if containsWildcard(corsOrigins) {
		corsAllowAll = true
	}

	cfg := &Config{
		Env:                      getEnv("APP_ENV", "development"),
		HTTPAddr:                 getEnv("HTTP_ADDR", ":8080"),
		CORSAllowAll:             corsAllowAll,
		CORSOrigins:              corsOrigins,
		OpenDataBaseURL:          strings.TrimRight(getEnv("OPEN_DATA_BASE_URL", "https://data.cityofnewyork.us"), "/"),
		OpenDataAppToken:         getEnv("OPEN_DATA_APP_TOKEN", ""),
		OpenDataTimeout:          durationOr(getEnv("OPEN_DATA_TIMEOUT", ""), 3500*time.Millisecond),
		OpenDataCoreTimeout:      durationOr(getEnv("OPEN_DATA_CORE_TIMEOUT", ""), 6500*time.Millisecond),
		OpenDataPortfolioTimeout: durationOr(getEnv("OPEN_DATA_PORTFOLIO_TIMEOUT", ""), 8*time.Second),
		OpenDataCacheTTL:         durationOr(getEnv("OPEN_DATA_CACHE_TTL", ""), 5*time.Minute),
		OpenDataDatasetsFile:     getEnv("OPEN_DATA_DATASETS_FILE", ""),
		RedisURL:                 getEnv("REDIS_URL", ""),
		RedisTLSInsecure:         strings.EqualFold(getEnv("REDIS_TLS_INSECURE", "false"), "true"),
		AsynqQueueName:           getEnv("ASYNQ_QUEUE", "default"),
		AsynqConcurrency:         positiveIntOr(getEnv("ASYNQ_CONCURRENCY", ""), 10),
		DatabaseURL:              getEnv("DATABASE_URL", ""),
		LookupRatePerMinute:      positiveIntOr(getEnv("LOOKUP_RATE_PER_MINUTE", ""), 60),
		LookupRateBurst:          positiveIntOr(getEnv("LOOKUP_RATE_BURST", ""), 20),
	}

	if cfg.OpenDataBaseURL == "" {
		return nil, fmt.Errorf("OPEN_DATA_BASE_URL must not be empty")
	}
	if cfg.OpenDataCoreTimeout < cfg.OpenDataTimeout {
		return nil, fmt.Errorf("OPEN_DATA_CORE_TIMEOUT must be >= OPEN_DATA_TIMEOUT")
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if val, ok := os.LookupEnv(key); ok {
		return strings.TrimSpace(val)
	}
	return fallback
}

func durationOr(value string, fallback time.Duration) time.Duration {
	if value == "" {
		return fallback
	}
	d, err := time.ParseDuration(value)
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}

func positiveIntOr(value string, fallback int) int {
	if value == "" {
		return fallback
	}
	n, err := strconv.Atoi(value)
	if err != nil || n <= 0 {
		return fallback
	}
	return n
}

func splitCSV(value string) []string {
	parts := strings.Split(value, ",")
	results := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			results = append(results, trimmed)
		}
	}
	return results
}

func containsWildcard(values []string) bool {
	for _, value := range values {
		if value == "*" {
			return true
		}
	}
	return false
}
