// Package config loads and validates application configuration from environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Data source kinds accepted by DATA_SOURCE.
const (
	SourceMemory   = "memory"
	SourceHTTP     = "http"
	SourcePostgres = "postgres"
	SourceRedis    = "redis"
)

// Config holds all configuration values for the API server.
// Values are populated by Load from environment variables.
type Config struct {
	// Port is the TCP port the HTTP server listens on. Defaults to "8080".
	Port string

	// LogLevel controls the minimum log level. Defaults to "info".
	// Valid values: debug, info, warn, error.
	LogLevel string

	// CORSOrigins is the list of allowed cross-origin request origins.
	// Defaults to the local web frontend dev server origins.
	// Set CORS_ORIGINS to a comma-separated list to override.
	CORSOrigins []string

	// DataSource selects the trail backend: memory, http, postgres or redis.
	// Defaults to "memory", which serves the embedded sample trails.
	DataSource string

	// TrailsAPIURL is the base URL of the remote trails API. Required for http.
	TrailsAPIURL string
	// TrailsAPITimeout bounds each remote request. Defaults to 30s.
	TrailsAPITimeout time.Duration
	// TrailsAPIRPS limits outbound requests per second. 0 means unlimited.
	TrailsAPIRPS float64

	// DatabaseURL is the Postgres connection string. Required for postgres.
	DatabaseURL string
	// DBAutoMigrate runs the embedded goose migrations at startup. Defaults to true.
	DBAutoMigrate bool

	RedisAddr     string
	RedisPassword string
	RedisKey      string
	// RedisSeedSample writes the embedded sample trails to RedisKey at startup.
	RedisSeedSample bool
}

// Load reads configuration from environment variables and returns a Config.
// Every invalid value and every missing required variable is reported in a
// single joined error.
func Load() (Config, error) {
	cfg := Config{
		Port:          getEnv("PORT", "8080"),
		LogLevel:      getEnv("LOG_LEVEL", "info"),
		CORSOrigins:   splitCSV(getEnv("CORS_ORIGINS", "http://localhost:3000,http://127.0.0.1:3000")),
		DataSource:    strings.ToLower(getEnv("DATA_SOURCE", SourceMemory)),
		TrailsAPIURL:  os.Getenv("TRAILS_API_URL"),
		DatabaseURL:   os.Getenv("DATABASE_URL"),
		RedisAddr:     getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		RedisKey:      getEnv("REDIS_KEY", "sftrails:trails"),
	}

	var errs []error
	var missing []string

	var err error
	if cfg.TrailsAPITimeout, err = time.ParseDuration(getEnv("TRAILS_API_TIMEOUT", "30s")); err != nil || cfg.TrailsAPITimeout <= 0 {
		errs = append(errs, fmt.Errorf("TRAILS_API_TIMEOUT: must be a positive duration, got %q", os.Getenv("TRAILS_API_TIMEOUT")))
	}
	if cfg.TrailsAPIRPS, err = strconv.ParseFloat(getEnv("TRAILS_API_RPS", "0"), 64); err != nil || cfg.TrailsAPIRPS < 0 {
		errs = append(errs, fmt.Errorf("TRAILS_API_RPS: must be a number >= 0, got %q", os.Getenv("TRAILS_API_RPS")))
	}
	if cfg.DBAutoMigrate, err = strconv.ParseBool(getEnv("DB_AUTO_MIGRATE", "true")); err != nil {
		errs = append(errs, fmt.Errorf("DB_AUTO_MIGRATE: must be a boolean, got %q", os.Getenv("DB_AUTO_MIGRATE")))
	}
	if cfg.RedisSeedSample, err = strconv.ParseBool(getEnv("REDIS_SEED_SAMPLE", "false")); err != nil {
		errs = append(errs, fmt.Errorf("REDIS_SEED_SAMPLE: must be a boolean, got %q", os.Getenv("REDIS_SEED_SAMPLE")))
	}

	switch cfg.DataSource {
	case SourceMemory, SourceRedis:
	case SourceHTTP:
		if cfg.TrailsAPIURL == "" {
			missing = append(missing, "TRAILS_API_URL")
		}
	case SourcePostgres:
		if cfg.DatabaseURL == "" {
			missing = append(missing, "DATABASE_URL")
		}
	default:
		errs = append(errs, fmt.Errorf("DATA_SOURCE: unknown kind %q (want memory, http, postgres or redis)", cfg.DataSource))
	}

	if len(missing) > 0 {
		errs = append(errs, fmt.Errorf("required environment variables not set: %s", strings.Join(missing, ", ")))
	}
	if len(errs) > 0 {
		return Config{}, fmt.Errorf("config.Load: %w", errors.Join(errs...))
	}

	return cfg, nil
}

// getEnv returns the value of the environment variable named by key,
// or fallback if the variable is not set or is empty.
func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// splitCSV splits a comma-separated string into a trimmed slice, ignoring empty entries.
func splitCSV(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if t := strings.TrimSpace(part); t != "" {
			out = append(out, t)
		}
	}
	return out
}
