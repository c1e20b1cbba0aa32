package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Addr                  string
	DatabaseURL           string
	Environment           string
	JWTSecret             string
	TokenTTL              time.Duration
	CORSOrigins           []string
	WorkdayHours          float64
	ReconcileChannel      string
	RecoverySweepInterval time.Duration
	ListenerRetryBackoff  time.Duration
	MaxBodyBytes          int64
	RunMigrations         bool
	RunSeed               bool
	SeedAdminName         string
	SeedAdminUsername     string
	SeedAdminEmail        string
	SeedAdminPassword     string
	SeedAdminSection      string
	MetricsEnabled        bool
}

func Load() Config {
	return Config{
		Addr:                  getEnv("APP_ADDR", ":8080"),
		DatabaseURL:           getEnv("DATABASE_URL", ""),
		Environment:           getEnv("APP_ENV", "development"),
		JWTSecret:             getEnv("JWT_SECRET", ""),
		TokenTTL:              getEnvDuration("TOKEN_TTL", 12*time.Hour),
		CORSOrigins:           getEnvList("CORS_ORIGINS", "http://localhost:8081"),
		WorkdayHours:          getEnvFloat("WORKDAY_HOURS", 8),
		ReconcileChannel:      getEnv("RECONCILE_CHANNEL", "leave_request_events"),
		RecoverySweepInterval: getEnvDuration("RECOVERY_SWEEP_INTERVAL", 5*time.Minute),
		ListenerRetryBackoff:  getEnvDuration("LISTENER_RETRY_BACKOFF", 5*time.Second),
		MaxBodyBytes:          int64(getEnvInt("MAX_BODY_BYTES", 1048576)),
		RunMigrations:         getEnvBool("RUN_MIGRATIONS", true),
		RunSeed:               getEnvBool("RUN_SEED", true),
		SeedAdminName:         getEnv("SEED_ADMIN_NAME", "Administrator"),
		SeedAdminUsername:     getEnv("SEED_ADMIN_USERNAME", "admin"),
		SeedAdminEmail:        getEnv("SEED_ADMIN_EMAIL", ""),
		SeedAdminPassword:     getEnv("SEED_ADMIN_PASSWORD", ""),
		SeedAdminSection:      getEnv("SEED_ADMIN_SECTION", "General"),
		MetricsEnabled:        getEnvBool("METRICS_ENABLED", true),
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvInt(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvFloat(key string, fallback float64) float64 {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil || parsed <= 0 {
		return fallback
	}
	return parsed
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := time.ParseDuration(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvList(key, fallback string) []string {
	value := os.Getenv(key)
	if value == "" {
		value = fallback
	}
	var out []string
	for _, part := range strings.Split(value, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
