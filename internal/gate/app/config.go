package app

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	Issuer   string // Required: issuer claim for tokens
	Audience string // Required: audience claim for tokens
	Secret   string // Required: HMAC signing secret, at least 16 bytes

	TokenTTL            time.Duration // Optional: access token lifetime (default: 3h)
	DatabaseFile        string        // Optional: path to SQLite database file (default: ./gate.db)
	Env                 string        // Environment (dev, staging, prod) (default: dev)
	LogLevel            string        // Log level (debug, info, warn, error) (default: info)
	LogFormat           string        // Log format (json, text) (default: json)
	Port                int           // HTTP server port (default: 8080)
	ShutdownGracePeriod time.Duration // Graceful shutdown timeout (default: 10s)
}

func LoadConfig() Config {
	cfg := Config{
		Issuer:              getEnvOrDefault("GATE_ISSUER", "gatehouse"),
		Audience:            getEnvOrDefault("GATE_AUDIENCE", "gatehouse-api"),
		Secret:              os.Getenv("GATE_SECRET"),
		TokenTTL:            getEnvDurationOrDefault("GATE_TOKEN_TTL", 3*time.Hour),
		DatabaseFile:        getEnvOrDefault("GATE_DATABASE_FILE", "gate.db"),
		Env:                 getEnvOrDefault("ENV", "dev"),
		LogLevel:            getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:           getEnvOrDefault("LOG_FORMAT", "json"),
		Port:                getEnvIntOrDefault("PORT", 8080),
		ShutdownGracePeriod: getEnvDurationOrDefault("SHUTDOWN_GRACE_PERIOD", 10*time.Second),
	}

	return cfg
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if intValue, err := strconv.Atoi(value); err == nil {
		return intValue
	}

	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	// e.g. "3h", "30m", "90s"
	if duration, err := time.ParseDuration(value); err == nil {
		return duration
	}

	return defaultValue
}
