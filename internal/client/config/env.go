package config

import (
	"os"

	"github.com/joho/godotenv"
)

// Environment variables read by parseEnv.
const (
	EnvOriginHost   = "APP_HOST"
	EnvAPIBaseURL   = "API_GATEWAY_URL"
	EnvDatabasePath = "SESSION_DB"
	EnvLogLevel     = "LOG_LEVEL"
)

// parseEnv overlays Config with environment variables. A .env file in the
// working directory is loaded first when present; variables already set in
// the process environment win over the file.
func parseEnv(cfg *Config) {
	_ = godotenv.Load()

	cfg.OriginHost = getEnv(EnvOriginHost, cfg.OriginHost)
	cfg.APIBaseURL = getEnv(EnvAPIBaseURL, cfg.APIBaseURL)
	cfg.DatabasePath = getEnv(EnvDatabasePath, cfg.DatabasePath)
	cfg.LogLevel = getEnv(EnvLogLevel, cfg.LogLevel)
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}
