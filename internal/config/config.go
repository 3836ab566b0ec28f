// Package config handles application configuration from the environment.
package config

import (
	"os"
	"strings"
)

// Config holds the runtime configuration for the server process.
type Config struct {
	ListenAddr         string   // HTTP/RPC listen address (default ":8080")
	DBPath             string   // path to the SQLite database file
	LogLevel           string   // log level: debug, info, warn, error (default "info")
	Env                string   // environment: "development" (default) or "production"
	CORSAllowedOrigins []string // allowed origins for CORS (default: ["*"])
}

// Load builds a Config from environment variables, applying defaults for
// anything unset.
func Load() *Config {
	return &Config{
		ListenAddr:         getEnv("LISTEN_ADDR", ":8080"),
		DBPath:             getEnv("DB_PATH", "./data/community.db"),
		LogLevel:           getEnv("LOG_LEVEL", "info"),
		Env:                getEnv("ENV", "development"),
		CORSAllowedOrigins: splitList(getEnv("CORS_ALLOWED_ORIGINS", "*")),
	}
}

// IsProduction reports whether the process runs in production mode.
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func splitList(value string) []string {
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
