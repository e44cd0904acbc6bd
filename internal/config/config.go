package config

import (
	"os"
)

// Config holds all configuration loaded from environment variables.
type Config struct {
	ListenAddr string // HTTP listen address
}

// Load reads configuration from environment variables, falling back to
// defaults.
func Load() *Config {
	return &Config{
		ListenAddr: envOrDefault("LISTEN_ADDR", ":8080"),
	}
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
