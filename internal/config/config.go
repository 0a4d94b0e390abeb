// Package config loads runtime configuration from the environment.
package config

import (
	"os"

	"cashlens/internal/llm"
)

// Config holds everything the process reads from its environment. Engine
// parameters (risk threshold, projection horizon, lookback window) are
// product constants and deliberately not configurable.
type Config struct {
	Server ServerConfig
	LLM    LLMConfig
}

type ServerConfig struct {
	Port string
}

type LLMConfig struct {
	Model string
	// APIKeySet reports whether a model API key is present in the
	// environment. The genai client reads the key itself; this is only
	// for startup diagnostics.
	APIKeySet bool
}

// Load reads configuration from the environment, applying defaults.
func Load() *Config {
	return &Config{
		Server: ServerConfig{
			Port: getEnv("CASHLENS_PORT", "8080"),
		},
		LLM: LLMConfig{
			Model:     getEnv("CASHLENS_MODEL", llm.DefaultModel),
			APIKeySet: os.Getenv("GEMINI_API_KEY") != "" || os.Getenv("GOOGLE_API_KEY") != "",
		},
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
