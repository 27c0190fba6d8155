package config

import (
	"os"
)

const (
	// Default listen address for the API server
	defaultAddress = ":8001"

	// Default model API URL (Anthropic-style messages endpoint)
	defaultModelAPIURL = "https://api.anthropic.com/v1/messages"

	// Default model used for plan generation and knowledge queries
	defaultModel = "claude-3-5-haiku-20241022"
)

// Config holds application configuration
type Config struct {
	Address     string
	DBPath      string
	ModelAPIURL string
	ModelAPIKey string
	Model       string
}

// globalConfig holds the application configuration instance
var globalConfig *Config

// Initialize sets up the configuration from environment variables
func Initialize() {
	globalConfig = &Config{
		Address:     getEnv("PT_ADDRESS", defaultAddress),
		DBPath:      os.Getenv("PT_DB_PATH"), // empty means the default data dir
		ModelAPIURL: getModelAPIURL(),
		ModelAPIKey: os.Getenv("PT_MODEL_API_KEY"),
		Model:       getEnv("PT_MODEL", defaultModel),
	}
}

// Get returns the global configuration instance
func Get() *Config {
	if globalConfig == nil {
		Initialize()
	}
	return globalConfig
}

// getModelAPIURL returns the model API URL from environment or default
func getModelAPIURL() string {
	// PT_MODEL_PROXY routes model traffic through a local proxy
	if proxyURL := os.Getenv("PT_MODEL_PROXY"); proxyURL != "" {
		return proxyURL + "/v1/messages"
	}
	return getEnv("PT_MODEL_API_URL", defaultModelAPIURL)
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}
