// Package config provides configuration loading and validation for the
// career intelligence engine. Configuration is loaded once at process start
// from the environment and treated as read-only afterwards.
package config

import (
	"fmt"
	"os"
	"strconv"
)

// Defaults for optional settings.
const (
	DefaultPort           = 8000
	DefaultOllamaURL      = "http://localhost:11434/api/generate"
	DefaultOllamaModel    = "llama3"
	DefaultGeminiModel    = "gemini-1.5-flash"
	DefaultRedisURL       = "redis://localhost:6379"
	DefaultWeaviateHost   = "localhost:8080"
	DefaultWeaviateScheme = "http"
	DefaultScorerURL      = "http://localhost:8501/score"
	DefaultJobsAPIURL     = "https://api.jobprovider.com/v1/search"
	DefaultEnvironment    = "production"
	DefaultMaxResumeMB    = 5
)

// Config holds all runtime configuration. All fields are immutable after Load.
type Config struct {
	// HTTP server
	Port int

	// LLM backends
	GeminiAPIKey string
	GeminiModel  string
	OllamaURL    string
	OllamaModel  string

	// Infrastructure
	RedisURL       string
	WeaviateHost   string
	WeaviateScheme string
	DatabaseURL    string // optional; empty disables run persistence

	// External services
	JobsAPIURL    string
	JobsAPIKey    string
	YouTubeAPIKey string
	ScorerURL     string

	// Observability
	OTLPEndpoint string // optional; empty disables trace export
	Environment  string

	// Limits
	MaxResumeMB int

	// Logging
	Debug   bool
	JSONLog bool
}

// Load reads configuration from the environment and applies defaults.
func Load() (*Config, error) {
	cfg := &Config{
		Port:           envInt("PORT", DefaultPort),
		GeminiAPIKey:   os.Getenv("GEMINI_API_KEY"),
		GeminiModel:    envOr("GEMINI_MODEL", DefaultGeminiModel),
		OllamaURL:      envOr("OLLAMA_URL", DefaultOllamaURL),
		OllamaModel:    envOr("OLLAMA_MODEL", DefaultOllamaModel),
		RedisURL:       envOr("REDIS_URL", DefaultRedisURL),
		WeaviateHost:   envOr("WEAVIATE_HOST", DefaultWeaviateHost),
		WeaviateScheme: envOr("WEAVIATE_SCHEME", DefaultWeaviateScheme),
		DatabaseURL:    os.Getenv("DATABASE_URL"),
		JobsAPIURL:     envOr("JOBS_API_URL", DefaultJobsAPIURL),
		JobsAPIKey:     os.Getenv("JOBS_API_KEY"),
		YouTubeAPIKey:  os.Getenv("YOUTUBE_API_KEY"),
		ScorerURL:      envOr("SCORER_URL", DefaultScorerURL),
		OTLPEndpoint:   os.Getenv("OTLP_ENDPOINT"),
		Environment:    envOr("ENV", DefaultEnvironment),
		MaxResumeMB:    envInt("MAX_RESUME_MB", DefaultMaxResumeMB),
		Debug:          envBool("DEBUG"),
		JSONLog:        envBool("LOG_JSON"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that the configuration has usable values.
func (c *Config) Validate() error {
	if c.GeminiAPIKey == "" {
		return fmt.Errorf("config error: GEMINI_API_KEY is required")
	}
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("config error: PORT must be in 1..65535, got %d", c.Port)
	}
	if c.MaxResumeMB <= 0 {
		return fmt.Errorf("config error: MAX_RESUME_MB must be positive, got %d", c.MaxResumeMB)
	}
	return nil
}

// MaxResumeBytes returns the upload size guard in bytes.
func (c *Config) MaxResumeBytes() int {
	return c.MaxResumeMB * 1024 * 1024
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func envBool(key string) bool {
	v, err := strconv.ParseBool(os.Getenv(key))
	return err == nil && v
}
