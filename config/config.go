package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/kelseyhightower/envconfig"
)

// Config holds all configuration for the application
type Config struct {
	// Server configuration
	ServerHost string `envconfig:"SERVER_HOST"`
	ServerPort string `envconfig:"SERVER_PORT" default:"8080"`

	// Anthropic configuration
	AnthropicAPIKey string `envconfig:"ANTHROPIC_CLAUDE_API_KEY"`
	AnthropicAPIURL string `envconfig:"ANTHROPIC_API_URL" default:"https://api.anthropic.com/v1/messages"`

	// reCAPTCHA configuration
	RecaptchaSecretKey string `envconfig:"RECAPTCHA_SECRET_KEY"`
	RecaptchaVerifyURL string `envconfig:"RECAPTCHA_VERIFY_URL" default:"https://www.google.com/recaptcha/api/siteverify"`
	RecaptchaBypass    bool   `envconfig:"RECAPTCHA_BYPASS" default:"false"`

	// Shared secret every frontend request must present
	FrontendSecretKey string `envconfig:"SECRET_FRONTEND_KEY"`

	// Redis configuration
	RedisURL      string `envconfig:"REDIS_URL"`
	RedisHost     string `envconfig:"REDIS_HOST"`
	RedisPort     string `envconfig:"REDIS_PORT" default:"6379"`
	RedisPassword string `envconfig:"REDIS_PASSWORD"`
	RedisDB       int    `envconfig:"REDIS_DB" default:"0"`

	CORSOrigins []string `envconfig:"CORS_ORIGINS" default:"http://localhost:5173"`
	LogLevel    string   `envconfig:"LOG_LEVEL" default:"info"`
}

// LoadConfig creates a new Config instance with values from environment
// variables. Secrets may alternatively be provided through *_FILE variables
// pointing at mounted secret files.
func LoadConfig() (*Config, error) {
	cfg := &Config{}
	if err := envconfig.Process("", cfg); err != nil {
		return nil, fmt.Errorf("failed to process environment: %w", err)
	}

	var err error
	if cfg.AnthropicAPIKey, err = withFileFallback(cfg.AnthropicAPIKey, "ANTHROPIC_CLAUDE_API_KEY_FILE"); err != nil {
		return nil, err
	}
	if cfg.RecaptchaSecretKey, err = withFileFallback(cfg.RecaptchaSecretKey, "RECAPTCHA_SECRET_KEY_FILE"); err != nil {
		return nil, err
	}
	if cfg.FrontendSecretKey, err = withFileFallback(cfg.FrontendSecretKey, "SECRET_FRONTEND_KEY_FILE"); err != nil {
		return nil, err
	}

	return cfg, nil
}

// ServerAddr returns the host:port the HTTP server should listen on.
func (c *Config) ServerAddr() string {
	return c.ServerHost + ":" + c.ServerPort
}

// withFileFallback returns value unchanged when set, otherwise reads the
// secret file named by the fileEnv variable, if any.
func withFileFallback(value, fileEnv string) (string, error) {
	if value != "" {
		return value, nil
	}
	path := os.Getenv(fileEnv)
	if path == "" {
		return "", nil
	}
	content, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read secret file %s: %w", fileEnv, err)
	}
	return strings.TrimSpace(string(content)), nil
}
