package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	for _, name := range []string{
		"SERVER_HOST", "SERVER_PORT",
		"ANTHROPIC_CLAUDE_API_KEY", "ANTHROPIC_CLAUDE_API_KEY_FILE", "ANTHROPIC_API_URL",
		"RECAPTCHA_SECRET_KEY", "RECAPTCHA_SECRET_KEY_FILE", "RECAPTCHA_VERIFY_URL", "RECAPTCHA_BYPASS",
		"SECRET_FRONTEND_KEY", "SECRET_FRONTEND_KEY_FILE",
		"REDIS_URL", "REDIS_HOST", "REDIS_PORT", "REDIS_PASSWORD", "REDIS_DB",
		"CORS_ORIGINS", "LOG_LEVEL",
	} {
		t.Setenv(name, "")
		os.Unsetenv(name)
	}
}

func TestLoadConfig(t *testing.T) {
	clearEnv(t)
	t.Setenv("ANTHROPIC_CLAUDE_API_KEY", "sk-test")
	t.Setenv("RECAPTCHA_SECRET_KEY", "captcha-secret")
	t.Setenv("SECRET_FRONTEND_KEY", "frontend-secret")
	t.Setenv("REDIS_URL", "redis://localhost:6379")
	t.Setenv("SERVER_PORT", "9090")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Equal(t, "sk-test", cfg.AnthropicAPIKey)
	assert.Equal(t, "captcha-secret", cfg.RecaptchaSecretKey)
	assert.Equal(t, "frontend-secret", cfg.FrontendSecretKey)
	assert.Equal(t, "redis://localhost:6379", cfg.RedisURL)
	assert.Equal(t, ":9090", cfg.ServerAddr())
	assert.Empty(t, cfg.MissingCredentials())
}

func TestLoadConfigDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.ServerPort)
	assert.Equal(t, "https://api.anthropic.com/v1/messages", cfg.AnthropicAPIURL)
	assert.Equal(t, "https://www.google.com/recaptcha/api/siteverify", cfg.RecaptchaVerifyURL)
	assert.False(t, cfg.RecaptchaBypass)
	assert.Equal(t, []string{"http://localhost:5173"}, cfg.CORSOrigins)
}

func TestMissingCredentials(t *testing.T) {
	clearEnv(t)

	cfg, err := LoadConfig()
	require.NoError(t, err)

	missing := cfg.MissingCredentials()
	assert.Equal(t, []string{
		"ANTHROPIC_CLAUDE_API_KEY",
		"RECAPTCHA_SECRET_KEY",
		"SECRET_FRONTEND_KEY",
		"REDIS_URL",
	}, missing)

	// Host-based Redis configuration counts as a configured store.
	cfg.RedisHost = "localhost"
	assert.NotContains(t, cfg.MissingCredentials(), "REDIS_URL")
}

func TestSecretFileFallback(t *testing.T) {
	clearEnv(t)

	dir := t.TempDir()
	keyFile := filepath.Join(dir, "anthropic_key")
	require.NoError(t, os.WriteFile(keyFile, []byte("sk-from-file\n"), 0o600))

	t.Setenv("ANTHROPIC_CLAUDE_API_KEY_FILE", keyFile)

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "sk-from-file", cfg.AnthropicAPIKey)
}

func TestSecretFileFallbackMissingFile(t *testing.T) {
	clearEnv(t)
	t.Setenv("SECRET_FRONTEND_KEY_FILE", "/nonexistent/secret")

	_, err := LoadConfig()
	assert.Error(t, err)
}
