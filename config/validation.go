package config

// MissingCredentials returns the environment variable names of required
// external credentials that are absent. Only names are returned, never
// values, so the result is safe to surface to callers.
func (c *Config) MissingCredentials() []string {
	var missing []string
	if c.AnthropicAPIKey == "" {
		missing = append(missing, "ANTHROPIC_CLAUDE_API_KEY")
	}
	if c.RecaptchaSecretKey == "" {
		missing = append(missing, "RECAPTCHA_SECRET_KEY")
	}
	if c.FrontendSecretKey == "" {
		missing = append(missing, "SECRET_FRONTEND_KEY")
	}
	if c.RedisURL == "" && c.RedisHost == "" {
		missing = append(missing, "REDIS_URL")
	}
	return missing
}
