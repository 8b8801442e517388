package service

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
)

// Tokens scoring below this are treated as bots.
const recaptchaScoreThreshold = 0.5

// RecaptchaService verifies client tokens against the reCAPTCHA siteverify
// endpoint.
type RecaptchaService struct {
	secretKey string
	verifyURL string
	client    *http.Client
}

// NewRecaptchaService creates a new RecaptchaService instance
func NewRecaptchaService(secretKey, verifyURL string) *RecaptchaService {
	return &RecaptchaService{
		secretKey: secretKey,
		verifyURL: verifyURL,
		client:    http.DefaultClient,
	}
}

type siteVerifyResponse struct {
	Success    bool     `json:"success"`
	Score      *float64 `json:"score"`
	ErrorCodes []string `json:"error-codes"`
}

// Verify submits the token to the verification service. It returns false when
// the service rejects the token or reports a score below the threshold; an
// error only when the service could not be reached or answered unusably.
func (s *RecaptchaService) Verify(ctx context.Context, token string) (bool, error) {
	form := url.Values{
		"secret":   {s.secretKey},
		"response": {token},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.verifyURL, strings.NewReader(form.Encode()))
	if err != nil {
		return false, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := s.client.Do(req)
	if err != nil {
		return false, fmt.Errorf("failed to reach reCAPTCHA: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return false, fmt.Errorf("reCAPTCHA request failed with status %d", resp.StatusCode)
	}

	var result siteVerifyResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return false, fmt.Errorf("failed to decode reCAPTCHA response: %w", err)
	}

	if !result.Success {
		return false, nil
	}
	// v3 responses carry a score; v2 responses do not.
	if result.Score != nil && *result.Score < recaptchaScoreThreshold {
		return false, nil
	}
	return true, nil
}
