package captcha

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go-contact-relay/pkg/logger"
)

const (
	defaultVerifyURL = "https://www.google.com/recaptcha/api/siteverify"

	// Submissions scoring below this confidence are treated as bots.
	scoreThreshold = 0.3

	// Bounded timeout so a slow verification service cannot hold a
	// request open indefinitely.
	requestTimeout = 10 * time.Second

	maxResponseBytes = 1 << 20
)

// siteverifyResponse is the relevant subset of Google's reCAPTCHA v3
// verification response.
type siteverifyResponse struct {
	Success    bool     `json:"success"`
	Score      float64  `json:"score"`
	Hostname   string   `json:"hostname"`
	ErrorCodes []string `json:"error-codes,omitempty"`
}

// Client verifies reCAPTCHA v3 tokens against the siteverify API.
type Client struct {
	secret     string
	verifyURL  string
	httpClient *http.Client
}

// NewClient creates a verifier with the server-held secret. verifyURL
// overrides the Google endpoint; pass "" for the default.
func NewClient(secret, verifyURL string) *Client {
	if verifyURL == "" {
		verifyURL = defaultVerifyURL
	}
	return &Client{
		secret:     secret,
		verifyURL:  verifyURL,
		httpClient: &http.Client{Timeout: requestTimeout},
	}
}

// IsConfigured reports whether a secret key is present. Without one every
// verification rejects.
func (c *Client) IsConfigured() bool {
	return c.secret != ""
}

// Verify reports whether the token belongs to a human submission. An
// absent token rejects immediately with no network call. Transport
// failures, non-200 responses, and malformed bodies are indistinguishable
// from a low score: all reject. The caller never sees an error.
func (c *Client) Verify(ctx context.Context, token, remoteIP string) bool {
	if token == "" || c.secret == "" {
		return false
	}

	form := url.Values{
		"secret":   {c.secret},
		"response": {token},
	}
	if remoteIP != "" {
		form.Set("remoteip", remoteIP)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.verifyURL, strings.NewReader(form.Encode()))
	if err != nil {
		return false
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		logger.Log.Warn("captcha verification request failed", "error", err)
		return false
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		logger.Log.Warn("captcha verification returned non-200", "status", resp.StatusCode)
		return false
	}

	var result siteverifyResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxResponseBytes)).Decode(&result); err != nil {
		logger.Log.Warn("captcha verification body malformed", "error", err)
		return false
	}

	if !result.Success {
		logger.Log.Info("captcha verification unsuccessful", "error_codes", result.ErrorCodes)
		return false
	}

	return result.Score >= scoreThreshold
}
