package payments

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"globalpartner_checkout/internal/infrastructure/metrics"
	"globalpartner_checkout/internal/infrastructure/retry"
)

var ErrProviderAuthentication = errors.New("payment provider authentication failed")

const (
	defaultMaxRetries = 3
	defaultBaseDelay  = time.Second
	defaultMaxDelay   = 30 * time.Second
	tokenSafetyBuffer = 5 * time.Minute
)

// CredentialStyle selects how the client-credentials exchange is encoded.
type CredentialStyle int

const (
	// CredentialsJSON posts client_id/client_secret in a JSON body.
	CredentialsJSON CredentialStyle = iota
	// CredentialsBasicForm posts a form body and sends the credentials as
	// HTTP basic auth.
	CredentialsBasicForm
)

type ProviderClientConfig struct {
	Provider     string
	BaseURL      string
	TokenPath    string
	ClientID     string
	ClientSecret string
	Credentials  CredentialStyle
	HTTPClient   *http.Client
	MaxRetries   int
	BaseDelay    time.Duration
	MaxDelay     time.Duration

	// Sleep and Now are overridable for tests.
	Sleep func(ctx context.Context, d time.Duration) error
	Now   func() time.Time
}

// ProviderError is a non-2xx answer from a payment provider.
type ProviderError struct {
	Provider string
	Status   int
	Message  string
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("%s: http %d: %s", e.Provider, e.Status, e.Message)
}

// Temporary reports whether the failure may go away on retry.
func (e *ProviderError) Temporary() bool {
	return e.Status == http.StatusUnauthorized || e.Status == http.StatusTooManyRequests || e.Status >= 500
}

type transportError struct {
	err error
}

func (e *transportError) Error() string { return e.err.Error() }
func (e *transportError) Unwrap() error { return e.err }

// ProviderClient owns the access token of one payment provider and performs
// authenticated JSON calls against it. Retries live here and nowhere else.
type ProviderClient struct {
	cfg    ProviderClientConfig
	policy retry.Policy

	mu        sync.Mutex
	token     string
	expiresAt time.Time
}

func NewProviderClient(cfg ProviderClientConfig) *ProviderClient {
	if cfg.HTTPClient == nil {
		cfg.HTTPClient = &http.Client{Timeout: 30 * time.Second}
	}
	if cfg.MaxRetries <= 0 {
		cfg.MaxRetries = defaultMaxRetries
	}
	if cfg.BaseDelay <= 0 {
		cfg.BaseDelay = defaultBaseDelay
	}
	if cfg.MaxDelay <= 0 {
		cfg.MaxDelay = defaultMaxDelay
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")

	c := &ProviderClient{cfg: cfg}
	backoff := retry.Exponential(cfg.BaseDelay, cfg.MaxDelay)
	c.policy = retry.Policy{
		MaxRetries:  cfg.MaxRetries,
		ShouldRetry: isRetryableProviderError,
		Delay: func(attempt int, err error) time.Duration {
			var pe *ProviderError
			if errors.As(err, &pe) && pe.Status == http.StatusUnauthorized {
				return 0
			}
			return backoff(attempt, err)
		},
		Sleep: cfg.Sleep,
		OnRetry: func(attempt int, err error, wait time.Duration) {
			metrics.ProviderRequestsTotal.WithLabelValues(cfg.Provider, "retry").Inc()
			log.Printf("[payment][%s] retrying attempt=%d wait=%s err=%v", cfg.Provider, attempt+1, wait, err)
		},
	}
	return c
}

func isRetryableProviderError(err error) bool {
	var pe *ProviderError
	if errors.As(err, &pe) {
		return pe.Temporary()
	}
	var te *transportError
	return errors.As(err, &te)
}

// AccessToken returns the cached bearer token, exchanging credentials when it
// is missing or within the safety buffer of its expiry.
func (c *ProviderClient) AccessToken(ctx context.Context) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.token != "" && c.cfg.Now().Before(c.expiresAt) {
		return c.token, nil
	}

	token, expiresIn, err := c.exchangeCredentials(ctx)
	if err != nil {
		return "", err
	}
	c.token = token
	c.expiresAt = c.cfg.Now().Add(time.Duration(expiresIn)*time.Second - tokenSafetyBuffer)
	log.Printf("[payment][%s] access token refreshed expires_in=%ds", c.cfg.Provider, expiresIn)
	return c.token, nil
}

func (c *ProviderClient) invalidateToken() {
	c.mu.Lock()
	c.token = ""
	c.expiresAt = time.Time{}
	c.mu.Unlock()
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int64  `json:"expires_in"`
}

func (c *ProviderClient) exchangeCredentials(ctx context.Context) (string, int64, error) {
	var (
		body        io.Reader
		contentType string
	)
	switch c.cfg.Credentials {
	case CredentialsBasicForm:
		form := url.Values{"grant_type": {"client_credentials"}}
		body = strings.NewReader(form.Encode())
		contentType = "application/x-www-form-urlencoded"
	default:
		b, err := json.Marshal(map[string]string{
			"client_id":     c.cfg.ClientID,
			"client_secret": c.cfg.ClientSecret,
			"grant_type":    "client_credentials",
		})
		if err != nil {
			return "", 0, err
		}
		body = bytes.NewReader(b)
		contentType = "application/json"
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.BaseURL+c.cfg.TokenPath, body)
	if err != nil {
		return "", 0, err
	}
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Accept", "application/json")
	if c.cfg.Credentials == CredentialsBasicForm {
		req.SetBasicAuth(c.cfg.ClientID, c.cfg.ClientSecret)
	}

	resp, err := c.cfg.HTTPClient.Do(req)
	if err != nil {
		return "", 0, &transportError{err: fmt.Errorf("%s token request: %w", c.cfg.Provider, err)}
	}
	defer resp.Body.Close()
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<20))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		log.Printf("[payment][%s] token exchange failed status=%d", c.cfg.Provider, resp.StatusCode)
		return "", 0, fmt.Errorf("%w: %s: %s", ErrProviderAuthentication, c.cfg.Provider, providerMessage(resp, raw))
	}

	var tr tokenResponse
	if err := json.Unmarshal(raw, &tr); err != nil || tr.AccessToken == "" {
		return "", 0, fmt.Errorf("%w: %s: token response without access_token", ErrProviderAuthentication, c.cfg.Provider)
	}
	return tr.AccessToken, tr.ExpiresIn, nil
}

// Do performs an authenticated JSON request and decodes the response into
// out. A 2xx answer with no JSON body leaves out untouched.
func (c *ProviderClient) Do(ctx context.Context, method, path string, body any, out any) error {
	var payload []byte
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("%s: encode request: %w", c.cfg.Provider, err)
		}
		payload = b
	}

	err := c.policy.Do(ctx, func(ctx context.Context, attempt int) error {
		return c.attempt(ctx, method, path, payload, out)
	})
	if err != nil {
		var exhausted *retry.ExhaustedError
		if errors.As(err, &exhausted) {
			metrics.ProviderRequestsTotal.WithLabelValues(c.cfg.Provider, "exhausted").Inc()
			log.Printf("[payment][%s] %s %s exhausted retries attempts=%d err=%v", c.cfg.Provider, method, path, exhausted.Attempts, exhausted.Last)
		} else {
			metrics.ProviderRequestsTotal.WithLabelValues(c.cfg.Provider, "error").Inc()
			log.Printf("[payment][%s] %s %s failed err=%v", c.cfg.Provider, method, path, err)
		}
		return err
	}
	metrics.ProviderRequestsTotal.WithLabelValues(c.cfg.Provider, "success").Inc()
	return nil
}

func (c *ProviderClient) attempt(ctx context.Context, method, path string, payload []byte, out any) error {
	token, err := c.AccessToken(ctx)
	if err != nil {
		return err
	}

	var body io.Reader
	if payload != nil {
		body = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.cfg.BaseURL+path, body)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.cfg.HTTPClient.Do(req)
	if err != nil {
		return &transportError{err: fmt.Errorf("%s %s: %w", method, path, err)}
	}
	defer resp.Body.Close()
	raw, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return &transportError{err: fmt.Errorf("%s %s: read body: %w", method, path, err)}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		if resp.StatusCode == http.StatusUnauthorized {
			c.invalidateToken()
		}
		return &ProviderError{Provider: c.cfg.Provider, Status: resp.StatusCode, Message: providerMessage(resp, raw)}
	}

	if out == nil || resp.StatusCode == http.StatusNoContent || len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}
	if !strings.Contains(strings.ToLower(resp.Header.Get("Content-Type")), "json") {
		log.Printf("[payment][%s] %s %s non-json response content_type=%q", c.cfg.Provider, method, path, resp.Header.Get("Content-Type"))
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("%s %s: decode response: %w", method, path, err)
	}
	return nil
}

// providerMessage extracts the provider's error text, falling back to
// "<status> <statusText>".
func providerMessage(resp *http.Response, raw []byte) string {
	fallback := resp.Status
	if fallback == "" {
		fallback = fmt.Sprintf("%d %s", resp.StatusCode, http.StatusText(resp.StatusCode))
	}

	var body map[string]any
	if err := json.Unmarshal(raw, &body); err != nil {
		return fallback
	}
	for _, key := range []string{"message", "error_description", "error"} {
		if s, ok := body[key].(string); ok && strings.TrimSpace(s) != "" {
			return s
		}
	}
	switch errs := body["errors"].(type) {
	case []any:
		for _, e := range errs {
			if m, ok := e.(map[string]any); ok {
				if s, ok := m["message"].(string); ok && s != "" {
					return s
				}
			}
			if s, ok := e.(string); ok && s != "" {
				return s
			}
		}
	case map[string]any:
		for field, v := range errs {
			if list, ok := v.([]any); ok && len(list) > 0 {
				return fmt.Sprintf("%s: %v", field, list[0])
			}
		}
	}
	return fallback
}
