package notifications

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"sync/atomic"
	"time"

	"globalpartner_checkout/internal/domain/entities"
	"globalpartner_checkout/internal/infrastructure/metrics"
	"globalpartner_checkout/internal/infrastructure/retry"
	"globalpartner_checkout/internal/usecase/interfaces"

	"golang.org/x/sync/errgroup"
)

const (
	AutomationEventOrderCompleted = "order_completed"

	automationAttemptTimeout = 30 * time.Second
	automationMaxRetries     = 3
	automationBaseDelay      = 500 * time.Millisecond
	automationMaxDelay       = 10 * time.Second
	maxLoggedResponse        = 10 * 1024
)

var ErrAutomationDelivery = errors.New("automation webhook delivery failed")

type automationStatusError struct {
	status int
}

func (e *automationStatusError) Error() string {
	return fmt.Sprintf("automation webhook answered http %d", e.status)
}

type automationTransportError struct {
	err error
}

func (e *automationTransportError) Error() string { return e.err.Error() }
func (e *automationTransportError) Unwrap() error { return e.err }

// AutomationClient relays completed orders to the n8n workflow webhook.
type AutomationClient struct {
	webhookURL     string
	httpClient     *http.Client
	attemptTimeout time.Duration
	policy         retry.Policy
}

var _ interfaces.IAutomationNotifier = (*AutomationClient)(nil)

type AutomationOption func(*AutomationClient)

// WithSleep replaces the backoff sleep, for tests.
func WithSleep(sleep func(ctx context.Context, d time.Duration) error) AutomationOption {
	return func(c *AutomationClient) { c.policy.Sleep = sleep }
}

func WithAttemptTimeout(d time.Duration) AutomationOption {
	return func(c *AutomationClient) { c.attemptTimeout = d }
}

func NewAutomationClient(webhookURL string, httpClient *http.Client, opts ...AutomationOption) *AutomationClient {
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	c := &AutomationClient{
		webhookURL:     webhookURL,
		httpClient:     httpClient,
		attemptTimeout: automationAttemptTimeout,
		policy: retry.Policy{
			MaxRetries:  automationMaxRetries,
			ShouldRetry: isRetryableDelivery,
			Delay:       retry.Exponential(automationBaseDelay, automationMaxDelay),
			OnRetry: func(attempt int, err error, wait time.Duration) {
				log.Printf("[notifications][automation] retrying attempt=%d wait=%s err=%v", attempt+1, wait, err)
			},
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func isRetryableDelivery(err error) bool {
	var se *automationStatusError
	if errors.As(err, &se) {
		return se.status == http.StatusTooManyRequests || se.status >= 500
	}
	var te *automationTransportError
	return errors.As(err, &te)
}

// BuildAutomationPayloads returns the main client payload followed by one
// payload per named dependent.
func BuildAutomationPayloads(order entities.Order) []entities.AutomationPayload {
	base := entities.AutomationPayload{
		Event:          AutomationEventOrderCompleted,
		OrderID:        order.ID,
		OrderNumber:    order.OrderNumber,
		ProductSlug:    order.ProductSlug,
		ProductName:    order.ProductName,
		TotalUSD:       order.TotalPriceUSD.InexactFloat64(),
		PaymentMethod:  string(order.PaymentMethod),
		ClientName:     order.Client.Name,
		ClientEmail:    order.Client.Email,
		ClientPhone:    order.Client.Phone,
		SellerID:       order.SellerID,
		DependentCount: len(order.DependentNames),
		PaidAt:         order.PaidAt,
		Metadata:       order.PaymentMetadata,
	}

	payloads := make([]entities.AutomationPayload, 0, len(order.DependentNames)+1)
	payloads = append(payloads, base)
	for i, name := range order.DependentNames {
		p := base
		p.IsDependent = true
		p.DependentName = name
		p.DependentIndex = i + 1
		payloads = append(payloads, p)
	}
	return payloads
}

// NotifyOrderCompleted sends every payload concurrently. Only a failed main
// payload is reported as an error; dependent failures are logged.
func (c *AutomationClient) NotifyOrderCompleted(ctx context.Context, order entities.Order) error {
	if c.webhookURL == "" {
		log.Printf("[notifications][automation] N8N_WEBHOOK_URL not set, skipping order_id=%s", order.ID)
		return nil
	}

	payloads := BuildAutomationPayloads(order)
	errs := make([]error, len(payloads))
	var succeeded int32

	var g errgroup.Group
	for i, p := range payloads {
		g.Go(func() error {
			kind := "main"
			if p.IsDependent {
				kind = "dependent"
			}
			if err := c.deliver(ctx, p); err != nil {
				errs[i] = err
				metrics.AutomationDeliveriesTotal.WithLabelValues(kind, "failure").Inc()
				log.Printf("[notifications][automation] delivery failed order_id=%s order_number=%s kind=%s dependent_index=%d err=%v",
					order.ID, order.OrderNumber, kind, p.DependentIndex, err)
				return nil
			}
			atomic.AddInt32(&succeeded, 1)
			metrics.AutomationDeliveriesTotal.WithLabelValues(kind, "success").Inc()
			return nil
		})
	}
	_ = g.Wait()

	log.Printf("[notifications][automation] summary order_id=%s succeeded=%d/%d", order.ID, succeeded, len(payloads))
	if errs[0] != nil {
		return fmt.Errorf("%w: main payload: %v", ErrAutomationDelivery, errs[0])
	}
	return nil
}

func (c *AutomationClient) deliver(ctx context.Context, payload entities.AutomationPayload) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	return c.policy.Do(ctx, func(ctx context.Context, attempt int) error {
		return c.post(ctx, body)
	})
}

func (c *AutomationClient) post(ctx context.Context, body []byte) error {
	ctx, cancel := context.WithTimeout(ctx, c.attemptTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.webhookURL, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &automationTransportError{err: err}
	}
	defer resp.Body.Close()

	raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxLoggedResponse+1))
	logged, truncated := truncateForLog(raw)
	log.Printf("[notifications][automation] response status=%d truncated=%t body=%s", resp.StatusCode, truncated, logged)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &automationStatusError{status: resp.StatusCode}
	}
	return nil
}

func truncateForLog(raw []byte) (string, bool) {
	if len(raw) > maxLoggedResponse {
		return string(raw[:maxLoggedResponse]), true
	}
	return string(raw), false
}
