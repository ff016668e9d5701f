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
	"strings"
	"time"

	"globalpartner_checkout/internal/config"
	"globalpartner_checkout/internal/domain/entities"
	"globalpartner_checkout/internal/usecase/interfaces"
)

var (
	ErrFunctionsNotConfigured = errors.New("functions endpoint not configured")
	ErrFunctionFailed         = errors.New("remote function failed")
)

const (
	fnContractPDF          = "generate-contract-pdf"
	fnAnnexPDF             = "generate-annex-pdf"
	fnInvoicePDF           = "generate-invoice-pdf"
	fnClientConfirmation   = "send-payment-confirmation-email"
	fnSellerNotification   = "send-seller-payment-notification"
	fnAdminNotification    = "send-admin-payment-notification"
	maxFunctionResponse    = 1 << 20
	defaultFunctionTimeout = 60 * time.Second
)

// FunctionsClient invokes the remote document and e-mail functions. Each
// function receives the order id and renders its own content.
type FunctionsClient struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

var (
	_ interfaces.IDocumentGenerator = (*FunctionsClient)(nil)
	_ interfaces.IMailer            = (*FunctionsClient)(nil)
)

func NewFunctionsClient(cfg config.FunctionsConfig, httpClient *http.Client) *FunctionsClient {
	if httpClient == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = defaultFunctionTimeout
		}
		httpClient = &http.Client{Timeout: timeout}
	}
	return &FunctionsClient{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:     cfg.APIKey,
		httpClient: httpClient,
	}
}

type functionResponse struct {
	Success  *bool  `json:"success"`
	PDFURL   string `json:"pdf_url"`
	FilePath string `json:"file_path"`
	Error    string `json:"error"`
	Message  string `json:"message"`
}

func (c *FunctionsClient) GenerateContractPDF(ctx context.Context, orderID string) (string, error) {
	return c.generate(ctx, fnContractPDF, orderID)
}

func (c *FunctionsClient) GenerateAnnexPDF(ctx context.Context, orderID string) (string, error) {
	return c.generate(ctx, fnAnnexPDF, orderID)
}

func (c *FunctionsClient) GenerateInvoicePDF(ctx context.Context, orderID string) (string, error) {
	return c.generate(ctx, fnInvoicePDF, orderID)
}

func (c *FunctionsClient) SendClientConfirmation(ctx context.Context, orderID string) error {
	_, err := c.invoke(ctx, fnClientConfirmation, map[string]any{"order_id": orderID})
	return err
}

func (c *FunctionsClient) SendSellerNotification(ctx context.Context, orderID string, seller entities.Seller) error {
	_, err := c.invoke(ctx, fnSellerNotification, map[string]any{
		"order_id":     orderID,
		"seller_id":    seller.ID,
		"seller_email": seller.Email,
		"seller_name":  seller.Name,
	})
	return err
}

func (c *FunctionsClient) SendAdminNotification(ctx context.Context, orderID string, admin entities.Admin) error {
	_, err := c.invoke(ctx, fnAdminNotification, map[string]any{
		"order_id":    orderID,
		"admin_email": admin.Email,
		"admin_name":  admin.Name,
	})
	return err
}

func (c *FunctionsClient) generate(ctx context.Context, function, orderID string) (string, error) {
	resp, err := c.invoke(ctx, function, map[string]any{"order_id": orderID})
	if err != nil {
		return "", err
	}
	if resp.PDFURL != "" {
		return resp.PDFURL, nil
	}
	return resp.FilePath, nil
}

func (c *FunctionsClient) invoke(ctx context.Context, function string, body map[string]any) (functionResponse, error) {
	if c.baseURL == "" {
		return functionResponse{}, ErrFunctionsNotConfigured
	}
	payload, err := json.Marshal(body)
	if err != nil {
		return functionResponse{}, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/"+function, bytes.NewReader(payload))
	if err != nil {
		return functionResponse{}, err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	httpResp, err := c.httpClient.Do(req)
	if err != nil {
		return functionResponse{}, fmt.Errorf("%s: %w", function, err)
	}
	defer httpResp.Body.Close()
	raw, _ := io.ReadAll(io.LimitReader(httpResp.Body, maxFunctionResponse))

	var out functionResponse
	_ = json.Unmarshal(raw, &out)

	if httpResp.StatusCode < 200 || httpResp.StatusCode > 299 {
		return out, fmt.Errorf("%w: %s: http %d: %s", ErrFunctionFailed, function, httpResp.StatusCode, out.reason(httpResp.Status))
	}
	if out.Success != nil && !*out.Success {
		return out, fmt.Errorf("%w: %s: %s", ErrFunctionFailed, function, out.reason("success=false"))
	}
	log.Printf("[notifications][functions] invoked function=%s order_id=%v", function, body["order_id"])
	return out, nil
}

func (r functionResponse) reason(fallback string) string {
	switch {
	case r.Error != "":
		return r.Error
	case r.Message != "":
		return r.Message
	}
	return fallback
}
