package payments

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"globalpartner_checkout/internal/config"
	"globalpartner_checkout/internal/domain/entities"
	"globalpartner_checkout/internal/usecase/interfaces"
	"globalpartner_checkout/pkg"

	"github.com/shopspring/decimal"
)

const providerWise = "wise"

var ErrWiseMalformedResponse = errors.New("wise returned an unexpected response")

// WiseGateway drives the quote, recipient and transfer endpoints for the
// configured business profile.
type WiseGateway struct {
	client    *ProviderClient
	profileID string
}

var _ interfaces.IWiseGateway = (*WiseGateway)(nil)

func NewWiseGateway(cfg config.WiseConfig, httpClient *http.Client) (*WiseGateway, error) {
	if err := cfg.Validate(); err != nil {
		log.Printf("[payment][wise] gateway not configured err=%v", err)
		return nil, err
	}
	client := NewProviderClient(ProviderClientConfig{
		Provider:     providerWise,
		BaseURL:      cfg.BaseURL,
		TokenPath:    "/oauth/token",
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		Credentials:  CredentialsBasicForm,
		HTTPClient:   httpClient,
	})
	log.Printf("[payment][wise] client initialized environment=%s profile_id=%s", cfg.Environment, cfg.ProfileID)
	return &WiseGateway{client: client, profileID: cfg.ProfileID}, nil
}

func NewWiseGatewayWithClient(client *ProviderClient, profileID string) *WiseGateway {
	return &WiseGateway{client: client, profileID: profileID}
}

type wiseQuoteWire struct {
	ID             pkg.FlexString  `json:"id"`
	SourceCurrency string          `json:"sourceCurrency"`
	TargetCurrency string          `json:"targetCurrency"`
	SourceAmount   decimal.Decimal `json:"sourceAmount"`
	TargetAmount   decimal.Decimal `json:"targetAmount"`
	Rate           decimal.Decimal `json:"rate"`
	Fee            decimal.Decimal `json:"fee"`
	ExpirationTime string          `json:"expirationTime"`
	PaymentOptions []struct {
		Fee struct {
			Total decimal.Decimal `json:"total"`
		} `json:"fee"`
	} `json:"paymentOptions"`
}

type wiseTransferWire struct {
	ID             pkg.FlexString  `json:"id"`
	Status         string          `json:"status"`
	QuoteUUID      string          `json:"quoteUuid"`
	Quote          pkg.FlexString  `json:"quote"`
	SourceCurrency string          `json:"sourceCurrency"`
	TargetCurrency string          `json:"targetCurrency"`
	SourceValue    decimal.Decimal `json:"sourceValue"`
	TargetValue    decimal.Decimal `json:"targetValue"`
	Rate           decimal.Decimal `json:"rate"`
}

type wiseRecipientWire struct {
	ID       pkg.FlexString `json:"id"`
	Currency string         `json:"currency"`
	Type     string         `json:"type"`
}

func (g *WiseGateway) CreateQuote(ctx context.Context, req entities.WiseQuoteRequest) (entities.WiseQuote, error) {
	body := map[string]any{
		"sourceCurrency": strings.ToUpper(req.SourceCurrency),
		"targetCurrency": strings.ToUpper(req.TargetCurrency),
		"targetAmount":   req.TargetAmount.InexactFloat64(),
		"payOut":         "BANK_TRANSFER",
	}
	var raw json.RawMessage
	path := fmt.Sprintf("/v3/profiles/%s/quotes", url.PathEscape(g.profileID))
	if err := g.client.Do(ctx, http.MethodPost, path, body, &raw); err != nil {
		return entities.WiseQuote{}, err
	}

	var w wiseQuoteWire
	if err := json.Unmarshal(raw, &w); err != nil || w.ID == "" {
		return entities.WiseQuote{}, fmt.Errorf("%w: quote without id", ErrWiseMalformedResponse)
	}
	quote := entities.WiseQuote{
		ID:             w.ID.String(),
		SourceCurrency: w.SourceCurrency,
		TargetCurrency: w.TargetCurrency,
		SourceAmount:   w.SourceAmount,
		TargetAmount:   w.TargetAmount,
		Rate:           w.Rate,
		Fee:            w.Fee,
		PaymentURL:     paymentURLFrom(raw),
		PayinSessionID: payinSessionFrom(raw),
	}
	if quote.Fee.IsZero() && len(w.PaymentOptions) > 0 {
		quote.Fee = w.PaymentOptions[0].Fee.Total
	}
	if t, err := time.Parse(time.RFC3339, w.ExpirationTime); err == nil {
		quote.ExpiresAt = t
	}
	log.Printf("[payment][wise] quote created quote_id=%s source=%s %s target=%s %s", quote.ID,
		quote.SourceAmount.StringFixed(2), quote.SourceCurrency, quote.TargetAmount.StringFixed(2), quote.TargetCurrency)
	return quote, nil
}

func (g *WiseGateway) CreateRecipient(ctx context.Context, req entities.WiseRecipientRequest) (entities.WiseRecipient, error) {
	details := make(map[string]any, len(req.Details)+1)
	for k, v := range req.Details {
		details[k] = v
	}
	if req.LegalType != "" {
		details["legalType"] = req.LegalType
	}
	body := map[string]any{
		"profile":           g.profileID,
		"accountHolderName": req.AccountHolderName,
		"currency":          strings.ToUpper(req.Currency),
		"type":              req.Type,
		"details":           details,
	}
	var w wiseRecipientWire
	if err := g.client.Do(ctx, http.MethodPost, "/v1/accounts", body, &w); err != nil {
		return entities.WiseRecipient{}, err
	}
	if w.ID == "" {
		return entities.WiseRecipient{}, fmt.Errorf("%w: recipient without id", ErrWiseMalformedResponse)
	}
	log.Printf("[payment][wise] recipient created recipient_id=%s currency=%s type=%s", w.ID, w.Currency, w.Type)
	return entities.WiseRecipient{ID: w.ID.String(), Currency: w.Currency, Type: w.Type}, nil
}

func (g *WiseGateway) CreateTransfer(ctx context.Context, req entities.WiseTransferRequest) (entities.WiseTransfer, error) {
	body := map[string]any{
		"targetAccount":         req.TargetAccount,
		"quoteUuid":             req.QuoteID,
		"customerTransactionId": req.CustomerTransactionID,
		"details": map[string]any{
			"reference": req.Reference,
		},
	}
	transfer, err := g.transfer(ctx, http.MethodPost, "/v1/transfers", body)
	if err != nil {
		return entities.WiseTransfer{}, err
	}
	log.Printf("[payment][wise] transfer created transfer_id=%s status=%s", transfer.ID, transfer.Status)
	return transfer, nil
}

func (g *WiseGateway) GetTransfer(ctx context.Context, transferID string) (entities.WiseTransfer, error) {
	return g.transfer(ctx, http.MethodGet, "/v1/transfers/"+url.PathEscape(transferID), nil)
}

func (g *WiseGateway) CancelTransfer(ctx context.Context, transferID string) error {
	if err := g.client.Do(ctx, http.MethodPut, "/v1/transfers/"+url.PathEscape(transferID)+"/cancel", nil, nil); err != nil {
		return err
	}
	log.Printf("[payment][wise] transfer cancelled transfer_id=%s", transferID)
	return nil
}

func (g *WiseGateway) transfer(ctx context.Context, method, path string, body any) (entities.WiseTransfer, error) {
	var raw json.RawMessage
	if err := g.client.Do(ctx, method, path, body, &raw); err != nil {
		return entities.WiseTransfer{}, err
	}
	var w wiseTransferWire
	if err := json.Unmarshal(raw, &w); err != nil || w.ID == "" {
		return entities.WiseTransfer{}, fmt.Errorf("%w: transfer without id", ErrWiseMalformedResponse)
	}
	quoteID := w.QuoteUUID
	if quoteID == "" {
		quoteID = w.Quote.String()
	}
	return entities.WiseTransfer{
		ID:             w.ID.String(),
		Status:         w.Status,
		QuoteID:        quoteID,
		SourceCurrency: w.SourceCurrency,
		TargetCurrency: w.TargetCurrency,
		SourceValue:    w.SourceValue,
		TargetValue:    w.TargetValue,
		Rate:           w.Rate,
		PaymentURL:     paymentURLFrom(raw),
		PayinSessionID: payinSessionFrom(raw),
	}, nil
}

// paymentURLFrom looks for a hosted payment link in the places Wise has
// been seen to put one.
func paymentURLFrom(raw json.RawMessage) string {
	var m map[string]any
	if err := json.Unmarshal(raw, &m); err != nil {
		return ""
	}
	for _, key := range []string{"paymentUrl", "payInUrl", "payinUrl"} {
		if s, ok := m[key].(string); ok && s != "" {
			return s
		}
	}
	if links, ok := m["links"].(map[string]any); ok {
		if s, ok := links["payment"].(string); ok && s != "" {
			return s
		}
		if p, ok := links["payment"].(map[string]any); ok {
			if s, ok := p["href"].(string); ok && s != "" {
				return s
			}
		}
	}
	return ""
}

func payinSessionFrom(raw json.RawMessage) string {
	var m map[string]json.RawMessage
	if err := json.Unmarshal(raw, &m); err != nil {
		return ""
	}
	for _, key := range []string{"payinSessionId", "payInSessionId"} {
		v, ok := m[key]
		if !ok {
			continue
		}
		var f pkg.FlexString
		if err := json.Unmarshal(v, &f); err == nil && f != "" {
			return f.String()
		}
	}
	return ""
}
