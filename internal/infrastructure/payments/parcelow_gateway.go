package payments

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strings"

	"globalpartner_checkout/internal/config"
	"globalpartner_checkout/internal/domain/entities"
	"globalpartner_checkout/internal/usecase/interfaces"
	"globalpartner_checkout/pkg"

	"github.com/shopspring/decimal"
)

const providerParcelow = "parcelow"

var ErrParcelowRejected = errors.New("parcelow rejected the request")

// ParcelowGateway maps checkout operations onto Parcelow endpoints.
type ParcelowGateway struct {
	client *ProviderClient
}

var _ interfaces.IParcelowGateway = (*ParcelowGateway)(nil)

func NewParcelowGateway(cfg config.ParcelowConfig, httpClient *http.Client) (*ParcelowGateway, error) {
	if err := cfg.Validate(); err != nil {
		log.Printf("[payment][parcelow] gateway not configured err=%v", err)
		return nil, err
	}
	client := NewProviderClient(ProviderClientConfig{
		Provider:     providerParcelow,
		BaseURL:      cfg.BaseURL,
		TokenPath:    "/oauth/token",
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		Credentials:  CredentialsJSON,
		HTTPClient:   httpClient,
	})
	log.Printf("[payment][parcelow] client initialized environment=%s", cfg.Environment)
	return &ParcelowGateway{client: client}, nil
}

// NewParcelowGatewayWithClient wires a prepared provider client, mainly for tests.
func NewParcelowGatewayWithClient(client *ProviderClient) *ParcelowGateway {
	return &ParcelowGateway{client: client}
}

type parcelowEnvelope[T any] struct {
	Success *bool  `json:"success"`
	Message string `json:"message"`
	Data    T      `json:"data"`
}

func (e parcelowEnvelope[T]) rejected() bool {
	return e.Success != nil && !*e.Success
}

type parcelowClientWire struct {
	CPF                 string `json:"cpf"`
	Name                string `json:"name"`
	Email               string `json:"email"`
	Phone               string `json:"phone,omitempty"`
	BirthDate           string `json:"birthdate,omitempty"`
	CEP                 string `json:"cep,omitempty"`
	AddressStreet       string `json:"address_street,omitempty"`
	AddressNumber       string `json:"address_number,omitempty"`
	AddressNeighborhood string `json:"address_neighborhood,omitempty"`
	AddressCity         string `json:"address_city,omitempty"`
	AddressState        string `json:"address_state,omitempty"`
	AddressComplement   string `json:"address_complement,omitempty"`
}

type parcelowItemWire struct {
	Reference     string `json:"reference"`
	Description   string `json:"description"`
	Quantity      int    `json:"quantity"`
	AmountInCents int64  `json:"amount_in_cents"`
}

type parcelowOrderWire struct {
	Reference        string             `json:"reference"`
	PartnerReference string             `json:"partner_reference"`
	Client           parcelowClientWire `json:"client"`
	Items            []parcelowItemWire `json:"items"`
	Redirect         struct {
		Success string `json:"success"`
		Failed  string `json:"failed"`
	} `json:"redirect"`
}

type parcelowCheckoutWire struct {
	OrderID     pkg.FlexString `json:"order_id"`
	CheckoutURL string         `json:"url_checkout"`
	Status      pkg.FlexString `json:"status"`
}

type parcelowPaymentWire struct {
	TotalBRL     pkg.FlexString `json:"total_brl"`
	Installments pkg.FlexString `json:"installments"`
}

type parcelowOrderStatusWire struct {
	ID           pkg.FlexString        `json:"id"`
	Reference    string                `json:"reference"`
	Status       pkg.FlexString        `json:"status"`
	StatusText   string                `json:"status_text"`
	OrderAmount  pkg.FlexString        `json:"order_amount"`
	TotalUSD     pkg.FlexString        `json:"total_usd"`
	TotalBRL     pkg.FlexString        `json:"total_brl"`
	Installments pkg.FlexString        `json:"installments"`
	Payments     []parcelowPaymentWire `json:"payments"`
	OrderDate    string                `json:"order_date"`
}

type parcelowSimulationWire struct {
	TotalUSD     decimal.Decimal `json:"total_usd"`
	Dollar       decimal.Decimal `json:"dollar"`
	Installments []struct {
		Installment int             `json:"installment"`
		Monthly     decimal.Decimal `json:"monthly"`
		Total       decimal.Decimal `json:"total"`
	} `json:"installments"`
}

func (g *ParcelowGateway) Simulate(ctx context.Context, amountCents int64) (entities.ParcelowSimulation, error) {
	var env parcelowEnvelope[parcelowSimulationWire]
	path := "/api/simulate?" + url.Values{"amount": {fmt.Sprintf("%d", amountCents)}}.Encode()
	if err := g.client.Do(ctx, http.MethodGet, path, nil, &env); err != nil {
		return entities.ParcelowSimulation{}, err
	}
	if env.rejected() {
		return entities.ParcelowSimulation{}, fmt.Errorf("%w: %s", ErrParcelowRejected, env.Message)
	}

	sim := entities.ParcelowSimulation{AmountUSD: entities.FromMinorUnits(amountCents)}
	for _, opt := range env.Data.Installments {
		sim.Options = append(sim.Options, entities.ParcelowInstallmentOption{
			Installments: opt.Installment,
			MonthlyBRL:   opt.Monthly,
			TotalBRL:     opt.Total,
			TotalUSD:     env.Data.TotalUSD,
			ExchangeRate: env.Data.Dollar,
		})
	}
	return sim, nil
}

func (g *ParcelowGateway) CreateOrder(ctx context.Context, req entities.ParcelowOrderRequest) (entities.ParcelowCheckout, error) {
	path := "/api/orders"
	if strings.EqualFold(req.Currency, "BRL") {
		path = "/api/orders/brl"
	}
	log.Printf("[payment][parcelow] create order start reference=%s path=%s", req.Reference, path)

	var env parcelowEnvelope[parcelowCheckoutWire]
	if err := g.client.Do(ctx, http.MethodPost, path, toParcelowOrderWire(req), &env); err != nil {
		return entities.ParcelowCheckout{}, err
	}
	if env.rejected() || env.Data.OrderID == "" {
		msg := env.Message
		if msg == "" {
			msg = "response without order_id"
		}
		return entities.ParcelowCheckout{}, fmt.Errorf("%w: %s", ErrParcelowRejected, msg)
	}
	log.Printf("[payment][parcelow] create order success reference=%s provider_order_id=%s", req.Reference, env.Data.OrderID)

	return entities.ParcelowCheckout{
		OrderID:     env.Data.OrderID.String(),
		CheckoutURL: env.Data.CheckoutURL,
		Status:      env.Data.Status.String(),
	}, nil
}

func (g *ParcelowGateway) GetOrder(ctx context.Context, providerOrderID string) (entities.ParcelowOrderSnapshot, error) {
	var env parcelowEnvelope[parcelowOrderStatusWire]
	if err := g.client.Do(ctx, http.MethodGet, "/api/order/"+url.PathEscape(providerOrderID), nil, &env); err != nil {
		return entities.ParcelowOrderSnapshot{}, err
	}
	if env.rejected() {
		return entities.ParcelowOrderSnapshot{}, fmt.Errorf("%w: %s", ErrParcelowRejected, env.Message)
	}
	snap := env.Data.toSnapshot()
	if snap.ID == "" {
		snap.ID = providerOrderID
	}
	return snap, nil
}

func (g *ParcelowGateway) CancelOrder(ctx context.Context, providerOrderID string) error {
	var env parcelowEnvelope[map[string]any]
	if err := g.client.Do(ctx, http.MethodPost, "/api/order/"+url.PathEscape(providerOrderID)+"/cancel", nil, &env); err != nil {
		return err
	}
	if env.rejected() {
		return fmt.Errorf("%w: %s", ErrParcelowRejected, env.Message)
	}
	log.Printf("[payment][parcelow] order cancelled provider_order_id=%s", providerOrderID)
	return nil
}

func toParcelowOrderWire(req entities.ParcelowOrderRequest) parcelowOrderWire {
	w := parcelowOrderWire{
		Reference:        req.Reference,
		PartnerReference: req.PartnerReference,
		Client: parcelowClientWire{
			CPF:                 req.Client.CPF,
			Name:                req.Client.Name,
			Email:               req.Client.Email,
			Phone:               req.Client.Phone,
			BirthDate:           req.Client.BirthDate,
			CEP:                 req.Client.PostalCode,
			AddressStreet:       req.Client.Street,
			AddressNumber:       req.Client.Number,
			AddressNeighborhood: req.Client.Neighborhood,
			AddressCity:         req.Client.City,
			AddressState:        req.Client.State,
			AddressComplement:   req.Client.Complement,
		},
	}
	for _, it := range req.Items {
		w.Items = append(w.Items, parcelowItemWire{
			Reference:     it.Reference,
			Description:   it.Description,
			Quantity:      it.Quantity,
			AmountInCents: it.AmountInCents,
		})
	}
	w.Redirect.Success = req.SuccessURL
	w.Redirect.Failed = req.FailedURL
	return w
}

func (w parcelowOrderStatusWire) toSnapshot() entities.ParcelowOrderSnapshot {
	snap := entities.ParcelowOrderSnapshot{
		ID:         w.ID.String(),
		Reference:  w.Reference,
		StatusCode: w.Status.String(),
		StatusText: w.StatusText,
		OrderDate:  w.OrderDate,
	}
	snap.OrderAmountCents, _ = w.OrderAmount.Int64()
	snap.TotalUSDCents, _ = w.TotalUSD.Int64()
	snap.TotalBRLCents, _ = w.TotalBRL.Int64()
	if n, ok := w.Installments.Int64(); ok {
		snap.Installments = int(n)
	}
	for _, p := range w.Payments {
		total, _ := p.TotalBRL.Int64()
		inst, _ := p.Installments.Int64()
		snap.Payments = append(snap.Payments, entities.ParcelowPayment{TotalBRLCents: total, Installments: int(inst)})
	}
	return snap
}
