package usecase

import (
	"context"
	"fmt"
	"log"
	"net/url"
	"strings"

	"globalpartner_checkout/internal/config"
	"globalpartner_checkout/internal/domain/entities"
	"globalpartner_checkout/internal/usecase/interfaces"
)

// ParcelowCheckoutInput is what the front-end sends to start a Parcelow
// checkout. Currency is USD unless BRL is requested.
type ParcelowCheckoutInput struct {
	OrderID  string
	Currency string
}

type ParcelowCheckoutResult struct {
	CheckoutURL     string
	ProviderOrderID string
	Status          string
}

type IParcelowCheckoutUseCase interface {
	CreateCheckout(ctx context.Context, in ParcelowCheckoutInput) (ParcelowCheckoutResult, error)
	Simulate(ctx context.Context, orderID string) (entities.ParcelowSimulation, error)
}

type ParcelowCheckoutUseCase struct {
	orders  interfaces.IOrderRepository
	gateway interfaces.IParcelowGateway
	siteURL string
}

var _ IParcelowCheckoutUseCase = (*ParcelowCheckoutUseCase)(nil)

// NewParcelowCheckoutUseCase accepts a nil gateway; calls then fail with
// ErrProviderNotConfigured.
func NewParcelowCheckoutUseCase(orders interfaces.IOrderRepository, gateway interfaces.IParcelowGateway, siteURL string) *ParcelowCheckoutUseCase {
	return &ParcelowCheckoutUseCase{
		orders:  orders,
		gateway: gateway,
		siteURL: strings.TrimRight(strings.TrimSpace(siteURL), "/"),
	}
}

func (u *ParcelowCheckoutUseCase) CreateCheckout(ctx context.Context, in ParcelowCheckoutInput) (ParcelowCheckoutResult, error) {
	log.Printf("[checkout][parcelow] create start order_id=%q currency=%q", in.OrderID, in.Currency)

	currency, err := parcelowCurrency(in.Currency)
	if err != nil {
		return ParcelowCheckoutResult{}, err
	}

	order, err := loadCheckoutOrder(ctx, u.orders, in.OrderID, "parcelow")
	if err != nil {
		return ParcelowCheckoutResult{}, err
	}
	if strings.TrimSpace(order.Client.CPF) == "" {
		log.Printf("[checkout][parcelow] missing client CPF order_id=%s", order.ID)
		return ParcelowCheckoutResult{}, ErrMissingClientTaxID
	}
	if u.gateway == nil {
		log.Printf("[checkout][parcelow] gateway not configured order_id=%s", order.ID)
		return ParcelowCheckoutResult{}, ErrProviderNotConfigured
	}
	if u.siteURL == "" {
		log.Printf("[checkout][parcelow] SITE_URL not set order_id=%s", order.ID)
		return ParcelowCheckoutResult{}, fmt.Errorf("%w: SITE_URL", config.ErrMissingVariable)
	}

	req := u.buildOrderRequest(order, currency)
	checkout, err := u.gateway.CreateOrder(ctx, req)
	if err != nil {
		log.Printf("[checkout][parcelow] create order failed order_id=%s err=%v", order.ID, err)
		return ParcelowCheckoutResult{}, providerFailure(err)
	}

	link := entities.ProviderLink{
		Provider: entities.ProviderParcelow,
		Parcelow: &entities.ParcelowLink{
			OrderID:     checkout.OrderID,
			CheckoutURL: checkout.CheckoutURL,
			Status:      checkout.Status,
		},
	}
	if err := linkOrCompensate(ctx, u.orders, order, link, checkout.OrderID, u.gateway.CancelOrder); err != nil {
		return ParcelowCheckoutResult{}, err
	}

	log.Printf("[checkout][parcelow] create success order_id=%s provider_order_id=%s amount_cents=%d", order.ID, checkout.OrderID, req.Items[0].AmountInCents)
	return ParcelowCheckoutResult{
		CheckoutURL:     checkout.CheckoutURL,
		ProviderOrderID: checkout.OrderID,
		Status:          checkout.Status,
	}, nil
}

func (u *ParcelowCheckoutUseCase) Simulate(ctx context.Context, orderID string) (entities.ParcelowSimulation, error) {
	orderID = strings.TrimSpace(orderID)
	if orderID == "" {
		return entities.ParcelowSimulation{}, ErrInvalidOrderID
	}
	order, err := u.orders.GetByID(ctx, orderID)
	if err != nil {
		return entities.ParcelowSimulation{}, err
	}
	if order.ID == "" {
		return entities.ParcelowSimulation{}, ErrOrderNotFound
	}
	cents := entities.ToMinorUnits(order.TotalPriceUSD)
	if cents <= 0 {
		return entities.ParcelowSimulation{}, ErrInvalidOrderAmount
	}
	if u.gateway == nil {
		return entities.ParcelowSimulation{}, ErrProviderNotConfigured
	}

	sim, err := u.gateway.Simulate(ctx, cents)
	if err != nil {
		log.Printf("[checkout][parcelow] simulate failed order_id=%s err=%v", order.ID, err)
		return entities.ParcelowSimulation{}, providerFailure(err)
	}
	return sim, nil
}

func (u *ParcelowCheckoutUseCase) buildOrderRequest(order entities.Order, currency string) entities.ParcelowOrderRequest {
	description := order.ProductName
	if description == "" {
		description = order.ProductSlug
	}
	reference := order.OrderNumber
	if reference == "" {
		reference = order.ID
	}
	addr := order.Client.Address

	return entities.ParcelowOrderRequest{
		Reference:        reference,
		PartnerReference: order.ID,
		Currency:         currency,
		Client: entities.ParcelowClient{
			CPF:          onlyDigits(order.Client.CPF),
			Name:         order.Client.Name,
			Email:        order.Client.Email,
			Phone:        onlyDigits(order.Client.Phone),
			BirthDate:    order.Client.BirthDate,
			PostalCode:   onlyDigits(addr.PostalCode),
			Street:       addr.Street,
			Number:       addr.Number,
			Complement:   addr.Complement,
			Neighborhood: addr.Neighborhood,
			City:         addr.City,
			State:        addr.State,
		},
		Items: []entities.ParcelowItem{{
			Reference:     reference,
			Description:   description,
			Quantity:      1,
			AmountInCents: entities.ToMinorUnits(order.TotalPriceUSD),
		}},
		SuccessURL: u.redirectURL("success", reference),
		FailedURL:  u.redirectURL("failed", reference),
	}
}

func (u *ParcelowCheckoutUseCase) redirectURL(outcome, reference string) string {
	q := url.Values{"order": {reference}, "provider": {string(entities.ProviderParcelow)}}
	return fmt.Sprintf("%s/checkout/%s?%s", u.siteURL, outcome, q.Encode())
}

func parcelowCurrency(c string) (string, error) {
	switch strings.ToUpper(strings.TrimSpace(c)) {
	case "", entities.BaseCurrency:
		return entities.BaseCurrency, nil
	case "BRL":
		return "BRL", nil
	}
	return "", fmt.Errorf("%w: %s", ErrInvalidCurrency, c)
}

func onlyDigits(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
