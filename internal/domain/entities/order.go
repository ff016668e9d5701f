package entities

import (
	"time"

	"github.com/shopspring/decimal"
)

// PaymentStatus is the internal payment state of an order.
//
// Only webhook reconciliation moves an order out of pending, and completed is
// terminal: later provider events update the mirrored provider fields only.
type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "pending"
	PaymentStatusCompleted PaymentStatus = "completed"
	PaymentStatusFailed    PaymentStatus = "failed"
	PaymentStatusCancelled PaymentStatus = "cancelled"
)

// Provider identifies a payment gateway.
type Provider string

const (
	ProviderParcelow Provider = "parcelow"
	ProviderWise     Provider = "wise"
)

// BaseCurrency is the currency order totals are priced in.
const BaseCurrency = "USD"

type Address struct {
	Street       string `json:"street,omitempty"`
	Number       string `json:"number,omitempty"`
	Complement   string `json:"complement,omitempty"`
	Neighborhood string `json:"neighborhood,omitempty"`
	City         string `json:"city,omitempty"`
	State        string `json:"state,omitempty"`
	PostalCode   string `json:"postal_code,omitempty"`
	Country      string `json:"country,omitempty"`
}

type Client struct {
	Name      string  `json:"name"`
	Email     string  `json:"email"`
	Phone     string  `json:"phone,omitempty"`
	CPF       string  `json:"cpf,omitempty"`
	BirthDate string  `json:"birth_date,omitempty"`
	Address   Address `json:"address"`
}

// ParcelowLink is the Parcelow checkout state mirrored on the order.
type ParcelowLink struct {
	OrderID     string `json:"order_id,omitempty"`
	CheckoutURL string `json:"checkout_url,omitempty"`
	Status      string `json:"status,omitempty"`
	StatusCode  string `json:"status_code,omitempty"`
}

// WiseLink is the Wise transfer state mirrored on the order.
type WiseLink struct {
	TransferID  string `json:"transfer_id,omitempty"`
	QuoteID     string `json:"quote_id,omitempty"`
	RecipientID string `json:"recipient_id,omitempty"`
	PaymentURL  string `json:"payment_url,omitempty"`
	Status      string `json:"status,omitempty"`
}

// Order is the purchase aggregate tracked from checkout to payment completion.
//
// Storage model (DynamoDB):
//   - PK: id
//   - GSI order_number-index, parcelow_order_id-index, wise_transfer_id-index
type Order struct {
	ID               string
	OrderNumber      string
	ProductSlug      string
	ProductName      string
	TotalPriceUSD    decimal.Decimal
	PaymentStatus    PaymentStatus
	PaymentMethod    Provider
	Client           Client
	DependentNames   []string
	ServiceRequestID string
	SellerID         string

	Parcelow ParcelowLink
	Wise     WiseLink

	PaymentMetadata map[string]any
	PaidAt          *time.Time
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// LinkedProvider reports which gateway already holds checkout state for the
// order, or "" when none does.
func (o Order) LinkedProvider() Provider {
	switch {
	case o.Parcelow.OrderID != "":
		return ProviderParcelow
	case o.Wise.TransferID != "":
		return ProviderWise
	}
	return ""
}

func (o Order) HasProviderLink() bool {
	return o.LinkedProvider() != ""
}

func (o Order) IsCompleted() bool {
	return o.PaymentStatus == PaymentStatusCompleted
}

// ProviderLink is written onto an order in a single update once the provider
// session exists. Exactly one of Parcelow or Wise is set.
type ProviderLink struct {
	Provider Provider
	Parcelow *ParcelowLink
	Wise     *WiseLink
}
