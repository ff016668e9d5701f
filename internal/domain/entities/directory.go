package entities

import (
	"encoding/json"
	"time"
)

// Seller is the partner a sale is attributed to for commission.
type Seller struct {
	ID    string
	Name  string
	Email string
}

// Admin is a platform operator notified about every completed payment.
type Admin struct {
	ID    string
	Name  string
	Email string
}

// FunnelEvent records a seller-attributed step of the sales funnel.
type FunnelEvent struct {
	ID        string
	SellerID  string
	OrderID   string
	EventType string
	AmountUSD float64
	Metadata  map[string]any
	CreatedAt time.Time
}

const FunnelEventPaymentCompleted = "payment_completed"

// PaymentSnapshot is attached to payment records as the audit trail of the
// webhook that settled them.
type PaymentSnapshot struct {
	Provider   Provider        `json:"provider"`
	Event      string          `json:"event"`
	Reference  string          `json:"reference"`
	StatusText string          `json:"status_text,omitempty"`
	ReceivedAt time.Time       `json:"received_at"`
	Payload    json.RawMessage `json:"payload,omitempty"`
}

// AutomationPayload is one message delivered to the automation webhook: the
// main client or one of the order's dependents.
type AutomationPayload struct {
	Event          string         `json:"event"`
	OrderID        string         `json:"order_id"`
	OrderNumber    string         `json:"order_number"`
	ProductSlug    string         `json:"product_slug"`
	ProductName    string         `json:"product_name"`
	TotalUSD       float64        `json:"total_usd"`
	PaymentMethod  string         `json:"payment_method"`
	ClientName     string         `json:"client_name"`
	ClientEmail    string         `json:"client_email"`
	ClientPhone    string         `json:"client_phone,omitempty"`
	SellerID       string         `json:"seller_id,omitempty"`
	IsDependent    bool           `json:"is_dependent"`
	DependentName  string         `json:"dependent_name,omitempty"`
	DependentIndex int            `json:"dependent_index,omitempty"`
	DependentCount int            `json:"dependent_count"`
	PaidAt         *time.Time     `json:"paid_at,omitempty"`
	Metadata       map[string]any `json:"payment_metadata,omitempty"`
}
