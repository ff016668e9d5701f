package entities

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

// PaymentEvent is the provider-neutral form of an inbound webhook.
//
// Decoders at the HTTP boundary build it from raw provider JSON; the
// reconciler never looks at provider payloads directly. Parcelow and Wise hold
// the provider-specific variant, exactly one of them is set and matches
// Provider.
type PaymentEvent struct {
	Provider Provider
	Name     string
	// ProviderRef is the provider's order or transfer id.
	ProviderRef string
	// OrderRef is our order number when the provider echoes it back.
	OrderRef   string
	StatusText string
	StatusCode string
	// Target is the internal status the event moves the order to; empty
	// means the event leaves the status unchanged.
	Target     PaymentStatus
	Settlement *Settlement
	OccurredAt time.Time
	Raw        json.RawMessage

	Parcelow *ParcelowEvent
	Wise     *WiseEvent
}

type ParcelowEvent struct {
	OrderAmountCents int64
	TotalUSDCents    int64
	TotalBRLCents    int64
	Installments     int
	Payments         []ParcelowPayment
	OrderDate        string
}

type ParcelowPayment struct {
	TotalBRLCents int64
	Installments  int
}

type WiseEvent struct {
	ProfileID     string
	PreviousState string
	CurrentState  string
	EventType     string
}

func (e PaymentEvent) IsCompletion() bool {
	return e.Target == PaymentStatusCompleted
}

// Settlement holds the reconciled amounts of a completed payment.
//
// GrossAmount and NetAmount are in Currency; PaidAmount is what the client
// actually paid in PaidCurrency, including installment interest.
type Settlement struct {
	Provider        Provider
	Currency        string
	GrossAmount     decimal.Decimal
	NetAmount       decimal.Decimal
	PaidAmount      decimal.Decimal
	PaidCurrency    string
	BaseLocalAmount decimal.Decimal
	Installments    int
	Rate            decimal.Decimal
}

// Fee is gross minus net, never negative.
func (s Settlement) Fee() decimal.Decimal {
	fee := s.GrossAmount.Sub(s.NetAmount)
	if fee.IsNegative() {
		return decimal.Zero
	}
	return fee
}

// Metadata renders the settlement into the order's payment_metadata bag.
func (s Settlement) Metadata() map[string]any {
	net := s.NetAmount
	if net.IsNegative() {
		net = decimal.Zero
	}
	m := map[string]any{
		"provider":     string(s.Provider),
		"currency":     s.Currency,
		"total_usd":    s.GrossAmount.InexactFloat64(),
		"net_amount":   net.InexactFloat64(),
		"fee_amount":   s.Fee().InexactFloat64(),
		"installments": s.Installments,
	}
	if s.PaidCurrency != "" {
		m["total_paid"] = s.PaidAmount.InexactFloat64()
		m["paid_currency"] = s.PaidCurrency
	}
	if !s.BaseLocalAmount.IsZero() {
		m["base_local_amount"] = s.BaseLocalAmount.InexactFloat64()
		if interest := s.PaidAmount.Sub(s.BaseLocalAmount); interest.IsPositive() {
			m["installment_interest"] = interest.InexactFloat64()
		}
	}
	if !s.Rate.IsZero() {
		m["rate"] = s.Rate.InexactFloat64()
	}
	return m
}
