package request

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"globalpartner_checkout/internal/domain/entities"
	"globalpartner_checkout/internal/usecase"
	"globalpartner_checkout/pkg"
)

var ErrInvalidWebhookPayload = errors.New("invalid webhook payload")

// ParcelowWebhookRequest is the notification Parcelow posts on every order
// status change. Older deliveries carry the order under "data".
type ParcelowWebhookRequest struct {
	Event string                `json:"event"`
	Order *ParcelowWebhookOrder `json:"order"`
	Data  *ParcelowWebhookOrder `json:"data"`
}

type ParcelowWebhookOrder struct {
	ID           pkg.FlexString           `json:"id"`
	Reference    string                   `json:"reference"`
	Status       pkg.FlexString           `json:"status"`
	StatusText   string                   `json:"status_text"`
	OrderAmount  pkg.FlexString           `json:"order_amount"`
	TotalUSD     pkg.FlexString           `json:"total_usd"`
	TotalBRL     pkg.FlexString           `json:"total_brl"`
	Installments pkg.FlexString           `json:"installments"`
	Payments     []ParcelowWebhookPayment `json:"payments"`
	OrderDate    string                   `json:"order_date"`
}

type ParcelowWebhookPayment struct {
	TotalBRL     pkg.FlexString `json:"total_brl"`
	Installments pkg.FlexString `json:"installments"`
}

// DecodeParcelowWebhook turns the raw body into a PaymentEvent.
func DecodeParcelowWebhook(raw []byte) (entities.PaymentEvent, error) {
	var req ParcelowWebhookRequest
	if err := json.Unmarshal(raw, &req); err != nil {
		return entities.PaymentEvent{}, fmt.Errorf("%w: %v", ErrInvalidWebhookPayload, err)
	}
	order := req.Order
	if order == nil {
		order = req.Data
	}
	if strings.TrimSpace(req.Event) == "" || order == nil {
		return entities.PaymentEvent{}, fmt.Errorf("%w: event and order are required", ErrInvalidWebhookPayload)
	}
	if order.ID == "" && order.Reference == "" {
		return entities.PaymentEvent{}, fmt.Errorf("%w: order id is required", ErrInvalidWebhookPayload)
	}
	return usecase.NewParcelowEvent(strings.TrimSpace(req.Event), order.snapshot(), json.RawMessage(raw)), nil
}

func (o ParcelowWebhookOrder) snapshot() entities.ParcelowOrderSnapshot {
	snap := entities.ParcelowOrderSnapshot{
		ID:         o.ID.String(),
		Reference:  o.Reference,
		StatusCode: o.Status.String(),
		StatusText: o.StatusText,
		OrderDate:  o.OrderDate,
	}
	snap.OrderAmountCents, _ = o.OrderAmount.Int64()
	snap.TotalUSDCents, _ = o.TotalUSD.Int64()
	snap.TotalBRLCents, _ = o.TotalBRL.Int64()
	if n, ok := o.Installments.Int64(); ok {
		snap.Installments = int(n)
	}
	for _, p := range o.Payments {
		total, _ := p.TotalBRL.Int64()
		inst, _ := p.Installments.Int64()
		snap.Payments = append(snap.Payments, entities.ParcelowPayment{TotalBRLCents: total, Installments: int(inst)})
	}
	return snap
}

// WiseWebhookRequest is a Wise transfer state-change notification.
type WiseWebhookRequest struct {
	EventType     string          `json:"event_type"`
	SchemaVersion string          `json:"schema_version"`
	SentAt        string          `json:"sent_at"`
	Data          WiseWebhookData `json:"data"`
}

type WiseWebhookData struct {
	Resource struct {
		ID        pkg.FlexString `json:"id"`
		ProfileID pkg.FlexString `json:"profile_id"`
		Type      string         `json:"type"`
	} `json:"resource"`
	CurrentState  string `json:"current_state"`
	PreviousState string `json:"previous_state"`
	OccurredAt    string `json:"occurred_at"`
}

func DecodeWiseWebhook(raw []byte) (entities.PaymentEvent, error) {
	var req WiseWebhookRequest
	if err := json.Unmarshal(raw, &req); err != nil {
		return entities.PaymentEvent{}, fmt.Errorf("%w: %v", ErrInvalidWebhookPayload, err)
	}
	transferID := req.Data.Resource.ID.String()
	if transferID == "" || req.Data.CurrentState == "" {
		return entities.PaymentEvent{}, fmt.Errorf("%w: resource id and current_state are required", ErrInvalidWebhookPayload)
	}
	eventType := req.EventType
	if eventType == "" {
		eventType = usecase.WiseStateChangeEvent
	}
	occurredAt, err := time.Parse(time.RFC3339, req.Data.OccurredAt)
	if err != nil {
		occurredAt = time.Now().UTC()
	}
	return usecase.NewWiseEvent(eventType, transferID, req.Data.Resource.ProfileID.String(),
		req.Data.CurrentState, req.Data.PreviousState, occurredAt, json.RawMessage(raw)), nil
}
