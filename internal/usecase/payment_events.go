package usecase

import (
	"encoding/json"
	"strings"
	"time"

	"globalpartner_checkout/internal/domain/entities"
)

// WiseStateChangeEvent is the event type Wise uses for transfer status
// notifications.
const WiseStateChangeEvent = "transfers#state-change"

// MapParcelowEvent returns the internal status a Parcelow event moves the
// order to, or "" when the event leaves the status unchanged. Names are
// accepted with or without the "event_" prefix.
func MapParcelowEvent(name string) entities.PaymentStatus {
	n := strings.TrimPrefix(strings.ToLower(strings.TrimSpace(name)), "event_")
	switch n {
	case "order_paid":
		return entities.PaymentStatusCompleted
	case "order_declined":
		return entities.PaymentStatusFailed
	case "order_canceled", "order_cancelled", "order_expired":
		return entities.PaymentStatusCancelled
	}
	// order_confirmed, order_waiting* and unknown events
	return ""
}

// MapWiseState does the same for a Wise transfer state.
func MapWiseState(state string) entities.PaymentStatus {
	switch strings.ToLower(strings.TrimSpace(state)) {
	case "outgoing_payment_sent":
		return entities.PaymentStatusCompleted
	case "bounced_back", "charged_back":
		return entities.PaymentStatusFailed
	case "cancelled", "funds_refunded":
		return entities.PaymentStatusCancelled
	}
	return ""
}

// NewParcelowEvent normalizes a Parcelow notification or order lookup.
func NewParcelowEvent(name string, snap entities.ParcelowOrderSnapshot, raw json.RawMessage) entities.PaymentEvent {
	return entities.PaymentEvent{
		Provider:    entities.ProviderParcelow,
		Name:        name,
		ProviderRef: snap.ID,
		OrderRef:    snap.Reference,
		StatusText:  snap.StatusText,
		StatusCode:  snap.StatusCode,
		Target:      MapParcelowEvent(name),
		Settlement:  parcelowSettlement(snap),
		Raw:         raw,
		Parcelow: &entities.ParcelowEvent{
			OrderAmountCents: snap.OrderAmountCents,
			TotalUSDCents:    snap.TotalUSDCents,
			TotalBRLCents:    snap.TotalBRLCents,
			Installments:     snap.Installments,
			Payments:         snap.Payments,
			OrderDate:        snap.OrderDate,
		},
	}
}

// parcelowSettlement reads the amounts carried by the notification.
// total_usd is the pre-fee amount and order_amount what Parcelow settles
// after its fee. The client's BRL total includes installment interest, so the
// sum of the payments wins over the pre-installment total_brl.
func parcelowSettlement(snap entities.ParcelowOrderSnapshot) *entities.Settlement {
	if snap.OrderAmountCents == 0 && snap.TotalUSDCents == 0 && snap.TotalBRLCents == 0 && len(snap.Payments) == 0 {
		return nil
	}

	s := &entities.Settlement{
		Provider:     entities.ProviderParcelow,
		Currency:     entities.BaseCurrency,
		GrossAmount:  entities.FromMinorUnits(snap.TotalUSDCents),
		NetAmount:    entities.FromMinorUnits(snap.OrderAmountCents),
		Installments: snap.Installments,
	}

	var paidCents int64
	installments := 0
	for _, p := range snap.Payments {
		paidCents += p.TotalBRLCents
		if p.Installments > installments {
			installments = p.Installments
		}
	}
	if paidCents == 0 {
		paidCents = snap.TotalBRLCents
	}
	if s.Installments == 0 {
		s.Installments = installments
	}
	if paidCents > 0 {
		s.PaidAmount = entities.FromMinorUnits(paidCents)
		s.PaidCurrency = "BRL"
		s.BaseLocalAmount = entities.FromMinorUnits(snap.TotalBRLCents)
	}
	return s
}

// NewWiseEvent normalizes a Wise transfer state change.
func NewWiseEvent(eventType, transferID, profileID, current, previous string, occurredAt time.Time, raw json.RawMessage) entities.PaymentEvent {
	return entities.PaymentEvent{
		Provider:    entities.ProviderWise,
		Name:        eventType,
		ProviderRef: transferID,
		StatusText:  current,
		Target:      MapWiseState(current),
		OccurredAt:  occurredAt,
		Raw:         raw,
		Wise: &entities.WiseEvent{
			ProfileID:     profileID,
			PreviousState: previous,
			CurrentState:  current,
			EventType:     eventType,
		},
	}
}

// wiseSettlement builds the amounts of a completed transfer. The order total
// is the gross; what the transfer delivers is the net when it lands in the
// base currency.
func wiseSettlement(order entities.Order, t entities.WiseTransfer) *entities.Settlement {
	s := &entities.Settlement{
		Provider:     entities.ProviderWise,
		Currency:     entities.BaseCurrency,
		GrossAmount:  order.TotalPriceUSD,
		NetAmount:    order.TotalPriceUSD,
		PaidAmount:   t.SourceValue,
		PaidCurrency: t.SourceCurrency,
		Rate:         t.Rate,
	}
	if strings.EqualFold(t.TargetCurrency, entities.BaseCurrency) && t.TargetValue.IsPositive() {
		s.NetAmount = t.TargetValue
	}
	return s
}

// parcelowSyncEventName turns the status_text returned by the order lookup
// into the event name the webhook would have carried.
func parcelowSyncEventName(statusText string) string {
	s := strings.ToLower(statusText)
	switch {
	case strings.Contains(s, "paid"), strings.Contains(s, "pago"), strings.Contains(s, "approved"):
		return "order_paid"
	case strings.Contains(s, "declined"), strings.Contains(s, "recusado"):
		return "order_declined"
	case strings.Contains(s, "cancel"):
		return "order_canceled"
	case strings.Contains(s, "expired"):
		return "order_expired"
	}
	return "order_waiting_payment"
}
