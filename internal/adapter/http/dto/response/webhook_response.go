package response

import "globalpartner_checkout/internal/usecase"

// WebhookAck is the body every accepted webhook delivery gets, whatever the
// reconciliation outcome.
type WebhookAck struct {
	Received bool `json:"received"`
}

type StatusResponse struct {
	Status string `json:"status"`
}

type SyncResponse struct {
	Success       bool   `json:"success"`
	Outcome       string `json:"outcome"`
	OrderID       string `json:"order_id"`
	PaymentStatus string `json:"payment_status"`
}

func FromReconcileResult(r usecase.ReconcileResult) SyncResponse {
	return SyncResponse{
		Success:       true,
		Outcome:       string(r.Outcome),
		OrderID:       r.OrderID,
		PaymentStatus: string(r.PaymentStatus),
	}
}
