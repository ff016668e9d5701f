package request

// ParcelowCheckoutRequest starts a Parcelow checkout for an existing order.
type ParcelowCheckoutRequest struct {
	OrderID  string `json:"order_id" binding:"required" example:"0b7f3c1e-5d2a-4f7e-9c61-2f1d8a4b9e10"`
	Currency string `json:"currency,omitempty" example:"USD"`
}

type ParcelowSimulateRequest struct {
	OrderID string `json:"order_id" binding:"required"`
}

// WiseCheckoutRequest starts a Wise transfer for an existing order.
// ClientCurrency is the currency the client pays in, USD when omitted.
type WiseCheckoutRequest struct {
	OrderID        string `json:"order_id" binding:"required"`
	ClientCurrency string `json:"client_currency,omitempty" example:"BRL"`
}
