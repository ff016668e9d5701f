package response

import (
	"globalpartner_checkout/internal/domain/entities"
	"globalpartner_checkout/internal/usecase"
)

type ParcelowCheckoutResponse struct {
	Success     bool   `json:"success"`
	CheckoutURL string `json:"checkout_url"`
	OrderID     string `json:"order_id"`
	Status      string `json:"status,omitempty"`
}

func FromParcelowCheckout(r usecase.ParcelowCheckoutResult) ParcelowCheckoutResponse {
	return ParcelowCheckoutResponse{
		Success:     true,
		CheckoutURL: r.CheckoutURL,
		OrderID:     r.ProviderOrderID,
		Status:      r.Status,
	}
}

type InstallmentOptionResponse struct {
	Installments int     `json:"installments"`
	MonthlyBRL   float64 `json:"monthly_brl"`
	TotalBRL     float64 `json:"total_brl"`
	ExchangeRate float64 `json:"exchange_rate,omitempty"`
}

type SimulationResponse struct {
	AmountUSD float64                     `json:"amount_usd"`
	Options   []InstallmentOptionResponse `json:"options"`
}

type ParcelowSimulateResponse struct {
	Success bool               `json:"success"`
	Quote   SimulationResponse `json:"quote"`
}

func FromParcelowSimulation(s entities.ParcelowSimulation) ParcelowSimulateResponse {
	quote := SimulationResponse{
		AmountUSD: s.AmountUSD.InexactFloat64(),
		Options:   make([]InstallmentOptionResponse, 0, len(s.Options)),
	}
	for _, o := range s.Options {
		quote.Options = append(quote.Options, InstallmentOptionResponse{
			Installments: o.Installments,
			MonthlyBRL:   o.MonthlyBRL.InexactFloat64(),
			TotalBRL:     o.TotalBRL.InexactFloat64(),
			ExchangeRate: o.ExchangeRate.InexactFloat64(),
		})
	}
	return ParcelowSimulateResponse{Success: true, Quote: quote}
}

type WiseCheckoutResponse struct {
	Success    bool   `json:"success"`
	PaymentURL string `json:"payment_url"`
	TransferID string `json:"transfer_id"`
	Status     string `json:"status,omitempty"`
}

func FromWiseCheckout(r usecase.WiseCheckoutResult) WiseCheckoutResponse {
	return WiseCheckoutResponse{
		Success:    true,
		PaymentURL: r.PaymentURL,
		TransferID: r.TransferID,
		Status:     r.Status,
	}
}
