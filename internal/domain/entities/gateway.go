package entities

import (
	"time"

	"github.com/shopspring/decimal"
)

// ParcelowOrderRequest is the checkout order sent to Parcelow. Currency BRL
// selects the BRL-priced endpoint; anything else is priced in USD.
type ParcelowOrderRequest struct {
	Reference        string
	PartnerReference string
	Currency         string
	Client           ParcelowClient
	Items            []ParcelowItem
	SuccessURL       string
	FailedURL        string
}

type ParcelowClient struct {
	CPF          string
	Name         string
	Email        string
	Phone        string
	BirthDate    string
	PostalCode   string
	Street       string
	Number       string
	Complement   string
	Neighborhood string
	City         string
	State        string
}

type ParcelowItem struct {
	Reference     string
	Description   string
	Quantity      int
	AmountInCents int64
}

type ParcelowCheckout struct {
	OrderID     string
	CheckoutURL string
	Status      string
}

// ParcelowOrderSnapshot is the provider's view of an order, as carried by
// webhooks and the order lookup endpoint. Amounts are in cents.
type ParcelowOrderSnapshot struct {
	ID               string
	Reference        string
	StatusCode       string
	StatusText       string
	OrderAmountCents int64
	TotalUSDCents    int64
	TotalBRLCents    int64
	Installments     int
	Payments         []ParcelowPayment
	OrderDate        string
}

// ParcelowSimulation lists the installment plans Parcelow offers for an
// amount.
type ParcelowSimulation struct {
	AmountUSD decimal.Decimal
	Options   []ParcelowInstallmentOption
}

type ParcelowInstallmentOption struct {
	Installments int
	MonthlyBRL   decimal.Decimal
	TotalBRL     decimal.Decimal
	TotalUSD     decimal.Decimal
	ExchangeRate decimal.Decimal
}

type WiseQuoteRequest struct {
	SourceCurrency string
	TargetCurrency string
	TargetAmount   decimal.Decimal
}

type WiseQuote struct {
	ID             string
	SourceCurrency string
	TargetCurrency string
	SourceAmount   decimal.Decimal
	TargetAmount   decimal.Decimal
	Rate           decimal.Decimal
	Fee            decimal.Decimal
	ExpiresAt      time.Time
	PaymentURL     string
	PayinSessionID string
}

type WiseRecipientRequest struct {
	Currency          string
	Type              string
	AccountHolderName string
	LegalType         string
	Details           map[string]any
}

type WiseRecipient struct {
	ID       string
	Currency string
	Type     string
}

type WiseTransferRequest struct {
	TargetAccount         string
	QuoteID               string
	CustomerTransactionID string
	Reference             string
}

type WiseTransfer struct {
	ID             string
	Status         string
	QuoteID        string
	SourceCurrency string
	TargetCurrency string
	SourceValue    decimal.Decimal
	TargetValue    decimal.Decimal
	Rate           decimal.Decimal
	PaymentURL     string
	PayinSessionID string
}
