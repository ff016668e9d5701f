package usecase

import "errors"

var (
	ErrInvalidOrderID         = errors.New("invalid order_id")
	ErrOrderNotFound          = errors.New("order not found")
	ErrOrderAlreadyLinked     = errors.New("order already has a checkout session")
	ErrOrderNotPending        = errors.New("order is not pending payment")
	ErrOrderNotLinked         = errors.New("order has no checkout session")
	ErrMissingClientTaxID     = errors.New("CPF is required")
	ErrInvalidOrderAmount     = errors.New("order total must be greater than zero")
	ErrInvalidCurrency        = errors.New("unsupported currency")
	ErrProviderNotConfigured  = errors.New("payment provider not configured")
	ErrPaymentProvider        = errors.New("payment provider request failed")
	ErrUnsupportedEventSource = errors.New("unsupported payment event provider")
)
