package interfaces

//go:generate mockgen -source=payment_gateway_interface.go -destination=mocks/payment_gateway_interface_mock.go -package=mock_interfaces

import (
	"context"

	"globalpartner_checkout/internal/domain/entities"
)

// IParcelowGateway abstracts the Parcelow REST API (Gateway A).
//
// Implementations must not retry on their own: retry and token handling live
// in the provider client underneath.
type IParcelowGateway interface {
	Simulate(ctx context.Context, amountCents int64) (entities.ParcelowSimulation, error)
	CreateOrder(ctx context.Context, req entities.ParcelowOrderRequest) (entities.ParcelowCheckout, error)
	GetOrder(ctx context.Context, providerOrderID string) (entities.ParcelowOrderSnapshot, error)
	CancelOrder(ctx context.Context, providerOrderID string) error
}

// IWiseGateway abstracts the Wise REST API (Gateway B).
type IWiseGateway interface {
	CreateQuote(ctx context.Context, req entities.WiseQuoteRequest) (entities.WiseQuote, error)
	CreateRecipient(ctx context.Context, req entities.WiseRecipientRequest) (entities.WiseRecipient, error)
	CreateTransfer(ctx context.Context, req entities.WiseTransferRequest) (entities.WiseTransfer, error)
	GetTransfer(ctx context.Context, transferID string) (entities.WiseTransfer, error)
	CancelTransfer(ctx context.Context, transferID string) error
}

// IRecipientCache remembers the Wise recipient created for the platform's
// account so it is reused across checkouts. Get returns "" on a miss.
type IRecipientCache interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, recipientID string) error
	Delete(ctx context.Context, key string) error
}
