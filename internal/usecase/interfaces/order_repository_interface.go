package interfaces

//go:generate mockgen -source=order_repository_interface.go -destination=mocks/order_repository_interface_mock.go -package=mock_interfaces

import (
	"context"
	"time"

	"globalpartner_checkout/internal/domain/entities"
)

// StatusTransition is the write produced by one webhook reconciliation.
//
// Mirror fields are always written. Status is written only when set, and
// never over a completed order. Metadata and PaidAt accompany a completion.
type StatusTransition struct {
	Provider   entities.Provider
	StatusText string
	StatusCode string
	Status     entities.PaymentStatus
	Metadata   map[string]any
	PaidAt     *time.Time
}

// IOrderRepository abstracts DynamoDB persistence for orders.
//
// Lookups return a zero Order and nil error when nothing matches.
type IOrderRepository interface {
	GetByID(ctx context.Context, id string) (entities.Order, error)
	GetByOrderNumber(ctx context.Context, orderNumber string) (entities.Order, error)
	GetByParcelowOrderID(ctx context.Context, parcelowOrderID string) (entities.Order, error)
	GetByWiseTransferID(ctx context.Context, transferID string) (entities.Order, error)

	// LinkProvider writes the whole provider linkage in one conditional
	// update. linked is false when the order already had a linkage, is no
	// longer pending, or does not exist.
	LinkProvider(ctx context.Context, orderID string, link entities.ProviderLink) (linked bool, err error)

	// ApplyTransition persists a reconciliation result. applied is false when
	// the status change lost against a concurrent completion; the mirror
	// fields are still written in that case.
	ApplyTransition(ctx context.Context, orderID string, t StatusTransition) (applied bool, err error)
}
