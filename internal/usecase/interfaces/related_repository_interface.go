package interfaces

//go:generate mockgen -source=related_repository_interface.go -destination=mocks/related_repository_interface_mock.go -package=mock_interfaces

import (
	"context"

	"globalpartner_checkout/internal/domain/entities"
)

// IServiceRequestRepository updates the human-service workflow linked to an
// order.
type IServiceRequestRepository interface {
	MarkPaid(ctx context.Context, serviceRequestID string) error
}

// IPaymentRecordRepository updates the payment ledger rows of an order.
type IPaymentRecordRepository interface {
	// MarkPaidByOrderID returns how many records were updated.
	MarkPaidByOrderID(ctx context.Context, orderID string, snapshot entities.PaymentSnapshot) (int, error)
}

// IFunnelEventRepository stores commission-attribution events.
type IFunnelEventRepository interface {
	Record(ctx context.Context, e entities.FunnelEvent) error
}

// IDirectory resolves sellers and the current set of platform admins.
type IDirectory interface {
	GetSeller(ctx context.Context, id string) (entities.Seller, error)
	ListAdmins(ctx context.Context) ([]entities.Admin, error)
}
