package interfaces

//go:generate mockgen -source=notification_interface.go -destination=mocks/notification_interface_mock.go -package=mock_interfaces

import (
	"context"

	"globalpartner_checkout/internal/domain/entities"
)

// IDocumentGenerator renders the order's documents remotely and returns where
// the file was stored.
type IDocumentGenerator interface {
	GenerateContractPDF(ctx context.Context, orderID string) (string, error)
	GenerateAnnexPDF(ctx context.Context, orderID string) (string, error)
	GenerateInvoicePDF(ctx context.Context, orderID string) (string, error)
}

// IMailer sends the transactional e-mails of a completed payment.
type IMailer interface {
	SendClientConfirmation(ctx context.Context, orderID string) error
	SendSellerNotification(ctx context.Context, orderID string, seller entities.Seller) error
	SendAdminNotification(ctx context.Context, orderID string, admin entities.Admin) error
}

// IAutomationNotifier relays a completed order to the external automation
// endpoint.
type IAutomationNotifier interface {
	NotifyOrderCompleted(ctx context.Context, order entities.Order) error
}

// ITaskDispatcher runs best-effort work outside the request that produced it.
type ITaskDispatcher interface {
	Submit(name string, task func(ctx context.Context) error)
}

// IPaymentSideEffects runs everything that follows the first completion of an
// order's payment.
type IPaymentSideEffects interface {
	OnPaymentCompleted(ctx context.Context, order entities.Order, event entities.PaymentEvent)
}
