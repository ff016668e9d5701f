package usecase

import (
	"context"
	"log"
	"strings"
	"time"

	"globalpartner_checkout/internal/domain/entities"
	"globalpartner_checkout/internal/infrastructure/metrics"
	"globalpartner_checkout/internal/usecase/interfaces"
)

type ReconcileOutcome string

const (
	OutcomeOrderNotFound ReconcileOutcome = "order_not_found"
	OutcomeDuplicate     ReconcileOutcome = "duplicate"
	OutcomeUpdated       ReconcileOutcome = "updated"
	OutcomeCompleted     ReconcileOutcome = "completed"
)

type ReconcileResult struct {
	Outcome       ReconcileOutcome
	OrderID       string
	PaymentStatus entities.PaymentStatus
}

type IWebhookReconcilerUseCase interface {
	Reconcile(ctx context.Context, event entities.PaymentEvent) (ReconcileResult, error)
	// Sync reads the linked provider's current status and reconciles it as
	// if the provider had sent it.
	Sync(ctx context.Context, orderID string) (ReconcileResult, error)
}

// WebhookReconcilerUseCase applies normalized provider events to orders.
//
// The order of steps is fixed: idempotency guard, status persistence, then
// side effects, and side effects run only for the write that completed the
// order.
type WebhookReconcilerUseCase struct {
	orders      interfaces.IOrderRepository
	parcelow    interfaces.IParcelowGateway
	wise        interfaces.IWiseGateway
	sideEffects interfaces.IPaymentSideEffects
	now         func() time.Time
}

var _ IWebhookReconcilerUseCase = (*WebhookReconcilerUseCase)(nil)

func NewWebhookReconcilerUseCase(orders interfaces.IOrderRepository, parcelow interfaces.IParcelowGateway, wise interfaces.IWiseGateway, sideEffects interfaces.IPaymentSideEffects) *WebhookReconcilerUseCase {
	return &WebhookReconcilerUseCase{
		orders:      orders,
		parcelow:    parcelow,
		wise:        wise,
		sideEffects: sideEffects,
		now:         time.Now,
	}
}

func (u *WebhookReconcilerUseCase) Reconcile(ctx context.Context, event entities.PaymentEvent) (ReconcileResult, error) {
	log.Printf("[webhook][reconciler] received provider=%s event=%s ref=%s status=%q",
		event.Provider, event.Name, event.ProviderRef, event.StatusText)

	order, err := u.findOrder(ctx, event)
	if err != nil {
		log.Printf("[webhook][reconciler] order lookup failed provider=%s ref=%s err=%v", event.Provider, event.ProviderRef, err)
		return ReconcileResult{}, err
	}
	if order.ID == "" {
		log.Printf("[webhook][reconciler] order not found provider=%s ref=%s order_ref=%s", event.Provider, event.ProviderRef, event.OrderRef)
		return u.finish(event, ReconcileResult{Outcome: OutcomeOrderNotFound}), nil
	}

	if order.IsCompleted() && event.IsCompletion() {
		log.Printf("[webhook][reconciler] duplicate completion ignored order_id=%s event=%s", order.ID, event.Name)
		return u.finish(event, ReconcileResult{Outcome: OutcomeDuplicate, OrderID: order.ID, PaymentStatus: order.PaymentStatus}), nil
	}

	transition := interfaces.StatusTransition{
		Provider:   event.Provider,
		StatusText: event.StatusText,
		StatusCode: event.StatusCode,
	}
	if event.Target != "" && event.Target != order.PaymentStatus && !order.IsCompleted() {
		transition.Status = event.Target
	}

	completing := transition.Status == entities.PaymentStatusCompleted
	if completing {
		paidAt := u.now().UTC()
		transition.PaidAt = &paidAt
		transition.Metadata = u.completionMetadata(ctx, order, event)
	}

	applied, err := u.orders.ApplyTransition(ctx, order.ID, transition)
	if err != nil {
		log.Printf("[webhook][reconciler] persist failed order_id=%s err=%v", order.ID, err)
		return ReconcileResult{}, err
	}

	if completing && !applied {
		log.Printf("[webhook][reconciler] completion lost to concurrent delivery order_id=%s", order.ID)
		return u.finish(event, ReconcileResult{Outcome: OutcomeDuplicate, OrderID: order.ID, PaymentStatus: entities.PaymentStatusCompleted}), nil
	}

	status := order.PaymentStatus
	if transition.Status != "" {
		status = transition.Status
	}
	if !completing {
		log.Printf("[webhook][reconciler] updated order_id=%s status=%s mirror=%q", order.ID, status, event.StatusText)
		return u.finish(event, ReconcileResult{Outcome: OutcomeUpdated, OrderID: order.ID, PaymentStatus: status}), nil
	}

	log.Printf("[webhook][reconciler] completed order_id=%s order_number=%s provider=%s", order.ID, order.OrderNumber, event.Provider)
	order.PaymentStatus = entities.PaymentStatusCompleted
	order.PaidAt = transition.PaidAt
	order.PaymentMetadata = transition.Metadata
	if order.PaymentMethod == "" {
		order.PaymentMethod = event.Provider
	}
	if u.sideEffects != nil {
		u.sideEffects.OnPaymentCompleted(ctx, order, event)
	}
	return u.finish(event, ReconcileResult{Outcome: OutcomeCompleted, OrderID: order.ID, PaymentStatus: status}), nil
}

func (u *WebhookReconcilerUseCase) finish(event entities.PaymentEvent, res ReconcileResult) ReconcileResult {
	metrics.WebhookEventsTotal.WithLabelValues(string(event.Provider), event.Name, string(res.Outcome)).Inc()
	return res
}

func (u *WebhookReconcilerUseCase) findOrder(ctx context.Context, event entities.PaymentEvent) (entities.Order, error) {
	switch event.Provider {
	case entities.ProviderParcelow:
		order, err := u.orders.GetByParcelowOrderID(ctx, event.ProviderRef)
		if err != nil || order.ID != "" || event.OrderRef == "" {
			return order, err
		}
		return u.orders.GetByOrderNumber(ctx, event.OrderRef)
	case entities.ProviderWise:
		return u.orders.GetByWiseTransferID(ctx, event.ProviderRef)
	}
	return entities.Order{}, ErrUnsupportedEventSource
}

// completionMetadata renders the settlement of a completing event. Wise
// notifications carry no amounts, so the transfer is fetched; when that fails
// the metadata is written without amounts.
func (u *WebhookReconcilerUseCase) completionMetadata(ctx context.Context, order entities.Order, event entities.PaymentEvent) map[string]any {
	settlement := event.Settlement
	if settlement == nil && event.Provider == entities.ProviderWise && u.wise != nil {
		transfer, err := u.wise.GetTransfer(ctx, event.ProviderRef)
		if err != nil {
			log.Printf("[webhook][reconciler] transfer lookup failed, storing metadata without amounts order_id=%s transfer_id=%s err=%v",
				order.ID, event.ProviderRef, err)
		} else {
			settlement = wiseSettlement(order, transfer)
		}
	}

	var metadata map[string]any
	if settlement != nil {
		s := *settlement
		if s.GrossAmount.IsZero() {
			s.GrossAmount = order.TotalPriceUSD
		}
		if s.NetAmount.IsZero() {
			s.NetAmount = s.GrossAmount
		}
		metadata = s.Metadata()
	} else {
		metadata = map[string]any{"provider": string(event.Provider)}
	}
	metadata["provider_reference"] = event.ProviderRef
	metadata["event"] = event.Name
	return metadata
}

func (u *WebhookReconcilerUseCase) Sync(ctx context.Context, orderID string) (ReconcileResult, error) {
	orderID = strings.TrimSpace(orderID)
	if orderID == "" {
		return ReconcileResult{}, ErrInvalidOrderID
	}
	order, err := u.orders.GetByID(ctx, orderID)
	if err != nil {
		return ReconcileResult{}, err
	}
	if order.ID == "" {
		return ReconcileResult{}, ErrOrderNotFound
	}

	var event entities.PaymentEvent
	switch order.LinkedProvider() {
	case entities.ProviderParcelow:
		if u.parcelow == nil {
			return ReconcileResult{}, ErrProviderNotConfigured
		}
		snap, err := u.parcelow.GetOrder(ctx, order.Parcelow.OrderID)
		if err != nil {
			log.Printf("[webhook][sync] parcelow lookup failed order_id=%s provider_order_id=%s err=%v", order.ID, order.Parcelow.OrderID, err)
			return ReconcileResult{}, providerFailure(err)
		}
		if snap.ID == "" {
			snap.ID = order.Parcelow.OrderID
		}
		event = NewParcelowEvent(parcelowSyncEventName(snap.StatusText), snap, nil)
	case entities.ProviderWise:
		if u.wise == nil {
			return ReconcileResult{}, ErrProviderNotConfigured
		}
		transfer, err := u.wise.GetTransfer(ctx, order.Wise.TransferID)
		if err != nil {
			log.Printf("[webhook][sync] wise lookup failed order_id=%s transfer_id=%s err=%v", order.ID, order.Wise.TransferID, err)
			return ReconcileResult{}, providerFailure(err)
		}
		event = NewWiseEvent(WiseStateChangeEvent, order.Wise.TransferID, "", transfer.Status, order.Wise.Status, u.now().UTC(), nil)
		event.Settlement = wiseSettlement(order, transfer)
	default:
		return ReconcileResult{}, ErrOrderNotLinked
	}

	log.Printf("[webhook][sync] replaying provider status order_id=%s provider=%s event=%s status=%q", order.ID, event.Provider, event.Name, event.StatusText)
	return u.Reconcile(ctx, event)
}
