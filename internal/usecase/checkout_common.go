package usecase

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"globalpartner_checkout/internal/domain/entities"
	"globalpartner_checkout/internal/usecase/interfaces"
)

const compensationTimeout = 30 * time.Second

// loadCheckoutOrder returns the order when it can still start a checkout.
func loadCheckoutOrder(ctx context.Context, orders interfaces.IOrderRepository, orderID, tag string) (entities.Order, error) {
	orderID = strings.TrimSpace(orderID)
	if orderID == "" {
		return entities.Order{}, ErrInvalidOrderID
	}

	order, err := orders.GetByID(ctx, orderID)
	if err != nil {
		log.Printf("[checkout][%s] failed loading order order_id=%s err=%v", tag, orderID, err)
		return entities.Order{}, err
	}
	if order.ID == "" {
		log.Printf("[checkout][%s] order not found order_id=%s", tag, orderID)
		return entities.Order{}, ErrOrderNotFound
	}
	if p := order.LinkedProvider(); p != "" {
		log.Printf("[checkout][%s] order already linked order_id=%s provider=%s", tag, orderID, p)
		return entities.Order{}, ErrOrderAlreadyLinked
	}
	if order.PaymentStatus != "" && order.PaymentStatus != entities.PaymentStatusPending {
		log.Printf("[checkout][%s] order not pending order_id=%s status=%s", tag, orderID, order.PaymentStatus)
		return entities.Order{}, ErrOrderNotPending
	}
	if !order.TotalPriceUSD.IsPositive() {
		log.Printf("[checkout][%s] invalid order total order_id=%s total=%s", tag, orderID, order.TotalPriceUSD)
		return entities.Order{}, ErrInvalidOrderAmount
	}
	return order, nil
}

// linkOrCompensate stores the provider linkage. When the store refuses or
// fails, the provider session is cancelled so no orphan checkout survives.
func linkOrCompensate(ctx context.Context, orders interfaces.IOrderRepository, order entities.Order, link entities.ProviderLink, providerRef string, cancel func(ctx context.Context, ref string) error) error {
	linked, err := orders.LinkProvider(ctx, order.ID, link)
	if err == nil && linked {
		return nil
	}

	cctx, done := context.WithTimeout(context.WithoutCancel(ctx), compensationTimeout)
	defer done()
	if cerr := cancel(cctx, providerRef); cerr != nil {
		log.Printf("[checkout][%s] compensation failed order_id=%s provider_ref=%s err=%v", link.Provider, order.ID, providerRef, cerr)
	} else {
		log.Printf("[checkout][%s] compensation done order_id=%s provider_ref=%s", link.Provider, order.ID, providerRef)
	}

	if err != nil {
		return fmt.Errorf("persist checkout link: %w", err)
	}
	return ErrOrderAlreadyLinked
}

func providerFailure(err error) error {
	return fmt.Errorf("%w: %w", ErrPaymentProvider, err)
}
