package usecase

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"globalpartner_checkout/internal/domain/entities"
	"globalpartner_checkout/internal/usecase/interfaces"

	"golang.org/x/sync/errgroup"
)

const (
	StepServiceRequest = "service_request"
	StepPaymentRecords = "payment_records"
	StepFunnelEvent    = "funnel_event"
	StepContractPDF    = "contract_pdf"
	StepAnnexPDF       = "annex_pdf"
	StepInvoicePDF     = "invoice_pdf"
	StepClientEmail    = "client_email"
	StepSellerEmail    = "seller_email"
	StepAdminEmails    = "admin_emails"
	StepAutomation     = "automation"
)

// PaymentSideEffectsDeps groups the collaborators of the fan-out.
type PaymentSideEffectsDeps struct {
	ServiceRequests  interfaces.IServiceRequestRepository
	PaymentRecords   interfaces.IPaymentRecordRepository
	FunnelEvents     interfaces.IFunnelEventRepository
	Directory        interfaces.IDirectory
	Documents        interfaces.IDocumentGenerator
	Mailer           interfaces.IMailer
	Automation       interfaces.IAutomationNotifier
	Dispatcher       interfaces.ITaskDispatcher
	ConsultationSlug string
}

// PaymentSideEffectsUseCase runs the work that follows a completed payment.
// The database updates are awaited; documents, e-mails and the automation
// relay go to the dispatcher. No failure here reverts the payment status.
type PaymentSideEffectsUseCase struct {
	deps PaymentSideEffectsDeps
	now  func() time.Time
}

var _ interfaces.IPaymentSideEffects = (*PaymentSideEffectsUseCase)(nil)

func NewPaymentSideEffectsUseCase(deps PaymentSideEffectsDeps) *PaymentSideEffectsUseCase {
	return &PaymentSideEffectsUseCase{deps: deps, now: time.Now}
}

func (u *PaymentSideEffectsUseCase) OnPaymentCompleted(ctx context.Context, order entities.Order, event entities.PaymentEvent) {
	log.Printf("[payment][side-effects] start order_id=%s order_number=%s provider=%s", order.ID, order.OrderNumber, event.Provider)

	// The provider may hang up before the awaited writes finish.
	u.runCritical(context.WithoutCancel(ctx), order, event)
	u.submitBestEffort(order)
}

func (u *PaymentSideEffectsUseCase) runCritical(ctx context.Context, order entities.Order, event entities.PaymentEvent) {
	var g errgroup.Group

	if order.ServiceRequestID != "" && u.deps.ServiceRequests != nil {
		g.Go(func() error {
			u.logStep(order, StepServiceRequest, u.deps.ServiceRequests.MarkPaid(ctx, order.ServiceRequestID))
			return nil
		})
	}

	if u.deps.PaymentRecords != nil {
		g.Go(func() error {
			snapshot := entities.PaymentSnapshot{
				Provider:   event.Provider,
				Event:      event.Name,
				Reference:  event.ProviderRef,
				StatusText: event.StatusText,
				ReceivedAt: u.now().UTC(),
				Payload:    event.Raw,
			}
			n, err := u.deps.PaymentRecords.MarkPaidByOrderID(ctx, order.ID, snapshot)
			if err == nil && n == 0 {
				log.Printf("[payment][side-effects] no payment records order_id=%s", order.ID)
			}
			u.logStep(order, StepPaymentRecords, err)
			return nil
		})
	}

	if order.SellerID != "" && u.deps.FunnelEvents != nil {
		g.Go(func() error {
			err := u.deps.FunnelEvents.Record(ctx, entities.FunnelEvent{
				SellerID:  order.SellerID,
				OrderID:   order.ID,
				EventType: entities.FunnelEventPaymentCompleted,
				AmountUSD: order.TotalPriceUSD.InexactFloat64(),
				Metadata: map[string]any{
					"order_number":   order.OrderNumber,
					"product_slug":   order.ProductSlug,
					"payment_method": string(event.Provider),
				},
				CreatedAt: u.now().UTC(),
			})
			u.logStep(order, StepFunnelEvent, err)
			return nil
		})
	}

	_ = g.Wait()
}

func (u *PaymentSideEffectsUseCase) logStep(order entities.Order, step string, err error) {
	if err != nil {
		log.Printf("[payment][side-effects] step failed order_id=%s order_number=%s step=%s err=%v", order.ID, order.OrderNumber, step, err)
		return
	}
	log.Printf("[payment][side-effects] step done order_id=%s step=%s", order.ID, step)
}

func (u *PaymentSideEffectsUseCase) submitBestEffort(order entities.Order) {
	if u.deps.Dispatcher == nil {
		log.Printf("[payment][side-effects] no dispatcher, best-effort steps skipped order_id=%s", order.ID)
		return
	}

	if u.deps.Documents != nil {
		if order.ProductSlug != "" && order.ProductSlug == u.deps.ConsultationSlug {
			log.Printf("[payment][side-effects] contract skipped for consultation order_id=%s", order.ID)
		} else {
			u.submit(order, StepContractPDF, func(ctx context.Context) error {
				_, err := u.deps.Documents.GenerateContractPDF(ctx, order.ID)
				return err
			})
		}
		u.submit(order, StepAnnexPDF, func(ctx context.Context) error {
			_, err := u.deps.Documents.GenerateAnnexPDF(ctx, order.ID)
			return err
		})
		u.submit(order, StepInvoicePDF, func(ctx context.Context) error {
			_, err := u.deps.Documents.GenerateInvoicePDF(ctx, order.ID)
			return err
		})
	}

	if u.deps.Mailer != nil {
		u.submit(order, StepClientEmail, func(ctx context.Context) error {
			return u.deps.Mailer.SendClientConfirmation(ctx, order.ID)
		})
		if order.SellerID == "" {
			log.Printf("[payment][side-effects] seller notification skipped, no seller order_id=%s", order.ID)
		} else {
			u.submit(order, StepSellerEmail, func(ctx context.Context) error {
				return u.notifySeller(ctx, order)
			})
		}
		u.submit(order, StepAdminEmails, func(ctx context.Context) error {
			return u.notifyAdmins(ctx, order)
		})
	}

	if u.deps.Automation != nil {
		u.submit(order, StepAutomation, func(ctx context.Context) error {
			return u.deps.Automation.NotifyOrderCompleted(ctx, order)
		})
	}
}

// submit tags task errors with the order and step so each failure is
// traceable in the dispatcher log.
func (u *PaymentSideEffectsUseCase) submit(order entities.Order, step string, fn func(ctx context.Context) error) {
	u.deps.Dispatcher.Submit(step, func(ctx context.Context) error {
		if err := fn(ctx); err != nil {
			return fmt.Errorf("order_id=%s order_number=%s step=%s: %w", order.ID, order.OrderNumber, step, err)
		}
		return nil
	})
}

func (u *PaymentSideEffectsUseCase) notifySeller(ctx context.Context, order entities.Order) error {
	if u.deps.Directory == nil {
		return errors.New("seller directory not configured")
	}
	seller, err := u.deps.Directory.GetSeller(ctx, order.SellerID)
	if err != nil {
		return fmt.Errorf("load seller %s: %w", order.SellerID, err)
	}
	if seller.ID == "" || seller.Email == "" {
		log.Printf("[payment][side-effects] seller has no e-mail, skipping order_id=%s seller_id=%s", order.ID, order.SellerID)
		return nil
	}
	return u.deps.Mailer.SendSellerNotification(ctx, order.ID, seller)
}

// notifyAdmins e-mails every current admin concurrently and reports all
// failures together.
func (u *PaymentSideEffectsUseCase) notifyAdmins(ctx context.Context, order entities.Order) error {
	if u.deps.Directory == nil {
		return errors.New("admin directory not configured")
	}
	admins, err := u.deps.Directory.ListAdmins(ctx)
	if err != nil {
		return fmt.Errorf("list admins: %w", err)
	}
	if len(admins) == 0 {
		log.Printf("[payment][side-effects] no admins to notify order_id=%s", order.ID)
		return nil
	}

	errs := make([]error, len(admins))
	var g errgroup.Group
	for i, admin := range admins {
		g.Go(func() error {
			if err := u.deps.Mailer.SendAdminNotification(ctx, order.ID, admin); err != nil {
				errs[i] = fmt.Errorf("admin %s: %w", admin.Email, err)
			}
			return nil
		})
	}
	_ = g.Wait()
	return errors.Join(errs...)
}
