package usecase

import (
	"context"
	"errors"
	"slices"
	"strings"
	"sync"
	"testing"

	"globalpartner_checkout/internal/domain/entities"
	mock_interfaces "globalpartner_checkout/internal/usecase/interfaces/mocks"

	"go.uber.org/mock/gomock"
)

// inlineDispatcher runs tasks as they are submitted and records the outcome.
type inlineDispatcher struct {
	mu    sync.Mutex
	names []string
	errs  map[string]error
}

func (d *inlineDispatcher) Submit(name string, task func(ctx context.Context) error) {
	err := task(context.Background())
	d.mu.Lock()
	defer d.mu.Unlock()
	d.names = append(d.names, name)
	if d.errs == nil {
		d.errs = map[string]error{}
	}
	d.errs[name] = err
}

type sideEffectMocks struct {
	serviceRequests *mock_interfaces.MockIServiceRequestRepository
	paymentRecords  *mock_interfaces.MockIPaymentRecordRepository
	funnel          *mock_interfaces.MockIFunnelEventRepository
	directory       *mock_interfaces.MockIDirectory
	documents       *mock_interfaces.MockIDocumentGenerator
	mailer          *mock_interfaces.MockIMailer
	automation      *mock_interfaces.MockIAutomationNotifier
	dispatcher      *inlineDispatcher
}

func newSideEffects(ctrl *gomock.Controller) (*PaymentSideEffectsUseCase, sideEffectMocks) {
	m := sideEffectMocks{
		serviceRequests: mock_interfaces.NewMockIServiceRequestRepository(ctrl),
		paymentRecords:  mock_interfaces.NewMockIPaymentRecordRepository(ctrl),
		funnel:          mock_interfaces.NewMockIFunnelEventRepository(ctrl),
		directory:       mock_interfaces.NewMockIDirectory(ctrl),
		documents:       mock_interfaces.NewMockIDocumentGenerator(ctrl),
		mailer:          mock_interfaces.NewMockIMailer(ctrl),
		automation:      mock_interfaces.NewMockIAutomationNotifier(ctrl),
		dispatcher:      &inlineDispatcher{},
	}
	uc := NewPaymentSideEffectsUseCase(PaymentSideEffectsDeps{
		ServiceRequests:  m.serviceRequests,
		PaymentRecords:   m.paymentRecords,
		FunnelEvents:     m.funnel,
		Directory:        m.directory,
		Documents:        m.documents,
		Mailer:           m.mailer,
		Automation:       m.automation,
		Dispatcher:       m.dispatcher,
		ConsultationSlug: "consultation",
	})
	return uc, m
}

func completedOrder() entities.Order {
	o := pendingOrder()
	o.PaymentStatus = entities.PaymentStatusCompleted
	o.ServiceRequestID = "sr-1"
	o.SellerID = "seller-1"
	return o
}

func TestPaymentSideEffects_OnPaymentCompleted(t *testing.T) {
	t.Run("runs every step", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc, m := newSideEffects(ctrl)

		order := completedOrder()
		event := entities.PaymentEvent{Provider: entities.ProviderParcelow, Name: "order_paid", ProviderRef: "555"}

		m.serviceRequests.EXPECT().MarkPaid(gomock.Any(), "sr-1").Return(nil)
		m.paymentRecords.EXPECT().MarkPaidByOrderID(gomock.Any(), order.ID, gomock.Any()).DoAndReturn(
			func(_ context.Context, _ string, snap entities.PaymentSnapshot) (int, error) {
				if snap.Event != "order_paid" || snap.Reference != "555" || snap.Provider != entities.ProviderParcelow {
					t.Fatalf("unexpected snapshot %+v", snap)
				}
				return 1, nil
			})
		m.funnel.EXPECT().Record(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, e entities.FunnelEvent) error {
			if e.SellerID != "seller-1" || e.EventType != entities.FunnelEventPaymentCompleted || e.AmountUSD != 600 {
				t.Fatalf("unexpected funnel event %+v", e)
			}
			return nil
		})
		m.documents.EXPECT().GenerateContractPDF(gomock.Any(), order.ID).Return("contracts/1.pdf", nil)
		m.documents.EXPECT().GenerateAnnexPDF(gomock.Any(), order.ID).Return("annex/1.pdf", nil)
		m.documents.EXPECT().GenerateInvoicePDF(gomock.Any(), order.ID).Return("invoices/1.pdf", nil)
		m.mailer.EXPECT().SendClientConfirmation(gomock.Any(), order.ID).Return(nil)
		m.directory.EXPECT().GetSeller(gomock.Any(), "seller-1").Return(entities.Seller{ID: "seller-1", Email: "s@test.com"}, nil)
		m.mailer.EXPECT().SendSellerNotification(gomock.Any(), order.ID, gomock.Any()).Return(nil)
		m.directory.EXPECT().ListAdmins(gomock.Any()).Return([]entities.Admin{
			{ID: "a-1", Email: "a1@test.com"},
			{ID: "a-2", Email: "a2@test.com"},
		}, nil)
		m.mailer.EXPECT().SendAdminNotification(gomock.Any(), order.ID, gomock.Any()).Return(nil).Times(2)
		m.automation.EXPECT().NotifyOrderCompleted(gomock.Any(), gomock.Any()).Return(nil)

		uc.OnPaymentCompleted(context.Background(), order, event)

		want := []string{StepContractPDF, StepAnnexPDF, StepInvoicePDF, StepClientEmail, StepSellerEmail, StepAdminEmails, StepAutomation}
		if !slices.Equal(m.dispatcher.names, want) {
			t.Fatalf("expected tasks %v, got %v", want, m.dispatcher.names)
		}
		for name, err := range m.dispatcher.errs {
			if err != nil {
				t.Fatalf("task %s failed: %v", name, err)
			}
		}
	})

	t.Run("consultation without seller or service request", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc, m := newSideEffects(ctrl)

		order := pendingOrder()
		order.ProductSlug = "consultation"

		m.paymentRecords.EXPECT().MarkPaidByOrderID(gomock.Any(), order.ID, gomock.Any()).Return(0, nil)
		m.documents.EXPECT().GenerateAnnexPDF(gomock.Any(), order.ID).Return("", nil)
		m.documents.EXPECT().GenerateInvoicePDF(gomock.Any(), order.ID).Return("", nil)
		m.mailer.EXPECT().SendClientConfirmation(gomock.Any(), order.ID).Return(nil)
		m.directory.EXPECT().ListAdmins(gomock.Any()).Return(nil, nil)
		m.automation.EXPECT().NotifyOrderCompleted(gomock.Any(), gomock.Any()).Return(nil)

		uc.OnPaymentCompleted(context.Background(), order, entities.PaymentEvent{Provider: entities.ProviderWise})

		if slices.Contains(m.dispatcher.names, StepContractPDF) || slices.Contains(m.dispatcher.names, StepSellerEmail) {
			t.Fatalf("unexpected tasks %v", m.dispatcher.names)
		}
	})

	t.Run("failures are isolated and tagged", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc, m := newSideEffects(ctrl)

		order := completedOrder()

		m.serviceRequests.EXPECT().MarkPaid(gomock.Any(), "sr-1").Return(errors.New("db"))
		m.paymentRecords.EXPECT().MarkPaidByOrderID(gomock.Any(), order.ID, gomock.Any()).Return(0, errors.New("db"))
		m.funnel.EXPECT().Record(gomock.Any(), gomock.Any()).Return(errors.New("db"))
		m.documents.EXPECT().GenerateContractPDF(gomock.Any(), order.ID).Return("", errors.New("render failed"))
		m.documents.EXPECT().GenerateAnnexPDF(gomock.Any(), order.ID).Return("", nil)
		m.documents.EXPECT().GenerateInvoicePDF(gomock.Any(), order.ID).Return("", nil)
		m.mailer.EXPECT().SendClientConfirmation(gomock.Any(), order.ID).Return(nil)
		m.directory.EXPECT().GetSeller(gomock.Any(), "seller-1").Return(entities.Seller{}, nil)
		m.directory.EXPECT().ListAdmins(gomock.Any()).Return([]entities.Admin{
			{ID: "a-1", Email: "a1@test.com"},
			{ID: "a-2", Email: "a2@test.com"},
		}, nil)
		m.mailer.EXPECT().SendAdminNotification(gomock.Any(), order.ID, gomock.Any()).DoAndReturn(
			func(_ context.Context, _ string, a entities.Admin) error {
				if a.ID == "a-2" {
					return errors.New("smtp")
				}
				return nil
			}).Times(2)
		m.automation.EXPECT().NotifyOrderCompleted(gomock.Any(), gomock.Any()).Return(nil)

		uc.OnPaymentCompleted(context.Background(), order, entities.PaymentEvent{Provider: entities.ProviderParcelow})

		if len(m.dispatcher.names) != 7 {
			t.Fatalf("expected all tasks submitted, got %v", m.dispatcher.names)
		}
		contractErr := m.dispatcher.errs[StepContractPDF]
		if contractErr == nil || !strings.Contains(contractErr.Error(), "order_number=GP-1001 step=contract_pdf") {
			t.Fatalf("expected tagged contract error, got %v", contractErr)
		}
		adminErr := m.dispatcher.errs[StepAdminEmails]
		if adminErr == nil || !strings.Contains(adminErr.Error(), "a2@test.com") || strings.Contains(adminErr.Error(), "a1@test.com") {
			t.Fatalf("expected only failing admin reported, got %v", adminErr)
		}
		if m.dispatcher.errs[StepSellerEmail] != nil {
			t.Fatalf("seller without e-mail must be skipped, got %v", m.dispatcher.errs[StepSellerEmail])
		}
	})

	t.Run("awaited writes ignore request cancellation", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := NewPaymentSideEffectsUseCase(PaymentSideEffectsDeps{})
		records := mock_interfaces.NewMockIPaymentRecordRepository(ctrl)
		uc.deps.PaymentRecords = records

		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		records.EXPECT().MarkPaidByOrderID(gomock.Any(), "o-1", gomock.Any()).DoAndReturn(
			func(ctx context.Context, _ string, _ entities.PaymentSnapshot) (int, error) {
				if ctx.Err() != nil {
					t.Fatalf("expected live context")
				}
				return 1, nil
			})

		uc.OnPaymentCompleted(ctx, entities.Order{ID: "o-1"}, entities.PaymentEvent{})
	})
}
