package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"globalpartner_checkout/internal/adapter/http/handlers/mocks"
	"globalpartner_checkout/internal/domain/entities"
	"globalpartner_checkout/internal/infrastructure/webhooksig"
	"globalpartner_checkout/internal/usecase"

	"github.com/gin-gonic/gin"
	"go.uber.org/mock/gomock"
)

const parcelowPaidBody = `{"event":"event_order_paid","order":{"id":555,"reference":"GP-1001","status":1,"status_text":"Paid","order_amount":58000,"total_usd":60000,"total_brl":330000}}`

const wiseSentBody = `{"event_type":"transfers#state-change","schema_version":"2.0.0","data":{"resource":{"id":777,"profile_id":42,"type":"transfer"},"current_state":"outgoing_payment_sent","previous_state":"processing","occurred_at":"2026-01-10T12:00:00Z"}}`

func newWebhookRouter(t *testing.T, parcelowVerifier, wiseVerifier webhooksig.Verifier) (*gin.Engine, *mocks.MockIWebhookReconcilerUseCase) {
	t.Helper()
	ctrl := gomock.NewController(t)
	reconciler := mocks.NewMockIWebhookReconcilerUseCase(ctrl)
	h := NewWebhookHandler(reconciler, parcelowVerifier, wiseVerifier)

	r := gin.New()
	r.GET("/v1/webhooks/parcelow", h.Liveness)
	r.POST("/v1/webhooks/parcelow", h.ParcelowWebhook)
	r.POST("/v1/webhooks/wise", h.WiseWebhook)
	return r, reconciler
}

func postWebhook(r http.Handler, path, body string, headers map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestWebhookHandler_Parcelow(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("liveness", func(t *testing.T) {
		r, _ := newWebhookRouter(t, nil, nil)
		req := httptest.NewRequest(http.MethodGet, "/v1/webhooks/parcelow", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusOK || w.Body.String() != `{"status":"ok"}` {
			t.Fatalf("unexpected liveness response %d %s", w.Code, w.Body.String())
		}
	})

	t.Run("bad json", func(t *testing.T) {
		r, _ := newWebhookRouter(t, nil, nil)

		w := postWebhook(r, "/v1/webhooks/parcelow", "{", nil)

		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})

	t.Run("normalized event reaches the reconciler", func(t *testing.T) {
		r, reconciler := newWebhookRouter(t, nil, nil)
		reconciler.EXPECT().Reconcile(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, e entities.PaymentEvent) (usecase.ReconcileResult, error) {
				if e.Provider != entities.ProviderParcelow || e.ProviderRef != "555" || e.OrderRef != "GP-1001" {
					t.Fatalf("unexpected event %+v", e)
				}
				if !e.IsCompletion() || e.Settlement == nil {
					t.Fatalf("expected completion with settlement, got %+v", e)
				}
				return usecase.ReconcileResult{Outcome: usecase.OutcomeCompleted, OrderID: "o-1"}, nil
			})

		w := postWebhook(r, "/v1/webhooks/parcelow", parcelowPaidBody, nil)

		if w.Code != http.StatusOK || w.Body.String() != `{"received":true}` {
			t.Fatalf("unexpected response %d %s", w.Code, w.Body.String())
		}
	})

	t.Run("unknown order is still acknowledged", func(t *testing.T) {
		r, reconciler := newWebhookRouter(t, nil, nil)
		reconciler.EXPECT().Reconcile(gomock.Any(), gomock.Any()).Return(usecase.ReconcileResult{Outcome: usecase.OutcomeOrderNotFound}, nil)

		w := postWebhook(r, "/v1/webhooks/parcelow", parcelowPaidBody, nil)

		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
	})

	t.Run("reconcile failure", func(t *testing.T) {
		r, reconciler := newWebhookRouter(t, nil, nil)
		reconciler.EXPECT().Reconcile(gomock.Any(), gomock.Any()).Return(usecase.ReconcileResult{}, errors.New("dynamodb unavailable"))

		w := postWebhook(r, "/v1/webhooks/parcelow", parcelowPaidBody, nil)

		if w.Code != http.StatusInternalServerError {
			t.Fatalf("expected 500, got %d", w.Code)
		}
	})

	t.Run("signature checked when configured", func(t *testing.T) {
		verifier := webhooksig.NewHMACVerifier("s3cret")
		r, reconciler := newWebhookRouter(t, verifier, nil)

		w := postWebhook(r, "/v1/webhooks/parcelow", parcelowPaidBody, map[string]string{HeaderParcelowSignature: "deadbeef"})
		if w.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", w.Code)
		}

		reconciler.EXPECT().Reconcile(gomock.Any(), gomock.Any()).Return(usecase.ReconcileResult{Outcome: usecase.OutcomeDuplicate}, nil)
		sig := verifier.Sign([]byte(parcelowPaidBody))
		w = postWebhook(r, "/v1/webhooks/parcelow", parcelowPaidBody, map[string]string{HeaderParcelowSignature: sig})
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200 with valid signature, got %d", w.Code)
		}
	})
}

func TestWebhookHandler_Wise(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("state change", func(t *testing.T) {
		r, reconciler := newWebhookRouter(t, nil, nil)
		reconciler.EXPECT().Reconcile(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, e entities.PaymentEvent) (usecase.ReconcileResult, error) {
				if e.Provider != entities.ProviderWise || e.ProviderRef != "777" || e.Target != entities.PaymentStatusCompleted {
					t.Fatalf("unexpected event %+v", e)
				}
				if e.Wise == nil || e.Wise.PreviousState != "processing" {
					t.Fatalf("expected wise details, got %+v", e.Wise)
				}
				return usecase.ReconcileResult{Outcome: usecase.OutcomeCompleted}, nil
			})

		w := postWebhook(r, "/v1/webhooks/wise", wiseSentBody, nil)

		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
	})

	t.Run("missing state", func(t *testing.T) {
		r, _ := newWebhookRouter(t, nil, nil)

		w := postWebhook(r, "/v1/webhooks/wise", `{"data":{"resource":{"id":777}}}`, nil)

		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})

	t.Run("missing signature", func(t *testing.T) {
		r, _ := newWebhookRouter(t, nil, rejectingVerifier{})

		w := postWebhook(r, "/v1/webhooks/wise", wiseSentBody, nil)

		if w.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", w.Code)
		}
		var body map[string]any
		_ = json.Unmarshal(w.Body.Bytes(), &body)
		if body["code"] != "INVALID_SIGNATURE" {
			t.Fatalf("unexpected body %+v", body)
		}
	})
}

type rejectingVerifier struct{}

func (rejectingVerifier) Verify(_ []byte, _ string) error { return webhooksig.ErrMissingSignature }
