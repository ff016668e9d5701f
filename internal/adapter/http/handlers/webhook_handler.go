package handlers

//go:generate mockgen -destination=mocks/webhook_reconciler_usecase_mock.go -package=mocks globalpartner_checkout/internal/usecase IWebhookReconcilerUseCase

import (
	"errors"
	"globalpartner_checkout/internal/adapter/http/dto/request"
	response "globalpartner_checkout/internal/adapter/http/dto/response"
	"globalpartner_checkout/internal/domain/entities"
	"globalpartner_checkout/internal/infrastructure/webhooksig"
	"globalpartner_checkout/internal/usecase"
	"globalpartner_checkout/pkg"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
)

const (
	HeaderParcelowSignature = "X-Parcelow-Signature"
	HeaderWiseSignature     = "X-Signature-SHA256"
)

// WebhookHandler receives provider notifications and hands the normalized
// event to the reconciler. A nil verifier disables signature checks for
// that provider.
type WebhookHandler struct {
	reconciler       usecase.IWebhookReconcilerUseCase
	parcelowVerifier webhooksig.Verifier
	wiseVerifier     webhooksig.Verifier
}

func NewWebhookHandler(reconciler usecase.IWebhookReconcilerUseCase, parcelowVerifier, wiseVerifier webhooksig.Verifier) *WebhookHandler {
	if parcelowVerifier == nil {
		log.Printf("[webhook][handler] PARCELOW_WEBHOOK_SECRET not set, parcelow signatures are not verified")
	}
	if wiseVerifier == nil {
		log.Printf("[webhook][handler] WISE_WEBHOOK_PUBLIC_KEY not set, wise signatures are not verified")
	}
	return &WebhookHandler{reconciler: reconciler, parcelowVerifier: parcelowVerifier, wiseVerifier: wiseVerifier}
}

// ParcelowWebhook godoc
// @Summary      Parcelow order notification
// @Tags         webhooks
// @Accept       json
// @Produce      json
// @Success      200  {object}  response.WebhookAck
// @Failure      400  {object}  pkg.HTTPError
// @Failure      401  {object}  pkg.HTTPError
// @Failure      500  {object}  pkg.HTTPError
// @Router       /webhooks/parcelow [post]
func (h *WebhookHandler) ParcelowWebhook(c *gin.Context) {
	h.handle(c, entities.ProviderParcelow, h.parcelowVerifier, HeaderParcelowSignature, request.DecodeParcelowWebhook)
}

// WiseWebhook godoc
// @Summary      Wise transfer state change
// @Tags         webhooks
// @Accept       json
// @Produce      json
// @Success      200  {object}  response.WebhookAck
// @Failure      400  {object}  pkg.HTTPError
// @Failure      401  {object}  pkg.HTTPError
// @Failure      500  {object}  pkg.HTTPError
// @Router       /webhooks/wise [post]
func (h *WebhookHandler) WiseWebhook(c *gin.Context) {
	h.handle(c, entities.ProviderWise, h.wiseVerifier, HeaderWiseSignature, request.DecodeWiseWebhook)
}

// Liveness answers the GET probes both providers send when a webhook URL
// is registered.
func (h *WebhookHandler) Liveness(c *gin.Context) {
	c.JSON(http.StatusOK, response.StatusResponse{Status: "ok"})
}

func (h *WebhookHandler) handle(c *gin.Context, provider entities.Provider, verifier webhooksig.Verifier, header string, decode func([]byte) (entities.PaymentEvent, error)) {
	raw, err := c.GetRawData()
	if err != nil {
		log.Printf("[webhook][handler] read body failed provider=%s err=%v", provider, err)
		invalidRequest(c)
		return
	}

	if verifier != nil {
		if err := verifier.Verify(raw, c.GetHeader(header)); err != nil {
			log.Printf("[webhook][handler] signature rejected provider=%s err=%v", provider, err)
			appErr := pkg.NewDomainErrorSimple("INVALID_SIGNATURE", "Invalid webhook signature", http.StatusUnauthorized)
			c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
			return
		}
	}

	event, err := decode(raw)
	if err != nil {
		log.Printf("[webhook][handler] decode failed provider=%s err=%v", provider, err)
		appErr := pkg.NewDomainErrorSimple("INVALID_PAYLOAD", "Invalid webhook payload", http.StatusBadRequest)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	log.Printf("[webhook][handler] received provider=%s event=%s ref=%s", provider, event.Name, event.ProviderRef)

	result, err := h.reconciler.Reconcile(c.Request.Context(), event)
	if err != nil {
		log.Printf("[webhook][handler] reconcile failed provider=%s ref=%s err=%v", provider, event.ProviderRef, err)
		appErr := mapWebhookError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	log.Printf("[webhook][handler] done provider=%s ref=%s outcome=%s order_id=%s", provider, event.ProviderRef, result.Outcome, result.OrderID)

	c.JSON(http.StatusOK, response.WebhookAck{Received: true})
}

func mapWebhookError(err error) *pkg.AppError {
	switch {
	case errors.Is(err, webhooksig.ErrMissingSignature), errors.Is(err, webhooksig.ErrInvalidSignature):
		return pkg.NewDomainErrorSimple("INVALID_SIGNATURE", "Invalid webhook signature", http.StatusUnauthorized)
	case errors.Is(err, usecase.ErrUnsupportedEventSource):
		return pkg.NewDomainErrorSimple("INVALID_PAYLOAD", "Invalid webhook payload", http.StatusBadRequest)
	default:
		return pkg.NewDomainError("INTERNAL_ERROR", "An internal error occurred", err, http.StatusInternalServerError)
	}
}
