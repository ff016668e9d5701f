package handlers

//go:generate mockgen -destination=mocks/checkout_usecase_mock.go -package=mocks globalpartner_checkout/internal/usecase IParcelowCheckoutUseCase,IWiseCheckoutUseCase

import (
	"errors"
	"globalpartner_checkout/internal/adapter/http/dto/request"
	response "globalpartner_checkout/internal/adapter/http/dto/response"
	"globalpartner_checkout/internal/config"
	"globalpartner_checkout/internal/infrastructure/payments"
	"globalpartner_checkout/internal/usecase"
	"globalpartner_checkout/pkg"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
)

// CheckoutHandler starts provider checkouts for existing orders.
type CheckoutHandler struct {
	parcelow usecase.IParcelowCheckoutUseCase
	wise     usecase.IWiseCheckoutUseCase
}

func NewCheckoutHandler(parcelow usecase.IParcelowCheckoutUseCase, wise usecase.IWiseCheckoutUseCase) *CheckoutHandler {
	return &CheckoutHandler{parcelow: parcelow, wise: wise}
}

// CreateParcelowCheckout godoc
// @Summary      Start a Parcelow checkout
// @Description  Creates the Parcelow order for a pending order and returns the hosted checkout URL.
// @Tags         checkout
// @Accept       json
// @Produce      json
// @Param        body  body      request.ParcelowCheckoutRequest  true  "Order to pay"
// @Success      200   {object}  response.ParcelowCheckoutResponse
// @Failure      400   {object}  pkg.HTTPError
// @Failure      404   {object}  pkg.HTTPError
// @Failure      409   {object}  pkg.HTTPError
// @Failure      502   {object}  pkg.HTTPError
// @Router       /checkout/parcelow [post]
func (h *CheckoutHandler) CreateParcelowCheckout(c *gin.Context) {
	var req request.ParcelowCheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Printf("[checkout][handler] parcelow invalid payload err=%v", err)
		invalidRequest(c)
		return
	}
	log.Printf("[checkout][handler] parcelow start order_id=%s currency=%s", req.OrderID, req.Currency)

	result, err := h.parcelow.CreateCheckout(c.Request.Context(), usecase.ParcelowCheckoutInput{
		OrderID:  req.OrderID,
		Currency: req.Currency,
	})
	if err != nil {
		log.Printf("[checkout][handler] parcelow failed order_id=%s err=%v", req.OrderID, err)
		appErr := mapCheckoutError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	log.Printf("[checkout][handler] parcelow success order_id=%s parcelow_order_id=%s", req.OrderID, result.ProviderOrderID)

	c.JSON(http.StatusOK, response.FromParcelowCheckout(result))
}

// SimulateParcelow godoc
// @Summary      Simulate Parcelow installments
// @Tags         checkout
// @Accept       json
// @Produce      json
// @Param        body  body      request.ParcelowSimulateRequest  true  "Order to quote"
// @Success      200   {object}  response.ParcelowSimulateResponse
// @Failure      400   {object}  pkg.HTTPError
// @Failure      404   {object}  pkg.HTTPError
// @Failure      502   {object}  pkg.HTTPError
// @Router       /checkout/parcelow/simulate [post]
func (h *CheckoutHandler) SimulateParcelow(c *gin.Context) {
	var req request.ParcelowSimulateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidRequest(c)
		return
	}

	quote, err := h.parcelow.Simulate(c.Request.Context(), req.OrderID)
	if err != nil {
		log.Printf("[checkout][handler] simulate failed order_id=%s err=%v", req.OrderID, err)
		appErr := mapCheckoutError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusOK, response.FromParcelowSimulation(quote))
}

// CreateWiseCheckout godoc
// @Summary      Start a Wise checkout
// @Description  Quotes, creates the recipient and the transfer, and returns the Wise payment URL.
// @Tags         checkout
// @Accept       json
// @Produce      json
// @Param        body  body      request.WiseCheckoutRequest  true  "Order to pay"
// @Success      200   {object}  response.WiseCheckoutResponse
// @Failure      400   {object}  pkg.HTTPError
// @Failure      404   {object}  pkg.HTTPError
// @Failure      409   {object}  pkg.HTTPError
// @Failure      500   {object}  pkg.HTTPError
// @Failure      502   {object}  pkg.HTTPError
// @Router       /checkout/wise [post]
func (h *CheckoutHandler) CreateWiseCheckout(c *gin.Context) {
	var req request.WiseCheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Printf("[checkout][handler] wise invalid payload err=%v", err)
		invalidRequest(c)
		return
	}
	log.Printf("[checkout][handler] wise start order_id=%s client_currency=%s", req.OrderID, req.ClientCurrency)

	result, err := h.wise.CreateCheckout(c.Request.Context(), usecase.WiseCheckoutInput{
		OrderID:        req.OrderID,
		ClientCurrency: req.ClientCurrency,
	})
	if err != nil {
		log.Printf("[checkout][handler] wise failed order_id=%s err=%v", req.OrderID, err)
		appErr := mapCheckoutError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	log.Printf("[checkout][handler] wise success order_id=%s transfer_id=%s", req.OrderID, result.TransferID)

	c.JSON(http.StatusOK, response.FromWiseCheckout(result))
}

func invalidRequest(c *gin.Context) {
	appErr := pkg.NewDomainErrorSimple("INVALID_REQUEST", "Invalid request", http.StatusBadRequest)
	c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
}

func mapCheckoutError(err error) *pkg.AppError {
	switch {
	case errors.Is(err, usecase.ErrInvalidOrderID):
		return pkg.NewDomainErrorSimple("INVALID_REQUEST", "order_id is required", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrMissingClientTaxID):
		return pkg.NewDomainErrorSimple("MISSING_CPF", "CPF is required", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrInvalidCurrency):
		return pkg.NewDomainErrorSimple("INVALID_CURRENCY", "Unsupported currency", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrInvalidOrderAmount):
		return pkg.NewDomainErrorSimple("INVALID_ORDER_AMOUNT", "Order total must be greater than zero", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrOrderNotFound):
		return pkg.NewDomainErrorSimple("ORDER_NOT_FOUND", "Order not found", http.StatusNotFound)
	case errors.Is(err, usecase.ErrOrderAlreadyLinked):
		return pkg.NewDomainErrorSimple("ORDER_ALREADY_LINKED", "Order already has a checkout session", http.StatusConflict)
	case errors.Is(err, usecase.ErrOrderNotPending):
		return pkg.NewDomainErrorSimple("ORDER_NOT_PENDING", "Order is not pending payment", http.StatusConflict)
	case errors.Is(err, usecase.ErrProviderNotConfigured), errors.Is(err, config.ErrMissingVariable),
		errors.Is(err, config.ErrInvalidVariable), errors.Is(err, config.ErrInvalidBankAccount):
		return pkg.NewDomainError("PAYMENT_PROVIDER_NOT_CONFIGURED", "Payment provider is not configured", err, http.StatusInternalServerError)
	case errors.Is(err, usecase.ErrPaymentProvider):
		msg := "Payment provider request failed"
		var providerErr *payments.ProviderError
		if errors.As(err, &providerErr) && providerErr.Message != "" {
			msg = providerErr.Message
		}
		return pkg.NewDomainError("PAYMENT_PROVIDER_ERROR", msg, err, http.StatusBadGateway)
	default:
		return pkg.NewDomainError("INTERNAL_ERROR", "An internal error occurred", err, http.StatusInternalServerError)
	}
}
