package handlers

import (
	"errors"
	response "globalpartner_checkout/internal/adapter/http/dto/response"
	"globalpartner_checkout/internal/usecase"
	"globalpartner_checkout/pkg"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
)

// AdminHandler exposes operator actions. It is mounted behind the admin key.
type AdminHandler struct {
	reconciler usecase.IWebhookReconcilerUseCase
}

func NewAdminHandler(reconciler usecase.IWebhookReconcilerUseCase) *AdminHandler {
	return &AdminHandler{reconciler: reconciler}
}

// SyncOrder godoc
// @Summary      Re-read an order's payment status from its provider
// @Description  Runs the provider's current state through the same reconciliation as a webhook. Use it when a notification was lost.
// @Tags         admin
// @Produce      json
// @Security     Bearer
// @Param        order_id  path      string  true  "Order ID"
// @Success      200       {object}  response.SyncResponse
// @Failure      400       {object}  pkg.HTTPError
// @Failure      404       {object}  pkg.HTTPError
// @Failure      409       {object}  pkg.HTTPError
// @Failure      502       {object}  pkg.HTTPError
// @Router       /admin/orders/{order_id}/sync [post]
func (h *AdminHandler) SyncOrder(c *gin.Context) {
	orderID := c.Param("order_id")
	log.Printf("[admin][handler] sync start order_id=%s", orderID)

	result, err := h.reconciler.Sync(c.Request.Context(), orderID)
	if err != nil {
		log.Printf("[admin][handler] sync failed order_id=%s err=%v", orderID, err)
		appErr := mapSyncError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	log.Printf("[admin][handler] sync success order_id=%s outcome=%s status=%s", orderID, result.Outcome, result.PaymentStatus)

	c.JSON(http.StatusOK, response.FromReconcileResult(result))
}

func mapSyncError(err error) *pkg.AppError {
	if errors.Is(err, usecase.ErrOrderNotLinked) {
		return pkg.NewDomainErrorSimple("ORDER_NOT_LINKED", "Order has no checkout session", http.StatusConflict)
	}
	return mapCheckoutError(err)
}
