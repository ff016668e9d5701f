package routes

import (
	"globalpartner_checkout/internal/adapter/http/handlers"

	"github.com/gin-gonic/gin"
)

const (
	PathCheckout = "/checkout"
)

func addCheckoutRoutes(rg *gin.RouterGroup, checkoutHandler *handlers.CheckoutHandler) {
	checkout := rg.Group(PathCheckout)
	{
		checkout.POST("/parcelow", checkoutHandler.CreateParcelowCheckout)
		checkout.POST("/parcelow/simulate", checkoutHandler.SimulateParcelow)
		checkout.POST("/wise", checkoutHandler.CreateWiseCheckout)
	}
}
