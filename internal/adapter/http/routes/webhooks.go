package routes

import (
	"globalpartner_checkout/internal/adapter/http/handlers"

	"github.com/gin-gonic/gin"
)

const (
	PathWebhooks = "/webhooks"
)

func addWebhookRoutes(rg *gin.RouterGroup, webhookHandler *handlers.WebhookHandler) {
	webhooks := rg.Group(PathWebhooks)
	{
		// Providers probe the URL with GET when the webhook is registered.
		webhooks.GET("/parcelow", webhookHandler.Liveness)
		webhooks.POST("/parcelow", webhookHandler.ParcelowWebhook)
		webhooks.GET("/wise", webhookHandler.Liveness)
		webhooks.POST("/wise", webhookHandler.WiseWebhook)
	}
}
