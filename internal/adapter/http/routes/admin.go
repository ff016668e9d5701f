package routes

import (
	"globalpartner_checkout/internal/adapter/http/handlers"
	"globalpartner_checkout/internal/adapter/http/middleware"

	"github.com/gin-gonic/gin"
)

const (
	PathAdmin = "/admin"
)

func addAdminRoutes(rg *gin.RouterGroup, apiKey string, adminHandler *handlers.AdminHandler) {
	admin := rg.Group(PathAdmin, middleware.AdminAuth(apiKey))
	{
		admin.POST("/orders/:order_id/sync", adminHandler.SyncOrder)
	}
}
