package routes

import (
	response "globalpartner_checkout/internal/adapter/http/dto/response"
	"net/http"

	"github.com/gin-gonic/gin"
)

func addPingRoutes(rg *gin.RouterGroup) {
	ping := rg.Group("/ping")

	ping.GET("", func(c *gin.Context) {
		c.JSON(http.StatusOK, response.StatusResponse{Status: "ok"})
	})
}
