package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/sp4c38/pizzatech-api/controllers"
)

func CatalogRoutes(server *gin.Engine, controller *controllers.CatalogController) {
	server.GET("/catalog", controller.GetCatalog)
	server.POST("/catalog/refresh", controller.RefreshCatalog)
}
