package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/sp4c38/pizzatech-api/controllers"
)

func CartRoutes(server *gin.Engine, controller *controllers.CartController) {
	server.POST("/cart", controller.CreateCartItem)
	server.GET("/cart", controller.GetCart)
	server.DELETE("/cart/:itemId", controller.DeleteCartItem)
	server.DELETE("/cart", controller.ClearCart)
}
