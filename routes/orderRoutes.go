package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/sp4c38/pizzatech-api/controllers"
	"github.com/sp4c38/pizzatech-api/middlewares"
)

func OrderRoutes(server *gin.Engine, controller *controllers.OrderController) {
	server.POST("/checkout", controller.Checkout)
	server.GET("/orders", controller.GetOrders)
	server.GET("/orders/:orderId", controller.GetOrder)
	server.GET("/delivery/orders", middlewares.RequireOperator(), controller.GetOpenOrders)
	server.GET("/orders/:orderId/progress", controller.GetOrderProgress)
	server.PATCH("/orders/:orderId/progress", middlewares.RequireOperator(), controller.UpdateOrderProgress)
	server.DELETE("/orders/:orderId", middlewares.RequireOperator(), controller.DeleteOrder)
}
