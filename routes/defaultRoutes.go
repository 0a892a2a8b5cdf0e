package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/sp4c38/pizzatech-api/controllers"
)

func DefaultRoutes(server *gin.Engine) {
	server.GET("/", controllers.GetHome)
}
