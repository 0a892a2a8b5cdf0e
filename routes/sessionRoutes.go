package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/sp4c38/pizzatech-api/controllers"
)

func SessionRoutes(server *gin.Engine, controller *controllers.SessionController) {
	session := server.Group("/session")
	{
		session.GET("", controller.GetSession)
		session.POST("/login", controller.Login)
		session.POST("/logout", controller.Logout)
	}
}
