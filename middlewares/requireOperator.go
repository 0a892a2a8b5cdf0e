package middlewares

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sp4c38/pizzatech-api/utils"
)

// RequireOperator guards the routes only the delivery and restaurant side
// apps may call: progress pushes and order deletion.
func RequireOperator() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		header := ctx.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Missing bearer token"})
			return
		}

		claims, err := utils.ParseSessionToken(strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Invalid session token"})
			return
		}

		role, ok := claims["role"].(string)
		if !ok || role != "operator" {
			ctx.AbortWithStatusJSON(http.StatusForbidden, gin.H{"message": "Operator access required"})
			return
		}

		ctx.Set("user", claims)
		ctx.Next()
	}
}
