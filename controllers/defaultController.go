package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func GetHome(ctx *gin.Context) {
	message := `Welcome to the PizzaTech app API.

The following are the endpoints for this API:

SESSION
- GET "/session" - Check whether the stored account is still valid
- POST "/session/login" - Log in and store the account
- POST "/session/logout" - Remove the stored account

CATALOG
- GET "/catalog" - Get the current product catalog
- POST "/catalog/refresh" - Re-download the catalog from the backend

CART
- POST "/cart" - Add a catalog item to the cart
- GET "/cart" - Get all cart lines with resolved catalog entries
- DELETE "/cart/{itemId}" - Remove one cart line
- DELETE "/cart" - Clear the cart

ORDER
- POST "/checkout" - Validate delivery details and place the order
- GET "/orders" - Get all placed orders
- GET "/orders/{orderId}" - Get one placed order
- GET "/orders/{orderId}/progress" - Poll the fulfillment progress
- GET "/delivery/orders" - Download the open orders from the backend (operator)
- PATCH "/orders/{orderId}/progress" - Push a new progress (operator)
- DELETE "/orders/{orderId}" - Delete a completed order (operator)`

	ctx.JSON(http.StatusOK, gin.H{
		"message": message,
	})
}
