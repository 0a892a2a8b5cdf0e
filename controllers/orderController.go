package controllers

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sp4c38/pizzatech-api/backend"
	"github.com/sp4c38/pizzatech-api/models"
	"github.com/sp4c38/pizzatech-api/services"
	"gorm.io/gorm"
)

type OrderController struct {
	orders   *services.OrderService
	records  *services.OrderRecords
	progress *services.ProgressService
	session  *services.SessionService
	api      *backend.Client
}

func NewOrderController(
	orders *services.OrderService,
	records *services.OrderRecords,
	progress *services.ProgressService,
	session *services.SessionService,
	api *backend.Client,
) *OrderController {
	return &OrderController{
		orders:   orders,
		records:  records,
		progress: progress,
		session:  session,
		api:      api,
	}
}

var errNoAccessToken = errors.New("no access token stored")

// withAccessToken runs call with the stored backend access token. When the
// backend refuses it with a 401 the token has likely expired: the stored
// refresh token is traded for a new pair and the call retried once.
func (c *OrderController) withAccessToken(ctx context.Context, call func(accessToken string) error) error {
	accessToken, found, err := c.session.AccessToken()
	if err != nil {
		return err
	}
	if !found {
		return errNoAccessToken
	}

	err = call(accessToken)
	var apiErr *backend.APIError
	if !errors.As(err, &apiErr) || apiErr.Status != http.StatusUnauthorized {
		return err
	}

	accessToken, refreshErr := c.session.RefreshTokens(ctx)
	if refreshErr != nil {
		log.Println("Access token refresh failed:", refreshErr)
		return err
	}
	return call(accessToken)
}

// Checkout validates the entered delivery details and submits the cart as an
// order. Validation failures carry the reason for inline display; the form
// and cart stay untouched on any failure.
func (c *OrderController) Checkout(ctx *gin.Context) {
	var details models.OrderDetails
	if err := ctx.ShouldBindJSON(&details); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidInput)
		return
	}
	if details.PaymentMethod == 0 {
		details.PaymentMethod = models.PaymentCashOnDelivery
	}
	if details.PaymentMethod != models.PaymentCashOnDelivery && details.PaymentMethod != models.PaymentCard {
		sendErrorResponse(ctx, http.StatusBadRequest, "unknown payment method")
		return
	}

	order, err := c.orders.Submit(ctx.Request.Context(), details)
	if err != nil {
		var validationErr *services.ValidationError
		switch {
		case errors.As(err, &validationErr):
			sendErrorResponse(ctx, http.StatusBadRequest, validationErr.Reason)
		case errors.Is(err, services.ErrCartEmpty):
			sendErrorResponse(ctx, http.StatusBadRequest, "the shopping cart is empty")
		case errors.Is(err, services.ErrCorruptedState):
			log.Println("Checkout left corrupted state:", err)
			sendErrorResponse(ctx, http.StatusInternalServerError, msgLocalStateCorrupted)
		case backendFailed(err):
			log.Println("Order submission failed:", err)
			sendErrorResponse(ctx, http.StatusBadGateway, "Failed to place the order, please try again.")
		default:
			log.Println("Order submission failed:", err)
			sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		}
		return
	}

	sendJSONResponse(ctx, http.StatusCreated, gin.H{
		"message": "Order placed successfully.",
		"order":   order,
	})
}

func (c *OrderController) GetOrders(ctx *gin.Context) {
	orders, err := c.records.ListOrders()
	if err != nil {
		log.Println(err)
		sendErrorResponse(ctx, http.StatusInternalServerError, "Failed to fetch orders.")
		return
	}
	sendJSONResponse(ctx, http.StatusOK, gin.H{"orders": orders})
}

func (c *OrderController) GetOrder(ctx *gin.Context) {
	orderID, err := strconv.Atoi(ctx.Param("orderId"))
	if err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, "Failed to parse orderId")
		return
	}

	order, err := c.records.GetOrder(uint(orderID))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			sendErrorResponse(ctx, http.StatusNotFound, msgOrderNotFound)
			return
		}
		log.Println(err)
		sendErrorResponse(ctx, http.StatusInternalServerError, "Failed to fetch order.")
		return
	}
	sendJSONResponse(ctx, http.StatusOK, gin.H{"order": order})
}

// GetOrderProgress performs a single backend poll for the order.
func (c *OrderController) GetOrderProgress(ctx *gin.Context) {
	orderID, err := strconv.Atoi(ctx.Param("orderId"))
	if err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, "Failed to parse orderId")
		return
	}

	progress, err := c.progress.Poll(ctx.Request.Context(), uint(orderID))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			sendErrorResponse(ctx, http.StatusNotFound, msgOrderNotFound)
			return
		}
		log.Println("Progress poll failed:", err)
		if backendFailed(err) {
			sendErrorResponse(ctx, http.StatusBadGateway, msgBackendUnreachable)
			return
		}
		sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{"orderId": orderID, "progress": progress})
}

// UpdateOrderProgress pushes a new percentage to the backend. Operator only.
func (c *OrderController) UpdateOrderProgress(ctx *gin.Context) {
	orderID, err := strconv.Atoi(ctx.Param("orderId"))
	if err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, "Failed to parse orderId")
		return
	}

	var input struct {
		NewProgress *int `json:"newProgress" binding:"required"`
	}
	if err := ctx.ShouldBindJSON(&input); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidInput)
		return
	}

	err = c.withAccessToken(ctx.Request.Context(), func(accessToken string) error {
		return c.progress.Push(ctx.Request.Context(), uint(orderID), *input.NewProgress, accessToken)
	})
	if err != nil {
		switch {
		case errors.Is(err, errNoAccessToken):
			sendErrorResponse(ctx, http.StatusUnauthorized, msgNoAccessToken)
		case errors.Is(err, gorm.ErrRecordNotFound):
			sendErrorResponse(ctx, http.StatusNotFound, msgOrderNotFound)
		case errors.Is(err, services.ErrPushInFlight):
			sendErrorResponse(ctx, http.StatusConflict, "a progress update is already running for this order")
		case backendFailed(err):
			log.Println("Progress push failed:", err)
			sendErrorResponse(ctx, http.StatusBadGateway, msgBackendUnreachable)
		default:
			log.Println("Progress push failed:", err)
			sendErrorResponse(ctx, http.StatusBadRequest, err.Error())
		}
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{"message": "Order progress updated successfully."})
}

// GetOpenOrders downloads the backend's list of open orders. Operator only;
// this is what the delivery screen renders.
func (c *OrderController) GetOpenOrders(ctx *gin.Context) {
	var response *models.AllOrdersResponse
	err := c.withAccessToken(ctx.Request.Context(), func(accessToken string) error {
		var err error
		response, err = c.api.GetAllOrders(ctx.Request.Context(), accessToken)
		return err
	})
	if err != nil {
		switch {
		case errors.Is(err, errNoAccessToken):
			sendErrorResponse(ctx, http.StatusUnauthorized, msgNoAccessToken)
		case backendFailed(err):
			log.Println("Open order download failed:", err)
			sendErrorResponse(ctx, http.StatusBadGateway, msgBackendUnreachable)
		default:
			log.Println("Open order download failed:", err)
			sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		}
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{"orders": response.Orders, "time": response.Time})
}

// DeleteOrder removes a completed order on the backend and locally. Operator
// only; authenticates with the stored account credentials.
func (c *OrderController) DeleteOrder(ctx *gin.Context) {
	orderID, err := strconv.Atoi(ctx.Param("orderId"))
	if err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, "Failed to parse order id.")
		return
	}

	order, err := c.records.GetOrder(uint(orderID))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			sendErrorResponse(ctx, http.StatusNotFound, msgOrderNotFound)
			return
		}
		log.Println(err)
		sendErrorResponse(ctx, http.StatusInternalServerError, "Failed to fetch order.")
		return
	}

	username, password, err := c.session.StoredCredentials()
	if err != nil {
		log.Println(err)
		if errors.Is(err, services.ErrNoStoredAccount) {
			sendErrorResponse(ctx, http.StatusUnauthorized, "no stored account, log in first")
			return
		}
		if errors.Is(err, services.ErrCorruptedState) {
			sendErrorResponse(ctx, http.StatusInternalServerError, msgLocalStateCorrupted)
			return
		}
		sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		return
	}

	if err := c.api.DeleteOrder(ctx.Request.Context(), order.BackendOrderID, username, password); err != nil {
		log.Println("Backend order deletion failed:", err)
		sendErrorResponse(ctx, http.StatusBadGateway, msgBackendUnreachable)
		return
	}

	if err := c.records.DeleteOrder(order.ID); err != nil {
		log.Println(err)
		sendErrorResponse(ctx, http.StatusInternalServerError, "Failed to delete order.")
		return
	}
	sendJSONResponse(ctx, http.StatusOK, gin.H{"message": "Order deleted successfully."})
}
