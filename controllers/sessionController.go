package controllers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sp4c38/pizzatech-api/backend"
	"github.com/sp4c38/pizzatech-api/models"
	"github.com/sp4c38/pizzatech-api/services"
	"github.com/sp4c38/pizzatech-api/utils"
)

const (
	// Standard response messages
	msgInvalidInput          = "invalid input"
	msgInternalServerError   = "Internal server error"
	msgInvalidCredentials    = "invalid username or password"
	msgBackendUnreachable    = "backend not reachable, try again later"
	msgLocalStateCorrupted   = "local app state is corrupted"
	msgFailedToGenerateToken = "failed to generate token"
	msgCatalogNotLoaded      = "catalog not loaded yet"
	msgItemNotInCatalog      = "item not found in catalog"
	msgCartItemNotFound      = "cart item not found"
	msgOrderNotFound         = "order not found"
	msgNoAccessToken         = "no operator access token stored, log in again"
)

func sendJSONResponse(ctx *gin.Context, status int, data gin.H) {
	ctx.JSON(status, data)
}

func sendErrorResponse(ctx *gin.Context, status int, message string) {
	sendJSONResponse(ctx, status, gin.H{"message": message})
}

// backendFailed reports whether err came from talking to the remote backend,
// which the facade maps to 502 rather than 500.
func backendFailed(err error) bool {
	var apiErr *backend.APIError
	return errors.Is(err, backend.ErrBackendUnavailable) ||
		errors.Is(err, backend.ErrIncompatibleResponse) ||
		errors.As(err, &apiErr)
}

type SessionController struct {
	session *services.SessionService
}

func NewSessionController(session *services.SessionService) *SessionController {
	return &SessionController{session: session}
}

// GetSession tells the UI whether to show the login form or the main app.
func (c *SessionController) GetSession(ctx *gin.Context) {
	valid, err := c.session.CheckStoredAccountValid(ctx.Request.Context())
	if err != nil {
		log.Println("Session check failed:", err)
		if errors.Is(err, services.ErrCorruptedState) {
			sendErrorResponse(ctx, http.StatusInternalServerError, msgLocalStateCorrupted)
			return
		}
		if backendFailed(err) {
			sendErrorResponse(ctx, http.StatusBadGateway, msgBackendUnreachable)
			return
		}
		sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		return
	}

	username, _, _ := c.session.StoredUsername()
	sendJSONResponse(ctx, http.StatusOK, gin.H{"valid": valid, "username": username})
}

func (c *SessionController) Login(ctx *gin.Context) {
	var loginData models.LoginData
	if err := ctx.ShouldBindJSON(&loginData); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidInput)
		return
	}

	if err := c.session.Login(ctx.Request.Context(), loginData.Username, loginData.Password); err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			sendErrorResponse(ctx, http.StatusUnauthorized, msgInvalidCredentials)
			return
		}
		log.Println("Login failed:", err)
		if backendFailed(err) {
			sendErrorResponse(ctx, http.StatusBadGateway, msgBackendUnreachable)
			return
		}
		sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		return
	}

	tokenString, err := utils.GenerateSessionToken(loginData.Username)
	if err != nil {
		log.Println("JWT generation error:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, msgFailedToGenerateToken)
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{"token": tokenString})
}

func (c *SessionController) Logout(ctx *gin.Context) {
	if err := c.session.Logout(); err != nil {
		log.Println("Logout failed:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		return
	}
	sendJSONResponse(ctx, http.StatusOK, gin.H{"message": "Logged out."})
}
