package controllers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sp4c38/pizzatech-api/services"
)

type CatalogController struct {
	catalog *services.CatalogService
}

func NewCatalogController(catalog *services.CatalogService) *CatalogController {
	return &CatalogController{catalog: catalog}
}

func (c *CatalogController) GetCatalog(ctx *gin.Context) {
	catalog := c.catalog.Current()
	if catalog == nil {
		sendErrorResponse(ctx, http.StatusServiceUnavailable, msgCatalogNotLoaded)
		return
	}
	sendJSONResponse(ctx, http.StatusOK, gin.H{
		"catalog": catalog,
		"stale":   c.catalog.Stale(),
	})
}

func (c *CatalogController) RefreshCatalog(ctx *gin.Context) {
	if err := c.catalog.Refresh(ctx.Request.Context()); err != nil {
		log.Println("Catalog refresh failed:", err)
		if backendFailed(err) {
			sendErrorResponse(ctx, http.StatusBadGateway, msgBackendUnreachable)
			return
		}
		sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		return
	}

	message := "Catalog refreshed successfully."
	if c.catalog.Stale() {
		message = "Backend not reachable, serving the last stored catalog."
	}
	sendJSONResponse(ctx, http.StatusOK, gin.H{"message": message})
}
