package controllers

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sp4c38/pizzatech-api/services"
	"gorm.io/gorm"
)

type CartController struct {
	catalog *services.CatalogService
	cart    *services.CartService
}

func NewCartController(catalog *services.CatalogService, cart *services.CartService) *CartController {
	return &CartController{catalog: catalog, cart: cart}
}

// CreateCartItem adds a catalog item to the cart. The unit price is resolved
// from the current catalog and captured on the cart line.
func (c *CartController) CreateCartItem(ctx *gin.Context) {
	var input struct {
		ItemID    int `json:"itemId" binding:"required"`
		SizeIndex int `json:"sizeIndex"`
		Quantity  int `json:"quantity"`
	}
	if err := ctx.ShouldBindJSON(&input); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidInput)
		return
	}
	if input.Quantity <= 0 {
		input.Quantity = 1
	}

	resolved, found, err := c.catalog.Resolve(input.ItemID, input.SizeIndex)
	if err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, err.Error())
		return
	}
	if !found {
		sendErrorResponse(ctx, http.StatusNotFound, msgItemNotInCatalog)
		return
	}

	item, err := c.cart.AddItem(input.ItemID, input.SizeIndex, resolved.Price, input.Quantity)
	if err != nil {
		log.Println("Create error:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, "Failed to create cart item")
		return
	}

	sendJSONResponse(ctx, http.StatusCreated, gin.H{
		"message": resolved.Name + " added to cart",
		"item":    item,
	})
}

// GetCart lists the cart lines together with their resolved catalog entries.
// A line whose item vanished from the catalog keeps its stored price and is
// returned with a null item.
func (c *CartController) GetCart(ctx *gin.Context) {
	items, err := c.cart.ListItems()
	if err != nil {
		log.Println("Database error:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, "Failed to fetch cart")
		return
	}

	var total float64
	lines := make([]gin.H, 0, len(items))
	for _, item := range items {
		resolved, _, err := c.catalog.Resolve(item.ItemID, item.SizeIndex)
		if err != nil {
			resolved = nil
		}
		total += item.UnitPrice * float64(item.Quantity)
		lines = append(lines, gin.H{"line": item, "item": resolved})
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{"items": lines, "total": total})
}

func (c *CartController) DeleteCartItem(ctx *gin.Context) {
	id, err := strconv.Atoi(ctx.Param("itemId"))
	if err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, "Failed to parse cart item id.")
		return
	}

	item, err := c.cart.GetItem(uint(id))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			sendErrorResponse(ctx, http.StatusNotFound, msgCartItemNotFound)
			return
		}
		log.Println("Database error:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, "Failed to fetch cart item")
		return
	}

	if err := c.cart.RemoveItem(item); err != nil {
		log.Println("Delete error:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, "Failed to delete cart item")
		return
	}
	sendJSONResponse(ctx, http.StatusOK, gin.H{"message": "Cart item removed."})
}

func (c *CartController) ClearCart(ctx *gin.Context) {
	items, err := c.cart.ListItems()
	if err != nil {
		log.Println("Database error:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, "Failed to fetch cart")
		return
	}

	if err := c.cart.ClearAll(items); err != nil {
		log.Println("Clear error:", err)
		if errors.Is(err, services.ErrCorruptedState) {
			sendErrorResponse(ctx, http.StatusInternalServerError, msgLocalStateCorrupted)
			return
		}
		sendErrorResponse(ctx, http.StatusInternalServerError, "Failed to clear cart")
		return
	}
	sendJSONResponse(ctx, http.StatusOK, gin.H{"message": "Cart cleared."})
}
