package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// cartItemRequest is the add/update body. Price is accepted for client
// compatibility but the product's current price is always used.
type cartItemRequest struct {
	ProductID string           `json:"product_id" binding:"required"`
	Quantity  *int             `json:"quantity" binding:"required"`
	Price     *decimal.Decimal `json:"price"`
}

func (h *handler) getCart(c *gin.Context) {
	cart, err := h.svc.Carts.GetOrCreate(c.Request.Context(), c.Param("sessionId"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, cart)
}

func (h *handler) addToCart(c *gin.Context) {
	var req cartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	cart, err := h.svc.Carts.AddItem(c.Request.Context(), c.Param("sessionId"), req.ProductID, *req.Quantity)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Item added to cart", "cart": cart})
}

func (h *handler) updateCart(c *gin.Context) {
	var req cartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	cart, err := h.svc.Carts.UpdateItem(c.Request.Context(), c.Param("sessionId"), req.ProductID, *req.Quantity)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Cart updated", "cart": cart})
}

func (h *handler) clearCart(c *gin.Context) {
	if err := h.svc.Carts.Clear(c.Request.Context(), c.Param("sessionId")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Cart cleared"})
}
