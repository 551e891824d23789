package api

import (
	"fmt"
	"math"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"ecommercepro-backend/internal/models"
	"ecommercepro-backend/internal/shop"
)

// productRequest is the admin create/update body. Price and stock may arrive
// as JSON numbers or numeric strings (form input); anything else is a 400.
type productRequest struct {
	Name        string           `json:"name"`
	Description string           `json:"description"`
	Price       *decimal.Decimal `json:"price" binding:"required"`
	Category    string           `json:"category"`
	ImageURL    string           `json:"image_url"`
	Stock       *intValue        `json:"stock" binding:"required"`
	Featured    bool             `json:"featured"`
}

func (r productRequest) input() shop.ProductInput {
	return shop.ProductInput{
		Name:        r.Name,
		Description: r.Description,
		Price:       *r.Price,
		Category:    r.Category,
		ImageURL:    r.ImageURL,
		Stock:       int(*r.Stock),
		Featured:    r.Featured,
	}
}

type intValue int

var (
	maxIntValue = decimal.NewFromInt(math.MaxInt)
	minIntValue = decimal.NewFromInt(math.MinInt)
)

func (v *intValue) UnmarshalJSON(b []byte) error {
	raw := strings.Trim(string(b), `"`)
	d, err := decimal.NewFromString(raw)
	if err != nil || !d.IsInteger() {
		return fmt.Errorf("expected an integer, got %s", b)
	}
	if d.GreaterThan(maxIntValue) || d.LessThan(minIntValue) {
		return fmt.Errorf("integer %s out of range", raw)
	}
	*v = intValue(d.IntPart())
	return nil
}

func (h *handler) stats(c *gin.Context) {
	st, err := h.svc.Admin.Stats(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, st)
}

// ----- Products -----

func (h *handler) createProduct(c *gin.Context) {
	var req productRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	p, err := h.svc.Admin.CreateProduct(c.Request.Context(), req.input())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *handler) updateProduct(c *gin.Context) {
	var req productRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	p, err := h.svc.Admin.UpdateProduct(c.Request.Context(), c.Param("id"), req.input())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *handler) deleteProduct(c *gin.Context) {
	if err := h.svc.Admin.DeleteProduct(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Product deleted successfully"})
}

// ----- Orders -----

func (h *handler) listOrders(c *gin.Context) {
	orders, err := h.svc.Admin.ListOrders(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, orders)
}

func (h *handler) setOrderStatus(c *gin.Context) {
	var req struct {
		Status string `json:"status"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	err := h.svc.Admin.SetOrderStatus(c.Request.Context(), c.Param("id"), models.OrderStatus(req.Status))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Order status updated successfully"})
}

func (h *handler) createSampleOrder(c *gin.Context) {
	o, err := h.svc.Seeder.CreateSampleOrder(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	h.log.Info("sample order created", "order_id", o.ID)
	c.JSON(http.StatusOK, gin.H{"message": "Sample order created", "order": o})
}
