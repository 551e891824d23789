package api

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"ecommercepro-backend/internal/models"
)

func (h *handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy", "service": "EcommercePro API"})
}

// ----- Products -----

func (h *handler) listProducts(c *gin.Context) {
	var f models.ProductFilter
	if category := c.Query("category"); category != "" {
		f.Category = &category
	}
	if raw, ok := c.GetQuery("featured"); ok {
		featured, err := strconv.ParseBool(raw)
		if err != nil {
			badRequest(c, fmt.Errorf("featured must be a boolean, got %q", raw))
			return
		}
		f.Featured = &featured
	}

	products, err := h.svc.Catalog.ListProducts(c.Request.Context(), f)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, products)
}

func (h *handler) getProduct(c *gin.Context) {
	p, err := h.svc.Catalog.GetProduct(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *handler) listCategories(c *gin.Context) {
	categories, err := h.svc.Catalog.ListCategories(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"categories": categories})
}
