package api

import (
	"context"
	"log/slog"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"ecommercepro-backend/internal/logging"
	"ecommercepro-backend/internal/shop"
)

// Services are the use cases the handlers call into.
type Services struct {
	Catalog *shop.Catalog
	Carts   *shop.Carts
	Admin   *shop.Admin
	Seeder  *shop.Seeder
}

type Options struct {
	CORSOrigins    []string
	RequestTimeout time.Duration
	// Auth protects /api/admin when non-nil.
	Auth *AdminAuth
}

type handler struct {
	log *slog.Logger
	svc Services
}

func NewRouter(log *slog.Logger, svc Services, opts Options) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), logging.Middleware(log), cors.New(corsConfig(opts.CORSOrigins)))
	if opts.RequestTimeout > 0 {
		r.Use(requestTimeout(opts.RequestTimeout))
	}

	h := &handler{log: log, svc: svc}
	api := r.Group("/api")

	api.GET("/health", h.health)

	// Catalog
	api.GET("/products", h.listProducts)
	api.GET("/products/:id", h.getProduct)
	api.GET("/categories", h.listCategories)

	// Cart
	api.GET("/cart/:sessionId", h.getCart)
	api.POST("/cart/:sessionId/add", h.addToCart)
	api.PUT("/cart/:sessionId/update", h.updateCart)
	api.DELETE("/cart/:sessionId/clear", h.clearCart)

	// Demo
	api.POST("/create-sample-order", h.createSampleOrder)

	// Admin
	admin := api.Group("/admin")
	if opts.Auth != nil {
		admin.POST("/login", opts.Auth.login)
		admin.Use(opts.Auth.Middleware)
	}
	admin.GET("/stats", h.stats)
	admin.POST("/products", h.createProduct)
	admin.PUT("/products/:id", h.updateProduct)
	admin.DELETE("/products/:id", h.deleteProduct)
	admin.GET("/orders", h.listOrders)
	admin.PUT("/orders/:id/status", h.setOrderStatus)

	return r
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Content-Type", "Accept", "Authorization"},
		MaxAge:       12 * time.Hour,
	}
	if len(origins) == 0 || (len(origins) == 1 && origins[0] == "*") {
		cfg.AllowAllOrigins = true
		return cfg
	}
	cfg.AllowOrigins = origins
	cfg.AllowCredentials = true
	return cfg
}

func requestTimeout(d time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), d)
		defer cancel()
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}
