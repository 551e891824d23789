package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"ecommercepro-backend/internal/models"
)

// respondError maps err to 404, 400 or 500 and writes {"detail": message}.
func respondError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, models.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, models.ErrInvalidRequest):
		status = http.StatusBadRequest
	}
	_ = c.Error(err)
	c.AbortWithStatusJSON(status, gin.H{"detail": models.Message(err)})
}

func badRequest(c *gin.Context, err error) {
	_ = c.Error(err)
	c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
}
