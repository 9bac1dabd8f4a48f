package handlers

import (
	"errors"
	"net/http"

	"realty-marketplace/internal/apperr"

	"github.com/gin-gonic/gin"
)

// respondError maps the error taxonomy to HTTP responses. Not-found
// and invisible rows share one response body, so existence cannot be
// probed through status codes.
func respondError(c *gin.Context, err error) {
	if ve, ok := apperr.AsValidation(err); ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "validation failed", "reasons": ve.Reasons})
		return
	}

	switch {
	case errors.Is(err, apperr.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	case errors.Is(err, apperr.ErrPermissionDenied):
		c.JSON(http.StatusForbidden, gin.H{"error": "permission denied"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
