package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"confera/internal/domain"

	"github.com/gin-gonic/gin"
)

// respondError maps the domain error taxonomy onto HTTP statuses:
// validation kinds to 400, forbidden to 403, missing entities to 404.
// Anything else is an internal fault and is never leaked to the
// client.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	case errors.Is(err, domain.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": domain.ErrForbidden.Error()})
	default:
		if de, ok := domain.AsError(err); ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": de.Message, "kind": string(de.Kind)})
			return
		}
		slog.Error("Request failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
