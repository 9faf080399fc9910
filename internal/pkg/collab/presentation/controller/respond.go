package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	collab "go-drafty/internal/pkg/collab/application/domain"
	"go-drafty/internal/pkg/collab/application/usecase"
)

// respondError maps the domain error taxonomy onto HTTP statuses. Persistence
// details never leak to clients.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, usecase.ErrPersistence):
		c.JSON(http.StatusInternalServerError, gin.H{"error": "unexpected persistence error"})
	case errors.Is(err, collab.ErrAuthenticationRequired):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
	case errors.Is(err, collab.ErrAccessDenied):
		c.JSON(http.StatusForbidden, gin.H{"error": "access to document denied"})
	case errors.Is(err, collab.ErrNotParticipant):
		c.JSON(http.StatusForbidden, gin.H{"error": "user is not a participant in the session"})
	case errors.Is(err, collab.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "record not found"})
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	}
}
