package handlers

import (
	"errors"
	"net/http"

	"store-manager/internal/database"

	"github.com/gin-gonic/gin"
)

// respondError maps data-layer sentinel errors onto HTTP status codes.
// Anything unrecognized is an unexpected store failure and becomes a 500.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, database.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
	case errors.Is(err, database.ErrInsufficientStock):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Insufficient stock"})
	case errors.Is(err, database.ErrInvalidStatus):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid status"})
	case errors.Is(err, database.ErrInvalidState):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Operation not allowed in the current state"})
	case errors.Is(err, database.ErrDuplicate):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Already exists"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error"})
	}
}
