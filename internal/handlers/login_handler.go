package handlers

import (
	"errors"
	"net/http"

	"store-manager/internal/auth"
	"store-manager/internal/database"
	"store-manager/internal/models"

	"github.com/gin-gonic/gin"
)

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func Login(c *gin.Context) {
	var input LoginRequest
	// 1. Validate Input JSON
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Username and password are required"})
		return
	}

	// 2. Verify credentials (also stamps last_login and writes the audit trail)
	user, err := database.Authenticate(input.Username, input.Password, c.ClientIP())
	if err != nil {
		switch {
		case errors.Is(err, database.ErrInvalidCredentials):
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		case errors.Is(err, database.ErrAccountDisabled):
			c.JSON(http.StatusForbidden, gin.H{"error": "Account disabled. Please contact an administrator."})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error"})
		}
		return
	}

	// 3. Generate JWT Token
	token, err := auth.GenerateToken(user.ID, user.Role)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token": token,
		"user": gin.H{
			"id":       user.ID,
			"username": user.Username,
			"role":     user.Role,
		},
	})
}

// Register only exists behind the ALLOW_REGISTRATION feature flag, to
// bootstrap the first admin account on a fresh install.
func Register(c *gin.Context) {
	var input LoginRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Username and password are required"})
		return
	}

	user, err := database.CreateUser(database.UserInput{
		Username: input.Username,
		Password: input.Password,
		Role:     models.RoleAdmin,
	})
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "User likely already exists"})
		return
	}

	c.JSON(http.StatusCreated, user)
}
