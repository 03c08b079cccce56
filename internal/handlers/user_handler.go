package handlers

import (
	"fmt"
	"net/http"
	"regexp"
	"strconv"

	"store-manager/internal/database"
	"store-manager/internal/models"

	"github.com/gin-gonic/gin"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

type UserRequest struct {
	Username  string `json:"username" binding:"required"`
	Password  string `json:"password"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Role      string `json:"role" binding:"required"`
	Status    string `json:"status"`
}

func (r UserRequest) toInput() database.UserInput {
	return database.UserInput{
		Username:  r.Username,
		Password:  r.Password,
		FirstName: r.FirstName,
		LastName:  r.LastName,
		Email:     r.Email,
		Phone:     r.Phone,
		Role:      r.Role,
		Status:    r.Status,
	}
}

func validateUserRequest(c *gin.Context, req UserRequest) bool {
	if !models.ValidRole(req.Role) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Role must be admin or employee"})
		return false
	}
	if req.Status != "" && req.Status != models.UserStatusActive && req.Status != models.UserStatusInactive {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Status must be active or inactive"})
		return false
	}
	if req.Email != "" && !emailPattern.MatchString(req.Email) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid email format"})
		return false
	}
	return true
}

// --- GET: All users ---
func GetUsers(c *gin.Context) {
	users, err := database.GetAllUsers()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch users"})
		return
	}
	c.JSON(http.StatusOK, users)
}

// --- GET: One user ---
func GetUser(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid User ID"})
		return
	}

	user, err := database.GetUserByID(uint(id))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

// --- POST: Create a staff account ---
func CreateUser(c *gin.Context) {
	var req UserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Username and role are required"})
		return
	}
	if req.Password == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Password is required"})
		return
	}
	if !validateUserRequest(c, req) {
		return
	}

	user, err := database.CreateUser(req.toInput())
	if err != nil {
		respondError(c, err)
		return
	}

	adminID := c.MustGet("userID").(uint)
	database.LogActivity(adminID, models.ActionUserCreate,
		fmt.Sprintf("Created user %s (ID: %d)", user.Username, user.ID),
		c.ClientIP())

	c.JSON(http.StatusCreated, user)
}

// --- PUT: Update a staff account ---
func UpdateUser(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid User ID"})
		return
	}

	var req UserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Username and role are required"})
		return
	}
	if !validateUserRequest(c, req) {
		return
	}

	user, err := database.UpdateUser(uint(id), req.toInput())
	if err != nil {
		respondError(c, err)
		return
	}

	adminID := c.MustGet("userID").(uint)
	database.LogActivity(adminID, models.ActionUserUpdate,
		fmt.Sprintf("Updated user %s (ID: %d)", user.Username, user.ID),
		c.ClientIP())

	c.JSON(http.StatusOK, user)
}

// --- DELETE: Remove a staff account ---
func DeleteUser(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid User ID"})
		return
	}

	adminID := c.MustGet("userID").(uint)
	if uint(id) == adminID {
		c.JSON(http.StatusBadRequest, gin.H{"error": "You cannot delete your own account"})
		return
	}

	if err := database.DeleteUser(uint(id)); err != nil {
		respondError(c, err)
		return
	}

	database.LogActivity(adminID, models.ActionUserDelete,
		fmt.Sprintf("Deleted user ID: %d", id),
		c.ClientIP())

	c.JSON(http.StatusOK, gin.H{"message": "User deleted successfully"})
}

type UserStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// --- PUT: Activate or deactivate an account ---
func SetUserStatus(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid User ID"})
		return
	}

	var req UserStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Status is required"})
		return
	}

	adminID := c.MustGet("userID").(uint)
	user, err := database.SetUserStatus(uint(id), req.Status, adminID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

// --- GET: One user's audit trail ---
func GetUserActivity(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid User ID"})
		return
	}

	limit, offset := parsePaging(c)
	logs, err := database.GetUserActivityLogs(uint(id), limit, offset)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch activity logs"})
		return
	}
	c.JSON(http.StatusOK, logs)
}

// --- GET: The whole audit trail ---
func GetAllActivity(c *gin.Context) {
	limit, offset := parsePaging(c)
	logs, err := database.GetAllActivityLogs(limit, offset)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch activity logs"})
		return
	}
	c.JSON(http.StatusOK, logs)
}

func parsePaging(c *gin.Context) (limit, offset int) {
	limit = 100
	offset = 0
	if l, err := strconv.Atoi(c.Query("limit")); err == nil && l > 0 {
		limit = l
	}
	if o, err := strconv.Atoi(c.Query("offset")); err == nil && o >= 0 {
		offset = o
	}
	return limit, offset
}
