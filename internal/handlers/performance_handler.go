package handlers

import (
	"net/http"
	"strconv"
	"time"

	"store-manager/internal/database"

	"github.com/gin-gonic/gin"
)

// performanceRange reads the optional startDate/endDate query params and
// falls back to all time.
func performanceRange(c *gin.Context) (time.Time, time.Time, bool) {
	if c.Query("startDate") == "" && c.Query("endDate") == "" {
		return time.Time{}, time.Now().Add(24 * time.Hour), true
	}
	return parseDateRange(c)
}

// --- GET: /api/performance ---
func GetAllUsersPerformance(c *gin.Context) {
	start, end, ok := performanceRange(c)
	if !ok {
		return
	}

	perf, err := database.GetAllUsersPerformance(start, end)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute performance"})
		return
	}
	c.JSON(http.StatusOK, perf)
}

// --- GET: /api/performance/team ---
func GetTeamPerformance(c *gin.Context) {
	start, end, ok := performanceRange(c)
	if !ok {
		return
	}

	perf, err := database.GetTeamPerformance(start, end)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute performance"})
		return
	}
	c.JSON(http.StatusOK, perf)
}

// --- GET: /api/performance/user/:id ---
func GetUserPerformance(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid User ID"})
		return
	}

	start, end, ok := performanceRange(c)
	if !ok {
		return
	}

	perf, err := database.GetUserPerformance(uint(id), start, end)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, perf)
}
