package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"store-manager/internal/database"
	"store-manager/internal/models"

	"github.com/gin-gonic/gin"
)

type SaleRequest struct {
	ProductID     uint   `json:"product_id" binding:"required"`
	Quantity      int    `json:"quantity" binding:"required,gt=0"`
	PaymentMethod string `json:"payment_method" binding:"required"`
}

// --- POST: Record one sale ---
func CreateSale(c *gin.Context) {
	var req SaleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	if !models.ValidPaymentMethod(req.PaymentMethod) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Payment method must be cash, card or mobile"})
		return
	}

	userID := c.MustGet("userID").(uint)

	sale, err := database.CreateSale(req.ProductID, userID, req.Quantity, req.PaymentMethod)
	if err != nil {
		respondError(c, err)
		return
	}

	// Best-effort audit entry; a logging failure never undoes the sale
	database.LogActivity(userID, models.ActionSaleCreate,
		fmt.Sprintf("Sold %d of product #%d for %.2f", sale.Quantity, sale.ProductID, sale.Total),
		c.ClientIP())

	c.JSON(http.StatusCreated, sale)
}

type BatchSaleItem struct {
	ProductID uint `json:"product_id" binding:"required"`
	Quantity  int  `json:"quantity" binding:"required,gt=0"`
}

type BatchSaleRequest struct {
	Items         []BatchSaleItem `json:"items" binding:"required,min=1,dive"`
	PaymentMethod string          `json:"payment_method" binding:"required"`
}

type BatchSaleResult struct {
	ProductID uint   `json:"product_id"`
	Status    string `json:"status"`
	SaleID    uint   `json:"sale_id,omitempty"`
	Error     string `json:"error,omitempty"`
}

// --- POST: Record a whole basket ---
// Each line is its own transaction on purpose: one out-of-stock item must
// not fail the rest of the checkout. Partial success comes back as 207 with
// a per-item result list.
func CreateSaleBatch(c *gin.Context) {
	var req BatchSaleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	if !models.ValidPaymentMethod(req.PaymentMethod) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Payment method must be cash, card or mobile"})
		return
	}

	userID := c.MustGet("userID").(uint)

	results := make([]BatchSaleResult, 0, len(req.Items))
	hasError := false

	for _, item := range req.Items {
		sale, err := database.CreateSale(item.ProductID, userID, item.Quantity, req.PaymentMethod)
		if err != nil {
			hasError = true
			result := BatchSaleResult{ProductID: item.ProductID, Status: "error"}
			switch {
			case errors.Is(err, database.ErrNotFound):
				result.Error = "Product not found"
			case errors.Is(err, database.ErrInsufficientStock):
				result.Error = "Insufficient stock"
			default:
				result.Error = "Processing failed"
			}
			results = append(results, result)
			continue
		}

		database.LogActivity(userID, models.ActionSaleCreate,
			fmt.Sprintf("Sold %d of product #%d for %.2f", sale.Quantity, sale.ProductID, sale.Total),
			c.ClientIP())

		results = append(results, BatchSaleResult{ProductID: item.ProductID, Status: "success", SaleID: sale.ID})
	}

	status := http.StatusCreated
	if hasError {
		status = http.StatusMultiStatus
	}
	c.JSON(status, gin.H{"results": results})
}

// --- GET: All sales ---
func GetSales(c *gin.Context) {
	sales, err := database.GetAllSales()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch sales"})
		return
	}
	c.JSON(http.StatusOK, sales)
}

// --- GET: Sales within a date range ---
func GetSalesByDateRange(c *gin.Context) {
	start, end, ok := parseDateRange(c)
	if !ok {
		return
	}

	sales, err := database.GetSalesByDateRange(start, end)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch sales"})
		return
	}
	c.JSON(http.StatusOK, sales)
}

// --- GET: One product's sale history ---
func GetSalesByProduct(c *gin.Context) {
	productID, err := strconv.Atoi(c.Param("productId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid Product ID"})
		return
	}

	sales, err := database.GetSalesByProduct(uint(productID))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch sales"})
		return
	}
	c.JSON(http.StatusOK, sales)
}

// --- GET: One day's totals ---
func GetDailySalesSummary(c *gin.Context) {
	day, err := time.ParseInLocation("2006-01-02", c.Param("date"), time.Local)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Date must be YYYY-MM-DD"})
		return
	}

	summary, err := database.GetDailySalesSummary(day)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute summary"})
		return
	}
	c.JSON(http.StatusOK, summary)
}

// parseDateRange reads startDate/endDate query params (YYYY-MM-DD) and
// returns [start, end+1day) so the end date is inclusive.
func parseDateRange(c *gin.Context) (time.Time, time.Time, bool) {
	startStr := c.Query("startDate")
	endStr := c.Query("endDate")
	if startStr == "" || endStr == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "startDate and endDate are required"})
		return time.Time{}, time.Time{}, false
	}

	start, err1 := time.ParseInLocation("2006-01-02", startStr, time.Local)
	end, err2 := time.ParseInLocation("2006-01-02", endStr, time.Local)
	if err1 != nil || err2 != nil || end.Before(start) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Dates must be YYYY-MM-DD with endDate >= startDate"})
		return time.Time{}, time.Time{}, false
	}

	return start, end.Add(24 * time.Hour), true
}
