package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"store-manager/internal/database"
	"store-manager/internal/models"

	"github.com/gin-gonic/gin"
)

type OrderItemRequest struct {
	ProductID uint    `json:"product_id" binding:"required"`
	Quantity  int     `json:"quantity" binding:"required,gt=0"`
	Price     float64 `json:"price" binding:"gte=0"`
}

type OrderRequest struct {
	Items []OrderItemRequest `json:"items" binding:"required,min=1,dive"`
}

// --- POST: Create a restock order ---
func CreateOrder(c *gin.Context) {
	var req OrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid order data"})
		return
	}

	userID := c.MustGet("userID").(uint)

	items := make([]database.OrderItemInput, 0, len(req.Items))
	for _, item := range req.Items {
		items = append(items, database.OrderItemInput{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			Price:     item.Price,
		})
	}

	order, err := database.CreateOrder(userID, items)
	if err != nil {
		respondError(c, err)
		return
	}

	database.LogActivity(userID, models.ActionOrderCreate,
		fmt.Sprintf("Created restock order #%d (%d items, total %.2f)", order.ID, len(order.Items), order.Total),
		c.ClientIP())

	c.JSON(http.StatusCreated, order)
}

// --- GET: All orders, optionally filtered by status ---
func GetOrders(c *gin.Context) {
	if statusStr := c.Query("status"); statusStr != "" {
		status, ok := models.ParseOrderStatus(statusStr)
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid status"})
			return
		}
		orders, err := database.GetOrdersByStatus(status)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch orders"})
			return
		}
		c.JSON(http.StatusOK, orders)
		return
	}

	orders, err := database.GetAllOrders()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch orders"})
		return
	}
	c.JSON(http.StatusOK, orders)
}

// --- GET: One order with its items ---
func GetOrder(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid Order ID"})
		return
	}

	order, err := database.GetOrderDetail(uint(id))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, order)
}

type OrderStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// --- PUT: Move an order through its lifecycle ---
// Only the creator or an admin may touch an order. Entering "shipped" is the
// one transition with a stock side effect; everything else just writes the
// status field.
func UpdateOrderStatus(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid Order ID"})
		return
	}

	var req OrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Status is required"})
		return
	}

	status, ok := models.ParseOrderStatus(req.Status)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid status"})
		return
	}

	order, err := database.GetOrder(uint(id))
	if err != nil {
		respondError(c, err)
		return
	}
	if !canMutateOrder(c, order) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Not authorized to modify this order"})
		return
	}

	updated, err := database.UpdateOrderStatus(order.ID, status)
	if err != nil {
		respondError(c, err)
		return
	}

	userID := c.MustGet("userID").(uint)
	database.LogActivity(userID, models.ActionOrderStatus,
		fmt.Sprintf("Order #%d moved to %s", updated.ID, updated.Status),
		c.ClientIP())

	c.JSON(http.StatusOK, updated)
}

// --- DELETE: Remove a pending order ---
func DeleteOrder(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid Order ID"})
		return
	}

	order, err := database.GetOrder(uint(id))
	if err != nil {
		respondError(c, err)
		return
	}
	if !canMutateOrder(c, order) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Not authorized to delete this order"})
		return
	}

	if err := database.DeleteOrder(order.ID); err != nil {
		respondError(c, err)
		return
	}

	userID := c.MustGet("userID").(uint)
	database.LogActivity(userID, models.ActionOrderDelete,
		fmt.Sprintf("Deleted pending order #%d", order.ID),
		c.ClientIP())

	c.JSON(http.StatusOK, gin.H{"message": "Order deleted successfully"})
}

// canMutateOrder allows admins and the order's creator.
func canMutateOrder(c *gin.Context, order *models.Order) bool {
	role := c.MustGet("role").(string)
	userID := c.MustGet("userID").(uint)
	return role == models.RoleAdmin || order.UserID == userID
}
