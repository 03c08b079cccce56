package database

import (
	"errors"
	"time"

	"store-manager/internal/models"

	"gorm.io/gorm"
)

// OrderItemInput is one product line of a restock order being created.
type OrderItemInput struct {
	ProductID uint
	Quantity  int
	Price     float64
}

// OrderRecord is an order row joined with its creator's username.
type OrderRecord struct {
	ID        uint               `json:"id"`
	UserID    uint               `json:"user_id"`
	UserName  string             `json:"user_name"`
	Status    models.OrderStatus `json:"status"`
	Total     float64            `json:"total"`
	CreatedAt time.Time          `json:"created_at"`
	UpdatedAt time.Time          `json:"updated_at"`
}

// OrderItemDetail is an order item joined with product name and barcode.
type OrderItemDetail struct {
	ID           uint    `json:"id"`
	OrderID      uint    `json:"order_id"`
	ProductID    uint    `json:"product_id"`
	ProductName  string  `json:"product_name"`
	Barcode      string  `json:"barcode"`
	Quantity     int     `json:"quantity"`
	PriceAtOrder float64 `json:"price_at_order"`
}

// OrderDetail is one order with its items, as returned to the dashboard.
type OrderDetail struct {
	OrderRecord
	Items []OrderItemDetail `json:"items"`
}

// CreateOrder creates a pending restock order plus its items, atomically.
// Every product must exist before anything is written.
func CreateOrder(userID uint, items []OrderItemInput) (*models.Order, error) {
	// Resolve every product first so a bad ID fails the whole call cleanly.
	var total float64
	for _, item := range items {
		var count int64
		if err := DB.Model(&models.Product{}).Where("id = ?", item.ProductID).Count(&count).Error; err != nil {
			return nil, err
		}
		if count == 0 {
			return nil, ErrNotFound
		}
		total += float64(item.Quantity) * item.Price
	}

	tx := DB.Begin()
	if tx.Error != nil {
		return nil, tx.Error
	}

	order := models.Order{
		UserID: userID,
		Status: models.StatusPending,
		Total:  total,
	}
	if err := tx.Create(&order).Error; err != nil {
		tx.Rollback()
		return nil, err
	}

	for _, item := range items {
		orderItem := models.OrderItem{
			OrderID:      order.ID,
			ProductID:    item.ProductID,
			Quantity:     item.Quantity,
			PriceAtOrder: item.Price,
		}
		if err := tx.Create(&orderItem).Error; err != nil {
			tx.Rollback()
			return nil, err
		}
		order.Items = append(order.Items, orderItem)
	}

	if err := tx.Commit().Error; err != nil {
		return nil, err
	}
	return &order, nil
}

// GetOrder loads the bare order row (used for existence and ownership checks).
func GetOrder(orderID uint) (*models.Order, error) {
	var order models.Order
	if err := DB.First(&order, orderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &order, nil
}

// GetOrderDetail loads one order with creator name and item details.
func GetOrderDetail(orderID uint) (*OrderDetail, error) {
	var detail OrderDetail
	err := DB.Table("orders").
		Select("orders.*, users.username as user_name").
		Joins("LEFT JOIN users ON orders.user_id = users.id").
		Where("orders.id = ?", orderID).
		Scan(&detail.OrderRecord).Error
	if err != nil {
		return nil, err
	}
	if detail.ID == 0 {
		return nil, ErrNotFound
	}

	err = DB.Table("order_items").
		Select("order_items.*, products.name as product_name, products.barcode").
		Joins("JOIN products ON order_items.product_id = products.id").
		Where("order_items.order_id = ?", orderID).
		Scan(&detail.Items).Error
	if err != nil {
		return nil, err
	}
	return &detail, nil
}

// GetAllOrders returns every order, newest first.
func GetAllOrders() ([]OrderRecord, error) {
	var orders []OrderRecord
	err := DB.Table("orders").
		Select("orders.*, users.username as user_name").
		Joins("LEFT JOIN users ON orders.user_id = users.id").
		Order("orders.created_at desc").
		Scan(&orders).Error
	return orders, err
}

// GetOrdersByStatus returns orders in one lifecycle state, newest first.
func GetOrdersByStatus(status models.OrderStatus) ([]OrderRecord, error) {
	var orders []OrderRecord
	err := DB.Table("orders").
		Select("orders.*, users.username as user_name").
		Joins("LEFT JOIN users ON orders.user_id = users.id").
		Where("orders.status = ?", status).
		Order("orders.created_at desc").
		Scan(&orders).Error
	return orders, err
}

// UpdateOrderStatus moves an order through its state machine. Only the
// transition into "shipped" touches stock: each item's quantity is added to
// its product exactly once, in the same transaction as the status write.
// Terminal states reject every transition, so goods can never be received
// twice for the same order.
func UpdateOrderStatus(orderID uint, newStatus models.OrderStatus) (*models.Order, error) {
	tx := DB.Begin()
	if tx.Error != nil {
		return nil, tx.Error
	}

	var order models.Order
	if err := tx.First(&order, orderID).Error; err != nil {
		tx.Rollback()
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if !order.Status.CanTransition(newStatus) {
		tx.Rollback()
		return nil, ErrInvalidState
	}

	// Goods received: put every item's quantity back on the shelf.
	if newStatus == models.StatusShipped {
		var items []models.OrderItem
		if err := tx.Where("order_id = ?", orderID).Find(&items).Error; err != nil {
			tx.Rollback()
			return nil, err
		}
		for _, item := range items {
			err := tx.Model(&models.Product{}).
				Where("id = ?", item.ProductID).
				UpdateColumn("quantity", gorm.Expr("quantity + ?", item.Quantity)).Error
			if err != nil {
				tx.Rollback()
				return nil, err
			}
		}
	}

	order.Status = newStatus
	if err := tx.Save(&order).Error; err != nil {
		tx.Rollback()
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		return nil, err
	}
	return &order, nil
}

// DeleteOrder removes a pending order and its items. Orders that moved past
// "pending" can no longer be deleted, and stock is never touched here.
func DeleteOrder(orderID uint) error {
	tx := DB.Begin()
	if tx.Error != nil {
		return tx.Error
	}

	var order models.Order
	if err := tx.First(&order, orderID).Error; err != nil {
		tx.Rollback()
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}

	if order.Status != models.StatusPending {
		tx.Rollback()
		return ErrInvalidState
	}

	if err := tx.Where("order_id = ?", orderID).Delete(&models.OrderItem{}).Error; err != nil {
		tx.Rollback()
		return err
	}
	if err := tx.Delete(&order).Error; err != nil {
		tx.Rollback()
		return err
	}

	return tx.Commit().Error
}
