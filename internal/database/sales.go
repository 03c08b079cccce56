package database

import (
	"errors"
	"time"

	"store-manager/internal/models"

	"gorm.io/gorm"
)

// SaleRecord is a sale row joined with its product name for listings.
type SaleRecord struct {
	ID            uint      `json:"id"`
	ProductID     uint      `json:"product_id"`
	ProductName   string    `json:"product_name"`
	UserID        uint      `json:"user_id"`
	Quantity      int       `json:"quantity"`
	Total         float64   `json:"total"`
	PaymentMethod string    `json:"payment_method"`
	Timestamp     time.Time `json:"timestamp"`
}

// CreateSale records one sale and deducts stock as a single atomic unit.
// The decrement carries its own stock guard in the WHERE clause, so two
// concurrent sales of the same product serialize on the row and quantity can
// never go negative. Rolls back on any failure so the ledger and the stock
// are never out of sync.
func CreateSale(productID, userID uint, quantity int, paymentMethod string) (*models.Sale, error) {
	tx := DB.Begin()
	if tx.Error != nil {
		return nil, tx.Error
	}

	// 1. Read the product (price at the moment of sale, existence check)
	var product models.Product
	if err := tx.First(&product, productID).Error; err != nil {
		tx.Rollback()
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	// 2. Guarded stock decrement
	res := tx.Model(&models.Product{}).
		Where("id = ? AND quantity >= ?", productID, quantity).
		UpdateColumn("quantity", gorm.Expr("quantity - ?", quantity))
	if res.Error != nil {
		tx.Rollback()
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		tx.Rollback()
		return nil, ErrInsufficientStock
	}

	// 3. Write the ledger row
	sale := models.Sale{
		ProductID:     product.ID,
		UserID:        userID,
		Quantity:      quantity,
		Total:         float64(quantity) * product.SellPrice,
		PaymentMethod: paymentMethod,
		Timestamp:     time.Now(),
	}
	if err := tx.Create(&sale).Error; err != nil {
		tx.Rollback()
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		return nil, err
	}
	return &sale, nil
}

// GetAllSales returns every sale, newest first.
func GetAllSales() ([]SaleRecord, error) {
	var sales []SaleRecord
	err := DB.Table("sales").
		Select("sales.*, products.name as product_name").
		Joins("JOIN products ON sales.product_id = products.id").
		Order("sales.timestamp desc").
		Scan(&sales).Error
	return sales, err
}

// GetSalesByDateRange returns sales whose timestamp falls in [start, end).
func GetSalesByDateRange(start, end time.Time) ([]SaleRecord, error) {
	var sales []SaleRecord
	err := DB.Table("sales").
		Select("sales.*, products.name as product_name").
		Joins("JOIN products ON sales.product_id = products.id").
		Where("sales.timestamp >= ? AND sales.timestamp < ?", start, end).
		Order("sales.timestamp desc").
		Scan(&sales).Error
	return sales, err
}

// GetSalesByProduct returns the sale history of one product, newest first.
func GetSalesByProduct(productID uint) ([]SaleRecord, error) {
	var sales []SaleRecord
	err := DB.Table("sales").
		Select("sales.*, products.name as product_name").
		Joins("JOIN products ON sales.product_id = products.id").
		Where("sales.product_id = ?", productID).
		Order("sales.timestamp desc").
		Scan(&sales).Error
	return sales, err
}

// DailySummary aggregates one day of sales.
type DailySummary struct {
	Date             string  `json:"date"`
	TotalSales       float64 `json:"total_sales"`
	TransactionCount int64   `json:"transaction_count"`
}

// GetDailySalesSummary totals the sales of the day starting at dayStart.
func GetDailySalesSummary(dayStart time.Time) (*DailySummary, error) {
	dayEnd := dayStart.Add(24 * time.Hour)
	summary := DailySummary{Date: dayStart.Format("2006-01-02")}

	err := DB.Model(&models.Sale{}).
		Where("timestamp >= ? AND timestamp < ?", dayStart, dayEnd).
		Select("COALESCE(SUM(total), 0)").
		Scan(&summary.TotalSales).Error
	if err != nil {
		return nil, err
	}

	err = DB.Model(&models.Sale{}).
		Where("timestamp >= ? AND timestamp < ?", dayStart, dayEnd).
		Count(&summary.TransactionCount).Error
	if err != nil {
		return nil, err
	}

	return &summary, nil
}
