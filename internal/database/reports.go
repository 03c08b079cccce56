package database

import (
	"time"

	"store-manager/internal/models"
)

// CategorySales is one category's share of a day's revenue.
type CategorySales struct {
	Category         string  `json:"category"`
	TotalSales       float64 `json:"total_sales"`
	TransactionCount int64   `json:"transaction_count"`
}

// GetDailyReport breaks one day of sales down by product category.
func GetDailyReport(dayStart time.Time) ([]CategorySales, error) {
	dayEnd := dayStart.Add(24 * time.Hour)
	var rows []CategorySales
	err := DB.Table("sales").
		Select("products.category, COALESCE(SUM(sales.total), 0) as total_sales, COUNT(*) as transaction_count").
		Joins("JOIN products ON sales.product_id = products.id").
		Where("sales.timestamp >= ? AND sales.timestamp < ?", dayStart, dayEnd).
		Group("products.category").
		Order("total_sales desc").
		Scan(&rows).Error
	return rows, err
}

// DaySales is one day's line in a weekly or monthly report.
type DaySales struct {
	Date             string  `json:"date"`
	TotalSales       float64 `json:"total_sales"`
	TransactionCount int64   `json:"transaction_count"`
}

// GetRangeReport totals sales per day over [start, end). Days are walked in
// Go and bounded with BETWEEN-style predicates so the SQL needs no dialect
// specific date functions.
func GetRangeReport(start, end time.Time) ([]DaySales, error) {
	var rows []DaySales
	for day := start; day.Before(end); day = day.Add(24 * time.Hour) {
		summary, err := GetDailySalesSummary(day)
		if err != nil {
			return nil, err
		}
		rows = append(rows, DaySales{
			Date:             summary.Date,
			TotalSales:       summary.TotalSales,
			TransactionCount: summary.TransactionCount,
		})
	}
	return rows, nil
}

// GetMonthlyReport totals sales per day of one calendar month.
func GetMonthlyReport(year, month int) ([]DaySales, error) {
	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.Local)
	end := start.AddDate(0, 1, 0)
	return GetRangeReport(start, end)
}

// TopProduct is one line of the best-sellers report.
type TopProduct struct {
	ID            uint    `json:"id"`
	Name          string  `json:"name"`
	Category      string  `json:"category"`
	TotalQuantity int64   `json:"total_quantity"`
	TotalSales    float64 `json:"total_sales"`
}

// GetTopProducts ranks products by units sold, all time.
func GetTopProducts(limit int) ([]TopProduct, error) {
	var rows []TopProduct
	err := DB.Table("sales").
		Select("products.id, products.name, products.category, SUM(sales.quantity) as total_quantity, SUM(sales.total) as total_sales").
		Joins("JOIN products ON sales.product_id = products.id").
		Group("products.id, products.name, products.category").
		Order("total_quantity desc").
		Limit(limit).
		Scan(&rows).Error
	return rows, err
}

// ProfitReport is the margin picture over a date range.
type ProfitReport struct {
	TotalSales       float64 `json:"total_sales"`
	TotalCost        float64 `json:"total_cost"`
	NetProfit        float64 `json:"net_profit"`
	ProfitMargin     float64 `json:"profit_margin"`
	TransactionCount int64   `json:"transaction_count"`
	ProductsSold     int64   `json:"products_sold"`
	StockValue       float64 `json:"stock_value"`
}

// GetProfitReport computes revenue, cost of goods sold and margin over
// [start, end), plus the current buy-price value of everything on the shelf.
func GetProfitReport(start, end time.Time) (*ProfitReport, error) {
	var report ProfitReport

	err := DB.Table("sales").
		Select("COALESCE(SUM(sales.total), 0) as total_sales, " +
			"COALESCE(SUM(sales.quantity * products.buy_price), 0) as total_cost, " +
			"COUNT(sales.id) as transaction_count, " +
			"COUNT(DISTINCT sales.product_id) as products_sold").
		Joins("JOIN products ON sales.product_id = products.id").
		Where("sales.timestamp >= ? AND sales.timestamp < ?", start, end).
		Scan(&report).Error
	if err != nil {
		return nil, err
	}

	err = DB.Model(&models.Product{}).
		Select("COALESCE(SUM(buy_price * quantity), 0)").
		Scan(&report.StockValue).Error
	if err != nil {
		return nil, err
	}

	report.NetProfit = report.TotalSales - report.TotalCost
	if report.TotalSales > 0 {
		report.ProfitMargin = report.NetProfit / report.TotalSales * 100
	}
	return &report, nil
}

// CategoryInventory is one category's line of the inventory report.
type CategoryInventory struct {
	Category      string  `json:"category"`
	ProductCount  int64   `json:"product_count"`
	TotalQuantity int64   `json:"total_quantity"`
	StockValue    float64 `json:"stock_value"`
}

// InventoryReport summarizes the current state of the shelf.
type InventoryReport struct {
	Categories    []CategoryInventory `json:"categories"`
	TotalProducts int64               `json:"total_products"`
	LowStock      int64               `json:"low_stock"`
	OutOfStock    int64               `json:"out_of_stock"`
	StockValue    float64             `json:"stock_value"`
}

// GetInventoryReport aggregates stock counts and value per category.
func GetInventoryReport(lowStockThreshold int) (*InventoryReport, error) {
	var report InventoryReport

	err := DB.Model(&models.Product{}).
		Select("category, COUNT(*) as product_count, COALESCE(SUM(quantity), 0) as total_quantity, COALESCE(SUM(buy_price * quantity), 0) as stock_value").
		Group("category").
		Order("stock_value desc").
		Scan(&report.Categories).Error
	if err != nil {
		return nil, err
	}

	if err := DB.Model(&models.Product{}).Count(&report.TotalProducts).Error; err != nil {
		return nil, err
	}
	if err := DB.Model(&models.Product{}).Where("quantity > 0 AND quantity < ?", lowStockThreshold).Count(&report.LowStock).Error; err != nil {
		return nil, err
	}
	if err := DB.Model(&models.Product{}).Where("quantity = 0").Count(&report.OutOfStock).Error; err != nil {
		return nil, err
	}
	err = DB.Model(&models.Product{}).
		Select("COALESCE(SUM(buy_price * quantity), 0)").
		Scan(&report.StockValue).Error
	if err != nil {
		return nil, err
	}

	return &report, nil
}
