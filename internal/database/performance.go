package database

import (
	"errors"
	"time"

	"store-manager/internal/models"

	"gorm.io/gorm"
)

// UserPerformance aggregates one staff member's numbers. Computed at query
// time from the sales and orders tables rather than materialized.
type UserPerformance struct {
	UserID          uint    `json:"user_id"`
	Username        string  `json:"username"`
	SalesCount      int64   `json:"sales_count"`
	SalesTotal      float64 `json:"sales_total"`
	AvgSaleValue    float64 `json:"avg_sale_value"`
	OrdersProcessed int64   `json:"orders_processed"`
}

// GetUserPerformance computes one user's aggregates over [start, end).
func GetUserPerformance(userID uint, start, end time.Time) (*UserPerformance, error) {
	var user models.User
	if err := DB.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	perf := UserPerformance{UserID: userID, Username: user.Username}

	err := DB.Model(&models.Sale{}).
		Select("COUNT(*) as sales_count, COALESCE(SUM(total), 0) as sales_total").
		Where("user_id = ? AND timestamp >= ? AND timestamp < ?", userID, start, end).
		Scan(&perf).Error
	if err != nil {
		return nil, err
	}

	err = DB.Model(&models.Order{}).
		Where("user_id = ? AND created_at >= ? AND created_at < ?", userID, start, end).
		Count(&perf.OrdersProcessed).Error
	if err != nil {
		return nil, err
	}

	if perf.SalesCount > 0 {
		perf.AvgSaleValue = perf.SalesTotal / float64(perf.SalesCount)
	}
	return &perf, nil
}

// GetAllUsersPerformance ranks every user by sales total over [start, end).
// Users with no sales in the range still appear, at zero.
func GetAllUsersPerformance(start, end time.Time) ([]UserPerformance, error) {
	var rows []UserPerformance
	err := DB.Table("users").
		Select("users.id as user_id, users.username, "+
			"COUNT(sales.id) as sales_count, "+
			"COALESCE(SUM(sales.total), 0) as sales_total").
		Joins("LEFT JOIN sales ON sales.user_id = users.id AND sales.timestamp >= ? AND sales.timestamp < ?", start, end).
		Group("users.id, users.username").
		Order("sales_total desc").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	for i := range rows {
		if rows[i].SalesCount > 0 {
			rows[i].AvgSaleValue = rows[i].SalesTotal / float64(rows[i].SalesCount)
		}
		err = DB.Model(&models.Order{}).
			Where("user_id = ? AND created_at >= ? AND created_at < ?", rows[i].UserID, start, end).
			Count(&rows[i].OrdersProcessed).Error
		if err != nil {
			return nil, err
		}
	}
	return rows, nil
}

// TeamPerformance is the whole staff rolled into one line.
type TeamPerformance struct {
	UserCount       int64   `json:"user_count"`
	SalesCount      int64   `json:"sales_count"`
	SalesTotal      float64 `json:"sales_total"`
	AvgSaleValue    float64 `json:"avg_sale_value"`
	OrdersProcessed int64   `json:"orders_processed"`
}

// GetTeamPerformance aggregates the whole team over [start, end).
func GetTeamPerformance(start, end time.Time) (*TeamPerformance, error) {
	var team TeamPerformance

	err := DB.Model(&models.Sale{}).
		Select("COUNT(DISTINCT user_id) as user_count, COUNT(*) as sales_count, COALESCE(SUM(total), 0) as sales_total").
		Where("timestamp >= ? AND timestamp < ?", start, end).
		Scan(&team).Error
	if err != nil {
		return nil, err
	}

	err = DB.Model(&models.Order{}).
		Where("created_at >= ? AND created_at < ?", start, end).
		Count(&team.OrdersProcessed).Error
	if err != nil {
		return nil, err
	}

	if team.SalesCount > 0 {
		team.AvgSaleValue = team.SalesTotal / float64(team.SalesCount)
	}
	return &team, nil
}
