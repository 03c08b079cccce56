package database

import (
	"log"
	"time"

	"store-manager/internal/models"
)

// LogActivity appends one row to the audit trail. It is best-effort: a
// failure here must never abort the operation it accompanies, so the error
// is logged and swallowed.
func LogActivity(userID uint, actionType, details, ipAddress string) {
	entry := models.ActivityLog{
		UserID:        userID,
		ActionType:    actionType,
		ActionDetails: details,
		IPAddress:     ipAddress,
	}
	if err := DB.Create(&entry).Error; err != nil {
		log.Printf("Warning: failed to record activity log (%s): %v", actionType, err)
	}
}

// ActivityRecord is a log row joined with the acting user's name.
type ActivityRecord struct {
	ID            uint      `json:"id"`
	UserID        uint      `json:"user_id"`
	Username      string    `json:"username"`
	ActionType    string    `json:"action_type"`
	ActionDetails string    `json:"action_details"`
	IPAddress     string    `json:"ip_address"`
	CreatedAt     time.Time `json:"created_at"`
}

// GetAllActivityLogs returns the audit trail, newest first.
func GetAllActivityLogs(limit, offset int) ([]ActivityRecord, error) {
	var logs []ActivityRecord
	err := DB.Table("activity_logs").
		Select("activity_logs.*, users.username").
		Joins("JOIN users ON activity_logs.user_id = users.id").
		Order("activity_logs.created_at desc").
		Limit(limit).Offset(offset).
		Scan(&logs).Error
	return logs, err
}

// GetUserActivityLogs returns one user's audit trail, newest first.
func GetUserActivityLogs(userID uint, limit, offset int) ([]models.ActivityLog, error) {
	var logs []models.ActivityLog
	err := DB.Where("user_id = ?", userID).
		Order("created_at desc").
		Limit(limit).Offset(offset).
		Find(&logs).Error
	return logs, err
}
