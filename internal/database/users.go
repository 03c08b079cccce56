package database

import (
	"errors"
	"fmt"
	"time"

	"store-manager/internal/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// UserInput carries the fields an admin may set on a user. Password is the
// clear text; it is hashed before it ever reaches the database.
type UserInput struct {
	Username  string
	Password  string
	FirstName string
	LastName  string
	Email     string
	Phone     string
	Role      string
	Status    string
}

func GetAllUsers() ([]models.User, error) {
	var users []models.User
	err := DB.Order("username").Find(&users).Error
	return users, err
}

func GetUserByID(id uint) (*models.User, error) {
	var user models.User
	if err := DB.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

func GetUserByUsername(username string) (*models.User, error) {
	var user models.User
	if err := DB.Where("username = ?", username).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

func CreateUser(input UserInput) (*models.User, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	status := input.Status
	if status == "" {
		status = models.UserStatusActive
	}

	user := models.User{
		Username:     input.Username,
		PasswordHash: string(hashed),
		FirstName:    input.FirstName,
		LastName:     input.LastName,
		Email:        input.Email,
		Phone:        input.Phone,
		Role:         input.Role,
		Status:       status,
	}
	if err := DB.Create(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrDuplicate
		}
		return nil, err
	}
	return &user, nil
}

// UpdateUser replaces a user's profile. An empty password keeps the current
// hash; anything else is re-hashed.
func UpdateUser(id uint, input UserInput) (*models.User, error) {
	user, err := GetUserByID(id)
	if err != nil {
		return nil, err
	}

	if input.Password != "" {
		hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = string(hashed)
	}

	user.Username = input.Username
	user.FirstName = input.FirstName
	user.LastName = input.LastName
	user.Email = input.Email
	user.Phone = input.Phone
	user.Role = input.Role
	if input.Status != "" {
		user.Status = input.Status
	}

	if err := DB.Save(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

func DeleteUser(id uint) error {
	res := DB.Delete(&models.User{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// SetUserStatus activates or deactivates an account and records who did it.
func SetUserStatus(id uint, status string, modifiedBy uint) (*models.User, error) {
	if status != models.UserStatusActive && status != models.UserStatusInactive {
		return nil, ErrInvalidStatus
	}

	user, err := GetUserByID(id)
	if err != nil {
		return nil, err
	}

	user.Status = status
	if err := DB.Save(user).Error; err != nil {
		return nil, err
	}

	LogActivity(modifiedBy, models.ActionUserStatusChange, fmt.Sprintf("User #%d set to %s", id, status), "")
	return user, nil
}

// Authenticate verifies credentials, refuses inactive accounts, stamps the
// last login and writes the audit trail. Failed attempts are logged too.
func Authenticate(username, password, ipAddress string) (*models.User, error) {
	user, err := GetUserByUsername(username)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if user.Status == models.UserStatusInactive {
		return nil, ErrAccountDisabled
	}

	// Constant-time comparison against the stored hash
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		LogActivity(user.ID, models.ActionLoginFailed, "Failed login attempt", ipAddress)
		return nil, ErrInvalidCredentials
	}

	now := time.Now()
	user.LastLogin = &now
	if err := DB.Model(user).UpdateColumn("last_login", now).Error; err != nil {
		return nil, err
	}

	LogActivity(user.ID, models.ActionLogin, "Successful login", ipAddress)
	return user, nil
}
