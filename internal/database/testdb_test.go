package database

import (
	"testing"

	"store-manager/internal/models"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestDB points the package-level DB at a unique in-memory database so
// tests cannot collide.
func setupTestDB(t *testing.T) {
	t.Helper()
	dsn := "file:" + t.Name() + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	err = db.AutoMigrate(
		&models.User{},
		&models.Product{},
		&models.Sale{},
		&models.Order{},
		&models.OrderItem{},
		&models.ActivityLog{},
	)
	if err != nil {
		t.Fatalf("migrate: %v", err)
	}
	DB = db
}

func seedProduct(t *testing.T, name string, sellPrice, buyPrice float64, quantity int) models.Product {
	t.Helper()
	product := models.Product{
		Name:      name,
		Category:  "test",
		BuyPrice:  buyPrice,
		SellPrice: sellPrice,
		Quantity:  quantity,
		Barcode:   "BC-" + name,
	}
	if err := DB.Create(&product).Error; err != nil {
		t.Fatalf("seed product: %v", err)
	}
	return product
}

func seedUser(t *testing.T, username, role string) models.User {
	t.Helper()
	user := models.User{
		Username:     username,
		PasswordHash: "x",
		Role:         role,
		Status:       models.UserStatusActive,
	}
	if err := DB.Create(&user).Error; err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return user
}

func productQuantity(t *testing.T, id uint) int {
	t.Helper()
	var product models.Product
	if err := DB.First(&product, id).Error; err != nil {
		t.Fatalf("reload product: %v", err)
	}
	return product.Quantity
}
