package database

import (
	"errors"

	"store-manager/internal/models"

	"gorm.io/gorm"
)

// ProductInput carries the catalog fields a client may set.
type ProductInput struct {
	Name        string
	Category    string
	BuyPrice    float64
	SellPrice   float64
	Quantity    int
	Barcode     string
	Description string
}

func GetAllProducts() ([]models.Product, error) {
	var products []models.Product
	err := DB.Order("name").Find(&products).Error
	return products, err
}

func GetProductByID(id uint) (*models.Product, error) {
	var product models.Product
	if err := DB.First(&product, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &product, nil
}

func GetProductByBarcode(barcode string) (*models.Product, error) {
	var product models.Product
	if err := DB.Where("barcode = ?", barcode).First(&product).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &product, nil
}

func CreateProduct(input ProductInput) (*models.Product, error) {
	product := models.Product{
		Name:        input.Name,
		Category:    input.Category,
		BuyPrice:    input.BuyPrice,
		SellPrice:   input.SellPrice,
		Quantity:    input.Quantity,
		Barcode:     input.Barcode,
		Description: input.Description,
	}
	if err := DB.Create(&product).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrDuplicate
		}
		return nil, err
	}
	return &product, nil
}

// UpdateProduct replaces all catalog fields of a product (PUT semantics).
// A quantity set here is a direct catalog edit, one of the three legal ways
// stock changes.
func UpdateProduct(id uint, input ProductInput) (*models.Product, error) {
	product, err := GetProductByID(id)
	if err != nil {
		return nil, err
	}

	product.Name = input.Name
	product.Category = input.Category
	product.BuyPrice = input.BuyPrice
	product.SellPrice = input.SellPrice
	product.Quantity = input.Quantity
	product.Barcode = input.Barcode
	product.Description = input.Description

	if err := DB.Save(product).Error; err != nil {
		return nil, err
	}
	return product, nil
}

func DeleteProduct(id uint) error {
	res := DB.Delete(&models.Product{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// GetLowStockProducts lists products whose quantity fell under the threshold.
func GetLowStockProducts(threshold int) ([]models.Product, error) {
	var products []models.Product
	err := DB.Where("quantity < ?", threshold).Order("quantity").Find(&products).Error
	return products, err
}

// UpsertProductByBarcode creates the product, or updates it in place when a
// row with the same barcode already exists. Used by the CSV import.
func UpsertProductByBarcode(input ProductInput) (*models.Product, bool, error) {
	existing, err := GetProductByBarcode(input.Barcode)
	if errors.Is(err, ErrNotFound) {
		product, createErr := CreateProduct(input)
		return product, true, createErr
	}
	if err != nil {
		return nil, false, err
	}

	product, err := UpdateProduct(existing.ID, input)
	return product, false, err
}
