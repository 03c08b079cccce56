package handlers

import (
	"encoding/csv"
	"fmt"
	"net/http"
	"strconv"

	"store-manager/internal/database"

	"github.com/gin-gonic/gin"
)

type ProductRequest struct {
	Name        string  `json:"name" binding:"required"`
	Category    string  `json:"category" binding:"required"`
	BuyPrice    float64 `json:"buy_price" binding:"gte=0"`
	SellPrice   float64 `json:"sell_price" binding:"gte=0"`
	Quantity    int     `json:"quantity" binding:"gte=0"`
	Barcode     string  `json:"barcode" binding:"required"`
	Description string  `json:"description"`
}

func (r ProductRequest) toInput() database.ProductInput {
	return database.ProductInput{
		Name:        r.Name,
		Category:    r.Category,
		BuyPrice:    r.BuyPrice,
		SellPrice:   r.SellPrice,
		Quantity:    r.Quantity,
		Barcode:     r.Barcode,
		Description: r.Description,
	}
}

// --- GET: List all products ---
func GetProducts(c *gin.Context) {
	products, err := database.GetAllProducts()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch products"})
		return
	}
	c.JSON(http.StatusOK, products)
}

// --- GET: One product by ID ---
func GetProduct(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid Product ID"})
		return
	}

	product, err := database.GetProductByID(uint(id))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, product)
}

// --- GET: Scan a barcode at the till ---
func ScanProduct(c *gin.Context) {
	product, err := database.GetProductByBarcode(c.Param("barcode"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, product)
}

// --- GET: Products running low ---
func GetLowStockProducts(c *gin.Context) {
	threshold := 10
	if t := c.Query("threshold"); t != "" {
		parsed, err := strconv.Atoi(t)
		if err != nil || parsed <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Threshold must be a positive number"})
			return
		}
		threshold = parsed
	}

	products, err := database.GetLowStockProducts(threshold)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch products"})
		return
	}
	c.JSON(http.StatusOK, products)
}

// --- POST: Add a new product ---
func AddProduct(c *gin.Context) {
	var req ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}

	product, err := database.CreateProduct(req.toInput())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, product)
}

// --- PUT: Replace a product's catalog fields ---
func UpdateProduct(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid Product ID"})
		return
	}

	var req ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}

	product, err := database.UpdateProduct(uint(id), req.toInput())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, product)
}

// --- DELETE: Remove a product ---
func DeleteProduct(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid Product ID"})
		return
	}

	if err := database.DeleteProduct(uint(id)); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Product deleted successfully"})
}

// csvHeader is the column order of the catalog CSV, both directions.
var csvHeader = []string{"name", "category", "buy_price", "sell_price", "quantity", "barcode", "description"}

// --- GET: Export the catalog as CSV ---
func ExportProducts(c *gin.Context) {
	products, err := database.GetAllProducts()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch products"})
		return
	}

	c.Header("Content-Type", "text/csv")
	c.Header("Content-Disposition", `attachment; filename="products.csv"`)

	w := csv.NewWriter(c.Writer)
	_ = w.Write(csvHeader)
	for _, p := range products {
		_ = w.Write([]string{
			p.Name,
			p.Category,
			strconv.FormatFloat(p.BuyPrice, 'f', 2, 64),
			strconv.FormatFloat(p.SellPrice, 'f', 2, 64),
			strconv.Itoa(p.Quantity),
			p.Barcode,
			p.Description,
		})
	}
	w.Flush()
}

// --- POST: Import catalog rows from CSV ---
// Rows are upserted by barcode: known barcodes update in place, new ones
// create products. Bad rows are reported and skipped, not fatal.
func ImportProducts(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No file uploaded"})
		return
	}

	f, err := file.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read file"})
		return
	}
	defer f.Close()

	reader := csv.NewReader(f)
	rows, err := reader.ReadAll()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid CSV file"})
		return
	}
	if len(rows) < 2 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "CSV file has no data rows"})
		return
	}

	var created, updated int
	var rowErrors []string
	for i, row := range rows[1:] { // skip header
		line := i + 2
		if len(row) < 6 {
			rowErrors = append(rowErrors, fmt.Sprintf("line %d: expected at least 6 columns", line))
			continue
		}

		buyPrice, err1 := strconv.ParseFloat(row[2], 64)
		sellPrice, err2 := strconv.ParseFloat(row[3], 64)
		quantity, err3 := strconv.Atoi(row[4])
		if err1 != nil || err2 != nil || err3 != nil || buyPrice < 0 || sellPrice < 0 || quantity < 0 {
			rowErrors = append(rowErrors, fmt.Sprintf("line %d: invalid numeric values", line))
			continue
		}
		if row[0] == "" || row[1] == "" || row[5] == "" {
			rowErrors = append(rowErrors, fmt.Sprintf("line %d: name, category and barcode are required", line))
			continue
		}

		input := database.ProductInput{
			Name:      row[0],
			Category:  row[1],
			BuyPrice:  buyPrice,
			SellPrice: sellPrice,
			Quantity:  quantity,
			Barcode:   row[5],
		}
		if len(row) > 6 {
			input.Description = row[6]
		}

		_, isNew, err := database.UpsertProductByBarcode(input)
		if err != nil {
			rowErrors = append(rowErrors, fmt.Sprintf("line %d: %v", line, err))
			continue
		}
		if isNew {
			created++
		} else {
			updated++
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"created": created,
		"updated": updated,
		"errors":  rowErrors,
	})
}
