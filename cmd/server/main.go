package main

import (
	"log"
	"os"
	"time"

	"store-manager/internal/database"
	"store-manager/internal/handlers"
	"store-manager/internal/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	err := godotenv.Load()
	if err != nil {
		log.Println("Warning: No .env file found")
	}

	if os.Getenv("JWT_SECRET") == "" {
		log.Fatal("❌ Error: JWT_SECRET is not set. Refusing to start with the dev fallback key.")
	}

	database.Connect()
	r := gin.Default()

	corsOrigin := os.Getenv("CORS_ORIGIN")
	if corsOrigin == "" {
		corsOrigin = "http://localhost:5173" // the React dashboard dev server
	}
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{corsOrigin},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/health", func(c *gin.Context) { c.JSON(200, gin.H{"status": "online"}) })
	r.POST("/api/users/login", handlers.Login)

	// --- FEATURE FLAG: Open Registration ---
	// Only for bootstrapping the first admin on a fresh install.
	if os.Getenv("ALLOW_REGISTRATION") == "true" {
		r.POST("/api/users/register", handlers.Register)
		log.Println("⚠️ WARNING: Registration route is OPEN. Disable this in production!")
	} else {
		log.Println("🔒 Registration route is safely DISABLED.")
	}

	// --- PROTECTED ROUTES ---
	api := r.Group("/api")
	api.Use(middleware.AuthMiddleware())
	{
		// STAFF & ADMIN
		api.GET("/products", handlers.GetProducts)
		api.GET("/products/low-stock", handlers.GetLowStockProducts)
		api.GET("/products/barcode/:barcode", handlers.ScanProduct)
		api.GET("/products/:id", handlers.GetProduct)

		api.GET("/sales", handlers.GetSales)
		api.GET("/sales/date-range", handlers.GetSalesByDateRange)
		api.GET("/sales/product/:productId", handlers.GetSalesByProduct)
		api.GET("/sales/daily/:date", handlers.GetDailySalesSummary)
		api.POST("/sales", handlers.CreateSale)
		api.POST("/sales/batch", handlers.CreateSaleBatch)

		api.GET("/orders", handlers.GetOrders)
		api.GET("/orders/:id", handlers.GetOrder)
		api.POST("/orders", handlers.CreateOrder)
		api.PUT("/orders/:id", handlers.UpdateOrderStatus)
		api.DELETE("/orders/:id", handlers.DeleteOrder)

		// ADMIN ONLY
		admin := api.Group("/")
		admin.Use(middleware.RequireRole("admin"))
		{
			admin.GET("/products/export", handlers.ExportProducts)
			admin.POST("/products/import", handlers.ImportProducts)
			admin.POST("/products", handlers.AddProduct)
			admin.PUT("/products/:id", handlers.UpdateProduct)
			admin.DELETE("/products/:id", handlers.DeleteProduct)

			admin.GET("/users", handlers.GetUsers)
			admin.GET("/users/:id", handlers.GetUser)
			admin.POST("/users", handlers.CreateUser)
			admin.PUT("/users/:id", handlers.UpdateUser)
			admin.DELETE("/users/:id", handlers.DeleteUser)
			admin.PUT("/users/:id/status", handlers.SetUserStatus)
			admin.GET("/users/:id/activity", handlers.GetUserActivity)
			admin.GET("/activity", handlers.GetAllActivity)

			admin.GET("/reports/daily/:date", handlers.GetDailyReport)
			admin.GET("/reports/weekly", handlers.GetWeeklyReport)
			admin.GET("/reports/monthly/:year/:month", handlers.GetMonthlyReport)
			admin.GET("/reports/top-products", handlers.GetTopProducts)
			admin.GET("/reports/profit", handlers.GetProfitReport)
			admin.GET("/reports/inventory", handlers.GetInventoryReport)

			admin.GET("/performance", handlers.GetAllUsersPerformance)
			admin.GET("/performance/team", handlers.GetTeamPerformance)
			admin.GET("/performance/user/:id", handlers.GetUserPerformance)
		}
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Println("🚀 Server starting on port " + port)
	if err := r.Run(":" + port); err != nil {
		log.Fatal("Server failed to start:", err)
	}
}
