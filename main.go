package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/techstore/storefront-api/models"
	"github.com/techstore/storefront-api/routes"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	log.Println("✅ Starting application...")

	seed := flag.Bool("seed", false, "import sample data and exit")
	destroy := flag.Bool("destroy", false, "wipe all data and exit")
	flag.Parse()

	// Load environment variables
	_ = godotenv.Load()

	// Init DB
	db := initDatabase()

	// Auto-migrate all tables
	if err := db.AutoMigrate(
		&models.User{},
		&models.Product{},
		&models.Cart{},
		&models.CartItem{},
		&models.Order{},
		&models.OrderItem{},
		&models.OrderNote{},
		&models.StockHistory{},
	); err != nil {
		log.Fatalf("❌ AutoMigrate failed: %v", err)
	}

	if *seed || *destroy {
		if err := runSeeder(db, *destroy); err != nil {
			log.Fatalf("❌ Seeder failed: %v", err)
		}
		return
	}

	// Gin setup
	r := gin.Default()

	// CORS settings
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Setup routes
	routes.SetupRoutes(r, db)

	// Nightly stock audit at 2 AM: reconciles derived stock statuses
	go startDailyStockAuditAtFixedTime(db, 2, 0)

	// Start server
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Printf("🚀 Server running on port %s...", port)
	if err := r.Run(":" + port); err != nil {
		log.Fatalf("❌ Failed to start server: %v", err)
	}
}

// initDatabase sets up the GORM DB connection
func initDatabase() *gorm.DB {
	if databaseURL := os.Getenv("DATABASE_URL"); databaseURL != "" {
		db, err := gorm.Open(postgres.Open(databaseURL), &gorm.Config{})
		if err != nil {
			log.Fatalf("❌ DB connection failed: %v", err)
		}
		return db
	}

	host := os.Getenv("DB_HOST")
	port := os.Getenv("DB_PORT")
	user := os.Getenv("DB_USER")
	password := os.Getenv("DB_PASSWORD")
	dbname := os.Getenv("DB_NAME")

	dsn := fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		host, user, password, dbname, port,
	)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("❌ Failed to connect DB: %v", err)
	}
	return db
}

// startDailyStockAuditAtFixedTime runs the stock audit daily at a fixed hour.
func startDailyStockAuditAtFixedTime(db *gorm.DB, hour, min int) {
	for {
		now := time.Now()
		next := time.Date(now.Year(), now.Month(), now.Day(), hour, min, 0, 0, now.Location())
		if !next.After(now) {
			next = next.Add(24 * time.Hour)
		}
		log.Printf("⏳ Next stock audit scheduled at: %s", next.Format("2006-01-02 15:04:05"))
		time.Sleep(next.Sub(now))

		if err := runStockAudit(db); err != nil {
			log.Printf("❌ Stock audit failed: %v", err)
		}
	}
}

// runStockAudit recomputes every product's derived stock status and records
// an adjustment entry for any row that had drifted.
func runStockAudit(db *gorm.DB) error {
	var products []models.Product
	if err := db.Find(&products).Error; err != nil {
		return err
	}

	counts := make(map[models.StockStatus]int)
	drifted := 0
	for _, p := range products {
		expected := models.DeriveStockStatus(p.CountInStock, p.ReorderPoint, p.LowStockThreshold)
		counts[expected]++
		if p.StockStatus == expected {
			continue
		}

		drifted++
		if err := db.Model(&models.Product{}).Where("id = ?", p.ID).
			UpdateColumn("stock_status", expected).Error; err != nil {
			return err
		}
		history := models.StockHistory{
			ProductID:     p.ID,
			PreviousStock: p.CountInStock,
			NewStock:      p.CountInStock,
			ChangeType:    models.StockChangeAdjustment,
			Notes:         "nightly stock audit: status reconciled",
		}
		if err := db.Create(&history).Error; err != nil {
			return err
		}
	}

	log.Printf("✅ Stock audit done: %d products (in_stock=%d low_stock=%d reorder_needed=%d out_of_stock=%d), %d reconciled",
		len(products),
		counts[models.StockStatusInStock],
		counts[models.StockStatusLowStock],
		counts[models.StockStatusReorderNeeded],
		counts[models.StockStatusOutOfStock],
		drifted,
	)
	return nil
}
