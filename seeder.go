package main

import (
	"log"

	"github.com/google/uuid"
	"github.com/techstore/storefront-api/models"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var sampleProducts = []models.Product{
	{
		Name:         "AeroBook Pro 14",
		Image:        "/images/aerobook-pro-14.jpg",
		Brand:        "AeroTech",
		Category:     "Laptops",
		Description:  "14-inch ultrabook with a 3K display and 18-hour battery life",
		Rating:       4.8,
		NumReviews:   124,
		Price:        89999,
		CountInStock: 25,
	},
	{
		Name:         "PulseBuds ANC",
		Image:        "/images/pulsebuds-anc.jpg",
		Brand:        "Pulse",
		Category:     "Audio",
		Description:  "Wireless earbuds with adaptive noise cancellation",
		Rating:       4.6,
		NumReviews:   310,
		Price:        4999,
		CountInStock: 80,
	},
	{
		Name:         "Nova Mechanical Keyboard",
		Image:        "/images/nova-keyboard.jpg",
		Brand:        "Nova",
		Category:     "Accessories",
		Description:  "Hot-swappable mechanical keyboard with RGB backlight",
		Rating:       4.5,
		NumReviews:   96,
		Price:        6499,
		CountInStock: 8,
	},
	{
		Name:         "Vertex 27 Monitor",
		Image:        "/images/vertex-27.jpg",
		Brand:        "Vertex",
		Category:     "Monitors",
		Description:  "27-inch QHD IPS monitor with 165Hz refresh rate",
		Rating:       4.3,
		NumReviews:   58,
		Price:        21999,
		CountInStock: 15,
	},
	{
		Name:         "Bolt USB-C Hub",
		Image:        "/images/bolt-hub.jpg",
		Brand:        "Bolt",
		Category:     "Accessories",
		Description:  "8-in-1 USB-C hub with 4K HDMI and 100W passthrough",
		Rating:       4.1,
		NumReviews:   203,
		Price:        1899,
		CountInStock: 0,
	},
	{
		Name:         "Orbit Wireless Mouse",
		Image:        "/images/orbit-mouse.jpg",
		Brand:        "Orbit",
		Category:     "Accessories",
		Description:  "Ergonomic wireless mouse with silent clicks",
		Rating:       3.9,
		NumReviews:   142,
		Price:        1299,
		CountInStock: 4,
	},
}

// runSeeder wipes the database and, unless destroy is set, loads the sample
// catalog and an initial admin account.
func runSeeder(db *gorm.DB, destroy bool) error {
	// Children before parents to keep foreign keys happy.
	for _, model := range []interface{}{
		&models.StockHistory{},
		&models.OrderNote{},
		&models.OrderItem{},
		&models.Order{},
		&models.CartItem{},
		&models.Cart{},
		&models.Product{},
		&models.User{},
	} {
		if err := db.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(model).Error; err != nil {
			return err
		}
	}

	if destroy {
		log.Println("🗑️ All data destroyed")
		return nil
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte("alice123"), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	admin := models.User{
		ID:       uuid.NewString(),
		Name:     "alice",
		Email:    "alice@techstore.dev",
		Password: string(hashed),
		IsAdmin:  true,
		Cart:     models.Cart{},
	}
	if err := db.Create(&admin).Error; err != nil {
		return err
	}
	log.Println("✅ Admin user created successfully")

	for i := range sampleProducts {
		p := sampleProducts[i]
		p.LowStockThreshold = 10
		p.ReorderPoint = 5
		if err := db.Create(&p).Error; err != nil {
			return err
		}
	}
	log.Printf("✅ %d products imported successfully", len(sampleProducts))
	return nil
}
