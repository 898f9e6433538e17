package models

import (
	"time"

	"gorm.io/gorm"
)

type StockStatus string

const (
	StockStatusInStock       StockStatus = "in_stock"
	StockStatusLowStock      StockStatus = "low_stock"
	StockStatusOutOfStock    StockStatus = "out_of_stock"
	StockStatusReorderNeeded StockStatus = "reorder_needed"
)

type Product struct {
	ID                uint        `gorm:"primaryKey;autoIncrement" json:"_id"`
	Name              string      `gorm:"not null" json:"name"`
	Image             string      `json:"image"`
	Brand             string      `json:"brand"`
	Category          string      `json:"category"`
	Description       string      `json:"description"`
	Rating            float64     `gorm:"not null;default:0" json:"rating"`
	NumReviews        int         `gorm:"not null;default:0" json:"numReviews"`
	Price             float64     `gorm:"not null;default:0" json:"price"`
	CountInStock      int         `gorm:"not null;default:0" json:"countInStock"`
	LowStockThreshold int         `gorm:"not null;default:10" json:"lowStockThreshold"`
	ReorderPoint      int         `gorm:"not null;default:5" json:"reorderPoint"`
	LastRestockDate   *time.Time  `json:"lastRestockDate,omitempty"`
	StockStatus       StockStatus `gorm:"type:VARCHAR(20);default:'in_stock'" json:"stockStatus"`
	CreatedAt         time.Time   `json:"createdAt"`
	UpdatedAt         time.Time   `json:"updatedAt"`
}

// DeriveStockStatus maps an inventory count to its status label. Out-of-stock
// wins over reorder-needed, which wins over low-stock.
func DeriveStockStatus(countInStock, reorderPoint, lowStockThreshold int) StockStatus {
	switch {
	case countInStock <= 0:
		return StockStatusOutOfStock
	case countInStock <= reorderPoint:
		return StockStatusReorderNeeded
	case countInStock <= lowStockThreshold:
		return StockStatusLowStock
	default:
		return StockStatusInStock
	}
}

// BeforeSave keeps StockStatus consistent with CountInStock on every write.
func (p *Product) BeforeSave(tx *gorm.DB) error {
	p.StockStatus = DeriveStockStatus(p.CountInStock, p.ReorderPoint, p.LowStockThreshold)
	return nil
}
