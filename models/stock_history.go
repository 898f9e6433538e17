package models

import "time"

type StockChangeType string

const (
	StockChangeOrder      StockChangeType = "order"
	StockChangeRestock    StockChangeType = "restock"
	StockChangeAdjustment StockChangeType = "adjustment"
)

// StockHistory records every inventory movement: checkout decrements,
// admin restocks, and manual adjustments.
type StockHistory struct {
	ID            uint            `gorm:"primaryKey" json:"id"`
	ProductID     uint            `gorm:"index;not null" json:"product"`
	PreviousStock int             `gorm:"not null" json:"previousStock"`
	NewStock      int             `gorm:"not null" json:"newStock"`
	ChangeType    StockChangeType `gorm:"type:VARCHAR(20);not null" json:"changeType"`
	OrderID       *uint           `json:"order,omitempty"`
	Notes         string          `json:"notes,omitempty"`
	CreatedBy     string          `json:"createdBy,omitempty"`
	CreatedAt     time.Time       `json:"createdAt"`
}
