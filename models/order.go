package models

import "time"

// PaymentMethodCOD is the only payment method the store accepts; payment is
// collected at delivery, so delivery confirmation also marks the order paid.
const PaymentMethodCOD = "COD"

type Order struct {
	ID            uint        `gorm:"primaryKey" json:"_id"`
	OrderRef      string      `gorm:"uniqueIndex" json:"orderRef"`
	// Nullable: deleting a user sets this to NULL and the order survives as
	// an orphan for the admin's records.
	UserID        *string     `gorm:"index" json:"user,omitempty"`
	Items         []OrderItem `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items"`
	TotalAmount   float64     `json:"totalAmount"`
	ShippingCost  float64     `json:"shippingCost"`
	PaymentMethod string      `gorm:"not null" json:"paymentMethod"`
	IsPaid        bool        `gorm:"not null;default:false" json:"isPaid"`
	PaidAt        *time.Time  `json:"paidAt,omitempty"`
	IsDelivered   bool        `gorm:"not null;default:false" json:"isDelivered"`
	DeliveredAt   *time.Time  `json:"deliveredAt,omitempty"`
	Notes         []OrderNote `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"notes"`
	CreatedAt     time.Time   `json:"createdAt"`
}

// OrderItem is an immutable snapshot of a product taken at order time. Later
// edits to the product must never change what the order displays.
type OrderItem struct {
	ID        uint    `gorm:"primaryKey" json:"id"`
	OrderID   uint    `gorm:"index" json:"order_id"`
	ProductID uint    `json:"product"`
	Name      string  `gorm:"not null" json:"name"`
	Price     float64 `gorm:"not null" json:"price"`
	Image     string  `json:"image"`
	Quantity  int     `gorm:"not null" json:"quantity"`
}

type OrderNote struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	OrderID   uint      `gorm:"index" json:"order_id"`
	Text      string    `gorm:"not null" json:"text"`
	CreatedBy string    `json:"createdBy"`
	CreatedAt time.Time `json:"createdAt"`
}
