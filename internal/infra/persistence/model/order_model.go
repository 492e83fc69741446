package model

import (
	"time"

	"github.com/google/uuid"
)

// OrderModel mirrors the 'orders' table. Version backs optimistic locking on
// status updates.
type OrderModel struct {
	ID             uuid.UUID  `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	ClientID       uuid.UUID  `gorm:"type:uuid;not null;index"`
	SellerID       uuid.UUID  `gorm:"type:uuid;not null;index"`
	DriverID       *uuid.UUID `gorm:"type:uuid"`
	Status         string     `gorm:"type:varchar(20);not null;index"`
	PaymentStatus  string     `gorm:"type:varchar(20);not null"`
	DeliveryType   string     `gorm:"type:varchar(20);not null"`
	TotalAmount    float64    `gorm:"not null"`
	Tip            float64    `gorm:"not null;default:0"`
	DeliveryFee    float64    `gorm:"not null;default:0"`
	PromoCode      *string    `gorm:"type:varchar(50)"`
	PromoDiscount  float64    `gorm:"not null;default:0"`
	DiscountAmount float64    `gorm:"not null;default:0"`
	Version        int64      `gorm:"not null;default:0"`
	CreatedAt      time.Time  `gorm:"index"`
	UpdatedAt      time.Time

	Items []OrderItemModel `gorm:"foreignKey:OrderID"`
}

// TableName explicitly sets the table name for GORM.
func (OrderModel) TableName() string {
	return "orders"
}

// OrderItemModel mirrors the 'order_items' table. Name and UnitPrice are
// snapshots taken at checkout; later menu edits never touch these rows.
type OrderItemModel struct {
	ID         uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	OrderID    uuid.UUID `gorm:"type:uuid;not null;index"`
	MenuItemID uuid.UUID `gorm:"type:uuid;not null"`
	Name       string    `gorm:"type:varchar(100);not null"`
	Quantity   int       `gorm:"not null"`
	UnitPrice  float64   `gorm:"not null"`
	CreatedAt  time.Time
}

// TableName explicitly sets the table name for GORM.
func (OrderItemModel) TableName() string {
	return "order_items"
}
