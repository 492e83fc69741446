package model

import (
	"time"

	"github.com/google/uuid"
)

// MenuItemModel mirrors the 'menu_items' table.
type MenuItemModel struct {
	ID              uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	SellerID        uuid.UUID `gorm:"type:uuid;not null;index"`
	Name            string    `gorm:"type:varchar(100);not null"`
	Description     string    `gorm:"type:text"`
	Price           float64   `gorm:"not null"`
	Category        string    `gorm:"type:varchar(50);not null;index"`
	Available       bool      `gorm:"not null;default:true"`
	PrepTimeMinutes int       `gorm:"not null;default:0"`
	Vegetarian      bool      `gorm:"not null;default:false"`
	Vegan           bool      `gorm:"not null;default:false"`
	GlutenFree      bool      `gorm:"not null;default:false"`
	ImageURL        string    `gorm:"type:varchar(512)"`
	CreatedAt       time.Time `gorm:"index"`
	UpdatedAt       time.Time
}

// TableName explicitly sets the table name for GORM.
func (MenuItemModel) TableName() string {
	return "menu_items"
}
