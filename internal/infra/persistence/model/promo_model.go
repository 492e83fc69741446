package model

import (
	"time"

	"github.com/google/uuid"
)

// PromoModel mirrors the 'promos' table. Codes are stored uppercase.
type PromoModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	Code      string    `gorm:"type:varchar(50);not null;uniqueIndex"`
	Discount  int       `gorm:"not null"`
	Available bool      `gorm:"not null;default:true"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName explicitly sets the table name for GORM.
func (PromoModel) TableName() string {
	return "promos"
}

// SiteReviewModel mirrors the 'site_reviews' table.
type SiteReviewModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	AuthorID  uuid.UUID `gorm:"type:uuid;not null;index"`
	Rating    int       `gorm:"not null"`
	Comment   string    `gorm:"type:text;not null"`
	Reply     string    `gorm:"type:text"`
	CreatedAt time.Time `gorm:"index"`
	UpdatedAt time.Time
}

// TableName explicitly sets the table name for GORM.
func (SiteReviewModel) TableName() string {
	return "site_reviews"
}
