// Package model contains the GORM persistence models mirroring the database
// schema. PostgreSQL generates primary keys via uuid_generate_v7().
package model

import (
	"time"

	"github.com/google/uuid"
)

// UserModel mirrors the 'users' table.
type UserModel struct {
	ID           uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	Email        string    `gorm:"type:varchar(255);unique;not null"`
	Name         string    `gorm:"type:varchar(100)"`
	Phone        string    `gorm:"type:varchar(30)"`
	Address      string    `gorm:"type:varchar(255)"`
	Role         string    `gorm:"type:varchar(20);not null;index"`
	Verified     bool      `gorm:"not null;default:false"`
	PasswordHash string    `gorm:"type:varchar(255);not null"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
	DeletedAt    *time.Time `gorm:"index"`

	SellerProfile *SellerProfileModel `gorm:"foreignKey:UserID"`
}

// TableName explicitly sets the table name for GORM.
func (UserModel) TableName() string {
	return "users"
}

// SellerProfileModel mirrors the 'seller_profiles' table. UserID references users.id.
type SellerProfileModel struct {
	UserID        uuid.UUID `gorm:"primaryKey"`
	Cuisine       string    `gorm:"type:varchar(50);index"`
	PriceRange    string    `gorm:"type:varchar(20)"`
	BusinessHours string    `gorm:"type:varchar(100)"`
	Description   string    `gorm:"type:text"`
	Rating        float64   `gorm:"not null;default:0"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// TableName explicitly sets the table name for GORM.
func (SellerProfileModel) TableName() string {
	return "seller_profiles"
}

// EmailVerificationModel mirrors the 'email_verifications' table. Rows are
// one-time: consumed tokens are deleted.
type EmailVerificationModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index"`
	Token     string    `gorm:"type:varchar(512);not null;uniqueIndex"`
	ExpiresAt time.Time `gorm:"not null"`
	CreatedAt time.Time
}

// TableName explicitly sets the table name for GORM.
func (EmailVerificationModel) TableName() string {
	return "email_verifications"
}
