package model

import (
	"time"

	"github.com/google/uuid"
)

// ReservationModel mirrors the 'reservations' table. Version guards the
// confirm/cancel race.
type ReservationModel struct {
	ID              uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	ClientID        uuid.UUID `gorm:"type:uuid;not null;index"`
	SellerID        uuid.UUID `gorm:"type:uuid;not null;index"`
	Date            string    `gorm:"type:varchar(10);not null"`
	Time            string    `gorm:"type:varchar(5);not null"`
	PartySize       int       `gorm:"not null"`
	Status          string    `gorm:"type:varchar(20);not null;index"`
	SpecialRequests string    `gorm:"type:text"`
	Version         int64     `gorm:"not null;default:0"`
	CreatedAt       time.Time `gorm:"index"`
	UpdatedAt       time.Time
}

// TableName explicitly sets the table name for GORM.
func (ReservationModel) TableName() string {
	return "reservations"
}
