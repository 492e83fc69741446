package entity

import (
	"time"

	"github.com/google/uuid"
)

// MenuItem belongs to one seller and is publicly readable.
type MenuItem struct {
	ID              uuid.UUID
	SellerID        uuid.UUID
	Name            string
	Description     string
	Price           float64
	Category        string
	Available       bool
	PrepTimeMinutes int
	Vegetarian      bool
	Vegan           bool
	GlutenFree      bool
	ImageURL        string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
