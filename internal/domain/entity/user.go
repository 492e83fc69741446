package entity

import (
	"time"

	"github.com/google/uuid"
)

// User is the core account entity shared by all roles. Users are never
// hard-deleted; deactivation happens through the Verified flag and soft
// deletes at the persistence layer.
type User struct {
	ID           uuid.UUID
	Email        string
	Name         string
	Phone        string
	Address      string
	Role         Role
	Verified     bool
	PasswordHash string
	// SellerProfile is nil unless Role is RoleSeller.
	SellerProfile *SellerProfile
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// SellerProfile holds the restaurant-facing attributes of a seller account.
type SellerProfile struct {
	UserID        uuid.UUID
	Cuisine       string
	PriceRange    string
	BusinessHours string
	Description   string
	Rating        float64
	UpdatedAt     time.Time
}

// EmailVerification is the one-time record backing a signed verification
// token. It is deleted when the token is consumed, so a replay finds nothing.
type EmailVerification struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	Token     string
	ExpiresAt time.Time
	CreatedAt time.Time
}

// Expired reports whether the verification record is past its deadline.
func (v *EmailVerification) Expired(now time.Time) bool {
	return now.After(v.ExpiresAt)
}
