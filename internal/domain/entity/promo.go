package entity

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ErrPromoUnavailable is returned when a promo exists but is switched off.
var ErrPromoUnavailable = errors.New("promo code is not available")

// ErrPromoDiscountBounds is returned when a discount percentage is outside 1-100.
var ErrPromoDiscountBounds = errors.New("discount must be between 1 and 100")

// Promo is an admin-managed discount code. Codes are stored and compared in
// uppercase regardless of how callers spell them.
type Promo struct {
	ID        uuid.UUID
	Code      string
	Discount  int // integer percentage, 1-100
	Available bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NormalizePromoCode maps user input to the canonical stored form.
func NormalizePromoCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// ValidateDiscount enforces the 1-100 percentage bounds at the domain layer,
// not just in the UI.
func ValidateDiscount(discount int) error {
	if discount < 1 || discount > 100 {
		return ErrPromoDiscountBounds
	}

	return nil
}

// Apply computes the discount amount for a subtotal. The promo must be
// available; the percentage is applied multiplicatively.
func (p *Promo) Apply(subtotal float64) (float64, error) {
	if !p.Available {
		return 0, ErrPromoUnavailable
	}

	return subtotal * float64(p.Discount) / 100, nil
}
