package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizePromoCode(t *testing.T) {
	assert.Equal(t, "WELCOME10", NormalizePromoCode("  welcome10 "))
	assert.Equal(t, "SAVE5", NormalizePromoCode("Save5"))
	assert.Equal(t, "", NormalizePromoCode("   "))
}

func TestValidateDiscount(t *testing.T) {
	assert.NoError(t, ValidateDiscount(1))
	assert.NoError(t, ValidateDiscount(100))

	assert.ErrorIs(t, ValidateDiscount(0), ErrPromoDiscountBounds)
	assert.ErrorIs(t, ValidateDiscount(-5), ErrPromoDiscountBounds)
	assert.ErrorIs(t, ValidateDiscount(101), ErrPromoDiscountBounds)
}

func TestPromoApply(t *testing.T) {
	promo := &Promo{Code: "WELCOME10", Discount: 10, Available: true}

	discount, err := promo.Apply(50)
	require.NoError(t, err)
	assert.InDelta(t, 5.0, discount, 0.0001)

	promo.Available = false
	_, err = promo.Apply(50)
	assert.ErrorIs(t, err, ErrPromoUnavailable)
}

func TestReservationTransitions(t *testing.T) {
	reservation := &Reservation{Status: ReservationPending}
	require.NoError(t, reservation.TransitionTo(ReservationConfirmed))
	assert.Equal(t, ReservationConfirmed, reservation.Status)

	// Confirmed is final.
	err := reservation.TransitionTo(ReservationCancelled)
	assert.ErrorIs(t, err, ErrInvalidTransition)
	assert.Equal(t, ReservationConfirmed, reservation.Status)

	// Nothing moves back to pending.
	fresh := &Reservation{Status: ReservationPending}
	assert.ErrorIs(t, fresh.TransitionTo(ReservationPending), ErrInvalidTransition)

	cancelled := &Reservation{Status: ReservationPending}
	require.NoError(t, cancelled.TransitionTo(ReservationCancelled))
	assert.ErrorIs(t, cancelled.TransitionTo(ReservationConfirmed), ErrInvalidTransition)
}
