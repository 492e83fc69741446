package entity

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ReservationStatus represents the lifecycle state of a table reservation.
type ReservationStatus string

const (
	ReservationPending   ReservationStatus = "pending"
	ReservationConfirmed ReservationStatus = "confirmed"
	ReservationCancelled ReservationStatus = "cancelled"
)

// ParseReservationStatus converts a string to a ReservationStatus.
func ParseReservationStatus(s string) (ReservationStatus, error) {
	status := ReservationStatus(strings.ToLower(strings.TrimSpace(s)))
	switch status {
	case ReservationPending, ReservationConfirmed, ReservationCancelled:
		return status, nil
	default:
		return "", fmt.Errorf("%w: %q is not a recognized reservation status", ErrUnknownStatus, s)
	}
}

// String returns the string representation of the status.
func (s ReservationStatus) String() string {
	return string(s)
}

// IsTerminal reports whether the reservation admits no further transition.
// Only pending reservations can move; confirmed and cancelled are final.
func (s ReservationStatus) IsTerminal() bool {
	return s == ReservationConfirmed || s == ReservationCancelled
}

// Reservation belongs to one client and one seller.
type Reservation struct {
	ID              uuid.UUID
	ClientID        uuid.UUID
	SellerID        uuid.UUID
	Date            string // ISO date, e.g. "2026-03-14"
	Time            string // wall-clock time, e.g. "19:30"
	PartySize       int
	Status          ReservationStatus
	SpecialRequests string
	// Version guards against concurrent confirm/cancel races.
	Version   int64
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TransitionTo validates and applies a reservation status change: pending may
// become confirmed or cancelled, nothing else moves.
func (r *Reservation) TransitionTo(target ReservationStatus) error {
	if _, err := ParseReservationStatus(target.String()); err != nil {
		return err
	}
	if r.Status.IsTerminal() || target == ReservationPending {
		return fmt.Errorf("%w: %s -> %s is not allowed; a reservation only moves from pending to confirmed or cancelled",
			ErrInvalidTransition, r.Status, target)
	}
	r.Status = target

	return nil
}
