package repository

import (
	"context"
	"errors"

	"bistro/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrReservationNotFound is returned when a reservation id has no row.
var ErrReservationNotFound = errors.New("reservation not found")

// ReservationRepository defines the persistence operations for reservations.
type ReservationRepository interface {
	Create(ctx context.Context, reservation *entity.Reservation) error

	FindByID(ctx context.Context, id uuid.UUID) (*entity.Reservation, error)

	// Update persists status mutations guarded by Version; returns
	// ErrStaleVersion on a lost race.
	Update(ctx context.Context, reservation *entity.Reservation) error

	// ListBySeller returns the seller's reservations, newest first.
	ListBySeller(ctx context.Context, sellerID uuid.UUID, page Page) (*PageResult[*entity.Reservation], error)

	// ListByClient returns the client's reservations, newest first.
	ListByClient(ctx context.Context, clientID uuid.UUID, page Page) (*PageResult[*entity.Reservation], error)

	// ListAll returns every reservation, newest first; admin listings only.
	ListAll(ctx context.Context, page Page) (*PageResult[*entity.Reservation], error)
}
