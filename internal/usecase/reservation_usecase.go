package usecase

import (
	"context"

	"bistro/internal/domain/entity"
	"bistro/internal/domain/repository"

	"github.com/google/uuid"
)

// ReservationUsecase defines the reservation lifecycle operations.
type ReservationUsecase interface {
	Create(ctx context.Context, identity *entity.Identity, input *CreateReservationInput) (*entity.Reservation, error)

	// List is role-scoped: clients see their own, sellers their own, admins
	// everything (optionally narrowed by roleFilter "client"/"seller").
	List(ctx context.Context, identity *entity.Identity, roleFilter string, page repository.Page) (*repository.PageResult[*entity.Reservation], error)

	// UpdateStatus confirms or cancels a pending reservation. Confirmation
	// returns the check-in QR PNG alongside the reservation.
	UpdateStatus(ctx context.Context, identity *entity.Identity, id uuid.UUID, status string) (*ReservationStatusOutput, error)
}

// CreateReservationInput defines the booking payload. Seller, date, time and
// partySize are required.
type CreateReservationInput struct {
	SellerID        uuid.UUID `json:"seller" validate:"required"`
	Date            string    `json:"date" validate:"required"`
	Time            string    `json:"time" validate:"required"`
	PartySize       int       `json:"party_size" validate:"required,min=1"`
	SpecialRequests string    `json:"special_requests,omitempty"`
}

// ReservationStatusOutput carries the transitioned reservation and, on
// confirmation, the base64-encoded check-in QR PNG.
type ReservationStatusOutput struct {
	Reservation *entity.Reservation `json:"reservation"`
	CheckInQR   string              `json:"check_in_qr,omitempty"`
}
