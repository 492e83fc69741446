package handler

import (
	"log/slog"
	"net/http"

	"bistro/internal/delivery/http/middleware"
	"bistro/internal/delivery/http/response"
	"bistro/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// ReservationHandler holds dependencies for reservation-related handlers.
type ReservationHandler struct {
	uc     usecase.ReservationUsecase
	logger *slog.Logger
}

// NewReservationHandler is the constructor for ReservationHandler, injected by Fx.
func NewReservationHandler(uc usecase.ReservationUsecase, logger *slog.Logger) *ReservationHandler {
	return &ReservationHandler{uc: uc, logger: logger}
}

// Create books a table for the authenticated client.
func (h *ReservationHandler) Create(c echo.Context) error {
	identity := middleware.IdentityFrom(c)

	var input *usecase.CreateReservationInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid reservation input")
	}
	if err := c.Validate(input); err != nil {
		return errors.WithStack(err)
	}

	reservation, err := h.uc.Create(c.Request().Context(), identity, input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, reservation, "Reservation created successfully")
}

// List returns reservations scoped to the caller's role. Admins may narrow
// by ?role=client or ?role=seller.
func (h *ReservationHandler) List(c echo.Context) error {
	identity := middleware.IdentityFrom(c)

	result, err := h.uc.List(c.Request().Context(), identity, c.QueryParam("role"), pageFromQuery(c))
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, paginated(result), "")
}

// reservationStatusRequest is the transition payload for reservations.
type reservationStatusRequest struct {
	ID     uuid.UUID `json:"id" validate:"required"`
	Status string    `json:"status" validate:"required"`
}

// UpdateStatus confirms or cancels a pending reservation. Confirmation
// carries the check-in QR in the response.
func (h *ReservationHandler) UpdateStatus(c echo.Context) error {
	identity := middleware.IdentityFrom(c)

	var req reservationStatusRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid status input")
	}
	if err := c.Validate(&req); err != nil {
		return errors.WithStack(err)
	}

	output, err := h.uc.UpdateStatus(c.Request().Context(), identity, req.ID, req.Status)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, output, "Reservation status updated")
}
