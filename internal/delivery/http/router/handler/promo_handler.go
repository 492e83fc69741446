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

// PromoHandler holds dependencies for promo code management.
type PromoHandler struct {
	uc     usecase.PromoUsecase
	logger *slog.Logger
}

// NewPromoHandler is the constructor for PromoHandler, injected by Fx.
func NewPromoHandler(uc usecase.PromoUsecase, logger *slog.Logger) *PromoHandler {
	return &PromoHandler{uc: uc, logger: logger}
}

// List returns all promo codes; admin only.
func (h *PromoHandler) List(c echo.Context) error {
	identity := middleware.IdentityFrom(c)

	result, err := h.uc.List(c.Request().Context(), identity, pageFromQuery(c))
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, paginated(result), "")
}

// Create registers a new promo code; admin only.
func (h *PromoHandler) Create(c echo.Context) error {
	identity := middleware.IdentityFrom(c)

	var input *usecase.PromoInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid promo input")
	}
	if err := c.Validate(input); err != nil {
		return errors.WithStack(err)
	}

	promo, err := h.uc.Create(c.Request().Context(), identity, input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, promo, "Promo created successfully")
}

// Update edits an existing promo code; admin only.
func (h *PromoHandler) Update(c echo.Context) error {
	identity := middleware.IdentityFrom(c)

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid promo id")
	}

	var input *usecase.PromoInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid promo input")
	}
	if err := c.Validate(input); err != nil {
		return errors.WithStack(err)
	}

	promo, err := h.uc.Update(c.Request().Context(), identity, id, input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, promo, "Promo updated successfully")
}

// Delete removes a promo code addressed by the ?id= query parameter.
func (h *PromoHandler) Delete(c echo.Context) error {
	identity := middleware.IdentityFrom(c)

	id, err := uuid.Parse(c.QueryParam("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid promo id")
	}

	if err := h.uc.Delete(c.Request().Context(), identity, id); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "Promo deleted successfully")
}

// Apply prices a promo code against a subtotal without consuming anything.
func (h *PromoHandler) Apply(c echo.Context) error {
	var input *usecase.ApplyPromoInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid promo input")
	}
	if err := c.Validate(input); err != nil {
		return errors.WithStack(err)
	}

	output, err := h.uc.Apply(c.Request().Context(), input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, output, "")
}
