package handler

import (
	"log/slog"
	"net/http"

	"bistro/internal/delivery/http/middleware"
	"bistro/internal/delivery/http/response"
	"bistro/internal/domain/repository"
	"bistro/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// CatalogHandler holds dependencies for the public browse surface and the
// seller-side menu management.
type CatalogHandler struct {
	uc     usecase.CatalogUsecase
	logger *slog.Logger
}

// NewCatalogHandler is the constructor for CatalogHandler, injected by Fx.
func NewCatalogHandler(uc usecase.CatalogUsecase, logger *slog.Logger) *CatalogHandler {
	return &CatalogHandler{uc: uc, logger: logger}
}

// ListSellers is public: restaurants paged at the seller default, optionally
// filtered by ?cuisine=.
func (h *CatalogHandler) ListSellers(c echo.Context) error {
	filter := repository.SellerFilter{Cuisine: c.QueryParam("cuisine")}

	result, err := h.uc.ListSellers(c.Request().Context(), filter, pageFromQuery(c))
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, paginated(result), "")
}

// GetSeller returns one restaurant's public profile.
func (h *CatalogHandler) GetSeller(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid seller id")
	}

	seller, err := h.uc.GetSeller(c.Request().Context(), id)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, seller, "")
}

// ListMenuItems is public, filtered by ?seller=, ?category= and ?available=.
func (h *CatalogHandler) ListMenuItems(c echo.Context) error {
	filter := repository.MenuItemFilter{
		Category:      c.QueryParam("category"),
		AvailableOnly: c.QueryParam("available") == "true",
	}
	if sellerParam := c.QueryParam("seller"); sellerParam != "" {
		sellerID, err := uuid.Parse(sellerParam)
		if err != nil {
			return response.BadRequest(c, "INVALID_INPUT", "Invalid seller id")
		}
		filter.SellerID = &sellerID
	}

	result, err := h.uc.ListMenuItems(c.Request().Context(), filter, pageFromQuery(c))
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, paginated(result), "")
}

// ListCategories returns the distinct category names in use.
func (h *CatalogHandler) ListCategories(c echo.Context) error {
	categories, err := h.uc.ListCategories(c.Request().Context())
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, categories, "")
}

// CreateMenuItem adds a dish to the authenticated seller's menu.
func (h *CatalogHandler) CreateMenuItem(c echo.Context) error {
	identity := middleware.IdentityFrom(c)

	var input *usecase.MenuItemInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid menu item input")
	}
	if err := c.Validate(input); err != nil {
		return errors.WithStack(err)
	}

	item, err := h.uc.CreateMenuItem(c.Request().Context(), identity, input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, item, "Menu item created successfully")
}

// UpdateMenuItem edits a dish; only the owning seller (or an admin) may.
func (h *CatalogHandler) UpdateMenuItem(c echo.Context) error {
	identity := middleware.IdentityFrom(c)

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid menu item id")
	}

	var input *usecase.MenuItemInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid menu item input")
	}
	if err := c.Validate(input); err != nil {
		return errors.WithStack(err)
	}

	item, err := h.uc.UpdateMenuItem(c.Request().Context(), identity, id, input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, item, "Menu item updated successfully")
}

// DeleteMenuItem removes a dish from the menu.
func (h *CatalogHandler) DeleteMenuItem(c echo.Context) error {
	identity := middleware.IdentityFrom(c)

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid menu item id")
	}

	if err := h.uc.DeleteMenuItem(c.Request().Context(), identity, id); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "Menu item deleted successfully")
}
