package handler

import (
	"log/slog"
	"net/http"
	"strconv"

	"bistro/internal/delivery/http/middleware"
	"bistro/internal/delivery/http/response"
	"bistro/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// DashboardHandler holds dependencies for the analytics panel.
type DashboardHandler struct {
	uc     usecase.DashboardUsecase
	logger *slog.Logger
}

// NewDashboardHandler is the constructor for DashboardHandler, injected by Fx.
func NewDashboardHandler(uc usecase.DashboardUsecase, logger *slog.Logger) *DashboardHandler {
	return &DashboardHandler{uc: uc, logger: logger}
}

// Overview returns period totals and period-over-period change, scoped to the
// caller: admins see the marketplace, sellers their own slice.
func (h *DashboardHandler) Overview(c echo.Context) error {
	identity := middleware.IdentityFrom(c)

	periodDays, _ := strconv.Atoi(c.QueryParam("period_days"))
	input := &usecase.DashboardInput{PeriodDays: periodDays}

	output, err := h.uc.Overview(c.Request().Context(), identity, input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, output, "")
}
