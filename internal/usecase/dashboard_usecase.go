package usecase

import (
	"context"

	"bistro/internal/domain/entity"
)

// DashboardUsecase computes the analytics panel: totals for the current
// period and the percentage change against the previous one. Admins see the
// marketplace, sellers see their own slice.
type DashboardUsecase interface {
	Overview(ctx context.Context, identity *entity.Identity, input *DashboardInput) (*DashboardOutput, error)
}

// DashboardInput selects the comparison window in days (default 30).
type DashboardInput struct {
	PeriodDays int `json:"period_days,omitempty" validate:"gte=0,lte=365"`
}

// Metric is one dashboard figure with its period-over-period change.
type Metric struct {
	Current       float64 `json:"current"`
	Previous      float64 `json:"previous"`
	ChangePercent float64 `json:"change_percent"`
}

// DashboardOutput is the analytics panel payload.
type DashboardOutput struct {
	PeriodDays int     `json:"period_days"`
	Orders     Metric  `json:"orders"`
	Revenue    Metric  `json:"revenue"`
	NewClients *Metric `json:"new_clients,omitempty"` // admin only
}
