package impl

import (
	"context"
	"log/slog"
	"time"

	"bistro/internal/domain/entity"
	domainerrors "bistro/internal/domain/errors"
	"bistro/internal/domain/repository"
	"bistro/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

const defaultDashboardPeriodDays = 30

// dashboardService implements the DashboardUsecase interface.
type dashboardService struct {
	txManager repository.TransactionManager
	logger    *slog.Logger
	now       func() time.Time
}

// NewDashboardService is the constructor for dashboardService.
func NewDashboardService(txManager repository.TransactionManager, logger *slog.Logger) usecase.DashboardUsecase {
	return &dashboardService{
		txManager: txManager,
		logger:    logger,
		now:       time.Now,
	}
}

// Overview aggregates the current period and the one before it. Sellers get
// their own orders and revenue; admins additionally get new-client signups.
func (srv *dashboardService) Overview(ctx context.Context, identity *entity.Identity, input *usecase.DashboardInput) (*usecase.DashboardOutput, error) {
	if identity == nil {
		return nil, errors.WithStack(domainerrors.ErrUnauthenticated)
	}

	var sellerScope *uuid.UUID
	switch identity.Role {
	case entity.RoleAdmin:
	case entity.RoleSeller:
		id := identity.UserID
		sellerScope = &id
	default:
		return nil, errors.WithStack(domainerrors.ErrForbidden)
	}

	periodDays := input.PeriodDays
	if periodDays <= 0 {
		periodDays = defaultDashboardPeriodDays
	}

	to := srv.now().UTC()
	from := to.AddDate(0, 0, -periodDays)
	prevFrom := from.AddDate(0, 0, -periodDays)

	output := &usecase.DashboardOutput{PeriodDays: periodDays}

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		orderRepo := repoFactory.OrderRepo()

		current, err := orderRepo.StatsBetween(ctx, sellerScope, from, to)
		if err != nil {
			return errors.Wrap(err, "failed to aggregate current period")
		}
		previous, err := orderRepo.StatsBetween(ctx, sellerScope, prevFrom, from)
		if err != nil {
			return errors.Wrap(err, "failed to aggregate previous period")
		}

		output.Orders = metric(float64(current.Count), float64(previous.Count))
		output.Revenue = metric(current.Revenue, previous.Revenue)

		if identity.IsAdmin() {
			userRepo := repoFactory.UserRepo()
			cur, err := userRepo.CountByRoleCreatedBetween(ctx, entity.RoleClient, from, to)
			if err != nil {
				return errors.Wrap(err, "failed to count new clients")
			}
			prev, err := userRepo.CountByRoleCreatedBetween(ctx, entity.RoleClient, prevFrom, from)
			if err != nil {
				return errors.Wrap(err, "failed to count new clients")
			}

			clients := metric(float64(cur), float64(prev))
			output.NewClients = &clients
		}

		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to build dashboard")
	}

	return output, nil
}

// metric computes the period-over-period change. A zero previous period maps
// to 100% when anything happened and 0% otherwise, so the panel never divides
// by zero.
func metric(current, previous float64) usecase.Metric {
	m := usecase.Metric{Current: current, Previous: previous}
	switch {
	case previous > 0:
		m.ChangePercent = (current - previous) / previous * 100
	case current > 0:
		m.ChangePercent = 100
	}

	return m
}
