package impl

import (
	"context"
	"testing"
	"time"

	"bistro/internal/domain/entity"
	domainerrors "bistro/internal/domain/errors"
	"bistro/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newDashboardFixture(t *testing.T) (*fakeTxManager, *dashboardService) {
	t.Helper()
	tx := newFakeTxManager()
	svc, ok := NewDashboardService(tx, newDiscardLogger()).(*dashboardService)
	require.True(t, ok)

	return tx, svc
}

func seedOrder(tx *fakeTxManager, sellerID uuid.UUID, amount float64, createdAt time.Time, status entity.OrderStatus) {
	tx.store.addOrder(&entity.Order{
		ClientID:    uuid.New(),
		SellerID:    sellerID,
		Status:      status,
		TotalAmount: amount,
		CreatedAt:   createdAt,
	})
}

func TestDashboardService_Overview_SellerScope(t *testing.T) {
	tx, svc := newDashboardFixture(t)
	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }

	seller := tx.store.addSeller()
	other := tx.store.addSeller()

	// Current period: two orders worth 30; previous period: one worth 10.
	seedOrder(tx, seller.ID, 10, now.AddDate(0, 0, -5), entity.OrderDelivered)
	seedOrder(tx, seller.ID, 20, now.AddDate(0, 0, -10), entity.OrderConfirmed)
	seedOrder(tx, seller.ID, 10, now.AddDate(0, 0, -45), entity.OrderDelivered)
	// Cancelled orders and other sellers never count.
	seedOrder(tx, seller.ID, 99, now.AddDate(0, 0, -3), entity.OrderCancelled)
	seedOrder(tx, other.ID, 99, now.AddDate(0, 0, -3), entity.OrderDelivered)

	out, err := svc.Overview(context.Background(), identityFor(seller), &usecase.DashboardInput{})
	require.NoError(t, err)

	assert.Equal(t, 30, out.PeriodDays)
	assert.Equal(t, 2.0, out.Orders.Current)
	assert.Equal(t, 1.0, out.Orders.Previous)
	assert.InDelta(t, 100.0, out.Orders.ChangePercent, 1e-9)
	assert.InDelta(t, 30.0, out.Revenue.Current, 1e-9)
	assert.InDelta(t, 200.0, out.Revenue.ChangePercent, 1e-9)
	assert.Nil(t, out.NewClients, "seller view has no signup metric")
}

func TestDashboardService_Overview_AdminSeesNewClients(t *testing.T) {
	tx, svc := newDashboardFixture(t)
	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }

	recent := tx.store.addClient()
	recent.CreatedAt = now.AddDate(0, 0, -2)
	old := tx.store.addClient()
	old.CreatedAt = now.AddDate(0, 0, -40)

	out, err := svc.Overview(context.Background(), adminIdentity(), &usecase.DashboardInput{})
	require.NoError(t, err)

	require.NotNil(t, out.NewClients)
	assert.Equal(t, 1.0, out.NewClients.Current)
	assert.Equal(t, 1.0, out.NewClients.Previous)
	assert.InDelta(t, 0.0, out.NewClients.ChangePercent, 1e-9)
}

func TestDashboardService_Overview_ClientForbidden(t *testing.T) {
	tx, svc := newDashboardFixture(t)
	client := tx.store.addClient()

	_, err := svc.Overview(context.Background(), identityFor(client), &usecase.DashboardInput{})
	assert.ErrorIs(t, err, domainerrors.ErrForbidden)

	_, err = svc.Overview(context.Background(), nil, &usecase.DashboardInput{})
	assert.ErrorIs(t, err, domainerrors.ErrUnauthenticated)
}

func TestDashboardService_MetricChangeEdgeCases(t *testing.T) {
	assert.InDelta(t, 0.0, metric(0, 0).ChangePercent, 1e-9)
	assert.InDelta(t, 100.0, metric(5, 0).ChangePercent, 1e-9)
	assert.InDelta(t, -50.0, metric(5, 10).ChangePercent, 1e-9)
}
