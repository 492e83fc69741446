package impl

import (
	"context"
	"testing"

	"bistro/internal/domain/entity"
	domainerrors "bistro/internal/domain/errors"
	"bistro/internal/domain/repository"
	"bistro/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func adminIdentity() *entity.Identity {
	return &entity.Identity{UserID: uuid.New(), Role: entity.RoleAdmin}
}

func TestPromoService_Create_UppercasesCode(t *testing.T) {
	tx := newFakeTxManager()
	svc := NewPromoService(tx, newDiscardLogger())

	promo, err := svc.Create(context.Background(), adminIdentity(), &usecase.PromoInput{
		Code:      "  welcome10 ",
		Discount:  10,
		Available: true,
	})
	require.NoError(t, err)
	assert.Equal(t, "WELCOME10", promo.Code)
}

func TestPromoService_Create_AdminOnly(t *testing.T) {
	tx := newFakeTxManager()
	client := tx.store.addClient()
	svc := NewPromoService(tx, newDiscardLogger())

	_, err := svc.Create(context.Background(), identityFor(client), &usecase.PromoInput{
		Code: "NOPE", Discount: 10,
	})
	assert.ErrorIs(t, err, domainerrors.ErrForbidden)
}

func TestPromoService_Create_DiscountBounds(t *testing.T) {
	tx := newFakeTxManager()
	svc := NewPromoService(tx, newDiscardLogger())

	for _, discount := range []int{0, -5, 101} {
		_, err := svc.Create(context.Background(), adminIdentity(), &usecase.PromoInput{
			Code: "BOUNDS", Discount: discount,
		})
		assert.ErrorIs(t, err, domainerrors.ErrValidationFailed, "discount %d", discount)
	}
}

func TestPromoService_Update(t *testing.T) {
	tx := newFakeTxManager()
	promo := tx.store.addPromo(&entity.Promo{Code: "OLD", Discount: 5, Available: true})
	svc := NewPromoService(tx, newDiscardLogger())

	updated, err := svc.Update(context.Background(), adminIdentity(), promo.ID, &usecase.PromoInput{
		Code: "new20", Discount: 20, Available: false,
	})
	require.NoError(t, err)
	assert.Equal(t, "NEW20", updated.Code)
	assert.Equal(t, 20, updated.Discount)
	assert.False(t, updated.Available)
}

func TestPromoService_Delete(t *testing.T) {
	tx := newFakeTxManager()
	promo := tx.store.addPromo(&entity.Promo{Code: "GONE", Discount: 10, Available: true})
	svc := NewPromoService(tx, newDiscardLogger())

	require.NoError(t, svc.Delete(context.Background(), adminIdentity(), promo.ID))
	assert.Empty(t, tx.store.promos)

	err := svc.Delete(context.Background(), adminIdentity(), promo.ID)
	assert.ErrorIs(t, err, domainerrors.ErrPromoNotFound)
}

func TestPromoService_List_AdminOnly(t *testing.T) {
	tx := newFakeTxManager()
	tx.store.addPromo(&entity.Promo{Code: "A", Discount: 5, Available: true})
	tx.store.addPromo(&entity.Promo{Code: "B", Discount: 10, Available: false})
	client := tx.store.addClient()
	svc := NewPromoService(tx, newDiscardLogger())

	result, err := svc.List(context.Background(), adminIdentity(), repository.Page{})
	require.NoError(t, err)
	assert.Len(t, result.Items, 2)

	_, err = svc.List(context.Background(), identityFor(client), repository.Page{})
	assert.ErrorIs(t, err, domainerrors.ErrForbidden)
}

func TestPromoService_Apply_CaseInsensitive(t *testing.T) {
	tx := newFakeTxManager()
	tx.store.addPromo(&entity.Promo{Code: "WELCOME10", Discount: 10, Available: true})
	svc := NewPromoService(tx, newDiscardLogger())

	out, err := svc.Apply(context.Background(), &usecase.ApplyPromoInput{
		Code:     "Welcome10",
		Subtotal: 50,
	})
	require.NoError(t, err)
	assert.Equal(t, "WELCOME10", out.Code)
	assert.InDelta(t, 5.0, out.DiscountAmount, 1e-9)
	assert.InDelta(t, 45.0, out.Total, 1e-9)
}

func TestPromoService_Apply_UnavailableAndUnknown(t *testing.T) {
	tx := newFakeTxManager()
	tx.store.addPromo(&entity.Promo{Code: "PAUSED", Discount: 15, Available: false})
	svc := NewPromoService(tx, newDiscardLogger())

	_, err := svc.Apply(context.Background(), &usecase.ApplyPromoInput{Code: "PAUSED", Subtotal: 50})
	assert.ErrorIs(t, err, domainerrors.ErrPromoUnavailable)

	_, err = svc.Apply(context.Background(), &usecase.ApplyPromoInput{Code: "MISSING", Subtotal: 50})
	assert.ErrorIs(t, err, domainerrors.ErrPromoNotFound)

	_, err = svc.Apply(context.Background(), &usecase.ApplyPromoInput{Subtotal: 50})
	assert.ErrorIs(t, err, domainerrors.ErrMissingFields)
}
