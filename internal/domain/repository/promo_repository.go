package repository

import (
	"context"
	"errors"

	"bistro/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrPromoNotFound is returned when neither id nor code matches a promo.
var ErrPromoNotFound = errors.New("promo not found")

// PromoRepository defines the persistence operations for promo codes.
// Callers normalize codes to uppercase before reaching this interface.
type PromoRepository interface {
	Create(ctx context.Context, promo *entity.Promo) error

	FindByID(ctx context.Context, id uuid.UUID) (*entity.Promo, error)

	FindByCode(ctx context.Context, code string) (*entity.Promo, error)

	Update(ctx context.Context, promo *entity.Promo) error

	Delete(ctx context.Context, id uuid.UUID) error

	List(ctx context.Context, page Page) (*PageResult[*entity.Promo], error)
}
