package usecase

import (
	"context"

	"bistro/internal/domain/entity"
	"bistro/internal/domain/repository"

	"github.com/google/uuid"
)

// PromoUsecase defines promo code management (admin-only mutation) and the
// discount applicator.
type PromoUsecase interface {
	Create(ctx context.Context, identity *entity.Identity, input *PromoInput) (*entity.Promo, error)
	Update(ctx context.Context, identity *entity.Identity, id uuid.UUID, input *PromoInput) (*entity.Promo, error)
	Delete(ctx context.Context, identity *entity.Identity, id uuid.UUID) error
	List(ctx context.Context, identity *entity.Identity, page repository.Page) (*repository.PageResult[*entity.Promo], error)

	// Apply prices a code against a subtotal without consuming anything.
	Apply(ctx context.Context, input *ApplyPromoInput) (*ApplyPromoOutput, error)
}

// PromoInput defines the create/update payload. The code is case-normalized
// to uppercase before storage; discount bounds are enforced server-side.
type PromoInput struct {
	Code      string `json:"code" validate:"required"`
	Discount  int    `json:"discount" validate:"required,min=1,max=100"`
	Available bool   `json:"available"`
}

// ApplyPromoInput asks for a code to be priced against a subtotal.
type ApplyPromoInput struct {
	Code     string  `json:"code" validate:"required"`
	Subtotal float64 `json:"subtotal" validate:"required,gt=0"`
}

// ApplyPromoOutput reports the computed discount.
type ApplyPromoOutput struct {
	Code           string  `json:"code"`
	Discount       int     `json:"discount"`
	DiscountAmount float64 `json:"discount_amount"`
	Total          float64 `json:"total"`
}
