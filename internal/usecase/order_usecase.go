package usecase

import (
	"context"

	"bistro/internal/domain/entity"
	"bistro/internal/domain/repository"

	"github.com/google/uuid"
)

// OrderUsecase defines the order lifecycle operations. Every method takes the
// resolved identity explicitly; the ownership guard runs inside.
type OrderUsecase interface {
	Create(ctx context.Context, identity *entity.Identity, input *CreateOrderInput) (*entity.Order, error)
	GetByID(ctx context.Context, identity *entity.Identity, id uuid.UUID) (*entity.Order, error)

	// UpdateStatus validates the requested transition against the state
	// machine and the actor rules, then persists it under optimistic
	// locking.
	UpdateStatus(ctx context.Context, identity *entity.Identity, id uuid.UUID, status string) (*entity.Order, error)

	// Delete removes a client's own order while it is not in the kitchen.
	Delete(ctx context.Context, identity *entity.Identity, id uuid.UUID) error

	// ListForSeller returns the seller's own orders, newest first.
	ListForSeller(ctx context.Context, identity *entity.Identity, page repository.Page) (*repository.PageResult[*entity.Order], error)

	// ListForClient returns the client's own orders, newest first.
	ListForClient(ctx context.Context, identity *entity.Identity, page repository.Page) (*repository.PageResult[*entity.Order], error)
}

// CreateOrderItemInput is one checkout line.
type CreateOrderItemInput struct {
	MenuItemID uuid.UUID `json:"menu_item_id" validate:"required"`
	Quantity   int       `json:"quantity" validate:"required,min=1"`
}

// CreateOrderInput defines the checkout payload. Seller, items, totalAmount
// and deliveryType are required; missing ones yield a validation error.
type CreateOrderInput struct {
	SellerID     uuid.UUID              `json:"seller" validate:"required"`
	Items        []CreateOrderItemInput `json:"items" validate:"required,min=1,dive"`
	TotalAmount  float64                `json:"total_amount" validate:"required,gt=0"`
	DeliveryType string                 `json:"delivery_type" validate:"required,oneof=delivery pickup"`
	Tip          float64                `json:"tip,omitempty" validate:"gte=0"`
	DeliveryFee  float64                `json:"delivery_fee,omitempty" validate:"gte=0"`
	PromoCode    string                 `json:"promo_code,omitempty"`
}
