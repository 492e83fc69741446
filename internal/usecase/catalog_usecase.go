package usecase

import (
	"context"

	"bistro/internal/domain/entity"
	"bistro/internal/domain/repository"

	"github.com/google/uuid"
)

// CatalogUsecase covers the public browse surface (sellers, menu items,
// categories) and the seller-side menu management.
type CatalogUsecase interface {
	// ListSellers is public, paginated at the seller default (6).
	ListSellers(ctx context.Context, filter repository.SellerFilter, page repository.Page) (*repository.PageResult[*entity.User], error)
	GetSeller(ctx context.Context, id uuid.UUID) (*entity.User, error)

	// ListMenuItems is public, paginated at the list default (10).
	ListMenuItems(ctx context.Context, filter repository.MenuItemFilter, page repository.Page) (*repository.PageResult[*entity.MenuItem], error)
	ListCategories(ctx context.Context) ([]string, error)

	// Menu management; the guard restricts mutation to the owning seller.
	CreateMenuItem(ctx context.Context, identity *entity.Identity, input *MenuItemInput) (*entity.MenuItem, error)
	UpdateMenuItem(ctx context.Context, identity *entity.Identity, id uuid.UUID, input *MenuItemInput) (*entity.MenuItem, error)
	DeleteMenuItem(ctx context.Context, identity *entity.Identity, id uuid.UUID) error
}

// MenuItemInput defines the create/update payload for a menu item.
type MenuItemInput struct {
	Name            string  `json:"name" validate:"required"`
	Description     string  `json:"description,omitempty"`
	Price           float64 `json:"price" validate:"required,gt=0"`
	Category        string  `json:"category" validate:"required"`
	Available       bool    `json:"available"`
	PrepTimeMinutes int     `json:"prep_time_minutes,omitempty" validate:"gte=0"`
	Vegetarian      bool    `json:"vegetarian,omitempty"`
	Vegan           bool    `json:"vegan,omitempty"`
	GlutenFree      bool    `json:"gluten_free,omitempty"`
	ImageURL        string  `json:"image_url,omitempty"`
}
