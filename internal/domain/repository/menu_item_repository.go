package repository

import (
	"context"
	"errors"

	"bistro/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrMenuItemNotFound is returned when a menu item id has no row.
var ErrMenuItemNotFound = errors.New("menu item not found")

// MenuItemFilter narrows public menu listings.
type MenuItemFilter struct {
	SellerID      *uuid.UUID
	Category      string
	AvailableOnly bool
}

// MenuItemRepository defines the persistence operations for menu items.
type MenuItemRepository interface {
	Create(ctx context.Context, item *entity.MenuItem) error

	FindByID(ctx context.Context, id uuid.UUID) (*entity.MenuItem, error)

	Update(ctx context.Context, item *entity.MenuItem) error

	Delete(ctx context.Context, id uuid.UUID) error

	// List returns a page of menu items matching the filter, newest first.
	List(ctx context.Context, filter MenuItemFilter, page Page) (*PageResult[*entity.MenuItem], error)

	// Categories returns the distinct category names in use.
	Categories(ctx context.Context) ([]string, error)
}
