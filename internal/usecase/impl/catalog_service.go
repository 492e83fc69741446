package impl

import (
	"context"
	"log/slog"

	"bistro/config"
	"bistro/internal/domain/access"
	"bistro/internal/domain/entity"
	domainerrors "bistro/internal/domain/errors"
	"bistro/internal/domain/repository"
	"bistro/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// catalogService implements the CatalogUsecase interface.
type catalogService struct {
	txManager  repository.TransactionManager
	pagination *config.PaginationConfig
	logger     *slog.Logger
}

// NewCatalogService is the constructor for catalogService.
func NewCatalogService(
	cfg *config.Config,
	txManager repository.TransactionManager,
	logger *slog.Logger,
) usecase.CatalogUsecase {
	return &catalogService{
		txManager:  txManager,
		pagination: cfg.Pagination,
		logger:     logger,
	}
}

// ListSellers returns the public seller directory. Seller cards are heavier
// than other listings, so the page size defaults lower.
func (srv *catalogService) ListSellers(ctx context.Context, filter repository.SellerFilter, page repository.Page) (*repository.PageResult[*entity.User], error) {
	page = page.Normalize(srv.pagination.SellerPageSize)

	var result *repository.PageResult[*entity.User]

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		found, err := repoFactory.UserRepo().ListSellers(ctx, filter, page)
		if err != nil {
			return errors.Wrap(err, "failed to list sellers")
		}
		result = found

		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to list sellers")
	}

	return result, nil
}

// GetSeller returns one seller's public profile.
func (srv *catalogService) GetSeller(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	var seller *entity.User

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		found, err := repoFactory.UserRepo().FindByID(ctx, id)
		if err != nil {
			if errors.Is(err, repository.ErrUserNotFound) {
				return domainerrors.ErrSellerNotFound
			}

			return errors.Wrap(err, "failed to find seller")
		}
		if found.Role != entity.RoleSeller {
			return domainerrors.ErrSellerNotFound
		}
		seller = found

		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to get seller")
	}

	return seller, nil
}

// ListMenuItems is the public menu browse, optionally narrowed by seller,
// category or availability.
func (srv *catalogService) ListMenuItems(ctx context.Context, filter repository.MenuItemFilter, page repository.Page) (*repository.PageResult[*entity.MenuItem], error) {
	page = page.Normalize(srv.pagination.DefaultPageSize)

	var result *repository.PageResult[*entity.MenuItem]

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		found, err := repoFactory.MenuItemRepo().List(ctx, filter, page)
		if err != nil {
			return errors.Wrap(err, "failed to list menu items")
		}
		result = found

		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to list menu items")
	}

	return result, nil
}

// ListCategories returns the distinct menu categories in use.
func (srv *catalogService) ListCategories(ctx context.Context) ([]string, error) {
	var categories []string

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		found, err := repoFactory.MenuItemRepo().Categories(ctx)
		if err != nil {
			return errors.Wrap(err, "failed to list categories")
		}
		categories = found

		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to list categories")
	}

	return categories, nil
}

// CreateMenuItem adds an item to the authenticated seller's own menu.
func (srv *catalogService) CreateMenuItem(ctx context.Context, identity *entity.Identity, input *usecase.MenuItemInput) (*entity.MenuItem, error) {
	if err := access.RequireRole(identity, entity.RoleSeller); err != nil {
		return nil, errors.WithStack(err)
	}
	if input.Name == "" || input.Price <= 0 || input.Category == "" {
		return nil, errors.Wrap(domainerrors.ErrMissingFields, "name, price and category are required")
	}

	item := &entity.MenuItem{
		SellerID:        identity.UserID,
		Name:            input.Name,
		Description:     input.Description,
		Price:           input.Price,
		Category:        input.Category,
		Available:       input.Available,
		PrepTimeMinutes: input.PrepTimeMinutes,
		Vegetarian:      input.Vegetarian,
		Vegan:           input.Vegan,
		GlutenFree:      input.GlutenFree,
		ImageURL:        input.ImageURL,
	}

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		return errors.Wrap(repoFactory.MenuItemRepo().Create(ctx, item), "failed to create menu item")
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to create menu item")
	}

	srv.logger.Info("Menu item created", "menuItemID", item.ID, "sellerID", item.SellerID)

	return item, nil
}

// UpdateMenuItem replaces the mutable fields of a seller's own item.
func (srv *catalogService) UpdateMenuItem(ctx context.Context, identity *entity.Identity, id uuid.UUID, input *usecase.MenuItemInput) (*entity.MenuItem, error) {
	if input.Name == "" || input.Price <= 0 || input.Category == "" {
		return nil, errors.Wrap(domainerrors.ErrMissingFields, "name, price and category are required")
	}

	var item *entity.MenuItem

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		found, err := srv.loadMenuItem(ctx, repoFactory, id)
		if err != nil {
			return err
		}
		if err := access.Authorize(identity, access.ActionUpdate, access.MenuItemResource(found)); err != nil {
			return err
		}

		found.Name = input.Name
		found.Description = input.Description
		found.Price = input.Price
		found.Category = input.Category
		found.Available = input.Available
		found.PrepTimeMinutes = input.PrepTimeMinutes
		found.Vegetarian = input.Vegetarian
		found.Vegan = input.Vegan
		found.GlutenFree = input.GlutenFree
		found.ImageURL = input.ImageURL

		if err := repoFactory.MenuItemRepo().Update(ctx, found); err != nil {
			return errors.Wrap(err, "failed to update menu item")
		}
		item = found

		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to update menu item")
	}

	return item, nil
}

// DeleteMenuItem removes a seller's own item. Orders keep their snapshots, so
// deletion never rewrites history.
func (srv *catalogService) DeleteMenuItem(ctx context.Context, identity *entity.Identity, id uuid.UUID) error {
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		found, err := srv.loadMenuItem(ctx, repoFactory, id)
		if err != nil {
			return err
		}
		if err := access.Authorize(identity, access.ActionDelete, access.MenuItemResource(found)); err != nil {
			return err
		}

		return errors.Wrap(repoFactory.MenuItemRepo().Delete(ctx, found.ID), "failed to delete menu item")
	})
	if err != nil {
		return errors.Wrap(err, "failed to delete menu item")
	}

	srv.logger.Info("Menu item deleted", "menuItemID", id, "by", identity.UserID)

	return nil
}

func (srv *catalogService) loadMenuItem(ctx context.Context, repoFactory repository.RepositoryFactory, id uuid.UUID) (*entity.MenuItem, error) {
	item, err := repoFactory.MenuItemRepo().FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrMenuItemNotFound) {
			return nil, domainerrors.ErrMenuItemNotFound
		}

		return nil, errors.Wrap(err, "failed to find menu item")
	}

	return item, nil
}
