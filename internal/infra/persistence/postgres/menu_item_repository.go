package postgres

import (
	"context"

	"bistro/internal/domain/entity"
	domainerrors "bistro/internal/domain/errors"
	"bistro/internal/domain/repository"
	"bistro/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// menuItemRepository implements the repository.MenuItemRepository interface using GORM.
type menuItemRepository struct {
	db *gorm.DB
}

// NewMenuItemRepository is the constructor for menuItemRepository.
func NewMenuItemRepository(db *gorm.DB) repository.MenuItemRepository {
	return &menuItemRepository{db: db}
}

func (repo *menuItemRepository) Create(ctx context.Context, item *entity.MenuItem) error {
	m := fromMenuItemDomain(item)

	if err := repo.db.WithContext(ctx).Create(m).Error; err != nil {
		if isForeignKeyConstraintViolation(err) {
			return domainerrors.ErrSellerNotFound.WrapMessage("menu item references a missing seller")
		}
		if isNotNullConstraintViolation(err) {
			return domainerrors.ErrMissingFields.WrapMessage("missing required menu item information")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create menu item")
	}

	item.ID = m.ID
	item.CreatedAt = m.CreatedAt
	item.UpdatedAt = m.UpdatedAt

	return nil
}

func (repo *menuItemRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.MenuItem, error) {
	var m model.MenuItemModel
	err := repo.db.WithContext(ctx).Where("id = ?", id).First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrMenuItemNotFound
		}

		return nil, errors.Wrap(err, "failed to find menu item by id")
	}

	return toMenuItemDomain(&m), nil
}

func (repo *menuItemRepository) Update(ctx context.Context, item *entity.MenuItem) error {
	m := fromMenuItemDomain(item)

	result := repo.db.WithContext(ctx).
		Model(&model.MenuItemModel{}).
		Where("id = ?", item.ID).
		Select("*").
		Omit("id", "seller_id", "created_at").
		Updates(m)
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to update menu item")
	}
	if result.RowsAffected == 0 {
		return repository.ErrMenuItemNotFound
	}

	return nil
}

func (repo *menuItemRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := repo.db.WithContext(ctx).Where("id = ?", id).Delete(&model.MenuItemModel{})
	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to delete menu item")
	}
	if result.RowsAffected == 0 {
		return repository.ErrMenuItemNotFound
	}

	return nil
}

// List returns a page of menu items matching the filter, newest first.
func (repo *menuItemRepository) List(ctx context.Context, filter repository.MenuItemFilter, page repository.Page) (*repository.PageResult[*entity.MenuItem], error) {
	query := repo.db.WithContext(ctx).Model(&model.MenuItemModel{})
	if filter.SellerID != nil {
		query = query.Where("seller_id = ?", *filter.SellerID)
	}
	if filter.Category != "" {
		query = query.Where("category = ?", filter.Category)
	}
	if filter.AvailableOnly {
		query = query.Where("available = ?", true)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, errors.Wrap(err, "failed to count menu items")
	}

	var models []model.MenuItemModel
	err := query.
		Order("created_at DESC").
		Offset(page.Offset()).
		Limit(page.Size).
		Find(&models).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to list menu items")
	}

	items := make([]*entity.MenuItem, 0, len(models))
	for i := range models {
		items = append(items, toMenuItemDomain(&models[i]))
	}

	return &repository.PageResult[*entity.MenuItem]{
		Items:      items,
		TotalCount: total,
		Page:       page.Number,
		Size:       page.Size,
	}, nil
}

// Categories returns the distinct category names in use.
func (repo *menuItemRepository) Categories(ctx context.Context) ([]string, error) {
	var categories []string
	err := repo.db.WithContext(ctx).
		Model(&model.MenuItemModel{}).
		Distinct("category").
		Order("category ASC").
		Pluck("category", &categories).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to list categories")
	}

	return categories, nil
}

func toMenuItemDomain(m *model.MenuItemModel) *entity.MenuItem {
	return &entity.MenuItem{
		ID:              m.ID,
		SellerID:        m.SellerID,
		Name:            m.Name,
		Description:     m.Description,
		Price:           m.Price,
		Category:        m.Category,
		Available:       m.Available,
		PrepTimeMinutes: m.PrepTimeMinutes,
		Vegetarian:      m.Vegetarian,
		Vegan:           m.Vegan,
		GlutenFree:      m.GlutenFree,
		ImageURL:        m.ImageURL,
		CreatedAt:       m.CreatedAt,
		UpdatedAt:       m.UpdatedAt,
	}
}

func fromMenuItemDomain(item *entity.MenuItem) *model.MenuItemModel {
	return &model.MenuItemModel{
		ID:              item.ID,
		SellerID:        item.SellerID,
		Name:            item.Name,
		Description:     item.Description,
		Price:           item.Price,
		Category:        item.Category,
		Available:       item.Available,
		PrepTimeMinutes: item.PrepTimeMinutes,
		Vegetarian:      item.Vegetarian,
		Vegan:           item.Vegan,
		GlutenFree:      item.GlutenFree,
		ImageURL:        item.ImageURL,
	}
}
