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

// promoRepository implements the repository.PromoRepository interface using GORM.
type promoRepository struct {
	db *gorm.DB
}

// NewPromoRepository is the constructor for promoRepository.
func NewPromoRepository(db *gorm.DB) repository.PromoRepository {
	return &promoRepository{db: db}
}

func (repo *promoRepository) Create(ctx context.Context, promo *entity.Promo) error {
	m := fromPromoDomain(promo)

	if err := repo.db.WithContext(ctx).Create(m).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return domainerrors.ErrConflict.WrapMessage("promo code already exists")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create promo")
	}

	promo.ID = m.ID
	promo.CreatedAt = m.CreatedAt
	promo.UpdatedAt = m.UpdatedAt

	return nil
}

func (repo *promoRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Promo, error) {
	var m model.PromoModel
	err := repo.db.WithContext(ctx).Where("id = ?", id).First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrPromoNotFound
		}

		return nil, errors.Wrap(err, "failed to find promo by id")
	}

	return toPromoDomain(&m), nil
}

// FindByCode looks up the canonical uppercase code.
func (repo *promoRepository) FindByCode(ctx context.Context, code string) (*entity.Promo, error) {
	var m model.PromoModel
	err := repo.db.WithContext(ctx).Where("code = ?", code).First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrPromoNotFound
		}

		return nil, errors.Wrap(err, "failed to find promo by code")
	}

	return toPromoDomain(&m), nil
}

func (repo *promoRepository) Update(ctx context.Context, promo *entity.Promo) error {
	result := repo.db.WithContext(ctx).
		Model(&model.PromoModel{}).
		Where("id = ?", promo.ID).
		Updates(map[string]any{
			"code":      promo.Code,
			"discount":  promo.Discount,
			"available": promo.Available,
		})
	if result.Error != nil {
		if isUniqueConstraintViolation(result.Error) {
			return domainerrors.ErrConflict.WrapMessage("promo code already exists")
		}

		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to update promo")
	}
	if result.RowsAffected == 0 {
		return repository.ErrPromoNotFound
	}

	return nil
}

func (repo *promoRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := repo.db.WithContext(ctx).Where("id = ?", id).Delete(&model.PromoModel{})
	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to delete promo")
	}
	if result.RowsAffected == 0 {
		return repository.ErrPromoNotFound
	}

	return nil
}

func (repo *promoRepository) List(ctx context.Context, page repository.Page) (*repository.PageResult[*entity.Promo], error) {
	query := repo.db.WithContext(ctx).Model(&model.PromoModel{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, errors.Wrap(err, "failed to count promos")
	}

	var models []model.PromoModel
	err := query.
		Order("created_at DESC").
		Offset(page.Offset()).
		Limit(page.Size).
		Find(&models).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to list promos")
	}

	items := make([]*entity.Promo, 0, len(models))
	for i := range models {
		items = append(items, toPromoDomain(&models[i]))
	}

	return &repository.PageResult[*entity.Promo]{
		Items:      items,
		TotalCount: total,
		Page:       page.Number,
		Size:       page.Size,
	}, nil
}

func toPromoDomain(m *model.PromoModel) *entity.Promo {
	return &entity.Promo{
		ID:        m.ID,
		Code:      m.Code,
		Discount:  m.Discount,
		Available: m.Available,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

func fromPromoDomain(promo *entity.Promo) *model.PromoModel {
	return &model.PromoModel{
		ID:        promo.ID,
		Code:      promo.Code,
		Discount:  promo.Discount,
		Available: promo.Available,
	}
}
