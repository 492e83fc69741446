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

// reviewRepository implements the repository.ReviewRepository interface using GORM.
type reviewRepository struct {
	db *gorm.DB
}

// NewReviewRepository is the constructor for reviewRepository.
func NewReviewRepository(db *gorm.DB) repository.ReviewRepository {
	return &reviewRepository{db: db}
}

func (repo *reviewRepository) Create(ctx context.Context, review *entity.SiteReview) error {
	m := fromReviewDomain(review)

	if err := repo.db.WithContext(ctx).Create(m).Error; err != nil {
		if isForeignKeyConstraintViolation(err) {
			return domainerrors.ErrUserNotFound.WrapMessage("review references a missing author")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create review")
	}

	review.ID = m.ID
	review.CreatedAt = m.CreatedAt
	review.UpdatedAt = m.UpdatedAt

	return nil
}

func (repo *reviewRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.SiteReview, error) {
	var m model.SiteReviewModel
	err := repo.db.WithContext(ctx).Where("id = ?", id).First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrReviewNotFound
		}

		return nil, errors.Wrap(err, "failed to find review by id")
	}

	return toReviewDomain(&m), nil
}

// Update persists the responder reply.
func (repo *reviewRepository) Update(ctx context.Context, review *entity.SiteReview) error {
	result := repo.db.WithContext(ctx).
		Model(&model.SiteReviewModel{}).
		Where("id = ?", review.ID).
		Update("reply", review.Reply)
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to update review")
	}
	if result.RowsAffected == 0 {
		return repository.ErrReviewNotFound
	}

	return nil
}

func (repo *reviewRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := repo.db.WithContext(ctx).Where("id = ?", id).Delete(&model.SiteReviewModel{})
	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to delete review")
	}
	if result.RowsAffected == 0 {
		return repository.ErrReviewNotFound
	}

	return nil
}

func (repo *reviewRepository) List(ctx context.Context, page repository.Page) (*repository.PageResult[*entity.SiteReview], error) {
	query := repo.db.WithContext(ctx).Model(&model.SiteReviewModel{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, errors.Wrap(err, "failed to count reviews")
	}

	var models []model.SiteReviewModel
	err := query.
		Order("created_at DESC").
		Offset(page.Offset()).
		Limit(page.Size).
		Find(&models).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to list reviews")
	}

	items := make([]*entity.SiteReview, 0, len(models))
	for i := range models {
		items = append(items, toReviewDomain(&models[i]))
	}

	return &repository.PageResult[*entity.SiteReview]{
		Items:      items,
		TotalCount: total,
		Page:       page.Number,
		Size:       page.Size,
	}, nil
}

func toReviewDomain(m *model.SiteReviewModel) *entity.SiteReview {
	return &entity.SiteReview{
		ID:        m.ID,
		AuthorID:  m.AuthorID,
		Rating:    m.Rating,
		Comment:   m.Comment,
		Reply:     m.Reply,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

func fromReviewDomain(review *entity.SiteReview) *model.SiteReviewModel {
	return &model.SiteReviewModel{
		ID:       review.ID,
		AuthorID: review.AuthorID,
		Rating:   review.Rating,
		Comment:  review.Comment,
		Reply:    review.Reply,
	}
}
