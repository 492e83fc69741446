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

// verificationRepository implements the repository.VerificationRepository interface using GORM.
type verificationRepository struct {
	db *gorm.DB
}

// NewVerificationRepository is the constructor for verificationRepository.
func NewVerificationRepository(db *gorm.DB) repository.VerificationRepository {
	return &verificationRepository{db: db}
}

func (repo *verificationRepository) Create(ctx context.Context, verification *entity.EmailVerification) error {
	m := &model.EmailVerificationModel{
		ID:        verification.ID,
		UserID:    verification.UserID,
		Token:     verification.Token,
		ExpiresAt: verification.ExpiresAt,
	}

	if err := repo.db.WithContext(ctx).Create(m).Error; err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to create verification record")
	}

	verification.ID = m.ID
	verification.CreatedAt = m.CreatedAt

	return nil
}

func (repo *verificationRepository) FindByToken(ctx context.Context, token string) (*entity.EmailVerification, error) {
	var m model.EmailVerificationModel
	err := repo.db.WithContext(ctx).Where("token = ?", token).First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrVerificationNotFound
		}

		return nil, errors.Wrap(err, "failed to find verification record")
	}

	return &entity.EmailVerification{
		ID:        m.ID,
		UserID:    m.UserID,
		Token:     m.Token,
		ExpiresAt: m.ExpiresAt,
		CreatedAt: m.CreatedAt,
	}, nil
}

// Delete consumes the record; a replay with the same token then finds nothing.
func (repo *verificationRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := repo.db.WithContext(ctx).Where("id = ?", id).Delete(&model.EmailVerificationModel{})
	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to delete verification record")
	}
	if result.RowsAffected == 0 {
		return repository.ErrVerificationNotFound
	}

	return nil
}
