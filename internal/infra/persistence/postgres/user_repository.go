package postgres

import (
	"context"
	"time"

	"bistro/internal/domain/entity"
	domainerrors "bistro/internal/domain/errors"
	"bistro/internal/domain/repository"
	"bistro/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// userRepository implements the repository.UserRepository interface using GORM.
type userRepository struct {
	db *gorm.DB
}

// NewUserRepository is the constructor for userRepository.
func NewUserRepository(db *gorm.DB) repository.UserRepository {
	return &userRepository{db: db}
}

// FindByID retrieves a single user by their unique ID, preloading the seller profile.
func (repo *userRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	var userM model.UserModel
	err := repo.db.WithContext(ctx).
		Preload("SellerProfile").
		Where("id = ?", id).
		First(&userM).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrUserNotFound
		}

		return nil, errors.Wrap(err, "failed to find user by id")
	}

	return toUserDomain(&userM), nil
}

// FindByEmail retrieves a single user by their email address.
func (repo *userRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	var userM model.UserModel
	err := repo.db.WithContext(ctx).
		Preload("SellerProfile").
		Where("email = ?", email).
		First(&userM).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrUserNotFound
		}

		return nil, errors.Wrap(err, "failed to find user by email")
	}

	return toUserDomain(&userM), nil
}

// Create persists a new user entity, including the seller profile when present.
func (repo *userRepository) Create(ctx context.Context, user *entity.User) error {
	userM := fromUserDomain(user)

	if err := repo.db.WithContext(ctx).Create(userM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return domainerrors.ErrUserAlreadyExists.WrapMessage("email already exists")
		}
		if isNotNullConstraintViolation(err) {
			return domainerrors.ErrMissingFields.WrapMessage("missing required user information")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create user")
	}

	user.ID = userM.ID
	user.CreatedAt = userM.CreatedAt
	user.UpdatedAt = userM.UpdatedAt
	if user.SellerProfile != nil && userM.SellerProfile != nil {
		user.SellerProfile.UserID = userM.SellerProfile.UserID
		user.SellerProfile.UpdatedAt = userM.SellerProfile.UpdatedAt
	}

	return nil
}

// Update modifies an existing user entity, including its seller profile.
func (repo *userRepository) Update(ctx context.Context, user *entity.User) error {
	userM := fromUserDomain(user)

	err := repo.db.WithContext(ctx).
		Session(&gorm.Session{FullSaveAssociations: true}).
		Save(userM).Error
	if err != nil {
		if isUniqueConstraintViolation(err) {
			return domainerrors.ErrUserAlreadyExists.WrapMessage("email already exists")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to update user")
	}

	user.UpdatedAt = userM.UpdatedAt

	return nil
}

// ListSellers returns a page of seller accounts, newest first.
func (repo *userRepository) ListSellers(ctx context.Context, filter repository.SellerFilter, page repository.Page) (*repository.PageResult[*entity.User], error) {
	query := repo.db.WithContext(ctx).
		Model(&model.UserModel{}).
		Where("role = ?", string(entity.RoleSeller))
	if filter.Cuisine != "" {
		query = query.
			Joins("JOIN seller_profiles ON seller_profiles.user_id = users.id").
			Where("seller_profiles.cuisine = ?", filter.Cuisine)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, errors.Wrap(err, "failed to count sellers")
	}

	var models []model.UserModel
	err := query.
		Preload("SellerProfile").
		Order("users.created_at DESC").
		Offset(page.Offset()).
		Limit(page.Size).
		Find(&models).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to list sellers")
	}

	items := make([]*entity.User, 0, len(models))
	for i := range models {
		items = append(items, toUserDomain(&models[i]))
	}

	return &repository.PageResult[*entity.User]{
		Items:      items,
		TotalCount: total,
		Page:       page.Number,
		Size:       page.Size,
	}, nil
}

// CountByRole counts users holding a role.
func (repo *userRepository) CountByRole(ctx context.Context, role entity.Role) (int64, error) {
	var count int64
	err := repo.db.WithContext(ctx).
		Model(&model.UserModel{}).
		Where("role = ?", string(role)).
		Count(&count).Error

	return count, errors.Wrap(err, "failed to count users by role")
}

// CountByRoleCreatedBetween counts users of a role created in [from, to).
func (repo *userRepository) CountByRoleCreatedBetween(ctx context.Context, role entity.Role, from, to time.Time) (int64, error) {
	var count int64
	err := repo.db.WithContext(ctx).
		Model(&model.UserModel{}).
		Where("role = ? AND created_at >= ? AND created_at < ?", string(role), from, to).
		Count(&count).Error

	return count, errors.Wrap(err, "failed to count users by role and window")
}

// toUserDomain maps the persistence model back to a pure domain entity.
func toUserDomain(m *model.UserModel) *entity.User {
	user := &entity.User{
		ID:           m.ID,
		Email:        m.Email,
		Name:         m.Name,
		Phone:        m.Phone,
		Address:      m.Address,
		Role:         entity.Role(m.Role),
		Verified:     m.Verified,
		PasswordHash: m.PasswordHash,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
	if m.SellerProfile != nil {
		user.SellerProfile = &entity.SellerProfile{
			UserID:        m.SellerProfile.UserID,
			Cuisine:       m.SellerProfile.Cuisine,
			PriceRange:    m.SellerProfile.PriceRange,
			BusinessHours: m.SellerProfile.BusinessHours,
			Description:   m.SellerProfile.Description,
			Rating:        m.SellerProfile.Rating,
			UpdatedAt:     m.SellerProfile.UpdatedAt,
		}
	}

	return user
}

// fromUserDomain maps a domain entity to its persistence model.
func fromUserDomain(user *entity.User) *model.UserModel {
	m := &model.UserModel{
		ID:           user.ID,
		Email:        user.Email,
		Name:         user.Name,
		Phone:        user.Phone,
		Address:      user.Address,
		Role:         string(user.Role),
		Verified:     user.Verified,
		PasswordHash: user.PasswordHash,
		CreatedAt:    user.CreatedAt,
		UpdatedAt:    user.UpdatedAt,
	}
	if user.SellerProfile != nil {
		m.SellerProfile = &model.SellerProfileModel{
			UserID:        user.SellerProfile.UserID,
			Cuisine:       user.SellerProfile.Cuisine,
			PriceRange:    user.SellerProfile.PriceRange,
			BusinessHours: user.SellerProfile.BusinessHours,
			Description:   user.SellerProfile.Description,
			Rating:        user.SellerProfile.Rating,
		}
	}

	return m
}
