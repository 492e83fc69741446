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

// reservationRepository implements the repository.ReservationRepository interface using GORM.
type reservationRepository struct {
	db *gorm.DB
}

// NewReservationRepository is the constructor for reservationRepository.
func NewReservationRepository(db *gorm.DB) repository.ReservationRepository {
	return &reservationRepository{db: db}
}

func (repo *reservationRepository) Create(ctx context.Context, reservation *entity.Reservation) error {
	m := fromReservationDomain(reservation)

	if err := repo.db.WithContext(ctx).Create(m).Error; err != nil {
		if isForeignKeyConstraintViolation(err) {
			return domainerrors.ErrSellerNotFound.WrapMessage("reservation references a missing party")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create reservation")
	}

	reservation.ID = m.ID
	reservation.CreatedAt = m.CreatedAt
	reservation.UpdatedAt = m.UpdatedAt

	return nil
}

func (repo *reservationRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Reservation, error) {
	var m model.ReservationModel
	err := repo.db.WithContext(ctx).Where("id = ?", id).First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrReservationNotFound
		}

		return nil, errors.Wrap(err, "failed to find reservation by id")
	}

	return toReservationDomain(&m), nil
}

// Update persists status mutations guarded by the entity's Version.
func (repo *reservationRepository) Update(ctx context.Context, reservation *entity.Reservation) error {
	result := repo.db.WithContext(ctx).
		Model(&model.ReservationModel{}).
		Where("id = ? AND version = ?", reservation.ID, reservation.Version).
		Updates(map[string]any{
			"status":  string(reservation.Status),
			"version": reservation.Version + 1,
		})
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to update reservation")
	}
	if result.RowsAffected == 0 {
		var exists int64
		if err := repo.db.WithContext(ctx).
			Model(&model.ReservationModel{}).
			Where("id = ?", reservation.ID).
			Count(&exists).Error; err != nil {
			return errors.Wrap(err, "failed to check reservation existence")
		}
		if exists == 0 {
			return repository.ErrReservationNotFound
		}

		return repository.ErrStaleVersion
	}

	reservation.Version++

	return nil
}

// ListBySeller returns the seller's reservations, newest first.
func (repo *reservationRepository) ListBySeller(ctx context.Context, sellerID uuid.UUID, page repository.Page) (*repository.PageResult[*entity.Reservation], error) {
	return repo.list(repo.db.WithContext(ctx).
		Model(&model.ReservationModel{}).
		Where("seller_id = ?", sellerID), page)
}

// ListByClient returns the client's reservations, newest first.
func (repo *reservationRepository) ListByClient(ctx context.Context, clientID uuid.UUID, page repository.Page) (*repository.PageResult[*entity.Reservation], error) {
	return repo.list(repo.db.WithContext(ctx).
		Model(&model.ReservationModel{}).
		Where("client_id = ?", clientID), page)
}

// ListAll returns every reservation, newest first. Admin listings only.
func (repo *reservationRepository) ListAll(ctx context.Context, page repository.Page) (*repository.PageResult[*entity.Reservation], error) {
	return repo.list(repo.db.WithContext(ctx).Model(&model.ReservationModel{}), page)
}

func (repo *reservationRepository) list(query *gorm.DB, page repository.Page) (*repository.PageResult[*entity.Reservation], error) {
	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, errors.Wrap(err, "failed to count reservations")
	}

	var models []model.ReservationModel
	err := query.
		Order("created_at DESC").
		Offset(page.Offset()).
		Limit(page.Size).
		Find(&models).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to list reservations")
	}

	items := make([]*entity.Reservation, 0, len(models))
	for i := range models {
		items = append(items, toReservationDomain(&models[i]))
	}

	return &repository.PageResult[*entity.Reservation]{
		Items:      items,
		TotalCount: total,
		Page:       page.Number,
		Size:       page.Size,
	}, nil
}

func toReservationDomain(m *model.ReservationModel) *entity.Reservation {
	return &entity.Reservation{
		ID:              m.ID,
		ClientID:        m.ClientID,
		SellerID:        m.SellerID,
		Date:            m.Date,
		Time:            m.Time,
		PartySize:       m.PartySize,
		Status:          entity.ReservationStatus(m.Status),
		SpecialRequests: m.SpecialRequests,
		Version:         m.Version,
		CreatedAt:       m.CreatedAt,
		UpdatedAt:       m.UpdatedAt,
	}
}

func fromReservationDomain(reservation *entity.Reservation) *model.ReservationModel {
	return &model.ReservationModel{
		ID:              reservation.ID,
		ClientID:        reservation.ClientID,
		SellerID:        reservation.SellerID,
		Date:            reservation.Date,
		Time:            reservation.Time,
		PartySize:       reservation.PartySize,
		Status:          string(reservation.Status),
		SpecialRequests: reservation.SpecialRequests,
		Version:         reservation.Version,
	}
}
