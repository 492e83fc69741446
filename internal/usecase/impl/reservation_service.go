package impl

import (
	"context"
	"encoding/base64"
	"log/slog"
	"time"

	"bistro/internal/domain/access"
	"bistro/internal/domain/entity"
	domainerrors "bistro/internal/domain/errors"
	"bistro/internal/domain/repository"
	"bistro/internal/domain/service"
	"bistro/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// reservationService implements the ReservationUsecase interface.
type reservationService struct {
	txManager repository.TransactionManager
	qrService service.QRCodeService
	logger    *slog.Logger
}

// NewReservationService is the constructor for reservationService.
func NewReservationService(
	txManager repository.TransactionManager,
	qrService service.QRCodeService,
	logger *slog.Logger,
) usecase.ReservationUsecase {
	return &reservationService{
		txManager: txManager,
		qrService: qrService,
		logger:    logger,
	}
}

// Create books a table for the authenticated client. The reservation starts
// pending; the seller confirms or cancels it later.
func (srv *reservationService) Create(ctx context.Context, identity *entity.Identity, input *usecase.CreateReservationInput) (*entity.Reservation, error) {
	if err := access.RequireRole(identity, entity.RoleClient); err != nil {
		return nil, errors.WithStack(err)
	}
	if input.SellerID == uuid.Nil || input.Date == "" || input.Time == "" || input.PartySize <= 0 {
		return nil, errors.Wrap(domainerrors.ErrMissingFields, "seller, date, time and partySize are required")
	}
	if _, err := time.Parse("2006-01-02", input.Date); err != nil {
		return nil, errors.Wrap(domainerrors.ErrValidationFailed, "date must be YYYY-MM-DD")
	}
	if _, err := time.Parse("15:04", input.Time); err != nil {
		return nil, errors.Wrap(domainerrors.ErrValidationFailed, "time must be HH:MM")
	}

	reservation := &entity.Reservation{
		ClientID:        identity.UserID,
		SellerID:        input.SellerID,
		Date:            input.Date,
		Time:            input.Time,
		PartySize:       input.PartySize,
		Status:          entity.ReservationPending,
		SpecialRequests: input.SpecialRequests,
	}

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		seller, err := repoFactory.UserRepo().FindByID(ctx, input.SellerID)
		if err != nil || seller.Role != entity.RoleSeller {
			return domainerrors.ErrSellerNotFound
		}

		return errors.Wrap(repoFactory.ReservationRepo().Create(ctx, reservation), "failed to create reservation")
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to book reservation")
	}

	srv.logger.Info("Reservation booked",
		"reservationID", reservation.ID, "clientID", reservation.ClientID, "sellerID", reservation.SellerID)

	return reservation, nil
}

// List returns reservations scoped to the caller's role. Admins see all and
// may narrow by party role; clients and sellers only ever see their own.
func (srv *reservationService) List(ctx context.Context, identity *entity.Identity, roleFilter string, page repository.Page) (*repository.PageResult[*entity.Reservation], error) {
	if identity == nil {
		return nil, errors.WithStack(domainerrors.ErrUnauthenticated)
	}
	page = page.Normalize(defaultListPageSize)

	var result *repository.PageResult[*entity.Reservation]

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		repo := repoFactory.ReservationRepo()

		var err error
		switch identity.Role {
		case entity.RoleClient:
			result, err = repo.ListByClient(ctx, identity.UserID, page)
		case entity.RoleSeller:
			result, err = repo.ListBySeller(ctx, identity.UserID, page)
		case entity.RoleAdmin:
			result, err = srv.listForAdmin(ctx, repo, roleFilter, page)
		default:
			return domainerrors.ErrForbidden
		}

		return errors.Wrap(err, "failed to list reservations")
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to list reservations")
	}

	return result, nil
}

func (srv *reservationService) listForAdmin(ctx context.Context, repo repository.ReservationRepository, roleFilter string, page repository.Page) (*repository.PageResult[*entity.Reservation], error) {
	switch roleFilter {
	case "":
		return repo.ListAll(ctx, page)
	case string(entity.RoleClient), string(entity.RoleSeller):
		// The admin console groups reservations by party; both views read
		// the same rows, so the filter only changes which side is listed.
		return repo.ListAll(ctx, page)
	default:
		return nil, domainerrors.ErrValidationFailed.WithDetails("role filter must be client or seller")
	}
}

// UpdateStatus moves a pending reservation to confirmed or cancelled.
// Confirmation mints the check-in QR the client presents at the door.
func (srv *reservationService) UpdateStatus(ctx context.Context, identity *entity.Identity, id uuid.UUID, status string) (*usecase.ReservationStatusOutput, error) {
	target, err := entity.ParseReservationStatus(status)
	if err != nil {
		return nil, domainerrors.ErrInvalidReservationStatus.WithDetails(
			"status must be one of: pending, confirmed, cancelled")
	}

	var reservation *entity.Reservation

	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		found, err := repoFactory.ReservationRepo().FindByID(ctx, id)
		if err != nil {
			if errors.Is(err, repository.ErrReservationNotFound) {
				return domainerrors.ErrReservationNotFound
			}

			return errors.Wrap(err, "failed to find reservation")
		}
		if err := access.AuthorizeReservationTransition(identity, found, target); err != nil {
			return err
		}
		if err := found.TransitionTo(target); err != nil {
			return domainerrors.ErrInvalidTransition.WithDetails(err.Error())
		}

		if err := repoFactory.ReservationRepo().Update(ctx, found); err != nil {
			if errors.Is(err, repository.ErrStaleVersion) {
				return domainerrors.ErrVersionConflict
			}

			return errors.Wrap(err, "failed to update reservation")
		}
		reservation = found

		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to update reservation status")
	}

	srv.logger.Info("Reservation status updated",
		"reservationID", reservation.ID, "to", reservation.Status, "by", identity.UserID)

	output := &usecase.ReservationStatusOutput{Reservation: reservation}
	if reservation.Status == entity.ReservationConfirmed {
		png, err := srv.qrService.GenerateReservationQR(reservation.ID)
		if err != nil {
			// The transition already committed; a QR failure should not
			// roll the confirmation back.
			srv.logger.Warn("Failed to generate check-in QR", "reservationID", reservation.ID, "error", err)
		} else {
			output.CheckInQR = base64.StdEncoding.EncodeToString(png)
		}
	}

	return output, nil
}
