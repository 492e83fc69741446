package impl

import (
	"context"
	"log/slog"

	"bistro/internal/domain/access"
	"bistro/internal/domain/entity"
	domainerrors "bistro/internal/domain/errors"
	"bistro/internal/domain/repository"
	"bistro/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// promoService implements the PromoUsecase interface.
type promoService struct {
	txManager repository.TransactionManager
	logger    *slog.Logger
}

// NewPromoService is the constructor for promoService.
func NewPromoService(txManager repository.TransactionManager, logger *slog.Logger) usecase.PromoUsecase {
	return &promoService{
		txManager: txManager,
		logger:    logger,
	}
}

// Create adds a promo code. Admin only; the code is uppercased before storage.
func (srv *promoService) Create(ctx context.Context, identity *entity.Identity, input *usecase.PromoInput) (*entity.Promo, error) {
	if err := access.RequireRole(identity, entity.RoleAdmin); err != nil {
		return nil, errors.WithStack(err)
	}
	if err := validatePromoInput(input); err != nil {
		return nil, err
	}

	promo := &entity.Promo{
		Code:      entity.NormalizePromoCode(input.Code),
		Discount:  input.Discount,
		Available: input.Available,
	}

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		return errors.Wrap(repoFactory.PromoRepo().Create(ctx, promo), "failed to create promo")
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to create promo")
	}

	srv.logger.Info("Promo created", "promoID", promo.ID, "code", promo.Code)

	return promo, nil
}

// Update replaces a promo's code, discount and availability. Admin only.
func (srv *promoService) Update(ctx context.Context, identity *entity.Identity, id uuid.UUID, input *usecase.PromoInput) (*entity.Promo, error) {
	if err := access.RequireRole(identity, entity.RoleAdmin); err != nil {
		return nil, errors.WithStack(err)
	}
	if err := validatePromoInput(input); err != nil {
		return nil, err
	}

	var promo *entity.Promo

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		found, err := srv.loadPromo(ctx, repoFactory, id)
		if err != nil {
			return err
		}

		found.Code = entity.NormalizePromoCode(input.Code)
		found.Discount = input.Discount
		found.Available = input.Available

		if err := repoFactory.PromoRepo().Update(ctx, found); err != nil {
			return errors.Wrap(err, "failed to update promo")
		}
		promo = found

		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to update promo")
	}

	return promo, nil
}

// Delete removes a promo code. Admin only.
func (srv *promoService) Delete(ctx context.Context, identity *entity.Identity, id uuid.UUID) error {
	if err := access.RequireRole(identity, entity.RoleAdmin); err != nil {
		return errors.WithStack(err)
	}

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		if _, err := srv.loadPromo(ctx, repoFactory, id); err != nil {
			return err
		}

		return errors.Wrap(repoFactory.PromoRepo().Delete(ctx, id), "failed to delete promo")
	})
	if err != nil {
		return errors.Wrap(err, "failed to delete promo")
	}

	srv.logger.Info("Promo deleted", "promoID", id, "by", identity.UserID)

	return nil
}

// List returns the promo catalog for the admin console.
func (srv *promoService) List(ctx context.Context, identity *entity.Identity, page repository.Page) (*repository.PageResult[*entity.Promo], error) {
	if err := access.RequireRole(identity, entity.RoleAdmin); err != nil {
		return nil, errors.WithStack(err)
	}
	page = page.Normalize(defaultListPageSize)

	var result *repository.PageResult[*entity.Promo]

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		found, err := repoFactory.PromoRepo().List(ctx, page)
		if err != nil {
			return errors.Wrap(err, "failed to list promos")
		}
		result = found

		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to list promos")
	}

	return result, nil
}

// Apply prices a code against a subtotal. It does not consume or reserve the
// code; checkout re-applies on the server when the order is placed.
func (srv *promoService) Apply(ctx context.Context, input *usecase.ApplyPromoInput) (*usecase.ApplyPromoOutput, error) {
	if input.Code == "" || input.Subtotal <= 0 {
		return nil, errors.Wrap(domainerrors.ErrMissingFields, "code and subtotal are required")
	}
	code := entity.NormalizePromoCode(input.Code)

	var output *usecase.ApplyPromoOutput

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		promo, err := repoFactory.PromoRepo().FindByCode(ctx, code)
		if err != nil {
			if errors.Is(err, repository.ErrPromoNotFound) {
				return domainerrors.ErrPromoNotFound
			}

			return errors.Wrap(err, "failed to find promo")
		}

		discount, err := promo.Apply(input.Subtotal)
		if err != nil {
			return domainerrors.ErrPromoUnavailable
		}

		output = &usecase.ApplyPromoOutput{
			Code:           promo.Code,
			Discount:       promo.Discount,
			DiscountAmount: discount,
			Total:          input.Subtotal - discount,
		}

		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to apply promo")
	}

	return output, nil
}

func (srv *promoService) loadPromo(ctx context.Context, repoFactory repository.RepositoryFactory, id uuid.UUID) (*entity.Promo, error) {
	promo, err := repoFactory.PromoRepo().FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrPromoNotFound) {
			return nil, domainerrors.ErrPromoNotFound
		}

		return nil, errors.Wrap(err, "failed to find promo")
	}

	return promo, nil
}

func validatePromoInput(input *usecase.PromoInput) error {
	if entity.NormalizePromoCode(input.Code) == "" {
		return errors.Wrap(domainerrors.ErrMissingFields, "code is required")
	}
	if err := entity.ValidateDiscount(input.Discount); err != nil {
		return domainerrors.ErrValidationFailed.WithDetails(err.Error())
	}

	return nil
}
