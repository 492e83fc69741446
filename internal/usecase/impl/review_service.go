package impl

import (
	"context"
	"log/slog"
	"strings"

	"bistro/internal/domain/access"
	"bistro/internal/domain/entity"
	domainerrors "bistro/internal/domain/errors"
	"bistro/internal/domain/repository"
	"bistro/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// reviewService implements the ReviewUsecase interface.
type reviewService struct {
	txManager repository.TransactionManager
	logger    *slog.Logger
}

// NewReviewService is the constructor for reviewService.
func NewReviewService(txManager repository.TransactionManager, logger *slog.Logger) usecase.ReviewUsecase {
	return &reviewService{
		txManager: txManager,
		logger:    logger,
	}
}

// Create posts a site review under the authenticated user's identity.
func (srv *reviewService) Create(ctx context.Context, identity *entity.Identity, input *usecase.ReviewInput) (*entity.SiteReview, error) {
	if identity == nil {
		return nil, errors.WithStack(domainerrors.ErrUnauthenticated)
	}
	if strings.TrimSpace(input.Comment) == "" {
		return nil, errors.Wrap(domainerrors.ErrMissingFields, "comment is required")
	}
	if input.Rating < 1 || input.Rating > 5 {
		return nil, errors.Wrap(domainerrors.ErrValidationFailed, "rating must be between 1 and 5")
	}

	review := &entity.SiteReview{
		AuthorID: identity.UserID,
		Rating:   input.Rating,
		Comment:  strings.TrimSpace(input.Comment),
	}

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		return errors.Wrap(repoFactory.ReviewRepo().Create(ctx, review), "failed to create review")
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to create review")
	}

	srv.logger.Info("Review posted", "reviewID", review.ID, "authorID", review.AuthorID)

	return review, nil
}

// List returns site reviews, newest first. Public.
func (srv *reviewService) List(ctx context.Context, page repository.Page) (*repository.PageResult[*entity.SiteReview], error) {
	page = page.Normalize(defaultListPageSize)

	var result *repository.PageResult[*entity.SiteReview]

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		found, err := repoFactory.ReviewRepo().List(ctx, page)
		if err != nil {
			return errors.Wrap(err, "failed to list reviews")
		}
		result = found

		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to list reviews")
	}

	return result, nil
}

// Reply records an admin response on a review.
func (srv *reviewService) Reply(ctx context.Context, identity *entity.Identity, id uuid.UUID, reply string) (*entity.SiteReview, error) {
	if err := access.RequireRole(identity, entity.RoleAdmin); err != nil {
		return nil, errors.WithStack(err)
	}
	if strings.TrimSpace(reply) == "" {
		return nil, errors.Wrap(domainerrors.ErrMissingFields, "reply is required")
	}

	var review *entity.SiteReview

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		found, err := srv.loadReview(ctx, repoFactory, id)
		if err != nil {
			return err
		}

		found.Reply = strings.TrimSpace(reply)
		if err := repoFactory.ReviewRepo().Update(ctx, found); err != nil {
			return errors.Wrap(err, "failed to update review")
		}
		review = found

		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to reply to review")
	}

	return review, nil
}

// Delete removes a review: the author may retract their own, admins may
// remove any.
func (srv *reviewService) Delete(ctx context.Context, identity *entity.Identity, id uuid.UUID) error {
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		found, err := srv.loadReview(ctx, repoFactory, id)
		if err != nil {
			return err
		}
		if err := access.Authorize(identity, access.ActionDelete, access.ReviewResource(found)); err != nil {
			return err
		}

		return errors.Wrap(repoFactory.ReviewRepo().Delete(ctx, found.ID), "failed to delete review")
	})
	if err != nil {
		return errors.Wrap(err, "failed to delete review")
	}

	srv.logger.Info("Review deleted", "reviewID", id, "by", identity.UserID)

	return nil
}

func (srv *reviewService) loadReview(ctx context.Context, repoFactory repository.RepositoryFactory, id uuid.UUID) (*entity.SiteReview, error) {
	review, err := repoFactory.ReviewRepo().FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrReviewNotFound) {
			return nil, domainerrors.ErrReviewNotFound
		}

		return nil, errors.Wrap(err, "failed to find review")
	}

	return review, nil
}
