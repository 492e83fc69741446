package repository

import (
	"context"
	"errors"

	"bistro/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrReviewNotFound is returned when a review id has no row.
var ErrReviewNotFound = errors.New("review not found")

// ReviewRepository defines the persistence operations for site reviews.
type ReviewRepository interface {
	Create(ctx context.Context, review *entity.SiteReview) error

	FindByID(ctx context.Context, id uuid.UUID) (*entity.SiteReview, error)

	// Update persists the responder reply.
	Update(ctx context.Context, review *entity.SiteReview) error

	Delete(ctx context.Context, id uuid.UUID) error

	List(ctx context.Context, page Page) (*PageResult[*entity.SiteReview], error)
}
