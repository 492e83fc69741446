package usecase

import (
	"context"

	"bistro/internal/domain/entity"
	"bistro/internal/domain/repository"

	"github.com/google/uuid"
)

// ReviewUsecase defines site review operations: anyone authenticated writes,
// everyone reads, admins reply and delete.
type ReviewUsecase interface {
	Create(ctx context.Context, identity *entity.Identity, input *ReviewInput) (*entity.SiteReview, error)
	List(ctx context.Context, page repository.Page) (*repository.PageResult[*entity.SiteReview], error)
	Reply(ctx context.Context, identity *entity.Identity, id uuid.UUID, reply string) (*entity.SiteReview, error)
	Delete(ctx context.Context, identity *entity.Identity, id uuid.UUID) error
}

// ReviewInput defines the review payload; rating is 1-5.
type ReviewInput struct {
	Rating  int    `json:"rating" validate:"required,min=1,max=5"`
	Comment string `json:"comment" validate:"required"`
}
