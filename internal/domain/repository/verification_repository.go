package repository

import (
	"context"
	"errors"

	"bistro/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrVerificationNotFound is returned when a token has no backing record,
// which is how a consumed token looks on replay.
var ErrVerificationNotFound = errors.New("verification record not found")

// VerificationRepository stores the one-time email verification records.
type VerificationRepository interface {
	Create(ctx context.Context, verification *entity.EmailVerification) error

	FindByToken(ctx context.Context, token string) (*entity.EmailVerification, error)

	// Delete consumes the record; a second verify with the same token then
	// finds nothing.
	Delete(ctx context.Context, id uuid.UUID) error
}
