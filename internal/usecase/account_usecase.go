// Package usecase contains the application-specific business rules.
package usecase

import (
	"context"

	"bistro/internal/domain/entity"

	"github.com/google/uuid"
)

// AccountUsecase defines registration, login, identity resolution and email
// verification.
type AccountUsecase interface {
	Register(ctx context.Context, input *RegisterInput) (*RegisterOutput, error)
	Login(ctx context.Context, input *LoginInput) (*LoginOutput, error)

	// VerifyEmail consumes a signed verification token, marks the user
	// verified and deletes the one-time record.
	VerifyEmail(ctx context.Context, token string) error

	// ResolveIdentity maps an authenticated user id to a persisted identity.
	// It fails closed: a missing user row is an authentication failure, not
	// a default identity.
	ResolveIdentity(ctx context.Context, userID uuid.UUID) (*entity.Identity, error)

	GetProfile(ctx context.Context, userID uuid.UUID) (*entity.User, error)
	UpdateProfile(ctx context.Context, userID uuid.UUID, input *UpdateProfileInput) error
}

// --- Input/Output DTOs ---

// RegisterInput defines the data required to create an account. Role may be
// "client" or "seller"; seller registrations carry the profile fields.
type RegisterInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Name     string `json:"name" validate:"required"`
	Phone    string `json:"phone,omitempty"`
	Address  string `json:"address,omitempty"`
	Role     string `json:"role" validate:"required,oneof=client seller"`

	Cuisine       string `json:"cuisine,omitempty"`
	PriceRange    string `json:"price_range,omitempty"`
	BusinessHours string `json:"business_hours,omitempty"`
	Description   string `json:"description,omitempty"`
}

// RegisterOutput returns the created account and the verification token the
// mail collaborator will deliver.
type RegisterOutput struct {
	User              *entity.User `json:"user"`
	VerificationToken string       `json:"-"`
}

// LoginInput defines the credentials for a login request.
type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginOutput carries the token pair and the logged-in user.
type LoginOutput struct {
	AccessToken  string       `json:"access_token"`
	RefreshToken string       `json:"refresh_token"`
	User         *entity.User `json:"user"`
}

// UpdateProfileInput defines the mutable profile fields; nil means unchanged.
type UpdateProfileInput struct {
	Name    *string `json:"name,omitempty"`
	Phone   *string `json:"phone,omitempty"`
	Address *string `json:"address,omitempty"`

	Cuisine       *string `json:"cuisine,omitempty"`
	PriceRange    *string `json:"price_range,omitempty"`
	BusinessHours *string `json:"business_hours,omitempty"`
	Description   *string `json:"description,omitempty"`
}
