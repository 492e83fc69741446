// Package repository defines the interfaces for the persistence layer.
// These interfaces act as a contract between the domain/application layers
// and the infrastructure layer.
package repository

import (
	"context"
	"errors"
	"time"

	"bistro/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrUserNotFound is a domain-specific error returned when a user is not found.
var ErrUserNotFound = errors.New("user not found")

// SellerFilter narrows public seller listings.
type SellerFilter struct {
	Cuisine string
}

// UserRepository defines the standard operations for user persistence.
type UserRepository interface {
	// FindByID retrieves a single user by their unique ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error)

	// FindByEmail retrieves a single user by their email address.
	FindByEmail(ctx context.Context, email string) (*entity.User, error)

	// Create persists a new user entity to the storage.
	Create(ctx context.Context, user *entity.User) error

	// Update modifies an existing user entity in the storage.
	Update(ctx context.Context, user *entity.User) error

	// ListSellers returns a page of seller accounts, newest first, together
	// with the total count of the filtered set.
	ListSellers(ctx context.Context, filter SellerFilter, page Page) (*PageResult[*entity.User], error)

	// CountByRole counts users holding a role; used by the dashboard.
	CountByRole(ctx context.Context, role entity.Role) (int64, error)

	// CountByRoleCreatedBetween counts users of a role created in [from, to).
	CountByRoleCreatedBetween(ctx context.Context, role entity.Role, from, to time.Time) (int64, error)
}
