package repository

import (
	"context"
	"errors"
	"time"

	"bistro/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrOrderNotFound is returned when an order id has no row.
var ErrOrderNotFound = errors.New("order not found")

// ErrStaleVersion is returned when an optimistic-locking update loses the
// race: the row's version no longer matches the one the caller read.
var ErrStaleVersion = errors.New("stale version")

// OrderStats aggregates a period for the dashboard.
type OrderStats struct {
	Count   int64
	Revenue float64
}

// OrderRepository defines the persistence operations for orders.
type OrderRepository interface {
	// Create persists a new order with its item snapshots.
	Create(ctx context.Context, order *entity.Order) error

	// FindByID retrieves an order including its items.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Order, error)

	// Update persists status/payment mutations guarded by the entity's
	// Version; returns ErrStaleVersion on a lost race.
	Update(ctx context.Context, order *entity.Order) error

	// Delete removes an order and its items.
	Delete(ctx context.Context, id uuid.UUID) error

	// ListBySeller returns the seller's orders, newest first.
	ListBySeller(ctx context.Context, sellerID uuid.UUID, page Page) (*PageResult[*entity.Order], error)

	// ListByClient returns the client's orders, newest first.
	ListByClient(ctx context.Context, clientID uuid.UUID, page Page) (*PageResult[*entity.Order], error)

	// StatsBetween aggregates non-cancelled orders created in [from, to);
	// a nil sellerID means marketplace-wide.
	StatsBetween(ctx context.Context, sellerID *uuid.UUID, from, to time.Time) (OrderStats, error)
}
