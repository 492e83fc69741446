package service

import (
	"context"
	"time"
)

// OrderEvent describes an order status change for downstream consumers
// (mail/notification workers live outside this service).
type OrderEvent struct {
	RequestID  string    `json:"request_id,omitempty"` // For distributed tracing
	OrderID    string    `json:"order_id"`
	ClientID   string    `json:"client_id"`
	SellerID   string    `json:"seller_id"`
	FromStatus string    `json:"from_status,omitempty"`
	ToStatus   string    `json:"to_status"`
	OccurredAt time.Time `json:"occurred_at"`
}

// EventPublisher publishes order lifecycle events. Publishing is
// fire-and-forget from the caller's point of view: failures are logged and
// never fail the originating request.
type EventPublisher interface {
	PublishOrderEvent(ctx context.Context, event *OrderEvent) error

	// Close releases any underlying resources.
	Close() error
}
