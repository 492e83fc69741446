package entity

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// PaymentStatus represents the payment state of an order.
type PaymentStatus string

const (
	PaymentPending  PaymentStatus = "pending"
	PaymentPaid     PaymentStatus = "paid"
	PaymentRefunded PaymentStatus = "refunded"
)

// DeliveryType is how the order reaches the client.
type DeliveryType string

const (
	DeliveryTypeDelivery DeliveryType = "delivery"
	DeliveryTypePickup   DeliveryType = "pickup"
)

// IsValid checks if the DeliveryType is a recognized value.
func (d DeliveryType) IsValid() bool {
	return d == DeliveryTypeDelivery || d == DeliveryTypePickup
}

// Order belongs to exactly one client and one seller. The item list is
// immutable after creation; all mutation goes through status transitions.
type Order struct {
	ID             uuid.UUID
	ClientID       uuid.UUID
	SellerID       uuid.UUID
	DriverID       *uuid.UUID
	Items          []OrderItem
	Status         OrderStatus
	PaymentStatus  PaymentStatus
	TotalAmount    float64
	DiscountAmount float64
	PromoDiscount  float64
	Tip            float64
	DeliveryFee    float64
	DeliveryType   DeliveryType
	PromoCode      *string
	// Version implements optimistic concurrency: updates guard on it and
	// bump it, so two concurrent transitions cannot silently overwrite
	// each other.
	Version   int64
	CreatedAt time.Time
	UpdatedAt time.Time
}

// OrderItem is a snapshot of a menu item at checkout time. Name and UnitPrice
// are copied so later menu edits do not rewrite order history.
type OrderItem struct {
	ID         uuid.UUID
	OrderID    uuid.UUID
	MenuItemID uuid.UUID
	Name       string
	Quantity   int
	UnitPrice  float64
}

// TransitionTo validates and applies a status change. It returns
// ErrUnknownStatus (wrapped) for unrecognized targets and
// ErrInvalidTransition (wrapped, with the valid targets spelled out) for
// out-of-sequence ones. The stored status is untouched on error.
func (o *Order) TransitionTo(target OrderStatus) error {
	if _, err := ParseOrderStatus(target.String()); err != nil {
		return fmt.Errorf("%w: %q is not a recognized order status", ErrUnknownStatus, target)
	}
	if !o.Status.CanTransitionTo(target) {
		return fmt.Errorf("%w: %s -> %s is not allowed; valid transitions from %s are: %s",
			ErrInvalidTransition, o.Status, target, o.Status, describeTargets(o.Status))
	}
	o.Status = target

	return nil
}

// Deletable reports whether the order may be removed at all. Once the kitchen
// has committed to it (preparing, ready, in_delivery) nobody may delete it.
func (o *Order) Deletable() bool {
	return !o.Status.InKitchen()
}

// Subtotal sums the item snapshots.
func (o *Order) Subtotal() float64 {
	var sum float64
	for _, item := range o.Items {
		sum += item.UnitPrice * float64(item.Quantity)
	}

	return sum
}
