package entity

import (
	"errors"
	"strings"
)

// OrderStatus represents the lifecycle state of an order.
type OrderStatus string

const (
	OrderPending    OrderStatus = "pending"
	OrderConfirmed  OrderStatus = "confirmed"
	OrderPreparing  OrderStatus = "preparing"
	OrderReady      OrderStatus = "ready"
	OrderInDelivery OrderStatus = "in_delivery"
	OrderDelivered  OrderStatus = "delivered"
	OrderCancelled  OrderStatus = "cancelled"
)

// ErrUnknownStatus is returned when a status string is outside the
// recognized enumeration.
var ErrUnknownStatus = errors.New("invalid status")

// ErrInvalidTransition is returned when a recognized status is requested out
// of sequence.
var ErrInvalidTransition = errors.New("invalid status transition")

// forwardTransitions is the authoritative adjacency table of the order state
// machine. Cancellation is handled separately: it is reachable from every
// non-terminal state.
var forwardTransitions = map[OrderStatus]OrderStatus{
	OrderPending:    OrderConfirmed,
	OrderConfirmed:  OrderPreparing,
	OrderPreparing:  OrderReady,
	OrderReady:      OrderInDelivery,
	OrderInDelivery: OrderDelivered,
}

// ParseOrderStatus converts a string to an OrderStatus, returning
// ErrUnknownStatus for values outside the seven recognized ones.
func ParseOrderStatus(s string) (OrderStatus, error) {
	status := OrderStatus(strings.ToLower(strings.TrimSpace(s)))
	switch status {
	case OrderPending, OrderConfirmed, OrderPreparing, OrderReady,
		OrderInDelivery, OrderDelivered, OrderCancelled:
		return status, nil
	default:
		return "", ErrUnknownStatus
	}
}

// String returns the string representation of the status.
func (s OrderStatus) String() string {
	return string(s)
}

// IsTerminal reports whether no further transition is recognized.
func (s OrderStatus) IsTerminal() bool {
	return s == OrderDelivered || s == OrderCancelled
}

// CanTransitionTo reports whether moving from s to target is a valid step of
// the state machine.
func (s OrderStatus) CanTransitionTo(target OrderStatus) bool {
	if s.IsTerminal() {
		return false
	}
	if target == OrderCancelled {
		return true
	}

	return forwardTransitions[s] == target
}

// ValidTargets returns every status reachable from s, for error messages.
func (s OrderStatus) ValidTargets() []OrderStatus {
	if s.IsTerminal() {
		return nil
	}
	targets := make([]OrderStatus, 0, 2)
	if next, ok := forwardTransitions[s]; ok {
		targets = append(targets, next)
	}

	return append(targets, OrderCancelled)
}

// InKitchen reports whether the order is in a committed state, during which a
// client may not delete it.
func (s OrderStatus) InKitchen() bool {
	switch s {
	case OrderPreparing, OrderReady, OrderInDelivery:
		return true
	default:
		return false
	}
}

// describeTargets renders the valid next states for a transition error.
func describeTargets(from OrderStatus) string {
	targets := from.ValidTargets()
	if len(targets) == 0 {
		return "none (terminal state)"
	}
	parts := make([]string, len(targets))
	for i, t := range targets {
		parts[i] = t.String()
	}

	return strings.Join(parts, ", ")
}
