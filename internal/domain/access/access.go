// Package access implements the ownership guard: the sole arbiter of whether
// a resolved identity may act on a resource. Authorization is decided from
// the owner references a resource carries, never from ambient role authority
// (the admin override being the one documented exception).
package access

import (
	"bistro/internal/domain/entity"
	domainerrors "bistro/internal/domain/errors"

	"github.com/google/uuid"
)

// Action is the closed set of things a caller can do to a resource.
type Action string

const (
	ActionRead   Action = "read"
	ActionCreate Action = "create"
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"
)

// Resource describes the ownership references of the entity being acted on.
// A zero uuid means the resource has no owner of that kind.
type Resource struct {
	ClientID uuid.UUID
	SellerID uuid.UUID
	// PublicRead marks resources readable without any identity (menu
	// browsing, seller profiles, categories, review listings).
	PublicRead bool
}

// OrderResource builds the guard view of an order.
func OrderResource(o *entity.Order) Resource {
	return Resource{ClientID: o.ClientID, SellerID: o.SellerID}
}

// ReservationResource builds the guard view of a reservation.
func ReservationResource(r *entity.Reservation) Resource {
	return Resource{ClientID: r.ClientID, SellerID: r.SellerID}
}

// ReviewResource builds the guard view of a site review; the author owns it.
func ReviewResource(rv *entity.SiteReview) Resource {
	return Resource{ClientID: rv.AuthorID, PublicRead: true}
}

// MenuItemResource builds the guard view of a menu item: seller-owned,
// publicly browsable.
func MenuItemResource(m *entity.MenuItem) Resource {
	return Resource{SellerID: m.SellerID, PublicRead: true}
}

// Authorize decides whether identity may perform action on resource. It
// matches exhaustively over the role enum and fails closed for anything it
// does not recognize. It never partially applies anything: callers run it
// before touching storage.
func Authorize(identity *entity.Identity, action Action, resource Resource) error {
	if identity == nil {
		if action == ActionRead && resource.PublicRead {
			return nil
		}

		return domainerrors.ErrUnauthenticated
	}

	switch identity.Role {
	case entity.RoleAdmin:
		// Blanket override; the order-deletion carve-out lives in
		// AuthorizeOrderDelete.
		return nil
	case entity.RoleClient:
		if resource.ClientID != uuid.Nil && resource.ClientID == identity.UserID {
			return nil
		}
		if action == ActionRead && resource.PublicRead {
			return nil
		}

		return domainerrors.ErrForbidden
	case entity.RoleSeller:
		if resource.SellerID != uuid.Nil && resource.SellerID == identity.UserID {
			return nil
		}
		if action == ActionRead && resource.PublicRead {
			return nil
		}

		return domainerrors.ErrForbidden
	default:
		return domainerrors.ErrForbidden
	}
}

// AuthorizeOrderDelete enforces the one rule that reserves an action to the
// resource owner: only the owning client deletes an order, and only while the
// kitchen has not committed to it. The admin override does not apply here.
func AuthorizeOrderDelete(identity *entity.Identity, order *entity.Order) error {
	if identity == nil {
		return domainerrors.ErrUnauthenticated
	}
	if !identity.IsClient() || order.ClientID != identity.UserID {
		return domainerrors.ErrForbidden
	}
	if !order.Deletable() {
		return domainerrors.ErrOrderInProgress
	}

	return nil
}

// AuthorizeOrderTransition decides who may move an order to the target
// status: the owning seller and admins drive the full lifecycle, the owning
// client may only cancel, and only before the kitchen commits. Sequence
// validity is the state machine's job, not the guard's.
func AuthorizeOrderTransition(identity *entity.Identity, order *entity.Order, target entity.OrderStatus) error {
	if identity == nil {
		return domainerrors.ErrUnauthenticated
	}

	switch identity.Role {
	case entity.RoleAdmin:
		return nil
	case entity.RoleSeller:
		if order.SellerID == identity.UserID {
			return nil
		}

		return domainerrors.ErrForbidden
	case entity.RoleClient:
		if order.ClientID == identity.UserID && target == entity.OrderCancelled &&
			(order.Status == entity.OrderPending || order.Status == entity.OrderConfirmed) {
			return nil
		}

		return domainerrors.ErrForbidden
	default:
		return domainerrors.ErrForbidden
	}
}

// AuthorizeReservationTransition decides who may move a reservation: the
// owning seller confirms or cancels, the owning client may cancel their own
// pending request, admins may do either.
func AuthorizeReservationTransition(identity *entity.Identity, reservation *entity.Reservation, target entity.ReservationStatus) error {
	if identity == nil {
		return domainerrors.ErrUnauthenticated
	}

	switch identity.Role {
	case entity.RoleAdmin:
		return nil
	case entity.RoleSeller:
		if reservation.SellerID == identity.UserID {
			return nil
		}

		return domainerrors.ErrForbidden
	case entity.RoleClient:
		if reservation.ClientID == identity.UserID && target == entity.ReservationCancelled {
			return nil
		}

		return domainerrors.ErrForbidden
	default:
		return domainerrors.ErrForbidden
	}
}

// RequireRole returns nil only when the identity carries the wanted role.
// Admin does not satisfy a seller/client requirement here; call sites that
// want the override check it explicitly.
func RequireRole(identity *entity.Identity, role entity.Role) error {
	if identity == nil {
		return domainerrors.ErrUnauthenticated
	}
	if identity.Role != role {
		return domainerrors.ErrForbidden
	}

	return nil
}
