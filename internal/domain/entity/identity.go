package entity

import "github.com/google/uuid"

// Identity is the resolved caller of a request: a persisted user ID plus its
// role. A nil *Identity means the request is unauthenticated; resolution
// fails closed, so an Identity is only ever built from an existing user row.
type Identity struct {
	UserID uuid.UUID
	Role   Role
}

// IsAdmin reports whether the identity carries the admin role.
func (id *Identity) IsAdmin() bool {
	return id != nil && id.Role == RoleAdmin
}

// IsSeller reports whether the identity carries the seller role.
func (id *Identity) IsSeller() bool {
	return id != nil && id.Role == RoleSeller
}

// IsClient reports whether the identity carries the client role.
func (id *Identity) IsClient() bool {
	return id != nil && id.Role == RoleClient
}
