// Package entity contains the core business objects of the project.
package entity

// Role represents the type of role a user can have in the system.
type Role string

const (
	// RoleAdmin indicates a marketplace administrator with blanket authority.
	RoleAdmin Role = "admin"
	// RoleSeller indicates a restaurant account that owns menu items,
	// receives orders and manages reservations.
	RoleSeller Role = "seller"
	// RoleClient indicates a regular customer account.
	RoleClient Role = "client"
)

// String returns the string representation of the Role.
func (r Role) String() string {
	return string(r)
}

// IsValid checks if the Role is a valid value.
func (r Role) IsValid() bool {
	switch r {
	case RoleAdmin, RoleSeller, RoleClient:
		return true
	default:
		return false
	}
}

// ParseRole converts a string into a Role, reporting whether it is recognized.
func ParseRole(s string) (Role, bool) {
	role := Role(s)

	return role, role.IsValid()
}
