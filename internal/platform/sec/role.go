// Copyright (c) 2026 Workbay. All rights reserved.

package sec

// # User Roles

// UserRole represents the account type granted at registration.
type UserRole string

const (
	// Unrestricted system access
	RoleAdmin UserRole = "admin"

	// Sells services and products, snags client requests, uploads videos
	RoleDeveloper UserRole = "developer"

	// Posts work requests, purchases products, rates developers
	RoleClient UserRole = "client"
)

// Valid reports whether the role is one of the known account types.
func (r UserRole) Valid() bool {
	switch r {
	case RoleAdmin, RoleDeveloper, RoleClient:
		return true
	}
	return false
}

// Grants reports whether the holder may act in the target role.
//
// Roles are not hierarchical — a developer cannot act as a client — but
// admins may act as anyone.
func (r UserRole) Grants(target UserRole) bool {
	return r == target || r == RoleAdmin
}
