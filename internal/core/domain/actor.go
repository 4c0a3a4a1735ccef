package domain

import "github.com/google/uuid"

type Role string

const (
	RoleAdmin Role = "Admin"
	RoleGuard Role = "Guard"
	RoleStaff Role = "Staff"
	RoleOwner Role = "Owner"
)

func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleGuard, RoleStaff, RoleOwner:
		return true
	}
	return false
}

// Actor is the caller identity resolved once at the request boundary.
type Actor struct {
	ID   uuid.UUID
	Role Role
}

func (a Actor) IsAdmin() bool {
	return a.Role == RoleAdmin
}
