// Package identity models the requester context supplied by the caller.
// The engine never issues sessions; it only consumes id, role and class.
package identity

import "github.com/google/uuid"

type Role string

const (
	RoleGuest  Role = "guest"
	RoleMember Role = "member"
	RoleStaff  Role = "staff"
	RoleAdmin  Role = "admin"
)

func (r Role) String() string {
	return string(r)
}

func (r Role) IsValid() bool {
	switch r {
	case RoleGuest, RoleMember, RoleStaff, RoleAdmin:
		return true
	default:
		return false
	}
}

// IsStaff reports whether the role belongs to facility personnel.
func (r Role) IsStaff() bool {
	return r == RoleStaff || r == RoleAdmin
}

// Class selects the payment-hold window for new bookings. Staff-entered
// bookings get a longer window than self-service ones.
type Class string

const (
	ClassSelfService Class = "self_service"
	ClassStaff       Class = "staff"
)

func (r Role) Class() Class {
	if r.IsStaff() {
		return ClassStaff
	}
	return ClassSelfService
}

// Actor is the authenticated requester attached to every engine call.
type Actor struct {
	ID   uuid.UUID
	Role Role
}

// CanManage reports whether the actor may administer a booking owned by
// another requester (confirm shares, cancel on behalf of).
func (a Actor) CanManage() bool {
	return a.Role.IsStaff()
}
