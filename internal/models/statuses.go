package models

type UserRole string
type UserStatus string
type HikeStatus string
type BookingStatus string
type RoleRequestStatus string

const (
	UserRoleVisitor UserRole = "visitor"
	UserRoleHiker   UserRole = "hiker"
	UserRoleGuide   UserRole = "guide"
	UserRoleAdmin   UserRole = "admin"

	UserStatusActive  UserStatus = "active"
	UserStatusDeleted UserStatus = "deleted"

	HikeStatusActive    HikeStatus = "active"
	HikeStatusCancelled HikeStatus = "cancelled"

	BookingStatusActive    BookingStatus = "active"
	BookingStatusCancelled BookingStatus = "cancelled"

	RoleRequestStatusPending  RoleRequestStatus = "pending"
	RoleRequestStatusApproved RoleRequestStatus = "approved"
	RoleRequestStatusRejected RoleRequestStatus = "rejected"
)

// IsTerminal reports whether a role request can no longer change state.
// PENDING -> {APPROVED, REJECTED}, both terminal.
func (s RoleRequestStatus) IsTerminal() bool {
	return s == RoleRequestStatusApproved || s == RoleRequestStatusRejected
}

func (r UserRole) Valid() bool {
	switch r {
	case UserRoleVisitor, UserRoleHiker, UserRoleGuide, UserRoleAdmin:
		return true
	}
	return false
}

func (s UserStatus) Valid() bool {
	return s == UserStatusActive || s == UserStatusDeleted
}
