package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRoleRequestStatus_IsTerminal(t *testing.T) {
	assert.False(t, RoleRequestStatusPending.IsTerminal())
	assert.True(t, RoleRequestStatusApproved.IsTerminal())
	assert.True(t, RoleRequestStatusRejected.IsTerminal())
}

func TestUserRole_Valid(t *testing.T) {
	for _, role := range []UserRole{UserRoleVisitor, UserRoleHiker, UserRoleGuide, UserRoleAdmin} {
		assert.True(t, role.Valid(), string(role))
	}
	assert.False(t, UserRole("wizard").Valid())
	assert.False(t, UserRole("").Valid())
}

func TestHike_IsPast(t *testing.T) {
	now := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)

	past := &Hike{Date: now.Add(-time.Minute)}
	assert.True(t, past.IsPast(now))

	// Exactly now is not yet past
	sameInstant := &Hike{Date: now}
	assert.False(t, sameInstant.IsPast(now))

	future := &Hike{Date: now.Add(time.Minute)}
	assert.False(t, future.IsPast(now))
}

func TestBooking_IsActive(t *testing.T) {
	assert.True(t, (&Booking{Status: BookingStatusActive}).IsActive())
	assert.False(t, (&Booking{Status: BookingStatusCancelled}).IsActive())
}
