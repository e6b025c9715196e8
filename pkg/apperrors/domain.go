package apperrors

import (
	"net/http"
)

// Factories and predefined errors for the booking core. Status codes here
// are part of the HTTP contract, not a presentation detail.

// ErrNotFound converts a repository miss (gorm.ErrRecordNotFound and the
// per-repo sentinels) into a 404.
func ErrNotFound(err error) *AppError {
	return Wrap(err, CodeNotFound, "resource", "Resource not found", http.StatusNotFound)
}

func ErrConflict(err error, domain, message string) *AppError {
	return Wrap(err, CodeConflict, domain, message, http.StatusConflict)
}

// --- Accounts ---

// ErrUserNotActive rejects any mutation attempted by a soft-deleted
// account. Deleted identities still resolve; they just cannot act.
var ErrUserNotActive = New(
	CodeUnauthorized,
	"account",
	"Account is not active",
	http.StatusUnauthorized,
)

var ErrAlreadyDeleted = New(
	CodeConflict,
	"account",
	"Account is already deleted",
	http.StatusConflict,
)

// --- Bookings ---

var ErrHikeFull = New(
	CodeConflict,
	"booking",
	"Hike full",
	http.StatusConflict,
)

var ErrAlreadyJoined = New(
	CodeConflict,
	"booking",
	"Already joined this hike",
	http.StatusConflict,
)

var ErrNotJoined = New(
	CodeConflict,
	"booking",
	"No active booking for this hike",
	http.StatusConflict,
)

var ErrIsOwner = New(
	CodeForbidden,
	"booking",
	"Guides cannot book their own hikes",
	http.StatusForbidden,
)

// --- Hikes ---

var ErrCapacityBelowActiveBookings = New(
	CodeConflict,
	"hike",
	"Capacity cannot drop below the current number of active bookings",
	http.StatusConflict,
)

var ErrNotHikeOwner = New(
	CodeForbidden,
	"hike",
	"Only the owning guide may modify this hike",
	http.StatusForbidden,
)

// --- Role requests ---

var ErrPendingRequestExists = New(
	CodeConflict,
	"role_request",
	"A pending guide request already exists",
	http.StatusConflict,
)

var ErrAlreadyGuideOrAdmin = New(
	CodeConflict,
	"role_request",
	"Account already holds the guide or admin role",
	http.StatusConflict,
)

var ErrRequestNotPending = New(
	CodeConflict,
	"role_request",
	"Role request is no longer pending",
	http.StatusConflict,
)

// --- Reviews ---

var ErrReviewNotAllowed = New(
	CodeForbidden,
	"review",
	"Not eligible to review this hike",
	http.StatusForbidden,
)

var ErrAlreadyReviewed = New(
	CodeConflict,
	"review",
	"Hike already reviewed",
	http.StatusConflict,
)
