package apperrors

import (
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWrap_PreservesCause(t *testing.T) {
	cause := errors.New("row not found")
	appErr := ErrNotFound(cause)

	assert.Equal(t, http.StatusNotFound, appErr.HTTPCode)
	assert.ErrorIs(t, appErr, cause)
}

func TestAs_FindsWrappedAppError(t *testing.T) {
	var target *AppError
	require.True(t, As(ErrHikeFull, &target))
	assert.Equal(t, http.StatusConflict, target.HTTPCode)

	assert.False(t, As(errors.New("plain"), &target))
}

func TestDomainErrors_StatusContract(t *testing.T) {
	conflicts := []*AppError{
		ErrHikeFull, ErrAlreadyJoined, ErrNotJoined,
		ErrCapacityBelowActiveBookings, ErrPendingRequestExists,
		ErrAlreadyGuideOrAdmin, ErrRequestNotPending,
		ErrAlreadyReviewed, ErrAlreadyDeleted,
	}
	for _, e := range conflicts {
		assert.Equal(t, http.StatusConflict, e.HTTPCode, e.Message)
	}

	forbidden := []*AppError{ErrIsOwner, ErrNotHikeOwner, ErrReviewNotAllowed}
	for _, e := range forbidden {
		assert.Equal(t, http.StatusForbidden, e.HTTPCode, e.Message)
	}

	assert.Equal(t, http.StatusUnauthorized, ErrUserNotActive.HTTPCode)
}

func TestMarshalJSON_HidesInternals(t *testing.T) {
	appErr := Wrap(errors.New("pq: connection refused"), CodeInternalError, "db", "Internal server error", http.StatusInternalServerError)

	raw, err := json.Marshal(appErr)
	require.NoError(t, err)

	assert.Contains(t, string(raw), "Internal server error")
	assert.NotContains(t, string(raw), "connection refused")
}

func TestWithDetails(t *testing.T) {
	appErr := ValidationError(map[string]string{"capacity": "must be at least 1"})

	raw, err := json.Marshal(appErr)
	require.NoError(t, err)
	assert.Contains(t, string(raw), "capacity")
	assert.Equal(t, http.StatusBadRequest, appErr.HTTPCode)
}
