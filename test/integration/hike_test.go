package integration_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"
	"time"

	"trailbook_backend/internal/models"
	"trailbook_backend/internal/services/dto"
	"trailbook_backend/test/helpers"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHike_CreateAndGet(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)
	guide := helpers.CreateGuide(t, ts.DB)
	token := helpers.LoginUser(ts, t, guide)

	createBody := map[string]interface{}{
		"title":       "Kolsai lakes weekend",
		"description": "Two days, one tent",
		"location":    "Kolsai",
		"date":        time.Now().Add(14 * 24 * time.Hour).Format(time.RFC3339),
		"capacity":    8,
	}
	res, body := ts.SendRequest(t, http.MethodPost, "/api/v1/hikes", token, createBody)
	require.Equal(t, http.StatusCreated, res.StatusCode, body)

	var created dto.HikeResponse
	require.NoError(t, json.Unmarshal([]byte(body), &created))
	assert.Equal(t, guide.ID, created.OwnerGuideID)
	assert.EqualValues(t, 8, created.SpotsLeft)

	// Public read without a token
	res, body = ts.SendRequest(t, http.MethodGet, "/api/v1/hikes/"+created.ID, "", nil)
	require.Equal(t, http.StatusOK, res.StatusCode)
	assert.Contains(t, body, "Kolsai lakes weekend")
}

func TestHike_CreateRejectedForHiker(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)
	hiker := helpers.CreateUser(t, ts.DB, models.UserRoleHiker)
	token := helpers.LoginUser(ts, t, hiker)

	createBody := map[string]interface{}{
		"title":    "Not allowed",
		"date":     time.Now().Add(24 * time.Hour).Format(time.RFC3339),
		"capacity": 5,
	}
	res, _ := ts.SendRequest(t, http.MethodPost, "/api/v1/hikes", token, createBody)
	assert.Equal(t, http.StatusForbidden, res.StatusCode)
}

func TestHike_CreateValidation(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)
	guide := helpers.CreateGuide(t, ts.DB)
	token := helpers.LoginUser(ts, t, guide)

	// Zero capacity
	res, body := ts.SendRequest(t, http.MethodPost, "/api/v1/hikes", token, map[string]interface{}{
		"title":    "Bad capacity",
		"date":     time.Now().Add(24 * time.Hour).Format(time.RFC3339),
		"capacity": 0,
	})
	assert.Equal(t, http.StatusBadRequest, res.StatusCode, body)

	// Past date
	res, body = ts.SendRequest(t, http.MethodPost, "/api/v1/hikes", token, map[string]interface{}{
		"title":    "Yesterday",
		"date":     time.Now().Add(-24 * time.Hour).Format(time.RFC3339),
		"capacity": 5,
	})
	assert.Equal(t, http.StatusBadRequest, res.StatusCode, body)
}

func TestHike_UpdateCapacityBelowActiveBookings(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)
	guide := helpers.CreateGuide(t, ts.DB)
	hike := helpers.CreateHike(t, ts.DB, guide.ID, 5, time.Now().Add(72*time.Hour))
	guideToken := helpers.LoginUser(ts, t, guide)

	for i := 0; i < 3; i++ {
		hiker := helpers.CreateUser(t, ts.DB, models.UserRoleHiker)
		res, body := ts.SendRequest(t, http.MethodPost, fmt.Sprintf("/api/v1/hikes/%s/join", hike.ID), helpers.LoginUser(ts, t, hiker), nil)
		require.Equal(t, http.StatusCreated, res.StatusCode, body)
	}

	// Shrinking under the 3 active bookings must fail
	res, body := ts.SendRequest(t, http.MethodPut, "/api/v1/hikes/"+hike.ID, guideToken, map[string]interface{}{"capacity": 2})
	assert.Equal(t, http.StatusConflict, res.StatusCode, body)
	assert.Contains(t, body, "active bookings")

	// Shrinking to exactly the active count is allowed
	res, body = ts.SendRequest(t, http.MethodPut, "/api/v1/hikes/"+hike.ID, guideToken, map[string]interface{}{"capacity": 3})
	assert.Equal(t, http.StatusOK, res.StatusCode, body)
}

func TestHike_UpdateByNonOwner(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)
	owner := helpers.CreateGuide(t, ts.DB)
	other := helpers.CreateGuide(t, ts.DB)
	hike := helpers.CreateHike(t, ts.DB, owner.ID, 5, time.Now().Add(72*time.Hour))

	res, body := ts.SendRequest(t, http.MethodPut, "/api/v1/hikes/"+hike.ID, helpers.LoginUser(ts, t, other), map[string]interface{}{"capacity": 10})
	assert.Equal(t, http.StatusForbidden, res.StatusCode, body)
}

func TestHike_AdminMayUpdateAnyHike(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)
	owner := helpers.CreateGuide(t, ts.DB)
	admin := helpers.CreateUser(t, ts.DB, models.UserRoleAdmin)
	hike := helpers.CreateHike(t, ts.DB, owner.ID, 5, time.Now().Add(72*time.Hour))

	res, body := ts.SendRequest(t, http.MethodPut, "/api/v1/hikes/"+hike.ID, helpers.LoginUser(ts, t, admin), map[string]interface{}{"capacity": 10})
	assert.Equal(t, http.StatusOK, res.StatusCode, body)
}

func TestHike_CancelFreezesJoins(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)
	guide := helpers.CreateGuide(t, ts.DB)
	hike := helpers.CreateHike(t, ts.DB, guide.ID, 5, time.Now().Add(72*time.Hour))

	hiker := helpers.CreateUser(t, ts.DB, models.UserRoleHiker)
	res, body := ts.SendRequest(t, http.MethodPost, fmt.Sprintf("/api/v1/hikes/%s/join", hike.ID), helpers.LoginUser(ts, t, hiker), nil)
	require.Equal(t, http.StatusCreated, res.StatusCode, body)

	res, body = ts.SendRequest(t, http.MethodPost, fmt.Sprintf("/api/v1/hikes/%s/cancel", hike.ID), helpers.LoginUser(ts, t, guide), nil)
	require.Equal(t, http.StatusOK, res.StatusCode, body)

	// Existing bookings are untouched
	var active int64
	require.NoError(t, ts.DB.Model(&models.Booking{}).
		Where("hike_id = ? AND status = ?", hike.ID, models.BookingStatusActive).
		Count(&active).Error)
	assert.EqualValues(t, 1, active)

	// But nobody new may join
	another := helpers.CreateUser(t, ts.DB, models.UserRoleHiker)
	res, _ = ts.SendRequest(t, http.MethodPost, fmt.Sprintf("/api/v1/hikes/%s/join", hike.ID), helpers.LoginUser(ts, t, another), nil)
	assert.Equal(t, http.StatusNotFound, res.StatusCode)
}

func TestHike_Participants(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)
	guide := helpers.CreateGuide(t, ts.DB)
	hike := helpers.CreateHike(t, ts.DB, guide.ID, 5, time.Now().Add(72*time.Hour))

	hiker := helpers.CreateUser(t, ts.DB, models.UserRoleHiker)
	res, body := ts.SendRequest(t, http.MethodPost, fmt.Sprintf("/api/v1/hikes/%s/join", hike.ID), helpers.LoginUser(ts, t, hiker), nil)
	require.Equal(t, http.StatusCreated, res.StatusCode, body)

	res, body = ts.SendRequest(t, http.MethodGet, fmt.Sprintf("/api/v1/hikes/%s/participants", hike.ID), helpers.LoginUser(ts, t, guide), nil)
	require.Equal(t, http.StatusOK, res.StatusCode, body)
	assert.Contains(t, body, hiker.DisplayName)

	// Participant list needs a token
	res, _ = ts.SendRequest(t, http.MethodGet, fmt.Sprintf("/api/v1/hikes/%s/participants", hike.ID), "", nil)
	assert.Equal(t, http.StatusUnauthorized, res.StatusCode)
}
