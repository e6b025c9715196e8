package integration_test

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	"trailbook_backend/internal/models"
	"trailbook_backend/internal/services"
	"trailbook_backend/test/helpers"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLifecycle_SoftDeleteUser(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)
	guide := helpers.CreateGuide(t, ts.DB)
	hike := helpers.CreateHike(t, ts.DB, guide.ID, 5, time.Now().Add(72*time.Hour))

	hiker := helpers.CreateUser(t, ts.DB, models.UserRoleHiker)
	hikerToken := helpers.LoginUser(ts, t, hiker)
	res, body := ts.SendRequest(t, http.MethodPost, fmt.Sprintf("/api/v1/hikes/%s/join", hike.ID), hikerToken, nil)
	require.Equal(t, http.StatusCreated, res.StatusCode, body)

	admin := helpers.CreateUser(t, ts.DB, models.UserRoleAdmin)
	res, body = ts.SendRequest(t, http.MethodDelete, "/api/v1/admin/users/"+hiker.ID, helpers.LoginUser(ts, t, admin), nil)
	require.Equal(t, http.StatusOK, res.StatusCode, body)

	// Identity fields anonymized deterministically, row and history kept
	var deleted models.User
	require.NoError(t, ts.DB.First(&deleted, "id = ?", hiker.ID).Error)
	assert.Equal(t, models.UserStatusDeleted, deleted.Status)
	assert.Equal(t, services.AnonymizedEmail(hiker.ID), deleted.Email)
	assert.Equal(t, services.AnonymizedDisplayName(hiker.ID), deleted.DisplayName)

	var bookings int64
	require.NoError(t, ts.DB.Model(&models.Booking{}).Where("user_id = ?", hiker.ID).Count(&bookings).Error)
	assert.EqualValues(t, 1, bookings)

	// Deleting twice conflicts
	res, body = ts.SendRequest(t, http.MethodDelete, "/api/v1/admin/users/"+hiker.ID, helpers.LoginUser(ts, t, admin), nil)
	assert.Equal(t, http.StatusConflict, res.StatusCode, body)

	// The deleted account still resolves but cannot act
	res, body = ts.SendRequest(t, http.MethodPost, fmt.Sprintf("/api/v1/hikes/%s/join", hike.ID), hikerToken, nil)
	assert.Equal(t, http.StatusUnauthorized, res.StatusCode, body)
}

func TestLifecycle_SoftDeleteGuideCancelsFutureHikes(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)
	guide := helpers.CreateGuide(t, ts.DB)
	future := helpers.CreateHike(t, ts.DB, guide.ID, 5, time.Now().Add(72*time.Hour))
	past := helpers.CreateHike(t, ts.DB, guide.ID, 5, time.Now().Add(-72*time.Hour))

	admin := helpers.CreateUser(t, ts.DB, models.UserRoleAdmin)
	res, body := ts.SendRequest(t, http.MethodDelete, "/api/v1/admin/guides/"+guide.ID, helpers.LoginUser(ts, t, admin), nil)
	require.Equal(t, http.StatusOK, res.StatusCode, body)

	var futureHike, pastHike models.Hike
	require.NoError(t, ts.DB.First(&futureHike, "id = ?", future.ID).Error)
	require.NoError(t, ts.DB.First(&pastHike, "id = ?", past.ID).Error)
	assert.Equal(t, models.HikeStatusCancelled, futureHike.Status)
	assert.Equal(t, models.HikeStatusActive, pastHike.Status)

	var deleted models.User
	require.NoError(t, ts.DB.First(&deleted, "id = ?", guide.ID).Error)
	assert.Equal(t, models.UserStatusDeleted, deleted.Status)
}

func TestLifecycle_GuideEndpointRejectsNonGuides(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)
	hiker := helpers.CreateUser(t, ts.DB, models.UserRoleHiker)
	admin := helpers.CreateUser(t, ts.DB, models.UserRoleAdmin)

	res, _ := ts.SendRequest(t, http.MethodDelete, "/api/v1/admin/guides/"+hiker.ID, helpers.LoginUser(ts, t, admin), nil)
	assert.Equal(t, http.StatusNotFound, res.StatusCode)
}

func TestLifecycle_DeleteRequiresAdmin(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)
	victim := helpers.CreateUser(t, ts.DB, models.UserRoleHiker)
	hiker := helpers.CreateUser(t, ts.DB, models.UserRoleHiker)

	res, _ := ts.SendRequest(t, http.MethodDelete, "/api/v1/admin/users/"+victim.ID, helpers.LoginUser(ts, t, hiker), nil)
	assert.Equal(t, http.StatusForbidden, res.StatusCode)
}
