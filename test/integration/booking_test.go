package integration_test

import (
	"fmt"
	"net/http"
	"sync"
	"testing"
	"time"

	"trailbook_backend/internal/models"
	"trailbook_backend/test/helpers"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBooking_JoinLeaveRejoin(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)
	guide := helpers.CreateGuide(t, ts.DB)
	hike := helpers.CreateHike(t, ts.DB, guide.ID, 5, time.Now().Add(72*time.Hour))

	hiker := helpers.CreateUser(t, ts.DB, models.UserRoleHiker)
	token := helpers.LoginUser(ts, t, hiker)
	joinPath := fmt.Sprintf("/api/v1/hikes/%s/join", hike.ID)

	// Join
	res, body := ts.SendRequest(t, http.MethodPost, joinPath, token, nil)
	require.Equal(t, http.StatusCreated, res.StatusCode, body)

	// Joining again conflicts
	res, body = ts.SendRequest(t, http.MethodPost, joinPath, token, nil)
	assert.Equal(t, http.StatusConflict, res.StatusCode)
	assert.Contains(t, body, "Already joined")

	// Leave
	res, body = ts.SendRequest(t, http.MethodDelete, joinPath, token, nil)
	require.Equal(t, http.StatusOK, res.StatusCode, body)

	// Leaving again conflicts
	res, body = ts.SendRequest(t, http.MethodDelete, joinPath, token, nil)
	assert.Equal(t, http.StatusConflict, res.StatusCode)
	assert.Contains(t, body, "No active booking")

	// Re-join creates a fresh row, history stays
	res, body = ts.SendRequest(t, http.MethodPost, joinPath, token, nil)
	require.Equal(t, http.StatusCreated, res.StatusCode, body)

	var rows []models.Booking
	require.NoError(t, ts.DB.Where("user_id = ? AND hike_id = ?", hiker.ID, hike.ID).Order("created_at").Find(&rows).Error)
	require.Len(t, rows, 2)
	assert.Equal(t, models.BookingStatusCancelled, rows[0].Status)
	assert.NotNil(t, rows[0].CancelledAt)
	assert.Equal(t, models.BookingStatusActive, rows[1].Status)
}

func TestBooking_OwnerCannotJoinOwnHike(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)
	guide := helpers.CreateGuide(t, ts.DB)
	hike := helpers.CreateHike(t, ts.DB, guide.ID, 5, time.Now().Add(72*time.Hour))
	token := helpers.LoginUser(ts, t, guide)

	res, body := ts.SendRequest(t, http.MethodPost, fmt.Sprintf("/api/v1/hikes/%s/join", hike.ID), token, nil)
	assert.Equal(t, http.StatusForbidden, res.StatusCode)
	assert.Contains(t, body, "own hikes")
}

func TestBooking_FullHike(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)
	guide := helpers.CreateGuide(t, ts.DB)
	hike := helpers.CreateHike(t, ts.DB, guide.ID, 1, time.Now().Add(72*time.Hour))
	joinPath := fmt.Sprintf("/api/v1/hikes/%s/join", hike.ID)

	first := helpers.CreateUser(t, ts.DB, models.UserRoleHiker)
	res, body := ts.SendRequest(t, http.MethodPost, joinPath, helpers.LoginUser(ts, t, first), nil)
	require.Equal(t, http.StatusCreated, res.StatusCode, body)

	second := helpers.CreateUser(t, ts.DB, models.UserRoleHiker)
	res, body = ts.SendRequest(t, http.MethodPost, joinPath, helpers.LoginUser(ts, t, second), nil)
	assert.Equal(t, http.StatusConflict, res.StatusCode)
	assert.Contains(t, body, "Hike full")

	// A freed seat is claimable again
	res, _ = ts.SendRequest(t, http.MethodDelete, joinPath, helpers.LoginUser(ts, t, first), nil)
	require.Equal(t, http.StatusOK, res.StatusCode)

	res, body = ts.SendRequest(t, http.MethodPost, joinPath, helpers.LoginUser(ts, t, second), nil)
	assert.Equal(t, http.StatusCreated, res.StatusCode, body)
}

// Hammer one small hike with many concurrent joins: exactly capacity of
// them may win, and losers must see a conflict, never a silent success.
func TestBooking_ConcurrentJoins_NeverOverbook(t *testing.T) {
	t.Parallel()

	const capacity = 3
	const contenders = 12

	ts := GetTestServer(t)
	guide := helpers.CreateGuide(t, ts.DB)
	hike := helpers.CreateHike(t, ts.DB, guide.ID, capacity, time.Now().Add(72*time.Hour))
	joinPath := fmt.Sprintf("/api/v1/hikes/%s/join", hike.ID)

	tokens := make([]string, contenders)
	for i := range tokens {
		user := helpers.CreateUser(t, ts.DB, models.UserRoleHiker)
		tokens[i] = helpers.LoginUser(ts, t, user)
	}

	statuses := make([]int, contenders)
	var wg sync.WaitGroup
	for i := 0; i < contenders; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			res, _ := ts.SendRequest(t, http.MethodPost, joinPath, tokens[i], nil)
			statuses[i] = res.StatusCode
		}(i)
	}
	wg.Wait()

	created, conflicted := 0, 0
	for _, code := range statuses {
		switch code {
		case http.StatusCreated:
			created++
		case http.StatusConflict:
			conflicted++
		default:
			t.Errorf("unexpected status %d from concurrent join", code)
		}
	}
	assert.Equal(t, capacity, created)
	assert.Equal(t, contenders-capacity, conflicted)

	var active int64
	require.NoError(t, ts.DB.Model(&models.Booking{}).
		Where("hike_id = ? AND status = ?", hike.ID, models.BookingStatusActive).
		Count(&active).Error)
	assert.EqualValues(t, capacity, active)
}

// One user racing against itself must end up with exactly one seat.
func TestBooking_ConcurrentDuplicateJoin(t *testing.T) {
	t.Parallel()

	const attempts = 6

	ts := GetTestServer(t)
	guide := helpers.CreateGuide(t, ts.DB)
	hike := helpers.CreateHike(t, ts.DB, guide.ID, 10, time.Now().Add(72*time.Hour))
	joinPath := fmt.Sprintf("/api/v1/hikes/%s/join", hike.ID)

	hiker := helpers.CreateUser(t, ts.DB, models.UserRoleHiker)
	token := helpers.LoginUser(ts, t, hiker)

	statuses := make([]int, attempts)
	var wg sync.WaitGroup
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			res, _ := ts.SendRequest(t, http.MethodPost, joinPath, token, nil)
			statuses[i] = res.StatusCode
		}(i)
	}
	wg.Wait()

	created := 0
	for _, code := range statuses {
		if code == http.StatusCreated {
			created++
		}
	}
	assert.Equal(t, 1, created)

	var active int64
	require.NoError(t, ts.DB.Model(&models.Booking{}).
		Where("user_id = ? AND hike_id = ? AND status = ?", hiker.ID, hike.ID, models.BookingStatusActive).
		Count(&active).Error)
	assert.EqualValues(t, 1, active)
}

func TestBooking_JoinCancelledHike(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)
	guide := helpers.CreateGuide(t, ts.DB)
	hike := helpers.CreateHike(t, ts.DB, guide.ID, 5, time.Now().Add(72*time.Hour))
	require.NoError(t, ts.DB.Model(hike).Update("status", models.HikeStatusCancelled).Error)

	hiker := helpers.CreateUser(t, ts.DB, models.UserRoleHiker)
	res, _ := ts.SendRequest(t, http.MethodPost, fmt.Sprintf("/api/v1/hikes/%s/join", hike.ID), helpers.LoginUser(ts, t, hiker), nil)
	assert.Equal(t, http.StatusNotFound, res.StatusCode)
}

func TestBooking_RequiresAuth(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)
	guide := helpers.CreateGuide(t, ts.DB)
	hike := helpers.CreateHike(t, ts.DB, guide.ID, 5, time.Now().Add(72*time.Hour))

	res, _ := ts.SendRequest(t, http.MethodPost, fmt.Sprintf("/api/v1/hikes/%s/join", hike.ID), "", nil)
	assert.Equal(t, http.StatusUnauthorized, res.StatusCode)
}
