package integration_test

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	"trailbook_backend/internal/models"
	"trailbook_backend/test/helpers"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReview_EligibilityWindow(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)
	guide := helpers.CreateGuide(t, ts.DB)
	pastHike := helpers.CreateHike(t, ts.DB, guide.ID, 5, time.Now().Add(-48*time.Hour))

	attendee := helpers.CreateUser(t, ts.DB, models.UserRoleHiker)
	helpers.CreateBooking(t, ts.DB, attendee.ID, pastHike.ID, models.BookingStatusActive, nil)
	token := helpers.LoginUser(ts, t, attendee)

	canReviewPath := fmt.Sprintf("/api/v1/hikes/%s/can-review", pastHike.ID)
	reviewsPath := fmt.Sprintf("/api/v1/hikes/%s/reviews", pastHike.ID)

	res, body := ts.SendRequest(t, http.MethodGet, canReviewPath, token, nil)
	require.Equal(t, http.StatusOK, res.StatusCode, body)
	assert.Contains(t, body, `"can_review":true`)

	res, body = ts.SendRequest(t, http.MethodPost, reviewsPath, token, map[string]interface{}{
		"rating":  5,
		"comment": "Great views, well organized",
	})
	require.Equal(t, http.StatusCreated, res.StatusCode, body)

	// One review per hike per user
	res, body = ts.SendRequest(t, http.MethodPost, reviewsPath, token, map[string]interface{}{
		"rating": 4,
	})
	assert.Equal(t, http.StatusConflict, res.StatusCode, body)

	res, body = ts.SendRequest(t, http.MethodGet, canReviewPath, token, nil)
	require.Equal(t, http.StatusOK, res.StatusCode)
	assert.Contains(t, body, `"can_review":false`)
	assert.Contains(t, body, "already reviewed")

	// The review is publicly listed
	res, body = ts.SendRequest(t, http.MethodGet, reviewsPath, "", nil)
	require.Equal(t, http.StatusOK, res.StatusCode)
	assert.Contains(t, body, "Great views")
}

func TestReview_FutureHikeNotReviewable(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)
	guide := helpers.CreateGuide(t, ts.DB)
	futureHike := helpers.CreateHike(t, ts.DB, guide.ID, 5, time.Now().Add(72*time.Hour))

	attendee := helpers.CreateUser(t, ts.DB, models.UserRoleHiker)
	helpers.CreateBooking(t, ts.DB, attendee.ID, futureHike.ID, models.BookingStatusActive, nil)
	token := helpers.LoginUser(ts, t, attendee)

	res, body := ts.SendRequest(t, http.MethodGet, fmt.Sprintf("/api/v1/hikes/%s/can-review", futureHike.ID), token, nil)
	require.Equal(t, http.StatusOK, res.StatusCode)
	assert.Contains(t, body, `"can_review":false`)

	res, body = ts.SendRequest(t, http.MethodPost, fmt.Sprintf("/api/v1/hikes/%s/reviews", futureHike.ID), token, map[string]interface{}{
		"rating": 5,
	})
	assert.Equal(t, http.StatusForbidden, res.StatusCode, body)
}

func TestReview_CancellationTiming(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)
	guide := helpers.CreateGuide(t, ts.DB)
	hikeDate := time.Now().Add(-48 * time.Hour)
	pastHike := helpers.CreateHike(t, ts.DB, guide.ID, 5, hikeDate)

	// Cancelled before the hike: never attended, not eligible
	bailed := helpers.CreateUser(t, ts.DB, models.UserRoleHiker)
	before := hikeDate.Add(-24 * time.Hour)
	helpers.CreateBooking(t, ts.DB, bailed.ID, pastHike.ID, models.BookingStatusCancelled, &before)

	res, body := ts.SendRequest(t, http.MethodPost, fmt.Sprintf("/api/v1/hikes/%s/reviews", pastHike.ID), helpers.LoginUser(ts, t, bailed), map[string]interface{}{
		"rating": 1,
	})
	assert.Equal(t, http.StatusForbidden, res.StatusCode, body)

	// Cancelled after the hike took place: attended, eligible
	attended := helpers.CreateUser(t, ts.DB, models.UserRoleHiker)
	after := hikeDate.Add(24 * time.Hour)
	helpers.CreateBooking(t, ts.DB, attended.ID, pastHike.ID, models.BookingStatusCancelled, &after)

	res, body = ts.SendRequest(t, http.MethodPost, fmt.Sprintf("/api/v1/hikes/%s/reviews", pastHike.ID), helpers.LoginUser(ts, t, attended), map[string]interface{}{
		"rating": 4,
	})
	assert.Equal(t, http.StatusCreated, res.StatusCode, body)
}

func TestReview_NoBookingNoReview(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)
	guide := helpers.CreateGuide(t, ts.DB)
	pastHike := helpers.CreateHike(t, ts.DB, guide.ID, 5, time.Now().Add(-48*time.Hour))

	stranger := helpers.CreateUser(t, ts.DB, models.UserRoleHiker)
	res, body := ts.SendRequest(t, http.MethodPost, fmt.Sprintf("/api/v1/hikes/%s/reviews", pastHike.ID), helpers.LoginUser(ts, t, stranger), map[string]interface{}{
		"rating": 3,
	})
	assert.Equal(t, http.StatusForbidden, res.StatusCode, body)
}

func TestReview_RatingValidation(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)
	guide := helpers.CreateGuide(t, ts.DB)
	pastHike := helpers.CreateHike(t, ts.DB, guide.ID, 5, time.Now().Add(-48*time.Hour))

	attendee := helpers.CreateUser(t, ts.DB, models.UserRoleHiker)
	helpers.CreateBooking(t, ts.DB, attendee.ID, pastHike.ID, models.BookingStatusActive, nil)
	token := helpers.LoginUser(ts, t, attendee)

	res, body := ts.SendRequest(t, http.MethodPost, fmt.Sprintf("/api/v1/hikes/%s/reviews", pastHike.ID), token, map[string]interface{}{
		"rating": 6,
	})
	assert.Equal(t, http.StatusBadRequest, res.StatusCode, body)
}
