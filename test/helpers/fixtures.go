package helpers

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"trailbook_backend/internal/models"

	"gorm.io/gorm"
)

var fixtureSeq atomic.Int64

// UniqueEmail returns an email no other fixture in this run will produce,
// so parallel tests never collide on the users.email unique index.
func UniqueEmail(prefix string) string {
	return fmt.Sprintf("%s_%d_%d@test.local", prefix, time.Now().UnixNano(), fixtureSeq.Add(1))
}

// CreateUser inserts an active account directly, bypassing first-contact
// provisioning. Returns the stored row with its generated ID.
func CreateUser(t *testing.T, db *gorm.DB, role models.UserRole) *models.User {
	email := UniqueEmail(string(role))
	user := &models.User{
		Email:       email,
		DisplayName: "Test " + string(role),
		Role:        role,
		Status:      models.UserStatusActive,
		ExternalID:  "idp|" + email,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	return user
}

// CreateGuide inserts a guide account together with its profile.
func CreateGuide(t *testing.T, db *gorm.DB) *models.User {
	guide := CreateUser(t, db, models.UserRoleGuide)
	profile := &models.GuideProfile{
		UserID:   guide.ID,
		Bio:      "Test guide bio",
		Verified: true,
	}
	if err := db.Create(profile).Error; err != nil {
		t.Fatalf("failed to create guide profile: %v", err)
	}
	guide.GuideProfile = profile
	return guide
}

// LoginUser returns an identity token for an existing account.
func LoginUser(ts *TestServer, t *testing.T, user *models.User) string {
	return ts.IdentityToken(t, user.ExternalID, user.Email, user.DisplayName)
}

// CreateHike inserts an active hike owned by the given guide.
func CreateHike(t *testing.T, db *gorm.DB, ownerID string, capacity int, date time.Time) *models.Hike {
	hike := &models.Hike{
		OwnerGuideID: ownerID,
		Title:        fmt.Sprintf("Test hike %d", fixtureSeq.Add(1)),
		Description:  "A walk in the hills",
		Location:     "Almaty region",
		Date:         date,
		Capacity:     capacity,
		Status:       models.HikeStatusActive,
	}
	if err := db.Create(hike).Error; err != nil {
		t.Fatalf("failed to create test hike: %v", err)
	}
	return hike
}

// CreateBooking inserts a booking row directly, for history fixtures.
func CreateBooking(t *testing.T, db *gorm.DB, userID, hikeID string, status models.BookingStatus, cancelledAt *time.Time) *models.Booking {
	booking := &models.Booking{
		UserID:      userID,
		HikeID:      hikeID,
		Status:      status,
		CancelledAt: cancelledAt,
	}
	if err := db.Create(booking).Error; err != nil {
		t.Fatalf("failed to create test booking: %v", err)
	}
	return booking
}
