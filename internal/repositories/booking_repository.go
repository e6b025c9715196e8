package repositories

import (
	"errors"
	"time"

	"trailbook_backend/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrBookingNotFound = errors.New("booking not found")
	ErrHikeFull        = errors.New("hike is full")
	ErrAlreadyJoined   = errors.New("active booking already exists")
	ErrNotJoined       = errors.New("no active booking")
	ErrOwnHike         = errors.New("user owns this hike")
)

type BookingRepository interface {
	// Join reserves a seat. The entire check-and-insert runs inside one
	// transaction holding a FOR UPDATE lock on the hike row, so N
	// concurrent callers for the same hike serialize and losers see
	// ErrHikeFull or ErrAlreadyJoined, never an overcounted state.
	// Unrelated hikes proceed in parallel: the lock is per hike row.
	Join(userID, hikeID string) (*models.Booking, error)

	// Leave flips the ACTIVE booking to CANCELLED. A second call finds no
	// active row and returns ErrNotJoined.
	Leave(userID, hikeID string) error

	FindActive(userID, hikeID string) (*models.Booking, error)
	ListByUser(userID string, limit, offset int) ([]models.Booking, int64, error)
	ListActiveByHike(hikeID string) ([]models.Booking, error)
	CountByUser(userID string) (int64, error)

	// HasAttendance reports whether the user held a booking that was still
	// ACTIVE when the hike took place: either the row is ACTIVE now, or it
	// was cancelled only after the hike date. A booking cancelled before
	// the hike never counts.
	HasAttendance(userID, hikeID string, hikeDate time.Time) (bool, error)
}

type BookingRepositoryImpl struct {
	db *gorm.DB
}

func NewBookingRepository(db *gorm.DB) BookingRepository {
	return &BookingRepositoryImpl{db: db}
}

func (r *BookingRepositoryImpl) Join(userID, hikeID string) (*models.Booking, error) {
	var booking *models.Booking

	err := r.db.Transaction(func(tx *gorm.DB) error {
		// Critical section: lock the hike row first. Every condition is
		// re-checked under the lock; a plain count-then-insert without it
		// is exactly the race this method exists to prevent.
		var hike models.Hike
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&hike, "id = ?", hikeID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrHikeNotFound
			}
			return err
		}

		// A cancelled hike is not joinable; callers see the same outcome
		// as a missing one.
		if hike.Status != models.HikeStatusActive {
			return ErrHikeNotFound
		}

		if hike.OwnerGuideID == userID {
			return ErrOwnHike
		}

		var existing models.Booking
		err := tx.Where("user_id = ? AND hike_id = ? AND status = ?",
			userID, hikeID, models.BookingStatusActive).
			First(&existing).Error
		if err == nil {
			return ErrAlreadyJoined
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		var active int64
		if err := tx.Model(&models.Booking{}).
			Where("hike_id = ? AND status = ?", hikeID, models.BookingStatusActive).
			Count(&active).Error; err != nil {
			return err
		}
		if active >= int64(hike.Capacity) {
			return ErrHikeFull
		}

		b := &models.Booking{
			UserID: userID,
			HikeID: hikeID,
			Status: models.BookingStatusActive,
		}
		if err := tx.Create(b).Error; err != nil {
			// The partial unique index is the backstop should the lock
			// ever be bypassed; its violation is a duplicate join, not a
			// generic failure.
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrAlreadyJoined
			}
			return err
		}

		booking = b
		return nil
	})
	if err != nil {
		return nil, err
	}
	return booking, nil
}

func (r *BookingRepositoryImpl) Leave(userID, hikeID string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var booking models.Booking
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("user_id = ? AND hike_id = ? AND status = ?",
				userID, hikeID, models.BookingStatusActive).
			First(&booking).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotJoined
			}
			return err
		}

		now := time.Now()
		return tx.Model(&booking).Updates(map[string]interface{}{
			"status":       models.BookingStatusCancelled,
			"cancelled_at": &now,
			"updated_at":   now,
		}).Error
	})
}

func (r *BookingRepositoryImpl) FindActive(userID, hikeID string) (*models.Booking, error) {
	var booking models.Booking
	err := r.db.Where("user_id = ? AND hike_id = ? AND status = ?",
		userID, hikeID, models.BookingStatusActive).
		First(&booking).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}
	return &booking, nil
}

func (r *BookingRepositoryImpl) ListByUser(userID string, limit, offset int) ([]models.Booking, int64, error) {
	var bookings []models.Booking
	var total int64

	query := r.db.Model(&models.Booking{}).Where("user_id = ?", userID)

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Order("created_at DESC").Limit(limit).Offset(offset).Find(&bookings).Error
	return bookings, total, err
}

func (r *BookingRepositoryImpl) ListActiveByHike(hikeID string) ([]models.Booking, error) {
	var bookings []models.Booking
	err := r.db.Preload("User").
		Where("hike_id = ? AND status = ?", hikeID, models.BookingStatusActive).
		Order("created_at ASC").
		Find(&bookings).Error
	return bookings, err
}

func (r *BookingRepositoryImpl) CountByUser(userID string) (int64, error) {
	var count int64
	err := r.db.Model(&models.Booking{}).Where("user_id = ?", userID).Count(&count).Error
	return count, err
}

func (r *BookingRepositoryImpl) HasAttendance(userID, hikeID string, hikeDate time.Time) (bool, error) {
	var count int64
	err := r.db.Model(&models.Booking{}).
		Where("user_id = ? AND hike_id = ?", userID, hikeID).
		Where("status = ? OR (status = ? AND cancelled_at > ?)",
			models.BookingStatusActive, models.BookingStatusCancelled, hikeDate).
		Count(&count).Error
	return count > 0, err
}
