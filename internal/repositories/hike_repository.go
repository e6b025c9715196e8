package repositories

import (
	"errors"
	"time"

	"trailbook_backend/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrHikeNotFound         = errors.New("hike not found")
	ErrCapacityBelowActive  = errors.New("capacity below active booking count")
	ErrHikeAlreadyCancelled = errors.New("hike already cancelled")
)

// HikeUpdate carries the editable hike fields. Nil means "leave as is".
type HikeUpdate struct {
	Title       *string
	Description *string
	Location    *string
	Date        *time.Time
	Capacity    *int
}

type HikeRepository interface {
	FindByID(id string) (*models.Hike, error)
	Create(hike *models.Hike) error
	ListUpcoming(now time.Time, limit, offset int) ([]models.Hike, int64, error)
	ListByOwner(ownerID string, limit, offset int) ([]models.Hike, int64, error)
	CountActiveBookings(hikeID string) (int64, error)

	// Update edits a hike under its row lock. Shrinking capacity below the
	// current ACTIVE booking count is rejected rather than silently
	// truncating bookings.
	Update(hikeID string, upd HikeUpdate) (*models.Hike, error)

	// Cancel freezes further joins. Bookings are not touched.
	Cancel(hikeID string) (*models.Hike, error)
}

type HikeRepositoryImpl struct {
	db *gorm.DB
}

func NewHikeRepository(db *gorm.DB) HikeRepository {
	return &HikeRepositoryImpl{db: db}
}

func (r *HikeRepositoryImpl) FindByID(id string) (*models.Hike, error) {
	var hike models.Hike
	err := r.db.First(&hike, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrHikeNotFound
		}
		return nil, err
	}
	return &hike, nil
}

func (r *HikeRepositoryImpl) Create(hike *models.Hike) error {
	return r.db.Create(hike).Error
}

func (r *HikeRepositoryImpl) ListUpcoming(now time.Time, limit, offset int) ([]models.Hike, int64, error) {
	var hikes []models.Hike
	var total int64

	query := r.db.Model(&models.Hike{}).
		Where("status = ? AND date > ?", models.HikeStatusActive, now)

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Order("date ASC").Limit(limit).Offset(offset).Find(&hikes).Error
	return hikes, total, err
}

func (r *HikeRepositoryImpl) ListByOwner(ownerID string, limit, offset int) ([]models.Hike, int64, error) {
	var hikes []models.Hike
	var total int64

	query := r.db.Model(&models.Hike{}).Where("owner_guide_id = ?", ownerID)

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Order("date DESC").Limit(limit).Offset(offset).Find(&hikes).Error
	return hikes, total, err
}

func (r *HikeRepositoryImpl) CountActiveBookings(hikeID string) (int64, error) {
	var count int64
	err := r.db.Model(&models.Booking{}).
		Where("hike_id = ? AND status = ?", hikeID, models.BookingStatusActive).
		Count(&count).Error
	return count, err
}

func (r *HikeRepositoryImpl) Update(hikeID string, upd HikeUpdate) (*models.Hike, error) {
	var hike models.Hike
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&hike, "id = ?", hikeID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrHikeNotFound
			}
			return err
		}

		if upd.Capacity != nil && *upd.Capacity != hike.Capacity {
			// The hike row is locked, so the active count cannot move
			// under us while we compare.
			var active int64
			if err := tx.Model(&models.Booking{}).
				Where("hike_id = ? AND status = ?", hikeID, models.BookingStatusActive).
				Count(&active).Error; err != nil {
				return err
			}
			if int64(*upd.Capacity) < active {
				return ErrCapacityBelowActive
			}
			hike.Capacity = *upd.Capacity
		}

		if upd.Title != nil {
			hike.Title = *upd.Title
		}
		if upd.Description != nil {
			hike.Description = *upd.Description
		}
		if upd.Location != nil {
			hike.Location = *upd.Location
		}
		if upd.Date != nil {
			hike.Date = *upd.Date
		}

		return tx.Save(&hike).Error
	})
	if err != nil {
		return nil, err
	}
	return &hike, nil
}

func (r *HikeRepositoryImpl) Cancel(hikeID string) (*models.Hike, error) {
	var hike models.Hike
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&hike, "id = ?", hikeID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrHikeNotFound
			}
			return err
		}

		if hike.Status == models.HikeStatusCancelled {
			return ErrHikeAlreadyCancelled
		}

		hike.Status = models.HikeStatusCancelled
		return tx.Save(&hike).Error
	})
	if err != nil {
		return nil, err
	}
	return &hike, nil
}
