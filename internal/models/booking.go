package models

import "time"

// Booking records a seat on a hike. Rows are never deleted: leave flips
// Status to cancelled and a later re-join inserts a fresh row, so booking
// history survives for reviews and analytics.
//
// The partial unique index is the independent backstop behind the hike-row
// lock: at most one ACTIVE row may exist per (user, hike) even if a writer
// ever bypasses the lock.
type Booking struct {
	BaseModel
	UserID string        `gorm:"type:uuid;not null;index;uniqueIndex:uniq_active_booking,where:status = 'active'" json:"user_id"`
	HikeID string        `gorm:"type:uuid;not null;index;uniqueIndex:uniq_active_booking,where:status = 'active'" json:"hike_id"`
	Status BookingStatus `gorm:"type:varchar(20);not null;default:'active'" json:"status"`
	// CancelledAt records when the seat was released. A booking cancelled
	// only after the hike date still counts as attendance for reviews.
	CancelledAt *time.Time `json:"cancelled_at,omitempty"`

	// Relations
	User *User `gorm:"foreignKey:UserID" json:"-"`
	Hike *Hike `gorm:"foreignKey:HikeID" json:"-"`
}

func (b *Booking) IsActive() bool {
	return b.Status == BookingStatusActive
}
