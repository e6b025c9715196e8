package models

import "time"

// Hike is a capacity-limited group hike owned by exactly one guide.
// Cancelling a hike never touches its bookings; it only freezes joins.
type Hike struct {
	BaseModel
	OwnerGuideID string     `gorm:"type:uuid;not null;index" json:"owner_guide_id"`
	Title        string     `gorm:"not null" json:"title"`
	Description  string     `json:"description"`
	Location     string     `json:"location"`
	Date         time.Time  `gorm:"not null;index" json:"date"`
	Capacity     int        `gorm:"not null;check:capacity >= 1" json:"capacity"`
	Status       HikeStatus `gorm:"type:varchar(20);not null;default:'active'" json:"status"`

	// Relations
	OwnerGuide *User `gorm:"foreignKey:OwnerGuideID" json:"-"`
}

func (h *Hike) IsActive() bool {
	return h.Status == HikeStatusActive
}

// IsPast reports whether the hike date is strictly in the past.
func (h *Hike) IsPast(now time.Time) bool {
	return h.Date.Before(now)
}
