package models

// Review is a hiker's one-time rating of a hike they attended. The unique
// index holds regardless of what later happened to the booking or account.
type Review struct {
	BaseModel
	UserID  string `gorm:"type:uuid;not null;uniqueIndex:uniq_user_hike_review" json:"user_id"`
	HikeID  string `gorm:"type:uuid;not null;index;uniqueIndex:uniq_user_hike_review" json:"hike_id"`
	Rating  int    `gorm:"not null;check:rating >= 1 AND rating <= 5" json:"rating"`
	Comment string `json:"comment"`

	// Relations
	User *User `gorm:"foreignKey:UserID" json:"-"`
	Hike *Hike `gorm:"foreignKey:HikeID" json:"-"`
}
