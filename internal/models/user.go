package models

// User is the account row every other component reads. Accounts are never
// physically deleted: soft delete flips Status and anonymizes the identity
// fields while the row (and its id) stays referenced by bookings, reviews
// and hikes.
type User struct {
	BaseModel
	Email       string     `gorm:"uniqueIndex;not null" json:"email"`
	DisplayName string     `gorm:"not null" json:"display_name"`
	Role        UserRole   `gorm:"type:varchar(20);not null;default:'hiker'" json:"role"`
	Status      UserStatus `gorm:"type:varchar(20);not null;default:'active'" json:"status"`
	// ExternalID is the opaque subject issued by the identity provider.
	// This backend never issues or validates credentials itself.
	ExternalID string `gorm:"uniqueIndex;not null" json:"-"`

	// Relations
	GuideProfile *GuideProfile `gorm:"foreignKey:UserID" json:"guide_profile,omitempty"`
}

func (u *User) IsActive() bool {
	return u.Status == UserStatusActive
}

// GuideProfile exists 1:1 with a User whose role is guide. It is created
// exactly once, inside the same transaction that promotes the user.
type GuideProfile struct {
	BaseModel
	UserID   string `gorm:"type:uuid;uniqueIndex;not null" json:"user_id"`
	Bio      string `json:"bio"`
	Verified bool   `gorm:"default:false" json:"verified"`
	Featured bool   `gorm:"default:false" json:"featured"`
}
