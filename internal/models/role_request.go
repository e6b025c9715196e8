package models

import "time"

// RoleRequest is a hiker-initiated, admin-adjudicated proposal to become a
// guide. The partial unique index enforces at most one PENDING request per
// user; users may re-apply after a rejection.
type RoleRequest struct {
	BaseModel
	UserID    string            `gorm:"type:uuid;not null;index;uniqueIndex:uniq_pending_role_request,where:status = 'pending'" json:"user_id"`
	Status    RoleRequestStatus `gorm:"type:varchar(20);not null;default:'pending'" json:"status"`
	Message   string            `json:"message"`
	DecidedAt *time.Time        `json:"decided_at,omitempty"`
	DecidedBy *string           `gorm:"type:uuid" json:"decided_by,omitempty"`

	// Relations
	User *User `gorm:"foreignKey:UserID" json:"-"`
}
