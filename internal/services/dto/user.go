package dto

import (
	"time"

	"trailbook_backend/internal/models"
)

type GuideProfileResponse struct {
	Bio      string `json:"bio"`
	Verified bool   `json:"verified"`
	Featured bool   `json:"featured"`
}

type UserResponse struct {
	ID           string                `json:"id"`
	Email        string                `json:"email"`
	DisplayName  string                `json:"display_name"`
	Role         models.UserRole       `json:"role"`
	Status       models.UserStatus     `json:"status"`
	CreatedAt    time.Time             `json:"created_at"`
	GuideProfile *GuideProfileResponse `json:"guide_profile,omitempty"`
}

func NewUserResponse(user *models.User) *UserResponse {
	resp := &UserResponse{
		ID:          user.ID,
		Email:       user.Email,
		DisplayName: user.DisplayName,
		Role:        user.Role,
		Status:      user.Status,
		CreatedAt:   user.CreatedAt,
	}
	if user.GuideProfile != nil {
		resp.GuideProfile = &GuideProfileResponse{
			Bio:      user.GuideProfile.Bio,
			Verified: user.GuideProfile.Verified,
			Featured: user.GuideProfile.Featured,
		}
	}
	return resp
}
