package dto

import (
	"time"

	"trailbook_backend/internal/models"
)

type CreateHikeRequest struct {
	Title       string    `json:"title" validate:"required,min=3,max=200"`
	Description string    `json:"description" validate:"max=5000"`
	Location    string    `json:"location" validate:"max=200"`
	Date        time.Time `json:"date" validate:"required,future-date"`
	Capacity    int       `json:"capacity" validate:"required,min=1"`
}

type UpdateHikeRequest struct {
	Title       *string    `json:"title" validate:"omitempty,min=3,max=200"`
	Description *string    `json:"description" validate:"omitempty,max=5000"`
	Location    *string    `json:"location" validate:"omitempty,max=200"`
	Date        *time.Time `json:"date" validate:"omitempty,future-date"`
	Capacity    *int       `json:"capacity" validate:"omitempty,min=1"`
}

type HikeResponse struct {
	ID           string            `json:"id"`
	OwnerGuideID string            `json:"owner_guide_id"`
	Title        string            `json:"title"`
	Description  string            `json:"description"`
	Location     string            `json:"location"`
	Date         time.Time         `json:"date"`
	Capacity     int               `json:"capacity"`
	Status       models.HikeStatus `json:"status"`
	// Participants is the current ACTIVE booking count; SpotsLeft is
	// derived so clients never compute capacity math themselves.
	Participants  int64     `json:"participants"`
	SpotsLeft     int64     `json:"spots_left"`
	AverageRating float64   `json:"average_rating"`
	ReviewCount   int64     `json:"review_count"`
	CreatedAt     time.Time `json:"created_at"`
}

func NewHikeResponse(hike *models.Hike, participants int64, avgRating float64, reviewCount int64) *HikeResponse {
	spotsLeft := int64(hike.Capacity) - participants
	if spotsLeft < 0 {
		spotsLeft = 0
	}
	return &HikeResponse{
		ID:            hike.ID,
		OwnerGuideID:  hike.OwnerGuideID,
		Title:         hike.Title,
		Description:   hike.Description,
		Location:      hike.Location,
		Date:          hike.Date,
		Capacity:      hike.Capacity,
		Status:        hike.Status,
		Participants:  participants,
		SpotsLeft:     spotsLeft,
		AverageRating: avgRating,
		ReviewCount:   reviewCount,
		CreatedAt:     hike.CreatedAt,
	}
}

type HikeListResponse struct {
	Hikes    []*HikeResponse `json:"hikes"`
	Total    int64           `json:"total"`
	Page     int             `json:"page"`
	PageSize int             `json:"page_size"`
}
