package dto

import (
	"time"

	"trailbook_backend/internal/models"
)

type CreateReviewRequest struct {
	Rating  int    `json:"rating" validate:"required,min=1,max=5"`
	Comment string `json:"comment" validate:"max=2000"`
}

type ReviewResponse struct {
	ID          string    `json:"id"`
	UserID      string    `json:"user_id"`
	DisplayName string    `json:"display_name,omitempty"`
	HikeID      string    `json:"hike_id"`
	Rating      int       `json:"rating"`
	Comment     string    `json:"comment,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

func NewReviewResponse(review *models.Review) *ReviewResponse {
	resp := &ReviewResponse{
		ID:        review.ID,
		UserID:    review.UserID,
		HikeID:    review.HikeID,
		Rating:    review.Rating,
		Comment:   review.Comment,
		CreatedAt: review.CreatedAt,
	}
	if review.User != nil {
		resp.DisplayName = review.User.DisplayName
	}
	return resp
}

type ReviewListResponse struct {
	Reviews  []*ReviewResponse `json:"reviews"`
	Total    int64             `json:"total"`
	Page     int               `json:"page"`
	PageSize int               `json:"page_size"`
}

type CanReviewResponse struct {
	CanReview bool   `json:"can_review"`
	Reason    string `json:"reason,omitempty"`
}
