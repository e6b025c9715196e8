package dto

import (
	"time"

	"trailbook_backend/internal/models"
)

type BookingResponse struct {
	ID          string               `json:"id"`
	UserID      string               `json:"user_id"`
	HikeID      string               `json:"hike_id"`
	Status      models.BookingStatus `json:"status"`
	CreatedAt   time.Time            `json:"created_at"`
	CancelledAt *time.Time           `json:"cancelled_at,omitempty"`
}

func NewBookingResponse(booking *models.Booking) *BookingResponse {
	return &BookingResponse{
		ID:          booking.ID,
		UserID:      booking.UserID,
		HikeID:      booking.HikeID,
		Status:      booking.Status,
		CreatedAt:   booking.CreatedAt,
		CancelledAt: booking.CancelledAt,
	}
}

type BookingListResponse struct {
	Bookings []*BookingResponse `json:"bookings"`
	Total    int64              `json:"total"`
	Page     int                `json:"page"`
	PageSize int                `json:"page_size"`
}

// ParticipantResponse lists a hike's active participants. Soft-deleted
// accounts show their anonymized display name; the row itself survives.
type ParticipantResponse struct {
	UserID      string    `json:"user_id"`
	DisplayName string    `json:"display_name"`
	JoinedAt    time.Time `json:"joined_at"`
}

func NewParticipantResponse(booking *models.Booking) *ParticipantResponse {
	resp := &ParticipantResponse{
		UserID:   booking.UserID,
		JoinedAt: booking.CreatedAt,
	}
	if booking.User != nil {
		resp.DisplayName = booking.User.DisplayName
	}
	return resp
}
