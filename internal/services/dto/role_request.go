package dto

import (
	"time"

	"trailbook_backend/internal/models"
)

type CreateRoleRequestRequest struct {
	Message string `json:"message" validate:"max=1000"`
}

type RoleRequestResponse struct {
	ID        string                   `json:"id"`
	UserID    string                   `json:"user_id"`
	Status    models.RoleRequestStatus `json:"status"`
	Message   string                   `json:"message,omitempty"`
	CreatedAt time.Time                `json:"created_at"`
	DecidedAt *time.Time               `json:"decided_at,omitempty"`
}

func NewRoleRequestResponse(req *models.RoleRequest) *RoleRequestResponse {
	return &RoleRequestResponse{
		ID:        req.ID,
		UserID:    req.UserID,
		Status:    req.Status,
		Message:   req.Message,
		CreatedAt: req.CreatedAt,
		DecidedAt: req.DecidedAt,
	}
}

type RoleRequestListResponse struct {
	Requests []*RoleRequestResponse `json:"requests"`
	Total    int64                  `json:"total"`
	Page     int                    `json:"page"`
	PageSize int                    `json:"page_size"`
}

// ApproveRoleRequestResponse returns everything the approval transaction
// produced: the decided request, the promoted user and the new profile.
type ApproveRoleRequestResponse struct {
	Request *RoleRequestResponse `json:"request"`
	User    *UserResponse        `json:"user"`
}
