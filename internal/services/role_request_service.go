package services

import (
	"trailbook_backend/internal/repositories"
	"trailbook_backend/internal/services/dto"
	"trailbook_backend/pkg/apperrors"
)

// RoleRequestService governs the hiker -> guide transition. Creation uses
// the same lock-then-check-then-insert shape as booking, scoped per user;
// approval promotes the user and creates the guide profile atomically.
type RoleRequestService interface {
	RequestGuideRole(userID string, req *dto.CreateRoleRequestRequest) (*dto.RoleRequestResponse, error)
	Approve(adminID, requestID string) (*dto.ApproveRoleRequestResponse, error)
	Reject(adminID, requestID string) (*dto.RoleRequestResponse, error)
	ListPending(page, pageSize int) (*dto.RoleRequestListResponse, error)
	GetMyLatest(userID string) (*dto.RoleRequestResponse, error)
}

type roleRequestService struct {
	roleRequestRepo repositories.RoleRequestRepository
	userRepo        repositories.UserRepository
	notification    NotificationService
}

func NewRoleRequestService(
	roleRequestRepo repositories.RoleRequestRepository,
	userRepo repositories.UserRepository,
	notification NotificationService,
) RoleRequestService {
	return &roleRequestService{
		roleRequestRepo: roleRequestRepo,
		userRepo:        userRepo,
		notification:    notification,
	}
}

func (s *roleRequestService) RequestGuideRole(userID string, req *dto.CreateRoleRequestRequest) (*dto.RoleRequestResponse, error) {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		if err == repositories.ErrUserNotFound {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}
	if !user.IsActive() {
		return nil, apperrors.ErrUserNotActive
	}

	request, err := s.roleRequestRepo.CreatePending(userID, req.Message)
	if err != nil {
		switch err {
		case repositories.ErrAlreadyGuideOrAdmin:
			return nil, apperrors.ErrAlreadyGuideOrAdmin
		case repositories.ErrPendingRequestExists:
			return nil, apperrors.ErrPendingRequestExists
		case repositories.ErrUserNotFound:
			return nil, apperrors.ErrNotFound(err)
		default:
			return nil, apperrors.InternalError(err)
		}
	}

	return dto.NewRoleRequestResponse(request), nil
}

func (s *roleRequestService) Approve(adminID, requestID string) (*dto.ApproveRoleRequestResponse, error) {
	request, user, _, err := s.roleRequestRepo.Approve(requestID, adminID)
	if err != nil {
		switch err {
		case repositories.ErrRoleRequestNotFound:
			return nil, apperrors.ErrNotFound(err)
		case repositories.ErrRoleRequestNotPending:
			return nil, apperrors.ErrRequestNotPending
		default:
			return nil, apperrors.InternalError(err)
		}
	}

	s.notification.RoleRequestDecided(user, true)

	// Re-read for the relation preload; the transaction already committed.
	full, findErr := s.userRepo.FindByID(user.ID)
	if findErr == nil {
		user = full
	}

	return &dto.ApproveRoleRequestResponse{
		Request: dto.NewRoleRequestResponse(request),
		User:    dto.NewUserResponse(user),
	}, nil
}

func (s *roleRequestService) Reject(adminID, requestID string) (*dto.RoleRequestResponse, error) {
	request, err := s.roleRequestRepo.Reject(requestID, adminID)
	if err != nil {
		switch err {
		case repositories.ErrRoleRequestNotFound:
			return nil, apperrors.ErrNotFound(err)
		case repositories.ErrRoleRequestNotPending:
			return nil, apperrors.ErrRequestNotPending
		default:
			return nil, apperrors.InternalError(err)
		}
	}

	if user, findErr := s.userRepo.FindByID(request.UserID); findErr == nil {
		s.notification.RoleRequestDecided(user, false)
	}

	return dto.NewRoleRequestResponse(request), nil
}

func (s *roleRequestService) ListPending(page, pageSize int) (*dto.RoleRequestListResponse, error) {
	offset := (page - 1) * pageSize
	requests, total, err := s.roleRequestRepo.ListPending(pageSize, offset)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	resp := &dto.RoleRequestListResponse{
		Requests: make([]*dto.RoleRequestResponse, 0, len(requests)),
		Total:    total,
		Page:     page,
		PageSize: pageSize,
	}
	for i := range requests {
		resp.Requests = append(resp.Requests, dto.NewRoleRequestResponse(&requests[i]))
	}
	return resp, nil
}

func (s *roleRequestService) GetMyLatest(userID string) (*dto.RoleRequestResponse, error) {
	request, err := s.roleRequestRepo.FindLatestByUser(userID)
	if err != nil {
		if err == repositories.ErrRoleRequestNotFound {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}
	return dto.NewRoleRequestResponse(request), nil
}
