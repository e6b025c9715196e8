package services

import (
	"time"

	"trailbook_backend/internal/models"
	"trailbook_backend/internal/repositories"
	"trailbook_backend/internal/services/dto"
	"trailbook_backend/pkg/apperrors"
)

type HikeService interface {
	CreateHike(ownerID string, req *dto.CreateHikeRequest) (*dto.HikeResponse, error)
	GetHike(hikeID string) (*dto.HikeResponse, error)
	ListUpcoming(page, pageSize int) (*dto.HikeListResponse, error)
	ListMine(ownerID string, page, pageSize int) (*dto.HikeListResponse, error)
	UpdateHike(ownerID, hikeID string, req *dto.UpdateHikeRequest) (*dto.HikeResponse, error)
	CancelHike(ownerID, hikeID string) error
}

type hikeService struct {
	hikeRepo     repositories.HikeRepository
	userRepo     repositories.UserRepository
	bookingRepo  repositories.BookingRepository
	reviewRepo   repositories.ReviewRepository
	notification NotificationService
}

func NewHikeService(
	hikeRepo repositories.HikeRepository,
	userRepo repositories.UserRepository,
	bookingRepo repositories.BookingRepository,
	reviewRepo repositories.ReviewRepository,
	notification NotificationService,
) HikeService {
	return &hikeService{
		hikeRepo:     hikeRepo,
		userRepo:     userRepo,
		bookingRepo:  bookingRepo,
		reviewRepo:   reviewRepo,
		notification: notification,
	}
}

func (s *hikeService) CreateHike(ownerID string, req *dto.CreateHikeRequest) (*dto.HikeResponse, error) {
	owner, err := s.userRepo.FindByID(ownerID)
	if err != nil {
		if err == repositories.ErrUserNotFound {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}
	if !owner.IsActive() {
		return nil, apperrors.ErrUserNotActive
	}
	if owner.Role != models.UserRoleGuide && owner.Role != models.UserRoleAdmin {
		return nil, apperrors.NewForbiddenError("Only guides can publish hikes")
	}

	hike := &models.Hike{
		OwnerGuideID: ownerID,
		Title:        req.Title,
		Description:  req.Description,
		Location:     req.Location,
		Date:         req.Date,
		Capacity:     req.Capacity,
		Status:       models.HikeStatusActive,
	}
	if err := s.hikeRepo.Create(hike); err != nil {
		return nil, apperrors.InternalError(err)
	}

	return dto.NewHikeResponse(hike, 0, 0, 0), nil
}

func (s *hikeService) GetHike(hikeID string) (*dto.HikeResponse, error) {
	hike, err := s.hikeRepo.FindByID(hikeID)
	if err != nil {
		if err == repositories.ErrHikeNotFound {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}
	return s.toResponse(hike)
}

func (s *hikeService) ListUpcoming(page, pageSize int) (*dto.HikeListResponse, error) {
	offset := (page - 1) * pageSize
	hikes, total, err := s.hikeRepo.ListUpcoming(time.Now(), pageSize, offset)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return s.toListResponse(hikes, total, page, pageSize)
}

func (s *hikeService) ListMine(ownerID string, page, pageSize int) (*dto.HikeListResponse, error) {
	offset := (page - 1) * pageSize
	hikes, total, err := s.hikeRepo.ListByOwner(ownerID, pageSize, offset)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return s.toListResponse(hikes, total, page, pageSize)
}

func (s *hikeService) UpdateHike(ownerID, hikeID string, req *dto.UpdateHikeRequest) (*dto.HikeResponse, error) {
	if err := s.authorizeOwner(ownerID, hikeID); err != nil {
		return nil, err
	}

	updated, err := s.hikeRepo.Update(hikeID, repositories.HikeUpdate{
		Title:       req.Title,
		Description: req.Description,
		Location:    req.Location,
		Date:        req.Date,
		Capacity:    req.Capacity,
	})
	if err != nil {
		switch err {
		case repositories.ErrHikeNotFound:
			return nil, apperrors.ErrNotFound(err)
		case repositories.ErrCapacityBelowActive:
			return nil, apperrors.ErrCapacityBelowActiveBookings
		default:
			return nil, apperrors.InternalError(err)
		}
	}

	return s.toResponse(updated)
}

func (s *hikeService) CancelHike(ownerID, hikeID string) error {
	if err := s.authorizeOwner(ownerID, hikeID); err != nil {
		return err
	}

	hike, err := s.hikeRepo.Cancel(hikeID)
	if err != nil {
		switch err {
		case repositories.ErrHikeNotFound:
			return apperrors.ErrNotFound(err)
		case repositories.ErrHikeAlreadyCancelled:
			return apperrors.ErrConflict(err, "hike", "Hike is already cancelled")
		default:
			return apperrors.InternalError(err)
		}
	}

	// Active participants learn their seat is gone; the booking rows stay.
	if bookings, listErr := s.bookingRepo.ListActiveByHike(hikeID); listErr == nil {
		for i := range bookings {
			if bookings[i].User != nil {
				s.notification.HikeCancelled(bookings[i].User, hike)
			}
		}
	}
	return nil
}

// authorizeOwner lets the owning guide or an admin through.
func (s *hikeService) authorizeOwner(ownerID, hikeID string) error {
	user, err := s.userRepo.FindByID(ownerID)
	if err != nil {
		if err == repositories.ErrUserNotFound {
			return apperrors.ErrNotFound(err)
		}
		return apperrors.InternalError(err)
	}
	if !user.IsActive() {
		return apperrors.ErrUserNotActive
	}
	if user.Role == models.UserRoleAdmin {
		return nil
	}

	hike, err := s.hikeRepo.FindByID(hikeID)
	if err != nil {
		if err == repositories.ErrHikeNotFound {
			return apperrors.ErrNotFound(err)
		}
		return apperrors.InternalError(err)
	}
	if hike.OwnerGuideID != ownerID {
		return apperrors.ErrNotHikeOwner
	}
	return nil
}

func (s *hikeService) toResponse(hike *models.Hike) (*dto.HikeResponse, error) {
	participants, err := s.hikeRepo.CountActiveBookings(hike.ID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	avg, count, err := s.reviewRepo.AverageRating(hike.ID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return dto.NewHikeResponse(hike, participants, avg, count), nil
}

func (s *hikeService) toListResponse(hikes []models.Hike, total int64, page, pageSize int) (*dto.HikeListResponse, error) {
	resp := &dto.HikeListResponse{
		Hikes:    make([]*dto.HikeResponse, 0, len(hikes)),
		Total:    total,
		Page:     page,
		PageSize: pageSize,
	}
	for i := range hikes {
		hr, err := s.toResponse(&hikes[i])
		if err != nil {
			return nil, err
		}
		resp.Hikes = append(resp.Hikes, hr)
	}
	return resp, nil
}
