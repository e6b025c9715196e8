package services

import (
	"trailbook_backend/internal/repositories"
	"trailbook_backend/internal/services/dto"
	"trailbook_backend/pkg/apperrors"
)

// BookingService is the capacity-safe join/leave engine. All the race
// handling lives in the repository's locked transaction; this layer owns
// the account-status gate, error mapping and notifications.
type BookingService interface {
	JoinHike(userID, hikeID string) (*dto.BookingResponse, error)
	LeaveHike(userID, hikeID string) error
	GetMyBookings(userID string, page, pageSize int) (*dto.BookingListResponse, error)
	GetParticipants(hikeID string) ([]*dto.ParticipantResponse, error)
}

type bookingService struct {
	bookingRepo  repositories.BookingRepository
	hikeRepo     repositories.HikeRepository
	userRepo     repositories.UserRepository
	notification NotificationService
}

func NewBookingService(
	bookingRepo repositories.BookingRepository,
	hikeRepo repositories.HikeRepository,
	userRepo repositories.UserRepository,
	notification NotificationService,
) BookingService {
	return &bookingService{
		bookingRepo:  bookingRepo,
		hikeRepo:     hikeRepo,
		userRepo:     userRepo,
		notification: notification,
	}
}

func (s *bookingService) JoinHike(userID, hikeID string) (*dto.BookingResponse, error) {
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

	booking, err := s.bookingRepo.Join(userID, hikeID)
	if err != nil {
		switch err {
		case repositories.ErrHikeNotFound:
			return nil, apperrors.ErrNotFound(err)
		case repositories.ErrOwnHike:
			return nil, apperrors.ErrIsOwner
		case repositories.ErrAlreadyJoined:
			return nil, apperrors.ErrAlreadyJoined
		case repositories.ErrHikeFull:
			return nil, apperrors.ErrHikeFull
		default:
			return nil, apperrors.InternalError(err)
		}
	}

	if hike, hikeErr := s.hikeRepo.FindByID(hikeID); hikeErr == nil {
		s.notification.BookingConfirmed(user, hike)
	}

	return dto.NewBookingResponse(booking), nil
}

func (s *bookingService) LeaveHike(userID, hikeID string) error {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		if err == repositories.ErrUserNotFound {
			return apperrors.ErrNotFound(err)
		}
		return apperrors.InternalError(err)
	}
	if !user.IsActive() {
		return apperrors.ErrUserNotActive
	}

	if _, err := s.hikeRepo.FindByID(hikeID); err != nil {
		if err == repositories.ErrHikeNotFound {
			return apperrors.ErrNotFound(err)
		}
		return apperrors.InternalError(err)
	}

	if err := s.bookingRepo.Leave(userID, hikeID); err != nil {
		switch err {
		case repositories.ErrNotJoined:
			return apperrors.ErrNotJoined
		default:
			return apperrors.InternalError(err)
		}
	}
	return nil
}

func (s *bookingService) GetMyBookings(userID string, page, pageSize int) (*dto.BookingListResponse, error) {
	offset := (page - 1) * pageSize
	bookings, total, err := s.bookingRepo.ListByUser(userID, pageSize, offset)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	resp := &dto.BookingListResponse{
		Bookings: make([]*dto.BookingResponse, 0, len(bookings)),
		Total:    total,
		Page:     page,
		PageSize: pageSize,
	}
	for i := range bookings {
		resp.Bookings = append(resp.Bookings, dto.NewBookingResponse(&bookings[i]))
	}
	return resp, nil
}

func (s *bookingService) GetParticipants(hikeID string) ([]*dto.ParticipantResponse, error) {
	if _, err := s.hikeRepo.FindByID(hikeID); err != nil {
		if err == repositories.ErrHikeNotFound {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}

	bookings, err := s.bookingRepo.ListActiveByHike(hikeID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	participants := make([]*dto.ParticipantResponse, 0, len(bookings))
	for i := range bookings {
		participants = append(participants, dto.NewParticipantResponse(&bookings[i]))
	}
	return participants, nil
}
