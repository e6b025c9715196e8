package services

import (
	"time"

	"trailbook_backend/internal/models"
	"trailbook_backend/internal/repositories"
	"trailbook_backend/internal/services/dto"
	"trailbook_backend/pkg/apperrors"
)

// ReviewService derives review eligibility from booking history and the
// hike date, and enforces the one-review-per-(user,hike) rule.
type ReviewService interface {
	CanReview(userID, hikeID string) (*dto.CanReviewResponse, error)
	CreateReview(userID, hikeID string, req *dto.CreateReviewRequest) (*dto.ReviewResponse, error)
	ListHikeReviews(hikeID string, page, pageSize int) (*dto.ReviewListResponse, error)
}

type reviewService struct {
	reviewRepo  repositories.ReviewRepository
	bookingRepo repositories.BookingRepository
	hikeRepo    repositories.HikeRepository
	userRepo    repositories.UserRepository
}

func NewReviewService(
	reviewRepo repositories.ReviewRepository,
	bookingRepo repositories.BookingRepository,
	hikeRepo repositories.HikeRepository,
	userRepo repositories.UserRepository,
) ReviewService {
	return &reviewService{
		reviewRepo:  reviewRepo,
		bookingRepo: bookingRepo,
		hikeRepo:    hikeRepo,
		userRepo:    userRepo,
	}
}

func (s *reviewService) CanReview(userID, hikeID string) (*dto.CanReviewResponse, error) {
	hike, err := s.hikeRepo.FindByID(hikeID)
	if err != nil {
		if err == repositories.ErrHikeNotFound {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}

	if !hike.IsPast(time.Now()) {
		return &dto.CanReviewResponse{CanReview: false, Reason: "hike has not taken place yet"}, nil
	}

	attended, err := s.bookingRepo.HasAttendance(userID, hikeID, hike.Date)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	if !attended {
		return &dto.CanReviewResponse{CanReview: false, Reason: "no qualifying booking for this hike"}, nil
	}

	_, err = s.reviewRepo.FindByUserAndHike(userID, hikeID)
	if err == nil {
		return &dto.CanReviewResponse{CanReview: false, Reason: "already reviewed"}, nil
	}
	if err != repositories.ErrReviewNotFound {
		return nil, apperrors.InternalError(err)
	}

	return &dto.CanReviewResponse{CanReview: true}, nil
}

func (s *reviewService) CreateReview(userID, hikeID string, req *dto.CreateReviewRequest) (*dto.ReviewResponse, error) {
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

	eligibility, err := s.CanReview(userID, hikeID)
	if err != nil {
		return nil, err
	}
	if !eligibility.CanReview {
		if eligibility.Reason == "already reviewed" {
			return nil, apperrors.ErrAlreadyReviewed
		}
		return nil, apperrors.ErrReviewNotAllowed
	}

	review := &models.Review{
		UserID:  userID,
		HikeID:  hikeID,
		Rating:  req.Rating,
		Comment: req.Comment,
	}
	if err := s.reviewRepo.Create(review); err != nil {
		// The unique index catches two concurrent submissions; the loser
		// sees the same conflict a sequential duplicate would.
		if err == repositories.ErrReviewAlreadyExists {
			return nil, apperrors.ErrAlreadyReviewed
		}
		return nil, apperrors.InternalError(err)
	}

	review.User = user
	return dto.NewReviewResponse(review), nil
}

func (s *reviewService) ListHikeReviews(hikeID string, page, pageSize int) (*dto.ReviewListResponse, error) {
	if _, err := s.hikeRepo.FindByID(hikeID); err != nil {
		if err == repositories.ErrHikeNotFound {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}

	offset := (page - 1) * pageSize
	reviews, total, err := s.reviewRepo.ListByHike(hikeID, pageSize, offset)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	resp := &dto.ReviewListResponse{
		Reviews:  make([]*dto.ReviewResponse, 0, len(reviews)),
		Total:    total,
		Page:     page,
		PageSize: pageSize,
	}
	for i := range reviews {
		resp.Reviews = append(resp.Reviews, dto.NewReviewResponse(&reviews[i]))
	}
	return resp, nil
}
