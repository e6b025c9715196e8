package services

import (
	"fmt"
	"time"

	"trailbook_backend/internal/models"
	"trailbook_backend/internal/repositories"
	"trailbook_backend/pkg/apperrors"
)

// AccountLifecycleService orchestrates soft deletion. Accounts are never
// removed: identity fields are anonymized, status flips to DELETED, and
// every historical booking/review/hike row keeps its reference intact.
type AccountLifecycleService interface {
	SoftDeleteUser(userID string) error
	SoftDeleteGuide(guideUserID string) error
}

type accountLifecycleService struct {
	userRepo repositories.UserRepository
}

func NewAccountLifecycleService(userRepo repositories.UserRepository) AccountLifecycleService {
	return &accountLifecycleService{userRepo: userRepo}
}

// AnonymizedEmail derives the placeholder email deterministically from the
// account id, so no other account's data can ever be reused and repeated
// runs produce the same value.
func AnonymizedEmail(userID string) string {
	return fmt.Sprintf("deleted-%s@anonymized.invalid", userID)
}

func AnonymizedDisplayName(userID string) string {
	short := userID
	if len(short) > 8 {
		short = short[:8]
	}
	return "Deleted user " + short
}

func (s *accountLifecycleService) SoftDeleteUser(userID string) error {
	err := s.userRepo.SoftDelete(userID, AnonymizedEmail(userID), AnonymizedDisplayName(userID))
	return s.mapDeleteError(err)
}

func (s *accountLifecycleService) SoftDeleteGuide(guideUserID string) error {
	user, err := s.userRepo.FindByID(guideUserID)
	if err != nil {
		if err == repositories.ErrUserNotFound {
			return apperrors.ErrNotFound(err)
		}
		return apperrors.InternalError(err)
	}
	if user.Role != models.UserRoleGuide {
		return apperrors.ErrNotFound(repositories.ErrUserNotFound)
	}

	err = s.userRepo.SoftDeleteGuide(
		guideUserID,
		AnonymizedEmail(guideUserID),
		AnonymizedDisplayName(guideUserID),
		time.Now(),
	)
	return s.mapDeleteError(err)
}

func (s *accountLifecycleService) mapDeleteError(err error) error {
	switch err {
	case nil:
		return nil
	case repositories.ErrUserNotFound:
		return apperrors.ErrNotFound(err)
	case repositories.ErrUserAlreadyDeleted:
		return apperrors.ErrAlreadyDeleted
	default:
		return apperrors.InternalError(err)
	}
}
