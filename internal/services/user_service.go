package services

import (
	"strings"

	"trailbook_backend/internal/models"
	"trailbook_backend/internal/repositories"
	"trailbook_backend/internal/services/dto"
	"trailbook_backend/pkg/apperrors"
)

type UserService interface {
	// ResolveIdentity maps a verified external identity to an account row,
	// creating an ACTIVE hiker on first contact. A DELETED account still
	// resolves (so the caller can tell the difference between "unknown"
	// and "gone") but is never reactivated or re-personalized here.
	ResolveIdentity(externalID, emailAddr, displayName string) (*models.User, error)

	GetUser(userID string) (*dto.UserResponse, error)
}

type userService struct {
	userRepo repositories.UserRepository
}

func NewUserService(userRepo repositories.UserRepository) UserService {
	return &userService{userRepo: userRepo}
}

func (s *userService) ResolveIdentity(externalID, emailAddr, displayName string) (*models.User, error) {
	user, err := s.userRepo.FindByExternalID(externalID)
	if err == nil {
		return user, nil
	}
	if err != repositories.ErrUserNotFound {
		return nil, apperrors.InternalError(err)
	}

	if displayName == "" {
		displayName = strings.SplitN(emailAddr, "@", 2)[0]
	}

	user = &models.User{
		Email:       emailAddr,
		DisplayName: displayName,
		Role:        models.UserRoleHiker,
		Status:      models.UserStatusActive,
		ExternalID:  externalID,
	}
	if err := s.userRepo.Create(user); err != nil {
		if err == repositories.ErrUserAlreadyExists {
			// Two first requests for the same identity raced; the row
			// exists now.
			return s.userRepo.FindByExternalID(externalID)
		}
		return nil, apperrors.InternalError(err)
	}
	return user, nil
}

func (s *userService) GetUser(userID string) (*dto.UserResponse, error) {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		if err == repositories.ErrUserNotFound {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}
	return dto.NewUserResponse(user), nil
}
