package repositories

import (
	"errors"
	"time"

	"trailbook_backend/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrRoleRequestNotFound   = errors.New("role request not found")
	ErrRoleRequestNotPending = errors.New("role request is not pending")
	ErrPendingRequestExists  = errors.New("pending role request already exists")
	ErrAlreadyGuideOrAdmin   = errors.New("user already guide or admin")
)

type RoleRequestRepository interface {
	FindByID(id string) (*models.RoleRequest, error)
	FindLatestByUser(userID string) (*models.RoleRequest, error)
	ListPending(limit, offset int) ([]models.RoleRequest, int64, error)

	// CreatePending inserts a PENDING request under a lock on the user
	// row — same lock-then-check-then-insert shape as the booking join,
	// scoped per user instead of per hike. The partial unique index on
	// pending rows is the backstop.
	CreatePending(userID, message string) (*models.RoleRequest, error)

	// Approve atomically marks the request APPROVED, promotes the user to
	// guide and creates the GuideProfile. All three commit or none do.
	Approve(requestID, adminID string) (*models.RoleRequest, *models.User, *models.GuideProfile, error)

	// Reject marks the request REJECTED and touches nothing else. The user
	// may apply again later.
	Reject(requestID, adminID string) (*models.RoleRequest, error)
}

type RoleRequestRepositoryImpl struct {
	db *gorm.DB
}

func NewRoleRequestRepository(db *gorm.DB) RoleRequestRepository {
	return &RoleRequestRepositoryImpl{db: db}
}

func (r *RoleRequestRepositoryImpl) FindByID(id string) (*models.RoleRequest, error) {
	var req models.RoleRequest
	err := r.db.First(&req, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRoleRequestNotFound
		}
		return nil, err
	}
	return &req, nil
}

func (r *RoleRequestRepositoryImpl) FindLatestByUser(userID string) (*models.RoleRequest, error) {
	var req models.RoleRequest
	err := r.db.Where("user_id = ?", userID).Order("created_at DESC").First(&req).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRoleRequestNotFound
		}
		return nil, err
	}
	return &req, nil
}

func (r *RoleRequestRepositoryImpl) ListPending(limit, offset int) ([]models.RoleRequest, int64, error) {
	var requests []models.RoleRequest
	var total int64

	query := r.db.Model(&models.RoleRequest{}).
		Where("status = ?", models.RoleRequestStatusPending)

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Preload("User").Order("created_at ASC").
		Limit(limit).Offset(offset).Find(&requests).Error
	return requests, total, err
}

func (r *RoleRequestRepositoryImpl) CreatePending(userID, message string) (*models.RoleRequest, error) {
	var request *models.RoleRequest

	err := r.db.Transaction(func(tx *gorm.DB) error {
		var user models.User
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&user, "id = ?", userID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrUserNotFound
			}
			return err
		}

		if user.Role == models.UserRoleGuide || user.Role == models.UserRoleAdmin {
			return ErrAlreadyGuideOrAdmin
		}

		var pending models.RoleRequest
		err := tx.Where("user_id = ? AND status = ?", userID, models.RoleRequestStatusPending).
			First(&pending).Error
		if err == nil {
			return ErrPendingRequestExists
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		req := &models.RoleRequest{
			UserID:  userID,
			Status:  models.RoleRequestStatusPending,
			Message: message,
		}
		if err := tx.Create(req).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrPendingRequestExists
			}
			return err
		}

		request = req
		return nil
	})
	if err != nil {
		return nil, err
	}
	return request, nil
}

func (r *RoleRequestRepositoryImpl) Approve(requestID, adminID string) (*models.RoleRequest, *models.User, *models.GuideProfile, error) {
	var (
		request models.RoleRequest
		user    models.User
		profile models.GuideProfile
	)

	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&request, "id = ?", requestID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrRoleRequestNotFound
			}
			return err
		}

		if request.Status != models.RoleRequestStatusPending {
			return ErrRoleRequestNotPending
		}

		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&user, "id = ?", request.UserID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrUserNotFound
			}
			return err
		}

		now := time.Now()
		request.Status = models.RoleRequestStatusApproved
		request.DecidedAt = &now
		request.DecidedBy = &adminID
		if err := tx.Save(&request).Error; err != nil {
			return err
		}

		user.Role = models.UserRoleGuide
		if err := tx.Save(&user).Error; err != nil {
			return err
		}

		// The profile is created exactly once, in the same transaction
		// that flips the role: a guide-role user without a GuideProfile
		// must never be observable.
		profile = models.GuideProfile{UserID: user.ID}
		return tx.Create(&profile).Error
	})
	if err != nil {
		return nil, nil, nil, err
	}
	return &request, &user, &profile, nil
}

func (r *RoleRequestRepositoryImpl) Reject(requestID, adminID string) (*models.RoleRequest, error) {
	var request models.RoleRequest

	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&request, "id = ?", requestID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrRoleRequestNotFound
			}
			return err
		}

		if request.Status != models.RoleRequestStatusPending {
			return ErrRoleRequestNotPending
		}

		now := time.Now()
		request.Status = models.RoleRequestStatusRejected
		request.DecidedAt = &now
		request.DecidedBy = &adminID
		return tx.Save(&request).Error
	})
	if err != nil {
		return nil, err
	}
	return &request, nil
}
