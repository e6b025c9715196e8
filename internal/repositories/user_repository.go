package repositories

import (
	"errors"
	"time"

	"trailbook_backend/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrUserAlreadyExists  = errors.New("user already exists")
	ErrUserAlreadyDeleted = errors.New("user already deleted")
)

type UserRepository interface {
	FindByID(id string) (*models.User, error)
	FindByExternalID(externalID string) (*models.User, error)
	FindByEmail(email string) (*models.User, error)
	Create(user *models.User) error
	Update(user *models.User) error
	FindByRole(role models.UserRole, limit, offset int) ([]models.User, error)
	CountAll() (int64, error)

	// SoftDelete marks the account DELETED and overwrites its identity
	// fields in one transaction. Historical rows keep referencing the id.
	SoftDelete(userID, anonEmail, anonName string) error

	// SoftDeleteGuide additionally cancels the guide's future ACTIVE hikes
	// in the same transaction. Past hikes stay untouched.
	SoftDeleteGuide(userID, anonEmail, anonName string, now time.Time) error
}

type UserRepositoryImpl struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &UserRepositoryImpl{db: db}
}

func (r *UserRepositoryImpl) FindByID(id string) (*models.User, error) {
	var user models.User
	err := r.db.Preload("GuideProfile").First(&user, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *UserRepositoryImpl) FindByExternalID(externalID string) (*models.User, error) {
	var user models.User
	err := r.db.Preload("GuideProfile").First(&user, "external_id = ?", externalID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *UserRepositoryImpl) FindByEmail(email string) (*models.User, error) {
	var user models.User
	err := r.db.Preload("GuideProfile").First(&user, "email = ?", email).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *UserRepositoryImpl) Create(user *models.User) error {
	if err := r.db.Create(user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrUserAlreadyExists
		}
		return err
	}
	return nil
}

func (r *UserRepositoryImpl) Update(user *models.User) error {
	return r.db.Save(user).Error
}

func (r *UserRepositoryImpl) FindByRole(role models.UserRole, limit, offset int) ([]models.User, error) {
	var users []models.User
	err := r.db.Where("role = ?", role).
		Order("created_at DESC").
		Limit(limit).Offset(offset).
		Find(&users).Error
	return users, err
}

func (r *UserRepositoryImpl) CountAll() (int64, error) {
	var count int64
	err := r.db.Model(&models.User{}).Count(&count).Error
	return count, err
}

func (r *UserRepositoryImpl) SoftDelete(userID, anonEmail, anonName string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		return anonymizeUserInTx(tx, userID, anonEmail, anonName)
	})
}

func (r *UserRepositoryImpl) SoftDeleteGuide(userID, anonEmail, anonName string, now time.Time) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := anonymizeUserInTx(tx, userID, anonEmail, anonName); err != nil {
			return err
		}
		return cancelFutureHikesInTx(tx, userID, now)
	})
}

// anonymizeUserInTx is the single explicit place account identity is
// destroyed. Deletion is one-way: a second call fails instead of silently
// succeeding, and the anonymized values are derived from the id by the
// caller so another account's data can never be reused.
func anonymizeUserInTx(tx *gorm.DB, userID, anonEmail, anonName string) error {
	var user models.User
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&user, "id = ?", userID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return err
	}

	if user.Status == models.UserStatusDeleted {
		return ErrUserAlreadyDeleted
	}

	return tx.Model(&user).Updates(map[string]interface{}{
		"status":       models.UserStatusDeleted,
		"email":        anonEmail,
		"display_name": anonName,
		"updated_at":   time.Now(),
	}).Error
}

// cancelFutureHikesInTx freezes joins on a deleted guide's upcoming hikes.
// Existing bookings stay as historical rows.
func cancelFutureHikesInTx(tx *gorm.DB, guideID string, now time.Time) error {
	return tx.Model(&models.Hike{}).
		Where("owner_guide_id = ? AND status = ? AND date > ?", guideID, models.HikeStatusActive, now).
		Updates(map[string]interface{}{
			"status":     models.HikeStatusCancelled,
			"updated_at": time.Now(),
		}).Error
}
