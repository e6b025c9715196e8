package repositories

import (
	"errors"

	"trailbook_backend/internal/models"

	"gorm.io/gorm"
)

var (
	ErrReviewNotFound      = errors.New("review not found")
	ErrReviewAlreadyExists = errors.New("review already exists")
)

type ReviewRepository interface {
	Create(review *models.Review) error
	FindByUserAndHike(userID, hikeID string) (*models.Review, error)
	ListByHike(hikeID string, limit, offset int) ([]models.Review, int64, error)
	AverageRating(hikeID string) (float64, int64, error)
}

type ReviewRepositoryImpl struct {
	db *gorm.DB
}

func NewReviewRepository(db *gorm.DB) ReviewRepository {
	return &ReviewRepositoryImpl{db: db}
}

func (r *ReviewRepositoryImpl) Create(review *models.Review) error {
	if err := r.db.Create(review).Error; err != nil {
		// One review per (user, hike), ever. The unique index holds even
		// for concurrent submissions.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrReviewAlreadyExists
		}
		return err
	}
	return nil
}

func (r *ReviewRepositoryImpl) FindByUserAndHike(userID, hikeID string) (*models.Review, error) {
	var review models.Review
	err := r.db.Where("user_id = ? AND hike_id = ?", userID, hikeID).First(&review).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReviewNotFound
		}
		return nil, err
	}
	return &review, nil
}

func (r *ReviewRepositoryImpl) ListByHike(hikeID string, limit, offset int) ([]models.Review, int64, error) {
	var reviews []models.Review
	var total int64

	query := r.db.Model(&models.Review{}).Where("hike_id = ?", hikeID)

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Preload("User").Order("created_at DESC").
		Limit(limit).Offset(offset).Find(&reviews).Error
	return reviews, total, err
}

func (r *ReviewRepositoryImpl) AverageRating(hikeID string) (float64, int64, error) {
	var result struct {
		Avg   float64
		Count int64
	}
	err := r.db.Model(&models.Review{}).
		Select("COALESCE(AVG(rating), 0) AS avg, COUNT(*) AS count").
		Where("hike_id = ?", hikeID).
		Scan(&result).Error
	return result.Avg, result.Count, err
}
