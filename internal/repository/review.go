package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/satishydv/gharwa-backend/internal/models"
	"gorm.io/gorm"
)

// ReviewRepository defines review data operations.
type ReviewRepository interface {
	Create(ctx context.Context, review *models.Review) error
	ListActive(ctx context.Context) ([]models.Review, error)
	ListAdmin(ctx context.Context, page, limit int, status string) ([]models.Review, int64, error)
	GetByID(ctx context.Context, id int64) (*models.Review, error)
	UpdateStatus(ctx context.Context, id int64, status string) (bool, error)
	Delete(ctx context.Context, id int64) (bool, error)
}

type reviewRepository struct {
	db *gorm.DB
}

// NewReviewRepository creates a new ReviewRepository instance.
func NewReviewRepository(db *gorm.DB) ReviewRepository {
	return &reviewRepository{db: db}
}

// Create inserts a review. The status column is always written as pending
// regardless of what the caller put in the struct; moderation is the only
// path to any other state.
func (r *reviewRepository) Create(ctx context.Context, review *models.Review) error {
	review.Status = models.ReviewStatusPending
	if err := r.db.WithContext(ctx).Create(review).Error; err != nil {
		return fmt.Errorf("failed to create review: %w", err)
	}
	return nil
}

func (r *reviewRepository) ListActive(ctx context.Context) ([]models.Review, error) {
	var reviews []models.Review
	err := r.db.WithContext(ctx).
		Where("status = ?", models.ReviewStatusActive).
		Order("created_at DESC").
		Find(&reviews).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list active reviews: %w", err)
	}
	return reviews, nil
}

func (r *reviewRepository) ListAdmin(ctx context.Context, page, limit int, status string) ([]models.Review, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.Review{})
	if status != "" {
		query = query.Where("status = ?", status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count reviews: %w", err)
	}

	var reviews []models.Review
	err := query.
		Order("created_at DESC").
		Limit(limit).
		Offset((page - 1) * limit).
		Find(&reviews).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list reviews: %w", err)
	}
	return reviews, total, nil
}

func (r *reviewRepository) GetByID(ctx context.Context, id int64) (*models.Review, error) {
	var review models.Review
	err := r.db.WithContext(ctx).First(&review, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find review %d: %w", id, err)
	}
	return &review, nil
}

func (r *reviewRepository) UpdateStatus(ctx context.Context, id int64, status string) (bool, error) {
	result := r.db.WithContext(ctx).Model(&models.Review{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":     status,
			"updated_at": gorm.Expr("NOW()"),
		})
	if result.Error != nil {
		return false, fmt.Errorf("failed to update review %d status: %w", id, result.Error)
	}
	return result.RowsAffected > 0, nil
}

func (r *reviewRepository) Delete(ctx context.Context, id int64) (bool, error) {
	result := r.db.WithContext(ctx).Delete(&models.Review{}, id)
	if result.Error != nil {
		return false, fmt.Errorf("failed to delete review %d: %w", id, result.Error)
	}
	return result.RowsAffected > 0, nil
}
