package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/satishydv/gharwa-backend/internal/models"
	"github.com/satishydv/gharwa-backend/internal/repository"
	"github.com/sirupsen/logrus"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// ProfileImage is an optional uploaded image attached to a review.
type ProfileImage struct {
	File         io.Reader
	OriginalName string
	ContentType  string
	Size         int64
}

// SubmitReviewInput carries a public review submission. Any status supplied
// by the client is ignored; new reviews always start pending.
type SubmitReviewInput struct {
	Name    string
	Email   string
	Mobile  string
	Subject *string
	Message string
	Rating  int
	Image   *ProfileImage
}

// PublicReview is the subset of a review exposed on the public site.
type PublicReview struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	Subject      *string   `json:"subject"`
	Message      string    `json:"message"`
	Rating       int       `json:"rating"`
	ProfileImage *string   `json:"profile_image"`
	CreatedAt    time.Time `json:"created_at"`
}

// Pagination describes one page of an admin listing.
type Pagination struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int64 `json:"totalPages"`
}

// ReviewService defines review moderation operations.
type ReviewService interface {
	Submit(ctx context.Context, in SubmitReviewInput) (int64, error)
	ListActive(ctx context.Context) ([]PublicReview, error)
	ListAdmin(ctx context.Context, page, limit int, status string) ([]models.Review, Pagination, error)
	UpdateStatus(ctx context.Context, id int64, status string) error
	Delete(ctx context.Context, id int64) error
}

type reviewService struct {
	repo                repository.ReviewRepository
	store               FileStore
	deleteOrphanedMedia bool
	log                 *logrus.Logger
}

// NewReviewService creates a ReviewService. The store is rooted at the
// public reviews directory. deleteOrphanedMedia controls whether Delete also
// removes the profile image file from disk.
func NewReviewService(repo repository.ReviewRepository, store FileStore, deleteOrphanedMedia bool, log *logrus.Logger) ReviewService {
	return &reviewService{
		repo:                repo,
		store:               store,
		deleteOrphanedMedia: deleteOrphanedMedia,
		log:                 log,
	}
}

func (s *reviewService) Submit(ctx context.Context, in SubmitReviewInput) (int64, error) {
	if in.Name == "" || in.Email == "" || in.Mobile == "" || in.Message == "" || in.Rating == 0 {
		return 0, Validationf("Name, email, mobile, message, and rating are required")
	}
	if in.Rating < 1 || in.Rating > 5 {
		return 0, Validationf("Rating must be between 1 and 5")
	}
	if !emailPattern.MatchString(in.Email) {
		return 0, Validationf("Please enter a valid email address")
	}

	var staged, imagePath string
	var filename string
	if in.Image != nil && in.Image.Size > 0 {
		if !strings.HasPrefix(in.Image.ContentType, "image/") {
			return 0, Validationf("File must be an image")
		}
		if in.Image.Size > MaxUploadSize {
			return 0, Validationf("File size must be less than 10MB")
		}

		filename = reviewImageFilename(in.Image.OriginalName)

		var err error
		staged, err = s.store.Stage(in.Image.File)
		if err != nil {
			return 0, fmt.Errorf("failed to stage profile image: %w", err)
		}
		imagePath = "reviews/" + filename
	}

	review := &models.Review{
		Name:    in.Name,
		Email:   in.Email,
		Mobile:  in.Mobile,
		Subject: in.Subject,
		Message: in.Message,
		Rating:  in.Rating,
	}
	if imagePath != "" {
		review.ProfileImage = &imagePath
	}

	if err := s.repo.Create(ctx, review); err != nil {
		if staged != "" {
			if derr := s.store.Discard(staged); derr != nil {
				s.log.WithError(derr).Warn("failed to discard staged profile image")
			}
		}
		return 0, err
	}

	if staged != "" {
		if err := s.store.Commit(staged, filename); err != nil {
			if derr := s.store.Discard(staged); derr != nil {
				s.log.WithError(derr).Warn("failed to discard staged profile image")
			}
			return 0, fmt.Errorf("failed to commit profile image: %w", err)
		}
	}

	return review.ID, nil
}

func (s *reviewService) ListActive(ctx context.Context) ([]PublicReview, error) {
	reviews, err := s.repo.ListActive(ctx)
	if err != nil {
		return nil, err
	}

	public := make([]PublicReview, 0, len(reviews))
	for _, r := range reviews {
		public = append(public, PublicReview{
			ID:           r.ID,
			Name:         r.Name,
			Subject:      r.Subject,
			Message:      r.Message,
			Rating:       r.Rating,
			ProfileImage: r.ProfileImage,
			CreatedAt:    r.CreatedAt,
		})
	}
	return public, nil
}

func (s *reviewService) ListAdmin(ctx context.Context, page, limit int, status string) ([]models.Review, Pagination, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}
	if status != "" && !models.ValidReviewStatus(status) {
		return nil, Pagination{}, Validationf("Invalid status. Must be pending, active, or inactive")
	}

	reviews, total, err := s.repo.ListAdmin(ctx, page, limit, status)
	if err != nil {
		return nil, Pagination{}, err
	}

	pagination := Pagination{
		Page:       page,
		Limit:      limit,
		Total:      total,
		TotalPages: (total + int64(limit) - 1) / int64(limit),
	}
	return reviews, pagination, nil
}

func (s *reviewService) UpdateStatus(ctx context.Context, id int64, status string) error {
	if !models.ValidReviewStatus(status) {
		return Validationf("Invalid status. Must be pending, active, or inactive")
	}

	ok, err := s.repo.UpdateStatus(ctx, id, status)
	if err != nil {
		return err
	}
	if !ok {
		return ErrNotFound
	}
	return nil
}

// Delete removes the review row. The profile image file is removed only when
// the service was configured to delete orphaned media; otherwise it is
// retained on disk.
func (s *reviewService) Delete(ctx context.Context, id int64) error {
	review, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}

	ok, err := s.repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return ErrNotFound
	}

	if s.deleteOrphanedMedia && review.ProfileImage != nil {
		filename := strings.TrimPrefix(*review.ProfileImage, "reviews/")
		if err := s.store.Remove(filename); err != nil && !os.IsNotExist(err) {
			s.log.WithError(err).WithField("filename", filename).
				Warn("failed to remove profile image after review deletion")
		}
	}
	return nil
}

// reviewImageFilename builds a collision-resistant name: reviews have no
// replace concept, so uploads never reuse an existing filename.
func reviewImageFilename(original string) string {
	ext := strings.ToLower(filepath.Ext(original))
	suffix := strings.ReplaceAll(uuid.New().String(), "-", "")[:12]
	return fmt.Sprintf("review_%d_%s%s", time.Now().UnixMilli(), suffix, ext)
}
