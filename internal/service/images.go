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

	"github.com/satishydv/gharwa-backend/internal/models"
	"github.com/satishydv/gharwa-backend/internal/repository"
	"github.com/sirupsen/logrus"
)

// MaxUploadSize is the upload limit for site images.
const MaxUploadSize = 10 << 20 // 10MiB

// FileStore is the slice of the filestore the image service relies on.
type FileStore interface {
	Path(filename string) string
	Stage(r io.Reader) (string, error)
	Commit(staged, filename string) error
	Discard(staged string) error
	Remove(filename string) error
}

// Collection describes how a set of images is exposed publicly.
type Collection struct {
	URLPrefix  string
	DefaultAlt string
}

var (
	GalleryCollection = Collection{URLPrefix: "/Gallery", DefaultAlt: "Gallery image"}
	HeroCollection    = Collection{URLPrefix: "/Hero", DefaultAlt: "Hero image"}
)

// ImageView is an image row decorated for public consumption.
type ImageView struct {
	models.Image
	URL string `json:"url"`
	Alt string `json:"alt"`
}

// UploadInput carries an incoming image upload.
type UploadInput struct {
	File         io.Reader
	OriginalName string
	ContentType  string
	Size         int64

	Name        string
	Alt         string
	Description *string
	// DisplayOrder, when nil, falls back to the next free slot.
	DisplayOrder *int

	// ReplaceID and ReplaceFilename, when both set, replace an existing
	// image in place, preserving its public URL.
	ReplaceID       int64
	ReplaceFilename string
}

// UploadResult describes the reconciled image row.
type UploadResult struct {
	ImageID  int64  `json:"imageId"`
	Filename string `json:"filename"`
	URL      string `json:"url"`
	IsUpdate bool   `json:"isUpdate"`
}

// ImageService defines operations over one ordered image collection.
type ImageService interface {
	ListActive(ctx context.Context) ([]ImageView, error)
	ListAll(ctx context.Context) ([]models.Image, error)
	Update(ctx context.Context, id int64, fields repository.ImageUpdate) error
	Delete(ctx context.Context, id int64) error
	Upload(ctx context.Context, in UploadInput) (*UploadResult, error)
	UpdateMetadata(ctx context.Context, filename, name, alt string) error
	DeleteFile(ctx context.Context, filename string) error
	Reorder(ctx context.Context, ids []int64) error
	CleanupDuplicates(ctx context.Context) (int64, error)
}

type imageService struct {
	repo       repository.ImageRepository
	store      FileStore
	collection Collection
	log        *logrus.Logger
}

// NewImageService creates an ImageService over the given repository, file
// store and collection.
func NewImageService(repo repository.ImageRepository, store FileStore, collection Collection, log *logrus.Logger) ImageService {
	return &imageService{
		repo:       repo,
		store:      store,
		collection: collection,
		log:        log,
	}
}

func (s *imageService) ListActive(ctx context.Context) ([]ImageView, error) {
	images, err := s.repo.ListActive(ctx)
	if err != nil {
		return nil, err
	}

	views := make([]ImageView, 0, len(images))
	for _, img := range images {
		views = append(views, ImageView{
			Image: img,
			URL:   s.collection.URLPrefix + "/" + img.Filename,
			Alt:   s.altFor(img),
		})
	}
	return views, nil
}

func (s *imageService) ListAll(ctx context.Context) ([]models.Image, error) {
	return s.repo.ListAll(ctx)
}

func (s *imageService) Update(ctx context.Context, id int64, fields repository.ImageUpdate) error {
	ok, err := s.repo.UpdateByID(ctx, id, fields)
	if err != nil {
		return err
	}
	if !ok {
		return ErrNotFound
	}
	return nil
}

// Delete removes the row, then the backing file. File removal failure is
// logged and swallowed so the database stays authoritative.
func (s *imageService) Delete(ctx context.Context, id int64) error {
	image, err := s.repo.GetByID(ctx, id)
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

	if image.Filename != "" {
		if err := s.store.Remove(image.Filename); err != nil && !os.IsNotExist(err) {
			s.log.WithError(err).WithField("filename", image.Filename).
				Warn("failed to remove image file after row deletion")
		}
	}
	return nil
}

// Upload validates the file, stages its bytes next to the final location,
// reconciles the database row, and only then commits the staged file onto
// its public name. A database failure discards the staged file, so no
// orphaned artifact is left behind.
func (s *imageService) Upload(ctx context.Context, in UploadInput) (*UploadResult, error) {
	if in.File == nil || in.Name == "" || in.Alt == "" {
		return nil, Validationf("Missing required fields")
	}
	if !strings.HasPrefix(in.ContentType, "image/") {
		return nil, Validationf("File must be an image")
	}
	if in.Size > MaxUploadSize {
		return nil, Validationf("File size must be less than 10MB")
	}

	replace := in.ReplaceID != 0 && in.ReplaceFilename != ""
	filename := in.ReplaceFilename
	if !replace {
		filename = SanitizeFilename(in.OriginalName)
	}

	staged, err := s.store.Stage(in.File)
	if err != nil {
		return nil, fmt.Errorf("failed to stage upload: %w", err)
	}

	result, err := s.reconcile(ctx, in, filename, replace)
	if err != nil {
		if derr := s.store.Discard(staged); derr != nil {
			s.log.WithError(derr).Warn("failed to discard staged upload")
		}
		return nil, err
	}

	if err := s.store.Commit(staged, filename); err != nil {
		if derr := s.store.Discard(staged); derr != nil {
			s.log.WithError(derr).Warn("failed to discard staged upload")
		}
		return nil, fmt.Errorf("failed to commit upload: %w", err)
	}

	return result, nil
}

func (s *imageService) reconcile(ctx context.Context, in UploadInput, filename string, replace bool) (*UploadResult, error) {
	fields := repository.ImageUpdate{
		Name:         in.Name,
		AltText:      in.Alt,
		Description:  in.Description,
		DisplayOrder: in.DisplayOrder,
	}

	if replace {
		ok, err := s.repo.UpdateByID(ctx, in.ReplaceID, fields)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, ErrNotFound
		}
		return s.result(in.ReplaceID, filename, true), nil
	}

	existing, err := s.repo.GetByFilename(ctx, filename)
	switch {
	case err == nil:
		// Same filename re-uploaded: treat as an edit of the existing row.
		if _, err := s.repo.UpdateByFilename(ctx, filename, fields); err != nil {
			return nil, err
		}
		return s.result(existing.ID, filename, true), nil
	case errors.Is(err, repository.ErrNotFound):
		image := &models.Image{
			Name:        in.Name,
			Filename:    filename,
			AltText:     in.Alt,
			Description: in.Description,
		}
		if in.DisplayOrder != nil {
			image.DisplayOrder = *in.DisplayOrder
		}
		if err := s.repo.Create(ctx, image); err != nil {
			return nil, err
		}
		return s.result(image.ID, filename, false), nil
	default:
		return nil, err
	}
}

func (s *imageService) UpdateMetadata(ctx context.Context, filename, name, alt string) error {
	ok, err := s.repo.UpdateMetadataByFilename(ctx, filename, name, alt)
	if err != nil {
		return err
	}
	if !ok {
		return ErrNotFound
	}
	return nil
}

func (s *imageService) DeleteFile(ctx context.Context, filename string) error {
	if err := s.store.Remove(filename); err != nil {
		if os.IsNotExist(err) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to remove %s: %w", filename, err)
	}
	return nil
}

func (s *imageService) Reorder(ctx context.Context, ids []int64) error {
	if len(ids) == 0 {
		return Validationf("Image IDs are required")
	}
	if err := s.repo.Resequence(ctx, ids); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}
	return nil
}

func (s *imageService) CleanupDuplicates(ctx context.Context) (int64, error) {
	return s.repo.CleanupDuplicates(ctx)
}

func (s *imageService) result(id int64, filename string, isUpdate bool) *UploadResult {
	return &UploadResult{
		ImageID:  id,
		Filename: filename,
		URL:      s.collection.URLPrefix + "/" + filename,
		IsUpdate: isUpdate,
	}
}

func (s *imageService) altFor(img models.Image) string {
	if img.AltText != "" {
		return img.AltText
	}
	if img.Name != "" {
		return img.Name
	}
	return s.collection.DefaultAlt
}

var unsafeFilenameChars = regexp.MustCompile(`[^a-zA-Z0-9_-]`)

// SanitizeFilename derives a safe public filename from an uploaded file's
// original name: the extension is lowercased and every other character
// outside [A-Za-z0-9_-] in the base name becomes a dash.
func SanitizeFilename(original string) string {
	ext := filepath.Ext(original)
	base := strings.TrimSuffix(original, ext)
	return unsafeFilenameChars.ReplaceAllString(base, "-") + strings.ToLower(ext)
}
