package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/satishydv/gharwa-backend/internal/models"
	"gorm.io/gorm"
)

// ImageUpdate carries the editable fields of an image row. Nil pointers are
// left untouched where the field is optional for the collection (description
// and display_order only apply to the hero slider).
type ImageUpdate struct {
	Name         string
	AltText      string
	IsActive     *bool
	Description  *string
	DisplayOrder *int
}

// ImageRepository defines ordered image data operations. The same
// implementation backs gallery_images and hero_images; the table is bound at
// construction.
type ImageRepository interface {
	ListActive(ctx context.Context) ([]models.Image, error)
	ListAll(ctx context.Context) ([]models.Image, error)
	GetByID(ctx context.Context, id int64) (*models.Image, error)
	GetByFilename(ctx context.Context, filename string) (*models.Image, error)
	Create(ctx context.Context, image *models.Image) error
	UpdateByID(ctx context.Context, id int64, fields ImageUpdate) (bool, error)
	UpdateByFilename(ctx context.Context, filename string, fields ImageUpdate) (bool, error)
	UpdateMetadataByFilename(ctx context.Context, filename, name, altText string) (bool, error)
	Delete(ctx context.Context, id int64) (bool, error)
	Resequence(ctx context.Context, ids []int64) error
	CleanupDuplicates(ctx context.Context) (int64, error)
}

type imageRepository struct {
	db    *gorm.DB
	table string
}

// NewImageRepository creates an ImageRepository bound to the given table.
func NewImageRepository(db *gorm.DB, table string) ImageRepository {
	return &imageRepository{db: db, table: table}
}

func (r *imageRepository) ListActive(ctx context.Context) ([]models.Image, error) {
	var images []models.Image
	err := r.db.WithContext(ctx).Table(r.table).
		Where("is_active = ?", true).
		Order("display_order ASC").
		Find(&images).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list active images from %s: %w", r.table, err)
	}
	return images, nil
}

func (r *imageRepository) ListAll(ctx context.Context) ([]models.Image, error) {
	var images []models.Image
	err := r.db.WithContext(ctx).Table(r.table).
		Order("display_order ASC").
		Find(&images).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list images from %s: %w", r.table, err)
	}
	return images, nil
}

func (r *imageRepository) GetByID(ctx context.Context, id int64) (*models.Image, error) {
	var image models.Image
	err := r.db.WithContext(ctx).Table(r.table).Where("id = ?", id).First(&image).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find image %d in %s: %w", id, r.table, err)
	}
	return &image, nil
}

func (r *imageRepository) GetByFilename(ctx context.Context, filename string) (*models.Image, error) {
	var image models.Image
	err := r.db.WithContext(ctx).Table(r.table).Where("filename = ?", filename).First(&image).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find image %s in %s: %w", filename, r.table, err)
	}
	return &image, nil
}

// Create inserts a new row. A zero DisplayOrder is replaced with
// max(display_order)+1 so a fresh table starts at 1.
func (r *imageRepository) Create(ctx context.Context, image *models.Image) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if image.DisplayOrder == 0 {
			var maxOrder int
			err := tx.Table(r.table).
				Select("COALESCE(MAX(display_order), 0)").
				Scan(&maxOrder).Error
			if err != nil {
				return fmt.Errorf("failed to compute next display order for %s: %w", r.table, err)
			}
			image.DisplayOrder = maxOrder + 1
		}
		image.IsActive = true

		if err := tx.Table(r.table).Create(image).Error; err != nil {
			return fmt.Errorf("failed to create image in %s: %w", r.table, err)
		}
		return nil
	})
}

func (r *imageRepository) UpdateByID(ctx context.Context, id int64, fields ImageUpdate) (bool, error) {
	updates := r.buildUpdates(fields)
	result := r.db.WithContext(ctx).Table(r.table).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		return false, fmt.Errorf("failed to update image %d in %s: %w", id, r.table, result.Error)
	}
	return result.RowsAffected > 0, nil
}

func (r *imageRepository) UpdateByFilename(ctx context.Context, filename string, fields ImageUpdate) (bool, error) {
	updates := r.buildUpdates(fields)
	result := r.db.WithContext(ctx).Table(r.table).Where("filename = ?", filename).Updates(updates)
	if result.Error != nil {
		return false, fmt.Errorf("failed to update image %s in %s: %w", filename, r.table, result.Error)
	}
	return result.RowsAffected > 0, nil
}

func (r *imageRepository) UpdateMetadataByFilename(ctx context.Context, filename, name, altText string) (bool, error) {
	result := r.db.WithContext(ctx).Table(r.table).
		Where("filename = ?", filename).
		Updates(map[string]interface{}{
			"name":       name,
			"alt_text":   altText,
			"updated_at": gorm.Expr("NOW()"),
		})
	if result.Error != nil {
		return false, fmt.Errorf("failed to update metadata for %s in %s: %w", filename, r.table, result.Error)
	}
	return result.RowsAffected > 0, nil
}

func (r *imageRepository) Delete(ctx context.Context, id int64) (bool, error) {
	result := r.db.WithContext(ctx).Table(r.table).Where("id = ?", id).Delete(&models.Image{})
	if result.Error != nil {
		return false, fmt.Errorf("failed to delete image %d from %s: %w", id, r.table, result.Error)
	}
	return result.RowsAffected > 0, nil
}

// Resequence rewrites display_order to match the given id order, 1-based,
// inside one transaction so concurrent edits never observe a half-applied
// sequence.
func (r *imageRepository) Resequence(ctx context.Context, ids []int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for position, id := range ids {
			result := tx.Table(r.table).Where("id = ?", id).
				Updates(map[string]interface{}{
					"display_order": position + 1,
					"updated_at":    gorm.Expr("NOW()"),
				})
			if result.Error != nil {
				return fmt.Errorf("failed to resequence image %d in %s: %w", id, r.table, result.Error)
			}
			if result.RowsAffected == 0 {
				return ErrNotFound
			}
		}
		return nil
	})
}

// CleanupDuplicates removes rows sharing a filename, keeping the oldest
// (lowest id) of each group. Returns the number of rows removed.
func (r *imageRepository) CleanupDuplicates(ctx context.Context) (int64, error) {
	var cleaned int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		type duplicate struct {
			Filename string
			KeepID   int64
		}
		var duplicates []duplicate
		err := tx.Table(r.table).
			Select("filename, MIN(id) as keep_id").
			Group("filename").
			Having("COUNT(*) > 1").
			Scan(&duplicates).Error
		if err != nil {
			return fmt.Errorf("failed to find duplicate filenames in %s: %w", r.table, err)
		}

		for _, dup := range duplicates {
			result := tx.Table(r.table).
				Where("filename = ? AND id <> ?", dup.Filename, dup.KeepID).
				Delete(&models.Image{})
			if result.Error != nil {
				return fmt.Errorf("failed to delete duplicates of %s in %s: %w", dup.Filename, r.table, result.Error)
			}
			cleaned += result.RowsAffected
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return cleaned, nil
}

func (r *imageRepository) buildUpdates(fields ImageUpdate) map[string]interface{} {
	updates := map[string]interface{}{
		"name":       fields.Name,
		"alt_text":   fields.AltText,
		"updated_at": gorm.Expr("NOW()"),
	}
	if fields.IsActive != nil {
		updates["is_active"] = *fields.IsActive
	}
	if fields.Description != nil {
		updates["description"] = *fields.Description
	}
	if fields.DisplayOrder != nil {
		updates["display_order"] = *fields.DisplayOrder
	}
	return updates
}
