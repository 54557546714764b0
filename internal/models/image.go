// Package models contains data models for the Gharwa backend.
package models

import "time"

// Image represents an ordered, toggleable site image. The same shape backs
// both the gallery and the hero slider; the repository binds the table.
type Image struct {
	ID           int64     `json:"id" gorm:"primaryKey"`
	Name         string    `json:"name" gorm:"not null"`
	Filename     string    `json:"filename" gorm:"uniqueIndex;not null"`
	AltText      string    `json:"alt_text" gorm:"column:alt_text"`
	Description  *string   `json:"description"`
	DisplayOrder int       `json:"display_order" gorm:"column:display_order"`
	IsActive     bool      `json:"is_active" gorm:"column:is_active;default:true"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// GalleryImage and HeroImage exist so AutoMigrate creates both tables from
// the shared Image shape.
type GalleryImage struct {
	Image
}

// TableName returns the database table name for gallery images.
func (GalleryImage) TableName() string {
	return "gallery_images"
}

type HeroImage struct {
	Image
}

// TableName returns the database table name for hero slider images.
func (HeroImage) TableName() string {
	return "hero_images"
}
