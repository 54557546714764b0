// Package models contains data models for the Gharwa backend.
package models

import "time"

// Review moderation states.
const (
	ReviewStatusPending  = "pending"
	ReviewStatusActive   = "active"
	ReviewStatusInactive = "inactive"
)

// Review represents a customer review submitted through the public site.
// New reviews always start out pending and only become visible once an
// admin activates them.
type Review struct {
	ID           int64     `json:"id" gorm:"primaryKey"`
	Name         string    `json:"name" gorm:"not null"`
	Email        string    `json:"email" gorm:"not null"`
	Mobile       string    `json:"mobile" gorm:"not null"`
	Subject      *string   `json:"subject"`
	Message      string    `json:"message" gorm:"not null"`
	Rating       int       `json:"rating" gorm:"not null"`
	ProfileImage *string   `json:"profile_image" gorm:"column:profile_image"`
	Status       string    `json:"status" gorm:"default:pending"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// TableName returns the database table name for the Review model.
func (Review) TableName() string {
	return "reviews"
}

// ValidReviewStatus reports whether s is one of the known moderation states.
func ValidReviewStatus(s string) bool {
	return s == ReviewStatusPending || s == ReviewStatusActive || s == ReviewStatusInactive
}
