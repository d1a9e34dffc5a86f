// Package models contains data structures for the application's domain models.
package models

import "time"

// User is an account. Deleting it removes its profile aggregate, applications and cover letters.
type User struct {
	ID           uint          `gorm:"primaryKey" json:"id"`
	Username     string        `gorm:"unique;not null" json:"username"`
	Email        string        `gorm:"unique;not null" json:"email"`
	Password     string        `gorm:"not null" json:"-"`
	IsAdmin      bool          `gorm:"not null;default:false" json:"is_admin"`
	CreatedAt    time.Time     `json:"created_at"`
	UpdatedAt    time.Time     `json:"updated_at"`
	Profile      *Profile      `gorm:"constraint:OnDelete:CASCADE" json:"profile,omitempty"`
	Applications []Application `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	CoverLetters []CoverLetter `gorm:"constraint:OnDelete:CASCADE" json:"-"`
}
