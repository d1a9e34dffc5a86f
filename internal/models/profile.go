package models

import "time"

// Profile is the one-per-user resume record. Its six child collections cascade with it.
type Profile struct {
	ID             uint             `gorm:"primaryKey" json:"id"`
	UserID         uint             `gorm:"not null;uniqueIndex" json:"user_id"`
	Bio            string           `gorm:"type:text" json:"bio"`
	Summary        string           `gorm:"type:text" json:"summary"`
	Location       string           `gorm:"size:100" json:"location"`
	Website        string           `gorm:"size:200" json:"website"`
	LinkedInURL    string           `gorm:"column:linkedin_url;size:200" json:"linkedin_url"`
	CreatedAt      time.Time        `json:"created_at"`
	UpdatedAt      time.Time        `json:"updated_at"`
	Education      []Education      `gorm:"constraint:OnDelete:CASCADE" json:"education,omitempty"`
	Experience     []WorkExperience `gorm:"constraint:OnDelete:CASCADE" json:"experience,omitempty"`
	Skills         []Skill          `gorm:"constraint:OnDelete:CASCADE" json:"skills,omitempty"`
	Projects       []Project        `gorm:"constraint:OnDelete:CASCADE" json:"projects,omitempty"`
	Awards         []Award          `gorm:"constraint:OnDelete:CASCADE" json:"awards,omitempty"`
	Certifications []Certification  `gorm:"constraint:OnDelete:CASCADE" json:"certifications,omitempty"`
}
