package models

import "time"

// JobPosting is a catalog entry shared by every account. JobURL is the ingestion dedup key.
type JobPosting struct {
	ID               uint          `gorm:"primaryKey" json:"id"`
	Title            string        `gorm:"size:255;not null" json:"title"`
	Description      string        `gorm:"type:text" json:"description"`
	CompanyName      string        `gorm:"size:255" json:"company_name"`
	Location         string        `gorm:"size:255" json:"location"`
	SalaryRange      string        `gorm:"size:100" json:"salary_range"`
	JobURL           string        `gorm:"size:500;not null;uniqueIndex" json:"job_url"`
	Source           string        `gorm:"size:100" json:"source"`
	DatePostedSource *time.Time    `gorm:"type:date" json:"date_posted_source"`
	DateAddedDB      time.Time     `gorm:"column:date_added_db;autoCreateTime;index" json:"date_added_db"`
	Applications     []Application `gorm:"constraint:OnDelete:SET NULL" json:"-"`
}
