package models

import "time"

// ApplicationStatus tracks where an application sits in the hiring pipeline.
type ApplicationStatus string

const (
	StatusWishlist     ApplicationStatus = "WISHLIST"
	StatusApplied      ApplicationStatus = "APPLIED"
	StatusScreening    ApplicationStatus = "SCREENING"
	StatusInterviewing ApplicationStatus = "INTERVIEWING"
	StatusAssessment   ApplicationStatus = "ASSESSMENT"
	StatusOffer        ApplicationStatus = "OFFER"
	StatusRejected     ApplicationStatus = "REJECTED"
	StatusDeclined     ApplicationStatus = "DECLINED"
	StatusWithdrawn    ApplicationStatus = "WITHDRAWN"
)

// ApplicationStatuses lists the statuses in pipeline order.
var ApplicationStatuses = []ApplicationStatus{
	StatusWishlist,
	StatusApplied,
	StatusScreening,
	StatusInterviewing,
	StatusAssessment,
	StatusOffer,
	StatusRejected,
	StatusDeclined,
	StatusWithdrawn,
}

func (s ApplicationStatus) Valid() bool {
	for _, v := range ApplicationStatuses {
		if v == s {
			return true
		}
	}
	return false
}

// Application is a user's tracked application, optionally linked to a catalog posting.
// Removing the posting keeps the application and clears the link.
type Application struct {
	ID             uint              `gorm:"primaryKey" json:"id"`
	UserID         uint              `gorm:"not null;index" json:"user_id"`
	JobPostingID   *uint             `gorm:"index" json:"job_posting_id"`
	JobPosting     *JobPosting       `json:"job_posting,omitempty"`
	CompanyName    string            `gorm:"size:255" json:"company_name"`
	JobTitle       string            `gorm:"size:255" json:"job_title"`
	Location       string            `gorm:"size:255" json:"location"`
	Status         ApplicationStatus `gorm:"size:20;not null;default:WISHLIST;index" json:"status"`
	DateApplied    *time.Time        `gorm:"type:date" json:"date_applied"`
	Notes          string            `gorm:"type:text" json:"notes"`
	ApplicationURL string            `gorm:"size:500" json:"application_url"`
	CreatedAt      time.Time         `json:"created_at"`
	UpdatedAt      time.Time         `gorm:"index" json:"updated_at"`
}
