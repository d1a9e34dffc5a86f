package models

import "time"

// EntityKind names one of the six profile child collections. The value is also the URL segment.
type EntityKind string

const (
	KindEducation     EntityKind = "education"
	KindExperience    EntityKind = "experience"
	KindSkill         EntityKind = "skills"
	KindProject       EntityKind = "projects"
	KindAward         EntityKind = "awards"
	KindCertification EntityKind = "certifications"
)

// EntityKinds lists every child kind in profile page order.
var EntityKinds = []EntityKind{
	KindEducation,
	KindExperience,
	KindSkill,
	KindProject,
	KindAward,
	KindCertification,
}

// ParseEntityKind reports whether s names a known child kind.
func ParseEntityKind(s string) (EntityKind, bool) {
	for _, k := range EntityKinds {
		if string(k) == s {
			return k, true
		}
	}
	return "", false
}

// Label is the human-readable resource name used in error messages.
func (k EntityKind) Label() string {
	switch k {
	case KindEducation:
		return "Education"
	case KindExperience:
		return "Work experience"
	case KindSkill:
		return "Skill"
	case KindProject:
		return "Project"
	case KindAward:
		return "Award"
	case KindCertification:
		return "Certification"
	}
	return string(k)
}

// ProfileChild is implemented by every row owned by a Profile.
type ProfileChild interface {
	Kind() EntityKind
	GetID() uint
	GetProfileID() uint
	SetProfileID(id uint)
}

type Education struct {
	ID              uint       `gorm:"primaryKey" json:"id"`
	ProfileID       uint       `gorm:"not null;index" json:"profile_id"`
	InstitutionName string     `gorm:"size:255;not null" json:"institution_name"`
	Degree          string     `gorm:"size:255" json:"degree"`
	FieldOfStudy    string     `gorm:"size:255" json:"field_of_study"`
	StartDate       time.Time  `gorm:"type:date;not null" json:"start_date"`
	EndDate         *time.Time `gorm:"type:date" json:"end_date"`
	Description     string     `gorm:"type:text" json:"description"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

func (e *Education) Kind() EntityKind     { return KindEducation }
func (e *Education) GetID() uint          { return e.ID }
func (e *Education) GetProfileID() uint   { return e.ProfileID }
func (e *Education) SetProfileID(id uint) { e.ProfileID = id }

type WorkExperience struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	ProfileID   uint       `gorm:"not null;index" json:"profile_id"`
	JobTitle    string     `gorm:"size:255;not null" json:"job_title"`
	CompanyName string     `gorm:"size:255;not null" json:"company_name"`
	Location    string     `gorm:"size:100" json:"location"`
	StartDate   time.Time  `gorm:"type:date;not null" json:"start_date"`
	EndDate     *time.Time `gorm:"type:date" json:"end_date"`
	Description string     `gorm:"type:text" json:"description"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

func (w *WorkExperience) Kind() EntityKind     { return KindExperience }
func (w *WorkExperience) GetID() uint          { return w.ID }
func (w *WorkExperience) GetProfileID() uint   { return w.ProfileID }
func (w *WorkExperience) SetProfileID(id uint) { w.ProfileID = id }

// Skill names are unique per profile ignoring case. The index lives on (profile_id, lower(name)).
type Skill struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	ProfileID uint      `gorm:"not null;index" json:"profile_id"`
	Name      string    `gorm:"size:100;not null" json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (s *Skill) Kind() EntityKind     { return KindSkill }
func (s *Skill) GetID() uint          { return s.ID }
func (s *Skill) GetProfileID() uint   { return s.ProfileID }
func (s *Skill) SetProfileID(id uint) { s.ProfileID = id }

type Project struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	ProfileID   uint       `gorm:"not null;index" json:"profile_id"`
	Name        string     `gorm:"size:255;not null" json:"name"`
	Description string     `gorm:"type:text" json:"description"`
	URL         string     `gorm:"size:200" json:"url"`
	StartDate   *time.Time `gorm:"type:date" json:"start_date"`
	EndDate     *time.Time `gorm:"type:date" json:"end_date"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

func (p *Project) Kind() EntityKind     { return KindProject }
func (p *Project) GetID() uint          { return p.ID }
func (p *Project) GetProfileID() uint   { return p.ProfileID }
func (p *Project) SetProfileID(id uint) { p.ProfileID = id }

type Award struct {
	ID           uint       `gorm:"primaryKey" json:"id"`
	ProfileID    uint       `gorm:"not null;index" json:"profile_id"`
	Title        string     `gorm:"size:255;not null" json:"title"`
	Issuer       string     `gorm:"size:255" json:"issuer"`
	DateReceived *time.Time `gorm:"type:date" json:"date_received"`
	Description  string     `gorm:"type:text" json:"description"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

func (a *Award) Kind() EntityKind     { return KindAward }
func (a *Award) GetID() uint          { return a.ID }
func (a *Award) GetProfileID() uint   { return a.ProfileID }
func (a *Award) SetProfileID(id uint) { a.ProfileID = id }

type Certification struct {
	ID                  uint       `gorm:"primaryKey" json:"id"`
	ProfileID           uint       `gorm:"not null;index" json:"profile_id"`
	Name                string     `gorm:"size:255;not null" json:"name"`
	IssuingOrganization string     `gorm:"size:255;not null" json:"issuing_organization"`
	CredentialID        string     `gorm:"size:255" json:"credential_id"`
	CredentialURL       string     `gorm:"size:200" json:"credential_url"`
	IssueDate           time.Time  `gorm:"type:date;not null" json:"issue_date"`
	ExpirationDate      *time.Time `gorm:"type:date" json:"expiration_date"`
	CreatedAt           time.Time  `json:"created_at"`
	UpdatedAt           time.Time  `json:"updated_at"`
}

func (c *Certification) Kind() EntityKind     { return KindCertification }
func (c *Certification) GetID() uint          { return c.ID }
func (c *Certification) GetProfileID() uint   { return c.ProfileID }
func (c *Certification) SetProfileID(id uint) { c.ProfileID = id }

// NewChild returns an empty row of the given kind.
func NewChild(kind EntityKind) (ProfileChild, bool) {
	switch kind {
	case KindEducation:
		return &Education{}, true
	case KindExperience:
		return &WorkExperience{}, true
	case KindSkill:
		return &Skill{}, true
	case KindProject:
		return &Project{}, true
	case KindAward:
		return &Award{}, true
	case KindCertification:
		return &Certification{}, true
	}
	return nil, false
}
