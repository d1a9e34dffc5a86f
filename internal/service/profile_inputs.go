package service

import (
	"time"

	"hiresynapse/internal/models"
	"hiresynapse/internal/validation"
)

// Fields holds the raw values submitted for a profile child, keyed by JSON field name.
type Fields map[string]any

// childInput is the validated form of one child kind. apply overwrites every editable
// column of the row, so a field left out of the submission is cleared.
type childInput interface {
	apply(child models.ProfileChild)
}

func newChildInput(kind models.EntityKind) (childInput, bool) {
	switch kind {
	case models.KindEducation:
		return &educationInput{}, true
	case models.KindExperience:
		return &experienceInput{}, true
	case models.KindSkill:
		return &skillInput{}, true
	case models.KindProject:
		return &projectInput{}, true
	case models.KindAward:
		return &awardInput{}, true
	case models.KindCertification:
		return &certificationInput{}, true
	}
	return nil, false
}

// decodeChild turns raw fields into the validated input for kind.
func decodeChild(kind models.EntityKind, fields Fields) (childInput, error) {
	in, ok := newChildInput(kind)
	if !ok {
		return nil, models.NewValidationError("Unknown profile section: " + string(kind))
	}
	if err := validation.Decode(fields, in); err != nil {
		return nil, models.NewValidationError("Invalid submission: " + err.Error())
	}
	if errs := validation.Struct(in); errs != nil {
		return nil, models.NewFieldValidationError(errs)
	}
	return in, nil
}

type educationInput struct {
	InstitutionName string `mapstructure:"institution_name" json:"institution_name" validate:"required,max=255"`
	Degree          string `mapstructure:"degree" json:"degree" validate:"max=255"`
	FieldOfStudy    string `mapstructure:"field_of_study" json:"field_of_study" validate:"max=255"`
	StartDate       string `mapstructure:"start_date" json:"start_date" validate:"required,datetime=2006-01-02"`
	EndDate         string `mapstructure:"end_date" json:"end_date" validate:"omitempty,datetime=2006-01-02"`
	Description     string `mapstructure:"description" json:"description"`
}

func (in *educationInput) apply(child models.ProfileChild) {
	e := child.(*models.Education)
	e.InstitutionName = in.InstitutionName
	e.Degree = in.Degree
	e.FieldOfStudy = in.FieldOfStudy
	e.StartDate = parseDate(in.StartDate)
	e.EndDate = parseOptionalDate(in.EndDate)
	e.Description = in.Description
}

type experienceInput struct {
	JobTitle    string `mapstructure:"job_title" json:"job_title" validate:"required,max=255"`
	CompanyName string `mapstructure:"company_name" json:"company_name" validate:"required,max=255"`
	Location    string `mapstructure:"location" json:"location" validate:"max=100"`
	StartDate   string `mapstructure:"start_date" json:"start_date" validate:"required,datetime=2006-01-02"`
	EndDate     string `mapstructure:"end_date" json:"end_date" validate:"omitempty,datetime=2006-01-02"`
	Description string `mapstructure:"description" json:"description"`
}

func (in *experienceInput) apply(child models.ProfileChild) {
	w := child.(*models.WorkExperience)
	w.JobTitle = in.JobTitle
	w.CompanyName = in.CompanyName
	w.Location = in.Location
	w.StartDate = parseDate(in.StartDate)
	w.EndDate = parseOptionalDate(in.EndDate)
	w.Description = in.Description
}

type skillInput struct {
	Name string `mapstructure:"name" json:"name" validate:"required,max=100"`
}

func (in *skillInput) apply(child models.ProfileChild) {
	child.(*models.Skill).Name = in.Name
}

type projectInput struct {
	Name        string `mapstructure:"name" json:"name" validate:"required,max=255"`
	Description string `mapstructure:"description" json:"description"`
	URL         string `mapstructure:"url" json:"url" validate:"omitempty,weburl,max=200"`
	StartDate   string `mapstructure:"start_date" json:"start_date" validate:"omitempty,datetime=2006-01-02"`
	EndDate     string `mapstructure:"end_date" json:"end_date" validate:"omitempty,datetime=2006-01-02"`
}

func (in *projectInput) apply(child models.ProfileChild) {
	p := child.(*models.Project)
	p.Name = in.Name
	p.Description = in.Description
	p.URL = in.URL
	p.StartDate = parseOptionalDate(in.StartDate)
	p.EndDate = parseOptionalDate(in.EndDate)
}

type awardInput struct {
	Title        string `mapstructure:"title" json:"title" validate:"required,max=255"`
	Issuer       string `mapstructure:"issuer" json:"issuer" validate:"max=255"`
	DateReceived string `mapstructure:"date_received" json:"date_received" validate:"omitempty,datetime=2006-01-02"`
	Description  string `mapstructure:"description" json:"description"`
}

func (in *awardInput) apply(child models.ProfileChild) {
	a := child.(*models.Award)
	a.Title = in.Title
	a.Issuer = in.Issuer
	a.DateReceived = parseOptionalDate(in.DateReceived)
	a.Description = in.Description
}

type certificationInput struct {
	Name                string `mapstructure:"name" json:"name" validate:"required,max=255"`
	IssuingOrganization string `mapstructure:"issuing_organization" json:"issuing_organization" validate:"required,max=255"`
	CredentialID        string `mapstructure:"credential_id" json:"credential_id" validate:"max=255"`
	CredentialURL       string `mapstructure:"credential_url" json:"credential_url" validate:"omitempty,weburl,max=200"`
	IssueDate           string `mapstructure:"issue_date" json:"issue_date" validate:"required,datetime=2006-01-02"`
	ExpirationDate      string `mapstructure:"expiration_date" json:"expiration_date" validate:"omitempty,datetime=2006-01-02"`
}

func (in *certificationInput) apply(child models.ProfileChild) {
	c := child.(*models.Certification)
	c.Name = in.Name
	c.IssuingOrganization = in.IssuingOrganization
	c.CredentialID = in.CredentialID
	c.CredentialURL = in.CredentialURL
	c.IssueDate = parseDate(in.IssueDate)
	c.ExpirationDate = parseOptionalDate(in.ExpirationDate)
}

// parseDate expects a value that already passed the datetime check.
func parseDate(s string) time.Time {
	t, _ := time.Parse(validation.DateLayout, s)
	return t
}

func parseOptionalDate(s string) *time.Time {
	if s == "" {
		return nil
	}
	t := parseDate(s)
	return &t
}
