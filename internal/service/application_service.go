package service

import (
	"context"
	"log/slog"

	"hiresynapse/internal/middleware"
	"hiresynapse/internal/models"
	"hiresynapse/internal/observability"
	"hiresynapse/internal/repository"
	"hiresynapse/internal/validation"
)

const (
	applicationsPerPage = 10
	maxPageSize         = 100
)

type ApplicationService struct {
	applications repository.ApplicationRepository
	postings     repository.JobPostingRepository
	tx           repository.Transactor
}

// ApplicationInput is the submitted form of an application. Company and title may be left
// empty only when the application is linked to a catalog posting.
type ApplicationInput struct {
	UserID         uint                     `json:"-"`
	JobPostingID   *uint                    `json:"job_posting_id"`
	CompanyName    string                   `json:"company_name" validate:"required_without=JobPostingID,max=255"`
	JobTitle       string                   `json:"job_title" validate:"required_without=JobPostingID,max=255"`
	Location       string                   `json:"location" validate:"max=255"`
	Status         models.ApplicationStatus `json:"status" validate:"omitempty,oneof=WISHLIST APPLIED SCREENING INTERVIEWING ASSESSMENT OFFER REJECTED DECLINED WITHDRAWN"`
	DateApplied    string                   `json:"date_applied" validate:"omitempty,datetime=2006-01-02"`
	Notes          string                   `json:"notes"`
	ApplicationURL string                   `json:"application_url" validate:"omitempty,weburl,max=500"`
}

// PageResult is one page of a list plus the total row count.
type PageResult[T any] struct {
	Items []T   `json:"items"`
	Total int64 `json:"total"`
	Page  int   `json:"page"`
	Size  int   `json:"page_size"`
	Pages int   `json:"pages"`
}

func newPageResult[T any](items []T, total int64, page repository.Page) *PageResult[T] {
	if items == nil {
		items = []T{}
	}
	pages := int((total + int64(page.Size) - 1) / int64(page.Size))
	return &PageResult[T]{Items: items, Total: total, Page: page.Number, Size: page.Size, Pages: pages}
}

func NewApplicationService(
	applications repository.ApplicationRepository,
	postings repository.JobPostingRepository,
	tx repository.Transactor,
) *ApplicationService {
	return &ApplicationService{
		applications: applications,
		postings:     postings,
		tx:           tx,
	}
}

func (s *ApplicationService) validate(in ApplicationInput) error {
	if in.JobPostingID != nil && *in.JobPostingID == 0 {
		in.JobPostingID = nil
	}
	if errs := validation.Struct(in); errs != nil {
		return models.NewFieldValidationError(errs)
	}
	return nil
}

// apply overwrites app with the submission and fills blank company, title, location and URL
// from the linked posting.
func (s *ApplicationService) apply(ctx context.Context, app *models.Application, in ApplicationInput) error {
	app.JobPostingID = nil
	app.JobPosting = nil
	app.CompanyName = in.CompanyName
	app.JobTitle = in.JobTitle
	app.Location = in.Location
	app.Notes = in.Notes
	app.ApplicationURL = in.ApplicationURL
	app.DateApplied = parseOptionalDate(in.DateApplied)
	app.Status = in.Status
	if app.Status == "" {
		app.Status = models.StatusWishlist
	}

	if in.JobPostingID == nil || *in.JobPostingID == 0 {
		return nil
	}
	posting, err := s.postings.GetByID(ctx, *in.JobPostingID)
	if err != nil {
		if models.ErrorCode(err) == models.CodeNotFound {
			return models.NewFieldValidationError(map[string]string{
				"job_posting_id": "Select a valid job posting.",
			})
		}
		return err
	}
	app.JobPostingID = &posting.ID
	if app.CompanyName == "" {
		app.CompanyName = posting.CompanyName
	}
	if app.JobTitle == "" {
		app.JobTitle = posting.Title
	}
	if app.Location == "" {
		app.Location = posting.Location
	}
	if app.ApplicationURL == "" {
		app.ApplicationURL = posting.JobURL
	}
	return nil
}

func (s *ApplicationService) Create(ctx context.Context, in ApplicationInput) (*models.Application, error) {
	if err := s.validate(in); err != nil {
		return nil, err
	}

	app := &models.Application{UserID: in.UserID}
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := s.apply(ctx, app, in); err != nil {
			return err
		}
		return s.applications.Create(ctx, app)
	})
	if err != nil {
		return nil, err
	}

	middleware.Logger.InfoContext(ctx, "application created",
		slog.Uint64("application_id", uint64(app.ID)),
		slog.String("status", string(app.Status)))
	return s.applications.GetByID(ctx, app.ID)
}

// authorize loads the application and checks that userID owns it.
func (s *ApplicationService) authorize(ctx context.Context, userID, id uint) (*models.Application, error) {
	app, err := s.applications.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if app.UserID != userID {
		observability.AccessDenied.WithLabelValues("application", "forbidden").Inc()
		return nil, models.NewForbiddenError("Application", id)
	}
	return app, nil
}

func (s *ApplicationService) Get(ctx context.Context, userID, id uint) (*models.Application, error) {
	return s.authorize(ctx, userID, id)
}

// List returns the user's applications, most recently updated first.
func (s *ApplicationService) List(ctx context.Context, userID uint, page repository.Page) (*PageResult[models.Application], error) {
	page = page.Normalize(applicationsPerPage, maxPageSize)
	apps, total, err := s.applications.ListByUser(ctx, userID, page)
	if err != nil {
		return nil, err
	}
	return newPageResult(apps, total, page), nil
}

// Update replaces the application's fields. Sending no job_posting_id clears the link.
func (s *ApplicationService) Update(ctx context.Context, id uint, in ApplicationInput) (*models.Application, error) {
	if err := s.validate(in); err != nil {
		return nil, err
	}

	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		app, err := s.authorize(ctx, in.UserID, id)
		if err != nil {
			return err
		}
		if err := s.apply(ctx, app, in); err != nil {
			return err
		}
		return s.applications.Update(ctx, app)
	})
	if err != nil {
		return nil, err
	}
	return s.applications.GetByID(ctx, id)
}

func (s *ApplicationService) Delete(ctx context.Context, userID, id uint) error {
	return s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		if _, err := s.authorize(ctx, userID, id); err != nil {
			return err
		}
		return s.applications.Delete(ctx, id)
	})
}
