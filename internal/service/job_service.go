package service

import (
	"context"
	"log/slog"
	"strings"
	"sync/atomic"
	"time"

	"hiresynapse/internal/cache"
	"hiresynapse/internal/middleware"
	"hiresynapse/internal/models"
	"hiresynapse/internal/observability"
	"hiresynapse/internal/repository"
	"hiresynapse/internal/validation"

	"golang.org/x/sync/errgroup"
)

const jobsPerPage = 15

type JobService struct {
	postings          repository.JobPostingRepository
	searchTTL         time.Duration
	ingestConcurrency int
}

// IngestPosting is one scraped posting offered to the catalog.
type IngestPosting struct {
	Title            string `json:"title" yaml:"title" validate:"required,max=255"`
	Description      string `json:"description" yaml:"description"`
	CompanyName      string `json:"company_name" yaml:"company_name" validate:"max=255"`
	Location         string `json:"location" yaml:"location" validate:"max=255"`
	SalaryRange      string `json:"salary_range" yaml:"salary_range" validate:"max=100"`
	JobURL           string `json:"job_url" yaml:"job_url" validate:"required,weburl,max=500"`
	Source           string `json:"source" yaml:"source" validate:"max=100"`
	DatePostedSource string `json:"date_posted_source" yaml:"date_posted_source" validate:"omitempty,datetime=2006-01-02"`
}

// IngestReport counts what an ingestion run did with each posting.
type IngestReport struct {
	Added   int64 `json:"added"`
	Skipped int64 `json:"skipped"`
	Errored int64 `json:"errored"`
}

func NewJobService(postings repository.JobPostingRepository, searchTTL time.Duration, ingestConcurrency int) *JobService {
	if ingestConcurrency <= 0 {
		ingestConcurrency = 1
	}
	return &JobService{
		postings:          postings,
		searchTTL:         searchTTL,
		ingestConcurrency: ingestConcurrency,
	}
}

// Search runs a keyword search over the catalog. Results are cached per query and page until
// the next ingestion that adds postings.
func (s *JobService) Search(ctx context.Context, query string, page int) (*PageResult[models.JobPosting], error) {
	p := repository.Page{Number: page, Size: jobsPerPage}.Normalize(jobsPerPage, jobsPerPage)
	query = strings.TrimSpace(query)

	var out PageResult[models.JobPosting]
	err := cache.Aside(ctx, "job_search", cache.JobSearchKey(ctx, query, p.Number), &out, s.searchTTL, func() error {
		postings, total, err := s.postings.Search(ctx, query, p)
		if err != nil {
			return err
		}
		out = *newPageResult(postings, total, p)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *JobService) GetByID(ctx context.Context, id uint) (*models.JobPosting, error) {
	var posting models.JobPosting
	err := cache.Aside(ctx, "job_posting", cache.JobPostingKey(id), &posting, cache.JobPostingTTL, func() error {
		found, err := s.postings.GetByID(ctx, id)
		if err != nil {
			return err
		}
		posting = *found
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &posting, nil
}

// Ingest adds every posting whose URL is not yet in the catalog. Invalid postings and storage
// failures are counted as errored and do not stop the run.
func (s *JobService) Ingest(ctx context.Context, postings []IngestPosting) (*IngestReport, error) {
	var added, skipped, errored atomic.Int64

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.ingestConcurrency)
	for _, in := range postings {
		in := in
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			created, err := s.ingestOne(gctx, in)
			switch {
			case err != nil:
				errored.Add(1)
				middleware.Logger.WarnContext(gctx, "job ingest failed",
					slog.String("job_url", in.JobURL),
					slog.String("error", err.Error()))
			case created:
				added.Add(1)
			default:
				skipped.Add(1)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	report := &IngestReport{Added: added.Load(), Skipped: skipped.Load(), Errored: errored.Load()}
	observability.JobIngestResults.WithLabelValues("added").Add(float64(report.Added))
	observability.JobIngestResults.WithLabelValues("skipped").Add(float64(report.Skipped))
	observability.JobIngestResults.WithLabelValues("errored").Add(float64(report.Errored))
	if report.Added > 0 {
		cache.InvalidateJobSearch(ctx)
	}
	middleware.Logger.InfoContext(ctx, "job ingest finished",
		slog.Int64("added", report.Added),
		slog.Int64("skipped", report.Skipped),
		slog.Int64("errored", report.Errored))
	return report, nil
}

func (s *JobService) ingestOne(ctx context.Context, in IngestPosting) (bool, error) {
	in.JobURL = strings.TrimSpace(in.JobURL)
	if errs := validation.Struct(in); errs != nil {
		return false, models.NewFieldValidationError(errs)
	}
	posting := &models.JobPosting{
		Title:            in.Title,
		Description:      in.Description,
		CompanyName:      in.CompanyName,
		Location:         in.Location,
		SalaryRange:      in.SalaryRange,
		JobURL:           in.JobURL,
		Source:           in.Source,
		DatePostedSource: parseOptionalDate(in.DatePostedSource),
	}
	return s.postings.GetOrCreateByURL(ctx, posting)
}

// Delete removes a posting from the catalog. Linked applications keep their own copy of the
// company and title.
func (s *JobService) Delete(ctx context.Context, id uint) error {
	if err := s.postings.Delete(ctx, id); err != nil {
		return err
	}
	cache.Invalidate(ctx, cache.JobPostingKey(id))
	cache.InvalidateJobSearch(ctx)
	return nil
}
