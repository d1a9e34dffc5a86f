package repository

import (
	"context"
	"errors"
	"strings"

	"hiresynapse/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// JobPostingRepository persists the shared job catalog.
type JobPostingRepository interface {
	GetByID(ctx context.Context, id uint) (*models.JobPosting, error)
	// Search matches every whitespace-separated term of query, case-insensitively, against title,
	// description, company name or location. An empty query lists everything. Newest first.
	Search(ctx context.Context, query string, page Page) ([]models.JobPosting, int64, error)
	// GetOrCreateByURL inserts posting unless a row with the same JobURL exists. It reports
	// whether a row was created and leaves posting holding the stored row.
	GetOrCreateByURL(ctx context.Context, posting *models.JobPosting) (bool, error)
	Delete(ctx context.Context, id uint) error
}

type jobPostingRepository struct {
	db *gorm.DB
}

// NewJobPostingRepository returns a new JobPostingRepository implementation.
func NewJobPostingRepository(db *gorm.DB) JobPostingRepository {
	return &jobPostingRepository{db: db}
}

func (r *jobPostingRepository) GetByID(ctx context.Context, id uint) (*models.JobPosting, error) {
	var posting models.JobPosting
	if err := conn(ctx, r.db).First(&posting, id).Error; err != nil {
		return nil, notFoundOr(err, "Job posting", id)
	}
	return &posting, nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

const searchClause = `LOWER(title) LIKE ? ESCAPE '\' OR LOWER(description) LIKE ? ESCAPE '\' ` +
	`OR LOWER(company_name) LIKE ? ESCAPE '\' OR LOWER(location) LIKE ? ESCAPE '\'`

func (r *jobPostingRepository) Search(ctx context.Context, query string, page Page) ([]models.JobPosting, int64, error) {
	q := conn(ctx, r.db).Model(&models.JobPosting{})
	for _, term := range strings.Fields(strings.ToLower(query)) {
		pattern := "%" + likeEscaper.Replace(term) + "%"
		q = q.Where(searchClause, pattern, pattern, pattern, pattern)
	}
	q = q.Session(&gorm.Session{})

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, models.NewInternalError(err)
	}

	var postings []models.JobPosting
	if err := q.Order("date_added_db DESC, id DESC").
		Limit(page.Size).Offset(page.Offset()).
		Find(&postings).Error; err != nil {
		return nil, 0, models.NewInternalError(err)
	}
	return postings, total, nil
}

func (r *jobPostingRepository) GetOrCreateByURL(ctx context.Context, posting *models.JobPosting) (bool, error) {
	db := conn(ctx, r.db)

	var existing models.JobPosting
	err := db.Where("job_url = ?", posting.JobURL).First(&existing).Error
	switch {
	case err == nil:
		*posting = existing
		return false, nil
	case !errors.Is(err, gorm.ErrRecordNotFound):
		return false, models.NewInternalError(err)
	}

	if err := db.Omit(clause.Associations).Create(posting).Error; err != nil {
		if IsDuplicate(err) {
			// Lost a race with a concurrent ingest of the same URL.
			if err := db.Where("job_url = ?", posting.JobURL).First(posting).Error; err != nil {
				return false, models.NewInternalError(err)
			}
			return false, nil
		}
		return false, models.NewInternalError(err)
	}
	return true, nil
}

// Delete removes a posting. Linked applications keep their data and lose the link.
func (r *jobPostingRepository) Delete(ctx context.Context, id uint) error {
	res := conn(ctx, r.db).Delete(&models.JobPosting{}, id)
	if res.Error != nil {
		return models.NewInternalError(res.Error)
	}
	if res.RowsAffected == 0 {
		return models.NewNotFoundError("Job posting", id)
	}
	return nil
}
