package repository

import (
	"context"

	"hiresynapse/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ApplicationRepository persists tracked job applications.
type ApplicationRepository interface {
	GetByID(ctx context.Context, id uint) (*models.Application, error)
	ListByUser(ctx context.Context, userID uint, page Page) ([]models.Application, int64, error)
	Create(ctx context.Context, app *models.Application) error
	Update(ctx context.Context, app *models.Application) error
	Delete(ctx context.Context, id uint) error
}

type applicationRepository struct {
	db *gorm.DB
}

// NewApplicationRepository returns a new ApplicationRepository implementation.
func NewApplicationRepository(db *gorm.DB) ApplicationRepository {
	return &applicationRepository{db: db}
}

func (r *applicationRepository) GetByID(ctx context.Context, id uint) (*models.Application, error) {
	var app models.Application
	if err := conn(ctx, r.db).Preload("JobPosting").First(&app, id).Error; err != nil {
		return nil, notFoundOr(err, "Application", id)
	}
	return &app, nil
}

// ListByUser returns the user's applications, most recently updated first.
func (r *applicationRepository) ListByUser(ctx context.Context, userID uint, page Page) ([]models.Application, int64, error) {
	// Session lets Count and Find each build on the filter without sharing a statement.
	q := conn(ctx, r.db).Model(&models.Application{}).Where("user_id = ?", userID).Session(&gorm.Session{})

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, models.NewInternalError(err)
	}

	var apps []models.Application
	if err := q.Preload("JobPosting").
		Order("updated_at DESC, id DESC").
		Limit(page.Size).Offset(page.Offset()).
		Find(&apps).Error; err != nil {
		return nil, 0, models.NewInternalError(err)
	}
	return apps, total, nil
}

func (r *applicationRepository) Create(ctx context.Context, app *models.Application) error {
	if err := conn(ctx, r.db).Omit(clause.Associations).Create(app).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

// Update writes every column, so a cleared posting link or empty note is persisted.
func (r *applicationRepository) Update(ctx context.Context, app *models.Application) error {
	if err := conn(ctx, r.db).Omit(clause.Associations).Save(app).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *applicationRepository) Delete(ctx context.Context, id uint) error {
	res := conn(ctx, r.db).Delete(&models.Application{}, id)
	if res.Error != nil {
		return models.NewInternalError(res.Error)
	}
	if res.RowsAffected == 0 {
		return models.NewNotFoundError("Application", id)
	}
	return nil
}
