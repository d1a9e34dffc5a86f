package repository

import (
	"context"

	"hiresynapse/internal/models"

	"gorm.io/gorm"
)

// CoverLetterRepository persists cover letter drafts.
type CoverLetterRepository interface {
	GetByID(ctx context.Context, id uint) (*models.CoverLetter, error)
	ListByUser(ctx context.Context, userID uint) ([]models.CoverLetter, error)
	Create(ctx context.Context, letter *models.CoverLetter) error
	Update(ctx context.Context, letter *models.CoverLetter) error
	Delete(ctx context.Context, id uint) error
}

type coverLetterRepository struct {
	db *gorm.DB
}

// NewCoverLetterRepository returns a new CoverLetterRepository implementation.
func NewCoverLetterRepository(db *gorm.DB) CoverLetterRepository {
	return &coverLetterRepository{db: db}
}

func (r *coverLetterRepository) GetByID(ctx context.Context, id uint) (*models.CoverLetter, error) {
	var letter models.CoverLetter
	if err := conn(ctx, r.db).First(&letter, id).Error; err != nil {
		return nil, notFoundOr(err, "Cover letter", id)
	}
	return &letter, nil
}

func (r *coverLetterRepository) ListByUser(ctx context.Context, userID uint) ([]models.CoverLetter, error) {
	var letters []models.CoverLetter
	if err := conn(ctx, r.db).Where("user_id = ?", userID).
		Order("updated_at DESC, id DESC").
		Find(&letters).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return letters, nil
}

func (r *coverLetterRepository) Create(ctx context.Context, letter *models.CoverLetter) error {
	if err := conn(ctx, r.db).Create(letter).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *coverLetterRepository) Update(ctx context.Context, letter *models.CoverLetter) error {
	if err := conn(ctx, r.db).Save(letter).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *coverLetterRepository) Delete(ctx context.Context, id uint) error {
	res := conn(ctx, r.db).Delete(&models.CoverLetter{}, id)
	if res.Error != nil {
		return models.NewInternalError(res.Error)
	}
	if res.RowsAffected == 0 {
		return models.NewNotFoundError("Cover letter", id)
	}
	return nil
}
