package repository

import (
	"context"
	"errors"

	"hiresynapse/internal/models"

	"gorm.io/gorm"
)

// InterviewQuestionRepository reads and seeds the static question bank.
type InterviewQuestionRepository interface {
	// List returns questions ordered by category then text. An empty category returns all.
	List(ctx context.Context, category models.QuestionCategory) ([]models.InterviewQuestion, error)
	// CreateIfMissing inserts q unless its text already exists and reports whether it did.
	CreateIfMissing(ctx context.Context, q *models.InterviewQuestion) (bool, error)
}

type interviewQuestionRepository struct {
	db *gorm.DB
}

// NewInterviewQuestionRepository returns a new InterviewQuestionRepository implementation.
func NewInterviewQuestionRepository(db *gorm.DB) InterviewQuestionRepository {
	return &interviewQuestionRepository{db: db}
}

func (r *interviewQuestionRepository) List(ctx context.Context, category models.QuestionCategory) ([]models.InterviewQuestion, error) {
	q := conn(ctx, r.db)
	if category != "" {
		q = q.Where("category = ?", category)
	}
	var questions []models.InterviewQuestion
	if err := q.Order("category ASC, question_text ASC").Find(&questions).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return questions, nil
}

func (r *interviewQuestionRepository) CreateIfMissing(ctx context.Context, q *models.InterviewQuestion) (bool, error) {
	db := conn(ctx, r.db)
	var existing models.InterviewQuestion
	err := db.Where("question_text = ?", q.QuestionText).First(&existing).Error
	if err == nil {
		*q = existing
		return false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return false, models.NewInternalError(err)
	}
	if err := db.Create(q).Error; err != nil {
		if IsDuplicate(err) {
			return false, nil
		}
		return false, models.NewInternalError(err)
	}
	return true, nil
}
