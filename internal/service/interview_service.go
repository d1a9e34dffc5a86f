package service

import (
	"context"
	"strings"

	"hiresynapse/internal/cache"
	"hiresynapse/internal/models"
	"hiresynapse/internal/repository"
)

type InterviewService struct {
	questions repository.InterviewQuestionRepository
}

// QuestionGroup is the questions of one category, labelled for display.
type QuestionGroup struct {
	Category  models.QuestionCategory    `json:"category"`
	Label     string                     `json:"label"`
	Questions []models.InterviewQuestion `json:"questions"`
}

func NewInterviewService(questions repository.InterviewQuestionRepository) *InterviewService {
	return &InterviewService{questions: questions}
}

// Grouped returns the question bank grouped by category, optionally limited to one category.
// An unknown category is a validation error.
func (s *InterviewService) Grouped(ctx context.Context, category string) ([]QuestionGroup, error) {
	cat := models.QuestionCategory(strings.ToUpper(strings.TrimSpace(category)))
	if cat != "" && !cat.Valid() {
		return nil, models.NewFieldValidationError(map[string]string{
			"category": "Select a valid choice.",
		})
	}

	groups := []QuestionGroup{}
	err := cache.Aside(ctx, "interview_questions", cache.QuestionsKey(string(cat)), &groups, cache.QuestionsTTL, func() error {
		questions, err := s.questions.List(ctx, cat)
		if err != nil {
			return err
		}
		groups = groupQuestions(questions)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return groups, nil
}

// groupQuestions keeps the input order, which is sorted by category.
func groupQuestions(questions []models.InterviewQuestion) []QuestionGroup {
	groups := []QuestionGroup{}
	for _, q := range questions {
		if n := len(groups); n == 0 || groups[n-1].Category != q.Category {
			groups = append(groups, QuestionGroup{Category: q.Category, Label: q.Category.Label()})
		}
		last := &groups[len(groups)-1]
		last.Questions = append(last.Questions, q)
	}
	return groups
}

// Seed inserts questions missing from the bank and reports how many were added.
func (s *InterviewService) Seed(ctx context.Context, questions []models.InterviewQuestion) (int, error) {
	added := 0
	for i := range questions {
		if questions[i].Category == "" {
			questions[i].Category = models.CategoryGeneral
		}
		created, err := s.questions.CreateIfMissing(ctx, &questions[i])
		if err != nil {
			return added, err
		}
		if created {
			added++
		}
	}
	if added > 0 {
		cache.InvalidateQuestions(ctx)
	}
	return added, nil
}
