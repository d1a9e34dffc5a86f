package service

import (
	"context"

	"hiresynapse/internal/models"
	"hiresynapse/internal/observability"
	"hiresynapse/internal/repository"
	"hiresynapse/internal/validation"
)

type CoverLetterService struct {
	letters repository.CoverLetterRepository
	tx      repository.Transactor
}

type CoverLetterInput struct {
	UserID uint   `json:"-"`
	Title  string `json:"title" validate:"required,max=255"`
	Body   string `json:"body" validate:"required"`
}

func NewCoverLetterService(letters repository.CoverLetterRepository, tx repository.Transactor) *CoverLetterService {
	return &CoverLetterService{letters: letters, tx: tx}
}

func (s *CoverLetterService) Create(ctx context.Context, in CoverLetterInput) (*models.CoverLetter, error) {
	if errs := validation.Struct(in); errs != nil {
		return nil, models.NewFieldValidationError(errs)
	}
	letter := &models.CoverLetter{UserID: in.UserID, Title: in.Title, Body: in.Body}
	if err := s.letters.Create(ctx, letter); err != nil {
		return nil, err
	}
	return letter, nil
}

func (s *CoverLetterService) authorize(ctx context.Context, userID, id uint) (*models.CoverLetter, error) {
	letter, err := s.letters.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if letter.UserID != userID {
		observability.AccessDenied.WithLabelValues("cover_letter", "forbidden").Inc()
		return nil, models.NewForbiddenError("Cover letter", id)
	}
	return letter, nil
}

func (s *CoverLetterService) Get(ctx context.Context, userID, id uint) (*models.CoverLetter, error) {
	return s.authorize(ctx, userID, id)
}

// List returns the user's cover letters, most recently edited first.
func (s *CoverLetterService) List(ctx context.Context, userID uint) ([]models.CoverLetter, error) {
	return s.letters.ListByUser(ctx, userID)
}

func (s *CoverLetterService) Update(ctx context.Context, id uint, in CoverLetterInput) (*models.CoverLetter, error) {
	if errs := validation.Struct(in); errs != nil {
		return nil, models.NewFieldValidationError(errs)
	}

	var letter *models.CoverLetter
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		var err error
		letter, err = s.authorize(ctx, in.UserID, id)
		if err != nil {
			return err
		}
		letter.Title = in.Title
		letter.Body = in.Body
		return s.letters.Update(ctx, letter)
	})
	if err != nil {
		return nil, err
	}
	return letter, nil
}

func (s *CoverLetterService) Delete(ctx context.Context, userID, id uint) error {
	return s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		if _, err := s.authorize(ctx, userID, id); err != nil {
			return err
		}
		return s.letters.Delete(ctx, id)
	})
}
