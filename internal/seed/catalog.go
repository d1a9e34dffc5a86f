// Package seed loads the built-in job catalog and interview question bank, and generates demo
// accounts for development.
package seed

import (
	"context"
	"embed"
	"fmt"
	"log/slog"

	"hiresynapse/internal/middleware"
	"hiresynapse/internal/models"
	"hiresynapse/internal/service"

	"gopkg.in/yaml.v3"
)

//go:embed data/*.yml
var dataFS embed.FS

type questionEntry struct {
	Category     string `yaml:"category"`
	QuestionText string `yaml:"question_text"`
	AnswerTips   string `yaml:"answer_tips"`
	Difficulty   string `yaml:"difficulty"`
}

// Catalog is the built-in sample data shipped with the binary.
type Catalog struct {
	Jobs      []service.IngestPosting
	Questions []models.InterviewQuestion
}

// LoadCatalog parses the embedded sample postings and question bank.
func LoadCatalog() (*Catalog, error) {
	var jobs []service.IngestPosting
	if err := readYAML("data/jobs.yml", &jobs); err != nil {
		return nil, err
	}

	var entries []questionEntry
	if err := readYAML("data/questions.yml", &entries); err != nil {
		return nil, err
	}
	questions := make([]models.InterviewQuestion, 0, len(entries))
	for _, e := range entries {
		cat := models.QuestionCategory(e.Category)
		if !cat.Valid() {
			return nil, fmt.Errorf("question %q: unknown category %q", e.QuestionText, e.Category)
		}
		questions = append(questions, models.InterviewQuestion{
			QuestionText: e.QuestionText,
			Category:     cat,
			AnswerTips:   e.AnswerTips,
			Difficulty:   e.Difficulty,
		})
	}

	return &Catalog{Jobs: jobs, Questions: questions}, nil
}

func readYAML(name string, dst any) error {
	raw, err := dataFS.ReadFile(name)
	if err != nil {
		return fmt.Errorf("read %s: %w", name, err)
	}
	if err := yaml.Unmarshal(raw, dst); err != nil {
		return fmt.Errorf("parse %s: %w", name, err)
	}
	return nil
}

// CatalogResult summarizes one SeedCatalog run.
type CatalogResult struct {
	Jobs           *service.IngestReport
	QuestionsAdded int
}

// SeedCatalog ingests the built-in postings and questions. Existing rows (matched by job URL
// and question text) are left alone, so running it twice is harmless.
func SeedCatalog(ctx context.Context, jobs *service.JobService, interview *service.InterviewService) (*CatalogResult, error) {
	catalog, err := LoadCatalog()
	if err != nil {
		return nil, err
	}

	report, err := jobs.Ingest(ctx, catalog.Jobs)
	if err != nil {
		return nil, fmt.Errorf("ingest sample jobs: %w", err)
	}

	added, err := interview.Seed(ctx, catalog.Questions)
	if err != nil {
		return nil, fmt.Errorf("seed interview questions: %w", err)
	}

	middleware.Logger.InfoContext(ctx, "catalog seeded",
		slog.Int64("jobs_added", report.Added),
		slog.Int64("jobs_skipped", report.Skipped),
		slog.Int64("jobs_errored", report.Errored),
		slog.Int("questions_added", added))
	return &CatalogResult{Jobs: report, QuestionsAdded: added}, nil
}
