// Package bootstrap wires the process-level dependencies shared by the server, worker and
// command-line tools.
package bootstrap

import (
	"context"
	"fmt"

	"hiresynapse/internal/cache"
	"hiresynapse/internal/config"
	"hiresynapse/internal/database"
	"hiresynapse/internal/repository"
	"hiresynapse/internal/seed"
	"hiresynapse/internal/service"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Options control runtime initialization behavior.
type Options struct {
	// ApplySchema runs migrations according to DB_SCHEMA_MODE before returning.
	ApplySchema bool
	// SeedCatalog loads the built-in job postings and interview questions.
	SeedCatalog bool
}

// InitRuntime connects to the database and Redis, then applies the schema and seeds as asked.
// A nil Redis client means the cache is unavailable and callers should degrade.
func InitRuntime(ctx context.Context, cfg *config.Config, opts Options) (*gorm.DB, *redis.Client, error) {
	db, err := database.Connect(cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("database connection failed: %w", err)
	}

	if opts.ApplySchema {
		if err := database.ApplySchema(ctx, db, cfg); err != nil {
			_ = database.Close(db)
			return nil, nil, fmt.Errorf("apply schema: %w", err)
		}
	}

	// May leave a nil client if Redis is unreachable.
	cache.InitRedis(cfg.RedisURL)
	r := cache.GetClient()

	if opts.SeedCatalog {
		if err := SeedCatalog(ctx, cfg, db); err != nil {
			_ = database.Close(db)
			return nil, nil, err
		}
	}

	return db, r, nil
}

// SeedCatalog loads the built-in sample catalog into db.
func SeedCatalog(ctx context.Context, cfg *config.Config, db *gorm.DB) error {
	svc := Services(cfg, db)
	if _, err := seed.SeedCatalog(ctx, svc.Jobs, svc.Interview); err != nil {
		return fmt.Errorf("seed catalog: %w", err)
	}
	return nil
}

// Services builds the full service graph over db.
func Services(cfg *config.Config, db *gorm.DB) *ServiceSet {
	tx := repository.NewTransactor(db)
	postings := repository.NewJobPostingRepository(db)
	profiles := service.NewProfileService(repository.NewProfileRepository(db), tx)
	return &ServiceSet{
		Users:        service.NewUserService(repository.NewUserRepository(db), profiles, tx),
		Profiles:     profiles,
		Applications: service.NewApplicationService(repository.NewApplicationRepository(db), postings, tx),
		CoverLetters: service.NewCoverLetterService(repository.NewCoverLetterRepository(db), tx),
		Jobs:         service.NewJobService(postings, cfg.JobSearchCacheTTL(), cfg.IngestConcurrency),
		Interview:    service.NewInterviewService(repository.NewInterviewQuestionRepository(db)),
	}
}

// ServiceSet groups every domain service.
type ServiceSet struct {
	Users        *service.UserService
	Profiles     *service.ProfileService
	Applications *service.ApplicationService
	CoverLetters *service.CoverLetterService
	Jobs         *service.JobService
	Interview    *service.InterviewService
}
