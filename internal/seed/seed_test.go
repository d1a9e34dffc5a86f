package seed

import (
	"context"
	"os"
	"testing"
	"time"

	"hiresynapse/internal/database"
	"hiresynapse/internal/models"
	"hiresynapse/internal/repository"
	"hiresynapse/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestMain(m *testing.M) {
	os.Setenv("APP_ENV", "test")
	os.Exit(m.Run())
}

type services struct {
	db           *gorm.DB
	users        *service.UserService
	profiles     *service.ProfileService
	applications *service.ApplicationService
	letters      *service.CoverLetterService
	jobs         *service.JobService
	interview    *service.InterviewService
}

func newServices(t *testing.T) *services {
	t.Helper()
	db, err := database.OpenSQLite(":memory:")
	require.NoError(t, err)
	require.NoError(t, database.AutoMigrate(db))
	t.Cleanup(func() { _ = database.Close(db) })

	tx := repository.NewTransactor(db)
	postings := repository.NewJobPostingRepository(db)
	profiles := service.NewProfileService(repository.NewProfileRepository(db), tx)
	return &services{
		db:           db,
		users:        service.NewUserService(repository.NewUserRepository(db), profiles, tx),
		profiles:     profiles,
		applications: service.NewApplicationService(repository.NewApplicationRepository(db), postings, tx),
		letters:      service.NewCoverLetterService(repository.NewCoverLetterRepository(db), tx),
		jobs:         service.NewJobService(postings, time.Minute, 2),
		interview:    service.NewInterviewService(repository.NewInterviewQuestionRepository(db)),
	}
}

func TestLoadCatalog(t *testing.T) {
	t.Parallel()
	catalog, err := LoadCatalog()
	require.NoError(t, err)

	require.Len(t, catalog.Jobs, 4)
	assert.Equal(t, "Junior Python Developer", catalog.Jobs[0].Title)
	assert.Equal(t, "Tech Solutions Inc.", catalog.Jobs[0].CompanyName)
	assert.Equal(t, "https://example.com/job/python-dev-1", catalog.Jobs[0].JobURL)
	assert.Equal(t, "2025-01-13", catalog.Jobs[0].DatePostedSource)

	require.Len(t, catalog.Questions, 10)
	counts := map[models.QuestionCategory]int{}
	for _, q := range catalog.Questions {
		counts[q.Category]++
	}
	assert.Equal(t, 5, counts[models.CategoryGeneral])
	assert.Equal(t, 3, counts[models.QuestionCategory("BEHAVIORAL")])
	assert.Equal(t, 2, counts[models.QuestionCategory("TECHNICAL")])
}

func TestSeedCatalogIsIdempotent(t *testing.T) {
	t.Parallel()
	svc := newServices(t)
	ctx := context.Background()

	first, err := SeedCatalog(ctx, svc.jobs, svc.interview)
	require.NoError(t, err)
	assert.EqualValues(t, 4, first.Jobs.Added)
	assert.Equal(t, 10, first.QuestionsAdded)

	second, err := SeedCatalog(ctx, svc.jobs, svc.interview)
	require.NoError(t, err)
	assert.EqualValues(t, 0, second.Jobs.Added)
	assert.EqualValues(t, 4, second.Jobs.Skipped)
	assert.Zero(t, second.QuestionsAdded)

	page, err := svc.jobs.Search(ctx, "python", 1)
	require.NoError(t, err)
	assert.EqualValues(t, 3, page.Total)
}

func TestDemoSeederPopulatesProfiles(t *testing.T) {
	t.Parallel()
	svc := newServices(t)
	ctx := context.Background()

	seeder := NewDemoSeeder(svc.users, svc.profiles, svc.applications, svc.letters, 42)
	users, err := seeder.Run(ctx, DemoOptions{Users: 2, Applications: 3})
	require.NoError(t, err)
	require.Len(t, users, 2)

	for _, u := range users {
		profile, err := svc.profiles.GetProfile(ctx, u.ID)
		require.NoError(t, err)
		assert.Len(t, profile.Education, 1)
		assert.Len(t, profile.Experience, 1)
		assert.GreaterOrEqual(t, len(profile.Skills), 3)
		assert.NotEmpty(t, profile.Location)

		apps, err := svc.applications.List(ctx, u.ID, repository.Page{Number: 1})
		require.NoError(t, err)
		assert.EqualValues(t, 3, apps.Total)

		letters, err := svc.letters.List(ctx, u.ID)
		require.NoError(t, err)
		assert.Len(t, letters, 1)
	}

	_, err = svc.users.Authenticate(ctx, users[0].Email, DemoPassword)
	assert.NoError(t, err)
}
