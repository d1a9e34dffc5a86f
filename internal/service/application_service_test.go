package service

import (
	"context"
	"testing"

	"hiresynapse/internal/models"
	"hiresynapse/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedPosting(t *testing.T, env *testEnv, url string) *models.JobPosting {
	t.Helper()
	posting := &models.JobPosting{
		Title:       "Junior Python Developer",
		CompanyName: "Tech Solutions Inc.",
		Location:    "Remote",
		JobURL:      url,
	}
	require.NoError(t, env.db.Create(posting).Error)
	return posting
}

func TestApplicationService_UnlinkedRequiresCompanyAndTitle(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)
	user := env.register(t, "ada")

	_, err := env.applications.Create(context.Background(), ApplicationInput{
		UserID:   user.ID,
		JobTitle: "Developer",
	})
	assertValidationError(t, err, "company_name")

	_, err = env.applications.Create(context.Background(), ApplicationInput{
		UserID:      user.ID,
		CompanyName: "Acme",
		JobTitle:    "Developer",
		Status:      "HIRED",
	})
	assertValidationError(t, err, "status")
}

func TestApplicationService_RejectsNonWebURL(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)
	user := env.register(t, "ada")

	for _, link := range []string{"javascript:alert(1)", "foo:bar"} {
		_, err := env.applications.Create(context.Background(), ApplicationInput{
			UserID:         user.ID,
			CompanyName:    "Acme",
			JobTitle:       "Developer",
			ApplicationURL: link,
		})
		assertValidationError(t, err, "application_url")
	}
}

func TestApplicationService_CreatePrefillsFromPosting(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)
	user := env.register(t, "ada")
	posting := seedPosting(t, env, "https://example.com/job/python-dev-1")

	app, err := env.applications.Create(context.Background(), ApplicationInput{
		UserID:       user.ID,
		JobPostingID: &posting.ID,
		Location:     "Berlin",
		DateApplied:  "2024-02-01",
	})
	require.NoError(t, err)
	assert.Equal(t, "Tech Solutions Inc.", app.CompanyName)
	assert.Equal(t, "Junior Python Developer", app.JobTitle)
	assert.Equal(t, "Berlin", app.Location, "submitted values win")
	assert.Equal(t, posting.JobURL, app.ApplicationURL)
	assert.Equal(t, models.StatusWishlist, app.Status)
	require.NotNil(t, app.JobPosting)
	require.NotNil(t, app.DateApplied)
	assert.Equal(t, "2024-02-01", app.DateApplied.Format("2006-01-02"))
}

func TestApplicationService_UnknownPosting(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)
	user := env.register(t, "ada")
	missing := uint(99)

	_, err := env.applications.Create(context.Background(), ApplicationInput{UserID: user.ID, JobPostingID: &missing})
	assertValidationError(t, err, "job_posting_id")
}

func TestApplicationService_UpdateClearsLinkAndChecksOwner(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)
	ctx := context.Background()
	ada := env.register(t, "ada")
	bob := env.register(t, "bob")
	posting := seedPosting(t, env, "https://example.com/job/1")

	app, err := env.applications.Create(ctx, ApplicationInput{UserID: ada.ID, JobPostingID: &posting.ID})
	require.NoError(t, err)

	_, err = env.applications.Update(ctx, app.ID, ApplicationInput{UserID: bob.ID, CompanyName: "X", JobTitle: "Y"})
	assertAccessDenied(t, err)
	assertAccessDenied(t, env.applications.Delete(ctx, bob.ID, app.ID))
	_, err = env.applications.Get(ctx, bob.ID, app.ID)
	assertAccessDenied(t, err)

	updated, err := env.applications.Update(ctx, app.ID, ApplicationInput{
		UserID:      ada.ID,
		CompanyName: "Tech Solutions Inc.",
		JobTitle:    "Junior Python Developer",
		Status:      models.StatusInterviewing,
	})
	require.NoError(t, err)
	assert.Nil(t, updated.JobPostingID)
	assert.Equal(t, models.StatusInterviewing, updated.Status)

	require.NoError(t, env.applications.Delete(ctx, ada.ID, app.ID))
	_, err = env.applications.Get(ctx, ada.ID, app.ID)
	assert.Equal(t, models.CodeNotFound, models.ErrorCode(err))
}

func TestApplicationService_PostingRemovalKeepsApplication(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)
	ctx := context.Background()
	user := env.register(t, "ada")
	posting := seedPosting(t, env, "https://example.com/job/2")

	app, err := env.applications.Create(ctx, ApplicationInput{UserID: user.ID, JobPostingID: &posting.ID})
	require.NoError(t, err)

	require.NoError(t, env.jobs.Delete(ctx, posting.ID))

	kept, err := env.applications.Get(ctx, user.ID, app.ID)
	require.NoError(t, err)
	assert.Nil(t, kept.JobPostingID)
	assert.Nil(t, kept.JobPosting)
	assert.Equal(t, "Tech Solutions Inc.", kept.CompanyName)
}

func TestApplicationService_ListPaginates(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)
	ctx := context.Background()
	user := env.register(t, "ada")

	for i := 0; i < 12; i++ {
		_, err := env.applications.Create(ctx, ApplicationInput{UserID: user.ID, CompanyName: "Acme", JobTitle: "Dev"})
		require.NoError(t, err)
	}

	first, err := env.applications.List(ctx, user.ID, repository.Page{Number: 1})
	require.NoError(t, err)
	assert.Len(t, first.Items, 10)
	assert.EqualValues(t, 12, first.Total)
	assert.Equal(t, 2, first.Pages)

	second, err := env.applications.List(ctx, user.ID, repository.Page{Number: 2})
	require.NoError(t, err)
	assert.Len(t, second.Items, 2)
}
