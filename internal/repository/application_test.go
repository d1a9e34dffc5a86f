package repository

import (
	"context"
	"testing"
	"time"

	"hiresynapse/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplicationRepository_ListByUser(t *testing.T) {
	db := newTestDB(t)
	repo := NewApplicationRepository(db)
	ctx := context.Background()
	ada, _ := seedUser(t, db, "ada")
	bob, _ := seedUser(t, db, "bob")

	base := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	for i, title := range []string{"First", "Second", "Third"} {
		app := &models.Application{UserID: ada.ID, CompanyName: "Acme", JobTitle: title, Status: models.StatusWishlist}
		require.NoError(t, repo.Create(ctx, app))
		require.NoError(t, db.Model(app).UpdateColumn("updated_at", base.Add(time.Duration(i)*time.Hour)).Error)
	}
	require.NoError(t, repo.Create(ctx, &models.Application{UserID: bob.ID, CompanyName: "Other", JobTitle: "X", Status: models.StatusApplied}))

	apps, total, err := repo.ListByUser(ctx, ada.ID, Page{Number: 1, Size: 2})
	require.NoError(t, err)
	assert.EqualValues(t, 3, total)
	require.Len(t, apps, 2)
	assert.Equal(t, "Third", apps[0].JobTitle)
	assert.Equal(t, "Second", apps[1].JobTitle)
}

func TestApplicationRepository_UpdateClearsLink(t *testing.T) {
	db := newTestDB(t)
	repo := NewApplicationRepository(db)
	ctx := context.Background()
	user, _ := seedUser(t, db, "ada")

	posting := models.JobPosting{Title: "Dev", JobURL: "https://example.com/x"}
	require.NoError(t, db.Create(&posting).Error)
	app := &models.Application{UserID: user.ID, JobPostingID: &posting.ID, Status: models.StatusApplied}
	require.NoError(t, repo.Create(ctx, app))

	loaded, err := repo.GetByID(ctx, app.ID)
	require.NoError(t, err)
	require.NotNil(t, loaded.JobPosting)

	loaded.JobPostingID = nil
	loaded.JobPosting = nil
	loaded.Notes = ""
	require.NoError(t, repo.Update(ctx, loaded))

	reloaded, err := repo.GetByID(ctx, app.ID)
	require.NoError(t, err)
	assert.Nil(t, reloaded.JobPostingID)

	require.NoError(t, repo.Delete(ctx, app.ID))
	assert.Equal(t, models.CodeNotFound, models.ErrorCode(repo.Delete(ctx, app.ID)))
}
