package service

import (
	"context"
	"fmt"
	"testing"

	"hiresynapse/internal/cache"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func samplePostings() []IngestPosting {
	return []IngestPosting{
		{Title: "Junior Python Developer", CompanyName: "Tech Solutions Inc.", Location: "Remote", JobURL: "https://example.com/job/python-dev-1", Source: "Example Board"},
		{Title: "Data Analyst", Description: "SQL, Python and dashboards", CompanyName: "Data Insights LLC", Location: "New York, NY", JobURL: "https://example.com/job/data-analyst-1", DatePostedSource: "2024-01-15"},
		{Title: "Frontend Engineer", CompanyName: "Web Wizards", Location: "Remote", JobURL: "https://example.com/job/frontend-1"},
	}
}

func TestJobService_IngestDeduplicatesOnURL(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)
	ctx := context.Background()

	report, err := env.jobs.Ingest(ctx, samplePostings())
	require.NoError(t, err)
	assert.Equal(t, &IngestReport{Added: 3}, report)

	batch := append(samplePostings(),
		IngestPosting{Title: "", JobURL: "https://example.com/job/blank"},
		IngestPosting{Title: "Scripted", JobURL: "javascript:alert(1)"},
	)
	report, err = env.jobs.Ingest(ctx, batch)
	require.NoError(t, err)
	assert.Equal(t, &IngestReport{Skipped: 3, Errored: 2}, report)
}

func TestJobService_Search(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)
	ctx := context.Background()
	_, err := env.jobs.Ingest(ctx, samplePostings())
	require.NoError(t, err)

	res, err := env.jobs.Search(ctx, "python", 1)
	require.NoError(t, err)
	assert.EqualValues(t, 2, res.Total)
	assert.Equal(t, 15, res.Size)

	res, err = env.jobs.Search(ctx, "REMOTE frontend", 0)
	require.NoError(t, err)
	require.Len(t, res.Items, 1)
	assert.Equal(t, "Web Wizards", res.Items[0].CompanyName)
	assert.Equal(t, 1, res.Page)

	res, err = env.jobs.Search(ctx, "nothing-matches", 1)
	require.NoError(t, err)
	assert.NotNil(t, res.Items)
	assert.Empty(t, res.Items)
}

func TestJobService_SearchPaginatesByFifteen(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)
	ctx := context.Background()

	var batch []IngestPosting
	for i := 0; i < 20; i++ {
		batch = append(batch, IngestPosting{Title: fmt.Sprintf("Role %d", i), JobURL: fmt.Sprintf("https://example.com/job/%d", i)})
	}
	_, err := env.jobs.Ingest(ctx, batch)
	require.NoError(t, err)

	second, err := env.jobs.Search(ctx, "", 2)
	require.NoError(t, err)
	assert.Len(t, second.Items, 5)
	assert.Equal(t, 2, second.Pages)
}

// Not parallel: it swaps the package-level Redis client.
func TestJobService_SearchCacheInvalidatedByIngest(t *testing.T) {
	mr := miniredis.RunT(t)
	cache.SetClient(redis.NewClient(&redis.Options{Addr: mr.Addr()}))
	t.Cleanup(func() { cache.SetClient(nil) })

	env := newTestEnv(t)
	ctx := context.Background()
	_, err := env.jobs.Ingest(ctx, samplePostings()[:1])
	require.NoError(t, err)

	res, err := env.jobs.Search(ctx, "developer", 1)
	require.NoError(t, err)
	assert.EqualValues(t, 1, res.Total)
	assert.True(t, mr.Exists(cache.JobSearchKey(ctx, "developer", 1)))

	_, err = env.jobs.Ingest(ctx, []IngestPosting{{Title: "Go Developer", JobURL: "https://example.com/job/go-1"}})
	require.NoError(t, err)

	res, err = env.jobs.Search(ctx, "developer", 1)
	require.NoError(t, err)
	assert.EqualValues(t, 2, res.Total)

	posting, err := env.jobs.GetByID(ctx, res.Items[0].ID)
	require.NoError(t, err)
	assert.True(t, mr.Exists(cache.JobPostingKey(posting.ID)))
}
