package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func useMiniredis(t *testing.T) *miniredis.Miniredis {
	t.Helper()
	mr := miniredis.RunT(t)
	SetClient(redis.NewClient(&redis.Options{Addr: mr.Addr()}))
	t.Cleanup(func() { SetClient(nil) })
	return mr
}

type page struct {
	IDs []uint `json:"ids"`
}

func TestAside_FetchesOnceThenServesFromCache(t *testing.T) {
	useMiniredis(t)
	ctx := context.Background()

	calls := 0
	fetch := func(dest *page) func() error {
		return func() error {
			calls++
			dest.IDs = []uint{1, 2, 3}
			return nil
		}
	}

	var first page
	require.NoError(t, Aside(ctx, "test", "k", &first, time.Minute, fetch(&first)))
	var second page
	require.NoError(t, Aside(ctx, "test", "k", &second, time.Minute, fetch(&second)))

	assert.Equal(t, 1, calls)
	assert.Equal(t, []uint{1, 2, 3}, second.IDs)
}

func TestAside_FetchErrorIsNotCached(t *testing.T) {
	mr := useMiniredis(t)
	ctx := context.Background()

	var dest page
	err := Aside(ctx, "test", "k", &dest, time.Minute, func() error { return errors.New("db down") })
	assert.Error(t, err)
	assert.False(t, mr.Exists("k"))
}

func TestAside_WithoutRedisCallsFetch(t *testing.T) {
	SetClient(nil)
	calls := 0
	var dest page
	require.NoError(t, Aside(context.Background(), "test", "k", &dest, time.Minute, func() error {
		calls++
		return nil
	}))
	assert.Equal(t, 1, calls)
}

func TestInvalidateJobSearch_ChangesKeys(t *testing.T) {
	useMiniredis(t)
	ctx := context.Background()

	before := JobSearchKey(ctx, "Python", 1)
	assert.Equal(t, before, JobSearchKey(ctx, "  python ", 1))
	assert.NotEqual(t, before, JobSearchKey(ctx, "python", 2))

	InvalidateJobSearch(ctx)
	assert.NotEqual(t, before, JobSearchKey(ctx, "python", 1))
}

func TestRevoke(t *testing.T) {
	mr := useMiniredis(t)
	ctx := context.Background()

	assert.False(t, IsRevoked(ctx, "abc"))
	require.NoError(t, Revoke(ctx, "abc", time.Minute))
	assert.True(t, IsRevoked(ctx, "abc"))

	mr.FastForward(2 * time.Minute)
	assert.False(t, IsRevoked(ctx, "abc"))
}

func TestInvalidateQuestions(t *testing.T) {
	mr := useMiniredis(t)
	ctx := context.Background()

	require.NoError(t, SetJSON(ctx, QuestionsKey(""), []string{"q"}, time.Minute))
	require.NoError(t, SetJSON(ctx, QuestionsKey("TECHNICAL"), []string{"q"}, time.Minute))

	InvalidateQuestions(ctx)
	assert.False(t, mr.Exists(QuestionsKey("")))
	assert.False(t, mr.Exists(QuestionsKey("TECHNICAL")))
}
