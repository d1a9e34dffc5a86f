package tasks

import (
	"context"
	"errors"
	"testing"

	"hiresynapse/internal/service"

	"github.com/hibiken/asynq"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type ingesterStub struct {
	got []service.IngestPosting
	err error
}

func (s *ingesterStub) Ingest(_ context.Context, postings []service.IngestPosting) (*service.IngestReport, error) {
	s.got = postings
	if s.err != nil {
		return nil, s.err
	}
	return &service.IngestReport{Added: int64(len(postings))}, nil
}

func TestIngestHandler_ProcessTask(t *testing.T) {
	stub := &ingesterStub{}
	task, err := NewJobsIngestTask(JobsIngestPayload{
		Postings:    []service.IngestPosting{{Title: "Dev", JobURL: "https://example.com/job/1"}},
		RequestedBy: 7,
	})
	require.NoError(t, err)
	assert.Equal(t, TypeJobsIngest, task.Type())

	require.NoError(t, NewIngestHandler(stub).ProcessTask(context.Background(), task))
	require.Len(t, stub.got, 1)
	assert.Equal(t, "https://example.com/job/1", stub.got[0].JobURL)
}

func TestIngestHandler_MalformedPayloadSkipsRetry(t *testing.T) {
	stub := &ingesterStub{}
	err := NewIngestHandler(stub).ProcessTask(context.Background(), asynq.NewTask(TypeJobsIngest, []byte("{")))
	assert.ErrorIs(t, err, asynq.SkipRetry)
	assert.Nil(t, stub.got)
}

func TestServeMux_CountsFailures(t *testing.T) {
	stub := &ingesterStub{err: errors.New("database unavailable")}
	mux := NewServeMux(stub)
	task, err := NewJobsIngestTask(JobsIngestPayload{})
	require.NoError(t, err)

	before := testutil.ToFloat64(taskFailedTotal.WithLabelValues(TypeJobsIngest))
	assert.Error(t, mux.ProcessTask(context.Background(), task))
	assert.Equal(t, before+1, testutil.ToFloat64(taskFailedTotal.WithLabelValues(TypeJobsIngest)))
	assert.Zero(t, testutil.ToFloat64(taskInProgress.WithLabelValues(TypeJobsIngest)))
}

func TestRedisOpt(t *testing.T) {
	opt, err := RedisOpt("redis://localhost:6379/2")
	require.NoError(t, err)
	client, ok := opt.(asynq.RedisClientOpt)
	require.True(t, ok)
	assert.Equal(t, "localhost:6379", client.Addr)
	assert.Equal(t, 2, client.DB)

	opt, err = RedisOpt("localhost:6380")
	require.NoError(t, err)
	assert.Equal(t, asynq.RedisClientOpt{Addr: "localhost:6380"}, opt)

	_, err = RedisOpt("http://localhost")
	assert.Error(t, err)
}
