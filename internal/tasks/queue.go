package tasks

import (
	"context"
	"fmt"
	"strings"
	"time"

	"hiresynapse/internal/service"

	"github.com/hibiken/asynq"
)

const (
	ingestMaxRetry = 3
	ingestTimeout  = 5 * time.Minute
)

// Queue enqueues background jobs.
type Queue struct {
	client *asynq.Client
}

// RedisOpt turns REDIS_URL into asynq connection options. Like the cache client it accepts a
// bare host:port as well as a redis:// URL.
func RedisOpt(redisURL string) (asynq.RedisConnOpt, error) {
	if !strings.Contains(redisURL, "://") {
		return asynq.RedisClientOpt{Addr: redisURL}, nil
	}
	opt, err := asynq.ParseRedisURI(redisURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	return opt, nil
}

func NewQueue(redisURL string) (*Queue, error) {
	opt, err := RedisOpt(redisURL)
	if err != nil {
		return nil, err
	}
	return &Queue{client: asynq.NewClient(opt)}, nil
}

// EnqueueIngest schedules a catalog ingestion run and returns the task id.
func (q *Queue) EnqueueIngest(ctx context.Context, postings []service.IngestPosting, requestedBy uint) (string, error) {
	task, err := NewJobsIngestTask(JobsIngestPayload{Postings: postings, RequestedBy: requestedBy})
	if err != nil {
		return "", err
	}
	info, err := q.client.EnqueueContext(ctx, task,
		asynq.MaxRetry(ingestMaxRetry),
		asynq.Timeout(ingestTimeout),
	)
	if err != nil {
		return "", fmt.Errorf("enqueue %s: %w", TypeJobsIngest, err)
	}
	return info.ID, nil
}

func (q *Queue) Close() error {
	return q.client.Close()
}
