package tasks

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"hiresynapse/internal/middleware"
	"hiresynapse/internal/service"

	"github.com/hibiken/asynq"
)

// Ingester is the part of service.JobService the worker needs.
type Ingester interface {
	Ingest(ctx context.Context, postings []service.IngestPosting) (*service.IngestReport, error)
}

// IngestHandler consumes jobs:ingest tasks.
type IngestHandler struct {
	jobs Ingester
}

func NewIngestHandler(jobs Ingester) *IngestHandler {
	return &IngestHandler{jobs: jobs}
}

// ProcessTask implements asynq.Handler. A malformed payload is never retried; per-posting
// failures are counted in the report and do not fail the task.
func (h *IngestHandler) ProcessTask(ctx context.Context, t *asynq.Task) error {
	var payload JobsIngestPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return fmt.Errorf("decode %s payload: %v: %w", TypeJobsIngest, err, asynq.SkipRetry)
	}

	report, err := h.jobs.Ingest(ctx, payload.Postings)
	if err != nil {
		return err
	}
	middleware.Logger.InfoContext(ctx, "ingest task done",
		slog.Uint64("requested_by", uint64(payload.RequestedBy)),
		slog.Int("postings", len(payload.Postings)),
		slog.Int64("added", report.Added),
		slog.Int64("errored", report.Errored))
	return nil
}

// NewServeMux routes every task type to its handler.
func NewServeMux(jobs Ingester) *asynq.ServeMux {
	mux := asynq.NewServeMux()
	mux.Use(MetricsMiddleware())
	mux.Handle(TypeJobsIngest, NewIngestHandler(jobs))
	return mux
}
