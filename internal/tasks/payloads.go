// Package tasks defines the background jobs exchanged through the asynq queue.
package tasks

import (
	"encoding/json"

	"hiresynapse/internal/service"

	"github.com/hibiken/asynq"
)

// Task types shared by producers and the worker.
const (
	TypeJobsIngest = "jobs:ingest"
)

// JobsIngestPayload carries a batch of scraped postings for the catalog.
type JobsIngestPayload struct {
	Postings    []service.IngestPosting `json:"postings"`
	RequestedBy uint                    `json:"requested_by"`
}

func NewJobsIngestTask(payload JobsIngestPayload) (*asynq.Task, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TypeJobsIngest, b), nil
}
