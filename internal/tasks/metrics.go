package tasks

import (
	"context"

	"github.com/hibiken/asynq"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	taskProcessedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "hiresynapse",
		Subsystem: "asynq",
		Name:      "tasks_processed_total",
		Help:      "Tasks processed by type",
	}, []string{"task_type"})

	taskFailedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "hiresynapse",
		Subsystem: "asynq",
		Name:      "tasks_failed_total",
		Help:      "Tasks that returned an error by type",
	}, []string{"task_type"})

	taskInProgress = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "hiresynapse",
		Subsystem: "asynq",
		Name:      "tasks_in_progress",
		Help:      "Tasks currently running by type",
	}, []string{"task_type"})
)

// MetricsMiddleware records task counts and in-flight tasks.
func MetricsMiddleware() asynq.MiddlewareFunc {
	return func(next asynq.Handler) asynq.Handler {
		return asynq.HandlerFunc(func(ctx context.Context, task *asynq.Task) error {
			taskType := task.Type()
			taskInProgress.WithLabelValues(taskType).Inc()
			defer taskInProgress.WithLabelValues(taskType).Dec()

			err := next.ProcessTask(ctx, task)
			if err != nil {
				taskFailedTotal.WithLabelValues(taskType).Inc()
			}
			taskProcessedTotal.WithLabelValues(taskType).Inc()
			return err
		})
	}
}
