package jobs

import (
	"context"
	"fmt"
	"log/slog"
)

// JobManager coordinates all scheduled jobs in the application.
type JobManager struct {
	deliveryCostJob *DeliveryCostJob
}

// NewJobManager creates a job manager that runs the pricing sweep on schedule.
func NewJobManager(deliveryCosts DeliveryCostsHandler, schedule string, logger *slog.Logger) *JobManager {
	return &JobManager{
		deliveryCostJob: NewDeliveryCostJob(deliveryCosts, schedule, logger),
	}
}

// StartAll starts all scheduled jobs.
func (jm *JobManager) StartAll() error {
	if err := jm.deliveryCostJob.Start(); err != nil {
		return fmt.Errorf("failed to start delivery cost job: %w", err)
	}
	return nil
}

// StopAll stops all scheduled jobs, waiting for running work until ctx is done.
func (jm *JobManager) StopAll(ctx context.Context) {
	jm.deliveryCostJob.Stop(ctx)
}
