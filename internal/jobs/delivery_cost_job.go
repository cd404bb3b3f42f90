package jobs

import (
	"context"
	"log/slog"
	"time"

	"parcels/internal/core/application/usecases/commands"
	"parcels/internal/pkg/errs"

	"github.com/robfig/cron/v3"
)

// DefaultDeliveryCostSchedule runs the sweep once a minute.
const DefaultDeliveryCostSchedule = "@every 1m"

// DeliveryCostsHandler runs one pricing sweep.
type DeliveryCostsHandler interface {
	Handle(ctx context.Context, cmd commands.CalculateDeliveryCostsCommand) (commands.CalculateDeliveryCostsResult, error)
}

// DeliveryCostJob prices unpriced parcels on a schedule. A run that is still in
// progress when the next tick fires causes that tick to be skipped.
type DeliveryCostJob struct {
	handler  DeliveryCostsHandler
	schedule string
	cron     *cron.Cron
	logger   *slog.Logger
}

// NewDeliveryCostJob creates the job. schedule accepts standard five-field specs, an
// optional leading seconds field and descriptors such as "@every 1m".
func NewDeliveryCostJob(handler DeliveryCostsHandler, schedule string, logger *slog.Logger) *DeliveryCostJob {
	if schedule == "" {
		schedule = DefaultDeliveryCostSchedule
	}
	logger = logger.With("component", "delivery_cost_job")
	cl := cronLogger{logger: logger}

	return &DeliveryCostJob{
		handler:  handler,
		schedule: schedule,
		cron: cron.New(
			cron.WithParser(cron.NewParser(
				cron.SecondOptional|cron.Minute|cron.Hour|cron.Dom|cron.Month|cron.Dow|cron.Descriptor,
			)),
			cron.WithChain(cron.Recover(cl), cron.SkipIfStillRunning(cl)),
			cron.WithLogger(cl),
		),
		logger: logger,
	}
}

// Start registers the sweep and starts the scheduler.
func (j *DeliveryCostJob) Start() error {
	if _, err := j.cron.AddFunc(j.schedule, func() { j.Run(context.Background()) }); err != nil {
		return err
	}

	j.cron.Start()
	j.logger.Info("Delivery cost job started", "schedule", j.schedule)
	return nil
}

// Run performs one sweep and logs its outcome.
func (j *DeliveryCostJob) Run(ctx context.Context) {
	started := time.Now()
	result, err := j.handler.Handle(ctx, commands.NewCalculateDeliveryCostsCommand())
	if err != nil {
		j.logger.ErrorContext(ctx, "Delivery cost job failed",
			"priced", result.Priced,
			"failed", result.Failed,
			"error", errs.Sanitize(err.Error()))
		return
	}

	if result.Priced > 0 {
		j.logger.InfoContext(ctx, "Delivery cost job completed",
			"priced", result.Priced,
			"duration", time.Since(started))
	}
}

// Stop stops the scheduler and waits for a running sweep until ctx is done.
func (j *DeliveryCostJob) Stop(ctx context.Context) {
	select {
	case <-j.cron.Stop().Done():
	case <-ctx.Done():
		j.logger.Warn("Delivery cost job stopped before the running sweep finished")
		return
	}
	j.logger.Info("Delivery cost job stopped")
}
