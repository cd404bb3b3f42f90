// Package jobs provides scheduled background tasks for the parcel registry.
//
// Jobs are built on github.com/robfig/cron/v3.
//
// # Available Jobs
//
// DeliveryCostJob runs the pricing sweep (commands.CalculateDeliveryCostsCommand),
// by default every minute. Overlapping ticks are skipped while a sweep is running, and a
// panicking sweep is recovered and logged.
//
// # Usage
//
//	jobManager := jobs.NewJobManager(deliveryCostsHandler, cfg.PricingSchedule, logger)
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//	defer jobManager.StopAll(shutdownCtx)
//
// # Error Handling
//
// An unavailable exchange rate and per-parcel failures are logged; the next tick
// retries whatever is still unpriced.
package jobs
