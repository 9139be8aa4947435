package jobs

import (
	"log/slog"

	"carrental-backend/internal/config"
	"carrental-backend/internal/logger"
	"carrental-backend/internal/repository/postgres"
	"carrental-backend/internal/service"
)

// JobRunner coordinates the scheduled reminder jobs.
type JobRunner struct {
	store    *postgres.Store
	notifier service.NotificationService
	config   *config.Config
}

func NewJobRunner(store *postgres.Store, notifier service.NotificationService, cfg *config.Config) *JobRunner {
	return &JobRunner{
		store:    store,
		notifier: notifier,
		config:   cfg,
	}
}

// Config exposes the loaded configuration to the scheduler.
func (jr *JobRunner) Config() *config.Config {
	return jr.config
}

// runWithRecovery wraps job execution with panic recovery so one bad job
// cannot take the scheduler down. The job body logs through a job-scoped
// logger.
func (jr *JobRunner) runWithRecovery(jobName string, jobFunc func(log *slog.Logger)) {
	log := logger.WithJob(jobName)
	defer func() {
		if r := recover(); r != nil {
			log.Error("Job panicked", "panic", r)
		}
	}()

	log.Info("Starting job")
	jobFunc(log)
	log.Info("Job completed")
}

// RunAll runs every job once, for manual execution from the cronjob binary.
func (jr *JobRunner) RunAll() {
	jr.SendPickupReminders()
	jr.SendReturnReminders()
}
