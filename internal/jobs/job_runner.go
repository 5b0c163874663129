// Package jobs holds the background maintenance work that keeps rental state
// honest between requests: flagging overdue contracts and chasing customers
// who have not brought their bikes back.
package jobs

import (
	"database/sql"

	"bikerent-backend/internal/config"
	"bikerent-backend/internal/logger"
	"bikerent-backend/internal/repository/postgres"
	"bikerent-backend/internal/service"
)

// Services lists the service-layer dependencies jobs are allowed to call.
type Services struct {
	Email service.EmailService
}

// JobRunner owns the shared dependencies of every job. Jobs that need bulk
// updates go straight to the database; anything customer-facing goes through
// the services.
type JobRunner struct {
	db       *sql.DB
	store    *postgres.Store
	services *Services
	config   *config.Config
}

func NewJobRunner(db *sql.DB, store *postgres.Store, services *Services, cfg *config.Config) *JobRunner {
	return &JobRunner{
		db:       db,
		store:    store,
		services: services,
		config:   cfg,
	}
}

// Config exposes the loaded configuration so the scheduler can read the
// cron expressions.
func (jr *JobRunner) Config() *config.Config {
	return jr.config
}

// runWithRecovery keeps a panicking job from taking down the scheduler and
// the other registered jobs with it.
func (jr *JobRunner) runWithRecovery(jobName string, jobFunc func()) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("Job panicked", "job", jobName, "panic", r)
		}
	}()

	logger.Info("Starting job", "job", jobName)
	jobFunc()
	logger.Info("Job completed", "job", jobName)
}

// RunAllJobs executes every registered job once, in dependency order: rentals
// are flagged overdue before the reminder pass reads them.
func (jr *JobRunner) RunAllJobs() {
	jr.MarkOverdueRentals()
	jr.SendOverdueReminders()
}
