// Package scheduler wires the background jobs onto a cron timetable. The
// schedules themselves live in configuration so operators can retune them
// without a rebuild.
package scheduler

import (
	"fmt"
	"time"

	"github.com/robfig/cron/v3"

	"bikerent-backend/internal/jobs"
	"bikerent-backend/internal/logger"
)

// Scheduler runs the overdue-rental jobs on their configured cron schedules.
// All schedules are evaluated in UTC with seconds precision.
type Scheduler struct {
	cron   *cron.Cron
	runner *jobs.JobRunner
}

func NewScheduler(runner *jobs.JobRunner) (*Scheduler, error) {
	s := &Scheduler{
		cron:   cron.New(cron.WithLocation(time.UTC), cron.WithSeconds()),
		runner: runner,
	}

	cfg := runner.Config().Scheduler
	schedules := []struct {
		name string
		spec string
		fn   func()
	}{
		{"mark-overdue-rentals", cfg.MarkOverdueRentals, runner.MarkOverdueRentals},
		{"send-overdue-reminders", cfg.SendOverdueReminders, runner.SendOverdueReminders},
	}

	for _, sc := range schedules {
		if _, err := s.cron.AddFunc(sc.spec, sc.fn); err != nil {
			return nil, fmt.Errorf("failed to schedule %s (%q): %w", sc.name, sc.spec, err)
		}
		logger.Info("Scheduled job", "job", sc.name, "schedule", sc.spec)
	}

	return s, nil
}

func (s *Scheduler) Start() {
	s.cron.Start()
	logger.Info("Scheduler started")
}

// Stop halts the timetable and blocks until any in-flight job returns.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
	logger.Info("Scheduler stopped")
}
