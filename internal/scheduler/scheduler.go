// Package scheduler runs the periodic ingestion and rating jobs.
package scheduler

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
)

// SyncJob pulls a window of finished games and applies them to the ratings.
// It returns the number of games it added.
type SyncJob func(ctx context.Context, since, until time.Time) (int, error)

// Scheduler manages the scheduled ingestion jobs.
type Scheduler struct {
	cron      *cron.Cron
	logger    *log.Logger
	mu        sync.RWMutex
	isRunning bool
	jobIDs    []cron.EntryID
}

// NewScheduler creates a new scheduler.
func NewScheduler(logger *log.Logger) *Scheduler {
	return &Scheduler{
		cron:   cron.New(cron.WithLocation(time.UTC)),
		logger: logger,
		jobIDs: make([]cron.EntryID, 0),
	}
}

// ScheduleHistoricalSync schedules a wide-window backfill on a cron
// expression. Each run covers the trailing window duration.
func (s *Scheduler) ScheduleHistoricalSync(cronExpression string, window time.Duration, job SyncJob) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return fmt.Errorf("cannot schedule job while scheduler is running")
	}

	jobFunc := func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Hour)
		defer cancel()

		until := time.Now()
		since := until.Add(-window)

		s.logger.Printf("Starting historical sync for %s to %s",
			since.Format(time.RFC3339), until.Format(time.RFC3339))

		added, err := job(ctx, since, until)
		if err != nil {
			s.logger.Printf("Error during historical sync: %v", err)
			return
		}
		s.logger.Printf("Historical sync completed: %d games added", added)
	}

	entryID, err := s.cron.AddFunc(cronExpression, jobFunc)
	if err != nil {
		return fmt.Errorf("failed to add job: %w", err)
	}

	s.jobIDs = append(s.jobIDs, entryID)
	s.logger.Printf("Scheduled historical sync job with cron expression: %s", cronExpression)

	return nil
}

// SchedulePolling schedules a short-interval poll for recently finished
// games. Each run covers a window of two intervals so a slow run cannot open
// a gap.
func (s *Scheduler) SchedulePolling(intervalSeconds int, job SyncJob) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return fmt.Errorf("cannot schedule job while scheduler is running")
	}

	if intervalSeconds < 5 {
		intervalSeconds = 5
	}
	interval := time.Duration(intervalSeconds) * time.Second

	jobFunc := func() {
		ctx, cancel := context.WithTimeout(context.Background(), interval)
		defer cancel()

		until := time.Now()
		since := until.Add(-2 * interval)

		if _, err := job(ctx, since, until); err != nil {
			s.logger.Printf("Error during polling sync: %v", err)
		}
	}

	entryID, err := s.cron.AddFunc(fmt.Sprintf("@every %ds", intervalSeconds), jobFunc)
	if err != nil {
		return fmt.Errorf("failed to add job: %w", err)
	}

	s.jobIDs = append(s.jobIDs, entryID)
	s.logger.Printf("Scheduled polling job with interval: %d seconds", intervalSeconds)

	return nil
}

// Start starts the scheduler.
func (s *Scheduler) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return fmt.Errorf("scheduler is already running")
	}
	if len(s.jobIDs) == 0 {
		return fmt.Errorf("no jobs scheduled")
	}

	s.cron.Start()
	s.isRunning = true
	s.logger.Printf("Scheduler started with %d jobs", len(s.jobIDs))

	return nil
}

// Stop gracefully stops the scheduler, waiting for running jobs to finish.
func (s *Scheduler) Stop() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.isRunning {
		return nil
	}

	<-s.cron.Stop().Done()
	s.isRunning = false
	s.logger.Printf("Scheduler stopped")

	return nil
}

// IsRunning returns whether the scheduler is currently running.
func (s *Scheduler) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.isRunning
}

// NextRun returns the time of the next scheduled job run.
func (s *Scheduler) NextRun() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.isRunning {
		return time.Time{}
	}

	next := time.Time{}
	for _, jobID := range s.jobIDs {
		entry := s.cron.Entry(jobID)
		if entry.Valid() && (next.IsZero() || entry.Next.Before(next)) {
			next = entry.Next
		}
	}

	return next
}
