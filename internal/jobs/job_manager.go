package jobs

import (
	"fmt"
)

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	redispatchJob  *RedispatchJob
	staleDriverJob *StaleDriverJob
}

// NewJobManager creates a new job manager over the configured jobs.
func NewJobManager(redispatchJob *RedispatchJob, staleDriverJob *StaleDriverJob) *JobManager {
	return &JobManager{
		redispatchJob:  redispatchJob,
		staleDriverJob: staleDriverJob,
	}
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if err := jm.redispatchJob.Start(); err != nil {
		return fmt.Errorf("failed to start redispatch job: %w", err)
	}

	if err := jm.staleDriverJob.Start(); err != nil {
		// Stop already started jobs if this one fails
		jm.redispatchJob.Stop()
		return fmt.Errorf("failed to start stale driver job: %w", err)
	}

	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.redispatchJob.Stop()
	jm.staleDriverJob.Stop()
}
