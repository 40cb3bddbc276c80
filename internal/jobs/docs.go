// Package jobs provides scheduled background tasks for the dispatch engine.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3
// to handle periodic operations required for order dispatch.
//
// # Available Jobs
//
// 1. RedispatchJob - periodically retries dispatch for orders still pending
// 2. StaleDriverJob - takes drivers offline when their location feed goes quiet
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	jobManager := jobs.NewJobManager(redispatchJob, staleDriverJob)
//
//	// Start all jobs
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	// Stop all jobs when shutting down
//	defer jobManager.StopAll()
//
// # Scheduling
//
// Both jobs take six-field cron expressions with a seconds field, so sweeps
// can run as often as once a second. The defaults come from configuration.
//
// # Error Handling
//
// - The redispatch job ignores the expected no-driver outcome
// - The stale-driver job skips busy drivers; they go offline once their orders resolve
// - Failed job starts will stop any already running jobs
package jobs
