// Package jobs provides scheduled background tasks for the certification service.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3
// to handle periodic operations required by the order pipeline.
//
// # Available Jobs
//
// 1. ProcessingWatchdogJob - Runs every minute to surface orders whose
// reconstruction has been in progress beyond the configured threshold.
// The watchdog never mutates order state; recovery is an operator action
// through the re-trigger endpoint.
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	jobManager := jobs.NewJobManager(db, 15*time.Minute, logger)
//
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	defer jobManager.StopAll()
package jobs
