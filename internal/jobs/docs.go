// Package jobs provides scheduled background tasks for the table service.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3
// to handle the periodic housekeeping the service needs.
//
// # Available Jobs
//
// 1. HeartbeatJob - Runs every 30 seconds to emit keep-alive comments on open event streams
// 2. SessionCleanupJob - Runs every minute to purge expired sessions from the in-memory store
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	// Create job manager with required dependencies
//	jobManager := jobs.NewJobManager(server, sessionStore, logger)
//
//	// Start all jobs
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	// Stop all jobs when shutting down
//	defer jobManager.StopAll()
//
// # Error Handling
//
// - The heartbeat job never fails; a slow stream simply skips a beat
// - The cleanup job logs how many sessions it purged, and nothing when idle
// - Failed job starts will stop any already running jobs
package jobs
