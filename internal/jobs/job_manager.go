package jobs

import (
	"fmt"
	"log/slog"

	"tableside/internal/sessions"
)

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	heartbeatJob      *HeartbeatJob
	sessionCleanupJob *SessionCleanupJob
}

// NewJobManager creates a new job manager with all required jobs.
func NewJobManager(
	heartbeater Heartbeater,
	store *sessions.Store,
	logger *slog.Logger,
) *JobManager {
	return &JobManager{
		heartbeatJob:      NewHeartbeatJob(heartbeater, logger),
		sessionCleanupJob: NewSessionCleanupJob(store, logger),
	}
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if err := jm.heartbeatJob.Start(); err != nil {
		return fmt.Errorf("failed to start heartbeat job: %w", err)
	}

	if err := jm.sessionCleanupJob.Start(); err != nil {
		// Stop already started jobs if this one fails
		jm.heartbeatJob.Stop()
		return fmt.Errorf("failed to start session cleanup job: %w", err)
	}

	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.heartbeatJob.Stop()
	jm.sessionCleanupJob.Stop()
}
