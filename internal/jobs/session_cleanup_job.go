package jobs

import (
	"context"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"tableside/internal/sessions"
)

// SessionCleanupJob sweeps expired sessions out of the in-memory store once
// a minute. Expiry is already enforced at validation time; the sweep only
// reclaims memory held by tokens nobody presents anymore.
type SessionCleanupJob struct {
	store  *sessions.Store
	cron   *cron.Cron
	logger *slog.Logger
}

// NewSessionCleanupJob creates the expired-session sweep job.
func NewSessionCleanupJob(store *sessions.Store, logger *slog.Logger) *SessionCleanupJob {
	return &SessionCleanupJob{
		store:  store,
		cron:   cron.New(),
		logger: logger.With("component", "session_cleanup_job"),
	}
}

// Start begins the cleanup job, running every minute.
func (j *SessionCleanupJob) Start() error {
	_, err := j.cron.AddFunc("* * * * *", func() {
		ctx := context.Background()
		if purged := j.store.PurgeExpired(time.Now()); purged > 0 {
			j.logger.InfoContext(ctx, "Purged expired sessions", "count", purged)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Session cleanup job started (running every minute)")
	return nil
}

// Stop stops the cleanup job.
func (j *SessionCleanupJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Session cleanup job stopped")
}
