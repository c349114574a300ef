package jobs

import (
	"context"
	"log/slog"

	"github.com/robfig/cron/v3"
)

// Heartbeater is anything that can poke its live connections. Satisfied by
// the HTTP server's event stream registry.
type Heartbeater interface {
	Heartbeat()
}

// HeartbeatJob emits a keep-alive comment on every open event stream twice a
// minute, well inside the 60 second idle timeout common to reverse proxies.
type HeartbeatJob struct {
	target Heartbeater
	cron   *cron.Cron
	logger *slog.Logger
}

// NewHeartbeatJob creates the stream keep-alive job.
func NewHeartbeatJob(target Heartbeater, logger *slog.Logger) *HeartbeatJob {
	return &HeartbeatJob{
		target: target,
		cron:   cron.New(cron.WithSeconds()),
		logger: logger.With("component", "heartbeat_job"),
	}
}

// Start begins the heartbeat job, running every 30 seconds.
func (j *HeartbeatJob) Start() error {
	_, err := j.cron.AddFunc("*/30 * * * * *", func() {
		j.target.Heartbeat()
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Heartbeat job started (running every 30 seconds)")
	return nil
}

// Stop stops the heartbeat job.
func (j *HeartbeatJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Heartbeat job stopped")
}
