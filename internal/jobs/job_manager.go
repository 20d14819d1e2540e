// Package jobs provides scheduled background tasks built on
// github.com/robfig/cron/v3.
//
// The only job today is ReplayPendingActionsJob, which drains the offline
// action queue every 30 seconds. Jobs are managed through JobManager:
//
//	jobManager := jobs.NewJobManager(replayHandler, logger)
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//	defer jobManager.StopAll()
package jobs

import (
	"fmt"
	"log/slog"

	"orderdesk/internal/core/application/usecases/commands"
)

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	replayJob *ReplayPendingActionsJob
}

// NewJobManager creates a new job manager with all required jobs.
func NewJobManager(
	replayHandler commands.ReplayPendingActionsCommandHandler,
	logger *slog.Logger,
) *JobManager {
	return &JobManager{
		replayJob: NewReplayPendingActionsJob(replayHandler, logger),
	}
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if err := jm.replayJob.Start(); err != nil {
		return fmt.Errorf("failed to start replay job: %w", err)
	}
	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.replayJob.Stop()
}
