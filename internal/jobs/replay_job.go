package jobs

import (
	"context"
	"log/slog"

	"orderdesk/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// ReplayPendingActionsJob drains the offline action queue on a schedule.
// Runs every 30 seconds so buffered confirmations reach the server shortly
// after connectivity returns.
type ReplayPendingActionsJob struct {
	handler commands.ReplayPendingActionsCommandHandler
	cron    *cron.Cron
	logger  *slog.Logger
}

// NewReplayPendingActionsJob creates a new job for replaying queued actions.
func NewReplayPendingActionsJob(handler commands.ReplayPendingActionsCommandHandler, logger *slog.Logger) *ReplayPendingActionsJob {
	return &ReplayPendingActionsJob{
		handler: handler,
		cron:    cron.New(cron.WithSeconds()),
		logger:  logger.With("component", "replay_pending_actions_job"),
	}
}

// Start begins the replay job on its 30-second schedule.
func (j *ReplayPendingActionsJob) Start() error {
	_, err := j.cron.AddFunc("*/30 * * * * *", func() {
		ctx := context.Background()

		result, err := j.handler.Handle(ctx)
		if err != nil {
			j.logger.ErrorContext(ctx, "Replay job failed", "error", err)
			return
		}

		if result.Applied > 0 {
			j.logger.InfoContext(ctx, "Replayed pending actions", "applied", result.Applied)
		}
		// Connectivity loss mid-replay is the expected offline scenario,
		// not a system fault.
		if result.Interrupted {
			j.logger.InfoContext(ctx, "Replay interrupted, connectivity still down",
				"applied", result.Applied)
		}
		for _, failure := range result.Failures {
			j.logger.ErrorContext(ctx, "Pending action rejected on replay",
				"actionId", failure.ActionID, "error", failure.Err)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Replay job started (running every 30 seconds)")
	return nil
}

// Stop stops the replay job.
func (j *ReplayPendingActionsJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Replay job stopped")
}
