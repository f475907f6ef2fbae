package tasks

import (
	"context"
	"errors"
	"fmt"
	"time"
)

const pruneTimeout = 2 * time.Minute

// now is the clock used to compute the retention cutoff.
var now = time.Now

// newJournalPruneTask creates the task that deletes journal events older
// than the configured retention. A zero retention keeps everything.
func newJournalPruneTask(deps TaskDeps) ScheduledTaskFunc {
	log := deps.Logger.With("task", "journal_prune")

	return func(ctx context.Context) error {
		retention := deps.Config.Database.Retention
		if retention <= 0 {
			log.InfoContext(ctx, "Journal retention disabled, nothing to prune")
			return nil
		}

		startTime := time.Now()
		timeoutCtx, cancel := context.WithTimeout(ctx, pruneTimeout)
		defer cancel()

		cutoff := now().Add(-retention)
		removed, err := deps.Store.PruneEventsBefore(timeoutCtx, cutoff)
		duration := time.Since(startTime)

		if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
			log.WarnContext(ctx, "Journal prune timed out or was cancelled", "error", err, "duration", duration)
			return fmt.Errorf("journal prune timed out or was cancelled: %w", err)
		}
		if err != nil {
			log.ErrorContext(ctx, "Journal prune failed", "error", err, "duration", duration)
			return fmt.Errorf("journal prune failed: %w", err)
		}

		log.InfoContext(ctx, "Journal prune completed", "cutoff", cutoff, "removed", removed, "duration", duration)
		return nil
	}
}
