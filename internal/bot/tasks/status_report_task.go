package tasks

import (
	"context"

	"github.com/edgard/phrasebot/internal/database"
)

// newStatusReportTask creates the task that logs each channel's trigger
// progress, plus its journaled phrase total when the journal is enabled.
func newStatusReportTask(deps TaskDeps) ScheduledTaskFunc {
	log := deps.Logger.With("task", "status_report")

	return func(ctx context.Context) error {
		snapshots := deps.States.Snapshots()
		if len(snapshots) == 0 {
			log.InfoContext(ctx, "No channel activity yet")
			return nil
		}

		for _, s := range snapshots {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			attrs := []any{
				"channel", s.Channel,
				"count", s.Count,
				"next_trigger", s.NextTrigger,
				"remaining", s.NextTrigger - s.Count,
			}
			if deps.Store != nil {
				sent, err := deps.Store.CountEvents(ctx, s.Channel, database.EventPhrase)
				if err != nil {
					log.WarnContext(ctx, "Failed to count journaled phrases", "channel", s.Channel, "error", err)
				} else {
					attrs = append(attrs, "phrases_sent", sent)
				}
			}
			log.InfoContext(ctx, "Channel status", attrs...)
		}
		return nil
	}
}
