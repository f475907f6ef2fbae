package tasks

import (
	"context"
)

// ScheduledTaskFunc defines the standard signature for all scheduled tasks.
// The context provided by the scheduler should be respected for cancellation.
type ScheduledTaskFunc func(ctx context.Context) error

// RegisterAllTasks initializes and returns all scheduled tasks, keyed by the
// name used under scheduler.tasks in the configuration. Journal tasks are
// only registered when the journal is enabled.
func RegisterAllTasks(deps TaskDeps) map[string]ScheduledTaskFunc {
	tasks := make(map[string]ScheduledTaskFunc)

	tasks["status_report"] = newStatusReportTask(deps)

	if deps.Store != nil {
		tasks["journal_prune"] = newJournalPruneTask(deps)
		tasks["sql_maintenance"] = newSQLMaintenanceTask(deps)
	}

	deps.Logger.Info("Initialized scheduled tasks", "count", len(tasks))
	return tasks
}
