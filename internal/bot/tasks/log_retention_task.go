package tasks

import (
	"context"
	"fmt"
	"time"
)

// newLogRetentionTask creates the daily job that removes travel-log rows
// older than the configured retention window, then runs database
// maintenance to reclaim the space.
func newLogRetentionTask(deps TaskDeps) ScheduledTaskFunc {
	log := deps.Logger.With("task", "log_retention")

	return func(ctx context.Context) error {
		cutoff := deps.Runtime.Now().UTC().AddDate(0, 0, -deps.Config.Travel.RetentionDays)

		start := time.Now()
		deleted, err := deps.Store.DeleteTravelLogsBefore(ctx, cutoff)
		if err != nil {
			return fmt.Errorf("retention cleanup failed: %w", err)
		}
		log.InfoContext(ctx, "Retention cleanup finished",
			"cutoff", cutoff, "deleted", deleted, "duration", time.Since(start))

		if deleted == 0 {
			return nil
		}
		if err := deps.Store.RunSQLMaintenance(ctx); err != nil {
			return fmt.Errorf("post-cleanup maintenance failed: %w", err)
		}
		return nil
	}
}
