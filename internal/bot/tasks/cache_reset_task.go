package tasks

import (
	"context"
)

// newCacheResetTask creates the daily job that clears the in-memory
// runtime caches: trigger locks, the daily dedupe set, and the cached
// sunrise value. The LLM failure cooldown is left alone; it expires on its
// own schedule.
func newCacheResetTask(deps TaskDeps) ScheduledTaskFunc {
	log := deps.Logger.With("task", "cache_reset")

	return func(ctx context.Context) error {
		deps.Runtime.ResetDaily()
		log.InfoContext(ctx, "Runtime caches cleared")
		return nil
	}
}
