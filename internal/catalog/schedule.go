package catalog

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/robfig/cron"
)

// ScheduleRefresh keeps the cache warm by calling Initialize on schedule, e.g. "@every 10m".
// Initialize is a no-op while the snapshot is fresh. The caller starts and stops the
// returned scheduler.
func ScheduleRefresh(c *Cache, schedule string, logger *slog.Logger) (*cron.Cron, error) {
	if logger == nil {
		logger = slog.Default()
	}
	scheduler := cron.New()
	err := scheduler.AddFunc(schedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), c.timeout)
		defer cancel()
		if err := c.Initialize(ctx); err != nil {
			logger.Warn("scheduled catalog refresh did not finish", "error", err)
		}
	})
	if err != nil {
		return nil, fmt.Errorf("catalog refresh schedule %q: %w", schedule, err)
	}
	return scheduler, nil
}
