package jobs

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// Every enqueues a job of jobType on q once per interval until ctx ends.
// A tick whose enqueue fails is skipped.
func Every(ctx context.Context, q *Queue, jobType string, interval time.Duration) {
	if interval <= 0 {
		return
	}
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if err := q.Enqueue(Job{Type: jobType}); err != nil {
					q.logger.Debug("scheduled job skipped", zap.String("type", jobType), zap.Error(err))
				}
			}
		}
	}()
}
