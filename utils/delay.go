package utils

import (
	"context"
	"time"
)

// Pause blocks for d or until ctx is done. Pages are opened at a fixed
// pace so the site sees a steady, predictable request rate.
func Pause(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
