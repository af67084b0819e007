// Package latency simulates the response time of the mock collaborators
// (catalog, payment gateway, shipping provider).
package latency

import (
	"context"
	"time"
)

// Wait blocks for d or until ctx is done. A zero d returns immediately.
func Wait(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
