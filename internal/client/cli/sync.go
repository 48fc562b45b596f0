package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/iudanet/lunchsync/internal/client/monitor"
)

// runSync запускает один прогон синхронизации вручную
func (c *Cli) runSync(ctx context.Context) error {
	fmt.Println("=== Synchronization ===")
	fmt.Println()

	result, err := c.monitor.SyncNow(ctx)
	if err != nil {
		var rateErr *monitor.RateLimitError
		switch {
		case errors.Is(err, monitor.ErrOffline):
			return fmt.Errorf("server is unreachable, records stay queued locally")
		case errors.Is(err, monitor.ErrSyncInFlight):
			return fmt.Errorf("another sync run is already in progress")
		case errors.As(err, &rateErr):
			return fmt.Errorf("%s", rateErr.Message())
		default:
			return fmt.Errorf("synchronization failed: %w", err)
		}
	}

	fmt.Println("✓ Synchronization completed")
	fmt.Println()
	fmt.Printf("Synced:  %d record(s)\n", result.Success)
	if result.Failed > 0 {
		fmt.Printf("Failed:  %d (retries exhausted)\n", result.Failed)
	}
	if result.Skipped > 0 {
		fmt.Printf("Retried later: %d\n", result.Skipped)
	}

	for _, syncErr := range result.Errors {
		fmt.Printf("  #%d %s %s: %v\n", syncErr.Item.ID, syncErr.Item.Action, syncErr.Item.Collection, syncErr.Err)
	}

	if result.Failed > 0 {
		fmt.Println()
		fmt.Println("Run 'lunchsync retry' to reset failed items.")
	}

	return nil
}
