package cli

import (
	"context"
	"fmt"
	"time"
)

// probeTimeout таймаут одноразовой проверки доступности сервера
const probeTimeout = 3 * time.Second

// runStatus показывает состояние очереди синхронизации и доступность сервера
func (c *Cli) runStatus(ctx context.Context) error {
	fmt.Println("=== Sync Status ===")
	fmt.Println()

	probeCtx, cancel := context.WithTimeout(ctx, probeTimeout)
	defer cancel()

	if err := c.remote.Ping(probeCtx); err != nil {
		fmt.Println("Server:  offline")
	} else {
		fmt.Println("Server:  online")
	}

	status, err := c.syncService.Status(ctx)
	if err != nil {
		return fmt.Errorf("failed to get queue status: %w", err)
	}

	fmt.Printf("Queued:  %d item(s)\n", status.Total)
	fmt.Printf("Pending: %d\n", status.Pending)
	fmt.Printf("Failed:  %d\n", status.Failed)

	if status.Failed > 0 {
		fmt.Println()
		fmt.Println("⚠️  Some items exhausted their retries.")
		fmt.Println("Run 'lunchsync retry' to reset and try again.")
		for _, item := range status.Items {
			if item.LastError != "" {
				fmt.Printf("  #%d %s %s: %s\n", item.ID, item.Action, item.Collection, item.LastError)
			}
		}
	} else if status.Total == 0 {
		fmt.Println()
		fmt.Println("✓ All records synchronized")
	}

	return nil
}
