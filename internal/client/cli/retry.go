package cli

import (
	"context"
	"fmt"
)

// runRetry сбрасывает счетчики исчерпавших попытки элементов и
// пробует синхронизироваться снова
func (c *Cli) runRetry(ctx context.Context) error {
	fmt.Println("=== Retry Failed Items ===")
	fmt.Println()

	reset, err := c.monitor.RetryFailed(ctx)
	if err != nil {
		return fmt.Errorf("failed to reset items: %w", err)
	}

	if reset == 0 {
		fmt.Println("No failed items to retry.")
		return nil
	}

	fmt.Printf("✓ Reset %d item(s), sync scheduled\n", reset)
	return nil
}
