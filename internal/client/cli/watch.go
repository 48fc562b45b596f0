package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/iudanet/lunchsync/internal/client/monitor"
)

// runWatch держит клиент запущенным: монитор зондирует сервер и
// синхронизирует очередь автоматически при восстановлении связи
func (c *Cli) runWatch(ctx context.Context) error {
	fmt.Println("Watching connectivity, press Ctrl+C to stop.")
	fmt.Println()

	go c.monitor.Run(ctx)

	ticker := time.NewTicker(monitor.DefaultPollInterval)
	defer ticker.Stop()

	var last string
	for {
		select {
		case <-ctx.Done():
			fmt.Println()
			fmt.Println("Stopped.")
			return nil
		case <-ticker.C:
			line := formatState(c.monitor.Snapshot())
			// Печатаем только изменения, чтобы не засорять терминал
			if line == last {
				continue
			}
			last = line
			fmt.Printf("[%s] %s\n", time.Now().Format("15:04:05"), line)
		}
	}
}

func formatState(state monitor.State) string {
	connectivity := "offline"
	if state.Online {
		connectivity = "online"
	}

	line := "server " + connectivity
	if state.Syncing {
		line += ", syncing"
	}
	if state.Status != nil {
		line += fmt.Sprintf(", queued %d (failed %d)", state.Status.Total, state.Status.Failed)
	}
	if !state.LastSync.IsZero() {
		line += ", last sync " + state.LastSync.Format("15:04:05")
	}

	return line
}
