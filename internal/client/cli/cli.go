package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/iudanet/lunchsync/internal/client/data"
	"github.com/iudanet/lunchsync/internal/client/monitor"
	"github.com/iudanet/lunchsync/internal/client/remote"
	"github.com/iudanet/lunchsync/internal/client/sync"
	"github.com/iudanet/lunchsync/internal/ratelimit"
)

// Cli объединяет сервисы клиента для выполнения команд
type Cli struct {
	dataService data.Service
	syncService sync.Service
	monitor     *monitor.Monitor
	remote      remote.Store
	limiter     *ratelimit.Limiter
}

// New creates a new CLI command dispatcher
func New(dataService data.Service, syncService sync.Service, mon *monitor.Monitor, remoteStore remote.Store, limiter *ratelimit.Limiter) *Cli {
	return &Cli{
		dataService: dataService,
		syncService: syncService,
		monitor:     mon,
		remote:      remoteStore,
		limiter:     limiter,
	}
}

// Run выполняет команду и завершает процесс с ненулевым кодом при ошибке
func (c *Cli) Run(ctx context.Context, command string, args []string) {
	var err error

	switch command {
	case "add":
		err = c.runAdd(ctx, args)
	case "status":
		err = c.runStatus(ctx)
	case "sync":
		err = c.runSync(ctx)
	case "retry":
		err = c.runRetry(ctx)
	case "users":
		err = c.runUsers(ctx, args)
	case "watch":
		err = c.runWatch(ctx)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		PrintUsage()
		os.Exit(1)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func PrintUsage() {
	fmt.Println("LunchSync Client")
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  lunchsync [OPTIONS] COMMAND")
	fmt.Println()
	fmt.Println("Options:")
	fmt.Println("  --version      Show version information")
	fmt.Println("  --server URL   Server URL (default: http://localhost:8080)")
	fmt.Println("  --db PATH      Path to local database (default: lunchsync-client.db)")
	fmt.Println()
	fmt.Println("Commands:")
	fmt.Println("  add            Record a lunch attendance (works offline)")
	fmt.Println("  status         Show sync queue status")
	fmt.Println("  sync           Synchronize queued records with server")
	fmt.Println("  retry          Reset failed items and sync again")
	fmt.Println("  users          Show the employee directory")
	fmt.Println("  watch          Keep running, sync automatically when online")
	fmt.Println()
	fmt.Println("Examples:")
	fmt.Println("  lunchsync add -user emp-042 -comment 'sin cebolla'")
	fmt.Println("  lunchsync add -user emp-042 -date 2025-03-10 -time 12:30")
	fmt.Println("  lunchsync status")
	fmt.Println("  lunchsync sync")
	fmt.Println("  lunchsync users -refresh")
	fmt.Println("  lunchsync --server https://lunch.example.com watch")
}
