package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/iudanet/lunchsync/internal/client/cli"
	"github.com/iudanet/lunchsync/internal/client/data"
	"github.com/iudanet/lunchsync/internal/client/monitor"
	"github.com/iudanet/lunchsync/internal/client/remote"
	"github.com/iudanet/lunchsync/internal/client/storage/boltdb"
	"github.com/iudanet/lunchsync/internal/client/sync"
	"github.com/iudanet/lunchsync/internal/ratelimit"
)

var (
	// Version information set via ldflags during build
	Version   = "dev"
	BuildDate = "unknown"
	GitCommit = "unknown"
)

func main() {
	// Глобальные флаги
	showVersion := flag.Bool("version", false, "Show version information")
	serverURL := flag.String("server", defaultServerURL(), "Server URL")
	dbPath := flag.String("db", "lunchsync-client.db", "Path to local database")
	verbose := flag.Bool("v", false, "Verbose logging")

	flag.Parse()

	// Show version and exit if requested
	if *showVersion {
		printVersion()
		os.Exit(0)
	}

	args := flag.Args()
	if len(args) == 0 {
		cli.PrintUsage()
		os.Exit(1)
	}
	command := args[0]

	logLevel := slog.LevelWarn
	if *verbose {
		logLevel = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: logLevel,
	}))

	// Ctrl+C завершает watch и прерывает текущую команду
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Открываем BoltDB storage
	store, err := boltdb.New(ctx, *dbPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to open database: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		if err := store.Close(); err != nil {
			logger.Error("failed to close database", "error", err)
		}
	}()

	remoteStore := remote.NewClient(*serverURL)

	// Limiter один на процесс, передается явно клиентским сервисам
	limiter := ratelimit.New()

	dataService := data.NewService(store, remoteStore)
	syncService := sync.NewService(store, remoteStore, logger)
	mon := monitor.New(syncService, remoteStore, limiter, logger)

	c := cli.New(dataService, syncService, mon, remoteStore, limiter)
	c.Run(ctx, command, args[1:])
}

// defaultServerURL позволяет задавать адрес сервера через окружение,
// флаг -server имеет приоритет
func defaultServerURL() string {
	if url := os.Getenv("LUNCHSYNC_SERVER"); url != "" {
		return url
	}
	return "http://localhost:8080"
}

func printVersion() {
	fmt.Printf("LunchSync Client\n")
	fmt.Printf("Version:    %s\n", Version)
	fmt.Printf("Build Date: %s\n", BuildDate)
	fmt.Printf("Git Commit: %s\n", GitCommit)
}
