package cli

import (
	"context"
	"errors"
	"flag"
	"fmt"

	"github.com/iudanet/lunchsync/internal/client/data"
	"github.com/iudanet/lunchsync/internal/client/storage"
	"github.com/iudanet/lunchsync/internal/models"
)

// runUsers показывает справочник сотрудников из локального кэша
func (c *Cli) runUsers(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("users", flag.ContinueOnError)
	refresh := fs.Bool("refresh", false, "fetch the directory from the server")

	if err := fs.Parse(args); err != nil {
		return err
	}

	var users []models.User
	var err error

	if *refresh {
		users, err = c.dataService.RefreshUserCache(ctx)
		if err != nil {
			return fmt.Errorf("failed to refresh user directory: %w", err)
		}
	} else {
		users, err = c.dataService.CachedUsers(ctx, data.DefaultUserCacheAge)
		if errors.Is(err, storage.ErrCacheMiss) {
			// Кэш пуст или устарел - пробуем сервер
			users, err = c.dataService.RefreshUserCache(ctx)
			if err != nil {
				return fmt.Errorf("directory cache is empty and server is unreachable: %w", err)
			}
		} else if err != nil {
			return fmt.Errorf("failed to read user directory: %w", err)
		}
	}

	if len(users) == 0 {
		fmt.Println("Directory is empty.")
		return nil
	}

	fmt.Println("=== Employee Directory ===")
	fmt.Println()
	for _, u := range users {
		fmt.Printf("%-12s %-24s %s\n", u.ID, u.Name, u.Department)
	}

	return nil
}
