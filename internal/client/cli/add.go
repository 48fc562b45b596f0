package cli

import (
	"context"
	"flag"
	"fmt"
	"time"

	"github.com/iudanet/lunchsync/internal/models"
)

// runAdd сохраняет запись об обеде локально и ставит её в очередь.
// Команда работает и без сети: запись попадет на сервер при следующем
// успешном прогоне синхронизации.
func (c *Cli) runAdd(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("add", flag.ContinueOnError)
	userID := fs.String("user", "", "employee ID (required)")
	date := fs.String("date", "", "lunch date YYYY-MM-DD (default: today)")
	timeOfDay := fs.String("time", "", "lunch time HH:MM (default: now)")
	comment := fs.String("comment", "", "optional comment")
	createdBy := fs.String("by", "", "who records the lunch (default: same as -user)")

	if err := fs.Parse(args); err != nil {
		return err
	}

	if *userID == "" {
		return fmt.Errorf("-user is required")
	}

	now := time.Now()
	if *date == "" {
		*date = now.Format("2006-01-02")
	}
	if *timeOfDay == "" {
		*timeOfDay = now.Format("15:04")
	}
	if *createdBy == "" {
		*createdBy = *userID
	}

	// Лимит отправок проверяется до записи, попытка учитывается
	// только при успешном сохранении
	if res := c.limiter.CheckSubmission(*userID); res.Limited {
		return fmt.Errorf("submission rate limited for %s: retry in %d second(s)", *userID, res.RetryAfter)
	}

	record, err := c.dataService.SaveRecordOffline(ctx, &models.LunchRecord{
		UserID:    *userID,
		Date:      *date,
		Time:      *timeOfDay,
		Comments:  *comment,
		CreatedBy: *createdBy,
	})
	if err != nil {
		return fmt.Errorf("failed to save record: %w", err)
	}

	c.limiter.RecordSubmission(*userID)

	fmt.Println("✓ Lunch recorded")
	fmt.Printf("ID:   %s\n", record.ID)
	fmt.Printf("User: %s\n", record.UserID)
	fmt.Printf("Date: %s %s\n", record.Date, record.Time)
	if record.Comments != "" {
		fmt.Printf("Note: %s\n", record.Comments)
	}
	fmt.Println()
	fmt.Println("The record is queued and will reach the server on the next sync.")

	return nil
}
