package sqlite

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/iudanet/lunchsync/internal/models"
	"github.com/iudanet/lunchsync/internal/server/storage"
)

// InsertRecord creates a lunch record.
// Повторная вставка с тем же ID возвращает ErrDuplicateRecord -
// клиент трактует её как успех уже применённой мутации.
func (s *Storage) InsertRecord(ctx context.Context, record *models.LunchRecord) error {
	query := `
		INSERT INTO lunch_records (id, user_id, date, time, comments, created_by, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := s.db.ExecContext(ctx, query,
		record.ID,
		record.UserID,
		record.Date,
		record.Time,
		record.Comments,
		record.CreatedBy,
		record.CreatedAt.Unix(),
		record.UpdatedAt.Unix(),
	)

	if err != nil {
		// Проверяем на duplicate id
		if strings.Contains(err.Error(), "UNIQUE constraint failed: lunch_records.id") {
			return storage.ErrDuplicateRecord
		}
		return fmt.Errorf("failed to insert record: %w", err)
	}

	return nil
}

// UpdateRecord updates an existing lunch record by ID
func (s *Storage) UpdateRecord(ctx context.Context, record *models.LunchRecord) error {
	query := `
		UPDATE lunch_records
		SET user_id = ?, date = ?, time = ?, comments = ?, updated_at = ?
		WHERE id = ?
	`

	result, err := s.db.ExecContext(ctx, query,
		record.UserID,
		record.Date,
		record.Time,
		record.Comments,
		time.Now().Unix(),
		record.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update record: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if affected == 0 {
		return storage.ErrRecordNotFound
	}

	return nil
}

// ListRecords returns records with optional user/date filters
func (s *Storage) ListRecords(ctx context.Context, userID, date string) ([]*models.LunchRecord, error) {
	query := `
		SELECT id, user_id, date, time, comments, created_by, created_at, updated_at
		FROM lunch_records
	`

	var conds []string
	var args []interface{}

	if userID != "" {
		conds = append(conds, "user_id = ?")
		args = append(args, userID)
	}
	if date != "" {
		conds = append(conds, "date = ?")
		args = append(args, date)
	}
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY date, time"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query records: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var records []*models.LunchRecord

	for rows.Next() {
		record := &models.LunchRecord{Synced: true}
		var createdAt, updatedAt int64

		if err := rows.Scan(
			&record.ID,
			&record.UserID,
			&record.Date,
			&record.Time,
			&record.Comments,
			&record.CreatedBy,
			&createdAt,
			&updatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan record: %w", err)
		}

		record.CreatedAt = time.Unix(createdAt, 0).UTC()
		record.UpdatedAt = time.Unix(updatedAt, 0).UTC()
		records = append(records, record)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration failed: %w", err)
	}

	return records, nil
}
