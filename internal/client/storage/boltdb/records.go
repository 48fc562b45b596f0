package boltdb

import (
	"context"
	"encoding/json"
	"fmt"

	"go.etcd.io/bbolt"

	"github.com/iudanet/lunchsync/internal/client/storage"
	"github.com/iudanet/lunchsync/internal/models"
)

// SaveRecord stores or overwrites a lunch record in BoltDB
func (s *Storage) SaveRecord(ctx context.Context, record *models.LunchRecord) error {
	if s.db == nil {
		return storage.ErrStorageClosed
	}

	// Сериализуем запись в JSON
	data, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("failed to marshal lunch record: %w", err)
	}

	err = s.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketRecords)
		if bucket == nil {
			return storage.ErrStorageClosed
		}

		// Сохраняем по ключу ID
		if err := bucket.Put([]byte(record.ID), data); err != nil {
			return fmt.Errorf("failed to save record: %w", err)
		}

		return nil
	})

	if err != nil {
		return fmt.Errorf("transaction failed: %w", err)
	}

	return nil
}

// GetRecord retrieves a lunch record by ID
func (s *Storage) GetRecord(ctx context.Context, id string) (*models.LunchRecord, error) {
	if s.db == nil {
		return nil, storage.ErrStorageClosed
	}

	var record *models.LunchRecord

	err := s.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketRecords)
		if bucket == nil {
			return storage.ErrRecordNotFound
		}

		data := bucket.Get([]byte(id))
		if data == nil {
			return storage.ErrRecordNotFound
		}

		// Десериализуем
		record = &models.LunchRecord{}
		if err := json.Unmarshal(data, record); err != nil {
			return fmt.Errorf("failed to unmarshal record: %w", err)
		}

		return nil
	})

	if err != nil {
		return nil, err
	}

	return record, nil
}

// ListRecords returns all locally stored lunch records
func (s *Storage) ListRecords(ctx context.Context) ([]*models.LunchRecord, error) {
	if s.db == nil {
		return nil, storage.ErrStorageClosed
	}

	var records []*models.LunchRecord

	err := s.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketRecords)
		if bucket == nil {
			// Нет bucket - возвращаем пустой список
			return nil
		}

		return bucket.ForEach(func(k, v []byte) error {
			var record models.LunchRecord
			if err := json.Unmarshal(v, &record); err != nil {
				return fmt.Errorf("failed to unmarshal record: %w", err)
			}
			records = append(records, &record)
			return nil
		})
	})

	if err != nil {
		return nil, fmt.Errorf("failed to list records: %w", err)
	}

	return records, nil
}

// MarkRecordSynced sets synced=true on a locally stored record.
// Missing record is not an error: the record may live only on the server
// (created online, never persisted locally).
func (s *Storage) MarkRecordSynced(ctx context.Context, id string) error {
	if s.db == nil {
		return storage.ErrStorageClosed
	}

	err := s.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketRecords)
		if bucket == nil {
			return nil
		}

		data := bucket.Get([]byte(id))
		if data == nil {
			// Записи нет локально - нечего помечать
			return nil
		}

		var record models.LunchRecord
		if err := json.Unmarshal(data, &record); err != nil {
			return fmt.Errorf("failed to unmarshal record: %w", err)
		}

		record.Synced = true
		record.UpdatedAt = s.now()

		updated, err := json.Marshal(&record)
		if err != nil {
			return fmt.Errorf("failed to marshal updated record: %w", err)
		}

		if err := bucket.Put([]byte(id), updated); err != nil {
			return fmt.Errorf("failed to save updated record: %w", err)
		}

		return nil
	})

	if err != nil {
		return fmt.Errorf("mark synced transaction failed: %w", err)
	}

	return nil
}
