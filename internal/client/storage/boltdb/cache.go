package boltdb

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go.etcd.io/bbolt"

	"github.com/iudanet/lunchsync/internal/client/storage"
)

// cacheEntry внутренний формат хранения кэшированного значения
type cacheEntry struct {
	UpdatedAt time.Time       `json:"updated_at"`
	Value     json.RawMessage `json:"value"`
}

// PutCache stores a value under key with the current timestamp
func (s *Storage) PutCache(ctx context.Context, key string, value []byte) error {
	if s.db == nil {
		return storage.ErrStorageClosed
	}

	entry := cacheEntry{
		Value:     value,
		UpdatedAt: s.now(),
	}

	data, err := json.Marshal(&entry)
	if err != nil {
		return fmt.Errorf("failed to marshal cache entry: %w", err)
	}

	err = s.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketCache)
		if bucket == nil {
			return storage.ErrStorageClosed
		}

		if err := bucket.Put([]byte(key), data); err != nil {
			return fmt.Errorf("failed to save cache entry: %w", err)
		}

		return nil
	})

	if err != nil {
		return fmt.Errorf("cache put transaction failed: %w", err)
	}

	return nil
}

// GetCache returns the cached value if it is fresher than maxAge.
// Expired entries are purged on read, so stale data never accumulates.
func (s *Storage) GetCache(ctx context.Context, key string, maxAge time.Duration) ([]byte, error) {
	if s.db == nil {
		return nil, storage.ErrStorageClosed
	}

	var value []byte

	// Update-транзакция: устаревшую запись нужно удалить при чтении
	err := s.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketCache)
		if bucket == nil {
			return storage.ErrCacheMiss
		}

		data := bucket.Get([]byte(key))
		if data == nil {
			return storage.ErrCacheMiss
		}

		var entry cacheEntry
		if err := json.Unmarshal(data, &entry); err != nil {
			return fmt.Errorf("failed to unmarshal cache entry: %w", err)
		}

		// Проверяем возраст записи
		if s.now().Sub(entry.UpdatedAt) > maxAge {
			if err := bucket.Delete([]byte(key)); err != nil {
				return fmt.Errorf("failed to purge expired entry: %w", err)
			}
			return storage.ErrCacheMiss
		}

		value = entry.Value
		return nil
	})

	if err != nil {
		return nil, err
	}

	return value, nil
}
