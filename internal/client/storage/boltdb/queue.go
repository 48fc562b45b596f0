package boltdb

import (
	"context"
	"encoding/binary"
	"encoding/json"
	"fmt"

	"go.etcd.io/bbolt"

	"github.com/iudanet/lunchsync/internal/client/storage"
	"github.com/iudanet/lunchsync/internal/models"
)

// queueKey кодирует ID элемента очереди в big-endian ключ.
// Big-endian сохраняет числовой порядок при лексикографическом обходе
// bucket'а, поэтому курсор возвращает элементы строго в FIFO порядке.
func queueKey(id uint64) []byte {
	key := make([]byte, 8)
	binary.BigEndian.PutUint64(key, id)
	return key
}

// Enqueue appends a mutation to the sync queue.
// The item ID comes from the bucket sequence inside the same write
// transaction, so concurrent enqueues always get distinct monotonic IDs.
func (s *Storage) Enqueue(ctx context.Context, action, collection string, payload json.RawMessage) (*models.SyncQueueItem, error) {
	if s.db == nil {
		return nil, storage.ErrStorageClosed
	}

	item := &models.SyncQueueItem{
		Action:     action,
		Collection: collection,
		Payload:    payload,
		EnqueuedAt: s.now(),
		Retries:    0,
		LastError:  "",
	}

	err := s.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketQueue)
		if bucket == nil {
			return storage.ErrStorageClosed
		}

		// NextSequence атомарен в рамках write-транзакции
		id, err := bucket.NextSequence()
		if err != nil {
			return fmt.Errorf("failed to get next sequence: %w", err)
		}
		item.ID = id

		data, err := json.Marshal(item)
		if err != nil {
			return fmt.Errorf("failed to marshal queue item: %w", err)
		}

		if err := bucket.Put(queueKey(id), data); err != nil {
			return fmt.Errorf("failed to save queue item: %w", err)
		}

		return nil
	})

	if err != nil {
		return nil, fmt.Errorf("enqueue transaction failed: %w", err)
	}

	return item, nil
}

// ListQueue returns all queue items in FIFO order
func (s *Storage) ListQueue(ctx context.Context) ([]*models.SyncQueueItem, error) {
	if s.db == nil {
		return nil, storage.ErrStorageClosed
	}

	var items []*models.SyncQueueItem

	err := s.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketQueue)
		if bucket == nil {
			return nil
		}

		// ForEach обходит ключи в лексикографическом порядке,
		// для big-endian ключей это порядок постановки в очередь
		return bucket.ForEach(func(k, v []byte) error {
			var item models.SyncQueueItem
			if err := json.Unmarshal(v, &item); err != nil {
				return fmt.Errorf("failed to unmarshal queue item: %w", err)
			}
			items = append(items, &item)
			return nil
		})
	})

	if err != nil {
		return nil, fmt.Errorf("failed to list queue: %w", err)
	}

	return items, nil
}

// UpdateQueueItem updates retry bookkeeping for a queue item.
// Read-modify-write happens inside one transaction, so the patch is atomic.
func (s *Storage) UpdateQueueItem(ctx context.Context, id uint64, retries int, lastError string) error {
	if s.db == nil {
		return storage.ErrStorageClosed
	}

	err := s.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketQueue)
		if bucket == nil {
			return storage.ErrQueueItemNotFound
		}

		data := bucket.Get(queueKey(id))
		if data == nil {
			return storage.ErrQueueItemNotFound
		}

		var item models.SyncQueueItem
		if err := json.Unmarshal(data, &item); err != nil {
			return fmt.Errorf("failed to unmarshal queue item: %w", err)
		}

		item.Retries = retries
		item.LastError = lastError

		updated, err := json.Marshal(&item)
		if err != nil {
			return fmt.Errorf("failed to marshal updated item: %w", err)
		}

		if err := bucket.Put(queueKey(id), updated); err != nil {
			return fmt.Errorf("failed to save updated item: %w", err)
		}

		return nil
	})

	if err != nil {
		if err == storage.ErrQueueItemNotFound {
			return err
		}
		return fmt.Errorf("update queue item transaction failed: %w", err)
	}

	return nil
}

// DeleteQueueItem removes a queue item after successful remote apply
func (s *Storage) DeleteQueueItem(ctx context.Context, id uint64) error {
	if s.db == nil {
		return storage.ErrStorageClosed
	}

	err := s.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketQueue)
		if bucket == nil {
			return nil
		}

		// Delete для отсутствующего ключа не ошибка в bbolt,
		// повторное удаление безопасно
		return bucket.Delete(queueKey(id))
	})

	if err != nil {
		return fmt.Errorf("delete queue item transaction failed: %w", err)
	}

	return nil
}

// ClearQueue removes every queue item and returns the removed count
func (s *Storage) ClearQueue(ctx context.Context) (int, error) {
	if s.db == nil {
		return 0, storage.ErrStorageClosed
	}

	var count int

	err := s.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketQueue)
		if bucket == nil {
			return nil
		}

		count = bucket.Stats().KeyN

		// Пересоздаем bucket целиком
		if err := tx.DeleteBucket(bucketQueue); err != nil {
			return fmt.Errorf("failed to delete queue bucket: %w", err)
		}
		if _, err := tx.CreateBucket(bucketQueue); err != nil {
			return fmt.Errorf("failed to recreate queue bucket: %w", err)
		}

		return nil
	})

	if err != nil {
		return 0, fmt.Errorf("clear queue transaction failed: %w", err)
	}

	return count, nil
}
