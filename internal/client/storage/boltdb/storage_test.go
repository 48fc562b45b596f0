package boltdb

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/lunchsync/internal/client/storage"
)

// createTestStorage создает временное хранилище для тестов
func createTestStorage(t *testing.T) *Storage {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "test.db")

	store, err := New(context.Background(), dbPath)
	require.NoError(t, err)
	require.NotNil(t, store)

	t.Cleanup(func() {
		if store.db != nil {
			require.NoError(t, store.Close())
		}
	})

	return store
}

func TestNew(t *testing.T) {
	t.Run("creates storage and buckets", func(t *testing.T) {
		store := createTestStorage(t)

		// Buckets должны существовать сразу после создания
		records, err := store.ListRecords(context.Background())
		require.NoError(t, err)
		assert.Empty(t, records)

		items, err := store.ListQueue(context.Background())
		require.NoError(t, err)
		assert.Empty(t, items)
	})

	t.Run("fails on invalid path", func(t *testing.T) {
		_, err := New(context.Background(), filepath.Join(t.TempDir(), "no", "such", "dir", "test.db"))
		assert.Error(t, err)
	})
}

func TestStorage_Close(t *testing.T) {
	store := createTestStorage(t)

	require.NoError(t, store.Close())

	// Операции после закрытия отклоняются bbolt
	_, err := store.ListQueue(context.Background())
	assert.Error(t, err)
}

func TestStorage_ClosedGuard(t *testing.T) {
	store := &Storage{db: nil}

	_, err := store.ListQueue(context.Background())
	assert.ErrorIs(t, err, storage.ErrStorageClosed)

	_, err = store.ListRecords(context.Background())
	assert.ErrorIs(t, err, storage.ErrStorageClosed)

	_, err = store.GetCache(context.Background(), "key", 0)
	assert.ErrorIs(t, err, storage.ErrStorageClosed)
}
