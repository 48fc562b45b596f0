package boltdb

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/lunchsync/internal/client/storage"
	"github.com/iudanet/lunchsync/internal/models"
)

func TestStorage_Enqueue(t *testing.T) {
	store := createTestStorage(t)
	ctx := context.Background()

	payload := json.RawMessage(`{"id":"rec-1","user_id":"user-123"}`)

	item, err := store.Enqueue(ctx, models.ActionInsert, models.CollectionLunchRecords, payload)
	require.NoError(t, err)

	assert.Equal(t, uint64(1), item.ID)
	assert.Equal(t, models.ActionInsert, item.Action)
	assert.Equal(t, models.CollectionLunchRecords, item.Collection)
	assert.Equal(t, 0, item.Retries)
	assert.Empty(t, item.LastError)
	assert.False(t, item.EnqueuedAt.IsZero())
	assert.JSONEq(t, string(payload), string(item.Payload))
}

func TestStorage_Enqueue_MonotonicIDs(t *testing.T) {
	store := createTestStorage(t)
	ctx := context.Background()

	// Идентификаторы назначаются монотонно, без повторов
	var lastID uint64
	for i := 0; i < 10; i++ {
		item, err := store.Enqueue(ctx, models.ActionInsert, models.CollectionLunchRecords, json.RawMessage(`{}`))
		require.NoError(t, err)
		assert.Greater(t, item.ID, lastID)
		lastID = item.ID
	}
}

func TestStorage_ListQueue_FIFO(t *testing.T) {
	store := createTestStorage(t)
	ctx := context.Background()

	// Добавляем элементы в известном порядке
	for i := 0; i < 5; i++ {
		payload := json.RawMessage(fmt.Sprintf(`{"seq":%d}`, i))
		_, err := store.Enqueue(ctx, models.ActionInsert, models.CollectionLunchRecords, payload)
		require.NoError(t, err)
	}

	items, err := store.ListQueue(ctx)
	require.NoError(t, err)
	require.Len(t, items, 5)

	// Порядок строго FIFO
	for i, item := range items {
		assert.Equal(t, uint64(i+1), item.ID)
	}
}

func TestStorage_UpdateQueueItem(t *testing.T) {
	t.Run("updates retry bookkeeping", func(t *testing.T) {
		store := createTestStorage(t)
		ctx := context.Background()

		item, err := store.Enqueue(ctx, models.ActionInsert, models.CollectionLunchRecords, json.RawMessage(`{}`))
		require.NoError(t, err)

		require.NoError(t, store.UpdateQueueItem(ctx, item.ID, 2, "connection refused"))

		items, err := store.ListQueue(ctx)
		require.NoError(t, err)
		require.Len(t, items, 1)
		assert.Equal(t, 2, items[0].Retries)
		assert.Equal(t, "connection refused", items[0].LastError)
	})

	t.Run("missing item", func(t *testing.T) {
		store := createTestStorage(t)

		err := store.UpdateQueueItem(context.Background(), 42, 1, "err")
		assert.ErrorIs(t, err, storage.ErrQueueItemNotFound)
	})
}

func TestStorage_DeleteQueueItem(t *testing.T) {
	store := createTestStorage(t)
	ctx := context.Background()

	item, err := store.Enqueue(ctx, models.ActionInsert, models.CollectionLunchRecords, json.RawMessage(`{}`))
	require.NoError(t, err)

	require.NoError(t, store.DeleteQueueItem(ctx, item.ID))

	items, err := store.ListQueue(ctx)
	require.NoError(t, err)
	assert.Empty(t, items)

	// Повторное удаление безопасно
	assert.NoError(t, store.DeleteQueueItem(ctx, item.ID))
}

func TestStorage_ClearQueue(t *testing.T) {
	store := createTestStorage(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, err := store.Enqueue(ctx, models.ActionInsert, models.CollectionLunchRecords, json.RawMessage(`{}`))
		require.NoError(t, err)
	}

	count, err := store.ClearQueue(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, count)

	items, err := store.ListQueue(ctx)
	require.NoError(t, err)
	assert.Empty(t, items)
}
